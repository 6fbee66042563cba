package main

import (
	"fmt"
	"io"
	"strconv"

	"guise/internal/panel"
)

// panelRenderer draws the panel view as a table.
type panelRenderer struct {
	out io.Writer
}

func newPanelRenderer(out io.Writer) *panelRenderer {
	return &panelRenderer{out: out}
}

func (r *panelRenderer) Render(view panel.View) error {
	if view.Focus == nil {
		if view.Selected == 0 {
			fmt.Fprintln(r.out, "Nothing selected.")
		} else {
			fmt.Fprintln(r.out, "Selection has no image-bearing items.")
		}
		return nil
	}

	fmt.Fprintf(r.out, "%s (%s): %d selected, editable: %s\n",
		view.Focus.Name, view.Focus.ID, view.Selected, yesNo(view.CanEdit))

	rows := make([][]string, 0, len(view.Entries))
	for _, entry := range view.Entries {
		live := ""
		if entry.Live {
			live = "*"
		}
		record := entry.Record
		dpi := ""
		if record.DPI != nil {
			dpi = strconv.FormatFloat(*record.DPI, 'f', -1, 64)
		}
		rows = append(rows, []string{
			live,
			record.ID,
			record.Name,
			fmt.Sprintf("%gx%g", record.Width, record.Height),
			dpi,
			record.URL,
		})
	}

	fmt.Fprintln(r.out, renderTable(r.out,
		[]string{"", "ID", "NAME", "SIZE", "DPI", "URL"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignLeft},
	))
	return nil
}
