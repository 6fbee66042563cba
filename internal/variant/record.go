package variant

// MetadataKey is the namespaced key under which the variant list lives in an
// item's metadata bag. guise reads and writes only this key and preserves
// every sibling key on write.
const MetadataKey = "app.guise/image-variants"

// optionsField names the array inside the metadata envelope.
const optionsField = "imageOptions"

// Offset is the pixel offset of a variant's grid origin.
type Offset struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Record is one saved image appearance for a scene item.
//
// ID is assigned at creation and stable for the record's lifetime; it is
// unique within a single item's list and never reused after removal. URL
// doubles as the identity key for duplicate detection on explicit adds.
// Width and Height are the asset's natural pixel dimensions at capture time
// and are always positive for a parsed record.
type Record struct {
	ID       string   `json:"id"`
	URL      string   `json:"url"`
	Width    float64  `json:"width"`
	Height   float64  `json:"height"`
	Name     string   `json:"name"`
	DPI      *float64 `json:"dpi,omitempty"`
	Offset   *Offset  `json:"offset,omitempty"`
	Rotation *float64 `json:"rotation,omitempty"`
}

// Float returns a pointer to v, for filling the optional record fields.
func Float(v float64) *float64 { return &v }

// asMap renders the record as a plain JSON-compatible mapping. Optional
// fields are omitted when unset so the wire shape round-trips through the
// host's generic metadata storage without spurious keys.
func (r Record) asMap() map[string]any {
	m := map[string]any{
		"id":     r.ID,
		"url":    r.URL,
		"width":  r.Width,
		"height": r.Height,
		"name":   r.Name,
	}
	if r.DPI != nil {
		m["dpi"] = *r.DPI
	}
	if r.Offset != nil {
		m["offset"] = map[string]any{"x": r.Offset.X, "y": r.Offset.Y}
	}
	if r.Rotation != nil {
		m["rotation"] = *r.Rotation
	}
	return m
}

// MetadataValue builds the envelope stored under MetadataKey. Records are
// flattened to plain mappings so the value survives any JSON-compatible
// storage a host uses, not just in-process maps.
func MetadataValue(records []Record) map[string]any {
	options := make([]any, 0, len(records))
	for _, record := range records {
		options = append(options, record.asMap())
	}
	return map[string]any{optionsField: options}
}

// RecordsFromMetadata unwraps the envelope previously written by
// MetadataValue. The second result reports whether the envelope itself was
// well formed; individual entries that fail to parse are dropped. A well
// formed envelope with an empty (or fully invalid) list still counts as
// initialized metadata.
func RecordsFromMetadata(value any) ([]Record, bool) {
	envelope, ok := value.(map[string]any)
	if !ok {
		return nil, false
	}
	raw, ok := envelope[optionsField]
	if !ok {
		return nil, false
	}
	list, ok := raw.([]any)
	if !ok {
		return nil, false
	}
	return ParseList(list), true
}
