package variant_test

import (
	"encoding/json"
	"reflect"
	"testing"

	"guise/internal/variant"
)

func validCandidate() map[string]any {
	return map[string]any{
		"id":     "rec-1",
		"url":    "https://assets.example/goblin.png",
		"width":  300.0,
		"height": 200.0,
		"name":   "Goblin",
	}
}

func TestParseRecordAcceptsWellFormedCandidates(t *testing.T) {
	candidate := validCandidate()
	candidate["dpi"] = 150.0
	candidate["offset"] = map[string]any{"x": 10.0, "y": -4.5}
	candidate["rotation"] = 90.0

	record, err := variant.ParseRecord(candidate)
	if err != nil {
		t.Fatalf("ParseRecord failed: %v", err)
	}

	expected := variant.Record{
		ID:       "rec-1",
		URL:      "https://assets.example/goblin.png",
		Width:    300,
		Height:   200,
		Name:     "Goblin",
		DPI:      variant.Float(150),
		Offset:   &variant.Offset{X: 10, Y: -4.5},
		Rotation: variant.Float(90),
	}
	if !reflect.DeepEqual(record, expected) {
		t.Fatalf("unexpected record: %#v", record)
	}
}

func TestParseRecordOptionalFieldsStayUnset(t *testing.T) {
	record, err := variant.ParseRecord(validCandidate())
	if err != nil {
		t.Fatalf("ParseRecord failed: %v", err)
	}
	if record.DPI != nil || record.Offset != nil || record.Rotation != nil {
		t.Fatalf("expected optional fields unset, got %#v", record)
	}
}

func TestParseRecordAcceptsIntegerDimensions(t *testing.T) {
	candidate := validCandidate()
	candidate["width"] = 300
	candidate["height"] = int64(200)

	record, err := variant.ParseRecord(candidate)
	if err != nil {
		t.Fatalf("ParseRecord failed: %v", err)
	}
	if record.Width != 300 || record.Height != 200 {
		t.Fatalf("unexpected dimensions: %v x %v", record.Width, record.Height)
	}
}

func TestParseRecordRejectsMalformedCandidates(t *testing.T) {
	mutate := func(fn func(map[string]any)) map[string]any {
		candidate := validCandidate()
		fn(candidate)
		return candidate
	}

	cases := []struct {
		name      string
		candidate any
	}{
		{"nil", nil},
		{"list", []any{validCandidate()}},
		{"text", "not a record"},
		{"missing id", mutate(func(m map[string]any) { delete(m, "id") })},
		{"missing url", mutate(func(m map[string]any) { delete(m, "url") })},
		{"missing name", mutate(func(m map[string]any) { delete(m, "name") })},
		{"missing width", mutate(func(m map[string]any) { delete(m, "width") })},
		{"numeric id", mutate(func(m map[string]any) { m["id"] = 7.0 })},
		{"textual width", mutate(func(m map[string]any) { m["width"] = "300" })},
		{"zero width", mutate(func(m map[string]any) { m["width"] = 0.0 })},
		{"negative height", mutate(func(m map[string]any) { m["height"] = -1.0 })},
		{"boolean height", mutate(func(m map[string]any) { m["height"] = true })},
		{"textual dpi", mutate(func(m map[string]any) { m["dpi"] = "150" })},
		{"offset not a mapping", mutate(func(m map[string]any) { m["offset"] = []any{1.0, 2.0} })},
		{"offset missing y", mutate(func(m map[string]any) { m["offset"] = map[string]any{"x": 1.0} })},
		{"offset textual x", mutate(func(m map[string]any) { m["offset"] = map[string]any{"x": "1", "y": 2.0} })},
		{"textual rotation", mutate(func(m map[string]any) { m["rotation"] = "90" })},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := variant.ParseRecord(tc.candidate); err == nil {
				t.Fatalf("expected rejection for %#v", tc.candidate)
			}
		})
	}
}

func TestParseListDropsInvalidEntries(t *testing.T) {
	second := validCandidate()
	second["id"] = "rec-2"
	candidates := []any{
		validCandidate(),
		"garbage",
		map[string]any{"id": "broken"},
		second,
		nil,
	}

	records := variant.ParseList(candidates)
	if len(records) != 2 {
		t.Fatalf("expected 2 valid records, got %d", len(records))
	}
	if records[0].ID != "rec-1" || records[1].ID != "rec-2" {
		t.Fatalf("unexpected records: %#v", records)
	}
}

func TestMetadataValueRoundTripsThroughJSON(t *testing.T) {
	records := []variant.Record{
		{ID: "a", URL: "u1", Width: 10, Height: 20, Name: "One"},
		{
			ID: "b", URL: "u2", Width: 64, Height: 64, Name: "Two",
			DPI:      variant.Float(70),
			Offset:   &variant.Offset{X: 32, Y: 32},
			Rotation: variant.Float(180),
		},
	}

	// Simulate the host persisting the metadata bag as generic JSON.
	encoded, err := json.Marshal(variant.MetadataValue(records))
	if err != nil {
		t.Fatalf("marshal metadata: %v", err)
	}
	var stored any
	if err := json.Unmarshal(encoded, &stored); err != nil {
		t.Fatalf("unmarshal metadata: %v", err)
	}

	decoded, ok := variant.RecordsFromMetadata(stored)
	if !ok {
		t.Fatal("expected well-formed envelope")
	}
	if !reflect.DeepEqual(decoded, records) {
		t.Fatalf("round trip mismatch:\n got %#v\nwant %#v", decoded, records)
	}
}

func TestRecordsFromMetadataRejectsMalformedEnvelopes(t *testing.T) {
	cases := []struct {
		name  string
		value any
	}{
		{"nil", nil},
		{"text", "imageOptions"},
		{"missing options", map[string]any{"other": []any{}}},
		{"options not a list", map[string]any{"imageOptions": "nope"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, ok := variant.RecordsFromMetadata(tc.value); ok {
				t.Fatalf("expected rejection for %#v", tc.value)
			}
		})
	}
}

func TestRecordsFromMetadataEmptyListCountsAsInitialized(t *testing.T) {
	records, ok := variant.RecordsFromMetadata(map[string]any{"imageOptions": []any{}})
	if !ok {
		t.Fatal("expected empty list to count as initialized metadata")
	}
	if len(records) != 0 {
		t.Fatalf("expected no records, got %d", len(records))
	}
}
