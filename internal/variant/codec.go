package variant

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrInvalidRecord indicates a candidate value is not a structurally valid
// variant record.
var ErrInvalidRecord = errors.New("invalid variant record")

// ParseRecord validates an untyped candidate into a Record. It succeeds only
// when candidate is a keyed mapping carrying id, url, and name as text,
// width and height as positive numbers, and, when present, a numeric dpi, a
// numeric rotation, and an offset mapping with numeric x and y. Everything
// else is rejected.
func ParseRecord(candidate any) (Record, error) {
	fields, ok := candidate.(map[string]any)
	if !ok {
		return Record{}, fmt.Errorf("%w: not a keyed mapping", ErrInvalidRecord)
	}

	id, ok := textField(fields, "id")
	if !ok {
		return Record{}, fmt.Errorf("%w: id must be text", ErrInvalidRecord)
	}
	url, ok := textField(fields, "url")
	if !ok {
		return Record{}, fmt.Errorf("%w: url must be text", ErrInvalidRecord)
	}
	name, ok := textField(fields, "name")
	if !ok {
		return Record{}, fmt.Errorf("%w: name must be text", ErrInvalidRecord)
	}
	width, ok := numberField(fields, "width")
	if !ok || width <= 0 {
		return Record{}, fmt.Errorf("%w: width must be a positive number", ErrInvalidRecord)
	}
	height, ok := numberField(fields, "height")
	if !ok || height <= 0 {
		return Record{}, fmt.Errorf("%w: height must be a positive number", ErrInvalidRecord)
	}

	record := Record{ID: id, URL: url, Width: width, Height: height, Name: name}

	if raw, present := fields["dpi"]; present {
		dpi, ok := asNumber(raw)
		if !ok {
			return Record{}, fmt.Errorf("%w: dpi must be numeric", ErrInvalidRecord)
		}
		record.DPI = &dpi
	}
	if raw, present := fields["offset"]; present {
		offset, ok := parseOffset(raw)
		if !ok {
			return Record{}, fmt.Errorf("%w: offset must be a mapping with numeric x and y", ErrInvalidRecord)
		}
		record.Offset = &offset
	}
	if raw, present := fields["rotation"]; present {
		rotation, ok := asNumber(raw)
		if !ok {
			return Record{}, fmt.Errorf("%w: rotation must be numeric", ErrInvalidRecord)
		}
		record.Rotation = &rotation
	}

	return record, nil
}

// ParseList returns the sublist of candidates that parse as records,
// discarding invalid entries without error.
func ParseList(candidates []any) []Record {
	records := make([]Record, 0, len(candidates))
	for _, candidate := range candidates {
		record, err := ParseRecord(candidate)
		if err != nil {
			continue
		}
		records = append(records, record)
	}
	return records
}

func parseOffset(raw any) (Offset, bool) {
	fields, ok := raw.(map[string]any)
	if !ok {
		return Offset{}, false
	}
	x, ok := numberField(fields, "x")
	if !ok {
		return Offset{}, false
	}
	y, ok := numberField(fields, "y")
	if !ok {
		return Offset{}, false
	}
	return Offset{X: x, Y: y}, true
}

func textField(fields map[string]any, key string) (string, bool) {
	raw, present := fields[key]
	if !present {
		return "", false
	}
	value, ok := raw.(string)
	return value, ok
}

func numberField(fields map[string]any, key string) (float64, bool) {
	raw, present := fields[key]
	if !present {
		return 0, false
	}
	return asNumber(raw)
}

// asNumber accepts the numeric representations a metadata bag can carry:
// float64 after a JSON round trip, json.Number from streaming decoders, and
// plain Go ints from in-process hosts. Text and everything else is not a
// number.
func asNumber(raw any) (float64, bool) {
	switch value := raw.(type) {
	case float64:
		return value, true
	case float32:
		return float64(value), true
	case int:
		return float64(value), true
	case int32:
		return float64(value), true
	case int64:
		return float64(value), true
	case json.Number:
		parsed, err := value.Float64()
		if err != nil {
			return 0, false
		}
		return parsed, true
	default:
		return 0, false
	}
}
