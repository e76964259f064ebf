package tablestore

import (
	"strconv"
	"strings"
	"time"
)

// Field values arrive from the table store in several JSON shapes depending
// on the column type: select columns may be a bare string or a {text, id}
// object, multi-selects an array of either, dates an epoch-millisecond number
// or an ISO string, numbers a number or a numeric string. The coercers below
// are applied uniformly at the repository boundary so the rest of the system
// never sees the remote schema's representational quirks.

// StringValue coerces a field value to a string. Arrays are joined with ", ".
func StringValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case map[string]any:
		if text, ok := val["text"].(string); ok {
			return text
		}
		return ""
	case []any:
		parts := make([]string, 0, len(val))
		for _, item := range val {
			if s := StringValue(item); s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, ", ")
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	}
	return ""
}

// StringsValue coerces a multi-select field value to a string slice.
func StringsValue(v any) []string {
	switch val := v.(type) {
	case nil:
		return nil
	case []any:
		out := make([]string, 0, len(val))
		for _, item := range val {
			if s := StringValue(item); s != "" {
				out = append(out, s)
			}
		}
		return out
	default:
		if s := StringValue(v); s != "" {
			return []string{s}
		}
		return nil
	}
}

// NumberValue coerces a numeric field value to a float64.
func NumberValue(v any) float64 {
	switch val := v.(type) {
	case float64:
		return val
	case int:
		return float64(val)
	case int64:
		return float64(val)
	case string:
		cleaned := strings.TrimSpace(strings.ReplaceAll(val, ",", ""))
		if cleaned == "" {
			return 0
		}
		n, err := strconv.ParseFloat(cleaned, 64)
		if err != nil {
			return 0
		}
		return n
	}
	return 0
}

// IntValue coerces a numeric field value to an int64, truncating fractions.
func IntValue(v any) int64 {
	return int64(NumberValue(v))
}

// BoolValue coerces a checkbox field value to a bool. Numeric and string
// truthiness follows the remote UI's conventions.
func BoolValue(v any) bool {
	switch val := v.(type) {
	case bool:
		return val
	case float64:
		return val != 0
	case string:
		return val == "true" || val == "1" || val == "checked"
	}
	return false
}

// TimeValue coerces a date field value to a time. Epoch milliseconds and ISO
// strings are both accepted; nil is returned for anything else.
func TimeValue(v any) *time.Time {
	switch val := v.(type) {
	case float64:
		if val == 0 {
			return nil
		}
		t := time.UnixMilli(int64(val))
		return &t
	case string:
		if val == "" {
			return nil
		}
		for _, layout := range []string{time.RFC3339, "2006-01-02", "2006/01/02"} {
			if t, err := time.Parse(layout, val); err == nil {
				return &t
			}
		}
		return nil
	}
	return nil
}
