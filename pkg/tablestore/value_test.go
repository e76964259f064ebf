package tablestore

import (
	"testing"
	"time"
)

func TestStringValue(t *testing.T) {
	tests := []struct {
		name     string
		value    any
		expected string
	}{
		{"nil", nil, ""},
		{"bare string", "記事", "記事"},
		{"text object", map[string]any{"text": "株式会社サンライズ企画", "id": "opt1"}, "株式会社サンライズ企画"},
		{"object without text", map[string]any{"id": "opt1"}, ""},
		{"array of strings", []any{"記事", "バナー"}, "記事, バナー"},
		{"array of objects", []any{map[string]any{"text": "A"}, map[string]any{"text": "B"}}, "A, B"},
		{"number", float64(42), "42"},
		{"bool", true, "true"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StringValue(tt.value); got != tt.expected {
				t.Errorf("StringValue(%v) = %q, expected %q", tt.value, got, tt.expected)
			}
		})
	}
}

func TestStringsValue(t *testing.T) {
	got := StringsValue([]any{"A", map[string]any{"text": "B"}, ""})
	if len(got) != 2 || got[0] != "A" || got[1] != "B" {
		t.Errorf("StringsValue = %v, expected [A B]", got)
	}

	if got := StringsValue("single"); len(got) != 1 || got[0] != "single" {
		t.Errorf("StringsValue(string) = %v, expected [single]", got)
	}
	if got := StringsValue(nil); got != nil {
		t.Errorf("StringsValue(nil) = %v, expected nil", got)
	}
}

func TestNumberValue(t *testing.T) {
	tests := []struct {
		name     string
		value    any
		expected float64
	}{
		{"float", float64(10000), 10000},
		{"numeric string", "5000", 5000},
		{"string with commas", "1,250,000", 1250000},
		{"string with spaces", " 300 ", 300},
		{"empty string", "", 0},
		{"garbage string", "n/a", 0},
		{"nil", nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NumberValue(tt.value); got != tt.expected {
				t.Errorf("NumberValue(%v) = %v, expected %v", tt.value, got, tt.expected)
			}
		})
	}
}

func TestIntValueTruncates(t *testing.T) {
	if got := IntValue(float64(99.9)); got != 99 {
		t.Errorf("IntValue(99.9) = %d, expected 99", got)
	}
}

func TestBoolValue(t *testing.T) {
	tests := []struct {
		name     string
		value    any
		expected bool
	}{
		{"true", true, true},
		{"false", false, false},
		{"one", float64(1), true},
		{"zero", float64(0), false},
		{"string true", "true", true},
		{"string checked", "checked", true},
		{"string no", "no", false},
		{"nil", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BoolValue(tt.value); got != tt.expected {
				t.Errorf("BoolValue(%v) = %v, expected %v", tt.value, got, tt.expected)
			}
		})
	}
}

func TestTimeValue(t *testing.T) {
	epoch := time.Date(2025, 8, 10, 0, 0, 0, 0, time.UTC)

	t.Run("epoch milliseconds", func(t *testing.T) {
		got := TimeValue(float64(epoch.UnixMilli()))
		if got == nil || !got.Equal(epoch) {
			t.Errorf("TimeValue = %v, expected %v", got, epoch)
		}
	})

	t.Run("iso date", func(t *testing.T) {
		got := TimeValue("2025-08-10")
		if got == nil || got.Year() != 2025 || got.Month() != time.August || got.Day() != 10 {
			t.Errorf("TimeValue = %v", got)
		}
	})

	t.Run("slash date", func(t *testing.T) {
		got := TimeValue("2025/08/10")
		if got == nil || got.Day() != 10 {
			t.Errorf("TimeValue = %v", got)
		}
	})

	t.Run("rfc3339", func(t *testing.T) {
		got := TimeValue("2025-08-10T09:30:00+09:00")
		if got == nil || got.Hour() != 9 {
			t.Errorf("TimeValue = %v", got)
		}
	})

	t.Run("zero and junk", func(t *testing.T) {
		if got := TimeValue(float64(0)); got != nil {
			t.Errorf("TimeValue(0) = %v, expected nil", got)
		}
		if got := TimeValue("not a date"); got != nil {
			t.Errorf("TimeValue(junk) = %v, expected nil", got)
		}
		if got := TimeValue(nil); got != nil {
			t.Errorf("TimeValue(nil) = %v, expected nil", got)
		}
	})
}
