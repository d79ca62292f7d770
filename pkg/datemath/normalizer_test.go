package datemath_test

import (
	"testing"
	"time"

	"couple-schedule-manager/pkg/datemath"
)

func TestNewNormalizer(t *testing.T) {
	_, err := datemath.NewNormalizer("Asia/Ho_Chi_Minh")
	if err != nil {
		t.Fatalf("unexpected error creating valid normalizer: %v", err)
	}

	_, err = datemath.NewNormalizer("Invalid/Timezone")
	if err == nil {
		t.Fatalf("expected error for invalid timezone")
	}
}

func TestNormalizeDate(t *testing.T) {
	n, _ := datemath.NewNormalizer("UTC")
	base := time.Date(2024, 5, 1, 15, 30, 0, 0, time.UTC) // Wednesday, May 1, 2024

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "Empty", input: "", want: ""},
		{name: "Today", input: "today", want: "2024-05-01"},
		{name: "Today Vietnamese", input: "hôm nay", want: "2024-05-01"},
		{name: "Tomorrow", input: "tomorrow", want: "2024-05-02"},
		{name: "Tomorrow uppercase", input: "Tomorrow", want: "2024-05-02"},
		{name: "Tomorrow Vietnamese", input: "ngày mai", want: "2024-05-02"},
		{name: "Tomorrow inside phrase", input: "by tomorrow evening", want: "2024-05-02"},
		{name: "Next week", input: "next week", want: "2024-05-08"},
		{name: "Next week Vietnamese", input: "tuần sau", want: "2024-05-08"},
		{name: "ISO passthrough", input: "2024-12-25", want: "2024-12-25"},
		{name: "ISO with whitespace", input: " 2024-12-25 ", want: "2024-12-25"},
		{name: "Unparsed phrase dropped", input: "sometime soon", want: ""},
		{name: "Partial ISO dropped", input: "2024-12", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := n.NormalizeDate(tt.input, base)
			if got != tt.want {
				t.Errorf("NormalizeDate(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

// The normalized date must not depend on the time of day of the reference
// instant, including across a month boundary.
func TestNormalizeDateReferenceInstant(t *testing.T) {
	n, _ := datemath.NewNormalizer("UTC")

	morning := time.Date(2024, 5, 31, 0, 1, 0, 0, time.UTC)
	night := time.Date(2024, 5, 31, 23, 59, 0, 0, time.UTC)

	for _, base := range []time.Time{morning, night} {
		if got := n.NormalizeDate("tomorrow", base); got != "2024-06-01" {
			t.Errorf("NormalizeDate(tomorrow, %v) = %q, want 2024-06-01", base, got)
		}
	}
}

func TestNormalizeDateTimezone(t *testing.T) {
	n, _ := datemath.NewNormalizer("Asia/Ho_Chi_Minh")

	// 20:00 UTC on May 1 is already May 2 in UTC+7.
	base := time.Date(2024, 5, 1, 20, 0, 0, 0, time.UTC)
	if got := n.NormalizeDate("today", base); got != "2024-05-02" {
		t.Errorf("NormalizeDate(today) = %q, want 2024-05-02", got)
	}
}

func TestNormalizeTime(t *testing.T) {
	n, _ := datemath.NewNormalizer("UTC")

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "Empty", input: "", want: ""},
		{name: "Morning", input: "morning", want: "09:00"},
		{name: "Morning Vietnamese", input: "sáng", want: "09:00"},
		{name: "Afternoon", input: "afternoon", want: "14:00"},
		{name: "Afternoon Vietnamese", input: "chiều", want: "14:00"},
		{name: "Evening", input: "evening", want: "18:00"},
		{name: "Evening Vietnamese", input: "tối", want: "18:00"},
		{name: "Night", input: "night", want: "21:00"},
		{name: "Night Vietnamese", input: "đêm", want: "21:00"},
		{name: "HH:MM passthrough", input: "15:00", want: "15:00"},
		{name: "HH:MM uppercase trim", input: " 08:30 ", want: "08:30"},
		{name: "Unparsed dropped", input: "3pm-ish", want: ""},
		{name: "Single digit hour dropped", input: "9:00", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := n.NormalizeTime(tt.input)
			if got != tt.want {
				t.Errorf("NormalizeTime(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
