package datemath

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// DateFormat is the canonical wire format for normalized dates.
const DateFormat = "2006-01-02"

var (
	isoDateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	hhmmRe    = regexp.MustCompile(`^\d{2}:\d{2}$`)
)

// datePhrase maps a natural-language phrase to a day offset from the base date.
// Phrases are matched as substrings, case-insensitive, in declaration order.
// English and Vietnamese synonyms share one rule.
type datePhrase struct {
	keywords []string
	days     int
}

var datePhrases = []datePhrase{
	{keywords: []string{"today", "hôm nay"}, days: 0},
	{keywords: []string{"tomorrow", "ngày mai"}, days: 1},
	{keywords: []string{"next week", "tuần sau"}, days: 7},
}

// timePhrase maps a part-of-day phrase to a canonical HH:MM value.
type timePhrase struct {
	keywords []string
	value    string
}

var timePhrases = []timePhrase{
	{keywords: []string{"morning", "sáng"}, value: "09:00"},
	{keywords: []string{"afternoon", "chiều"}, value: "14:00"},
	{keywords: []string{"evening", "tối"}, value: "18:00"},
	{keywords: []string{"night", "đêm"}, value: "21:00"},
}

// Normalizer converts loosely specified date/time phrases into canonical
// YYYY-MM-DD and HH:MM strings. It is pure: the reference instant is always
// passed in by the caller, never read from the ambient clock.
type Normalizer struct {
	location *time.Location
}

// NewNormalizer creates a Normalizer for the given IANA timezone string,
// e.g. "Asia/Ho_Chi_Minh".
func NewNormalizer(timezone string) (*Normalizer, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	return &Normalizer{location: loc}, nil
}

// NormalizeDate converts a natural-language date phrase to YYYY-MM-DD
// relative to base. Already-canonical input passes through unchanged.
// Unrecognized input returns "" — unparsed phrases are dropped, not guessed at.
func (n *Normalizer) NormalizeDate(input string, base time.Time) string {
	dateStr := strings.ToLower(strings.TrimSpace(input))
	if dateStr == "" {
		return ""
	}

	local := base.In(n.location)
	for _, p := range datePhrases {
		for _, kw := range p.keywords {
			if strings.Contains(dateStr, kw) {
				return local.AddDate(0, 0, p.days).Format(DateFormat)
			}
		}
	}

	if isoDateRe.MatchString(dateStr) {
		return dateStr
	}

	return ""
}

// NormalizeTime converts a part-of-day phrase to HH:MM. Already-canonical
// input passes through unchanged; unrecognized input returns "".
func (n *Normalizer) NormalizeTime(input string) string {
	timeStr := strings.ToLower(strings.TrimSpace(input))
	if timeStr == "" {
		return ""
	}

	for _, p := range timePhrases {
		for _, kw := range p.keywords {
			if strings.Contains(timeStr, kw) {
				return p.value
			}
		}
	}

	if hhmmRe.MatchString(timeStr) {
		return timeStr
	}

	return ""
}
