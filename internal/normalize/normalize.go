package normalize

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// Skills coerces the shape-shifting skills column into a flat []string.
// The scraper has stored this field three different ways over time: a real
// JSON array, a JSON string containing an encoded array ("[\"React\",...]"),
// and a plain comma-separated string. Non-string elements are dropped and any
// parse failure yields an empty slice rather than an error, logged as a
// recoverable anomaly.
func Skills(raw json.RawMessage) []string {
	if len(raw) == 0 || string(raw) == "null" {
		return []string{}
	}

	// Already a JSON array: keep only the string elements.
	var elems []interface{}
	if err := json.Unmarshal(raw, &elems); err == nil {
		return stringElements(elems)
	}

	// A JSON scalar: coerce to its string form.
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		var n json.Number
		if err := json.Unmarshal(raw, &n); err != nil {
			logrus.WithField("skills_raw", string(raw)).Warn("Unparseable skills value, treating as empty")
			return []string{}
		}
		s = n.String()
	}

	return SkillsFromString(s)
}

// SkillsFromString normalizes an already-stringified skills value: a
// JSON-encoded array if it looks like one, otherwise a comma list with
// segments trimmed and empties dropped.
func SkillsFromString(s string) []string {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return []string{}
	}

	if strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]") {
		var elems []interface{}
		if err := json.Unmarshal([]byte(trimmed), &elems); err != nil {
			logrus.WithField("skills_raw", s).Warn("Skills value looks like a JSON array but does not parse, treating as empty")
			return []string{}
		}
		return stringElements(elems)
	}

	parts := strings.Split(trimmed, ",")
	skills := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			skills = append(skills, p)
		}
	}
	return skills
}

func stringElements(elems []interface{}) []string {
	skills := make([]string, 0, len(elems))
	for _, e := range elems {
		if s, ok := e.(string); ok {
			skills = append(skills, s)
		}
	}
	return skills
}

// Timestamp layouts seen in the store. Supabase serializes timestamptz columns
// as RFC 3339; older rows carry a bare "YYYY-MM-DD HH:MM:SS".
var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// RelativeTime converts an absolute timestamp string into a bucketed
// human-relative label ("just now", "5 minutes ago", "1 hour ago", ...).
// Unparseable input is returned unchanged so the caller always has something
// to render.
func RelativeTime(raw string, now time.Time) string {
	var ts time.Time
	parsed := false
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			ts = t
			parsed = true
			break
		}
	}
	if !parsed {
		logrus.WithField("timestamp", raw).Warn("Unparseable timestamp, returning raw value")
		return raw
	}
	return RelativeTimeSince(ts, now)
}

// RelativeTimeSince buckets the difference between ts and now. Future
// timestamps (clock skew between scraper and store) collapse to "just now".
func RelativeTimeSince(ts, now time.Time) string {
	diff := now.Sub(ts)
	if diff < 0 {
		diff = 0
	}

	minutes := int(diff.Minutes())
	hours := int(diff.Hours())
	days := int(diff.Hours() / 24)

	switch {
	case minutes < 1:
		return "just now"
	case minutes < 60:
		return pluralize(minutes, "minute")
	case hours < 24:
		return pluralize(hours, "hour")
	case days < 7:
		return pluralize(days, "day")
	case days/7 < 4:
		return pluralize(days/7, "week")
	case days/30 < 12:
		return pluralize(days/30, "month")
	default:
		return pluralize(days/365, "year")
	}
}

func pluralize(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s ago", unit)
	}
	return fmt.Sprintf("%d %ss ago", n, unit)
}

// currencyRe matches the first run of digits/commas after an optional
// currency symbol, e.g. "$5,000+" or "10,000 USD".
var currencyRe = regexp.MustCompile(`\$?([\d,]+)`)

// CurrencyMagnitude extracts the integer magnitude from a currency-formatted
// string like "$5,000+". A result of 0 means "unknown", not an actual zero
// spend; callers that classify by magnitude must exclude it.
func CurrencyMagnitude(raw string) int {
	m := currencyRe.FindStringSubmatch(raw)
	if m == nil {
		return 0
	}
	n, err := strconv.Atoi(strings.ReplaceAll(m[1], ",", ""))
	if err != nil {
		return 0
	}
	return n
}

// LeadingInt parses the leading integer of a numeric-as-string field such as
// client_jobs_posted ("12" or "12 jobs posted"). Anything unparseable is 0.
func LeadingInt(raw string) int {
	trimmed := strings.TrimSpace(raw)
	end := 0
	for end < len(trimmed) && trimmed[end] >= '0' && trimmed[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0
	}
	n, err := strconv.Atoi(trimmed[:end])
	if err != nil {
		return 0
	}
	return n
}
