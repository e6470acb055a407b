package normalize

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"

	"creatorcore/internal/domain"
)

// Upstream sources disagree on field names and value shapes; these helpers try each key in order
// and accept the shapes seen in practice.

func stringField(raw domain.RawRecord, keys ...string) string {
	for _, k := range keys {
		v, ok := raw[k]
		if !ok || v == nil {
			continue
		}
		if s := asString(v); s != "" {
			return s
		}
	}
	return ""
}

func asString(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case json.Number:
		return t.String()
	case float64:
		if t == math.Trunc(t) && math.Abs(t) < 1e15 {
			return strconv.FormatInt(int64(t), 10)
		}
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case map[string]any:
		return stringField(domain.RawRecord(t), "_id", "id")
	case domain.RawRecord:
		return stringField(t, "_id", "id")
	}
	return ""
}

func nestedRecord(raw domain.RawRecord, key string) domain.RawRecord {
	switch t := raw[key].(type) {
	case map[string]any:
		return domain.RawRecord(t)
	case domain.RawRecord:
		return t
	}
	return nil
}

func numberField(raw domain.RawRecord, keys ...string) *float64 {
	for _, k := range keys {
		v, ok := raw[k]
		if !ok || v == nil {
			continue
		}
		if f, ok := asNumber(v); ok {
			return &f
		}
	}
	return nil
}

func asNumber(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, finite(t)
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case json.Number:
		f, err := t.Float64()
		return f, err == nil && finite(f)
	case string:
		return parseHumanNumber(t)
	}
	return 0, false
}

// parseHumanNumber accepts "1,200", "$1200.50", "12k", "1.5M".
func parseHumanNumber(s string) (float64, bool) {
	s = strings.TrimSpace(strings.ToLower(s))
	s = strings.TrimLeft(s, "$€£")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, " ", "")
	if s == "" {
		return 0, false
	}

	mult := 1.0
	switch {
	case strings.HasSuffix(s, "k"):
		mult, s = 1e3, strings.TrimSuffix(s, "k")
	case strings.HasSuffix(s, "m"):
		mult, s = 1e6, strings.TrimSuffix(s, "m")
	case strings.HasSuffix(s, "b"):
		mult, s = 1e9, strings.TrimSuffix(s, "b")
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil || !finite(f*mult) {
		return 0, false
	}
	return f * mult, true
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func intField(raw domain.RawRecord, keys ...string) *int {
	for _, k := range keys {
		v, ok := raw[k]
		if !ok || v == nil {
			continue
		}
		if list, ok := v.([]any); ok {
			n := len(list)
			return &n
		}
		// Counts past MaxInt32 are upstream garbage, not data.
		if f, ok := asNumber(v); ok && f >= 0 && f <= math.MaxInt32 {
			n := int(f)
			return &n
		}
	}
	return nil
}

func int64Field(raw domain.RawRecord, keys ...string) *int64 {
	f := numberField(raw, keys...)
	// float64(math.MaxInt64) rounds up to 2^63, which no longer fits.
	if f == nil || *f < 0 || *f >= float64(math.MaxInt64) {
		return nil
	}
	n := int64(math.Round(*f))
	return &n
}

func boolField(raw domain.RawRecord, keys ...string) *bool {
	for _, k := range keys {
		switch t := raw[k].(type) {
		case bool:
			return &t
		case string:
			if b, err := strconv.ParseBool(strings.TrimSpace(t)); err == nil {
				return &b
			}
		case float64:
			b := t != 0
			return &b
		}
	}
	return nil
}

var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func timeField(raw domain.RawRecord, keys ...string) *time.Time {
	for _, k := range keys {
		v, ok := raw[k]
		if !ok || v == nil {
			continue
		}
		if t, ok := asTime(v); ok {
			return &t
		}
	}
	return nil
}

func asTime(v any) (time.Time, bool) {
	switch t := v.(type) {
	case string:
		s := strings.TrimSpace(t)
		for _, layout := range timeLayouts {
			if parsed, err := time.Parse(layout, s); err == nil {
				return parsed.UTC(), true
			}
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return unixTime(f), true
		}
	case float64:
		return unixTime(t), true
	case json.Number:
		if f, err := t.Float64(); err == nil {
			return unixTime(f), true
		}
	}
	return time.Time{}, false
}

// unixTime treats values past year ~2286 in seconds as milliseconds.
func unixTime(f float64) time.Time {
	if f > 1e10 {
		return time.UnixMilli(int64(f)).UTC()
	}
	return time.Unix(int64(f), 0).UTC()
}

func listField(raw domain.RawRecord, keys ...string) []string {
	for _, k := range keys {
		var out []string
		switch t := raw[k].(type) {
		case []any:
			for _, item := range t {
				if m, ok := item.(map[string]any); ok {
					if s := stringField(domain.RawRecord(m), "name", "key", "_id", "id"); s != "" {
						out = append(out, s)
					}
					continue
				}
				if s := asString(item); s != "" {
					out = append(out, s)
				}
			}
		case []string:
			out = append(out, t...)
		case string:
			for _, part := range strings.FieldsFunc(t, func(r rune) bool { return r == ',' || r == '|' || r == ';' }) {
				if s := strings.TrimSpace(part); s != "" {
					out = append(out, s)
				}
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	return nil
}

// refsField reads a list of ids from strings or objects carrying an id.
func refsField(raw domain.RawRecord, keys ...string) []string {
	for _, k := range keys {
		list, ok := raw[k].([]any)
		if !ok {
			continue
		}
		seen := make(map[string]struct{}, len(list))
		out := make([]string, 0, len(list))
		for _, item := range list {
			id := asString(item)
			if id == "" {
				continue
			}
			if _, dup := seen[id]; dup {
				continue
			}
			seen[id] = struct{}{}
			out = append(out, id)
		}
		if len(out) > 0 {
			return out
		}
	}
	return nil
}

func optString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
