package queue

import (
	"time"

	"github.com/riverqueue/river"
)

// insertOptsFromMap translates a resolved job-options map into river insert
// options. Recognized keys:
//
//	queue         string
//	priority      int
//	max_attempts  int
//	scheduled_in  time.Duration or duration string ("5m")
//	unique_for    time.Duration or duration string
//	tags          []string
//
// Unknown keys are ignored so host applications can carry their own
// annotations through group and rule settings without breaking enqueue.
// Numeric values may arrive as int or float64 depending on whether they were
// configured in code, YAML or JSON.
func insertOptsFromMap(jobOptions map[string]any) *river.InsertOpts {
	opts := &river.InsertOpts{}
	if len(jobOptions) == 0 {
		return opts
	}

	if q, ok := jobOptions["queue"].(string); ok && q != "" {
		opts.Queue = q
	}
	if p, ok := intValue(jobOptions["priority"]); ok && p > 0 {
		opts.Priority = p
	}
	if n, ok := intValue(jobOptions["max_attempts"]); ok && n > 0 {
		opts.MaxAttempts = n
	}
	if d, ok := durationValue(jobOptions["scheduled_in"]); ok && d > 0 {
		opts.ScheduledAt = time.Now().Add(d)
	}
	if d, ok := durationValue(jobOptions["unique_for"]); ok && d > 0 {
		opts.UniqueOpts = river.UniqueOpts{ByPeriod: d}
	}
	if tags, ok := stringsValue(jobOptions["tags"]); ok {
		opts.Tags = tags
	}

	return opts
}

func intValue(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	default:
		return 0, false
	}
}

func durationValue(v any) (time.Duration, bool) {
	switch d := v.(type) {
	case time.Duration:
		return d, true
	case string:
		parsed, err := time.ParseDuration(d)
		if err != nil {
			return 0, false
		}
		return parsed, true
	default:
		return 0, false
	}
}

func stringsValue(v any) ([]string, bool) {
	switch ts := v.(type) {
	case []string:
		return ts, len(ts) > 0
	case []any:
		out := make([]string, 0, len(ts))
		for _, t := range ts {
			s, ok := t.(string)
			if !ok {
				return nil, false
			}
			out = append(out, s)
		}
		return out, len(out) > 0
	default:
		return nil, false
	}
}
