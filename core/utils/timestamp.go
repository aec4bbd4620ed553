package utils

import (
	"time"
)

// TimestampFields are the document fields holding timestamps.
var TimestampFields = []string{"createdAt", "updatedAt"}

// ToUnixMillis converts a timestamp in any encoding seen in snapshots to unix
// milliseconds:
//   - numbers are taken as milliseconds already
//   - {seconds, nanoseconds} and {_seconds, _nanoseconds} objects (remote store encoding)
//   - RFC3339 strings (local cache encoding)
//   - time.Time and *time.Time
//
// ok is false when val is not a recognized timestamp.
func ToUnixMillis(val any) (millis int64, ok bool) {
	switch v := val.(type) {
	case time.Time:
		return v.UnixMilli(), true
	case *time.Time:
		if v == nil {
			return 0, false
		}
		return v.UnixMilli(), true
	case string:
		t, err := time.Parse(time.RFC3339Nano, v)
		if err != nil {
			return 0, false
		}
		return t.UnixMilli(), true
	case map[string]any:
		return secondsObjectToMillis(v)
	}

	if IsNumber(val) {
		return ToInt64(val), true
	}
	return 0, false
}

func secondsObjectToMillis(m map[string]any) (int64, bool) {
	for _, keys := range [][2]string{{"seconds", "nanoseconds"}, {"_seconds", "_nanoseconds"}} {
		secs, ok := m[keys[0]]
		if !ok || !IsNumber(secs) {
			continue
		}
		nanos := int64(0)
		if n, ok := m[keys[1]]; ok && IsNumber(n) {
			nanos = ToInt64(n)
		}
		return ToInt64(secs)*1000 + nanos/int64(time.Millisecond), true
	}
	return 0, false
}

// NormalizeTimestamps returns a shallow copy of doc with every recognized
// TimestampFields value converted to unix milliseconds. Unrecognized values
// are kept as they are. A nil doc stays nil.
func NormalizeTimestamps(doc map[string]any) map[string]any {
	if doc == nil {
		return nil
	}
	out := make(map[string]any, len(doc))
	for k, v := range doc {
		out[k] = v
	}
	for _, field := range TimestampFields {
		v, present := out[field]
		if !present {
			continue
		}
		if ms, ok := ToUnixMillis(v); ok {
			out[field] = ms
		}
	}
	return out
}
