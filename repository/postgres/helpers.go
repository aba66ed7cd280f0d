package postgres

import (
	"encoding/json"
	"time"
)

func marshalStrings(values []string) []byte {
	if len(values) == 0 {
		return []byte("[]")
	}
	b, err := json.Marshal(values)
	if err != nil {
		return []byte("[]")
	}
	return b
}

func unmarshalStrings(data []byte) []string {
	if len(data) == 0 {
		return nil
	}
	var values []string
	_ = json.Unmarshal(data, &values)
	return values
}

func nullString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

func nullTime(t time.Time) interface{} {
	if t.IsZero() {
		return nil
	}
	return t
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
