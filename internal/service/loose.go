package service

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// document is an upstream JSON object decoded without a fixed schema.
type document map[string]any

// object returns the nested object under key, or nil.
func (d document) object(key string) document {
	if v, ok := d[key].(map[string]any); ok {
		return document(v)
	}
	return nil
}

// str returns the first non-empty string found under keys. Numbers are
// rendered without exponent so numeric pincodes survive.
func (d document) str(keys ...string) string {
	for _, key := range keys {
		switch v := d[key].(type) {
		case string:
			if s := strings.TrimSpace(v); s != "" {
				return s
			}
		case float64:
			return strconv.FormatFloat(v, 'f', -1, 64)
		case json.Number:
			return v.String()
		}
	}
	return ""
}

// list returns a list under key, accepting a JSON array or a comma separated string.
func (d document) list(key string) []string {
	out := []string{}
	switch v := d[key].(type) {
	case []any:
		for _, item := range v {
			if s := strings.TrimSpace(fmt.Sprint(item)); s != "" && item != nil {
				out = append(out, s)
			}
		}
	case string:
		for _, part := range strings.Split(v, ",") {
			if s := strings.TrimSpace(part); s != "" {
				out = append(out, s)
			}
		}
	}
	return out
}

// number coerces a string or JSON number to float64, returning 0 when it
// cannot be parsed.
func (d document) number(key string) float64 {
	switch v := d[key].(type) {
	case float64:
		return v
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return 0
		}
		return f
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0
		}
		return f
	}
	return 0
}
