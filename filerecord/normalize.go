package filerecord

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/samber/lo"
	"github.com/spf13/cast"
)

// rawRecord resolves attributes from an untyped snapshot.
// Every lookup takes the snake_case key first, then the camelCase key.
type rawRecord map[string]any

func (r rawRecord) pick(snake, camel string) (any, bool) {
	for _, k := range []string{snake, camel} {
		if v, ok := r[k]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

func (r rawRecord) str(snake, camel string) string {
	return lo.FromPtr(r.optStr(snake, camel))
}

func (r rawRecord) optStr(snake, camel string) *string {
	v, ok := r.pick(snake, camel)
	if !ok {
		return nil
	}
	if p, isPtr := v.(*string); isPtr {
		if p == nil {
			return nil
		}
		return lo.ToPtr(*p)
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return nil
	}
	return &s
}

func (r rawRecord) size(snake, camel string) *int64 {
	v, ok := r.pick(snake, camel)
	if !ok {
		return nil
	}
	if p, isPtr := v.(*int64); isPtr {
		if p == nil {
			return nil
		}
		v = *p
	}
	n, err := cast.ToInt64E(v)
	if err != nil || n < 0 {
		return nil
	}
	return &n
}

func (r rawRecord) time(snake, camel string) *time.Time {
	v, ok := r.pick(snake, camel)
	if !ok {
		return nil
	}
	if p, isPtr := v.(*time.Time); isPtr {
		if p == nil {
			return nil
		}
		v = *p
	}
	t, err := cast.ToTimeE(v)
	if err != nil || t.IsZero() {
		return nil
	}
	return &t
}

func (r rawRecord) tags(snake, camel string) []string {
	v, ok := r.pick(snake, camel)
	if !ok {
		return []string{}
	}

	var out []string
	switch val := v.(type) {
	case []string:
		out = val
	case []any:
		out = cast.ToStringSlice(val)
	case string:
		// JSON columns come back as text.
		if err := json.Unmarshal([]byte(strings.TrimSpace(val)), &out); err != nil {
			return []string{}
		}
	default:
		return []string{}
	}

	if out == nil {
		return []string{}
	}
	return append([]string{}, out...)
}
