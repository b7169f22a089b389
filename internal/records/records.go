// Package records converts the raw JSON emitted by the container runtime
// into normalized, display-ready records.
package records

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/dps-tool/dps/internal/fields"
)

// Raw is one decoded JSON object from `docker ps --format json`. Its schema
// is not guaranteed stable across runtime versions; keys may be absent.
type Raw map[string]any

// Normalized maps every canonical field to a display-ready string. All
// canonical fields are always present, with an empty string when the source
// lacked them. Values are never truncated here; truncation is a render-time
// concern so filters always see full values.
type Normalized map[fields.Name]string

// DecodeList parses the runtime's stdout into raw records. The usual format
// is one JSON object per line; a single JSON array is accepted too since
// some runtimes emit that instead.
func DecodeList(data []byte) ([]Raw, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, nil
	}

	if trimmed[0] == '[' {
		var raws []Raw
		if err := json.Unmarshal(trimmed, &raws); err != nil {
			return nil, fmt.Errorf("parsing container list JSON: %w", err)
		}
		return raws, nil
	}

	var raws []Raw
	scanner := bufio.NewScanner(bytes.NewReader(trimmed))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var raw Raw
		if err := json.Unmarshal([]byte(line), &raw); err != nil {
			return nil, fmt.Errorf("parsing container JSON line %q: %w", line, err)
		}
		raws = append(raws, raw)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading container JSON output: %w", err)
	}
	return raws, nil
}

// Normalize converts one raw record into its canonical form. It never fails:
// missing or malformed keys degrade to empty fields. Keys are probed in a
// fixed order (canonical key first, then aliases) so the result does not
// depend on raw map iteration order.
func Normalize(raw Raw) Normalized {
	n := make(Normalized, len(fields.Ordered))
	for _, f := range fields.Ordered {
		n[f.Name] = valueFor(raw, f)
	}
	if n[fields.Health] == "" {
		n[fields.Health] = healthFromStatus(n[fields.Status])
	}
	return n
}

func valueFor(raw Raw, f fields.Field) string {
	keys := append([]string{string(f.Name)}, f.Aliases...)
	for _, k := range keys {
		v, ok := raw[k]
		if !ok {
			continue
		}
		if s := stringify(v); s != "" {
			return s
		}
	}
	return ""
}

// stringify renders a scalar or shallow nested value for display. Nested
// structures appear when the runtime emits objects (for example a health
// sub-structure carrying a Status key) instead of flat strings.
func stringify(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case float64:
		if val == float64(int64(val)) {
			return strconv.FormatInt(int64(val), 10)
		}
		return strconv.FormatFloat(val, 'f', -1, 64)
	case json.Number:
		return val.String()
	case map[string]any:
		// A status sub-structure reports its state under "Status".
		if s, ok := val["Status"].(string); ok {
			return s
		}
		pairs := make([]string, 0, len(val))
		for k, inner := range val {
			pairs = append(pairs, k+"="+stringify(inner))
		}
		sort.Strings(pairs)
		return strings.Join(pairs, ",")
	case []any:
		parts := make([]string, 0, len(val))
		for _, inner := range val {
			if s := stringify(inner); s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, ",")
	default:
		return fmt.Sprintf("%v", val)
	}
}

// healthFromStatus extracts a health state from parenthesized status text
// such as "Up 3 hours (healthy)" or "Up 2 seconds (health: starting)".
func healthFromStatus(status string) string {
	open := strings.Index(status, "(")
	if open < 0 {
		return ""
	}
	length := strings.Index(status[open:], ")")
	if length < 0 {
		return ""
	}
	inner := strings.ToLower(status[open+1 : open+length])
	switch {
	case strings.Contains(inner, "unhealthy"):
		return "unhealthy"
	case strings.Contains(inner, "healthy"):
		return "healthy"
	case strings.Contains(inner, "starting"):
		return "starting"
	}
	return ""
}
