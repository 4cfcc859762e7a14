// FILE: lixenwraith/envconfig/persist.go
package envconfig

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// Pair is one KEY=VALUE assignment to persist
type Pair struct {
	Key   string
	Value any
}

// EncodeValue renders v as the right-hand side of a KEY=VALUE line.
// Strings holding both quote characters become JSON strings; strings holding
// one kind of quote are wrapped in the other; anything else is written raw,
// spaces included.
func EncodeValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return encodeString(val)
	case bool:
		return strconv.FormatBool(val)
	case float64:
		return formatNumber(val)
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(rv.Uint(), 10)
	case reflect.Float32:
		return formatNumber(rv.Float())
	case reflect.String:
		return encodeString(rv.String())
	}
	return encodeString(fmt.Sprint(v))
}

func encodeString(s string) string {
	hasDouble := strings.Contains(s, `"`)
	hasSingle := strings.Contains(s, `'`)

	switch {
	case hasDouble && hasSingle:
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetEscapeHTML(false)
		// Encoding a string cannot fail
		_ = enc.Encode(s)
		return strings.TrimSuffix(buf.String(), "\n")
	case hasDouble:
		return "'" + s + "'"
	case hasSingle:
		return `"` + s + `"`
	default:
		return s
	}
}

// DecodeValue reverses EncodeValue for a single value. A double-quoted value
// holding an escaped quote is JSON-decoded; any other quoted value loses its
// surrounding quotes and keeps its inner text as is. Raw values are returned
// trimmed, so DecodeValue(EncodeValue(s)) == s holds for single-line strings
// without leading or trailing whitespace.
func DecodeValue(s string) string {
	s = strings.TrimSpace(s)
	if len(s) < 2 {
		return s
	}

	first, last := s[0], s[len(s)-1]
	switch {
	case first == '"' && last == '"':
		inner := s[1 : len(s)-1]
		// Only values holding both quote kinds are written as JSON
		if strings.Contains(inner, `"`) {
			var unquoted string
			if err := json.Unmarshal([]byte(s), &unquoted); err == nil {
				return unquoted
			}
		}
		return inner
	case first == '\'' && last == '\'':
		return s[1 : len(s)-1]
	}
	return s
}

// Merge writes pairs into the .env text existing and returns the result.
// A key already present keeps its line (the last one when it appears more
// than once); new keys are appended in the order given. Every other line is
// left as it was, except that CRLF endings become LF. Non-empty output ends
// with exactly one newline.
func Merge(existing string, pairs []Pair) string {
	lines := splitLines(existing)

	for _, p := range pairs {
		line := p.Key + "=" + EncodeValue(p.Value)
		if idx := lastAssignment(lines, p.Key); idx >= 0 {
			lines[idx] = line
		} else {
			lines = append(lines, line)
		}
	}

	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}

// AppendText renders pairs as KEY=VALUE lines without looking at any
// existing content.
func AppendText(pairs []Pair) string {
	var b strings.Builder
	for _, p := range pairs {
		b.WriteString(p.Key)
		b.WriteByte('=')
		b.WriteString(EncodeValue(p.Value))
		b.WriteByte('\n')
	}
	return b.String()
}

// splitLines breaks text into lines, dropping one leading blank line and any
// trailing blank lines. CRLF endings are read as LF.
func splitLines(text string) []string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	if len(lines) > 0 && strings.TrimSpace(lines[0]) == "" {
		lines = lines[1:]
	}
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// lastAssignment returns the index of the last line assigning key, or -1.
func lastAssignment(lines []string, key string) int {
	prefix := key + "="
	for i := len(lines) - 1; i >= 0; i-- {
		if strings.HasPrefix(strings.TrimSpace(lines[i]), prefix) {
			return i
		}
	}
	return -1
}
