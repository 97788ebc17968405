// Package dashboard turns the polled registration list into what the dashboard shows: summary
// statistics, formatted cells, and the detail view.
package dashboard

import (
	"math"
	"strconv"
	"strings"
)

// Display renders a scalar field. Zero and false show literally, nil and "" show nothing, anything
// else shows as its string form.
func Display(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case float64:
		if t == 0 {
			return "0"
		}
	case bool:
		if !t {
			return "false"
		}
	}
	return stringify(v)
}

// FormatSkills joins a list with ", ". Non-list values render in string form; missing or empty
// values render as "".
func FormatSkills(v interface{}) string {
	if !truthy(v) {
		return ""
	}
	items, ok := v.([]interface{})
	if !ok {
		return stringify(v)
	}
	parts := make([]string, len(items))
	for i, it := range items {
		parts[i] = stringify(it)
	}
	return strings.Join(parts, ", ")
}

// ParseInt reads a leading integer the way a browser's parseInt does: leading whitespace and a sign
// are allowed, a 0x prefix switches to hex, and parsing stops at the first non-digit. ok is false
// when no digits were found.
func ParseInt(v interface{}) (n float64, ok bool) {
	s := strings.TrimLeft(stringify(v), " \t\n\r\v\f")
	sign := 1.0
	if s != "" && (s[0] == '+' || s[0] == '-') {
		if s[0] == '-' {
			sign = -1
		}
		s = s[1:]
	}
	base := 10.0
	if len(s) > 1 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		base = 16
		s = s[2:]
	}
	for _, r := range s {
		d := digit(r)
		if d < 0 || float64(d) >= base {
			break
		}
		n = n*base + float64(d)
		ok = true
	}
	return sign * n, ok
}

// Round rounds half up, matching Math.round.
func Round(x float64) float64 {
	return math.Floor(x + 0.5)
}

func digit(r rune) int {
	switch {
	case r >= '0' && r <= '9':
		return int(r - '0')
	case r >= 'a' && r <= 'f':
		return int(r-'a') + 10
	case r >= 'A' && r <= 'F':
		return int(r-'A') + 10
	}
	return -1
}

// toNumber converts like Number(v); NaN becomes 0.
func toNumber(v interface{}) float64 {
	switch t := v.(type) {
	case float64:
		return t
	case bool:
		if t {
			return 1
		}
		return 0
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return 0
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(f) {
			return 0
		}
		return f
	}
	return 0
}

func truthy(v interface{}) bool {
	switch t := v.(type) {
	case nil:
		return false
	case string:
		return t != ""
	case float64:
		return t != 0 && !math.IsNaN(t)
	case bool:
		return t
	}
	return true
}

// stringify renders decoded JSON values the way String(v) would.
func stringify(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case float64:
		return formatNumber(t)
	case int:
		return strconv.Itoa(t)
	case []interface{}:
		parts := make([]string, len(t))
		for i, it := range t {
			parts[i] = stringify(it)
		}
		return strings.Join(parts, ",")
	case []string:
		return strings.Join(t, ",")
	case map[string]interface{}:
		return "[object Object]"
	}
	return ""
}

// formatNumber writes f as String(f) would: plain decimals, with exponent form ("1e-7", "1.5e+21")
// outside [1e-6, 1e21).
func formatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == 0:
		return "0"
	}
	if a := math.Abs(f); a >= 1e21 || a < 1e-6 {
		mant, exp, _ := strings.Cut(strconv.FormatFloat(f, 'e', -1, 64), "e")
		return mant + "e" + exp[:1] + strings.TrimLeft(exp[1:], "0")
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// clampInt converts f to int, saturating at the int range. NaN becomes 0.
func clampInt(f float64) int {
	switch {
	case math.IsNaN(f):
		return 0
	case f >= float64(math.MaxInt):
		return math.MaxInt
	case f <= float64(math.MinInt):
		return math.MinInt
	}
	return int(f)
}
