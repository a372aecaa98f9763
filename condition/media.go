package condition

import (
	"math"
	"strconv"
	"strings"

	"github.com/AnatoleLucet/sigstyle/sig"
	"github.com/AnatoleLucet/sigstyle/style"
)

// MatchesMedia reports whether any query of the list matches the viewport.
// An empty list always matches.
func MatchesMedia(queries []style.MediaQuery, v Viewport, e *sig.Effect) bool {
	if len(queries) == 0 {
		return true
	}

	for _, q := range queries {
		if matchesMediaQuery(q, v, e) {
			return true
		}
	}

	return false
}

func matchesMediaQuery(q style.MediaQuery, v Viewport, e *sig.Effect) bool {
	matches := q.MediaType != "print"

	if matches {
		for _, f := range q.Features {
			if !matchesMediaFeature(f, v, e) {
				matches = false
				break
			}
		}
	}

	if q.Qualifier == "not" {
		return !matches
	}

	return matches
}

func matchesMediaFeature(f style.Feature, v Viewport, e *sig.Effect) bool {
	name, op := splitRange(f.Name, f.Operator)

	switch name {
	case "width", "height", "orientation", "aspect-ratio":
		return matchesSize(name, op, f.Value, v.Width(e), v.Height(e))

	case "resolution":
		want, ok := parseResolution(f.Value)
		return ok && compare(v.PixelRatio(e), op, want)

	case "prefers-color-scheme":
		want, _ := f.Value.(string)
		dark := v.IsDark(e)
		return (want == "dark" && dark) || (want == "light" && !dark)
	}

	return false
}

// matchesSize tests a width, height, orientation or aspect-ratio feature.
func matchesSize(name, op string, value any, width, height float64) bool {
	switch name {
	case "width", "inline-size":
		want, ok := parseLength(value)
		return ok && compare(width, op, want)

	case "height", "block-size":
		want, ok := parseLength(value)
		return ok && compare(height, op, want)

	case "orientation":
		want, _ := value.(string)
		if width > height {
			return want == "landscape"
		}
		return want == "portrait"

	case "aspect-ratio":
		want, ok := parseRatio(value)
		return ok && height > 0 && compare(width/height, op, want)
	}

	return false
}

// splitRange turns min-/max- prefixed features into plain features with a
// range operator.
func splitRange(name, op string) (string, string) {
	switch {
	case strings.HasPrefix(name, "min-"):
		return strings.TrimPrefix(name, "min-"), ">="
	case strings.HasPrefix(name, "max-"):
		return strings.TrimPrefix(name, "max-"), "<="
	case op == "":
		return name, "="
	}

	return name, op
}

func compare(actual float64, op string, want float64) bool {
	switch op {
	case ">":
		return actual > want
	case ">=":
		return actual >= want
	case "<":
		return actual < want
	case "<=":
		return actual <= want
	}

	return math.Abs(actual-want) < 1e-9
}

func parseNumber(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return f, err == nil
	}

	return 0, false
}

func parseLength(value any) (float64, bool) {
	if s, ok := value.(string); ok {
		value = strings.TrimSuffix(strings.TrimSpace(s), "px")
	}

	return parseNumber(value)
}

// parseResolution returns a resolution in dppx.
func parseResolution(value any) (float64, bool) {
	s, ok := value.(string)
	if !ok {
		return parseNumber(value)
	}

	s = strings.TrimSpace(s)
	switch {
	case strings.HasSuffix(s, "dppx"):
		return parseNumber(strings.TrimSuffix(s, "dppx"))
	case strings.HasSuffix(s, "dpi"):
		dpi, ok := parseNumber(strings.TrimSuffix(s, "dpi"))
		return dpi / 96, ok
	case strings.HasSuffix(s, "x"):
		return parseNumber(strings.TrimSuffix(s, "x"))
	}

	return parseNumber(s)
}

// parseRatio accepts 16/9, "16/9" or a plain number.
func parseRatio(value any) (float64, bool) {
	s, ok := value.(string)
	if !ok {
		return parseNumber(value)
	}

	num, den, found := strings.Cut(s, "/")
	if !found {
		return parseNumber(s)
	}

	n, ok1 := parseNumber(num)
	d, ok2 := parseNumber(den)
	if !ok1 || !ok2 || d == 0 {
		return 0, false
	}

	return n / d, true
}
