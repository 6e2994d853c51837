package store

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"
)

// Point is the first-class encoding for a `point` column: Postgres'
// `(x,y)` geometric type.
type Point struct {
	X, Y float64
}

func (p Point) String() string {
	return fmt.Sprintf("(%s,%s)", strconv.FormatFloat(p.X, 'g', -1, 64), strconv.FormatFloat(p.Y, 'g', -1, 64))
}

// ParsePoint parses the `(x,y)` textual form Postgres returns for a point
// column.
func ParsePoint(s string) (Point, error) {
	s = strings.TrimSpace(s)
	if len(s) < 2 || s[0] != '(' || s[len(s)-1] != ')' {
		return Point{}, fmt.Errorf("store: malformed point literal %q", s)
	}
	parts := strings.SplitN(s[1:len(s)-1], ",", 2)
	if len(parts) != 2 {
		return Point{}, fmt.Errorf("store: malformed point literal %q", s)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return Point{}, fmt.Errorf("store: malformed point literal %q: %w", s, err)
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return Point{}, fmt.Errorf("store: malformed point literal %q: %w", s, err)
	}
	return Point{X: x, Y: y}, nil
}

// Line is the first-class encoding for a `line` column: Postgres' `{a,b,c}`
// linear-equation type (ax + by + c = 0).
type Line struct {
	A, B, C float64
}

func (l Line) String() string {
	return fmt.Sprintf("{%s,%s,%s}",
		strconv.FormatFloat(l.A, 'g', -1, 64),
		strconv.FormatFloat(l.B, 'g', -1, 64),
		strconv.FormatFloat(l.C, 'g', -1, 64))
}

// ParseLine parses the `{a,b,c}` textual form Postgres returns for a line
// column.
func ParseLine(s string) (Line, error) {
	s = strings.TrimSpace(s)
	if len(s) < 2 || s[0] != '{' || s[len(s)-1] != '}' {
		return Line{}, fmt.Errorf("store: malformed line literal %q", s)
	}
	parts := strings.Split(s[1:len(s)-1], ",")
	if len(parts) != 3 {
		return Line{}, fmt.Errorf("store: malformed line literal %q", s)
	}
	vals := make([]float64, 3)
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return Line{}, fmt.Errorf("store: malformed line literal %q: %w", s, err)
		}
		vals[i] = v
	}
	return Line{A: vals[0], B: vals[1], C: vals[2]}, nil
}

// EncodeTextArray renders values as a Postgres-array-literal-like string,
// quoting every element and backslash-escaping embedded quotes/backslashes
// so the encoding round-trips arbitrary UTF-8 (open question 4).
func EncodeTextArray(values []string) string {
	escaper := strings.NewReplacer(`\`, `\\`, `"`, `\"`)
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = `"` + escaper.Replace(v) + `"`
	}
	return "{" + strings.Join(parts, ",") + "}"
}

// DecodeTextArray parses the format EncodeTextArray produces.
func DecodeTextArray(encoded string) ([]string, error) {
	s := strings.TrimSpace(encoded)
	if len(s) < 2 || s[0] != '{' || s[len(s)-1] != '}' {
		return nil, fmt.Errorf("store: malformed array literal %q", encoded)
	}
	body := s[1 : len(s)-1]
	if body == "" {
		return []string{}, nil
	}

	var values []string
	var cur strings.Builder
	inQuotes := false
	escaped := false
	for _, r := range body {
		switch {
		case escaped:
			cur.WriteRune(r)
			escaped = false
		case inQuotes && r == '\\':
			escaped = true
		case r == '"':
			inQuotes = !inQuotes
		case r == ',' && !inQuotes:
			values = append(values, cur.String())
			cur.Reset()
		default:
			cur.WriteRune(r)
		}
	}
	values = append(values, cur.String())
	return values, nil
}

// stripTrailingNULs implements the "text columns strip trailing NUL bytes
// on write/read" column semantic.
func stripTrailingNULs(s string) string {
	return strings.TrimRight(s, "\x00")
}

// EncodeValue converts a handler-supplied Go value into the representation
// written to the database for the given column kind. It is also where
// BigIntSerializationError and the text-column NUL-stripping rule are
// enforced.
func EncodeValue(kind ColumnKind, v any) (any, error) {
	if v == nil {
		return nil, nil
	}

	switch kind {
	case Text, Varchar, Char:
		if s, ok := v.(string); ok {
			return stripTrailingNULs(s), nil
		}
		return v, nil

	case BigInt:
		switch n := v.(type) {
		case *big.Int:
			return n.String(), nil
		case string:
			return n, nil
		default:
			return nil, fmt.Errorf("store: bigint column requires *big.Int or string, got %T", v)
		}

	case JSON:
		if containsBigInt(v) {
			return nil, &BigIntSerializationError{}
		}
		return v, nil

	case Array:
		if ss, ok := v.([]string); ok {
			return EncodeTextArray(ss), nil
		}
		return v, nil

	case Point:
		if p, ok := v.(Point); ok {
			return p.String(), nil
		}
		return v, nil

	case Line:
		if l, ok := v.(Line); ok {
			return l.String(), nil
		}
		return v, nil

	default:
		return v, nil
	}
}

// DecodeValue is EncodeValue's inverse for reads coming back from the
// database.
func DecodeValue(kind ColumnKind, v any) (any, error) {
	if v == nil {
		return nil, nil
	}

	switch kind {
	case Text, Varchar, Char:
		if s, ok := v.(string); ok {
			return stripTrailingNULs(s), nil
		}
		return v, nil

	case BigInt:
		s, ok := v.(string)
		if !ok {
			return v, nil
		}
		n, ok := new(big.Int).SetString(s, 10)
		if !ok {
			return nil, fmt.Errorf("store: bigint column: cannot parse %q", s)
		}
		return n, nil

	case Array:
		s, ok := v.(string)
		if !ok {
			return v, nil
		}
		return DecodeTextArray(s)

	case Point:
		s, ok := v.(string)
		if !ok {
			return v, nil
		}
		return ParsePoint(s)

	case Line:
		s, ok := v.(string)
		if !ok {
			return v, nil
		}
		return ParseLine(s)

	default:
		return v, nil
	}
}

// containsBigInt walks a JSON-bound value looking for a *big.Int anywhere
// in its structure, since encoding/json has no arbitrary-precision integer
// representation.
func containsBigInt(v any) bool {
	switch val := v.(type) {
	case *big.Int:
		return true
	case map[string]any:
		for _, inner := range val {
			if containsBigInt(inner) {
				return true
			}
		}
	case []any:
		for _, inner := range val {
			if containsBigInt(inner) {
				return true
			}
		}
	}
	return false
}
