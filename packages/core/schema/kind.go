package schema

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Value kind of the entity field.
// Each kind has exactly one Go representation:
//   - Int: int64
//   - String: string
//   - Bool: bool
//   - Time: time.Time
//
// Nullable fields are represented by nil.
type Kind byte

const (
	Int Kind = 1 + iota
	String
	Bool
	Time
)

var kindToStrMap = map[Kind]string{
	Int:    "int",
	String: "string",
	Bool:   "bool",
	Time:   "time",
}

func (k Kind) String() string {
	if s, ok := kindToStrMap[k]; ok {
		return s
	}
	return "unknown"
}

func (k Kind) IsValid() bool {
	_, ok := kindToStrMap[k]
	return ok
}

var ErrNullValue = errors.New("null value")

// Converts raw value (usually decoded from JSON) into the representation of this kind.
func (k Kind) Coerce(v any) (any, error) {
	if v == nil {
		return nil, ErrNullValue
	}

	switch k {
	case Int:
		switch n := v.(type) {
		case int64:
			return n, nil
		case int:
			return int64(n), nil
		case int32:
			return int64(n), nil
		case float64:
			if n != math.Trunc(n) || math.IsInf(n, 0) || math.IsNaN(n) {
				return nil, fmt.Errorf("%v is not an integer", n)
			}
			// float64(math.MaxInt64) rounds up to 2^63, which is already out of range
			if n < math.MinInt64 || n >= math.MaxInt64 {
				return nil, fmt.Errorf("%v is out of int64 range", n)
			}
			return int64(n), nil
		case string:
			i, err := strconv.ParseInt(strings.TrimSpace(n), 10, 64)
			if err != nil {
				return nil, fmt.Errorf("%q is not an integer", n)
			}
			return i, nil
		}
	case String:
		if s, ok := v.(string); ok {
			return s, nil
		}
	case Bool:
		switch b := v.(type) {
		case bool:
			return b, nil
		case string:
			parsed, err := strconv.ParseBool(b)
			if err != nil {
				return nil, fmt.Errorf("%q is not a boolean", b)
			}
			return parsed, nil
		}
	case Time:
		switch t := v.(type) {
		case time.Time:
			return t, nil
		case string:
			parsed, err := time.Parse(time.RFC3339Nano, t)
			if err != nil {
				return nil, fmt.Errorf("%q is not a RFC 3339 timestamp", t)
			}
			return parsed, nil
		}
	default:
		return nil, fmt.Errorf("unknown kind %d", k)
	}

	return nil, fmt.Errorf("%v (%T) can't be used as %s", v, v, k)
}

// Reports whether v has a representation of this kind (or nil).
func (k Kind) Accepts(v any) bool {
	if v == nil {
		return true
	}

	switch k {
	case Int:
		_, ok := v.(int64)
		return ok
	case String:
		_, ok := v.(string)
		return ok
	case Bool:
		_, ok := v.(bool)
		return ok
	case Time:
		_, ok := v.(time.Time)
		return ok
	}

	return false
}

// Compares two values of this kind.
// Both values must be already coerced and non-nil.
func (k Kind) Compare(a any, b any) int {
	switch k {
	case Int:
		x, y := a.(int64), b.(int64)
		switch {
		case x < y:
			return -1
		case x > y:
			return 1
		}
		return 0
	case String:
		return strings.Compare(a.(string), b.(string))
	case Bool:
		x, y := a.(bool), b.(bool)
		if x == y {
			return 0
		}
		if !x {
			return -1
		}
		return 1
	case Time:
		return a.(time.Time).Compare(b.(time.Time))
	}

	panic("compare: unknown kind " + k.String())
}
