package record

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// BaseType is the closed set of field base types a pattern can carry.
// The traversal engine itself is type-agnostic; BaseType drives value
// validation at the builder boundary, text parsing, rendering, and the
// Go types emitted by the code generator. Adding a BaseType requires
// extending normalize, Parse, GoType, and ParseBaseType together.
type BaseType int

const (
	TypeString BaseType = iota
	TypeInt
	TypeFloat
	TypeBool
	TypeTime
	TypeBytes
)

// baseTypeNames maps BaseType to its canonical declaration name.
var baseTypeNames = map[BaseType]string{
	TypeString: "string",
	TypeInt:    "int",
	TypeFloat:  "float",
	TypeBool:   "bool",
	TypeTime:   "time",
	TypeBytes:  "bytes",
}

// String returns the declaration name of the base type.
func (t BaseType) String() string {
	if name, ok := baseTypeNames[t]; ok {
		return name
	}
	return "unknown"
}

// GoType returns the Go type the code generator emits for values of
// this base type.
func (t BaseType) GoType() string {
	switch t {
	case TypeString:
		return "string"
	case TypeInt:
		return "int64"
	case TypeFloat:
		return "float64"
	case TypeBool:
		return "bool"
	case TypeTime:
		return "time.Time"
	case TypeBytes:
		return "[]byte"
	default:
		return "any"
	}
}

// ParseBaseType resolves a declaration name (as used in pattern files
// and the REPL) to a BaseType.
func ParseBaseType(name string) (BaseType, error) {
	for t, n := range baseTypeNames {
		if n == strings.ToLower(strings.TrimSpace(name)) {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown base type %q", name)
}

// Parse converts the textual form of a value into its canonical
// in-memory form. Time values use RFC 3339.
func (t BaseType) Parse(s string) (any, error) {
	switch t {
	case TypeString:
		return s, nil
	case TypeInt:
		v, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parse int %q: %w", s, err)
		}
		return v, nil
	case TypeFloat:
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, fmt.Errorf("parse float %q: %w", s, err)
		}
		return v, nil
	case TypeBool:
		v, err := strconv.ParseBool(s)
		if err != nil {
			return nil, fmt.Errorf("parse bool %q: %w", s, err)
		}
		return v, nil
	case TypeTime:
		v, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return nil, fmt.Errorf("parse time %q: %w", s, err)
		}
		return v, nil
	case TypeBytes:
		return []byte(s), nil
	default:
		return nil, fmt.Errorf("unknown base type %d", t)
	}
}

// normalize validates v against the base type and converts it to the
// canonical in-memory form (ints widen to int64, floats to float64).
func (t BaseType) normalize(v any) (any, error) {
	switch t {
	case TypeString:
		if s, ok := v.(string); ok {
			return s, nil
		}
	case TypeInt:
		switch n := v.(type) {
		case int:
			return int64(n), nil
		case int32:
			return int64(n), nil
		case int64:
			return n, nil
		case uint32:
			return int64(n), nil
		}
	case TypeFloat:
		switch n := v.(type) {
		case float32:
			return float64(n), nil
		case float64:
			return n, nil
		case int:
			return float64(n), nil
		}
	case TypeBool:
		if b, ok := v.(bool); ok {
			return b, nil
		}
	case TypeTime:
		if ts, ok := v.(time.Time); ok {
			return ts, nil
		}
	case TypeBytes:
		switch b := v.(type) {
		case []byte:
			cp := make([]byte, len(b))
			copy(cp, b)
			return cp, nil
		case string:
			return []byte(b), nil
		}
	default:
		return nil, fmt.Errorf("unknown base type %d", t)
	}
	return nil, fmt.Errorf("%w: %T is not a valid %s value", ErrTypeMismatch, v, t)
}
