package anonym

import "math"

// Kind identifies the payload type carried by a Column.
type Kind string

const (
	KindString Kind = "string"
	KindNumber Kind = "number"
	KindFloat  Kind = "float"
	KindChar   Kind = "char"
	KindBool   Kind = "bool"
	KindNull   Kind = "null"
)

// Column is a single tabular value tagged with its column name.
//
// The set of variants is closed: only this package can implement Column.
// Pointers to a variant also satisfy Column and are treated as the value they
// point to. Transformers must fall through to the original value for any
// variant they do not understand.
type Column interface {
	// ColumnName returns the name of the column the value was read from.
	ColumnName() string

	// Kind reports the payload type.
	Kind() Kind

	isColumn()
}

// StringValue is a text payload.
type StringValue struct {
	Name  string
	Value string
}

// NumberValue is an integer payload.
type NumberValue struct {
	Name  string
	Value int64
}

// FloatValue is a floating point payload.
type FloatValue struct {
	Name  string
	Value float64
}

// CharValue is a single character payload.
type CharValue struct {
	Name  string
	Value rune
}

// BoolValue is a boolean payload.
type BoolValue struct {
	Name  string
	Value bool
}

// NullValue marks a column with no value.
type NullValue struct {
	Name string
}

func (c StringValue) ColumnName() string { return c.Name }
func (c NumberValue) ColumnName() string { return c.Name }
func (c FloatValue) ColumnName() string  { return c.Name }
func (c CharValue) ColumnName() string   { return c.Name }
func (c BoolValue) ColumnName() string   { return c.Name }
func (c NullValue) ColumnName() string   { return c.Name }

func (StringValue) Kind() Kind { return KindString }
func (NumberValue) Kind() Kind { return KindNumber }
func (FloatValue) Kind() Kind  { return KindFloat }
func (CharValue) Kind() Kind   { return KindChar }
func (BoolValue) Kind() Kind   { return KindBool }
func (NullValue) Kind() Kind   { return KindNull }

func (StringValue) isColumn() {}
func (NumberValue) isColumn() {}
func (FloatValue) isColumn()  {}
func (CharValue) isColumn()   {}
func (BoolValue) isColumn()   {}
func (NullValue) isColumn()   {}

// deref returns the value variant behind a pointer variant. Value receivers
// let *StringValue and friends satisfy Column too, so every consumer goes
// through deref before switching on the concrete type. Nil pointers yield nil.
func deref(c Column) Column {
	switch v := c.(type) {
	case *StringValue:
		if v != nil {
			return *v
		}
	case *NumberValue:
		if v != nil {
			return *v
		}
	case *FloatValue:
		if v != nil {
			return *v
		}
	case *CharValue:
		if v != nil {
			return *v
		}
	case *BoolValue:
		if v != nil {
			return *v
		}
	case *NullValue:
		if v != nil {
			return *v
		}
	default:
		return c
	}
	return nil
}

// stringValue returns c as a StringValue, following pointer variants.
func stringValue(c Column) (StringValue, bool) {
	s, ok := deref(c).(StringValue)
	return s, ok
}

// StringOf returns the payload of a StringValue or *StringValue.
func StringOf(c Column) (string, bool) {
	if s, ok := stringValue(c); ok {
		return s.Value, true
	}
	return "", false
}

// ColumnFromAny builds a Column from a decoded scalar.
// Integral floats (as produced by encoding/json) become NumberValue.
// Returns false for maps, slices and other non-scalar values.
func ColumnFromAny(name string, v any) (Column, bool) {
	switch val := v.(type) {
	case nil:
		return NullValue{Name: name}, true
	case string:
		return StringValue{Name: name, Value: val}, true
	case bool:
		return BoolValue{Name: name, Value: val}, true
	case int:
		return NumberValue{Name: name, Value: int64(val)}, true
	case int8:
		return NumberValue{Name: name, Value: int64(val)}, true
	case int16:
		return NumberValue{Name: name, Value: int64(val)}, true
	case int32:
		return NumberValue{Name: name, Value: int64(val)}, true
	case int64:
		return NumberValue{Name: name, Value: val}, true
	case uint:
		if uint64(val) > math.MaxInt64 {
			return FloatValue{Name: name, Value: float64(val)}, true
		}
		return NumberValue{Name: name, Value: int64(val)}, true
	case uint8:
		return NumberValue{Name: name, Value: int64(val)}, true
	case uint16:
		return NumberValue{Name: name, Value: int64(val)}, true
	case uint32:
		return NumberValue{Name: name, Value: int64(val)}, true
	case uint64:
		if val > math.MaxInt64 {
			return FloatValue{Name: name, Value: float64(val)}, true
		}
		return NumberValue{Name: name, Value: int64(val)}, true
	case float32:
		return floatColumn(name, float64(val)), true
	case float64:
		return floatColumn(name, val), true
	default:
		return nil, false
	}
}

func floatColumn(name string, f float64) Column {
	if f == math.Trunc(f) && f >= math.MinInt64 && f < math.MaxInt64 {
		return NumberValue{Name: name, Value: int64(f)}
	}
	return FloatValue{Name: name, Value: f}
}

// ColumnValue returns the payload of c as a plain Go value.
// CharValue is returned as a one-character string.
func ColumnValue(c Column) any {
	switch val := deref(c).(type) {
	case StringValue:
		return val.Value
	case NumberValue:
		return val.Value
	case FloatValue:
		return val.Value
	case CharValue:
		return string(val.Value)
	case BoolValue:
		return val.Value
	default:
		return nil
	}
}
