package entity

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// ValueKind discriminates the JSON type carried by a Value.
type ValueKind uint8

const (
	KindNull ValueKind = iota
	KindString
	KindNumber
	KindBool
)

// Value holds a property value of one of the supported JSON types.
// Using a tagged variant instead of interface{} keeps type checks and
// equality explicit and avoids surprises from json.Unmarshal's float64
// vs string behaviour.
type Value struct {
	Kind ValueKind
	Str  string
	Num  float64
	Bool bool
}

func StringValue(s string) Value  { return Value{Kind: KindString, Str: s} }
func NumberValue(n float64) Value { return Value{Kind: KindNumber, Num: n} }
func BoolValue(b bool) Value      { return Value{Kind: KindBool, Bool: b} }
func NullValue() Value            { return Value{Kind: KindNull} }

func (v Value) IsNull() bool { return v.Kind == KindNull }

// MatchesType reports whether the value's kind corresponds to the given
// property type name ("string", "number" or "boolean"). Null never
// matches; callers treat null separately.
func (v Value) MatchesType(typ string) bool {
	switch v.Kind {
	case KindString:
		return typ == PropertyTypeString
	case KindNumber:
		return typ == PropertyTypeNumber
	case KindBool:
		return typ == PropertyTypeBoolean
	default:
		return false
	}
}

// Equal reports whether two values have the same kind and payload.
func (v Value) Equal(other Value) bool {
	if v.Kind != other.Kind {
		return false
	}
	switch v.Kind {
	case KindString:
		return v.Str == other.Str
	case KindNumber:
		return v.Num == other.Num
	case KindBool:
		return v.Bool == other.Bool
	default:
		return true
	}
}

// String renders the value the way it appears in error messages.
// Whole numbers render without a decimal point.
func (v Value) String() string {
	switch v.Kind {
	case KindString:
		return v.Str
	case KindNumber:
		return strconv.FormatFloat(v.Num, 'f', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.Bool)
	default:
		return "null"
	}
}

func (v Value) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case KindString:
		return json.Marshal(v.Str)
	case KindNumber:
		return json.Marshal(v.Num)
	case KindBool:
		return json.Marshal(v.Bool)
	default:
		return []byte("null"), nil
	}
}

func (v *Value) UnmarshalJSON(data []byte) error {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch t := raw.(type) {
	case nil:
		*v = NullValue()
	case string:
		*v = StringValue(t)
	case float64:
		*v = NumberValue(t)
	case bool:
		*v = BoolValue(t)
	default:
		return fmt.Errorf("unsupported property value type %T", raw)
	}
	return nil
}
