package entity

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Supported property value types.
const (
	PropertyTypeString  = "string"
	PropertyTypeNumber  = "number"
	PropertyTypeBoolean = "boolean"
)

// AllowedValuesTypeList is the only supported allowed-values shape: a
// closed list of permitted values.
const AllowedValuesTypeList = "list"

// AllowedValues restricts a property to a fixed set of values.
type AllowedValues struct {
	Type   string  `json:"type"`
	Values []Value `json:"values"`
}

// Contains reports whether v is one of the allowed values.
func (a *AllowedValues) Contains(v Value) bool {
	for _, av := range a.Values {
		if av.Equal(v) {
			return true
		}
	}
	return false
}

// Equal compares two allowed-values definitions, treating nil as equal
// to nil only.
func (a *AllowedValues) Equal(other *AllowedValues) bool {
	if a == nil || other == nil {
		return a == other
	}
	if a.Type != other.Type || len(a.Values) != len(other.Values) {
		return false
	}
	for i := range a.Values {
		if !a.Values[i].Equal(other.Values[i]) {
			return false
		}
	}
	return true
}

// PropertyDefinition declares a property on a catalogue category.
type PropertyDefinition struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	Type          string         `json:"type"`
	UnitID        *string        `json:"unit_id"`
	Unit          *string        `json:"unit"`
	Mandatory     bool           `json:"mandatory"`
	AllowedValues *AllowedValues `json:"allowed_values"`
}

// EqualWithoutID reports whether two definitions declare the same
// property, ignoring their IDs. Used when moving catalogue items
// between categories to decide whether the target properties match.
func (d PropertyDefinition) EqualWithoutID(other PropertyDefinition) bool {
	if d.Name != other.Name || d.Type != other.Type || d.Mandatory != other.Mandatory {
		return false
	}
	if !equalStringPtr(d.Unit, other.Unit) {
		return false
	}
	return d.AllowedValues.Equal(other.AllowedValues)
}

func equalStringPtr(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// PropertyValue is a property as stored on a catalogue item or item,
// with the definition's name and unit denormalized alongside the value.
type PropertyValue struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Value  Value   `json:"value"`
	UnitID *string `json:"unit_id"`
	Unit   *string `json:"unit"`
}

// PropertyDefinitionList stores property definitions as a JSONB column.
type PropertyDefinitionList []PropertyDefinition

func (l PropertyDefinitionList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	return json.Marshal(l)
}

func (l *PropertyDefinitionList) Scan(value interface{}) error {
	if value == nil {
		*l = PropertyDefinitionList{}
		return nil
	}
	b, err := jsonbBytes(value)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, l)
}

// PropertyValueList stores property values as a JSONB column.
type PropertyValueList []PropertyValue

func (l PropertyValueList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	return json.Marshal(l)
}

func (l *PropertyValueList) Scan(value interface{}) error {
	if value == nil {
		*l = PropertyValueList{}
		return nil
	}
	b, err := jsonbBytes(value)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, l)
}

func jsonbBytes(value interface{}) ([]byte, error) {
	switch v := value.(type) {
	case []byte:
		return v, nil
	case string:
		return []byte(v), nil
	default:
		return nil, fmt.Errorf("unsupported jsonb source type %T", value)
	}
}
