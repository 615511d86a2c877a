package service

import (
	"fmt"
	"strings"

	"github.com/labforge/ims/internal/ims/apperr"
	"github.com/labforge/ims/internal/ims/entity"
)

// SuppliedProperty is a property value as supplied on a catalogue item
// or item request. Only the definition ID and the value matter; name
// and unit are taken from the definition.
type SuppliedProperty struct {
	ID    string       `json:"id"`
	Value entity.Value `json:"value"`
}

// processProperties validates the supplied property values against the
// category's definitions and returns the property values to store, one
// per definition in definition order. Supplied entries whose ID
// matches no definition are dropped. A definition with no supplied
// entry resolves to null, which only mandatory definitions reject.
//
// The check order is mandatory, then allowed values, then type; null
// values for non-mandatory definitions skip the last two.
func processProperties(defined entity.PropertyDefinitionList, supplied []SuppliedProperty) (entity.PropertyValueList, error) {
	properties := entity.PropertyValueList{}
	if len(defined) == 0 {
		return properties, nil
	}

	suppliedByID := make(map[string]entity.Value, len(supplied))
	for _, sp := range supplied {
		suppliedByID[sp.ID] = sp.Value
	}

	for _, definition := range defined {
		value, ok := suppliedByID[definition.ID]
		if !ok {
			value = entity.NullValue()
		}

		if definition.Mandatory && value.IsNull() {
			return nil, &apperr.MissingMandatoryPropertyError{
				Detail: fmt.Sprintf("Missing mandatory property with ID: '%s'", definition.ID),
			}
		}

		if !value.IsNull() {
			if definition.AllowedValues != nil && !definition.AllowedValues.Contains(value) {
				return nil, &apperr.InvalidPropertyTypeError{
					Detail: fmt.Sprintf("Invalid value for property with ID '%s'. Expected one of %s.",
						definition.ID, formatAllowedValues(definition.AllowedValues)),
				}
			}
			if !value.MatchesType(definition.Type) {
				return nil, &apperr.InvalidPropertyTypeError{
					Detail: fmt.Sprintf("Invalid value type for property with ID '%s'. Expected type: %s.",
						definition.ID, definition.Type),
				}
			}
		}

		properties = append(properties, entity.PropertyValue{
			ID:     definition.ID,
			Name:   definition.Name,
			Value:  value,
			UnitID: definition.UnitID,
			Unit:   definition.Unit,
		})
	}
	return properties, nil
}

func formatAllowedValues(allowed *entity.AllowedValues) string {
	rendered := make([]string, len(allowed.Values))
	for i, v := range allowed.Values {
		rendered[i] = v.String()
	}
	return strings.Join(rendered, ", ")
}

// checkDuplicatePropertyNames rejects property name lists that declare
// the same name twice, comparing case-insensitively.
func checkDuplicatePropertyNames(names []string) error {
	seen := make(map[string]struct{}, len(names))
	for _, name := range names {
		key := strings.ToLower(name)
		if _, ok := seen[key]; ok {
			return &apperr.DuplicatePropertyNameError{
				Detail: fmt.Sprintf("Duplicate property name: %s", name),
			}
		}
		seen[key] = struct{}{}
	}
	return nil
}

// generateCode derives the uniqueness code from a display name.
func generateCode(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "-")
}
