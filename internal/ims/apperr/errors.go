// Package apperr defines the typed errors raised by the service layer.
// Handlers match on these with errors.As to pick the HTTP status code.
package apperr

import "fmt"

// MissingRecordError indicates a database record could not be found,
// either by its own ID or through a reference from another entity.
type MissingRecordError struct {
	Detail string
	// Entity names the kind of record that was missing, e.g.
	// "catalogue_item". Used to decide between 404 and 422 when the
	// missing record was referenced by the request body.
	Entity string
}

func (e *MissingRecordError) Error() string { return e.Detail }

// InvalidIDError indicates a supplied ID is not a valid identifier.
type InvalidIDError struct {
	Detail string
}

func (e *InvalidIDError) Error() string { return e.Detail }

// DuplicateRecordError indicates a record already exists with the same
// identifying fields, e.g. a sibling with the same code.
type DuplicateRecordError struct {
	Detail string
	Entity string
}

func (e *DuplicateRecordError) Error() string { return e.Detail }

// LeafCatalogueCategoryError indicates an attempt to add a child
// category to a leaf catalogue category.
type LeafCatalogueCategoryError struct {
	Detail string
}

func (e *LeafCatalogueCategoryError) Error() string { return e.Detail }

// NonLeafCatalogueCategoryError indicates an attempt to use a non-leaf
// catalogue category where a leaf is required, e.g. placing a catalogue
// item or defining properties.
type NonLeafCatalogueCategoryError struct {
	Detail string
}

func (e *NonLeafCatalogueCategoryError) Error() string { return e.Detail }

// DuplicatePropertyNameError indicates a property name clashes with an
// existing property on the same catalogue category.
type DuplicatePropertyNameError struct {
	Detail string
}

func (e *DuplicatePropertyNameError) Error() string { return e.Detail }

// ChildElementsExistError indicates an entity with children cannot be
// deleted or have certain fields updated.
type ChildElementsExistError struct {
	Detail string
}

func (e *ChildElementsExistError) Error() string { return e.Detail }

// InvalidActionError indicates the requested change is not permitted,
// e.g. moving an entity beneath one of its own descendants.
type InvalidActionError struct {
	Detail string
}

func (e *InvalidActionError) Error() string { return e.Detail }

// InvalidPropertyTypeError indicates a supplied property value does not
// match the declared type or allowed values of its definition.
type InvalidPropertyTypeError struct {
	Detail string
}

func (e *InvalidPropertyTypeError) Error() string { return e.Detail }

// MissingMandatoryPropertyError indicates a mandatory property was not
// supplied, or was explicitly set to null.
type MissingMandatoryPropertyError struct {
	Detail string
}

func (e *MissingMandatoryPropertyError) Error() string { return e.Detail }

// PartOfCatalogueItemError indicates an entity is referenced by a
// catalogue item and cannot be deleted.
type PartOfCatalogueItemError struct {
	Detail string
}

func (e *PartOfCatalogueItemError) Error() string { return e.Detail }

// PartOfCatalogueCategoryError indicates an entity is referenced by a
// catalogue category and cannot be deleted.
type PartOfCatalogueCategoryError struct {
	Detail string
}

func (e *PartOfCatalogueCategoryError) Error() string { return e.Detail }

// PartOfItemError indicates an entity is referenced by an item and
// cannot be deleted.
type PartOfItemError struct {
	Detail string
}

func (e *PartOfItemError) Error() string { return e.Detail }

// DatabaseIntegrityError indicates stored data violates an invariant
// the service relies on, e.g. a dangling parent reference.
type DatabaseIntegrityError struct {
	Detail string
}

func (e *DatabaseIntegrityError) Error() string { return e.Detail }

// MissingRecord builds a MissingRecordError with the conventional
// "No <label> found with ID: <id>" message. The label doubles as the
// Entity used for status mapping.
func MissingRecord(label, id string) *MissingRecordError {
	return &MissingRecordError{
		Detail: fmt.Sprintf("No %s found with ID: %s", label, id),
		Entity: label,
	}
}
