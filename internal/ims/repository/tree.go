package repository

import (
	"context"
	"fmt"

	"github.com/labforge/ims/internal/ims/apperr"
	"github.com/labforge/ims/internal/ims/entity"
)

// BreadcrumbsTrailMaxLength caps how many ancestors a breadcrumb trail
// reports before it is truncated.
const BreadcrumbsTrailMaxLength = 5

// maxTreeDepth bounds ancestor walks. The trees are shallow in
// practice; hitting this limit means the parent pointers are corrupt.
const maxTreeDepth = 100

// treeNode is the slice of a tree entity the ancestor walks need.
type treeNode struct {
	ID       string
	Name     string
	ParentID *string
}

// nodeFetcher loads a tree node by ID, returning nil when no such
// record exists. Both catalogue categories and systems provide one, so
// the breadcrumb and move-check logic is shared between them.
type nodeFetcher func(ctx context.Context, id string) (*treeNode, error)

// computeBreadcrumbs walks the parent pointers of the entity with the
// given ID, collecting up to BreadcrumbsTrailMaxLength ancestors from
// nearest parent to root. FullTrail is false when the walk stopped at
// the cap before reaching the root. A parent pointer that does not
// resolve to a record is a DatabaseIntegrityError.
func computeBreadcrumbs(ctx context.Context, fetch nodeFetcher, id, table string) (*entity.Breadcrumbs, error) {
	node, err := fetch(ctx, id)
	if err != nil {
		return nil, err
	}
	if node == nil {
		return nil, &apperr.MissingRecordError{
			Detail: fmt.Sprintf("Entity with the ID '%s' was not found in the collection '%s'", id, table),
			Entity: table,
		}
	}

	breadcrumbs := &entity.Breadcrumbs{Trail: []entity.BreadcrumbEntry{}, FullTrail: true}
	parentID := node.ParentID
	for i := 0; parentID != nil; i++ {
		if i >= BreadcrumbsTrailMaxLength {
			breadcrumbs.FullTrail = false
			break
		}
		parent, err := fetch(ctx, *parentID)
		if err != nil {
			return nil, err
		}
		if parent == nil {
			return nil, &apperr.DatabaseIntegrityError{
				Detail: fmt.Sprintf(
					"Unable to locate full trail for entity with id '%s' from the database collection '%s'",
					id, table,
				),
			}
		}
		breadcrumbs.Trail = append(breadcrumbs.Trail, entity.BreadcrumbEntry{ID: parent.ID, Name: parent.Name})
		parentID = parent.ParentID
	}
	return breadcrumbs, nil
}

// isValidMove reports whether moving the entity under the destination
// keeps the tree acyclic. It walks up from the destination; finding the
// entity on the way (or the destination being the entity itself) makes
// the move invalid. A destination that does not resolve is reported as
// invalid and left to the caller's existence checks to explain.
func isValidMove(ctx context.Context, fetch nodeFetcher, entityID, destinationID string) (bool, error) {
	currentID := destinationID
	for depth := 0; depth < maxTreeDepth; depth++ {
		if currentID == entityID {
			return false, nil
		}
		node, err := fetch(ctx, currentID)
		if err != nil {
			return false, err
		}
		if node == nil {
			return false, nil
		}
		if node.ParentID == nil {
			return true, nil
		}
		currentID = *node.ParentID
	}
	return false, nil
}
