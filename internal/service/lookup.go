package service

import (
	"errors"

	"digiwallet/internal/apperror"
	"digiwallet/internal/store"
)

// notFoundOr maps store.ErrNotFound to a NotFound error naming the entity and
// id; anything else becomes Internal.
func notFoundOr(op, entity string, id any, err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return apperror.NewNotFound(op, entity, id)
	}
	return apperror.Wrap(op, err)
}
