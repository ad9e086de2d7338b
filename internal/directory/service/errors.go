package service

import (
	"errors"

	dErrors "orgdir/pkg/domain-errors"
	"orgdir/pkg/platform/sentinel"
)

// translateStoreErr maps store sentinels onto the domain error taxonomy.
// Already-coded errors pass through untouched; anything unrecognized inside a
// transactional block becomes a transaction failure (the tx has been rolled
// back by the time the caller sees it).
func translateStoreErr(err error, notFoundMsg, conflictMsg, failureMsg string) error {
	if err == nil {
		return nil
	}
	var domainErr *dErrors.Error
	if errors.As(err, &domainErr) {
		return err
	}
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.New(dErrors.CodeNotFound, notFoundMsg)
	}
	if errors.Is(err, sentinel.ErrConflict) {
		return dErrors.New(dErrors.CodeConflict, conflictMsg)
	}
	return dErrors.Wrap(err, dErrors.CodeTransaction, failureMsg)
}
