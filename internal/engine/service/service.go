package service

import (
	"errors"

	"github.com/go-arcade/guild/pkg/http"
	pkgerrors "github.com/pkg/errors"
	"gorm.io/gorm"
)

// dbError maps a repository failure. A missing row becomes notFound and a
// unique key violation becomes conflict; anything else is an internal error.
func dbError(err error, notFound, conflict *http.Error, op string) error {
	if err == nil {
		return nil
	}
	if notFound != nil && errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound
	}
	if conflict != nil && errors.Is(err, gorm.ErrDuplicatedKey) {
		return conflict.WithCause(err)
	}
	return pkgerrors.Wrap(err, op)
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

func isHTTPError(err error, target *http.Error) bool {
	return errors.Is(err, target)
}
