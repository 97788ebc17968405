package domain

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

// StorageError is an insert or query failure at the record store. Error returns the raw text of
// the underlying error so handlers can surface it as-is.
type StorageError struct {
	Op   string
	Code string
	Err  error
}

func (e *StorageError) Error() string {
	if e.Err == nil {
		return e.Op + " failed"
	}
	return e.Err.Error()
}

func (e *StorageError) Unwrap() error { return e.Err }

// NewStorageError wraps err, recording the SQLSTATE when the driver exposes one.
func NewStorageError(op string, err error) *StorageError {
	se := &StorageError{Op: op, Err: err}

	var pgErr *pgconn.PgError
	var pqErr *pq.Error
	switch {
	case errors.As(err, &pgErr):
		se.Code = pgErr.Code
	case errors.As(err, &pqErr):
		se.Code = string(pqErr.Code)
	}
	return se
}

// IsStorageError reports whether err is or wraps a StorageError.
func IsStorageError(err error) bool {
	var se *StorageError
	return errors.As(err, &se)
}
