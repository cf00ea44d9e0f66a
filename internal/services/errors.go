package services

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"net"

	"github.com/lib/pq"

	"aerometrics/fleetdw/internal/constants"
)

// ValidationError marks a record that failed natural-key or timestamp
// well-formedness checks. It is recovered locally: the record is dropped
// from the batch and reported, the load continues.
type ValidationError struct {
	RecordType string
	Index      int
	Code       string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s record %d rejected: %s", e.RecordType, e.Index, constants.GetRejectMessage(e.Code))
}

// ConstraintViolationError is a storage-level integrity violation not
// explained by a normal find-or-create race. It aborts the load
// transaction.
type ConstraintViolationError struct {
	Op  string
	Err error
}

func (e *ConstraintViolationError) Error() string {
	return fmt.Sprintf("constraint violation during %s: %v", e.Op, e.Err)
}

func (e *ConstraintViolationError) Unwrap() error {
	return e.Err
}

// ConnectionError means the storage layer is unreachable. Retry policy,
// if any, belongs to the caller.
type ConnectionError struct {
	Op  string
	Err error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("storage unreachable during %s: %v", e.Op, e.Err)
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// classifyStorageError maps a driver error into the load taxonomy.
// Postgres class 23 is integrity violation, class 08 is connection
// failure; anything the net layer reports is also a connection failure.
func classifyStorageError(op string, err error) error {
	if err == nil {
		return nil
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code.Class() {
		case "23":
			return &ConstraintViolationError{Op: op, Err: err}
		case "08":
			return &ConnectionError{Op: op, Err: err}
		}
		return err
	}

	var netErr net.Error
	if errors.As(err, &netErr) || errors.Is(err, driver.ErrBadConn) {
		return &ConnectionError{Op: op, Err: err}
	}

	return err
}
