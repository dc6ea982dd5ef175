package domain

import (
	"errors"
	"fmt"
)

type ErrorKind string

const (
	ErrorKindValidation       ErrorKind = "ValidationError"
	ErrorKindConflict         ErrorKind = "ConflictError"
	ErrorKindNotFound         ErrorKind = "NotFoundError"
	ErrorKindAlreadyFinalized ErrorKind = "AlreadyFinalizedError"
	ErrorKindAlreadySettled   ErrorKind = "AlreadySettledError"
	ErrorKindTransientStore   ErrorKind = "TransientStoreError"
)

// BookingError is the structured failure returned by the booking engine.
type BookingError struct {
	Kind      ErrorKind
	Message   string
	Conflicts []Interval
	Err       error
}

func (e *BookingError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *BookingError) Unwrap() error {
	return e.Err
}

func NewValidationError(msg string) error {
	return &BookingError{Kind: ErrorKindValidation, Message: msg}
}

func NewConflictError(conflicts []Interval) error {
	return &BookingError{
		Kind:      ErrorKindConflict,
		Message:   "vehicle is already rented during the requested period",
		Conflicts: conflicts,
	}
}

func NewNotFoundError(msg string) error {
	return &BookingError{Kind: ErrorKindNotFound, Message: msg}
}

func NewAlreadyFinalizedError(orderID int32) error {
	return &BookingError{
		Kind:    ErrorKindAlreadyFinalized,
		Message: fmt.Sprintf("order %d already has rental details and cannot be updated", orderID),
	}
}

func NewAlreadySettledError(orderID int32) error {
	return &BookingError{
		Kind:    ErrorKindAlreadySettled,
		Message: fmt.Sprintf("order %d is already completed or paid", orderID),
	}
}

func NewTransientStoreError(op string, err error) error {
	return &BookingError{Kind: ErrorKindTransientStore, Message: op, Err: err}
}

// KindOf returns the kind of the first BookingError in err's chain, or "" if none.
func KindOf(err error) ErrorKind {
	var be *BookingError
	if errors.As(err, &be) {
		return be.Kind
	}
	return ""
}
