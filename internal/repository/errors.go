package repository

import "errors"

// ErrNotFound is returned when a looked-up row does not exist.
var ErrNotFound = errors.New("record not found")

// ErrNoTransaction is returned by operations that must run inside WithinTransaction.
var ErrNoTransaction = errors.New("operation requires an active transaction")
