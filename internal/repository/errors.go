package repository

import "errors"

var (
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when a natural-key uniqueness constraint rejects a write.
	ErrDuplicate = errors.New("duplicate record")
	// ErrStaleStatus is returned by guarded updates when the persisted status no
	// longer matches the status the caller read.
	ErrStaleStatus = errors.New("status changed concurrently")
)
