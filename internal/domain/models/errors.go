package models

import "errors"

// ErrValidation indicates a record failed ingestion validation (negative or
// missing required field).
var ErrValidation = errors.New("validation failed")

// ErrDuplicateEntry indicates a unique-key conflict at ingestion time.
var ErrDuplicateEntry = errors.New("duplicate entry")

// ErrNotFound indicates a referenced record or feed type does not exist.
var ErrNotFound = errors.New("not found")

// ErrStoreUnavailable indicates the ledger store could not be reached. It is
// always surfaced distinctly from an empty result.
var ErrStoreUnavailable = errors.New("ledger store unavailable")
