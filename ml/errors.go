package ml

import (
	"errors"
	"fmt"
)

// ErrDataUnavailable indicates a training CSV is missing, unreadable, or
// malformed. There is no fallback classification path; callers treat this as
// fatal for the operation.
var ErrDataUnavailable = errors.New("training data unavailable")

// ErrNotTrained indicates a classifier was used before Train was called.
var ErrNotTrained = errors.New("classifier not trained")

// ColumnNotFoundError indicates the rating dataset has no column for the
// requested category. This is a user-visible error, not fatal to the process.
type ColumnNotFoundError struct {
	Category Category
}

func (e *ColumnNotFoundError) Error() string {
	return fmt.Sprintf("column %q not found in dataset", string(e.Category))
}

// IsColumnNotFound reports whether err is a ColumnNotFoundError.
func IsColumnNotFound(err error) bool {
	var cnf *ColumnNotFoundError
	return errors.As(err, &cnf)
}
