package errors

import stderrors "errors"

// Is and As re-export the standard helpers so callers importing this package
// under its own name don't need a second import.
func Is(err, target error) bool { return stderrors.Is(err, target) }

func As(err error, target any) bool { return stderrors.As(err, target) }
