package domain

import "errors"

// Error kinds surfaced by the forecast pipeline. Components wrap one of these
// with context; callers match with errors.Is.
var (
	// ErrSchema reports a missing, unreadable or malformed input column.
	ErrSchema = errors.New("schema error")
	// ErrInsufficientData reports too few rows, or a column with no values to impute from.
	ErrInsufficientData = errors.New("insufficient data")
	// ErrConfig reports an out-of-range setting such as the split ratio.
	ErrConfig = errors.New("config error")
	// ErrDimension reports a feature vector whose arity does not match the model.
	ErrDimension = errors.New("dimension error")
)

// ErrRunNotFound reports a lookup of a forecast run that is not stored.
var ErrRunNotFound = errors.New("forecast run not found")

// ErrorKind returns a short metric label for err.
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrSchema):
		return "schema"
	case errors.Is(err, ErrInsufficientData):
		return "insufficient_data"
	case errors.Is(err, ErrConfig):
		return "config"
	case errors.Is(err, ErrDimension):
		return "dimension"
	default:
		return "other"
	}
}
