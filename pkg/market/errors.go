package market

import "errors"

var (
	// ErrUnavailable marks any upstream failure (transport, status or decode).
	// Callers present it as a generic "data unavailable" state.
	ErrUnavailable = errors.New("market: data unavailable")
	// ErrUnknownAsset indicates the display name is not in the catalog.
	ErrUnknownAsset = errors.New("market: unknown asset")
	// ErrInvalidRange rejects custom ranges where start is not before end.
	ErrInvalidRange = errors.New("market: start date must be before end date")
	// ErrInvalidWindow rejects moving average windows outside the supported bounds.
	ErrInvalidWindow = errors.New("market: moving average window out of range")
	// ErrUnsupportedPeriod rejects period selectors not enabled for this deployment.
	ErrUnsupportedPeriod = errors.New("market: unsupported period")
)

// IsValidation reports whether err is a caller-correctable input error.
func IsValidation(err error) bool {
	return errors.Is(err, ErrUnknownAsset) ||
		errors.Is(err, ErrInvalidRange) ||
		errors.Is(err, ErrInvalidWindow) ||
		errors.Is(err, ErrUnsupportedPeriod)
}
