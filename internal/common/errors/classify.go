// internal/common/errors/classify.go
package errors

// FromStatus maps an HTTP response status plus the server's detail text to
// the matching StandardError. Transport failures never reach this function;
// they are wrapped by NewNetworkFailureError at the call site.
func FromStatus(status int, detail string) *StandardError {
	switch {
	case status == 400:
		return NewValidationError(detail)
	case status == 401:
		return NewSessionExpiredError(detail)
	case status == 404:
		return NewNotFoundError(detail)
	case status >= 500:
		return NewServerError(status, detail)
	default:
		err := NewServerError(status, detail)
		err.HTTPStatus = status
		return err
	}
}

// Normalize ensures any error surfaces as a StandardError so callers can
// rely on Code-based dispatch.
func Normalize(err error) *StandardError {
	if stdErr, ok := err.(*StandardError); ok {
		return stdErr
	}
	return NewNetworkFailureError(err)
}
