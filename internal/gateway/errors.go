package gateway

import "fmt"

// ValidationError rejects a request before any vendor call is made. The
// message is safe to return to API callers.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

var (
	ErrInvalidPhone = &ValidationError{
		Message: "Invalid phone number format. Please enter a 10-digit number without +91 prefix",
	}
	ErrInvalidLanguage = &ValidationError{Message: "Language must be english or hindi"}
	ErrUnknownKind     = &ValidationError{Message: "Unknown message kind"}
)

// InvalidVendorResponseError reports a vendor body that is not JSON.
type InvalidVendorResponseError struct {
	Status int
	Raw    string
}

func (e *InvalidVendorResponseError) Error() string {
	return fmt.Sprintf("vendor returned non-JSON body with status %d", e.Status)
}
