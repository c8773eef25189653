package models

type ErrorNotFound struct {
	Message string
}

func (e ErrorNotFound) Error() string { return e.Message }

type ErrorUnauthorized struct {
	Message string
}

func (e ErrorUnauthorized) Error() string { return e.Message }

type ErrorForbidden struct {
	Message string
}

func (e ErrorForbidden) Error() string { return e.Message }

// ErrorConflict is a duplicate of an existing record. It is reported as a bad request.
type ErrorConflict struct {
	Message string
}

func (e ErrorConflict) Error() string { return e.Message }

// ErrorValidation carries messages keyed by request field.
type ErrorValidation struct {
	Message string
	Fields  map[string][]string
}

func (e ErrorValidation) Error() string { return e.Message }

func NewFieldError(field, message string) ErrorValidation {
	return ErrorValidation{
		Message: message,
		Fields:  map[string][]string{field: {message}},
	}
}

const (
	MsgNotFound          = "Not found."
	MsgInvalidPage       = "Invalid page."
	MsgNotAuthenticated  = "Authentication credentials were not provided."
	MsgPermissionDenied  = "You do not have permission to perform this action."
	MsgInvalidCredential = "Unable to log in with provided credentials."
)
