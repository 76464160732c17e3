package api

// ErrService is the code of an unexpected server side failure.
const ErrService = "ERR_SERVICE"

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error() returns error as a string.
func (e apiError) Error() string {
	return e.Message
}

func newServiceError() apiError {
	return apiError{
		Code:    ErrService,
		Message: "Internal Server Error",
	}
}
