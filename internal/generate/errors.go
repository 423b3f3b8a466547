package generate

// DefaultFailureMessage is shown when generation fails for any reason the
// user cannot act on.
const DefaultFailureMessage = "未能生成图片，请重试"

// Error is the failure produced by the generation collaborator. Message is
// safe to show to the user; Cause keeps the underlying error for logs.
type Error struct {
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return DefaultFailureMessage
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func newError(message string, cause error) *Error {
	if message == "" {
		message = DefaultFailureMessage
	}
	return &Error{Message: message, Cause: cause}
}
