package errorx

import "fmt"

type Code int

type Error struct {
	Code    Code
	Message string
}

func (e Error) Error() string {
	return e.Message
}

func New(code Code, format string, a ...any) Error {
	return Error{Code: code, Message: fmt.Sprintf(format, a...)}
}

// Unknown is returned for unexpected failures. The original error must be
// logged before returning this one.
var Unknown = Error{Code: 100000, Message: "Request failed"}
