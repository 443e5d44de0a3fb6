package registry

import "fmt"

// ErrorCode classifies the two failures the registry reports.
type ErrorCode int

const (
	// CodeBadEntity reports a deleted or stale handle. This is the only
	// expected, recoverable condition: Sync the handle and retry, or drop it.
	CodeBadEntity ErrorCode = iota
	// CodeInvalidComponent reports access to a kind the entity does not
	// have, or a precondition violation such as an invalid or duplicate
	// kind list.
	CodeInvalidComponent
)

func (c ErrorCode) String() string {
	switch c {
	case CodeBadEntity:
		return "bad entity"
	case CodeInvalidComponent:
		return "invalid component"
	}
	return "unknown"
}

type BadEntityError struct {
	Msg string
}

func (e BadEntityError) Error() string {
	return fmt.Sprintf("bad entity: %s", e.Msg)
}

func (e BadEntityError) Code() ErrorCode { return CodeBadEntity }

type InvalidComponentError struct {
	Msg string
}

func (e InvalidComponentError) Error() string {
	return fmt.Sprintf("invalid component: %s", e.Msg)
}

func (e InvalidComponentError) Code() ErrorCode { return CodeInvalidComponent }

// ErrorCallback is the alternate delivery mode for registries built with
// WithErrorCallback: the callback receives the failure and the registry
// then panics instead of returning an error.
type ErrorCallback func(ErrorCode, string)

// report builds the error for a failure, or routes it through the callback
// mode chosen at construction. Either way the triggering call is fatal:
// no operation leaves partial effects behind.
func (r *Registry) report(code ErrorCode, msg string) error {
	if r.errorCallback != nil {
		r.errorCallback(code, msg)
		panic(fmt.Sprintf("registry: %v: %s", code, msg))
	}
	switch code {
	case CodeBadEntity:
		return BadEntityError{Msg: msg}
	default:
		return InvalidComponentError{Msg: msg}
	}
}
