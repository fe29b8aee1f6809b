package services

import "fmt"

// RejectCode classifies a business rejection so transport code can map it to
// an HTTP status without inspecting message text.
type RejectCode string

const (
	CodeInvalidInput         RejectCode = "INVALID_INPUT"
	CodeUnauthorized         RejectCode = "UNAUTHORIZED"
	CodeForbidden            RejectCode = "FORBIDDEN"
	CodeNotFound             RejectCode = "NOT_FOUND"
	CodeConflict             RejectCode = "CONFLICT"
	CodeUpstreamVerification RejectCode = "UPSTREAM_VERIFICATION_FAILURE"
	CodeNameMismatch         RejectCode = "NAME_MISMATCH"
	CodeInternal             RejectCode = "INTERNAL"
)

// Rejection is a structured, user-displayable business outcome. InvalidInput,
// Conflict and NotFound are expected results, never escalated; Internal marks
// a data-store failure the caller may retry out of process.
type Rejection struct {
	Code    RejectCode
	Message string
	Data    map[string]interface{} // optional extras, e.g. remaining capacity on a cap rejection
}

func (r *Rejection) Error() string {
	return r.Message
}

func reject(code RejectCode, format string, args ...interface{}) *Rejection {
	return &Rejection{Code: code, Message: fmt.Sprintf(format, args...)}
}

func internalErr(err error) *Rejection {
	return &Rejection{Code: CodeInternal, Message: "Something went wrong, please try again.", Data: map[string]interface{}{"cause": err.Error()}}
}

// AsRejection normalizes any error into a Rejection, wrapping unknown errors
// as Internal.
func AsRejection(err error) *Rejection {
	if err == nil {
		return nil
	}
	if r, ok := err.(*Rejection); ok {
		return r
	}
	return internalErr(err)
}
