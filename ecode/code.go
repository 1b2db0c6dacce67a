package ecode

import "net/http"

// Business codes
const (
	OK               = 0
	Unauthorized     = -101
	AccessDenied     = -403
	RequestErr       = -400
	NothingFound     = -404
	MethodNotAllowed = -405
	Conflict         = -409
	ServerErr        = -500
)

var messages = map[int]string{
	OK:               "ok",
	Unauthorized:     "Not authorized",
	AccessDenied:     "Access denied",
	RequestErr:       "Invalid request",
	NothingFound:     "Not found",
	MethodNotAllowed: "Method not allowed",
	Conflict:         "Conflict",
	ServerErr:        "Server Error",
}

// Text returns the default message of a code.
func Text(code int) string {
	if msg, ok := messages[code]; ok {
		return msg
	}
	return messages[ServerErr]
}

// ToHTTPStatus maps a code to its HTTP status.
func ToHTTPStatus(code int) int {
	switch code {
	case OK:
		return http.StatusOK
	case Unauthorized:
		return http.StatusUnauthorized
	case AccessDenied:
		return http.StatusForbidden
	case RequestErr:
		return http.StatusBadRequest
	case NothingFound:
		return http.StatusNotFound
	case MethodNotAllowed:
		return http.StatusMethodNotAllowed
	case Conflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
