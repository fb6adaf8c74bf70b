package errors

// ErrorWithStatusCode carries the HTTP status a service-layer failure should
// map to. Plain errors reaching a handler become a 500.
type ErrorWithStatusCode struct {
	Message    string
	StatusCode int
}

func (e *ErrorWithStatusCode) Error() string {
	return e.Message
}
