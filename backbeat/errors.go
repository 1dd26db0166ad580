package backbeat

import (
	"errors"
	"fmt"
)

// ErrNoEndpoint is returned when creating a client without a Backbeat endpoint.
var ErrNoEndpoint = errors.New("no backbeat endpoint provided")

// UnexpectedStatusCodeError is returned when the Backbeat API responds with a status code other than 200.
type UnexpectedStatusCodeError struct {
	Status   int
	Method   string
	Endpoint string
	Body     []byte
}

func (e *UnexpectedStatusCodeError) Error() string {
	msg := fmt.Sprintf("unexpected status code %d for '%s' request to '%s'", e.Status, e.Method, e.Endpoint)
	if len(e.Body) == 0 {
		return msg
	}

	return fmt.Sprintf("%s: %s", msg, e.Body)
}

// IsUnexpectedStatusCode returns a boolean indicating whether the given error is an 'UnexpectedStatusCodeError'.
func IsUnexpectedStatusCode(err error) bool {
	var unexpected *UnexpectedStatusCodeError
	return errors.As(err, &unexpected)
}
