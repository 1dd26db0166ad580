package objerr

import "errors"

// ErrEndpointResolutionFailed is returned if we've failed to resolve the backend endpoint for some reason.
var ErrEndpointResolutionFailed = errors.New("endpoint domain name resolution failed, check region/endpoint are valid")
