package aws

import (
	"errors"

	"github.com/aws/smithy-go"
)

// clientErrorCode extracts the provider error code (AccessDenied,
// ResourceNotFoundException, Throttling, ...) when err is a client error
// reported by the service. Client errors are counted and logged at the
// resource or kind level, never propagated upward.
func clientErrorCode(err error) (string, bool) {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return apiErr.ErrorCode(), true
	}
	return "", false
}
