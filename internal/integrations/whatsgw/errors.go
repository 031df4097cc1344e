package whatsgw

import "errors"

var (
	// ErrInvalidRecipient is returned for a phone number the gateway rejects.
	ErrInvalidRecipient = errors.New("whatsgw: invalid recipient")

	// ErrRateLimited is returned when the gateway reports throttling.
	ErrRateLimited = errors.New("whatsgw: rate limited by gateway")

	// ErrInvalidResponse is returned on unexpected gateway responses.
	ErrInvalidResponse = errors.New("whatsgw: invalid response")

	// ErrInternal is returned on transport-level failures.
	ErrInternal = errors.New("whatsgw: internal error")
)
