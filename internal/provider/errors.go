package provider

import "errors"

var (
	// ErrUpstreamUnavailable is returned for transport failures and non-2xx
	// responses from the scheduling provider. No retries happen here; the
	// caller decides on user-facing messaging.
	ErrUpstreamUnavailable = errors.New("scheduling provider unavailable")

	// ErrMalformedResponse is returned when the provider response cannot be
	// decoded at all. Individually malformed items are skipped, not fatal.
	ErrMalformedResponse = errors.New("malformed provider response")
)
