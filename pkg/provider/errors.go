package provider

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedProvider is returned for provider names outside the
	// supported set.
	ErrUnsupportedProvider = errors.New("unsupported provider")

	// ErrCredentialMissing is returned when no API key is configured for
	// the requested provider.
	ErrCredentialMissing = errors.New("api key not configured")

	// ErrContentFiltered marks replies withheld by the backend's safety
	// or recitation filters.
	ErrContentFiltered = errors.New("content blocked by safety filters")

	// ErrTruncated marks replies cut off at the token limit with no
	// extractable text. Truncated replies that still carry text are
	// returned as partial successes, not errors.
	ErrTruncated = errors.New("response truncated at token limit")

	// ErrEmptyResult marks structurally valid replies with no text.
	ErrEmptyResult = errors.New("response contains no text")
)

// CapabilityError reports an operation a provider cannot serve, naming
// both sides so the caller can suggest an alternative.
type CapabilityError struct {
	Provider   string
	Capability Capability
}

func (e *CapabilityError) Error() string {
	return fmt.Sprintf("provider %s does not support %s input", e.Provider, e.Capability)
}

func (e *CapabilityError) Unwrap() error {
	return ErrUnsupportedCapability
}

// ErrUnsupportedCapability matches any *CapabilityError via errors.Is.
var ErrUnsupportedCapability = errors.New("unsupported capability")
