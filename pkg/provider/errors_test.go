package provider

import (
	"errors"
	"fmt"
	"testing"
)

func TestCapabilityErrorUnwrapsToSentinel(t *testing.T) {
	err := &CapabilityError{Provider: "openai", Capability: CapabilityVideo}

	if !errors.Is(err, ErrUnsupportedCapability) {
		t.Error("CapabilityError should match ErrUnsupportedCapability via errors.Is")
	}

	var capErr *CapabilityError
	wrapped := fmt.Errorf("recognize: %w", err)
	if !errors.As(wrapped, &capErr) {
		t.Fatal("errors.As should find the CapabilityError through wrapping")
	}
	if capErr.Provider != "openai" || capErr.Capability != CapabilityVideo {
		t.Errorf("unexpected fields: %+v", capErr)
	}

	want := "provider openai does not support video input"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}
