package factory

import (
	"fmt"

	"github.com/Tarunsai01/ARIA/pkg/provider"
	"github.com/Tarunsai01/ARIA/pkg/provider/gemini"
	"github.com/Tarunsai01/ARIA/pkg/provider/openai"
)

// SupportedProviders is the accepted set of provider names, in the order
// they are presented to users.
var SupportedProviders = []string{"openai", "gemini-pro", "gemini-flash"}

// IsSupported reports whether name is a known provider.
func IsSupported(name string) bool {
	for _, p := range SupportedProviders {
		if p == name {
			return true
		}
	}
	return false
}

// NewProviderClient builds the client for a provider name using the
// caller's own API key. Unknown names fail with ErrUnsupportedProvider.
func NewProviderClient(name, apiKey string) (provider.Client, error) {
	switch name {
	case "openai":
		return openai.New(apiKey)
	case "gemini-pro", "gemini-flash":
		return gemini.New(name, apiKey)
	default:
		return nil, fmt.Errorf("%w: %s. Supported: 'openai', 'gemini-pro', 'gemini-flash'", provider.ErrUnsupportedProvider, name)
	}
}
