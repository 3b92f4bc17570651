package factory

import (
	"context"
	"errors"
	"testing"

	"github.com/Tarunsai01/ARIA/pkg/provider"

	"github.com/stretchr/testify/assert"
)

func TestNewProviderClient(t *testing.T) {
	tests := []struct {
		name         string
		providerName string
		wantClient   string
		wantVideo    bool
		wantSpeech   bool
	}{
		{name: "openai", providerName: "openai", wantClient: "openai", wantVideo: false, wantSpeech: true},
		{name: "gemini pro", providerName: "gemini-pro", wantClient: "gemini-pro", wantVideo: true, wantSpeech: false},
		{name: "gemini flash", providerName: "gemini-flash", wantClient: "gemini-flash", wantVideo: true, wantSpeech: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := NewProviderClient(tt.providerName, "test-key")
			assert.NoError(t, err)
			assert.Equal(t, tt.wantClient, client.Name())
			assert.Equal(t, tt.wantVideo, client.Supports(provider.CapabilityVideo))
			assert.Equal(t, tt.wantSpeech, client.Supports(provider.CapabilitySpeech))
			assert.True(t, client.Supports(provider.CapabilityImage), "every backend accepts images")
		})
	}
}

func TestNewProviderClientUnknownName(t *testing.T) {
	_, err := NewProviderClient("claude", "test-key")
	assert.ErrorIs(t, err, provider.ErrUnsupportedProvider)
	assert.Contains(t, err.Error(), "Supported: 'openai', 'gemini-pro', 'gemini-flash'")
}

func TestNewProviderClientEmptyKey(t *testing.T) {
	for _, name := range SupportedProviders {
		_, err := NewProviderClient(name, "")
		assert.ErrorIs(t, err, provider.ErrCredentialMissing, name)
	}
}

func TestIsSupported(t *testing.T) {
	assert.True(t, IsSupported("openai"))
	assert.True(t, IsSupported("gemini-pro"))
	assert.True(t, IsSupported("gemini-flash"))
	assert.False(t, IsSupported("gemini"))
	assert.False(t, IsSupported(""))
}

// Capability gating happens before any network call, so it is testable
// with a dummy key.
func TestOpenAIRejectsVideoMedia(t *testing.T) {
	client, err := NewProviderClient("openai", "test-key")
	assert.NoError(t, err)

	media := provider.Media{Kind: provider.CapabilityVideo, Data: []byte("webm")}
	_, err = client.RecognizeSign(context.Background(), media, "")

	assert.ErrorIs(t, err, provider.ErrUnsupportedCapability)
	var capErr *provider.CapabilityError
	if assert.True(t, errors.As(err, &capErr)) {
		assert.Equal(t, "openai", capErr.Provider)
		assert.Equal(t, provider.CapabilityVideo, capErr.Capability)
	}
}

func TestGeminiRejectsSynthesis(t *testing.T) {
	client, err := NewProviderClient("gemini-flash", "test-key")
	assert.NoError(t, err)

	_, err = client.Synthesize(context.Background(), "hello")
	assert.ErrorIs(t, err, provider.ErrUnsupportedCapability)
}

func TestGenerateGlossEmptyInputSkipsBackend(t *testing.T) {
	for _, name := range SupportedProviders {
		client, err := NewProviderClient(name, "test-key")
		assert.NoError(t, err)

		gloss, err := client.GenerateGloss(context.Background(), "   ")
		assert.NoError(t, err, name)
		assert.Empty(t, gloss, name)
	}
}
