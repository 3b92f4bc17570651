package translation

import (
	"context"
	"encoding/base64"
	"errors"
	"testing"

	"github.com/Tarunsai01/ARIA/pkg/provider"
	"github.com/Tarunsai01/ARIA/pkg/translation/vocabulary"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeStore struct {
	hit     *Hit
	err     error
	lookups int

	gotVideoHash string
	gotImageHash string
}

func (s *fakeStore) Lookup(_ context.Context, _ uuid.UUID, videoHash, imageHash string) (*Hit, error) {
	s.lookups++
	s.gotVideoHash = videoHash
	s.gotImageHash = imageHash
	return s.hit, s.err
}

// fakeClient scripts RecognizeSign replies in order and records the
// context text each call received.
type fakeClient struct {
	caps []provider.Capability

	signReplies  []string
	signErrs     []error
	signContexts []string

	synthAudio []byte
	synthErr   error
	synthCalls int
}

func (c *fakeClient) Name() string                        { return "fake" }
func (c *fakeClient) Capabilities() []provider.Capability { return c.caps }

func (c *fakeClient) Supports(capability provider.Capability) bool {
	for _, supported := range c.caps {
		if supported == capability {
			return true
		}
	}
	return false
}

func (c *fakeClient) Transcribe(context.Context, []byte, string) (string, error) {
	return "", errors.New("not scripted")
}

func (c *fakeClient) RecognizeSign(_ context.Context, _ provider.Media, contextText string, _ ...provider.Option) (string, error) {
	c.signContexts = append(c.signContexts, contextText)
	i := len(c.signContexts) - 1

	var err error
	if i < len(c.signErrs) {
		err = c.signErrs[i]
	}
	reply := ""
	if i < len(c.signReplies) {
		reply = c.signReplies[i]
	}
	return reply, err
}

func (c *fakeClient) GenerateGloss(context.Context, string, ...provider.Option) ([]string, error) {
	return nil, errors.New("not scripted")
}

func (c *fakeClient) Summarize(context.Context, string, ...provider.Option) (string, error) {
	return "", errors.New("not scripted")
}

func (c *fakeClient) Synthesize(context.Context, string) ([]byte, error) {
	c.synthCalls++
	return c.synthAudio, c.synthErr
}

func videoMedia() provider.Media {
	return provider.Media{Kind: provider.CapabilityVideo, Data: []byte("webm bytes")}
}

func newTestResolver(store KnowledgeStore) *Resolver {
	return NewResolver(store, vocabulary.NewCatalog())
}

func TestResolveKnowledgeBaseHitShortCircuits(t *testing.T) {
	store := &fakeStore{hit: &Hit{Translation: "Good morning", Confidence: 87}}
	client := &fakeClient{caps: []provider.Capability{provider.CapabilityVideo}}

	res, err := newTestResolver(store).Resolve(context.Background(), client, videoMedia(), Request{UserID: uuid.New()})

	assert.NoError(t, err)
	assert.Equal(t, "Good morning", res.Translation)
	assert.Equal(t, SourceKnowledgeBase, res.Source)
	if assert.NotNil(t, res.Confidence) {
		assert.Equal(t, 87, *res.Confidence)
	}
	assert.Empty(t, client.signContexts, "backend must not be called on a cache hit")
	assert.NotEmpty(t, store.gotVideoHash)
	assert.Empty(t, store.gotImageHash)
}

func TestResolveImageMediaHashesIntoImageSlot(t *testing.T) {
	store := &fakeStore{hit: &Hit{Translation: "Yes", Confidence: 100}}
	client := &fakeClient{caps: []provider.Capability{provider.CapabilityImage}}
	media := provider.Media{Kind: provider.CapabilityImage, Data: []byte("jpeg bytes")}

	_, err := newTestResolver(store).Resolve(context.Background(), client, media, Request{UserID: uuid.New()})

	assert.NoError(t, err)
	assert.Empty(t, store.gotVideoHash)
	assert.NotEmpty(t, store.gotImageHash)
}

func TestResolveStoreErrorDegradesToVocabulary(t *testing.T) {
	store := &fakeStore{err: errors.New("db down")}
	client := &fakeClient{
		caps:        []provider.Capability{provider.CapabilityVideo},
		signReplies: []string{"I need help!"},
	}

	res, err := newTestResolver(store).Resolve(context.Background(), client, videoMedia(), Request{UserID: uuid.New()})

	assert.NoError(t, err)
	assert.Equal(t, SourceVocabulary, res.Source)
	assert.Equal(t, "I need help!", res.Translation)
	assert.Equal(t, "HELP", res.Sign)
	if assert.NotNil(t, res.Confidence) {
		assert.Equal(t, VocabularyConfidence, *res.Confidence)
	}
	assert.Len(t, client.signContexts, 1)
}

func TestResolveVocabularyMissFallsThroughToFullCall(t *testing.T) {
	store := &fakeStore{}
	client := &fakeClient{
		caps:        []provider.Capability{provider.CapabilityVideo},
		signReplies: []string{"Try again", "The signer asks where the station is"},
	}
	req := Request{UserID: uuid.New(), Context: "- Previous: Hello"}

	res, err := newTestResolver(store).Resolve(context.Background(), client, videoMedia(), req)

	assert.NoError(t, err)
	assert.Equal(t, SourceAPI, res.Source)
	assert.Equal(t, "The signer asks where the station is", res.Translation)
	assert.Nil(t, res.Confidence, "full calls carry no confidence")

	if assert.Len(t, client.signContexts, 2) {
		assert.Contains(t, client.signContexts[0], "VOCABULARY LIST:", "first call carries the catalog prompt")
		assert.Equal(t, req.Context, client.signContexts[1], "second call carries the conversation context")
	}
}

func TestResolveVocabularyErrorDegradesToFullCall(t *testing.T) {
	store := &fakeStore{}
	client := &fakeClient{
		caps:        []provider.Capability{provider.CapabilityVideo},
		signReplies: []string{"", "Thank you"},
		signErrs:    []error{errors.New("rate limited"), nil},
	}

	res, err := newTestResolver(store).Resolve(context.Background(), client, videoMedia(), Request{UserID: uuid.New()})

	assert.NoError(t, err)
	assert.Equal(t, SourceAPI, res.Source)
	assert.Equal(t, "Thank you", res.Translation)
}

func TestResolveSkipsVocabularyForNonVideoBackends(t *testing.T) {
	store := &fakeStore{}
	client := &fakeClient{
		caps:        []provider.Capability{provider.CapabilityImage},
		signReplies: []string{"A thumbs up gesture meaning good"},
	}
	media := provider.Media{Kind: provider.CapabilityImage, Data: []byte("jpeg bytes")}

	res, err := newTestResolver(store).Resolve(context.Background(), client, media, Request{UserID: uuid.New(), Context: "ctx"})

	assert.NoError(t, err)
	assert.Equal(t, SourceAPI, res.Source)
	if assert.Len(t, client.signContexts, 1) {
		assert.Equal(t, "ctx", client.signContexts[0], "image-only backends go straight to the full call")
	}
}

func TestResolveFullCallErrorSurfaces(t *testing.T) {
	store := &fakeStore{}
	wantErr := errors.New("backend unavailable")
	client := &fakeClient{
		caps:     []provider.Capability{provider.CapabilityImage},
		signErrs: []error{wantErr},
	}
	media := provider.Media{Kind: provider.CapabilityImage, Data: []byte("jpeg bytes")}

	_, err := newTestResolver(store).Resolve(context.Background(), client, media, Request{UserID: uuid.New()})

	assert.ErrorIs(t, err, wantErr)
}

func TestResolveSynthesizesSpeechWhenSupported(t *testing.T) {
	store := &fakeStore{}
	client := &fakeClient{
		caps:        []provider.Capability{provider.CapabilityImage, provider.CapabilitySpeech},
		signReplies: []string{"Hello there"},
		synthAudio:  []byte("mp3 bytes"),
	}
	media := provider.Media{Kind: provider.CapabilityImage, Data: []byte("jpeg bytes")}

	res, err := newTestResolver(store).Resolve(context.Background(), client, media, Request{UserID: uuid.New()})

	assert.NoError(t, err)
	assert.Equal(t, 1, client.synthCalls)
	assert.Equal(t, base64.StdEncoding.EncodeToString([]byte("mp3 bytes")), res.AudioBase64)
}

func TestResolveSynthesisFailureDowngradesToTextOnly(t *testing.T) {
	store := &fakeStore{}
	client := &fakeClient{
		caps:        []provider.Capability{provider.CapabilityImage, provider.CapabilitySpeech},
		signReplies: []string{"Hello there"},
		synthErr:    errors.New("tts quota exceeded"),
	}
	media := provider.Media{Kind: provider.CapabilityImage, Data: []byte("jpeg bytes")}

	res, err := newTestResolver(store).Resolve(context.Background(), client, media, Request{UserID: uuid.New()})

	assert.NoError(t, err, "synthesis failure must not fail the resolution")
	assert.Equal(t, "Hello there", res.Translation)
	assert.Empty(t, res.AudioBase64)
}

func TestResolveNilStoreSkipsTierOne(t *testing.T) {
	client := &fakeClient{
		caps:        []provider.Capability{provider.CapabilityVideo},
		signReplies: []string{"I need help!"},
	}

	res, err := NewResolver(nil, vocabulary.NewCatalog()).Resolve(context.Background(), client, videoMedia(), Request{UserID: uuid.New()})

	assert.NoError(t, err)
	assert.Equal(t, SourceVocabulary, res.Source)
}

func TestFormatContext(t *testing.T) {
	tests := []struct {
		name   string
		recent []string
		want   string
	}{
		{
			name:   "empty history",
			recent: nil,
			want:   "",
		},
		{
			name:   "single entry",
			recent: []string{"Hello"},
			want:   "- Previous: Hello",
		},
		{
			name:   "blank entries skipped",
			recent: []string{"Hello", "   ", "Goodbye"},
			want:   "- Previous: Hello\n- Previous: Goodbye",
		},
		{
			name:   "capped at five",
			recent: []string{"a", "b", "c", "d", "e", "f", "g"},
			want:   "- Previous: a\n- Previous: b\n- Previous: c\n- Previous: d\n- Previous: e",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatContext(tt.recent))
		})
	}
}
