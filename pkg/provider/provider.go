package provider

import "context"

// Capability identifies a media kind a translation backend can work with.
type Capability string

const (
	CapabilityAudio  Capability = "audio"
	CapabilityImage  Capability = "image"
	CapabilityVideo  Capability = "video"
	CapabilitySpeech Capability = "speech" // spoken audio output (TTS)
)

// Media is a binary payload submitted for sign recognition.
type Media struct {
	Kind Capability // CapabilityImage or CapabilityVideo
	Data []byte
	// MimeType may be left empty; video payloads are sniffed from
	// magic bytes, images default to JPEG.
	MimeType string
}

// Client is a generative translation backend. Implementations declare the
// media kinds they accept; calling an operation outside that set returns a
// *CapabilityError.
type Client interface {
	Name() string
	Capabilities() []Capability
	Supports(capability Capability) bool

	// Transcribe converts spoken audio to text.
	Transcribe(ctx context.Context, audio []byte, mimeType string) (string, error)

	// RecognizeSign translates signed content in the media to English.
	// contextText, when non-empty, is embedded in the prompt's
	// conversation-context section.
	RecognizeSign(ctx context.Context, media Media, contextText string, options ...Option) (string, error)

	// GenerateGloss converts text into an ordered gloss token sequence.
	// Empty input yields an empty sequence without a backend call.
	GenerateGloss(ctx context.Context, text string, options ...Option) ([]string, error)

	// Summarize produces a concise summary of the given text.
	Summarize(ctx context.Context, text string, options ...Option) (string, error)

	// Synthesize renders text as spoken audio.
	Synthesize(ctx context.Context, text string) ([]byte, error)
}

// Options tune a single generative call. Zero values mean "use the
// operation's default".
type Options struct {
	Temperature float64
	TopP        float64
	TopK        int
	MaxTokens   int
}

type Option func(*Options)

func WithTemperature(t float64) Option {
	return func(o *Options) {
		o.Temperature = t
	}
}

func WithTopP(p float64) Option {
	return func(o *Options) {
		o.TopP = p
	}
}

func WithTopK(k int) Option {
	return func(o *Options) {
		o.TopK = k
	}
}

func WithMaxTokens(n int) Option {
	return func(o *Options) {
		o.MaxTokens = n
	}
}

// ApplyOptions folds option funcs over a default set.
func ApplyOptions(defaults Options, options ...Option) Options {
	for _, opt := range options {
		opt(&defaults)
	}
	return defaults
}
