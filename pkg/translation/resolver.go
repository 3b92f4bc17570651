package translation

import (
	"context"
	"encoding/base64"
	"log"
	"time"

	"github.com/Tarunsai01/ARIA/pkg/provider"
	"github.com/Tarunsai01/ARIA/pkg/translation/knowledge"
	"github.com/Tarunsai01/ARIA/pkg/translation/vocabulary"
)

// Resolver runs the three tiers in fixed order. It is stateless: all
// per-user data lives behind the KnowledgeStore, and the backend client
// is passed per call because every user brings their own credentials.
type Resolver struct {
	store   KnowledgeStore
	catalog *vocabulary.Catalog
}

func NewResolver(store KnowledgeStore, catalog *vocabulary.Catalog) *Resolver {
	return &Resolver{
		store:   store,
		catalog: catalog,
	}
}

// Resolve answers "what does this sign mean" as cheaply as possible.
// Tier errors before the last degrade to the next tier; only the full
// backend call surfaces its failure to the caller.
func (r *Resolver) Resolve(ctx context.Context, client provider.Client, media provider.Media, req Request) (*Resolution, error) {
	start := time.Now()

	var videoHash, imageHash string
	switch media.Kind {
	case provider.CapabilityVideo:
		videoHash = knowledge.HashBytes(media.Data)
	case provider.CapabilityImage:
		imageHash = knowledge.HashBytes(media.Data)
	}

	// Tier 1: exact knowledge-base match. A storage failure must not
	// take the pipeline down while the backends still work.
	if r.store != nil && (videoHash != "" || imageHash != "") {
		hit, err := r.store.Lookup(ctx, req.UserID, videoHash, imageHash)
		if err != nil {
			log.Printf("knowledge base lookup failed, trying next tier: %v", err)
		} else if hit != nil {
			confidence := hit.Confidence
			return &Resolution{
				Translation: hit.Translation,
				Source:      SourceKnowledgeBase,
				Confidence:  &confidence,
				Elapsed:     time.Since(start),
			}, nil
		}
	}

	// Tier 2: constrained vocabulary matching. Only video-capable
	// backends see enough of the gesture for this to be reliable.
	if client.Supports(provider.CapabilityVideo) {
		reply, err := client.RecognizeSign(ctx, media, r.catalog.Prompt())
		if err != nil {
			log.Printf("vocabulary matching failed, trying full call: %v", err)
		} else if sign, ok := r.catalog.Match(reply); ok {
			confidence := VocabularyConfidence
			return &Resolution{
				Translation: sign.Translation,
				Source:      SourceVocabulary,
				Sign:        sign.Name,
				Confidence:  &confidence,
				Elapsed:     time.Since(start),
			}, nil
		}
	}

	// Tier 3: full backend call with conversation context.
	text, err := client.RecognizeSign(ctx, media, req.Context)
	if err != nil {
		return nil, err
	}

	res := &Resolution{
		Translation: text,
		Source:      SourceAPI,
		Elapsed:     time.Since(start),
	}

	// Backends with a speech capability also voice the answer. Synthesis
	// failure downgrades to text-only rather than failing the resolution.
	if client.Supports(provider.CapabilitySpeech) {
		audio, synthErr := client.Synthesize(ctx, text)
		if synthErr != nil {
			log.Printf("speech synthesis failed, returning text only: %v", synthErr)
		} else {
			res.AudioBase64 = base64.StdEncoding.EncodeToString(audio)
		}
	}

	return res, nil
}
