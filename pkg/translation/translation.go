// Package translation orchestrates the tiered sign-to-text pipeline:
// exact knowledge-base lookup, constrained vocabulary matching, then a
// full generative backend call. The first tier that answers wins and the
// later tiers never run.
package translation

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Source tags where a resolution's answer came from.
type Source string

const (
	SourceKnowledgeBase Source = "knowledge_base"
	SourceVocabulary    Source = "vocabulary"
	SourceAPI           Source = "api"
)

// VocabularyConfidence is reported for catalog matches; knowledge-base
// hits carry the confidence stored with the entry.
const VocabularyConfidence = 100

// Request is one sign-to-text resolution job.
type Request struct {
	UserID uuid.UUID
	// Context carries recent-conversation bullet lines for the full
	// backend call. Empty means no history.
	Context string
}

// Resolution is the pipeline's answer.
type Resolution struct {
	Translation string
	Source      Source
	// Sign is the catalog name, set only for vocabulary matches.
	Sign string
	// Confidence is set for knowledge-base and vocabulary answers;
	// full backend calls carry none.
	Confidence *int
	// AudioBase64 holds synthesized speech when the backend offers it.
	AudioBase64 string
	Elapsed     time.Duration
}

// Hit is a knowledge-base answer.
type Hit struct {
	Translation string
	Gloss       string
	Confidence  int
}

// KnowledgeStore is the exact-match tier. Lookup returns nil with no
// error on a miss; a hit also bumps the entry's usage counter.
type KnowledgeStore interface {
	Lookup(ctx context.Context, userID uuid.UUID, videoHash, imageHash string) (*Hit, error)
}

// FormatContext renders recent translations as the bullet list embedded
// in backend prompts. At most five entries are used and blank ones are
// skipped.
func FormatContext(recent []string) string {
	if len(recent) > 5 {
		recent = recent[:5]
	}
	lines := make([]string, 0, len(recent))
	for _, text := range recent {
		if strings.TrimSpace(text) == "" {
			continue
		}
		lines = append(lines, "- Previous: "+text)
	}
	return strings.Join(lines, "\n")
}
