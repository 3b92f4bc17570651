// Package stream folds live caption chunks into a running summary.
//
// Callers resubmit the previous summary with every chunk, so the server
// holds no session state between requests and any replica can serve the
// next chunk of a stream.
package stream

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/Tarunsai01/ARIA/pkg/provider"
)

// MinChunkBytes is the smallest audio payload worth sending for
// transcription. Browsers emit sub-100-byte fragments when a recorder
// is starting up or cut off mid-chunk.
const MinChunkBytes = 100

const audioMergePrompt = `Previous summary: %s

New audio transcription: %s

Provide an updated, comprehensive summary that:
1. Incorporates the new information from the latest audio chunk
2. Maintains continuity with the previous summary
3. Updates the overall understanding based on the new context
4. Keeps it concise but complete

Return only the updated summary, nothing else.`

const transcriptMergePrompt = `Previous summary: %s

New transcription: %s

Provide an updated, comprehensive summary that:
1. Incorporates the new information from the latest transcription chunk
2. Maintains continuity with the previous summary
3. Updates the overall understanding based on the new context
4. Keeps it concise but complete

Return only the updated summary, nothing else.`

// Update is the outcome of folding one chunk into the running summary.
// Success is false when the chunk contributed nothing new; Summary then
// carries the previous summary unchanged so the caller's stream keeps a
// usable context either way.
type Update struct {
	Transcription string
	Summary       string
	Success       bool
	Message       string
	Elapsed       time.Duration
}

// Accumulator merges chunks into summaries. It never fails a stream:
// guard conditions and backend errors all degrade to the best summary
// available.
type Accumulator struct {
	minChunkBytes int
}

func NewAccumulator() *Accumulator {
	return &Accumulator{minChunkBytes: MinChunkBytes}
}

// UpdateFromAudio transcribes one recorded chunk and merges it into the
// previous summary. A failed or empty transcription keeps the previous
// summary and still counts as success, because stale context is valid
// context for a live stream.
func (a *Accumulator) UpdateFromAudio(ctx context.Context, client provider.Client, chunk []byte, mimeType, previous string) Update {
	if len(chunk) < a.minChunkBytes {
		return Update{Summary: previous, Message: "Audio chunk too small or empty"}
	}

	start := time.Now()

	transcript, err := client.Transcribe(ctx, chunk, mimeType)
	if err != nil {
		log.Printf("chunk transcription failed, keeping previous summary: %v", err)
		transcript = ""
	}
	transcript = strings.TrimSpace(transcript)
	if transcript == "" {
		return Update{Summary: previous, Success: true, Elapsed: time.Since(start)}
	}

	summary, ok := a.merge(ctx, client, audioMergePrompt, transcript, previous)
	if !ok {
		return Update{Transcription: transcript, Summary: previous, Elapsed: time.Since(start)}
	}
	return Update{Transcription: transcript, Summary: summary, Success: true, Elapsed: time.Since(start)}
}

// UpdateFromTranscript merges an already-transcribed chunk into the
// previous summary. Used when the caller transcribes locally and only
// needs the summary maintained server-side.
func (a *Accumulator) UpdateFromTranscript(ctx context.Context, client provider.Client, transcript, previous string) Update {
	transcript = strings.TrimSpace(transcript)
	if transcript == "" {
		return Update{Summary: previous, Message: "Transcription is empty"}
	}

	start := time.Now()

	summary, ok := a.merge(ctx, client, transcriptMergePrompt, transcript, previous)
	if !ok {
		return Update{Transcription: transcript, Summary: previous, Elapsed: time.Since(start)}
	}
	return Update{Transcription: transcript, Summary: summary, Success: true, Elapsed: time.Since(start)}
}

// merge issues the single summarization call for a chunk: a merge
// prompt when a previous summary exists, a plain summary otherwise.
func (a *Accumulator) merge(ctx context.Context, client provider.Client, promptFormat, transcript, previous string) (string, bool) {
	input := transcript
	if previous != "" {
		input = fmt.Sprintf(promptFormat, previous, transcript)
	}
	summary, err := client.Summarize(ctx, input)
	if err != nil {
		log.Printf("summary update failed, keeping previous summary: %v", err)
		return "", false
	}
	return summary, true
}
