package stream

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/Tarunsai01/ARIA/pkg/provider"

	"github.com/stretchr/testify/assert"
)

type fakeClient struct {
	transcript    string
	transcribeErr error

	summary      string
	summarizeErr error
	summaryInput string

	transcribeCalls int
	summarizeCalls  int
}

func (c *fakeClient) Name() string                        { return "fake" }
func (c *fakeClient) Capabilities() []provider.Capability { return nil }
func (c *fakeClient) Supports(provider.Capability) bool   { return false }

func (c *fakeClient) Transcribe(context.Context, []byte, string) (string, error) {
	c.transcribeCalls++
	return c.transcript, c.transcribeErr
}

func (c *fakeClient) RecognizeSign(context.Context, provider.Media, string, ...provider.Option) (string, error) {
	return "", errors.New("not scripted")
}

func (c *fakeClient) GenerateGloss(context.Context, string, ...provider.Option) ([]string, error) {
	return nil, errors.New("not scripted")
}

func (c *fakeClient) Summarize(_ context.Context, text string, _ ...provider.Option) (string, error) {
	c.summarizeCalls++
	c.summaryInput = text
	return c.summary, c.summarizeErr
}

func (c *fakeClient) Synthesize(context.Context, string) ([]byte, error) {
	return nil, errors.New("not scripted")
}

func validChunk() []byte {
	return bytes.Repeat([]byte{0xAB}, MinChunkBytes)
}

func TestUpdateFromAudioRejectsTinyChunks(t *testing.T) {
	a := NewAccumulator()
	client := &fakeClient{}

	update := a.UpdateFromAudio(context.Background(), client, []byte{0x01, 0x02}, "audio/webm", "previous summary")

	assert.False(t, update.Success)
	assert.Equal(t, "Audio chunk too small or empty", update.Message)
	assert.Equal(t, "previous summary", update.Summary, "tiny chunks keep the previous summary")
	assert.Zero(t, client.transcribeCalls, "no backend call for a rejected chunk")
}

func TestUpdateFromAudioHappyPath(t *testing.T) {
	a := NewAccumulator()
	client := &fakeClient{
		transcript: "the train leaves at noon",
		summary:    "Travel plans: train departs at noon.",
	}

	update := a.UpdateFromAudio(context.Background(), client, validChunk(), "audio/webm", "Talking about travel.")

	assert.True(t, update.Success)
	assert.Equal(t, "the train leaves at noon", update.Transcription)
	assert.Equal(t, "Travel plans: train departs at noon.", update.Summary)
	assert.Equal(t, 1, client.transcribeCalls)
	assert.Equal(t, 1, client.summarizeCalls)

	// With a previous summary the merge prompt carries both sides.
	assert.Contains(t, client.summaryInput, "Previous summary: Talking about travel.")
	assert.Contains(t, client.summaryInput, "New audio transcription: the train leaves at noon")
}

func TestUpdateFromAudioTranscriptionFailureKeepsPreviousSummary(t *testing.T) {
	a := NewAccumulator()
	client := &fakeClient{transcribeErr: errors.New("backend down")}

	update := a.UpdateFromAudio(context.Background(), client, validChunk(), "audio/webm", "what we had")

	assert.True(t, update.Success, "stale context is still valid context")
	assert.Equal(t, "what we had", update.Summary)
	assert.Empty(t, update.Transcription)
	assert.Zero(t, client.summarizeCalls, "nothing to merge when transcription yields nothing")
}

func TestUpdateFromAudioEmptyTranscriptKeepsPreviousSummary(t *testing.T) {
	a := NewAccumulator()
	client := &fakeClient{transcript: "   "}

	update := a.UpdateFromAudio(context.Background(), client, validChunk(), "audio/webm", "what we had")

	assert.True(t, update.Success)
	assert.Equal(t, "what we had", update.Summary)
	assert.Zero(t, client.summarizeCalls)
}

func TestUpdateFromAudioMergeFailureReportsFailure(t *testing.T) {
	a := NewAccumulator()
	client := &fakeClient{
		transcript:   "new words",
		summarizeErr: errors.New("quota exceeded"),
	}

	update := a.UpdateFromAudio(context.Background(), client, validChunk(), "audio/webm", "old summary")

	assert.False(t, update.Success)
	assert.Equal(t, "new words", update.Transcription, "the transcript still comes back to the caller")
	assert.Equal(t, "old summary", update.Summary)
}

func TestUpdateFromAudioFirstChunkSummarizesTranscriptAlone(t *testing.T) {
	a := NewAccumulator()
	client := &fakeClient{
		transcript: "hello and welcome",
		summary:    "A greeting.",
	}

	update := a.UpdateFromAudio(context.Background(), client, validChunk(), "audio/webm", "")

	assert.True(t, update.Success)
	assert.Equal(t, "hello and welcome", client.summaryInput, "no merge prompt without a previous summary")
	assert.Equal(t, "A greeting.", update.Summary)
}

func TestUpdateFromTranscriptEmptyInput(t *testing.T) {
	a := NewAccumulator()
	client := &fakeClient{}

	update := a.UpdateFromTranscript(context.Background(), client, "  ", "previous")

	assert.False(t, update.Success)
	assert.Equal(t, "Transcription is empty", update.Message)
	assert.Equal(t, "previous", update.Summary)
	assert.Zero(t, client.summarizeCalls)
}

func TestUpdateFromTranscriptHappyPath(t *testing.T) {
	a := NewAccumulator()
	client := &fakeClient{summary: "Updated running summary."}

	update := a.UpdateFromTranscript(context.Background(), client, "more caption text", "Running summary.")

	assert.True(t, update.Success)
	assert.Equal(t, "more caption text", update.Transcription)
	assert.Equal(t, "Updated running summary.", update.Summary)
	assert.True(t, strings.Contains(client.summaryInput, "New transcription: more caption text"))
}

func TestUpdateFromTranscriptMergeFailureKeepsPrevious(t *testing.T) {
	a := NewAccumulator()
	client := &fakeClient{summarizeErr: errors.New("backend down")}

	update := a.UpdateFromTranscript(context.Background(), client, "caption", "previous")

	assert.False(t, update.Success)
	assert.Equal(t, "previous", update.Summary)
}
