package openai

import (
	"errors"
	"testing"

	"github.com/Tarunsai01/ARIA/pkg/provider"
)

func choice(content, finishReason string) chatChoice {
	var c chatChoice
	c.Message.Content = content
	c.FinishReason = finishReason
	return c
}

func TestExtractText(t *testing.T) {
	tests := []struct {
		name     string
		res      chatResponse
		wantText string
		wantErr  error
	}{
		{
			name:     "normal stop",
			res:      chatResponse{Choices: []chatChoice{choice("Hello there", "stop")}},
			wantText: "Hello there",
		},
		{
			name:     "whitespace trimmed",
			res:      chatResponse{Choices: []chatChoice{choice("  Hello  \n", "stop")}},
			wantText: "Hello",
		},
		{
			name:    "no choices",
			res:     chatResponse{},
			wantErr: provider.ErrEmptyResult,
		},
		{
			name:    "content filter",
			res:     chatResponse{Choices: []chatChoice{choice("", "content_filter")}},
			wantErr: provider.ErrContentFiltered,
		},
		{
			name:     "truncated with partial text",
			res:      chatResponse{Choices: []chatChoice{choice("partial transl", "length")}},
			wantText: "partial transl",
		},
		{
			name:    "truncated with no text",
			res:     chatResponse{Choices: []chatChoice{choice("", "length")}},
			wantErr: provider.ErrTruncated,
		},
		{
			name:    "empty content",
			res:     chatResponse{Choices: []chatChoice{choice("   ", "stop")}},
			wantErr: provider.ErrEmptyResult,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, err := extractText(tt.res)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("err = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if text != tt.wantText {
				t.Errorf("text = %q, want %q", text, tt.wantText)
			}
		})
	}
}

func TestNewRequiresKey(t *testing.T) {
	if _, err := New(""); !errors.Is(err, provider.ErrCredentialMissing) {
		t.Errorf("New(\"\") err = %v, want ErrCredentialMissing", err)
	}
}
