package gemini

import (
	"errors"
	"strings"
	"testing"

	"github.com/Tarunsai01/ARIA/pkg/provider"
)

func candidate(finishReason string, parts ...string) geminiCandidate {
	c := geminiCandidate{FinishReason: finishReason}
	if len(parts) > 0 {
		content := &geminiContent{}
		for _, p := range parts {
			content.Parts = append(content.Parts, geminiPart{Text: p})
		}
		c.Content = content
	}
	return c
}

func TestExtractText(t *testing.T) {
	tests := []struct {
		name     string
		res      geminiResponse
		wantText string
		wantErr  error
	}{
		{
			name:     "normal stop",
			res:      geminiResponse{Candidates: []geminiCandidate{candidate("STOP", "Hello")}},
			wantText: "Hello",
		},
		{
			name:     "multi part concatenated",
			res:      geminiResponse{Candidates: []geminiCandidate{candidate("STOP", "Hel", "lo")}},
			wantText: "Hello",
		},
		{
			name:    "no candidates",
			res:     geminiResponse{},
			wantErr: provider.ErrEmptyResult,
		},
		{
			name:    "safety block",
			res:     geminiResponse{Candidates: []geminiCandidate{candidate("SAFETY")}},
			wantErr: provider.ErrContentFiltered,
		},
		{
			name:    "recitation block",
			res:     geminiResponse{Candidates: []geminiCandidate{candidate("RECITATION")}},
			wantErr: provider.ErrContentFiltered,
		},
		{
			name:     "truncation with partial text",
			res:      geminiResponse{Candidates: []geminiCandidate{candidate("MAX_TOKENS", "partial")}},
			wantText: "partial",
		},
		{
			name:    "truncation with no text",
			res:     geminiResponse{Candidates: []geminiCandidate{candidate("MAX_TOKENS")}},
			wantErr: provider.ErrTruncated,
		},
		{
			name:    "nil content",
			res:     geminiResponse{Candidates: []geminiCandidate{{FinishReason: "STOP"}}},
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

func TestNewModelMapping(t *testing.T) {
	tests := []struct {
		name      string
		wantModel string
	}{
		{"gemini-pro", "gemini-2.5-pro"},
		{"gemini-flash", "gemini-2.5-flash"},
	}

	for _, tt := range tests {
		client, err := New(tt.name, "test-key")
		if err != nil {
			t.Fatalf("New(%s) error: %v", tt.name, err)
		}
		if client.model != tt.wantModel {
			t.Errorf("New(%s) model = %s, want %s", tt.name, client.model, tt.wantModel)
		}
	}

	if _, err := New("gemini-ultra", "test-key"); !errors.Is(err, provider.ErrUnsupportedProvider) {
		t.Error("unknown gemini variant should fail with ErrUnsupportedProvider")
	}
	if _, err := New("gemini-pro", ""); !errors.Is(err, provider.ErrCredentialMissing) {
		t.Error("missing key should fail with ErrCredentialMissing")
	}
}

func TestBuildRecognitionPrompt(t *testing.T) {
	bare := buildRecognitionPrompt("")
	if strings.Contains(bare, "CONVERSATION CONTEXT:") {
		t.Error("empty context must not add a context section")
	}

	withCtx := buildRecognitionPrompt("- Previous: Hello")
	if !strings.Contains(withCtx, "CONVERSATION CONTEXT:") {
		t.Error("context section missing")
	}
	if !strings.Contains(withCtx, "- Previous: Hello") {
		t.Error("context text not spliced into the prompt")
	}
}

func TestPermissiveSafetySettingsCoverAllCategories(t *testing.T) {
	settings := permissiveSafetySettings()
	if len(settings) != 4 {
		t.Fatalf("expected 4 categories, got %d", len(settings))
	}
	for _, s := range settings {
		if s.Threshold != "BLOCK_NONE" {
			t.Errorf("category %s threshold = %s, want BLOCK_NONE", s.Category, s.Threshold)
		}
	}
}
