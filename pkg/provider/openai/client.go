package openai

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/Tarunsai01/ARIA/pkg/provider"
)

const apiBaseURL = "https://api.openai.com/v1"

const visionPrompt = `You are an expert sign language interpreter.
Analyze the sign language gesture in this image and translate it to English.

Rules:
1. Identify the specific sign(s) being performed
2. Translate to natural, conversational English
3. Be concise and accurate
4. If the sign is unclear, describe what you see

Return only the English translation, nothing else.`

// Client talks to the OpenAI API: Whisper for audio, GPT-4o for images
// and text, TTS for speech output. Video input is not supported.
type Client struct {
	apiKey     string
	httpClient *http.Client
}

var _ provider.Client = (*Client)(nil)

func New(apiKey string) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("openai: %w", provider.ErrCredentialMissing)
	}
	return &Client{
		apiKey: apiKey,
		httpClient: &http.Client{
			Timeout: 120 * time.Second,
		},
	}, nil
}

func (c *Client) Name() string {
	return "openai"
}

func (c *Client) Capabilities() []provider.Capability {
	return []provider.Capability{
		provider.CapabilityAudio,
		provider.CapabilityImage,
		provider.CapabilitySpeech,
	}
}

func (c *Client) Supports(capability provider.Capability) bool {
	for _, supported := range c.Capabilities() {
		if supported == capability {
			return true
		}
	}
	return false
}

// Wire types for chat completions.

type chatMessage struct {
	Role    string      `json:"role"`
	Content interface{} `json:"content"` // string or []contentPart
}

type contentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *imageURL `json:"image_url,omitempty"`
}

type imageURL struct {
	URL string `json:"url"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

type chatChoice struct {
	Message struct {
		Content string `json:"content"`
	} `json:"message"`
	FinishReason string `json:"finish_reason"`
}

type chatResponse struct {
	Choices []chatChoice `json:"choices"`
}

func (c *Client) chat(ctx context.Context, req chatRequest) (string, error) {
	payloadJson, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, apiBaseURL+"/chat/completions", bytes.NewBuffer(payloadJson))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	res, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("call openai: %w", err)
	}
	defer res.Body.Close()

	resBody, err := io.ReadAll(res.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if res.StatusCode != http.StatusOK {
		return "", fmt.Errorf(
			"status error, got status %d. with response body %s",
			res.StatusCode,
			string(resBody),
		)
	}

	var chatRes chatResponse
	if err := json.Unmarshal(resBody, &chatRes); err != nil {
		return "", fmt.Errorf("parse response: %w", err)
	}

	return extractText(chatRes)
}

// extractText classifies terminal states the same way the Gemini side
// does: partial text beats a truncation error, filtered and empty
// replies map to their error kinds.
func extractText(res chatResponse) (string, error) {
	if len(res.Choices) == 0 {
		return "", fmt.Errorf("no response choices: %w", provider.ErrEmptyResult)
	}

	choice := res.Choices[0]
	text := strings.TrimSpace(choice.Message.Content)

	switch choice.FinishReason {
	case "length":
		if text == "" {
			return "", fmt.Errorf("no text could be extracted: %w", provider.ErrTruncated)
		}
		return text, nil
	case "content_filter":
		return "", fmt.Errorf("openai finish reason content_filter: %w", provider.ErrContentFiltered)
	}

	if text == "" {
		return "", fmt.Errorf("finish reason %q: %w", choice.FinishReason, provider.ErrEmptyResult)
	}
	return text, nil
}

// Transcribe uploads the audio to Whisper and returns the plain-text
// transcription.
func (c *Client) Transcribe(ctx context.Context, audio []byte, mimeType string) (string, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	filename := "audio.webm"
	if mimeType == "audio/wav" {
		filename = "audio.wav"
	} else if mimeType == "audio/mpeg" {
		filename = "audio.mp3"
	} else if mimeType == "audio/mp4" {
		filename = "audio.m4a"
	} else if mimeType == "audio/ogg" {
		filename = "audio.ogg"
	}

	filePart, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return "", fmt.Errorf("create form file: %w", err)
	}
	if _, err := filePart.Write(audio); err != nil {
		return "", fmt.Errorf("write audio: %w", err)
	}
	if err := writer.WriteField("model", "whisper-1"); err != nil {
		return "", fmt.Errorf("write model field: %w", err)
	}
	if err := writer.WriteField("response_format", "text"); err != nil {
		return "", fmt.Errorf("write format field: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("close form: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, apiBaseURL+"/audio/transcriptions", &body)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	httpReq.Header.Set("Content-Type", writer.FormDataContentType())

	res, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("call whisper: %w", err)
	}
	defer res.Body.Close()

	resBody, err := io.ReadAll(res.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if res.StatusCode != http.StatusOK {
		return "", fmt.Errorf(
			"status error, got status %d. with response body %s",
			res.StatusCode,
			string(resBody),
		)
	}

	return strings.TrimSpace(string(resBody)), nil
}

func (c *Client) RecognizeSign(ctx context.Context, media provider.Media, contextText string, options ...provider.Option) (string, error) {
	if media.Kind != provider.CapabilityImage {
		return "", &provider.CapabilityError{Provider: c.Name(), Capability: media.Kind}
	}

	opts := provider.ApplyOptions(provider.Options{
		Temperature: 0.3,
		MaxTokens:   300,
	}, options...)

	prompt := visionPrompt
	if contextText != "" {
		prompt = "CONVERSATION CONTEXT:\n" + contextText + "\n\n" + visionPrompt
	}

	req := chatRequest{
		Model: "gpt-4o",
		Messages: []chatMessage{{
			Role: "user",
			Content: []contentPart{
				{Type: "text", Text: prompt},
				{Type: "image_url", ImageURL: &imageURL{
					URL: "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(media.Data),
				}},
			},
		}},
		Temperature: opts.Temperature,
		MaxTokens:   opts.MaxTokens,
	}

	text, err := c.chat(ctx, req)
	if err != nil {
		return "", fmt.Errorf("openai sign recognition: %w", err)
	}
	return text, nil
}

func (c *Client) GenerateGloss(ctx context.Context, text string, options ...provider.Option) ([]string, error) {
	if strings.TrimSpace(text) == "" {
		return []string{}, nil
	}

	opts := provider.ApplyOptions(provider.Options{
		Temperature: 0.3,
		MaxTokens:   200,
	}, options...)

	req := chatRequest{
		Model: "gpt-4o",
		Messages: []chatMessage{
			{Role: "system", Content: provider.GlossPrompt},
			{Role: "user", Content: text},
		},
		Temperature: opts.Temperature,
		MaxTokens:   opts.MaxTokens,
	}

	reply, err := c.chat(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("openai gloss conversion: %w", err)
	}
	return provider.ParseGlossReply(reply), nil
}

func (c *Client) Summarize(ctx context.Context, text string, options ...provider.Option) (string, error) {
	opts := provider.ApplyOptions(provider.Options{
		Temperature: 0.3,
		MaxTokens:   500,
	}, options...)

	req := chatRequest{
		Model: "gpt-4o",
		Messages: []chatMessage{
			{Role: "system", Content: provider.SummaryPrompt},
			{Role: "user", Content: text},
		},
		Temperature: opts.Temperature,
		MaxTokens:   opts.MaxTokens,
	}

	summary, err := c.chat(ctx, req)
	if err != nil {
		return "", fmt.Errorf("openai summary: %w", err)
	}
	return summary, nil
}

// Synthesize renders text as MP3 speech with the tts-1 model.
func (c *Client) Synthesize(ctx context.Context, text string) ([]byte, error) {
	payload := map[string]string{
		"model": "tts-1",
		"voice": "alloy",
		"input": text,
	}
	payloadJson, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, apiBaseURL+"/audio/speech", bytes.NewBuffer(payloadJson))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	res, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("call tts: %w", err)
	}
	defer res.Body.Close()

	audio, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf(
			"status error, got status %d. with response body %s",
			res.StatusCode,
			string(audio),
		)
	}

	return audio, nil
}
