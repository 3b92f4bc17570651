// FILE: internal/dto/translation_dto.go
package dto

import "github.com/google/uuid"

// --- Sign → Speech DTOs ---

// SignToSpeechRequest is the non-file part of the multipart form. Media
// arrives either as an uploaded "file" part or as a base64 video_data /
// image_data field; data-URL prefixes are stripped before decoding.
type SignToSpeechRequest struct {
	Provider  string `json:"provider" form:"provider" validate:"required,oneof=openai gemini-pro gemini-flash"`
	VideoData string `json:"video_data" form:"video_data"`
	ImageData string `json:"image_data" form:"image_data"`
}

type SignToSpeechResponse struct {
	Translation      string    `json:"translation"`
	AudioBase64      string    `json:"audio_base64,omitempty"`
	Provider         string    `json:"provider"`
	HistoryId        uuid.UUID `json:"history_id"`
	ProcessingTimeMs int       `json:"processing_time_ms"`
	Source           string    `json:"source"`
	Confidence       *int      `json:"confidence,omitempty"`
	Sign             string    `json:"sign,omitempty"`
}

// --- Speech → Sign DTOs ---

type SpeechToSignRequest struct {
	Provider string `json:"provider" form:"provider" validate:"required,oneof=openai gemini-pro gemini-flash"`
}

type SpeechToSignResponse struct {
	Transcription    string    `json:"transcription"`
	Gloss            []string  `json:"gloss"`
	HistoryId        uuid.UUID `json:"history_id"`
	ProcessingTimeMs int       `json:"processing_time_ms"`
}

// --- Text DTOs (transcription already done client-side) ---

type TextToGlossRequest struct {
	Text     string `json:"text" validate:"required"`
	Provider string `json:"provider" validate:"required,oneof=openai gemini-pro gemini-flash"`
}

type TextToGlossResponse struct {
	Transcription    string    `json:"transcription"`
	Gloss            []string  `json:"gloss"`
	HistoryId        uuid.UUID `json:"history_id"`
	ProcessingTimeMs int       `json:"processing_time_ms"`
}

type TextToSummaryRequest struct {
	Text     string `json:"text" validate:"required"`
	Provider string `json:"provider" validate:"required,oneof=openai gemini-pro gemini-flash"`
}

type TextToSummaryResponse struct {
	Transcription    string    `json:"transcription"`
	Summary          string    `json:"summary"`
	HistoryId        uuid.UUID `json:"history_id"`
	ProcessingTimeMs int       `json:"processing_time_ms"`
}
