// FILE: internal/dto/stream_dto.go
package dto

// --- Streaming chunk DTOs ---

// TranscriptionChunkSummaryRequest carries a transcription chunk from the
// client. Transcription is deliberately not required: an empty chunk is a
// graceful no-op that echoes the previous context back, never an error.
type TranscriptionChunkSummaryRequest struct {
	Transcription   string `json:"transcription"`
	PreviousContext string `json:"previous_context"`
	Provider        string `json:"provider" validate:"required,oneof=openai gemini-pro gemini-flash"`
}

// ChunkSummaryResponse is shared by the audio and transcription chunk routes.
// Success here is chunk-level: a skipped or failed chunk still returns 200
// with the previous summary preserved, so the client never loses context.
type ChunkSummaryResponse struct {
	Success          bool   `json:"success"`
	Transcription    string `json:"transcription"`
	Summary          string `json:"summary"`
	ProcessingTimeMs int    `json:"processing_time_ms"`
	Message          string `json:"message,omitempty"`
}
