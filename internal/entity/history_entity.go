// FILE: internal/entity/history_entity.go
package entity

import (
	"time"

	"github.com/google/uuid"
)

type OperationType string

const (
	OperationSpeechToSign OperationType = "speech_to_sign"
	OperationSignToSpeech OperationType = "sign_to_speech"
)

// TranslationHistory records one completed translation. Exactly one
// record is written per successful resolution; failed resolutions leave
// no trace here.
type TranslationHistory struct {
	Id               uuid.UUID
	UserId           uuid.UUID
	FileId           *uuid.UUID
	OperationType    OperationType
	InputText        *string
	OutputText       *string
	OutputGloss      []string
	Provider         string
	Source           string
	ProcessingTimeMs int
	CreatedAt        time.Time
}
