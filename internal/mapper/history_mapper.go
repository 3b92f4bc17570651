package mapper

import (
	"encoding/json"

	"github.com/Tarunsai01/ARIA/internal/entity"
	"github.com/Tarunsai01/ARIA/internal/model"
)

type HistoryMapper struct{}

func NewHistoryMapper() *HistoryMapper {
	return &HistoryMapper{}
}

func (m *HistoryMapper) ToEntity(h *model.TranslationHistory) *entity.TranslationHistory {
	if h == nil {
		return nil
	}

	var gloss []string
	if len(h.OutputGloss) > 0 {
		// Stored as a JSON array; a corrupt value just yields no gloss.
		_ = json.Unmarshal(h.OutputGloss, &gloss)
	}

	return &entity.TranslationHistory{
		Id:               h.Id,
		UserId:           h.UserId,
		FileId:           h.FileId,
		OperationType:    entity.OperationType(h.OperationType),
		InputText:        h.InputText,
		OutputText:       h.OutputText,
		OutputGloss:      gloss,
		Provider:         h.Provider,
		Source:           h.Source,
		ProcessingTimeMs: h.ProcessingTimeMs,
		CreatedAt:        h.CreatedAt,
	}
}

func (m *HistoryMapper) ToModel(h *entity.TranslationHistory) *model.TranslationHistory {
	if h == nil {
		return nil
	}

	var gloss []byte
	if len(h.OutputGloss) > 0 {
		gloss, _ = json.Marshal(h.OutputGloss)
	}

	return &model.TranslationHistory{
		Id:               h.Id,
		UserId:           h.UserId,
		FileId:           h.FileId,
		OperationType:    string(h.OperationType),
		InputText:        h.InputText,
		OutputText:       h.OutputText,
		OutputGloss:      gloss,
		Provider:         h.Provider,
		Source:           h.Source,
		ProcessingTimeMs: h.ProcessingTimeMs,
		CreatedAt:        h.CreatedAt,
	}
}

func (m *HistoryMapper) ToEntities(records []*model.TranslationHistory) []*entity.TranslationHistory {
	entities := make([]*entity.TranslationHistory, len(records))
	for i, h := range records {
		entities[i] = m.ToEntity(h)
	}
	return entities
}

func (m *HistoryMapper) ToModels(records []*entity.TranslationHistory) []*model.TranslationHistory {
	models := make([]*model.TranslationHistory, len(records))
	for i, h := range records {
		models[i] = m.ToModel(h)
	}
	return models
}
