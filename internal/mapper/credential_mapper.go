package mapper

import (
	"github.com/Tarunsai01/ARIA/internal/entity"
	"github.com/Tarunsai01/ARIA/internal/model"
)

// CredentialMapper moves provider API keys between their persistence and
// domain shapes. The two structs are field-for-field identical, so both
// directions are direct conversions.
type CredentialMapper struct{}

func NewCredentialMapper() *CredentialMapper {
	return &CredentialMapper{}
}

func (m *CredentialMapper) ToEntity(c *model.UserCredential) *entity.UserCredential {
	if c == nil {
		return nil
	}
	e := entity.UserCredential(*c)
	return &e
}

func (m *CredentialMapper) ToModel(c *entity.UserCredential) *model.UserCredential {
	if c == nil {
		return nil
	}
	mo := model.UserCredential(*c)
	return &mo
}

func (m *CredentialMapper) ToEntities(creds []*model.UserCredential) []*entity.UserCredential {
	entities := make([]*entity.UserCredential, len(creds))
	for i, c := range creds {
		entities[i] = m.ToEntity(c)
	}
	return entities
}

func (m *CredentialMapper) ToModels(creds []*entity.UserCredential) []*model.UserCredential {
	models := make([]*model.UserCredential, len(creds))
	for i, c := range creds {
		models[i] = m.ToModel(c)
	}
	return models
}
