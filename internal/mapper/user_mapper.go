package mapper

import (
	"github.com/Tarunsai01/ARIA/internal/entity"
	"github.com/Tarunsai01/ARIA/internal/model"
)

type UserMapper struct{}

func NewUserMapper() *UserMapper {
	return &UserMapper{}
}

// ToEntity copies field by field; Role and Status move from plain
// strings to their typed forms, and the gorm soft-delete column stays
// behind in the model.
func (m *UserMapper) ToEntity(u *model.User) *entity.User {
	if u == nil {
		return nil
	}
	return &entity.User{
		Id:              u.Id,
		Email:           u.Email,
		Username:        u.Username,
		PasswordHash:    u.PasswordHash,
		FullName:        u.FullName,
		Role:            entity.UserRole(u.Role),
		Status:          entity.UserStatus(u.Status),
		EmailVerified:   u.EmailVerified,
		EmailVerifiedAt: u.EmailVerifiedAt,
		AvatarURL:       u.AvatarURL,
		CreatedAt:       u.CreatedAt,
		UpdatedAt:       u.UpdatedAt,
	}
}

func (m *UserMapper) ToModel(u *entity.User) *model.User {
	if u == nil {
		return nil
	}
	return &model.User{
		Id:              u.Id,
		Email:           u.Email,
		Username:        u.Username,
		PasswordHash:    u.PasswordHash,
		FullName:        u.FullName,
		Role:            string(u.Role),
		Status:          string(u.Status),
		EmailVerified:   u.EmailVerified,
		EmailVerifiedAt: u.EmailVerifiedAt,
		AvatarURL:       u.AvatarURL,
		CreatedAt:       u.CreatedAt,
		UpdatedAt:       u.UpdatedAt,
	}
}

func (m *UserMapper) ToEntities(users []*model.User) []*entity.User {
	entities := make([]*entity.User, len(users))
	for i, u := range users {
		entities[i] = m.ToEntity(u)
	}
	return entities
}

func (m *UserMapper) ToModels(users []*entity.User) []*model.User {
	models := make([]*model.User, len(users))
	for i, u := range users {
		models[i] = m.ToModel(u)
	}
	return models
}

// The token tables carry no enum or soft-delete columns, so each model
// and its entity are field-for-field identical and convert directly.
// Tags do not count against convertibility.

func (m *UserMapper) PasswordResetTokenToEntity(t *model.PasswordResetToken) *entity.PasswordResetToken {
	if t == nil {
		return nil
	}
	e := entity.PasswordResetToken(*t)
	return &e
}

func (m *UserMapper) PasswordResetTokenToModel(t *entity.PasswordResetToken) *model.PasswordResetToken {
	if t == nil {
		return nil
	}
	mo := model.PasswordResetToken(*t)
	return &mo
}

func (m *UserMapper) UserProviderToEntity(p *model.UserProvider) *entity.UserProvider {
	if p == nil {
		return nil
	}
	e := entity.UserProvider(*p)
	return &e
}

func (m *UserMapper) UserProviderToModel(p *entity.UserProvider) *model.UserProvider {
	if p == nil {
		return nil
	}
	mo := model.UserProvider(*p)
	return &mo
}

func (m *UserMapper) EmailVerificationTokenToEntity(t *model.EmailVerificationToken) *entity.EmailVerificationToken {
	if t == nil {
		return nil
	}
	e := entity.EmailVerificationToken(*t)
	return &e
}

func (m *UserMapper) EmailVerificationTokenToModel(t *entity.EmailVerificationToken) *model.EmailVerificationToken {
	if t == nil {
		return nil
	}
	mo := model.EmailVerificationToken(*t)
	return &mo
}

func (m *UserMapper) UserRefreshTokenToEntity(t *model.UserRefreshToken) *entity.UserRefreshToken {
	if t == nil {
		return nil
	}
	e := entity.UserRefreshToken(*t)
	return &e
}

func (m *UserMapper) UserRefreshTokenToModel(t *entity.UserRefreshToken) *model.UserRefreshToken {
	if t == nil {
		return nil
	}
	mo := model.UserRefreshToken(*t)
	return &mo
}
