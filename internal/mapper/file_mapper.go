package mapper

import (
	"github.com/Tarunsai01/ARIA/internal/entity"
	"github.com/Tarunsai01/ARIA/internal/model"
)

type FileMapper struct{}

func NewFileMapper() *FileMapper {
	return &FileMapper{}
}

func (m *FileMapper) ToEntity(f *model.UserFile) *entity.UserFile {
	if f == nil {
		return nil
	}
	return &entity.UserFile{
		Id:        f.Id,
		UserId:    f.UserId,
		FileType:  entity.FileType(f.FileType),
		FileName:  f.FileName,
		FilePath:  f.FilePath,
		FileSize:  f.FileSize,
		MimeType:  f.MimeType,
		CreatedAt: f.CreatedAt,
	}
}

func (m *FileMapper) ToModel(f *entity.UserFile) *model.UserFile {
	if f == nil {
		return nil
	}
	return &model.UserFile{
		Id:        f.Id,
		UserId:    f.UserId,
		FileType:  string(f.FileType),
		FileName:  f.FileName,
		FilePath:  f.FilePath,
		FileSize:  f.FileSize,
		MimeType:  f.MimeType,
		CreatedAt: f.CreatedAt,
	}
}

func (m *FileMapper) ToEntities(files []*model.UserFile) []*entity.UserFile {
	entities := make([]*entity.UserFile, len(files))
	for i, f := range files {
		entities[i] = m.ToEntity(f)
	}
	return entities
}

func (m *FileMapper) ToModels(files []*entity.UserFile) []*model.UserFile {
	models := make([]*model.UserFile, len(files))
	for i, f := range files {
		models[i] = m.ToModel(f)
	}
	return models
}
