package mapper

import (
	"tutorai-be/internal/entity"
	"tutorai-be/internal/model"

	"gorm.io/datatypes"
)

type ProfileMapper struct{}

func NewProfileMapper() *ProfileMapper {
	return &ProfileMapper{}
}

func (m *ProfileMapper) ToEntity(model *model.Profile) *entity.Profile {
	if model == nil {
		return nil
	}
	fields := make(map[string]interface{}, len(model.Fields))
	for k, v := range model.Fields {
		fields[k] = v
	}
	return &entity.Profile{
		UserId:    model.UserId,
		Fields:    fields,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
}

func (m *ProfileMapper) ToModel(entity *entity.Profile) *model.Profile {
	if entity == nil {
		return nil
	}
	fields := make(datatypes.JSONMap, len(entity.Fields))
	for k, v := range entity.Fields {
		fields[k] = v
	}
	return &model.Profile{
		UserId:    entity.UserId,
		Fields:    fields,
		CreatedAt: entity.CreatedAt,
		UpdatedAt: entity.UpdatedAt,
	}
}
