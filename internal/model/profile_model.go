package model

import (
	"time"

	"gorm.io/datatypes"
)

type Profile struct {
	UserId    string            `gorm:"type:varchar(64);primaryKey"`
	Fields    datatypes.JSONMap `gorm:"type:jsonb;not null;default:'{}'"`
	CreatedAt time.Time         `gorm:"autoCreateTime"`
	UpdatedAt time.Time         `gorm:"autoUpdateTime"`
}

func (Profile) TableName() string {
	return "profiles"
}
