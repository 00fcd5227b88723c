package db_models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BaseModel stores timestamps as unix seconds so both stores and the API
// agree on one representation.
type BaseModel struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey"`
	CreatedAt int64          `gorm:"autoCreateTime"`
	UpdatedAt int64          `gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (b *BaseModel) BeforeCreate(_ *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	now := time.Now().Unix()
	if b.CreatedAt == 0 {
		b.CreatedAt = now
	}
	if b.UpdatedAt == 0 {
		b.UpdatedAt = now
	}
	return nil
}

func (b *BaseModel) BeforeSave(_ *gorm.DB) error {
	if b.ID != uuid.Nil && b.CreatedAt != 0 {
		b.UpdatedAt = time.Now().Unix()
	}
	return nil
}

// Created is the zero time for rows that were never stored.
func (b BaseModel) Created() time.Time { return unixTime(b.CreatedAt) }

func (b BaseModel) Updated() time.Time { return unixTime(b.UpdatedAt) }

func unixTime(sec int64) time.Time {
	if sec <= 0 {
		return time.Time{}
	}
	return time.Unix(sec, 0)
}
