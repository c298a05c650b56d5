package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Business is one restaurant location managed through the back office.
type Business struct {
	ID        uuid.UUID      `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name      string         `gorm:"column:name;not null"`
	Timezone  string         `gorm:"column:timezone;not null;default:'Europe/Istanbul'"`
	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time      `gorm:"column:updated_at;autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index"`
}
