package postgres

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
)

var ErrDummyNameRequired = errors.New("name is required")

type DummyEntity struct {
	ID          uint      `gorm:"primaryKey"`
	Name        string    `gorm:"size:100;not null"`
	Description string    `gorm:"size:500"`
	CreatedAt   time.Time `gorm:"not null"`
}

func (d *DummyEntity) BeforeSave(tx *gorm.DB) error {
	if strings.TrimSpace(d.Name) == "" {
		return ErrDummyNameRequired
	}
	return nil
}
