package dto

import (
	"time"

	models "LoveForTennis/models/postgres"
)

type DummyEntity struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
}

func NewDummyEntity(d *models.DummyEntity) DummyEntity {
	return DummyEntity{ID: d.ID, Name: d.Name, Description: d.Description, CreatedAt: d.CreatedAt}
}
