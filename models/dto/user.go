package dto

import (
	"time"

	models "LoveForTennis/models/postgres"
)

// User is the admin listing view of a member.
type User struct {
	ID          string     `json:"id"`
	Email       string     `json:"email"`
	FirstName   string     `json:"firstName"`
	LastName    string     `json:"lastName"`
	CreatedAt   time.Time  `json:"createdAt"`
	LastLoginAt *time.Time `json:"lastLoginAt"`
	Roles       []string   `json:"roles"`
}

func NewUser(u *models.User) User {
	roles := []string{}
	for _, c := range u.Claims {
		if c.ClaimType == models.ClaimTypeRole {
			roles = append(roles, c.ClaimValue)
		}
	}
	return User{
		ID:          u.ID,
		Email:       u.Email,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		CreatedAt:   u.CreatedAt,
		LastLoginAt: u.LastLoginAt,
		Roles:       roles,
	}
}
