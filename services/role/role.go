package role

import (
	"context"
	"log"

	models "LoveForTennis/models/postgres"
	"LoveForTennis/repository"
)

// Service manages roles stored as claims of type "role". Failures are
// logged and reported as false or empty results.
type Service struct {
	users repository.UserRepository
}

func NewService(users repository.UserRepository) *Service {
	return &Service{users: users}
}

func (s *Service) AssignRole(ctx context.Context, user *models.User, role string) bool {
	claim := &models.UserClaim{UserID: user.ID, ClaimType: models.ClaimTypeRole, ClaimValue: role}
	if err := s.users.AddClaim(ctx, claim); err != nil {
		log.Printf("[ROLE] Error assigning role %s to user %s: %v", role, user.ID, err)
		return false
	}
	return true
}

func (s *Service) GetRoleClaims(ctx context.Context, user *models.User) []models.UserClaim {
	claims, err := s.users.ListClaims(ctx, user.ID, models.ClaimTypeRole)
	if err != nil {
		log.Printf("[ROLE] Error reading role claims of user %s: %v", user.ID, err)
		return []models.UserClaim{}
	}
	return claims
}

// GetRoles returns the distinct role names of the user.
func (s *Service) GetRoles(ctx context.Context, user *models.User) []string {
	seen := make(map[string]bool)
	roles := []string{}
	for _, c := range s.GetRoleClaims(ctx, user) {
		if !seen[c.ClaimValue] {
			seen[c.ClaimValue] = true
			roles = append(roles, c.ClaimValue)
		}
	}
	return roles
}

func (s *Service) HasRole(ctx context.Context, user *models.User, role string) bool {
	for _, r := range s.GetRoles(ctx, user) {
		if r == role {
			return true
		}
	}
	return false
}
