// Package seed fills an empty database with the principal users, the
// reference courts and the sample dummy entities. Every step checks what
// already exists, so running it on each start is safe.
package seed

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	models "LoveForTennis/models/postgres"
	"LoveForTennis/repository"
	"LoveForTennis/services/identity"
	"LoveForTennis/services/role"

	"gorm.io/datatypes"
)

// DefaultPassword of every seeded principal user.
const DefaultPassword = "Test1234!"

type Seeder struct {
	users    repository.UserRepository
	courts   repository.CourtRepository
	dummies  repository.DummyRepository
	roles    *role.Service
	identity identity.Provider
}

func NewSeeder(users repository.UserRepository, courts repository.CourtRepository, dummies repository.DummyRepository,
	roles *role.Service, provider identity.Provider) *Seeder {
	return &Seeder{users: users, courts: courts, dummies: dummies, roles: roles, identity: provider}
}

func (s *Seeder) Run(ctx context.Context) error {
	if err := s.seedUsers(ctx); err != nil {
		return fmt.Errorf("seed users: %w", err)
	}
	if err := s.seedCourts(ctx); err != nil {
		return fmt.Errorf("seed courts: %w", err)
	}
	if err := s.seedDummies(ctx); err != nil {
		return fmt.Errorf("seed dummy entities: %w", err)
	}
	return nil
}

// PrincipalEmail is the login of the seeded user holding role.
func PrincipalEmail(role string) string {
	return strings.ToLower(role) + "@dummy.com"
}

// principalRoles are the roles of the seeded user for roleName. Every
// principal is also a Player.
func principalRoles(roleName string) []string {
	if roleName == models.RolePlayer {
		return []string{models.RolePlayer}
	}
	return []string{roleName, models.RolePlayer}
}

func (s *Seeder) seedUsers(ctx context.Context) error {
	for _, roleName := range models.AllRoles {
		email := PrincipalEmail(roleName)
		existing, err := s.users.GetByEmail(ctx, email)
		if err == nil {
			if err := s.repairRoles(ctx, existing, principalRoles(roleName)); err != nil {
				return err
			}
			continue
		}
		if !repository.IsNotFound(err) {
			return err
		}

		hash, err := s.identity.HashPassword(DefaultPassword)
		if err != nil {
			return err
		}
		user := &models.User{
			Email:        email,
			FirstName:    roleName,
			LastName:     roleName,
			PasswordHash: hash,
			CreatedAt:    time.Now().UTC(),
		}
		var claims []models.UserClaim
		for _, r := range principalRoles(roleName) {
			claims = append(claims, models.UserClaim{ClaimType: models.ClaimTypeRole, ClaimValue: r})
		}
		if err := s.users.CreateWithClaims(ctx, user, claims); err != nil {
			return err
		}
		log.Printf("[SEED] Created principal user %s", email)
	}
	return nil
}

// repairRoles assigns the principal roles missing from an existing user.
func (s *Seeder) repairRoles(ctx context.Context, user *models.User, want []string) error {
	for _, r := range want {
		if s.roles.HasRole(ctx, user, r) {
			continue
		}
		if !s.roles.AssignRole(ctx, user, r) {
			return fmt.Errorf("assign role %s to %s", r, user.Email)
		}
		log.Printf("[SEED] Restored role %s of %s", r, user.Email)
	}
	return nil
}

func intPtr(v int) *int { return &v }

// DefaultCourts are created when the courts table is empty.
func DefaultCourts() []models.Court {
	return []models.Court{
		{
			Name:                                     "Court 1",
			Description:                              "Clay outdoor court with hourly booking",
			SurfaceType:                              models.SurfaceClay,
			AllowedBookingTimeType:                   models.BookingTimeHour,
			InOrOutdoorType:                          models.Outdoor,
			BookingAllowedFrom:                       datatypes.NewTime(7, 0, 0, 0),
			BookingAllowedTill:                       datatypes.NewTime(22, 0, 0, 0),
			BookingsOpenForNumberOfDaysIntoTheFuture: intPtr(14),
		},
		{
			Name:                                     "Court 2",
			Description:                              "RedPlus outdoor court with hourly booking",
			SurfaceType:                              models.SurfaceRedPlus,
			AllowedBookingTimeType:                   models.BookingTimeHour,
			InOrOutdoorType:                          models.Outdoor,
			BookingAllowedFrom:                       datatypes.NewTime(7, 0, 0, 0),
			BookingAllowedTill:                       datatypes.NewTime(22, 0, 0, 0),
			BookingsOpenForNumberOfDaysIntoTheFuture: intPtr(14),
		},
		{
			Name:                                     "Court 3",
			Description:                              "Hard indoor court with half-hour booking",
			SurfaceType:                              models.SurfaceHard,
			AllowedBookingTimeType:                   models.BookingTimeHalfHour,
			InOrOutdoorType:                          models.Indoor,
			BookingAllowedFrom:                       datatypes.NewTime(6, 0, 0, 0),
			BookingAllowedTill:                       datatypes.NewTime(23, 0, 0, 0),
			BookingsOpenForNumberOfDaysIntoTheFuture: intPtr(7),
		},
	}
}

func (s *Seeder) seedCourts(ctx context.Context) error {
	count, err := s.courts.Count(ctx)
	if err != nil || count > 0 {
		return err
	}
	courts := DefaultCourts()
	for i := range courts {
		if err := s.courts.Create(ctx, &courts[i]); err != nil {
			return err
		}
	}
	log.Println("[SEED] Created reference courts")
	return nil
}

func (s *Seeder) seedDummies(ctx context.Context) error {
	count, err := s.dummies.Count(ctx)
	if err != nil || count > 0 {
		return err
	}
	entities := []models.DummyEntity{
		{Name: "Tennis Ball", Description: "Professional tennis ball for tournaments"},
		{Name: "Tennis Racket", Description: "High-quality tennis racket for professional players"},
		{Name: "Tennis Court", Description: "Standard size tennis court with clay surface"},
	}
	for i := range entities {
		if err := s.dummies.Create(ctx, &entities[i]); err != nil {
			return err
		}
	}
	log.Println("[SEED] Created dummy entities")
	return nil
}
