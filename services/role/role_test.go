package role_test

import (
	"context"
	"testing"

	models "LoveForTennis/models/postgres"
	"LoveForTennis/repository"
	"LoveForTennis/services/role"
	"LoveForTennis/utils/testdb"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssignAndQueryRoles(t *testing.T) {
	users := repository.NewGormUserRepository(testdb.New(t))
	svc := role.NewService(users)
	ctx := context.Background()

	user := &models.User{Email: "coach@dummy.com", PasswordHash: "x"}
	require.NoError(t, users.Create(ctx, user))

	assert.Empty(t, svc.GetRoles(ctx, user))
	assert.False(t, svc.HasRole(ctx, user, models.RoleCoach))

	assert.True(t, svc.AssignRole(ctx, user, models.RoleCoach))
	assert.True(t, svc.AssignRole(ctx, user, models.RolePlayer))

	assert.Equal(t, []string{models.RoleCoach, models.RolePlayer}, svc.GetRoles(ctx, user))
	assert.Len(t, svc.GetRoleClaims(ctx, user), 2)
	assert.True(t, svc.HasRole(ctx, user, models.RoleCoach))
	assert.False(t, svc.HasRole(ctx, user, models.RoleAdmin))
}

func TestRolesAreSetMembership(t *testing.T) {
	users := repository.NewGormUserRepository(testdb.New(t))
	svc := role.NewService(users)
	ctx := context.Background()

	user := &models.User{Email: "player@dummy.com", PasswordHash: "x"}
	require.NoError(t, users.Create(ctx, user))
	svc.AssignRole(ctx, user, models.RolePlayer)
	svc.AssignRole(ctx, user, models.RolePlayer)

	assert.Equal(t, []string{models.RolePlayer}, svc.GetRoles(ctx, user))
}

func TestAssignRoleToUnknownUserFails(t *testing.T) {
	svc := role.NewService(repository.NewGormUserRepository(testdb.New(t)))

	ok := svc.AssignRole(context.Background(), &models.User{ID: "missing"}, models.RolePlayer)
	assert.False(t, ok)
}
