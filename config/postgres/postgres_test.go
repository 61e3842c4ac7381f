package postgres_test

import (
	pgconfig "LoveForTennis/config/postgres"
	models "LoveForTennis/models/postgres"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func TestMigrateDatabaseOnSQLite(t *testing.T) {
	db, err := pgconfig.OpenSQLite("file:migrate_test?mode=memory&cache=shared", false)
	require.NoError(t, err)

	require.NoError(t, pgconfig.MigrateDatabase(db))
	// Running twice must be harmless.
	require.NoError(t, pgconfig.MigrateDatabase(db))

	for _, table := range []string{"users", "user_claims", "courts", "bookings", "booking_players", "dummy_entities"} {
		assert.True(t, db.Migrator().HasTable(table), table)
	}
}

func TestCourtWindowSurvivesRoundTrip(t *testing.T) {
	db, err := pgconfig.OpenSQLite("file:court_window_test?mode=memory&cache=shared", false)
	require.NoError(t, err)
	require.NoError(t, pgconfig.MigrateDatabase(db))

	court := models.Court{
		Name:                   "Court 1",
		SurfaceType:            models.SurfaceClay,
		AllowedBookingTimeType: models.BookingTimeHour,
		InOrOutdoorType:        models.Outdoor,
		BookingAllowedFrom:     datatypes.NewTime(7, 0, 0, 0),
		BookingAllowedTill:     datatypes.NewTime(22, 0, 0, 0),
	}
	require.NoError(t, db.Create(&court).Error)

	var stored models.Court
	require.NoError(t, db.First(&stored, court.ID).Error)
	assert.Equal(t, 7*time.Hour, time.Duration(stored.BookingAllowedFrom))
	assert.Equal(t, 22*time.Hour, time.Duration(stored.BookingAllowedTill))
}

func TestForeignKeysAreEnforced(t *testing.T) {
	db, err := pgconfig.OpenSQLite("file:fk_test?mode=memory&cache=shared", false)
	require.NoError(t, err)
	require.NoError(t, pgconfig.MigrateDatabase(db))

	claim := models.UserClaim{UserID: "no-such-user", ClaimType: models.ClaimTypeRole, ClaimValue: models.RolePlayer}
	assert.Error(t, db.Create(&claim).Error)
}
