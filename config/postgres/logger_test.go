package postgres

import (
	"bytes"
	"testing"

	models "LoveForTennis/models/postgres"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestQuietLoggerSkipsMissingRows(t *testing.T) {
	var out bytes.Buffer
	db, err := gorm.Open(sqlite.Open("file:quiet_logger_test?mode=memory&cache=shared"), gormConfigTo(&out, false))
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.DummyEntity{}))

	var dummy models.DummyEntity
	err = db.First(&dummy, "id = ?", 404).Error
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.Empty(t, out.String())

	err = db.Exec("SELECT * FROM no_such_table").Error
	assert.Error(t, err)
	assert.Contains(t, out.String(), "no_such_table")
}
