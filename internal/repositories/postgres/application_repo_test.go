package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/FractalFish/recruitment-portal/internal/models"
	"github.com/FractalFish/recruitment-portal/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gormpg "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	gdb, err := gorm.Open(gormpg.New(gormpg.Config{
		Conn:                 db,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		SkipDefaultTransaction: true,
		DisableAutomaticPing:   true,
	})
	require.NoError(t, err)

	return gdb, mock
}

var appColumns = []string{
	"application_id", "person_id", "status",
	"created_at", "updated_at", "version", "history_log",
}

func appRow(id, personID uint, status string, version int) *sqlmock.Rows {
	now := time.Now().UTC()
	return sqlmock.NewRows(appColumns).
		AddRow(id, personID, status, now, now, version, []byte(`[]`))
}

func TestUpdateStatus_ConflictDetectedOnRead(t *testing.T) {
	gdb, mock := newMockDB(t)
	repo := NewApplicationRepo(gdb)

	// stored version already advanced to 4
	mock.ExpectQuery(`SELECT \* FROM "application" WHERE application_id = \$1`).
		WillReturnRows(appRow(42, 7, "UNHANDLED", 4))

	_, err := repo.UpdateStatus(context.Background(), 42, models.StatusAccepted, ExpectedVersion(3))
	assert.ErrorIs(t, err, utils.ErrVersionConflict)
	assert.NoError(t, mock.ExpectationsWereMet(), "no write may be attempted after a conflict")
}

func TestUpdateStatus_ConflictDetectedOnWrite(t *testing.T) {
	gdb, mock := newMockDB(t)
	repo := NewApplicationRepo(gdb)

	mock.ExpectQuery(`SELECT \* FROM "application" WHERE application_id = \$1`).
		WillReturnRows(appRow(42, 7, "UNHANDLED", 3))

	// a concurrent writer advanced the version between read and write
	mock.ExpectQuery(`UPDATE "application" SET`).
		WillReturnRows(sqlmock.NewRows(appColumns))

	_, err := repo.UpdateStatus(context.Background(), 42, models.StatusAccepted, ExpectedVersion(3))
	assert.ErrorIs(t, err, utils.ErrVersionConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateStatus_SuccessReturnsNewVersion(t *testing.T) {
	gdb, mock := newMockDB(t)
	repo := NewApplicationRepo(gdb)

	mock.ExpectQuery(`SELECT \* FROM "application" WHERE application_id = \$1`).
		WillReturnRows(appRow(42, 7, "UNHANDLED", 3))

	mock.ExpectQuery(`UPDATE "application" SET`).
		WillReturnRows(appRow(42, 7, "ACCEPTED", 4))

	app, err := repo.UpdateStatus(context.Background(), 42, models.StatusAccepted, ExpectedVersion(3))
	require.NoError(t, err)
	assert.Equal(t, models.StatusAccepted, app.Status)
	assert.Equal(t, 4, app.Version)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateStatus_NotFound(t *testing.T) {
	gdb, mock := newMockDB(t)
	repo := NewApplicationRepo(gdb)

	mock.ExpectQuery(`SELECT \* FROM "application" WHERE application_id = \$1`).
		WillReturnRows(sqlmock.NewRows(appColumns))

	_, err := repo.UpdateStatus(context.Background(), 404, models.StatusAccepted, Unconditional())
	assert.ErrorIs(t, err, utils.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVersionCheck(t *testing.T) {
	_, enforced := Unconditional().Expected()
	assert.False(t, enforced)

	v, enforced := ExpectedVersion(7).Expected()
	assert.True(t, enforced)
	assert.Equal(t, 7, v)
}
