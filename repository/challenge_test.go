package repository_test

import (
	"testing"
	"time"

	"passkey_auth_ms/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestChallengeGetLatestByUser_OrdersByCreatedAtDesc(t *testing.T) {
	conn, mock := SetupMockDB(t)

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "user_id", "value", "created_at"}).
		AddRow(12, 42, "newest-challenge", now)

	mock.ExpectQuery(`SELECT \* FROM "webauthn_challenges" WHERE user_id = \$1 ORDER BY created_at DESC`).
		WithArgs(42, 1).
		WillReturnRows(rows)

	repo := repository.NewChallengeRepository()
	challenge, err := repo.GetLatestByUser(conn, 42)

	assert.NoError(t, err)
	assert.NotNil(t, challenge)
	assert.Equal(t, "newest-challenge", challenge.Value)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestChallengeGetLatestByUser_NoneStored(t *testing.T) {
	conn, mock := SetupMockDB(t)

	mock.ExpectQuery(`SELECT \* FROM "webauthn_challenges" WHERE user_id = \$1`).
		WithArgs(42, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	repo := repository.NewChallengeRepository()
	challenge, err := repo.GetLatestByUser(conn, 42)

	assert.Nil(t, challenge)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestChallengeDeleteByUser(t *testing.T) {
	conn, mock := SetupMockDB(t)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "webauthn_challenges" WHERE user_id = \$1`).
		WithArgs(42).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	repo := repository.NewChallengeRepository()
	err := repo.DeleteByUser(conn, 42)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
