package repository_test

import (
	"testing"
	"time"

	"passkey_auth_ms/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestPasskeyGetByUserAndCredentialID_ScopedByOwner(t *testing.T) {
	conn, mock := SetupMockDB(t)

	credID := []byte{0x01, 0x02, 0x03}
	rows := sqlmock.NewRows([]string{"id", "user_id", "credential_id", "sign_count"}).
		AddRow(7, 42, credID, 5)

	mock.ExpectQuery(`SELECT \* FROM "user_passkeys" WHERE user_id = \$1 AND credential_id = \$2`).
		WithArgs(42, credID, 1).
		WillReturnRows(rows)

	repo := repository.NewPasskeyRepository()
	passkey, err := repo.GetByUserAndCredentialID(conn, 42, credID)

	assert.NoError(t, err)
	assert.NotNil(t, passkey)
	assert.Equal(t, uint(42), passkey.UserID)
	assert.Equal(t, uint32(5), passkey.SignCount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPasskeyGetByUserAndCredentialID_OtherOwnerNotFound(t *testing.T) {
	conn, mock := SetupMockDB(t)

	credID := []byte{0x01, 0x02, 0x03}
	mock.ExpectQuery(`SELECT \* FROM "user_passkeys" WHERE user_id = \$1 AND credential_id = \$2`).
		WithArgs(99, credID, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	repo := repository.NewPasskeyRepository()
	passkey, err := repo.GetByUserAndCredentialID(conn, 99, credID)

	assert.Nil(t, passkey)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPasskeyGetAllByUser_Empty(t *testing.T) {
	conn, mock := SetupMockDB(t)

	mock.ExpectQuery(`SELECT \* FROM "user_passkeys" WHERE user_id = \$1`).
		WithArgs(42).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "credential_id"}))

	repo := repository.NewPasskeyRepository()
	passkeys, err := repo.GetAllByUser(conn, 42)

	assert.NoError(t, err)
	assert.Empty(t, passkeys)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPasskeyUpdateAfterLogin(t *testing.T) {
	conn, mock := SetupMockDB(t)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "user_passkeys" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	repo := repository.NewPasskeyRepository()
	err := repo.UpdateAfterLogin(conn, 7, 6, true, time.Now())

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
