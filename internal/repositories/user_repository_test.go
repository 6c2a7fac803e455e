package repository_test

import (
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/qikpos/pos-platform/internal/models"
	repository "github.com/qikpos/pos-platform/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	repo := repository.NewUserRepo(db)
	ctx := t.Context()
	now := time.Now()

	userColumns := []string{"id", "name", "pin", "role", "created_at", "updated_at"}

	t.Run("CreateUser", func(t *testing.T) {
		t.Run("Success", func(t *testing.T) {
			// Arrange
			user := &models.User{ID: "u2", Name: "John Doe", PIN: "0000", Role: models.RoleStaff}

			mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO users`)).
				WithArgs(user.ID, user.Name, user.PIN, user.Role).
				WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

			// Act
			err := repo.CreateUser(ctx, user)

			// Assert
			require.NoError(t, err)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	})

	t.Run("GetUserByID", func(t *testing.T) {
		t.Run("Success", func(t *testing.T) {
			// Arrange
			mock.ExpectQuery(`SELECT (.+) FROM users WHERE id = \$1`).
				WithArgs("u1").
				WillReturnRows(sqlmock.NewRows(userColumns).
					AddRow("u1", "Admin User", "1234", "ADMIN", now, now))

			// Act
			user, err := repo.GetUserByID(ctx, "u1")

			// Assert
			require.NoError(t, err)
			assert.Equal(t, models.RoleAdmin, user.Role)
			assert.Equal(t, "1234", user.PIN)
			require.NoError(t, mock.ExpectationsWereMet())
		})

		t.Run("Error - Not Found", func(t *testing.T) {
			// Arrange
			mock.ExpectQuery(`SELECT (.+) FROM users WHERE id = \$1`).
				WithArgs("missing").
				WillReturnRows(sqlmock.NewRows(userColumns))

			// Act
			user, err := repo.GetUserByID(ctx, "missing")

			// Assert
			require.ErrorIs(t, err, repository.ErrNotFound)
			assert.Nil(t, user)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	})

	t.Run("UpdateUser", func(t *testing.T) {
		t.Run("Success", func(t *testing.T) {
			// Arrange
			user := &models.User{ID: "u2", Name: "Johnny Doe", PIN: "4321", Role: models.RoleStaff}

			mock.ExpectQuery(regexp.QuoteMeta(`UPDATE users SET`)).
				WithArgs(user.Name, user.PIN, user.Role, user.ID).
				WillReturnRows(sqlmock.NewRows([]string{"updated_at"}).AddRow(now))

			// Act
			err := repo.UpdateUser(ctx, user)

			// Assert
			require.NoError(t, err)
			require.NoError(t, mock.ExpectationsWereMet())
		})

		t.Run("Error - Not Found", func(t *testing.T) {
			// Arrange
			user := &models.User{ID: "missing", Name: "Ghost", PIN: "0000", Role: models.RoleStaff}

			mock.ExpectQuery(regexp.QuoteMeta(`UPDATE users SET`)).
				WillReturnRows(sqlmock.NewRows([]string{"updated_at"}))

			// Act
			err := repo.UpdateUser(ctx, user)

			// Assert
			require.ErrorIs(t, err, repository.ErrNotFound)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	})

	t.Run("DeleteUser", func(t *testing.T) {
		t.Run("Success", func(t *testing.T) {
			// Arrange
			mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM users WHERE id = $1`)).
				WithArgs("u3").
				WillReturnResult(sqlmock.NewResult(0, 1))

			// Act
			err := repo.DeleteUser(ctx, "u3")

			// Assert
			require.NoError(t, err)
			require.NoError(t, mock.ExpectationsWereMet())
		})

		t.Run("Error - Not Found", func(t *testing.T) {
			// Arrange
			mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM users WHERE id = $1`)).
				WithArgs("missing").
				WillReturnResult(sqlmock.NewResult(0, 0))

			// Act
			err := repo.DeleteUser(ctx, "missing")

			// Assert
			require.ErrorIs(t, err, repository.ErrNotFound)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	})

	t.Run("ListUsers", func(t *testing.T) {
		t.Run("Success", func(t *testing.T) {
			// Arrange
			mock.ExpectQuery(`SELECT (.+) FROM users ORDER BY created_at`).
				WillReturnRows(sqlmock.NewRows(userColumns).
					AddRow("u1", "Admin User", "1234", "ADMIN", now, now).
					AddRow("u2", "John Doe", "0000", "STAFF", now, now))

			// Act
			users, err := repo.ListUsers(ctx)

			// Assert
			require.NoError(t, err)
			require.Len(t, users, 2)
			assert.Equal(t, models.RoleStaff, users[1].Role)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	})

	t.Run("CountAdmins", func(t *testing.T) {
		t.Run("Success", func(t *testing.T) {
			// Arrange
			mock.ExpectQuery(`SELECT COUNT\(\*\) FROM users WHERE role = \$1`).
				WithArgs(models.RoleAdmin).
				WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

			// Act
			count, err := repo.CountAdmins(ctx)

			// Assert
			require.NoError(t, err)
			assert.Equal(t, 1, count)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	})
}
