package repository_test

import (
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/qikpos/pos-platform/internal/models"
	repository "github.com/qikpos/pos-platform/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettingsRepository(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	repo := repository.NewSettingsRepo(db)
	ctx := t.Context()

	t.Run("GetSettings", func(t *testing.T) {
		t.Run("Success", func(t *testing.T) {
			// Arrange
			data := []byte(`{"storeName":"Corner Shop","currencySymbol":"$","taxRate":0.05}`)

			mock.ExpectQuery(regexp.QuoteMeta(`SELECT data FROM settings WHERE id = 1`)).
				WillReturnRows(sqlmock.NewRows([]string{"data"}).AddRow(data))

			// Act
			settings, err := repo.GetSettings(ctx)

			// Assert
			require.NoError(t, err)
			assert.Equal(t, "Corner Shop", settings.StoreName)
			assert.InDelta(t, 0.05, settings.TaxRate, 0.0001)
			require.NoError(t, mock.ExpectationsWereMet())
		})

		t.Run("Error - Not Found", func(t *testing.T) {
			// Arrange
			mock.ExpectQuery(regexp.QuoteMeta(`SELECT data FROM settings WHERE id = 1`)).
				WillReturnRows(sqlmock.NewRows([]string{"data"}))

			// Act
			settings, err := repo.GetSettings(ctx)

			// Assert
			require.ErrorIs(t, err, repository.ErrNotFound)
			assert.Nil(t, settings)
			require.NoError(t, mock.ExpectationsWereMet())
		})

		t.Run("Error - Corrupt Payload", func(t *testing.T) {
			// Arrange
			mock.ExpectQuery(regexp.QuoteMeta(`SELECT data FROM settings WHERE id = 1`)).
				WillReturnRows(sqlmock.NewRows([]string{"data"}).AddRow([]byte("not-json")))

			// Act
			settings, err := repo.GetSettings(ctx)

			// Assert
			require.Error(t, err)
			assert.Nil(t, settings)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	})

	t.Run("SaveSettings", func(t *testing.T) {
		t.Run("Success", func(t *testing.T) {
			// Arrange
			settings := models.DefaultStoreSettings()

			mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO settings (id, data) VALUES (1, $1)`)).
				WithArgs(sqlmock.AnyArg()).
				WillReturnResult(sqlmock.NewResult(0, 1))

			// Act
			err := repo.SaveSettings(ctx, &settings)

			// Assert
			require.NoError(t, err)
			require.NoError(t, mock.ExpectationsWereMet())
		})

		t.Run("Error", func(t *testing.T) {
			// Arrange
			settings := models.DefaultStoreSettings()

			mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO settings (id, data) VALUES (1, $1)`)).
				WillReturnError(assert.AnError)

			// Act
			err := repo.SaveSettings(ctx, &settings)

			// Assert
			require.Error(t, err)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	})
}
