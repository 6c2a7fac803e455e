package service_test

import (
	"context"
	"testing"

	cachemocks "github.com/qikpos/pos-platform/internal/cache/mocks"
	"github.com/qikpos/pos-platform/internal/models"
	repository "github.com/qikpos/pos-platform/internal/repositories"
	"github.com/qikpos/pos-platform/internal/repositories/mocks"
	service "github.com/qikpos/pos-platform/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestGetSettings(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - Stored Settings Returned And Cached", func(t *testing.T) {
		// Arrange
		repo := new(mocks.SettingsRepository)
		cacheMock := new(cachemocks.Cache)
		svc := service.NewSettingsService(repo, cacheMock)

		stored := &models.StoreSettings{StoreName: "Corner Shop", CurrencySymbol: "$", TaxRate: 0.05}

		cacheMock.On("Get", mock.Anything, "settings:store", mock.Anything).Return(false, nil).Once()
		repo.On("GetSettings", mock.Anything).Return(stored, nil).Once()
		cacheMock.On("Set", mock.Anything, "settings:store", stored, mock.Anything).Return(nil).Once()

		// Act
		settings, err := svc.GetSettings(ctx)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "Corner Shop", settings.StoreName)

		cacheMock.AssertExpectations(t)
	})

	t.Run("Success - Defaults When Nothing Stored", func(t *testing.T) {
		// Arrange
		repo := new(mocks.SettingsRepository)
		cacheMock := new(cachemocks.Cache)
		svc := service.NewSettingsService(repo, cacheMock)

		cacheMock.On("Get", mock.Anything, "settings:store", mock.Anything).Return(false, nil).Once()
		repo.On("GetSettings", mock.Anything).Return(nil, repository.ErrNotFound).Once()

		// Act
		settings, err := svc.GetSettings(ctx)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "QikPOS AI", settings.StoreName)
		assert.InDelta(t, 0.08, settings.TaxRate, 0.0001)
	})
}

func TestUpdateSettings(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - Receipt Text Sanitized And Cache Invalidated", func(t *testing.T) {
		// Arrange
		repo := new(mocks.SettingsRepository)
		cacheMock := new(cachemocks.Cache)
		svc := service.NewSettingsService(repo, cacheMock)

		repo.On("SaveSettings", mock.Anything, mock.AnythingOfType("*models.StoreSettings")).Return(nil).Once()
		cacheMock.On("Delete", mock.Anything, "settings:store").Return(nil).Once()

		// Act
		settings, err := svc.UpdateSettings(ctx, &models.StoreSettings{
			StoreName:      "Corner Shop",
			CurrencySymbol: "$",
			TaxRate:        0.05,
			ReceiptHeader:  `Thanks!<script>alert("x")</script>`,
			ReceiptFooter:  "Come <b>again</b>",
		})

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "Thanks!", settings.ReceiptHeader)
		assert.Equal(t, "Come again", settings.ReceiptFooter)

		cacheMock.AssertExpectations(t)
	})

	t.Run("Error - Save Failure Skips Invalidation", func(t *testing.T) {
		// Arrange
		repo := new(mocks.SettingsRepository)
		cacheMock := new(cachemocks.Cache)
		svc := service.NewSettingsService(repo, cacheMock)

		repo.On("SaveSettings", mock.Anything, mock.Anything).Return(assert.AnError).Once()

		// Act
		settings, err := svc.UpdateSettings(ctx, &models.StoreSettings{StoreName: "Corner Shop", CurrencySymbol: "$"})

		// Assert
		require.Error(t, err)
		assert.Nil(t, settings)

		cacheMock.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}
