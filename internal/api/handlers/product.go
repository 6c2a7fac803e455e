package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/qikpos/pos-platform/internal/api/middleware"
	"github.com/qikpos/pos-platform/internal/errors"
	"github.com/qikpos/pos-platform/internal/models"
	service "github.com/qikpos/pos-platform/internal/services"
	"github.com/qikpos/pos-platform/internal/utils"
	"github.com/qikpos/pos-platform/internal/utils/response"
)

type ProductHandler struct {
	catalogService *service.CatalogService
	validator      *validator.Validate
}

func NewProductHandler(catalogService *service.CatalogService) *ProductHandler {
	return &ProductHandler{catalogService: catalogService, validator: validator.New()}
}

func (h *ProductHandler) CreateProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		var req models.CreateProductRequest
		if !utils.ParseAndValidate(w, r, &req, h.validator) {
			logger.Warn("Invalid create product input")
			return
		}

		product, err := h.catalogService.CreateProduct(r.Context(), &req)
		if err != nil {
			logger.Error("Failed to create product", slog.Any("error", err))
			response.Error(w, err)

			return
		}

		logger.Info("Product created successfully", slog.String("productId", product.ID))
		response.Success(w, http.StatusCreated, product)
	}
}

func (h *ProductHandler) GetProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		id := r.PathValue("id")
		if id == "" {
			response.Error(w, errors.BadRequestError("Product ID is required"))

			return
		}

		product, err := h.catalogService.GetProductByID(r.Context(), id)
		if err != nil {
			logger.Warn("Failed to get product", slog.String("productId", id), slog.Any("error", err))
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, product)
	}
}

func (h *ProductHandler) UpdateProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		id := r.PathValue("id")
		if id == "" {
			response.Error(w, errors.BadRequestError("Product ID is required"))

			return
		}

		var req models.UpdateProductRequest
		if !utils.ParseAndValidate(w, r, &req, h.validator) {
			logger.Warn("Invalid update product input")
			return
		}

		product, err := h.catalogService.UpdateProduct(r.Context(), id, &req)
		if err != nil {
			logger.Error("Failed to update product", slog.String("productId", id), slog.Any("error", err))
			response.Error(w, err)

			return
		}

		logger.Info("Product updated successfully", slog.String("productId", product.ID))
		response.Success(w, http.StatusOK, product)
	}
}

func (h *ProductHandler) ListProducts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		products, err := h.catalogService.ListProducts(r.Context())
		if err != nil {
			logger.Error("Failed to list products", slog.Any("error", err))
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, products)
	}
}

func (h *ProductHandler) ListLowStock() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		products, err := h.catalogService.ListLowStockProducts(r.Context())
		if err != nil {
			logger.Error("Failed to list low stock products", slog.Any("error", err))
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, products)
	}
}
