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

type CustomerHandler struct {
	customerService   *service.CustomerService
	settlementService *service.SettlementService
	validator         *validator.Validate
}

func NewCustomerHandler(customerService *service.CustomerService, settlementService *service.SettlementService) *CustomerHandler {
	return &CustomerHandler{
		customerService:   customerService,
		settlementService: settlementService,
		validator:         validator.New(),
	}
}

func (h *CustomerHandler) CreateCustomer() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		var req models.CreateCustomerRequest
		if !utils.ParseAndValidate(w, r, &req, h.validator) {
			logger.Warn("Invalid create customer input")
			return
		}

		customer, err := h.customerService.CreateCustomer(r.Context(), &req)
		if err != nil {
			logger.Error("Failed to create customer", slog.Any("error", err))
			response.Error(w, err)

			return
		}

		logger.Info("Customer created successfully", slog.String("customerId", customer.ID))
		response.Success(w, http.StatusCreated, customer)
	}
}

func (h *CustomerHandler) GetCustomer() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		id := r.PathValue("id")
		if id == "" {
			response.Error(w, errors.BadRequestError("Customer ID is required"))

			return
		}

		customer, err := h.customerService.GetCustomerByID(r.Context(), id)
		if err != nil {
			logger.Warn("Failed to get customer", slog.String("customerId", id), slog.Any("error", err))
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, customer)
	}
}

func (h *CustomerHandler) UpdateCustomer() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		id := r.PathValue("id")
		if id == "" {
			response.Error(w, errors.BadRequestError("Customer ID is required"))

			return
		}

		var req models.UpdateCustomerRequest
		if !utils.ParseAndValidate(w, r, &req, h.validator) {
			logger.Warn("Invalid update customer input")
			return
		}

		customer, err := h.customerService.UpdateCustomer(r.Context(), id, &req)
		if err != nil {
			logger.Error("Failed to update customer", slog.String("customerId", id), slog.Any("error", err))
			response.Error(w, err)

			return
		}

		logger.Info("Customer updated successfully", slog.String("customerId", customer.ID))
		response.Success(w, http.StatusOK, customer)
	}
}

func (h *CustomerHandler) ListCustomers() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		customers, err := h.customerService.ListCustomers(r.Context())
		if err != nil {
			logger.Error("Failed to list customers", slog.Any("error", err))
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, customers)
	}
}

// GetHistory returns the customer's ledger entries, newest first.
func (h *CustomerHandler) GetHistory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		id := r.PathValue("id")
		if id == "" {
			response.Error(w, errors.BadRequestError("Customer ID is required"))

			return
		}

		transactions, err := h.customerService.GetPurchaseHistory(r.Context(), id)
		if err != nil {
			logger.Warn("Failed to get purchase history", slog.String("customerId", id), slog.Any("error", err))
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, transactions)
	}
}

// PayDebt records a cash payment against the customer's store credit balance.
func (h *CustomerHandler) PayDebt() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		id := r.PathValue("id")
		if id == "" {
			response.Error(w, errors.BadRequestError("Customer ID is required"))

			return
		}

		var req models.DebtPaymentRequest
		if !utils.ParseAndValidate(w, r, &req, h.validator) {
			logger.Warn("Invalid debt payment input")
			return
		}

		txn, err := h.settlementService.ApplyDebtPayment(r.Context(), id, &req)
		if err != nil {
			logger.Error("Failed to apply debt payment", slog.String("customerId", id), slog.Any("error", err))
			response.Error(w, err)

			return
		}

		logger.Info("Debt payment recorded", slog.String("customerId", id), slog.String("transactionId", txn.ID))
		response.Success(w, http.StatusCreated, txn)
	}
}
