package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/qikpos/pos-platform/internal/api/middleware"
	"github.com/qikpos/pos-platform/internal/errors"
	models "github.com/qikpos/pos-platform/internal/models"
	service "github.com/qikpos/pos-platform/internal/services"
	"github.com/qikpos/pos-platform/internal/utils"
	"github.com/qikpos/pos-platform/internal/utils/response"
)

type UserHandler struct {
	userService *service.UserService
	validator   *validator.Validate
}

func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{userService: userService, validator: validator.New()}
}

func (h *UserHandler) Login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		var req models.LoginRequest
		if !utils.ParseAndValidate(w, r, &req, h.validator) {
			logger.Warn("Invalid login input")
			return
		}

		resp, err := h.userService.Login(r.Context(), &req)
		if err != nil {
			logger.Error("Login failed", slog.String("userId", req.UserID), slog.Any("error", err))
			response.Error(w, err)

			return
		}

		if !resp.Success {
			status := http.StatusUnauthorized
			if resp.RetryAfter > 0 {
				status = http.StatusTooManyRequests
			}

			logger.Warn("Login rejected", slog.String("userId", req.UserID))
			response.WriteJson(w, status, resp)

			return
		}

		logger.Info("User logged in", slog.String("userId", req.UserID))
		response.WriteJson(w, http.StatusOK, resp)
	}
}

func (h *UserHandler) CreateUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		var req models.CreateUserRequest
		if !utils.ParseAndValidate(w, r, &req, h.validator) {
			logger.Warn("Invalid create user input")
			return
		}

		user, err := h.userService.CreateUser(r.Context(), &req)
		if err != nil {
			logger.Error("Failed to create user", slog.Any("error", err))
			response.Error(w, err)

			return
		}

		logger.Info("User created successfully", slog.String("userId", user.ID))
		response.Success(w, http.StatusCreated, user)
	}
}

func (h *UserHandler) UpdateUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		id := r.PathValue("id")
		if id == "" {
			response.Error(w, errors.BadRequestError("User ID is required"))

			return
		}

		var req models.UpdateUserRequest
		if !utils.ParseAndValidate(w, r, &req, h.validator) {
			logger.Warn("Invalid update user input")
			return
		}

		user, err := h.userService.UpdateUser(r.Context(), id, &req)
		if err != nil {
			logger.Error("Failed to update user", slog.String("userId", id), slog.Any("error", err))
			response.Error(w, err)

			return
		}

		logger.Info("User updated successfully", slog.String("userId", user.ID))
		response.Success(w, http.StatusOK, user)
	}
}

func (h *UserHandler) DeleteUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		id := r.PathValue("id")
		if id == "" {
			response.Error(w, errors.BadRequestError("User ID is required"))

			return
		}

		if err := h.userService.DeleteUser(r.Context(), id); err != nil {
			logger.Error("Failed to delete user", slog.String("userId", id), slog.Any("error", err))
			response.Error(w, err)

			return
		}

		logger.Info("User deleted", slog.String("userId", id))
		response.Success(w, http.StatusOK, map[string]string{"status": "deleted"})
	}
}

func (h *UserHandler) ListUsers() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		users, err := h.userService.ListUsers(r.Context())
		if err != nil {
			logger.Error("Failed to list users", slog.Any("error", err))
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, users)
	}
}
