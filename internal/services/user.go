package service

import (
	"context"
	"crypto/subtle"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/qikpos/pos-platform/internal/errors"
	models "github.com/qikpos/pos-platform/internal/models"
	repository "github.com/qikpos/pos-platform/internal/repositories"
)

// UserService manages the terminal accounts and PIN login.
type UserService struct {
	repo     repository.UserRepository
	rateRepo repository.RateLimitRepository
	jwtKey   []byte
	tokenTTL time.Duration
}

func NewUserService(repo repository.UserRepository, rateRepo repository.RateLimitRepository, jwtKey []byte, tokenTTL time.Duration) *UserService {
	return &UserService{
		repo:     repo,
		rateRepo: rateRepo,
		jwtKey:   jwtKey,
		tokenTTL: tokenTTL,
	}
}

// Login verifies the user's PIN and issues a session token. The failure
// message never says whether the user or the PIN was wrong.
func (s *UserService) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	allowed, _, retryAfter, err := s.rateRepo.CheckLoginRateLimit(ctx, req.UserID)
	if err != nil {
		return nil, errors.ThirdPartyError("Rate limit check failed").WithError(err)
	}

	if !allowed {
		return &models.LoginResponse{
			Success:    false,
			Message:    "Too many login attempts. Please try again later.",
			RetryAfter: retryAfter,
		}, nil
	}

	user, err := s.repo.GetUserByID(ctx, req.UserID)
	if err != nil || subtle.ConstantTimeCompare([]byte(user.PIN), []byte(req.PIN)) != 1 {
		return &models.LoginResponse{
			Success: false,
			Message: "Incorrect PIN",
		}, nil
	}

	claims := &models.Claims{
		UserID: user.ID,
		Name:   user.Name,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString(s.jwtKey)
	if err != nil {
		return nil, errors.InternalError("Failed to generate authentication token").WithError(err)
	}

	return &models.LoginResponse{
		Success:   true,
		Token:     tokenString,
		ExpiresIn: int(time.Until(claims.ExpiresAt.Time).Seconds()),
		User:      user,
	}, nil
}

func (s *UserService) CreateUser(ctx context.Context, req *models.CreateUserRequest) (*models.User, error) {
	user := &models.User{
		ID:   uuid.NewString(),
		Name: req.Name,
		PIN:  req.PIN,
		Role: req.Role,
	}

	if err := s.repo.CreateUser(ctx, user); err != nil {
		return nil, errors.DatabaseError("Failed to create user").WithError(err)
	}

	return user, nil
}

func (s *UserService) UpdateUser(ctx context.Context, id string, req *models.UpdateUserRequest) (*models.User, error) {
	user, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		if err == repository.ErrNotFound {
			return nil, errors.NotFoundError("User not found: " + id)
		}

		return nil, errors.DatabaseError("Failed to load user").WithError(err)
	}

	// Demoting the last admin would lock the management surface for good.
	if req.Role != nil && user.Role == models.RoleAdmin && *req.Role != models.RoleAdmin {
		admins, err := s.repo.CountAdmins(ctx)
		if err != nil {
			return nil, errors.DatabaseError("Failed to count admins").WithError(err)
		}

		if admins <= 1 {
			return nil, errors.ValidationError("Cannot demote the only admin")
		}
	}

	if req.Name != nil {
		user.Name = *req.Name
	}

	if req.PIN != nil {
		user.PIN = *req.PIN
	}

	if req.Role != nil {
		user.Role = *req.Role
	}

	if err := s.repo.UpdateUser(ctx, user); err != nil {
		return nil, errors.DatabaseError("Failed to update user").WithError(err)
	}

	return user, nil
}

func (s *UserService) DeleteUser(ctx context.Context, id string) error {
	user, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		if err == repository.ErrNotFound {
			return errors.NotFoundError("User not found: " + id)
		}

		return errors.DatabaseError("Failed to load user").WithError(err)
	}

	if user.Role == models.RoleAdmin {
		admins, err := s.repo.CountAdmins(ctx)
		if err != nil {
			return errors.DatabaseError("Failed to count admins").WithError(err)
		}

		if admins <= 1 {
			return errors.ValidationError("Cannot delete the only admin")
		}
	}

	if err := s.repo.DeleteUser(ctx, id); err != nil {
		if err == repository.ErrNotFound {
			return errors.NotFoundError("User not found: " + id)
		}

		return errors.DatabaseError("Failed to delete user").WithError(err)
	}

	return nil
}

func (s *UserService) ListUsers(ctx context.Context) ([]*models.User, error) {
	users, err := s.repo.ListUsers(ctx)
	if err != nil {
		return nil, errors.DatabaseError("Failed to list users").WithError(err)
	}

	return users, nil
}
