package auth

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"time"

	autherrors "go-hrms/internal/auth/errors"
	"go-hrms/internal/user"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const tokenTTL = 24 * time.Hour

// EmployeeDirectory resolves the employee record id behind a user
// account. Admin accounts may have none; implementations return an
// empty id in that case.
type EmployeeDirectory interface {
	FindIDByUserID(ctx context.Context, userID string) (string, error)
}

//go:generate mockgen -source=auth_service.go -destination=mock/auth_service_mock.go -package=mock
type Service interface {
	Login(ctx context.Context, req LoginRequest) (AuthResponse, error)
	Register(ctx context.Context, req RegisterRequest) (AuthResponse, error)
}

type service struct {
	db        *sql.DB
	users     user.Repository
	employees EmployeeDirectory
	logger    *zap.Logger
}

func NewService(db *sql.DB, users user.Repository, employees EmployeeDirectory) Service {
	return &service{
		db:        db,
		users:     users,
		employees: employees,
		logger:    zap.L().Named("auth.service"),
	}
}

func (s *service) Login(ctx context.Context, req LoginRequest) (AuthResponse, error) {
	u, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AuthResponse{}, autherrors.ErrInvalidCredentials
		}
		return AuthResponse{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		s.logger.Warn("login password mismatch", zap.String("email", req.Email))
		return AuthResponse{}, autherrors.ErrInvalidCredentials
	}

	token, err := s.issueToken(ctx, u)
	if err != nil {
		return AuthResponse{}, err
	}

	s.logger.Info("login success", zap.String("user_id", u.ID.String()))
	return AuthResponse{AccessToken: token, User: user.MapToResponse(*u)}, nil
}

func (s *service) Register(ctx context.Context, req RegisterRequest) (AuthResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return AuthResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.users.WithTx(tx)

	if _, err := qtx.FindByEmail(ctx, req.Email); err == nil {
		return AuthResponse{}, autherrors.ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return AuthResponse{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return AuthResponse{}, err
	}

	role := req.Role
	if role == "" {
		role = user.RoleEmployee
	}

	u := &user.User{
		ID:           uuid.New(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         role,
	}

	if err := qtx.Create(ctx, u); err != nil {
		return AuthResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return AuthResponse{}, err
	}

	token, err := s.issueToken(ctx, u)
	if err != nil {
		return AuthResponse{}, err
	}

	s.logger.Info("register success", zap.String("user_id", u.ID.String()))
	return AuthResponse{AccessToken: token, User: user.MapToResponse(*u)}, nil
}

func (s *service) issueToken(ctx context.Context, u *user.User) (string, error) {
	employeeID, err := s.employees.FindIDByUserID(ctx, u.ID.String())
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"user_id":     u.ID.String(),
		"employee_id": employeeID,
		"role":        u.Role,
		"iat":         now.Unix(),
		"exp":         now.Add(tokenTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}
