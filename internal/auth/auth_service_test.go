package auth

import (
	"context"
	"database/sql"
	"testing"

	autherrors "go-hrms/internal/auth/errors"
	"go-hrms/internal/user"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type fakeUserRepo struct {
	createFn      func(ctx context.Context, u *user.User) error
	findByEmailFn func(ctx context.Context, email string) (*user.User, error)
}

func (f *fakeUserRepo) WithTx(tx *sql.Tx) user.Repository { return f }

func (f *fakeUserRepo) Create(ctx context.Context, u *user.User) error {
	return f.createFn(ctx, u)
}
func (f *fakeUserRepo) FindAll(ctx context.Context) ([]user.User, error) {
	return nil, nil
}
func (f *fakeUserRepo) FindByID(ctx context.Context, id string) (*user.User, error) {
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	return f.findByEmailFn(ctx, email)
}
func (f *fakeUserRepo) Update(ctx context.Context, u *user.User) error {
	return nil
}

type fakeDirectory struct {
	employeeID string
}

func (f *fakeDirectory) FindIDByUserID(ctx context.Context, userID string) (string, error) {
	if f.employeeID == "" {
		return "", gorm.ErrRecordNotFound
	}
	return f.employeeID, nil
}

func newTestService(t *testing.T, users user.Repository, dir EmployeeDirectory) (Service, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewService(db, users, dir), mock
}

func hashPassword(t *testing.T, plain string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func parseClaims(t *testing.T, token, secret string) jwt.MapClaims {
	t.Helper()
	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return []byte(secret), nil
	})
	require.NoError(t, err)
	return claims
}

func TestService_Login_IssuesTokenWithEmployeeClaim(t *testing.T) {
	t.Setenv("JWT_SECRET", "auth-test-secret")

	userID := uuid.New()
	users := &fakeUserRepo{
		findByEmailFn: func(ctx context.Context, email string) (*user.User, error) {
			return &user.User{
				ID:           userID,
				Name:         "Budi Santoso",
				Email:        email,
				PasswordHash: hashPassword(t, "s3cret-pass"),
				Role:         user.RoleEmployee,
			}, nil
		},
	}
	empID := uuid.New().String()
	svc, _ := newTestService(t, users, &fakeDirectory{employeeID: empID})

	resp, err := svc.Login(context.Background(), LoginRequest{
		Email:    "budi@co.test",
		Password: "s3cret-pass",
	})

	require.NoError(t, err)
	assert.Equal(t, "Budi Santoso", resp.User.Name)

	claims := parseClaims(t, resp.AccessToken, "auth-test-secret")
	assert.Equal(t, userID.String(), claims["user_id"])
	assert.Equal(t, empID, claims["employee_id"])
	assert.Equal(t, user.RoleEmployee, claims["role"])
}

func TestService_Login_WrongPasswordRejected(t *testing.T) {
	users := &fakeUserRepo{
		findByEmailFn: func(ctx context.Context, email string) (*user.User, error) {
			return &user.User{
				ID:           uuid.New(),
				Email:        email,
				PasswordHash: hashPassword(t, "right-pass"),
			}, nil
		},
	}
	svc, _ := newTestService(t, users, &fakeDirectory{})

	_, err := svc.Login(context.Background(), LoginRequest{
		Email:    "budi@co.test",
		Password: "wrong-pass",
	})

	assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
}

func TestService_Login_UnknownEmailRejected(t *testing.T) {
	users := &fakeUserRepo{
		findByEmailFn: func(ctx context.Context, email string) (*user.User, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}
	svc, _ := newTestService(t, users, &fakeDirectory{})

	_, err := svc.Login(context.Background(), LoginRequest{
		Email:    "nobody@co.test",
		Password: "whatever1",
	})

	assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
}

func TestService_Login_AdminWithoutEmployeeLinkGetsEmptyClaim(t *testing.T) {
	t.Setenv("JWT_SECRET", "auth-test-secret")

	users := &fakeUserRepo{
		findByEmailFn: func(ctx context.Context, email string) (*user.User, error) {
			return &user.User{
				ID:           uuid.New(),
				Email:        email,
				PasswordHash: hashPassword(t, "s3cret-pass"),
				Role:         user.RoleAdmin,
			}, nil
		},
	}
	svc, _ := newTestService(t, users, &fakeDirectory{})

	resp, err := svc.Login(context.Background(), LoginRequest{
		Email:    "admin@co.test",
		Password: "s3cret-pass",
	})

	require.NoError(t, err)
	claims := parseClaims(t, resp.AccessToken, "auth-test-secret")
	assert.Equal(t, "", claims["employee_id"])
	assert.Equal(t, user.RoleAdmin, claims["role"])
}

func TestService_Register_HashesPasswordAndDefaultsRole(t *testing.T) {
	t.Setenv("JWT_SECRET", "auth-test-secret")

	var saved *user.User
	users := &fakeUserRepo{
		findByEmailFn: func(ctx context.Context, email string) (*user.User, error) {
			return nil, gorm.ErrRecordNotFound
		},
		createFn: func(ctx context.Context, u *user.User) error {
			saved = u
			return nil
		},
	}
	svc, mock := newTestService(t, users, &fakeDirectory{})
	mock.ExpectBegin()
	mock.ExpectCommit()

	resp, err := svc.Register(context.Background(), RegisterRequest{
		Name:     "Siti Rahma",
		Email:    "siti@co.test",
		Password: "s3cret-pass",
	})

	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.Equal(t, user.RoleEmployee, saved.Role)
	assert.NotEqual(t, "s3cret-pass", saved.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(saved.PasswordHash), []byte("s3cret-pass")))
	assert.NotEmpty(t, resp.AccessToken)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Register_DuplicateEmailRollsBack(t *testing.T) {
	users := &fakeUserRepo{
		findByEmailFn: func(ctx context.Context, email string) (*user.User, error) {
			return &user.User{ID: uuid.New(), Email: email}, nil
		},
	}
	svc, mock := newTestService(t, users, &fakeDirectory{})
	mock.ExpectBegin()
	mock.ExpectRollback()

	_, err := svc.Register(context.Background(), RegisterRequest{
		Name:     "Siti Rahma",
		Email:    "siti@co.test",
		Password: "s3cret-pass",
	})

	assert.ErrorIs(t, err, autherrors.ErrEmailTaken)
	assert.NoError(t, mock.ExpectationsWereMet())
}
