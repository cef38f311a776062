package usecase

import (
	"context"
	"errors"
	"strings"

	domainErrors "github.com/nlenjibi/storefront/internal/domain/errors"
	"github.com/nlenjibi/storefront/internal/domain/model"
	"github.com/nlenjibi/storefront/internal/domain/repository"
	pkgAuth "github.com/nlenjibi/storefront/internal/pkg/auth"
)

const minPasswordLength = 8

// AuthUseCase handles registration, login, and token verification.
type AuthUseCase struct {
	users    repository.UserRepository
	hasher   pkgAuth.PasswordHasher
	strategy pkgAuth.Strategy
}

// NewAuthUseCase constructs AuthUseCase.
func NewAuthUseCase(users repository.UserRepository, hasher pkgAuth.PasswordHasher, strategy pkgAuth.Strategy) *AuthUseCase {
	return &AuthUseCase{users: users, hasher: hasher, strategy: strategy}
}

// Register creates a customer account and returns it with a fresh token.
func (u *AuthUseCase) Register(ctx context.Context, email, name, password string) (*model.User, string, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || !strings.Contains(email, "@") || len(password) < minPasswordLength {
		return nil, "", domainErrors.ErrInvalidArgument
	}

	hash, err := u.hasher.Hash(password)
	if err != nil {
		return nil, "", err
	}

	user, err := u.users.Create(ctx, email, name, hash, model.RoleCustomer)
	if err != nil {
		return nil, "", err
	}

	token, err := u.strategy.IssueToken(user.ID, string(user.Role))
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Authenticate verifies credentials and returns the user with a fresh token.
func (u *AuthUseCase) Authenticate(ctx context.Context, email, password string) (*model.User, string, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	user, err := u.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, "", domainErrors.ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err := u.hasher.Compare(user.PasswordHash, password); err != nil {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	token, err := u.strategy.IssueToken(user.ID, string(user.Role))
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// ParseToken verifies a token and returns the caller it encodes.
func (u *AuthUseCase) ParseToken(token string) (Caller, error) {
	userID, role, err := u.strategy.ParseToken(token)
	if err != nil {
		return Caller{}, err
	}
	return Caller{UserID: userID, Role: model.Role(role)}, nil
}
