// AngelaMos | 2026
// service.go

package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/carterperez-dev/templates/records-api/internal/core"
)

var (
	ErrInvalidCredentials   = errors.New("credentials incorrect")
	ErrDuplicateCredentials = errors.New("credentials taken")
)

type UserInfo struct {
	ID           string
	Email        string
	Name         string
	PasswordHash string
	Role         string
}

type UserProvider interface {
	GetByEmail(ctx context.Context, email string) (*UserInfo, error)
	Create(
		ctx context.Context,
		email, passwordHash, name string,
	) (*UserInfo, error)
}

type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(encodedHash, password string) bool
	VerifyDummy(password string)
}

type Issuer interface {
	Issue(accountID, email string) (*IssuedToken, error)
}

type Service struct {
	users  UserProvider
	hasher PasswordHasher
	issuer Issuer
}

func NewService(
	users UserProvider,
	hasher PasswordHasher,
	issuer Issuer,
) *Service {
	return &Service{
		users:  users,
		hasher: hasher,
		issuer: issuer,
	}
}

// Signup creates the account and logs it in. The unique index on email is
// what rejects a duplicate, including two signups racing each other.
func (s *Service) Signup(
	ctx context.Context,
	req SignupRequest,
) (*AuthResponse, error) {
	passwordHash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.users.Create(ctx, req.Email, passwordHash, req.Name)
	if err != nil {
		if errors.Is(err, core.ErrDuplicateKey) {
			return nil, ErrDuplicateCredentials
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	return s.issue(user)
}

// Signin never says whether the email exists: an unknown email costs one
// dummy verification and fails exactly like a wrong password.
func (s *Service) Signin(
	ctx context.Context,
	req SigninRequest,
) (*AuthResponse, error) {
	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			s.hasher.VerifyDummy(req.Password)
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	if !s.hasher.Verify(user.PasswordHash, req.Password) {
		return nil, ErrInvalidCredentials
	}

	return s.issue(user)
}

func (s *Service) issue(user *UserInfo) (*AuthResponse, error) {
	token, err := s.issuer.Issue(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return toAuthResponse(token), nil
}
