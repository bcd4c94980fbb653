package core

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// RoleUser is the role granted to every signed-up account.
const RoleUser = "user"

// AnonymousUsername is the reserved account that owns posts written without
// authentication. Nobody can log in as it; see BootstrapAnonymous.
const AnonymousUsername = "anonymous"

// UserView is the outward shape of a user. The password hash never leaves
// the service layer.
type UserView struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

// UserService handles signup and login.
type UserService struct {
	users  UserRepository
	tokens *TokenService
}

func NewUserService(users UserRepository, tokens *TokenService) *UserService {
	return &UserService{users: users, tokens: tokens}
}

// Join registers a new user with a bcrypt-hashed password.
func (s *UserService) Join(ctx context.Context, username, password string) (UserView, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return UserView{}, fmt.Errorf("%w: username and password are required", ErrValidation)
	}

	if _, err := s.users.FindByUsername(ctx, username); err == nil {
		return UserView{}, fmt.Errorf("%w: username %q is taken", ErrAlreadyExists, username)
	} else if !errors.Is(err, ErrNotFound) {
		return UserView{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return UserView{}, err
	}

	// The unique constraint still backstops a concurrent duplicate signup.
	id, err := s.users.Create(ctx, username, string(hash), RoleUser)
	if err != nil {
		return UserView{}, err
	}
	return UserView{ID: id, Username: username}, nil
}

// Login verifies the password against the stored hash and issues a token.
// Unknown username and wrong password are indistinguishable to the caller.
func (s *UserService) Login(ctx context.Context, username, password string) (string, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return "", fmt.Errorf("%w: username and password are required", ErrValidation)
	}

	u, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", ErrUnauthorized
		}
		return "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return "", ErrUnauthorized
	}

	return s.tokens.Issue(u.Username, u.Role)
}
