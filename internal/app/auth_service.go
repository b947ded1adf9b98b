package app

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"analogygen/internal/model"
	"analogygen/internal/pkg/jwtutil"
	"analogygen/internal/pkg/passhash"
)

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrPasswordPolicy    = errors.New("password policy violation")
	ErrEmailExists       = errors.New("email already registered")
	ErrInvalidCredential = errors.New("invalid credentials")
)

const specialCharset = "@#$%^&+=!"

// UserStore is the slice of the user repository the auth service depends on.
type UserStore interface {
	Create(user *model.User) error
	GetByEmail(email string) (*model.User, error)
}

type AuthService struct {
	users         UserStore
	jwtSecret     string
	jwtExpiration time.Duration
}

type RegisterInput struct {
	Username string
	Email    string
	Password string
}

type LoginInput struct {
	Email    string
	Password string
}

type AuthResult struct {
	Token string
	User  *model.User
}

func NewAuthService(users UserStore, jwtSecret string, jwtExpiration time.Duration) *AuthService {
	if jwtExpiration <= 0 {
		jwtExpiration = 60 * time.Minute
	}
	return &AuthService{
		users:         users,
		jwtSecret:     jwtSecret,
		jwtExpiration: jwtExpiration,
	}
}

// Register validates the password policy, enforces email uniqueness and
// persists the new user. It does not log the user in.
func (s *AuthService) Register(input RegisterInput) (*model.User, error) {
	username := strings.TrimSpace(input.Username)
	email := strings.TrimSpace(input.Email)

	if username == "" || email == "" {
		return nil, ErrInvalidInput
	}
	if err := ValidatePassword(input.Password); err != nil {
		return nil, err
	}

	existing, err := s.users.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailExists
	}

	hash, err := passhash.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
	}
	if err := s.users.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login authenticates by email and password and issues a session token
// carrying the email claim. A missing account and a wrong password both
// return ErrInvalidCredential so callers cannot enumerate accounts.
func (s *AuthService) Login(input LoginInput) (*AuthResult, error) {
	email := strings.TrimSpace(input.Email)

	user, err := s.users.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredential
	}
	if !passhash.Verify(input.Password, user.PasswordHash) {
		return nil, ErrInvalidCredential
	}

	token, err := jwtutil.GenerateToken(s.jwtSecret, s.jwtExpiration, user.Email)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, User: user}, nil
}

// ValidatePassword enforces the signup password policy and reports every
// unmet rule in the error message.
func ValidatePassword(password string) error {
	var missing []string
	if utf8.RuneCountInString(password) < 8 {
		missing = append(missing, "at least 8 characters")
	}

	var hasDigit, hasLower, hasUpper bool
	for _, r := range password {
		switch {
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsUpper(r):
			hasUpper = true
		}
	}
	if !hasDigit {
		missing = append(missing, "a digit")
	}
	if !hasLower {
		missing = append(missing, "a lowercase letter")
	}
	if !hasUpper {
		missing = append(missing, "an uppercase letter")
	}
	if !strings.ContainsAny(password, specialCharset) {
		missing = append(missing, "a special character ("+specialCharset+")")
	}

	if len(missing) > 0 {
		return fmt.Errorf("%w: password must contain %s", ErrPasswordPolicy, strings.Join(missing, ", "))
	}
	return nil
}
