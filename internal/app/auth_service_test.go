package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"analogygen/internal/model"
	"analogygen/internal/pkg/jwtutil"
	"analogygen/internal/pkg/passhash"
)

type fakeUserStore struct {
	users map[string]*model.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: map[string]*model.User{}}
}

func (f *fakeUserStore) Create(user *model.User) error {
	user.ID = uint(len(f.users) + 1)
	f.users[user.Email] = user
	return nil
}

func (f *fakeUserStore) GetByEmail(email string) (*model.User, error) {
	return f.users[email], nil
}

func TestValidatePassword(t *testing.T) {
	t.Parallel()

	valid := []string{"Abc123!@", "Xy9#long-enough", "P@ssw0rd", "AAbb12@@", "Aä1@bcde"}
	for _, password := range valid {
		require.NoError(t, ValidatePassword(password), "password %q", password)
	}

	invalid := map[string]string{
		"Ab1@":      "at least 8 characters",
		"abcdefg1!": "an uppercase letter",
		"ABCDEFG1!": "a lowercase letter",
		"Abcdefgh!": "a digit",
		"Abcdefgh1": "a special character",
		"":          "at least 8 characters",
		"Abc123**":  "a special character", // * is outside the allowed set
		"abcdefgh":  "a digit",
		"Pä55w0!":   "at least 8 characters", // 7 runes even though 8 bytes
	}
	for password, rule := range invalid {
		err := ValidatePassword(password)
		require.ErrorIs(t, err, ErrPasswordPolicy, "password %q", password)
		require.Contains(t, err.Error(), rule, "password %q", password)
	}
}

func TestRegister(t *testing.T) {
	t.Parallel()

	store := newFakeUserStore()
	svc := NewAuthService(store, "secret", time.Hour)

	user, err := svc.Register(RegisterInput{
		Username: "alice",
		Email:    "a@x.com",
		Password: "Abc123!@",
	})
	require.NoError(t, err)
	require.Equal(t, "alice", user.Username)
	require.Equal(t, "a@x.com", user.Email)
	require.NotEqual(t, "Abc123!@", user.PasswordHash)
	require.True(t, passhash.Verify("Abc123!@", user.PasswordHash))
}

func TestRegisterDuplicateEmail(t *testing.T) {
	t.Parallel()

	store := newFakeUserStore()
	svc := NewAuthService(store, "secret", time.Hour)

	_, err := svc.Register(RegisterInput{Username: "alice", Email: "a@x.com", Password: "Abc123!@"})
	require.NoError(t, err)

	_, err = svc.Register(RegisterInput{Username: "alice2", Email: "a@x.com", Password: "Abc123!@"})
	require.ErrorIs(t, err, ErrEmailExists)
}

func TestRegisterPolicyViolation(t *testing.T) {
	t.Parallel()

	store := newFakeUserStore()
	svc := NewAuthService(store, "secret", time.Hour)

	_, err := svc.Register(RegisterInput{Username: "alice", Email: "a@x.com", Password: "weak"})
	require.ErrorIs(t, err, ErrPasswordPolicy)
	require.Empty(t, store.users)
}

func TestLogin(t *testing.T) {
	t.Parallel()

	store := newFakeUserStore()
	svc := NewAuthService(store, "secret", time.Hour)

	_, err := svc.Register(RegisterInput{Username: "alice", Email: "a@x.com", Password: "Abc123!@"})
	require.NoError(t, err)

	result, err := svc.Login(LoginInput{Email: "a@x.com", Password: "Abc123!@"})
	require.NoError(t, err)
	require.NotEmpty(t, result.Token)
	require.Equal(t, "alice", result.User.Username)

	claims, err := jwtutil.ParseToken("secret", result.Token)
	require.NoError(t, err)
	require.Equal(t, "a@x.com", claims.Email)
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	t.Parallel()

	store := newFakeUserStore()
	svc := NewAuthService(store, "secret", time.Hour)

	_, err := svc.Register(RegisterInput{Username: "alice", Email: "real@x.com", Password: "Abc123!@"})
	require.NoError(t, err)

	_, missErr := svc.Login(LoginInput{Email: "missing@x.com", Password: "any"})
	_, wrongErr := svc.Login(LoginInput{Email: "real@x.com", Password: "wrongpass"})

	require.ErrorIs(t, missErr, ErrInvalidCredential)
	require.ErrorIs(t, wrongErr, ErrInvalidCredential)
	require.Equal(t, missErr.Error(), wrongErr.Error())
}
