package usecase

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soujanya-a-n1/FoodSphere/internal/domain"
)

func setupUserUseCase(t *testing.T) (domain.UserUseCase, *mockUserRepo) {
	t.Helper()
	repo := newMockUserRepo()
	return NewUserUseCase(repo, testLogger()), repo
}

func registerInput() domain.RegisterInput {
	return domain.RegisterInput{
		Name:     "John Doe",
		Email:    "john@example.com",
		Password: "password123",
		Phone:    "555-0001",
		Address:  "123 Main St",
		City:     "New York",
		ZipCode:  "10001",
	}
}

func TestRegister(t *testing.T) {
	uc, repo := setupUserUseCase(t)

	user, token, err := uc.Register(context.Background(), registerInput())

	require.NoError(t, err)
	require.NotNil(t, user)
	assert.NotZero(t, user.ID)
	assert.Equal(t, "john@example.com", user.Email)
	assert.NotEqual(t, "password123", user.PasswordHash)

	// The issued token is a stored session resolving back to the user.
	_, err = uuid.Parse(token)
	require.NoError(t, err)
	resolved, err := uc.ResolveToken(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, resolved)

	_, ok := repo.sessions[token]
	assert.True(t, ok)
}

func TestRegister_NormalizesEmail(t *testing.T) {
	uc, _ := setupUserUseCase(t)

	input := registerInput()
	input.Email = "  John@Example.COM "

	user, _, err := uc.Register(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, "john@example.com", user.Email)
}

func TestRegister_Validation(t *testing.T) {
	uc, _ := setupUserUseCase(t)

	tests := []struct {
		name   string
		mutate func(*domain.RegisterInput)
	}{
		{"empty name", func(in *domain.RegisterInput) { in.Name = "  " }},
		{"invalid email", func(in *domain.RegisterInput) { in.Email = "not-an-email" }},
		{"short password", func(in *domain.RegisterInput) { in.Password = "abc" }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			input := registerInput()
			tc.mutate(&input)
			_, _, err := uc.Register(context.Background(), input)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	uc, _ := setupUserUseCase(t)

	_, _, err := uc.Register(context.Background(), registerInput())
	require.NoError(t, err)

	_, _, err = uc.Register(context.Background(), registerInput())
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)
}

func TestLogin(t *testing.T) {
	uc, _ := setupUserUseCase(t)

	registered, _, err := uc.Register(context.Background(), registerInput())
	require.NoError(t, err)

	user, token, err := uc.Login(context.Background(), "john@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)

	resolved, err := uc.ResolveToken(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, registered.ID, resolved)
}

func TestLogin_WrongPassword(t *testing.T) {
	uc, _ := setupUserUseCase(t)

	_, _, err := uc.Register(context.Background(), registerInput())
	require.NoError(t, err)

	_, _, err = uc.Login(context.Background(), "john@example.com", "wrong-password")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_UnknownUser(t *testing.T) {
	uc, _ := setupUserUseCase(t)

	_, _, err := uc.Login(context.Background(), "nobody@example.com", "password123")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestResolveToken_Invalid(t *testing.T) {
	uc, _ := setupUserUseCase(t)

	_, err := uc.ResolveToken(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.ResolveToken(context.Background(), "not-a-uuid")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.ResolveToken(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestProfile_StripsPasswordHash(t *testing.T) {
	uc, _ := setupUserUseCase(t)

	registered, _, err := uc.Register(context.Background(), registerInput())
	require.NoError(t, err)

	profile, err := uc.Profile(context.Background(), registered.ID)
	require.NoError(t, err)
	assert.Empty(t, profile.PasswordHash)
	assert.Equal(t, registered.Email, profile.Email)
}
