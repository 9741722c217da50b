package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/soujanya-a-n1/FoodSphere/internal/domain"
)

const sessionTTL = 24 * time.Hour

var _ domain.UserUseCase = (*userUseCase)(nil)

type userUseCase struct {
	userRepo domain.UserRepository
	log      *logrus.Logger
}

func NewUserUseCase(repo domain.UserRepository, logger *logrus.Logger) domain.UserUseCase {
	return &userUseCase{
		userRepo: repo,
		log:      logger,
	}
}

func (uc *userUseCase) Register(ctx context.Context, input domain.RegisterInput) (*domain.User, string, error) {
	name := strings.TrimSpace(input.Name)
	email := strings.ToLower(strings.TrimSpace(input.Email))

	if name == "" {
		return nil, "", fmt.Errorf("%w: user name cannot be empty", domain.ErrValidation)
	}
	if !isValidEmail(email) {
		return nil, "", fmt.Errorf("%w: invalid email format", domain.ErrValidation)
	}
	if len(input.Password) < 6 {
		return nil, "", fmt.Errorf("%w: password must be at least 6 characters", domain.ErrValidation)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		uc.log.Errorf("Use Case: Failed to hash password for %s: %v", email, err)
		return nil, "", fmt.Errorf("internal error processing password: %w", err)
	}

	newUser := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hashedPassword),
		Phone:        strings.TrimSpace(input.Phone),
		Address:      strings.TrimSpace(input.Address),
		City:         strings.TrimSpace(input.City),
		ZipCode:      strings.TrimSpace(input.ZipCode),
	}

	created, err := uc.userRepo.CreateUser(ctx, newUser)
	if err != nil {
		uc.log.Warnf("Use Case: Repository failed to create user %s: %v", email, err)
		return nil, "", err
	}

	token, err := uc.issueSession(ctx, created.ID)
	if err != nil {
		return nil, "", err
	}

	uc.log.Infof("Use Case: User registered. ID: %d, Email: %s", created.ID, created.Email)
	return created, token, nil
}

func (uc *userUseCase) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if !isValidEmail(email) || password == "" {
		return nil, "", fmt.Errorf("%w: invalid email or password", domain.ErrUnauthorized)
	}

	user, err := uc.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			uc.log.Warnf("Use Case: Login failed - user not found: %s", email)
			return nil, "", fmt.Errorf("%w: invalid email or password", domain.ErrUnauthorized)
		}
		uc.log.Errorf("Use Case: Error retrieving user %s during login: %v", email, err)
		return nil, "", fmt.Errorf("failed to retrieve user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			uc.log.Warnf("Use Case: Login failed - incorrect password for %s", email)
			return nil, "", fmt.Errorf("%w: invalid email or password", domain.ErrUnauthorized)
		}
		uc.log.Errorf("Use Case: Error comparing password hash for %s: %v", email, err)
		return nil, "", fmt.Errorf("internal error during authentication: %w", err)
	}

	token, err := uc.issueSession(ctx, user.ID)
	if err != nil {
		return nil, "", err
	}

	uc.log.Infof("Use Case: Login successful for user %s (ID: %d)", email, user.ID)
	return user, token, nil
}

func (uc *userUseCase) ResolveToken(ctx context.Context, token string) (int64, error) {
	if token == "" {
		return 0, fmt.Errorf("%w: empty token", domain.ErrUnauthorized)
	}
	if _, err := uuid.Parse(token); err != nil {
		return 0, fmt.Errorf("%w: malformed token", domain.ErrUnauthorized)
	}

	session, err := uc.userRepo.GetSession(ctx, token)
	if err != nil {
		return 0, err
	}
	return session.UserID, nil
}

func (uc *userUseCase) Profile(ctx context.Context, id int64) (*domain.User, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: invalid user ID", domain.ErrValidation)
	}

	user, err := uc.userRepo.GetUserByID(ctx, id)
	if err != nil {
		uc.log.Warnf("Use Case: Repository failed to get profile for ID %d: %v", id, err)
		return nil, err
	}

	user.PasswordHash = ""
	return user, nil
}

func (uc *userUseCase) issueSession(ctx context.Context, userID int64) (string, error) {
	session := &domain.Session{
		Token:     uuid.NewString(),
		UserID:    userID,
		ExpiresAt: time.Now().Add(sessionTTL),
	}
	if err := uc.userRepo.CreateSession(ctx, session); err != nil {
		uc.log.Errorf("Use Case: Failed to create session for user %d: %v", userID, err)
		return "", err
	}
	return session.Token, nil
}

func isValidEmail(email string) bool {
	parts := strings.Split(email, "@")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return false
	}
	domainParts := strings.Split(parts[1], ".")
	return len(domainParts) >= 2 && domainParts[0] != "" && domainParts[len(domainParts)-1] != ""
}
