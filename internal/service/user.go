package service

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/sakif/forum-api/internal/apperror"
	"github.com/sakif/forum-api/internal/auth"
	"github.com/sakif/forum-api/internal/model"
	"github.com/sakif/forum-api/internal/repository"
)

const MaxUsernameLength = 50

var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

// UserService registers users and issues access tokens. It backs the
// forumctl operator tool; the HTTP API only consumes the tokens.
type UserService struct {
	users     repository.UserRepository
	tokens    *auth.TokenService
	passwords *auth.PasswordService
	logger    *slog.Logger
}

func NewUserService(
	users repository.UserRepository,
	tokens *auth.TokenService,
	passwords *auth.PasswordService,
	logger *slog.Logger,
) *UserService {
	return &UserService{
		users:     users,
		tokens:    tokens,
		passwords: passwords,
		logger:    logger,
	}
}

// Register creates a user with a bcrypt-hashed password.
func (s *UserService) Register(ctx context.Context, username, password, fullname string) (*model.User, error) {
	username = strings.TrimSpace(username)
	fullname = strings.TrimSpace(fullname)

	if username == "" {
		return nil, apperror.ValidationFailed("username", "username is required")
	}
	if password == "" {
		return nil, apperror.ValidationFailed("password", "password is required")
	}
	if fullname == "" {
		return nil, apperror.ValidationFailed("fullname", "fullname is required")
	}
	if len(username) > MaxUsernameLength {
		return nil, apperror.ValidationFailed("username",
			fmt.Sprintf("username must be %d characters or less", MaxUsernameLength))
	}
	if !usernamePattern.MatchString(username) {
		return nil, apperror.ValidationFailed("username", "username contains restricted characters")
	}

	if err := s.users.VerifyAvailableUsername(ctx, username); err != nil {
		return nil, err
	}

	hash, err := s.passwords.Hash(password)
	if err != nil {
		return nil, apperror.ValidationFailed("password", err.Error())
	}

	user := &model.User{Username: username, Password: hash, Fullname: fullname}
	if err := s.users.AddUser(ctx, user); err != nil {
		if isDomainError(err) {
			return nil, err
		}
		s.logger.Error("failed to add user",
			slog.String("username", username),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("adding user %s: %w", username, err)
	}

	s.logger.Info("user registered",
		slog.String("id", user.ID),
		slog.String("username", user.Username),
	)
	return user, nil
}

// IssueToken checks the credentials and returns a signed access token whose
// subject is the user id. Unknown users and wrong passwords are reported the
// same way.
func (s *UserService) IssueToken(ctx context.Context, username, password string) (string, error) {
	user, err := s.users.GetUserByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if isDomainError(err) {
			return "", apperror.ValidationFailed("credentials", "kredensial yang Anda masukkan salah")
		}
		return "", fmt.Errorf("looking up user %s: %w", username, err)
	}

	if err := s.passwords.Verify(user.Password, password); err != nil {
		return "", apperror.ValidationFailed("credentials", "kredensial yang Anda masukkan salah")
	}

	token, err := s.tokens.Generate(user.ID)
	if err != nil {
		return "", fmt.Errorf("issuing token for user %s: %w", user.ID, err)
	}
	return token, nil
}
