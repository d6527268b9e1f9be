package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/avoronov/go-task-api/internal/models"
	"github.com/avoronov/go-task-api/internal/storage"
)

type authServiceImpl struct {
	logger zerolog.Logger
	store  storage.Storage
	tokens TokenService

	// dummyHash is verified against on the unknown-user path so a
	// failed login costs the same whether the username exists or not.
	dummyHash string
}

func NewAuthService(
	logger zerolog.Logger,
	store storage.Storage,
	tokens TokenService,
) (AuthService, error) {
	dummyHash, err := hashPassword(uuid.NewString())
	if err != nil {
		return nil, fmt.Errorf("failed to hash dummy password: %w", err)
	}

	return &authServiceImpl{
		logger:    logger,
		store:     store,
		tokens:    tokens,
		dummyHash: dummyHash,
	}, nil
}

func (s *authServiceImpl) Login(ctx context.Context, params LoginParams) (*LoginResult, error) {
	user, err := s.store.FindUserByUsername(ctx, params.Username)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			verifyPassword(params.Password, s.dummyHash)
			s.logger.Info().Msg("login rejected")
			return nil, ErrInvalidCredentials
		}

		s.logger.Error().
			Err(err).
			Msg("failed to select user by username")
		return nil, err
	}

	if !verifyPassword(params.Password, user.PasswordHash) {
		s.logger.Info().Msg("login rejected")
		return nil, ErrInvalidCredentials
	}

	accessToken, expiresAt, err := s.tokens.IssueDefault(user.Username)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to issue access token")
		return nil, err
	}

	s.logger.Info().
		Int64("user_id", user.ID).
		Msg("logged in")
	return &LoginResult{
		UserID:               user.ID,
		AccessToken:          accessToken,
		AccessTokenExpiresAt: expiresAt,
	}, nil
}

func (s *authServiceImpl) Register(ctx context.Context, params RegisterParams) (*models.User, error) {
	passwordHash, err := hashPassword(params.Password)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to hash password")
		return nil, err
	}

	user, err := s.store.InsertUser(ctx, params.Username, params.Email, passwordHash)
	if err != nil {
		if errors.Is(err, storage.ErrAlreadyExists) {
			s.logger.Info().
				Str("username", params.Username).
				Msg("username or email already taken")
			return nil, ErrUserAlreadyExists
		}

		s.logger.Error().
			Err(err).
			Msg("failed to insert user")
		return nil, err
	}

	s.logger.Info().
		Int64("user_id", user.ID).
		Str("username", user.Username).
		Msg("registered user")
	return user, nil
}

func (s *authServiceImpl) Resolve(ctx context.Context, token string) (*models.User, error) {
	subject, _, err := s.tokens.Decode(token)
	if err != nil {
		s.logger.Info().
			Err(err).
			Msg("failed to decode token")
		return nil, ErrUnauthenticated
	}

	user, err := s.store.FindUserByUsername(ctx, subject)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			s.logger.Info().Msg("token subject no longer exists")
			return nil, ErrUnauthenticated
		}

		s.logger.Error().
			Err(err).
			Msg("failed to select user by username")
		return nil, err
	}

	return user, nil
}
