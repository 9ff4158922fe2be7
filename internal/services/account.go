package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/prehab-dev/prehab/internal/auth"
	"github.com/prehab-dev/prehab/internal/models"
	"github.com/prehab-dev/prehab/internal/repository"
	"github.com/prehab-dev/prehab/internal/types"
	"github.com/rs/zerolog"
)

type AccountService struct {
	store     *repository.Store
	tokens    *auth.TokenIssuer
	passwords *auth.PasswordHasher
	notifier  Notifier
	log       zerolog.Logger
}

func NewAccountService(store *repository.Store, tokens *auth.TokenIssuer, passwords *auth.PasswordHasher, notifier Notifier, log zerolog.Logger) *AccountService {
	return &AccountService{
		store:     store,
		tokens:    tokens,
		passwords: passwords,
		notifier:  notifierOrNop(notifier),
		log:       log,
	}
}

func (s *AccountService) Register(ctx context.Context, req types.CredentialsRequest) (types.UserResponse, error) {
	if req.Username == "" || req.Password == "" {
		return types.UserResponse{}, fmt.Errorf("%w: username and password are required", types.ErrValidation)
	}

	hash, err := s.passwords.Hash(req.Password)
	if err != nil {
		return types.UserResponse{}, err
	}

	user := models.User{Username: req.Username, PasswordHash: hash}
	if err := s.store.Users.Create(ctx, &user); err != nil {
		return types.UserResponse{}, err
	}

	s.log.Info().Uint("user_id", user.ID).Msg("user registered")

	return types.UserResponse{ID: user.ID, Username: user.Username}, nil
}

func (s *AccountService) Login(ctx context.Context, req types.CredentialsRequest) (types.TokenResponse, error) {
	user, err := s.store.Users.FindByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, types.ErrNotFound) {
			return types.TokenResponse{}, types.ErrInvalidCredentials
		}
		return types.TokenResponse{}, err
	}

	if !s.passwords.Verify(req.Password, user.PasswordHash) {
		return types.TokenResponse{}, types.ErrInvalidCredentials
	}

	return s.issue(user.ID)
}

// Refresh trades a refresh-scoped token for a new pair. Access tokens and
// tokens of deleted users are rejected.
func (s *AccountService) Refresh(ctx context.Context, refreshToken string) (types.TokenResponse, error) {
	userID, err := s.tokens.ResolveRefresh(refreshToken)
	if err != nil {
		return types.TokenResponse{}, err
	}

	if _, err := s.store.Users.FindByID(ctx, userID); err != nil {
		if errors.Is(err, types.ErrNotFound) {
			return types.TokenResponse{}, fmt.Errorf("%w: user no longer exists", types.ErrUnauthorized)
		}
		return types.TokenResponse{}, err
	}

	return s.issue(userID)
}

func (s *AccountService) Me(ctx context.Context, userID uint) (types.UserResponse, error) {
	user, err := s.store.Users.FindByID(ctx, userID)
	if err != nil {
		return types.UserResponse{}, err
	}

	return types.UserResponse{ID: user.ID, Username: user.Username}, nil
}

// Delete removes the account after confirming the password. Every exercise the
// user owns goes with it, along with all engagement rows that reference the
// user or those exercises.
func (s *AccountService) Delete(ctx context.Context, userID uint, password string) error {
	user, err := s.store.Users.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	if !s.passwords.Verify(password, user.PasswordHash) {
		return fmt.Errorf("%w: incorrect password", types.ErrValidation)
	}

	var owned []uint
	err = s.store.Transaction(ctx, func(tx *repository.Store) error {
		var err error
		if owned, err = tx.Exercises.IDsOwnedBy(ctx, userID); err != nil {
			return err
		}

		if err := deleteEngagementForExercises(ctx, tx, owned); err != nil {
			return err
		}

		if err := tx.Favorites.DeleteForUser(ctx, userID); err != nil {
			return err
		}
		if err := tx.Saves.DeleteForUser(ctx, userID); err != nil {
			return err
		}
		if err := tx.Ratings.DeleteForUser(ctx, userID); err != nil {
			return err
		}

		if err := tx.Exercises.DeleteByIDs(ctx, owned); err != nil {
			return err
		}

		return tx.Users.Delete(ctx, userID)
	})
	if err != nil {
		return err
	}

	for _, id := range owned {
		s.notifier.ExerciseChanged(id, EventDeleted)
	}

	s.log.Info().Uint("user_id", userID).Int("exercises_removed", len(owned)).Msg("account deleted")

	return nil
}

func (s *AccountService) issue(userID uint) (types.TokenResponse, error) {
	pair, err := s.tokens.IssuePair(userID)
	if err != nil {
		return types.TokenResponse{}, err
	}

	return types.TokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		TokenType:    "bearer",
		UserID:       userID,
	}, nil
}

func deleteEngagementForExercises(ctx context.Context, tx *repository.Store, exerciseIDs []uint) error {
	if err := tx.Favorites.DeleteForExercises(ctx, exerciseIDs); err != nil {
		return err
	}
	if err := tx.Saves.DeleteForExercises(ctx, exerciseIDs); err != nil {
		return err
	}
	return tx.Ratings.DeleteForExercises(ctx, exerciseIDs)
}
