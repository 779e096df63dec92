// Package vault implements the per-user encrypted-blob store. Every
// operation is ownership-scoped: callers are already authenticated and
// can only ever see their own entries.
package vault

import (
	"context"
	"errors"

	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/vaultkeep/vaultkeep/internal/common"
	"github.com/vaultkeep/vaultkeep/internal/logging"
	"github.com/vaultkeep/vaultkeep/internal/server/users"
)

var encDataRules = []validation.Rule{
	validation.Required.Error("Encrypted data must not be empty."),
	validation.Length(EncDataMinLength, EncDataMaxLength).Error("Encrypted data must be between 1 B and 100 MiB."),
}

// ValidateEncData checks the payload bounds before anything touches
// storage.
func ValidateEncData(encData []byte) error {
	var reasons []string
	for _, rule := range encDataRules {
		if err := validation.Validate(encData, rule); err != nil {
			reasons = append(reasons, err.Error())
		}
	}
	if len(reasons) > 0 {
		return &common.ValidationError{Field: "encData", Reasons: reasons}
	}
	return nil
}

type Service struct {
	repo   Repository
	users  users.Repository
	logger logging.Logger
}

func NewService(repo Repository, usersRepo users.Repository, logger logging.Logger) *Service {
	return &Service{
		repo:   repo,
		users:  usersRepo,
		logger: logger.With("module", "vault"),
	}
}

// ownerID resolves an authenticated username to its user id. The
// username comes from a validated token, so a missing row is a server
// defect, not a user error.
func (s *Service) ownerID(ctx context.Context, username string) (int64, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		s.logger.Error(ctx, "authenticated username has no user row", "username", username, "error", err)
		return 0, common.ErrorInternal
	}
	return user.ID, nil
}

func (s *Service) List(ctx context.Context, username string) ([]*Entry, error) {
	userID, err := s.ownerID(ctx, username)
	if err != nil {
		return nil, err
	}

	entries, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error(ctx, "error listing vault entries", "error", err)
		return nil, common.ErrorInternal
	}
	return entries, nil
}

func (s *Service) Get(ctx context.Context, username string, id int64) (*Entry, error) {
	userID, err := s.ownerID(ctx, username)
	if err != nil {
		return nil, err
	}

	entry, err := s.repo.Get(ctx, userID, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorVaultEntryNotFound
		}
		s.logger.Error(ctx, "error loading vault entry", "error", err)
		return nil, common.ErrorInternal
	}
	return entry, nil
}

func (s *Service) Create(ctx context.Context, username string, encData []byte) (*Entry, error) {
	if err := ValidateEncData(encData); err != nil {
		return nil, err
	}

	userID, err := s.ownerID(ctx, username)
	if err != nil {
		return nil, err
	}

	entry, err := s.repo.Create(ctx, &Entry{UserID: userID, EncData: encData})
	if err != nil {
		s.logger.Error(ctx, "error creating vault entry", "error", err)
		return nil, common.ErrorInternal
	}
	return entry, nil
}

func (s *Service) Update(ctx context.Context, username string, id int64, encData []byte) error {
	if err := ValidateEncData(encData); err != nil {
		return err
	}

	userID, err := s.ownerID(ctx, username)
	if err != nil {
		return err
	}

	if err := s.repo.Update(ctx, userID, id, encData); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorVaultEntryNotFound
		}
		s.logger.Error(ctx, "error updating vault entry", "error", err)
		return common.ErrorInternal
	}
	return nil
}

func (s *Service) Delete(ctx context.Context, username string, id int64) error {
	userID, err := s.ownerID(ctx, username)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, userID, id); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorVaultEntryNotFound
		}
		s.logger.Error(ctx, "error deleting vault entry", "error", err)
		return common.ErrorInternal
	}
	return nil
}

// DeleteAll clears the user's vault. Deleting an already-empty vault is
// reported as common.ErrorVaultEmpty.
func (s *Service) DeleteAll(ctx context.Context, username string) error {
	userID, err := s.ownerID(ctx, username)
	if err != nil {
		return err
	}

	deleted, err := s.repo.DeleteAllByUser(ctx, userID)
	if err != nil {
		s.logger.Error(ctx, "error clearing vault", "error", err)
		return common.ErrorInternal
	}
	if deleted == 0 {
		return common.ErrorVaultEmpty
	}
	return nil
}
