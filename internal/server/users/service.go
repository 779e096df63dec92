// Package users implements account management: creation, login, and
// logout. Login success is the only way a bearer token is issued.
package users

import (
	"context"
	"encoding/base64"
	"errors"
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/vaultkeep/vaultkeep/internal/common"
	"github.com/vaultkeep/vaultkeep/internal/cryptox"
	"github.com/vaultkeep/vaultkeep/internal/logging"
	"github.com/vaultkeep/vaultkeep/internal/server/tokens"
)

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9]*$`)

const (
	msgUsernameRequired = "Username must not be empty."
	msgUsernameLength   = "Username length must be between 3 and 50 characters."
	msgUsernameFormat   = "Username must contain only letters and digits."
)

// ValidateUsername checks the username against the format rules and
// returns a *common.ValidationError listing every violation. Each rule
// is validated independently so the caller receives every violated
// rule, not just the first.
func ValidateUsername(username string) error {
	var reasons []string

	if err := validation.Validate(username, validation.Required.Error(msgUsernameRequired)); err != nil {
		reasons = append(reasons, err.Error())
	}

	// ozzo skips length checks on empty values, but an empty username
	// violates the length rule as well.
	if err := validation.Validate(username, validation.Length(3, 50).Error(msgUsernameLength)); err != nil {
		reasons = append(reasons, err.Error())
	} else if username == "" {
		reasons = append(reasons, msgUsernameLength)
	}

	if err := validation.Validate(username, validation.Match(usernamePattern).Error(msgUsernameFormat)); err != nil {
		reasons = append(reasons, err.Error())
	}

	if len(reasons) > 0 {
		return &common.ValidationError{Field: "username", Reasons: reasons}
	}
	return nil
}

// Service orchestrates credential storage and the token store.
type Service struct {
	repo   Repository
	tokens *tokens.Store
	logger logging.Logger
}

func NewService(repo Repository, ts *tokens.Store, logger logging.Logger) *Service {
	return &Service{
		repo:   repo,
		tokens: ts,
		logger: logger.With("module", "users"),
	}
}

// decodeSecret turns the base64 wire form of a master-password secret
// into raw bytes, enforcing the exact KDF input length before any
// derivation happens. The caller owns wiping the returned buffer.
func decodeSecret(encoded string) ([]byte, error) {
	secret, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, common.ErrorCredentialFormat
	}
	if len(secret) != cryptox.KDFInputLength {
		cryptox.Wipe(secret)
		return nil, common.ErrorCredentialLength
	}
	return secret, nil
}

// Register creates an account for the username with the given
// base64-encoded master-password secret.
//
// The UNIQUE constraint in storage is the authoritative uniqueness
// check; the ExistsByUsername pre-check only produces the friendly
// problem without paying for a KDF run. A conflict surfacing at insert
// time after the pre-check passed is logged as a defect signal and
// still reported as the ordinary not-unique outcome.
func (s *Service) Register(ctx context.Context, username, encodedSecret string) error {
	if err := ValidateUsername(username); err != nil {
		return err
	}

	exists, err := s.repo.ExistsByUsername(ctx, username)
	if err != nil {
		s.logger.Error(ctx, "error checking username existence", "error", err)
		return common.ErrorInternal
	}
	if exists {
		return common.ErrorUsernameNotUnique
	}

	secret, err := decodeSecret(encodedSecret)
	if err != nil {
		return err
	}
	defer cryptox.Wipe(secret)

	salt, err := cryptox.GenSalt()
	if err != nil {
		s.logger.Error(ctx, "error generating salt", "error", err)
		return common.ErrorInternal
	}
	defer cryptox.Wipe(salt)

	key := cryptox.DeriveKey(secret, salt)
	defer cryptox.Wipe(key)

	user := &User{Username: username, Salt: salt, MasterKey: key}
	if _, err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			s.logger.Error(ctx, "uniqueness pre-check passed but insert conflicted",
				"username", username)
			return common.ErrorUsernameNotUnique
		}
		s.logger.Error(ctx, "error creating user", "error", err)
		return common.ErrorInternal
	}

	return nil
}

// Login verifies the secret against the stored credential and issues a
// bearer token. Unknown username, malformed secret, and wrong secret
// all return ErrorAuthenticationFailed so the endpoint never reveals
// which check failed.
func (s *Service) Login(ctx context.Context, username, encodedSecret string) (tokens.Grant, error) {
	user, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			// Defensive cleanup: a token must never outlive its account.
			s.tokens.Revoke(username)
			return tokens.Grant{}, common.ErrorAuthenticationFailed
		}
		s.logger.Error(ctx, "error loading user", "error", err)
		return tokens.Grant{}, common.ErrorInternal
	}
	defer cryptox.Wipe(user.Salt)
	defer cryptox.Wipe(user.MasterKey)

	secret, err := decodeSecret(encodedSecret)
	if err != nil {
		return tokens.Grant{}, common.ErrorAuthenticationFailed
	}
	defer cryptox.Wipe(secret)

	derived := cryptox.DeriveKey(secret, user.Salt)
	defer cryptox.Wipe(derived)

	if !cryptox.SecretsEqual(derived, user.MasterKey) {
		return tokens.Grant{}, common.ErrorAuthenticationFailed
	}

	grant, err := s.tokens.Issue(username)
	if err != nil {
		s.logger.Error(ctx, "error issuing token", "error", err)
		return tokens.Grant{}, common.ErrorInternal
	}
	return grant, nil
}

// Logout revokes the username's live token. Idempotent: logging out
// with no live token succeeds.
func (s *Service) Logout(ctx context.Context, username string) {
	s.tokens.Revoke(username)
}
