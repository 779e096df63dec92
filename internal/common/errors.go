// Package common defines shared sentinel errors used across the server
// layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors (generic/internal flow control).
	ErrorInternal = errors.New("internal error")

	// Account errors. ErrorAuthenticationFailed deliberately covers
	// unknown username, malformed secret, and wrong secret alike, so the
	// login endpoint never reveals which check failed.
	ErrorUsernameNotUnique    = errors.New("username not unique")
	ErrorCredentialFormat     = errors.New("credential is not valid base64")
	ErrorCredentialLength     = errors.New("credential has wrong length")
	ErrorAuthenticationFailed = errors.New("authentication failed")

	// Vault errors.
	ErrorVaultEntryNotFound = errors.New("vault entry not found")
	ErrorVaultEmpty         = errors.New("vault is empty")
)
