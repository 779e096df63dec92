// Package db wires the database connection, the repositories, and the
// schema migrations into one repository manager.
package db

import (
	"github.com/vaultkeep/vaultkeep/internal/server/users"
	"github.com/vaultkeep/vaultkeep/internal/server/vault"
)

// RepositoryManager hands out the repositories backed by one shared
// connection pool.
type RepositoryManager interface {
	Users() users.Repository
	Vault() vault.Repository
	Close() error
}
