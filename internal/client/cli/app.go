// Package cli implements the interactive VaultKeep command-line client.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/vaultkeep/vaultkeep/internal/client/api"
	"github.com/vaultkeep/vaultkeep/internal/client/config"
	"github.com/vaultkeep/vaultkeep/internal/cryptox"
)

type App struct {
	config    *config.Config
	client    *api.Client
	session   *api.Session
	masterKey []byte
	username  string
	reader    *bufio.Reader
	out       *os.File
}

func NewApp(cfg *config.Config) *App {
	return &App{
		config: cfg,
		client: api.NewClient(cfg.ServerURL),
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
	}
}

func (a *App) isLoggedIn() bool {
	return a.session != nil
}

func (a *App) getStatus() string {
	if a.username != "" {
		return fmt.Sprintf("(%s) ", a.username)
	}
	return ""
}

func (a *App) Run(ctx context.Context) {

	fmt.Fprintln(a.out, "Welcome to VaultKeep CLI (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Fprintf(a.out, "vk %s> ", a.getStatus())
		if !scanner.Scan() {
			break
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}

		switch parts[0] {
		case "help":
			if a.isLoggedIn() {
				fmt.Fprintln(a.out, "Available commands: list, add, show, delete, clear, logout, exit")
			} else {
				fmt.Fprintln(a.out, "Available commands: register, login, exit")
			}
		case "register":
			a.register(ctx)
		case "login":
			a.login(ctx)
		case "logout":
			a.logout(ctx)
		case "list":
			a.list(ctx)
		case "add":
			a.add(ctx)
		case "show":
			a.show(ctx)
		case "delete":
			a.delete(ctx)
		case "clear":
			a.clear(ctx)
		case "exit", "quit":
			a.logout(ctx)
			fmt.Fprintln(a.out, "Bye!")
			return
		default:
			fmt.Fprintln(a.out, "Unknown command, type 'help' for commands")
		}
	}
}

func (a *App) seal(plaintext []byte) ([]byte, error) {
	return cryptox.Seal(plaintext, a.masterKey)
}

func (a *App) open(blob []byte) ([]byte, error) {
	return cryptox.Open(blob, a.masterKey)
}

// reset drops the session and wipes the in-memory master key.
func (a *App) reset() {
	cryptox.Wipe(a.masterKey)
	a.masterKey = nil
	a.session = nil
	a.username = ""
}
