package cli

import (
	"context"
	"fmt"

	"github.com/vaultkeep/vaultkeep/internal/cryptox"
)

// credentials prompts for a username and master password and derives the
// master key and the verifier sent to the server. The raw password is
// wiped before returning.
func (a *App) credentials() (username string, masterKey, verifier []byte, err error) {

	username, err = getSimpleText(a.reader, "Enter user name", a.out)
	if err != nil {
		return "", nil, nil, err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return "", nil, nil, err
	}
	defer cryptox.Wipe(password)

	masterKey = cryptox.DeriveMasterKey(password)
	verifier = cryptox.MakeVerifier(masterKey)
	return username, masterKey, verifier, nil
}

func (a *App) register(ctx context.Context) {

	username, masterKey, verifier, err := a.credentials()
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
		return
	}
	defer cryptox.Wipe(masterKey)
	defer cryptox.Wipe(verifier)

	if err := a.client.Register(ctx, username, verifier); err != nil {
		fmt.Fprintln(a.out, err.Error())
		return
	}

	fmt.Fprintln(a.out, "Account created, you can now log in.")
}

func (a *App) login(ctx context.Context) {

	username, masterKey, verifier, err := a.credentials()
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
		return
	}
	defer cryptox.Wipe(verifier)

	session, err := a.client.Login(ctx, username, verifier)
	if err != nil {
		cryptox.Wipe(masterKey)
		fmt.Fprintln(a.out, err.Error())
		return
	}

	a.reset()
	a.session = session
	a.masterKey = masterKey
	a.username = username
	fmt.Fprintf(a.out, "Logged in, token valid until %s\n", session.ExpiresAt.Local().Format("15:04:05"))
}

func (a *App) logout(ctx context.Context) {
	if !a.isLoggedIn() {
		return
	}

	if err := a.client.Logout(ctx, a.session.Token); err != nil {
		fmt.Fprintln(a.out, err.Error())
	}
	a.reset()
}
