package cli

import (
	"context"
	"fmt"
	"strconv"
)

func (a *App) requireLogin() bool {
	if !a.isLoggedIn() {
		fmt.Fprintln(a.out, "Please log in first")
		return false
	}
	return true
}

func (a *App) promptEntryID() (int64, bool) {
	text, err := getSimpleText(a.reader, "Enter entry id", a.out)
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
		return 0, false
	}
	id, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		fmt.Fprintln(a.out, "Entry id must be a number")
		return 0, false
	}
	return id, true
}

func (a *App) list(ctx context.Context) {
	if !a.requireLogin() {
		return
	}

	entries, err := a.client.VaultList(ctx, a.session.Token)
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
		return
	}

	if len(entries) == 0 {
		fmt.Fprintln(a.out, "Vault is empty")
		return
	}
	for _, e := range entries {
		fmt.Fprintf(a.out, "#%d  %d bytes\n", e.ID, len(e.EncData))
	}
}

func (a *App) add(ctx context.Context) {
	if !a.requireLogin() {
		return
	}

	text, err := getMultiline(a.reader, "Enter the secret to store", a.out)
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
		return
	}
	if text == "" {
		fmt.Fprintln(a.out, "Nothing to store")
		return
	}

	encData, err := a.seal([]byte(text))
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
		return
	}

	id, err := a.client.VaultAdd(ctx, a.session.Token, encData)
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
		return
	}
	fmt.Fprintf(a.out, "Stored as entry #%d\n", id)
}

func (a *App) show(ctx context.Context) {
	if !a.requireLogin() {
		return
	}
	id, ok := a.promptEntryID()
	if !ok {
		return
	}

	entry, err := a.client.VaultGet(ctx, a.session.Token, id)
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
		return
	}

	plaintext, err := a.open(entry.EncData)
	if err != nil {
		fmt.Fprintln(a.out, "Cannot decrypt entry: "+err.Error())
		return
	}
	fmt.Fprintln(a.out, string(plaintext))
}

func (a *App) delete(ctx context.Context) {
	if !a.requireLogin() {
		return
	}
	id, ok := a.promptEntryID()
	if !ok {
		return
	}

	if err := a.client.VaultDelete(ctx, a.session.Token, id); err != nil {
		fmt.Fprintln(a.out, err.Error())
		return
	}
	fmt.Fprintln(a.out, "Deleted")
}

func (a *App) clear(ctx context.Context) {
	if !a.requireLogin() {
		return
	}

	confirm, err := getSimpleText(a.reader, "Delete ALL entries? Type 'yes' to confirm", a.out)
	if err != nil || confirm != "yes" {
		return
	}

	if err := a.client.VaultDeleteAll(ctx, a.session.Token); err != nil {
		fmt.Fprintln(a.out, err.Error())
		return
	}
	fmt.Fprintln(a.out, "Vault cleared")
}
