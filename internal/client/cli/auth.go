package cli

import (
	"context"
	"errors"
	"fmt"
	"time"
)

var errPasswordMismatch = errors.New("new passwords do not match")

func wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

func (a *App) Login(ctx context.Context) error {

	id, err := GetSimpleText(a.reader, "Enter user ID", a.out)
	if err != nil {
		return err
	}

	password, err := GetPassword(a.out, "Enter password: ")
	if err != nil {
		return err
	}
	defer wipe(password)

	session, err := a.client.Login(ctx, id, string(password))
	if err != nil {
		a.report("Login", err)
		return err
	}

	a.setUser(id)
	fmt.Fprintln(a.out, "Login successful")
	if session.NeedsPasswordChange {
		fmt.Fprintln(a.out, "Your password must be changed: run 'passwd'")
	}

	return nil
}

func (a *App) ChangePassword(ctx context.Context) error {

	oldPassword, err := GetPassword(a.out, "Current password: ")
	if err != nil {
		return err
	}
	defer wipe(oldPassword)

	newPassword, err := GetPassword(a.out, "New password: ")
	if err != nil {
		return err
	}
	defer wipe(newPassword)

	repeated, err := GetPassword(a.out, "Repeat new password: ")
	if err != nil {
		return err
	}
	defer wipe(repeated)

	if string(newPassword) != string(repeated) {
		a.report("Password change", errPasswordMismatch)
		return errPasswordMismatch
	}

	if err := a.client.ChangePassword(ctx, string(oldPassword), string(newPassword)); err != nil {
		a.report("Password change", err)
		return err
	}

	fmt.Fprintln(a.out, "Password changed")
	return nil
}

func (a *App) WhoAmI(ctx context.Context) error {

	id, err := a.client.Me(ctx)
	if err != nil {
		a.report("Whoami", err)
		return err
	}

	fmt.Fprintf(a.out, "%s (%s), session expires %s\n", id.UserID, id.Role, id.ExpiresAt.Format(time.RFC3339))
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	a.client.Logout()
	a.setUser("")
	fmt.Fprintln(a.out, "Logged out")
	return nil
}
