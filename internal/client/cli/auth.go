package cli

import (
	"context"
	"fmt"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for an email and password and creates an account. A
// successful registration leaves the user logged in.
func (a *App) Register(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer wipe(password)

	if err := a.session.Register(ctx, email, string(password)); err != nil {
		return err
	}

	if a.session.IsAuthenticated() {
		fmt.Fprintln(a.out, "Welcome,", email)
	} else {
		fmt.Fprintln(a.out, "Registered, but the issued credential was unusable. Please log in.")
	}
	return nil
}

// Login prompts for credentials and authenticates.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer wipe(password)

	if err := a.session.Login(ctx, email, string(password)); err != nil {
		return err
	}

	if a.session.IsAuthenticated() {
		fmt.Fprintln(a.out, "Welcome back,", email)
	} else {
		fmt.Fprintln(a.out, "Login succeeded, but the issued credential was unusable. Please try again.")
	}
	return nil
}

// Logout drops the session. The cart is deliberately kept: it is scoped to
// this machine, not to an account.
func (a *App) Logout(ctx context.Context) error {
	a.session.Logout(ctx)
	fmt.Fprintln(a.out, "Logged out.")
	return nil
}
