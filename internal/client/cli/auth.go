package cli

import (
	"context"

	"github.com/dmitrijs2005/circuitstock/internal/client/client"
	"github.com/dmitrijs2005/circuitstock/internal/client/models"
	"github.com/dmitrijs2005/circuitstock/internal/client/nav"
	"github.com/dmitrijs2005/circuitstock/internal/client/services"
	"github.com/dmitrijs2005/circuitstock/internal/common"
)

// getPassword is an indirection used to facilitate testing.
var getPassword = GetPassword

// Register prompts for a name, a password and its confirmation and creates
// the account. On success the new user lands on their dashboard.
//
// The password byte slices are wiped before returning.
func (a *App) Register(ctx context.Context) error {
	userName, err := GetSimpleText(a.reader, "Enter name", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword("Enter password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	confirm, err := getPassword("Confirm password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(confirm)

	out, err := a.authService.Register(ctx, a.store, userName, string(password), string(confirm))
	if err != nil {
		a.toast(models.ToastError, services.AuthMessage(client.OpRegister, err))
		return err
	}

	a.toast(models.ToastSuccess, out.Message)
	a.unmount()
	return a.Open(ctx, out.Redirect)
}

// Login prompts for credentials, pre-filled with the demo user, and opens
// the role's home screen on success.
//
// The password is wiped before returning.
func (a *App) Login(ctx context.Context) error {
	userName, err := GetWithDefault(a.reader, "Enter name", services.DemoUserName, a.out)
	if err != nil {
		return err
	}

	password, err := getPassword("Enter password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	out, err := a.authService.Login(ctx, a.store, userName, string(password))
	if err != nil {
		a.toast(models.ToastError, services.AuthMessage(client.OpLogin, err))
		return err
	}

	a.toast(models.ToastSuccess, out.Message)
	a.unmount()
	return a.Open(ctx, out.Redirect)
}

// Logout clears the stored session and returns to the login screen. It
// never fails.
func (a *App) Logout(ctx context.Context) error {
	a.unmount()
	a.screen = nav.Logout(ctx, a.store, a.log)
	a.println("Logged out.")
	return nil
}

// Nav prints the navigation shell for the current session.
func (a *App) Nav(ctx context.Context) error {
	s := a.session(ctx)
	if !s.Authenticated() {
		a.println("Please log in first (type 'login').")
		return errLoginRequired
	}
	a.printf("Signed in as %s (%s)\n", nav.Greeting(s), s.Role)
	for _, l := range nav.Links(s.Role, a.screen) {
		marker := " "
		if l.Active {
			marker = "*"
		}
		a.printf(" %s %-22s %s\n", marker, l.Label, l.Href)
	}
	return nil
}
