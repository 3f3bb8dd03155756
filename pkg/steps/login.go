package steps

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cucumber/godog"

	"github.com/Eruoni/buggy.justestit/pkg/ui"
)

// MaxLoginAttempts bounds LoginOrRegister: one plain login, then one login
// after registering.
const MaxLoginAttempts = 2

// Names used for accounts the suite registers on its own.
const (
	AutomationFirstName = "Automation"
	AutomationLastName  = "Test"
)

// RandomPlaceholder in a username is replaced by a fresh random suffix.
const RandomPlaceholder = "{random}"

// RegistrationFailedError reports that login still failed after the account
// was registered and the login retried.
type RegistrationFailedError struct {
	Username string
	Attempts int
	Err      error
}

func (e *RegistrationFailedError) Error() string {
	msg := fmt.Sprintf("error while trying to register %q: login failed after %d attempts", e.Username, e.Attempts)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *RegistrationFailedError) Unwrap() error { return e.Err }

// LoginForm is the part of the home screen the login flow needs.
type LoginForm interface {
	Login(username, password string) error
	IsLoginSuccessful() (bool, error)
	ClickRegister() error
	NavigateToHome() error
}

// RegistrationForm is the part of the register screen the login flow needs.
type RegistrationForm interface {
	Register(username, firstName, lastName, password string) error
}

// LoginOrRegister logs in, registering the account first if the initial
// login fails. The sequence is: login; register, go home; login again.
func LoginOrRegister(home LoginForm, reg RegistrationForm, username, password string) error {
	for attempt := 1; attempt <= MaxLoginAttempts; attempt++ {
		if err := home.Login(username, password); err != nil {
			return fmt.Errorf("failed to log in: %w", err)
		}
		ok, err := home.IsLoginSuccessful()
		if err != nil {
			return fmt.Errorf("failed to check login: %w", err)
		}
		if ok {
			return nil
		}
		if attempt == MaxLoginAttempts {
			break
		}

		if err := home.ClickRegister(); err != nil {
			return fmt.Errorf("failed to open registration: %w", err)
		}
		if err := reg.Register(username, AutomationFirstName, AutomationLastName, password); err != nil {
			return &RegistrationFailedError{Username: username, Attempts: attempt, Err: err}
		}
		if err := home.NavigateToHome(); err != nil {
			return fmt.Errorf("failed to return home: %w", err)
		}
	}
	return &RegistrationFailedError{Username: username, Attempts: MaxLoginAttempts}
}

// Credentials is one row of the login table.
type Credentials struct {
	Username string
	Password string
}

// ParseCredentials reads the first data row of a table with Username and
// Password header cells. RandomPlaceholder in the username is expanded.
func ParseCredentials(table *godog.Table) (Credentials, error) {
	if table == nil || len(table.Rows) < 2 {
		return Credentials{}, errors.New("login table needs a header row and a data row")
	}
	header := table.Rows[0].Cells
	row := table.Rows[1].Cells

	var c Credentials
	found := 0
	for i, cell := range header {
		if i >= len(row) {
			break
		}
		switch strings.TrimSpace(cell.Value) {
		case "Username":
			c.Username = row[i].Value
			found++
		case "Password":
			c.Password = row[i].Value
			found++
		}
	}
	if found != 2 {
		return Credentials{}, errors.New("login table needs Username and Password columns")
	}
	if strings.Contains(c.Username, RandomPlaceholder) {
		c.Username = strings.ReplaceAll(c.Username, RandomPlaceholder, ui.RandomString(8, ""))
	}
	return c, nil
}
