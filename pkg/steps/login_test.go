package steps

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/cucumber/godog"
	messages "github.com/cucumber/messages/go/v21"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSite scripts login outcomes and records the calls of the login flow.
type fakeSite struct {
	loginResults []bool
	registerErr  error
	calls        []string
	registered   []string
}

func (s *fakeSite) Login(username, _ string) error {
	s.calls = append(s.calls, "login")
	return nil
}

func (s *fakeSite) IsLoginSuccessful() (bool, error) {
	n := 0
	for _, c := range s.calls {
		if c == "login" {
			n++
		}
	}
	if n > len(s.loginResults) {
		return false, nil
	}
	return s.loginResults[n-1], nil
}

func (s *fakeSite) ClickRegister() error {
	s.calls = append(s.calls, "open register")
	return nil
}

func (s *fakeSite) NavigateToHome() error {
	s.calls = append(s.calls, "home")
	return nil
}

func (s *fakeSite) Register(username, firstName, lastName, _ string) error {
	s.calls = append(s.calls, "register")
	s.registered = append(s.registered, username+" "+firstName+" "+lastName)
	return s.registerErr
}

func TestLoginOrRegister_ExistingUser(t *testing.T) {
	site := &fakeSite{loginResults: []bool{true}}

	require.NoError(t, LoginOrRegister(site, site, "buggy", "Pass-123"))

	assert.Equal(t, []string{"login"}, site.calls)
}

func TestLoginOrRegister_RegistersThenRetries(t *testing.T) {
	site := &fakeSite{loginResults: []bool{false, true}}

	require.NoError(t, LoginOrRegister(site, site, "buggy", "Pass-123"))

	assert.Equal(t, []string{"login", "open register", "register", "home", "login"}, site.calls)
	assert.Equal(t, []string{"buggy Automation Test"}, site.registered)
}

func TestLoginOrRegister_FailsAfterRetry(t *testing.T) {
	site := &fakeSite{loginResults: []bool{false, false}}

	err := LoginOrRegister(site, site, "buggy", "Pass-123")

	var rf *RegistrationFailedError
	require.ErrorAs(t, err, &rf)
	assert.Equal(t, "buggy", rf.Username)
	assert.Equal(t, MaxLoginAttempts, rf.Attempts)
	assert.Equal(t, []string{"login", "open register", "register", "home", "login"}, site.calls,
		"registration happens at most once")
}

func TestLoginOrRegister_RegistrationError(t *testing.T) {
	boom := errors.New("UsernameExistsException")
	site := &fakeSite{loginResults: []bool{false}, registerErr: boom}

	err := LoginOrRegister(site, site, "buggy", "wrong")

	var rf *RegistrationFailedError
	require.ErrorAs(t, err, &rf)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, []string{"login", "open register", "register"}, site.calls)
}

func table(rows ...[]string) *godog.Table {
	t := &godog.Table{}
	for _, r := range rows {
		row := &messages.PickleTableRow{}
		for _, v := range r {
			row.Cells = append(row.Cells, &messages.PickleTableCell{Value: v})
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

func TestParseCredentials(t *testing.T) {
	c, err := ParseCredentials(table(
		[]string{"Username", "Password"},
		[]string{"buggy_tester", "Pass-123"},
	))
	require.NoError(t, err)
	assert.Equal(t, Credentials{Username: "buggy_tester", Password: "Pass-123"}, c)

	c, err = ParseCredentials(table(
		[]string{"Password", "Username"},
		[]string{"Pass-123", "buggy_{random}"},
	))
	require.NoError(t, err)
	assert.Regexp(t, `^buggy_[a-z0-9]{8}$`, c.Username)
	assert.Equal(t, "Pass-123", c.Password)
}

func TestParseCredentials_Malformed(t *testing.T) {
	_, err := ParseCredentials(nil)
	assert.Error(t, err)

	_, err = ParseCredentials(table([]string{"Username", "Password"}))
	assert.Error(t, err)

	_, err = ParseCredentials(table([]string{"User", "Password"}, []string{"a", "b"}))
	assert.Error(t, err)
}

func TestScreenshotPath(t *testing.T) {
	at := time.UnixMilli(1700000000123)

	got := ScreenshotPath(filepath.Join("test-results", "screenshots"), "User votes: a car / twice", at)

	assert.Equal(t, filepath.Join("test-results", "screenshots", "User_votes_a_car_twice-1700000000123.png"), got)
	assert.Equal(t, filepath.Join("d", "scenario-1700000000123.png"), ScreenshotPath("d", "", at))
}
