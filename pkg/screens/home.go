// Package screens holds the screen models of the Buggy Cars Rating app.
// Each model owns its element references and drives them through a
// *ui.Facade.
package screens

import (
	"fmt"
	"regexp"
	"time"

	"github.com/Eruoni/buggy.justestit/pkg/ui"
)

var (
	homeUsername      = ui.Selector(`//*[@name="login"]`)
	homePassword      = ui.Selector(`(//*[@name="password"])[1]`)
	homeLoginButton   = ui.Selector(`//button[text()='Login']`)
	homeRegisterLink  = ui.Selector(`//a[text()='Register']`)
	homeLogoutLink    = ui.Selector(`//a[text()='Logout']`)
	homePopularTitle  = ui.Selector(`//*[text()='Popular Model']/..//h3`)
	homePopularLink   = ui.Selector(`//*[text()='Popular Model']/..//a`)
	popularModelRegex = regexp.MustCompile(`\s(\w+)\(`)
)

// Home is the landing page with the login form and the popular model.
type Home struct {
	f            *ui.Facade
	baseURL      string
	shortTimeout time.Duration
}

// NewHome binds the home screen to f. shortTimeout bounds the login check.
func NewHome(f *ui.Facade, baseURL string, shortTimeout time.Duration) *Home {
	return &Home{f: f, baseURL: baseURL, shortTimeout: shortTimeout}
}

func (h *Home) NavigateToHome() error {
	return h.f.Goto(h.baseURL)
}

func (h *Home) EnterUsername(username string) error {
	return h.f.Fill(homeUsername, username)
}

func (h *Home) EnterPassword(password string) error {
	return h.f.Fill(homePassword, password)
}

func (h *Home) ClickLogin() error {
	return h.f.Click(homeLoginButton)
}

// Login fills the navbar form and submits it.
func (h *Home) Login(username, password string) error {
	if err := h.EnterUsername(username); err != nil {
		return err
	}
	if err := h.EnterPassword(password); err != nil {
		return err
	}
	return h.ClickLogin()
}

// IsLoginSuccessful reports whether the Logout link shows up within the
// short timeout.
func (h *Home) IsLoginSuccessful() (bool, error) {
	return h.f.IsVisible(homeLogoutLink, ui.Timeout(h.shortTimeout))
}

func (h *Home) ClickRegister() error {
	return h.f.Click(homeRegisterLink)
}

// PopularModel returns the model name from the "Popular Model" card, e.g.
// "Diablo" for "Lamborghini Diablo(12 votes)". It returns "" when the title
// does not have that shape.
func (h *Home) PopularModel() (string, error) {
	title, err := h.f.TextContent(homePopularTitle)
	if err != nil {
		return "", fmt.Errorf("failed to read popular model: %w", err)
	}
	return ParsePopularModel(title), nil
}

// ParsePopularModel extracts the model name from a popular model title.
func ParsePopularModel(title string) string {
	m := popularModelRegex.FindStringSubmatch(title)
	if m == nil {
		return ""
	}
	return m[1]
}

func (h *Home) ClickPopularModel() error {
	return h.f.Click(homePopularLink)
}

func (h *Home) ClickLogout() error {
	return h.f.Click(homeLogoutLink)
}

// VerifyLoginFormDisplayed expects username, password and Login button.
func (h *Home) VerifyLoginFormDisplayed() error {
	for _, ref := range []ui.Ref{homeUsername, homePassword, homeLoginButton} {
		if err := h.f.ExpectVisible(ref); err != nil {
			return err
		}
	}
	return nil
}
