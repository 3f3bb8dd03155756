package ui

import (
	"github.com/playwright-community/playwright-go"
	"go.uber.org/zap"
)

// Goto navigates to url and waits for DOMContentLoaded.
func (f *Facade) Goto(url string, opts ...CallOption) error {
	o := f.options(opts)
	f.logger.Debug("goto", zap.String("url", url))
	_, err := f.page.Goto(url, playwright.PageGotoOptions{
		Timeout:   ms(o.timeout),
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
	})
	return wrap("goto", url, o.timeout, err)
}

// Reload reloads the current page.
func (f *Facade) Reload(opts ...CallOption) error {
	o := f.options(opts)
	_, err := f.page.Reload(playwright.PageReloadOptions{
		Timeout:   ms(o.timeout),
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
	})
	return wrap("reload", f.page.URL(), o.timeout, err)
}

// Back navigates one step back in history. It is a no-op without history.
func (f *Facade) Back(opts ...CallOption) error {
	o := f.options(opts)
	_, err := f.page.GoBack(playwright.PageGoBackOptions{
		Timeout:   ms(o.timeout),
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
	})
	return wrap("go back", "", o.timeout, err)
}

// Forward navigates one step forward in history.
func (f *Facade) Forward(opts ...CallOption) error {
	o := f.options(opts)
	_, err := f.page.GoForward(playwright.PageGoForwardOptions{
		Timeout:   ms(o.timeout),
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
	})
	return wrap("go forward", "", o.timeout, err)
}

// WaitForLoad waits until the current document reached DOMContentLoaded.
func (f *Facade) WaitForLoad(opts ...CallOption) error {
	o := f.options(opts)
	err := f.page.WaitForLoadState(playwright.PageWaitForLoadStateOptions{
		State:   playwright.LoadStateDomcontentloaded,
		Timeout: ms(o.timeout),
	})
	return wrap("wait for load", f.page.URL(), o.timeout, err)
}

// WaitForNetworkIdle waits until there were no network connections for 500ms.
func (f *Facade) WaitForNetworkIdle(opts ...CallOption) error {
	o := f.options(opts)
	err := f.page.WaitForLoadState(playwright.PageWaitForLoadStateOptions{
		State:   playwright.LoadStateNetworkidle,
		Timeout: ms(o.timeout),
	})
	return wrap("wait for network idle", f.page.URL(), o.timeout, err)
}

// URL returns the current page URL.
func (f *Facade) URL() string { return f.page.URL() }

// Title returns the document title.
func (f *Facade) Title() (string, error) {
	title, err := f.page.Title()
	if err != nil {
		return "", wrap("read title", "", f.timeout, err)
	}
	return title, nil
}
