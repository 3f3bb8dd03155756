package ui

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/playwright-community/playwright-go"
)

// sample reads the page once. budget bounds any wait the read performs.
type sample func(budget time.Duration) (ok bool, observed string)

// eventually re-runs read every poll interval until it holds or timeout elapses.
func (f *Facade) eventually(assertion string, target, expected string, timeout time.Duration, read sample) error {
	deadline := f.clock.Now().Add(timeout)
	for {
		budget := min(f.poll, deadline.Sub(f.clock.Now()))
		if budget < time.Millisecond {
			budget = time.Millisecond
		}
		ok, observed := read(budget)
		if ok {
			return nil
		}
		remaining := deadline.Sub(f.clock.Now())
		if remaining <= 0 {
			return &AssertionTimeoutError{
				Assertion: assertion,
				Target:    target,
				Expected:  expected,
				Observed:  observed,
				Timeout:   timeout,
			}
		}
		f.clock.Sleep(min(f.poll, remaining))
	}
}

func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// ExpectVisible asserts ref becomes visible within the timeout.
func (f *Facade) ExpectVisible(ref Ref, opts ...CallOption) error {
	o := f.options(opts)
	return f.eventually("visible", ref.String(), "visible", o.timeout, func(time.Duration) (bool, string) {
		ok, err := f.locate(ref).IsVisible()
		if err != nil {
			return false, err.Error()
		}
		return ok, visibility(ok)
	})
}

// ExpectHidden asserts ref is hidden or absent within the timeout.
func (f *Facade) ExpectHidden(ref Ref, opts ...CallOption) error {
	o := f.options(opts)
	return f.eventually("hidden", ref.String(), "hidden", o.timeout, func(time.Duration) (bool, string) {
		ok, err := f.locate(ref).IsVisible()
		if err != nil {
			return false, err.Error()
		}
		return !ok, visibility(ok)
	})
}

func visibility(visible bool) string {
	if visible {
		return "visible"
	}
	return "hidden"
}

// ExpectEnabled asserts ref exists and is enabled.
func (f *Facade) ExpectEnabled(ref Ref, opts ...CallOption) error {
	return f.expectEnabled(ref, true, opts)
}

// ExpectDisabled asserts ref exists and is disabled.
func (f *Facade) ExpectDisabled(ref Ref, opts ...CallOption) error {
	return f.expectEnabled(ref, false, opts)
}

func (f *Facade) expectEnabled(ref Ref, want bool, opts []CallOption) error {
	o := f.options(opts)
	state := func(enabled bool) string {
		if enabled {
			return "enabled"
		}
		return "disabled"
	}
	return f.eventually(state(want), ref.String(), state(want), o.timeout, func(budget time.Duration) (bool, string) {
		loc := f.locate(ref)
		if n, err := loc.Count(); err != nil || n == 0 {
			return false, "<no element>"
		}
		enabled, err := loc.IsEnabled(playwright.LocatorIsEnabledOptions{Timeout: ms(budget)})
		if err != nil {
			return false, err.Error()
		}
		return enabled == want, state(enabled)
	})
}

// readText returns the whitespace-normalised textContent of ref, or a
// placeholder when nothing matches yet.
func (f *Facade) readText(ref Ref, budget time.Duration) (string, bool) {
	loc := f.locate(ref)
	if n, err := loc.Count(); err != nil || n == 0 {
		return "<no element>", false
	}
	text, err := loc.TextContent(playwright.LocatorTextContentOptions{Timeout: ms(budget)})
	if err != nil {
		return err.Error(), false
	}
	return normalizeSpace(text), true
}

// ExpectText asserts the whitespace-normalised text of ref equals text.
func (f *Facade) ExpectText(ref Ref, text string, opts ...CallOption) error {
	o := f.options(opts)
	want := normalizeSpace(text)
	return f.eventually("text", ref.String(), want, o.timeout, func(budget time.Duration) (bool, string) {
		got, ok := f.readText(ref, budget)
		return ok && got == want, got
	})
}

// ExpectContainsText asserts the text of ref contains text.
func (f *Facade) ExpectContainsText(ref Ref, text string, opts ...CallOption) error {
	o := f.options(opts)
	want := normalizeSpace(text)
	return f.eventually("text containing", ref.String(), want, o.timeout, func(budget time.Duration) (bool, string) {
		got, ok := f.readText(ref, budget)
		return ok && strings.Contains(got, want), got
	})
}

// ExpectTextMatches asserts the text of ref matches re.
func (f *Facade) ExpectTextMatches(ref Ref, re *regexp.Regexp, opts ...CallOption) error {
	o := f.options(opts)
	return f.eventually("text matching", ref.String(), re.String(), o.timeout, func(budget time.Duration) (bool, string) {
		got, ok := f.readText(ref, budget)
		return ok && re.MatchString(got), got
	})
}

// ExpectValue asserts the input value of ref equals value.
func (f *Facade) ExpectValue(ref Ref, value string, opts ...CallOption) error {
	o := f.options(opts)
	return f.eventually("value", ref.String(), value, o.timeout, func(budget time.Duration) (bool, string) {
		loc := f.locate(ref)
		if n, err := loc.Count(); err != nil || n == 0 {
			return false, "<no element>"
		}
		got, err := loc.InputValue(playwright.LocatorInputValueOptions{Timeout: ms(budget)})
		if err != nil {
			return false, err.Error()
		}
		return got == value, got
	})
}

// ExpectAttribute asserts attribute name of ref equals value.
func (f *Facade) ExpectAttribute(ref Ref, name, value string, opts ...CallOption) error {
	o := f.options(opts)
	return f.eventually("attribute "+name, ref.String(), value, o.timeout, func(budget time.Duration) (bool, string) {
		loc := f.locate(ref)
		if n, err := loc.Count(); err != nil || n == 0 {
			return false, "<no element>"
		}
		got, err := loc.GetAttribute(name, playwright.LocatorGetAttributeOptions{Timeout: ms(budget)})
		if err != nil {
			return false, err.Error()
		}
		return got == value, got
	})
}

// ExpectCount asserts ref matches exactly n elements.
func (f *Facade) ExpectCount(ref Ref, n int, opts ...CallOption) error {
	o := f.options(opts)
	return f.eventually("count", ref.String(), strconv.Itoa(n), o.timeout, func(time.Duration) (bool, string) {
		got, err := f.locate(ref).Count()
		if err != nil {
			return false, err.Error()
		}
		return got == n, strconv.Itoa(got)
	})
}

// ExpectURL asserts the page URL equals url.
func (f *Facade) ExpectURL(url string, opts ...CallOption) error {
	o := f.options(opts)
	return f.eventually("url", "page", url, o.timeout, func(time.Duration) (bool, string) {
		got := f.page.URL()
		return got == url, got
	})
}

// ExpectURLContains asserts the page URL contains part.
func (f *Facade) ExpectURLContains(part string, opts ...CallOption) error {
	o := f.options(opts)
	return f.eventually("url containing", "page", part, o.timeout, func(time.Duration) (bool, string) {
		got := f.page.URL()
		return strings.Contains(got, part), got
	})
}

// ExpectTitle asserts the document title equals title.
func (f *Facade) ExpectTitle(title string, opts ...CallOption) error {
	o := f.options(opts)
	return f.eventually("title", "page", title, o.timeout, func(time.Duration) (bool, string) {
		got, err := f.page.Title()
		if err != nil {
			return false, err.Error()
		}
		return got == title, got
	})
}

// ExpectTitleContains asserts the document title contains part.
func (f *Facade) ExpectTitleContains(part string, opts ...CallOption) error {
	o := f.options(opts)
	return f.eventually("title containing", "page", part, o.timeout, func(time.Duration) (bool, string) {
		got, err := f.page.Title()
		if err != nil {
			return false, err.Error()
		}
		return strings.Contains(got, part), got
	})
}
