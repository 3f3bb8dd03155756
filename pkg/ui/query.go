package ui

import (
	"errors"
	"time"

	"github.com/playwright-community/playwright-go"
)

// TextContent returns the textContent of ref, waiting for it to attach.
func (f *Facade) TextContent(ref Ref, opts ...CallOption) (string, error) {
	o := f.options(opts)
	text, err := f.locate(ref).TextContent(playwright.LocatorTextContentOptions{Timeout: ms(o.timeout)})
	if err != nil {
		return "", wrap("read text of", ref.String(), o.timeout, err)
	}
	return text, nil
}

// AttributeValue returns attribute name of ref. A missing attribute reads
// as the empty string.
func (f *Facade) AttributeValue(ref Ref, name string, opts ...CallOption) (string, error) {
	o := f.options(opts)
	loc := f.locate(ref)
	if err := f.waitState(loc, playwright.WaitForSelectorStateAttached, o.timeout); err != nil {
		return "", wrap("read attribute "+name+" of", ref.String(), o.timeout, err)
	}
	v, err := loc.GetAttribute(name, playwright.LocatorGetAttributeOptions{Timeout: ms(o.timeout)})
	if err != nil {
		return "", wrap("read attribute "+name+" of", ref.String(), o.timeout, err)
	}
	return v, nil
}

// InputValue returns the current value of an input, textarea or select.
func (f *Facade) InputValue(ref Ref, opts ...CallOption) (string, error) {
	o := f.options(opts)
	loc := f.locate(ref)
	if err := f.waitState(loc, playwright.WaitForSelectorStateAttached, o.timeout); err != nil {
		return "", wrap("read value of", ref.String(), o.timeout, err)
	}
	v, err := loc.InputValue(playwright.LocatorInputValueOptions{Timeout: ms(o.timeout)})
	if err != nil {
		return "", wrap("read value of", ref.String(), o.timeout, err)
	}
	return v, nil
}

// ElementCount returns how many elements ref matches right now.
func (f *Facade) ElementCount(ref Ref) (int, error) {
	n, err := f.locate(ref).Count()
	if err != nil {
		return 0, wrap("count", ref.String(), f.timeout, err)
	}
	return n, nil
}

// AllTexts returns the textContent of every match, waiting for the first one.
func (f *Facade) AllTexts(ref Ref, opts ...CallOption) ([]string, error) {
	o := f.options(opts)
	loc := f.locate(ref)
	if err := f.waitState(loc.First(), playwright.WaitForSelectorStateAttached, o.timeout); err != nil {
		return nil, wrap("read texts of", ref.String(), o.timeout, err)
	}
	texts, err := loc.AllTextContents()
	if err != nil {
		return nil, wrap("read texts of", ref.String(), o.timeout, err)
	}
	return texts, nil
}

// AllInnerTexts returns the rendered innerText of every match.
func (f *Facade) AllInnerTexts(ref Ref, opts ...CallOption) ([]string, error) {
	o := f.options(opts)
	loc := f.locate(ref)
	if err := f.waitState(loc.First(), playwright.WaitForSelectorStateAttached, o.timeout); err != nil {
		return nil, wrap("read inner texts of", ref.String(), o.timeout, err)
	}
	texts, err := loc.AllInnerTexts()
	if err != nil {
		return nil, wrap("read inner texts of", ref.String(), o.timeout, err)
	}
	return texts, nil
}

// IsVisible waits up to the timeout for ref to become visible. A timeout is
// reported as (false, nil); any other failure is returned.
func (f *Facade) IsVisible(ref Ref, opts ...CallOption) (bool, error) {
	o := f.options(opts)
	return f.waitPredicate(ref, "visibility", playwright.WaitForSelectorStateVisible, o.timeout)
}

// IsHidden waits up to the timeout for ref to be hidden or detached.
func (f *Facade) IsHidden(ref Ref, opts ...CallOption) (bool, error) {
	o := f.options(opts)
	return f.waitPredicate(ref, "hidden state", playwright.WaitForSelectorStateHidden, o.timeout)
}

func (f *Facade) waitPredicate(ref Ref, what string, state *playwright.WaitForSelectorState, timeout time.Duration) (bool, error) {
	err := f.waitState(f.locate(ref), state, timeout)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, playwright.ErrTimeout):
		return false, nil
	default:
		return false, wrap("check "+what+" of", ref.String(), timeout, err)
	}
}

// IsEnabled reports whether ref is enabled, waiting for it to attach first.
func (f *Facade) IsEnabled(ref Ref, opts ...CallOption) (bool, error) {
	o := f.options(opts)
	loc := f.locate(ref)
	if err := f.waitState(loc, playwright.WaitForSelectorStateAttached, o.timeout); err != nil {
		return false, wrap("check enabled state of", ref.String(), o.timeout, err)
	}
	ok, err := loc.IsEnabled(playwright.LocatorIsEnabledOptions{Timeout: ms(o.timeout)})
	if err != nil {
		return false, wrap("check enabled state of", ref.String(), o.timeout, err)
	}
	return ok, nil
}

// IsDisabled is the negation of IsEnabled.
func (f *Facade) IsDisabled(ref Ref, opts ...CallOption) (bool, error) {
	ok, err := f.IsEnabled(ref, opts...)
	if err != nil {
		return false, err
	}
	return !ok, nil
}

// IsChecked reports whether a checkbox or radio is checked, waiting for it to attach first.
func (f *Facade) IsChecked(ref Ref, opts ...CallOption) (bool, error) {
	o := f.options(opts)
	loc := f.locate(ref)
	if err := f.waitState(loc, playwright.WaitForSelectorStateAttached, o.timeout); err != nil {
		return false, wrap("check checked state of", ref.String(), o.timeout, err)
	}
	ok, err := loc.IsChecked(playwright.LocatorIsCheckedOptions{Timeout: ms(o.timeout)})
	if err != nil {
		return false, wrap("check checked state of", ref.String(), o.timeout, err)
	}
	return ok, nil
}

// WaitForVisible blocks until ref is visible.
func (f *Facade) WaitForVisible(ref Ref, opts ...CallOption) error {
	o := f.options(opts)
	err := f.waitState(f.locate(ref), playwright.WaitForSelectorStateVisible, o.timeout)
	return wrap("wait for visible", ref.String(), o.timeout, err)
}

// WaitForHidden blocks until ref is hidden or detached.
func (f *Facade) WaitForHidden(ref Ref, opts ...CallOption) error {
	o := f.options(opts)
	err := f.waitState(f.locate(ref), playwright.WaitForSelectorStateHidden, o.timeout)
	return wrap("wait for hidden", ref.String(), o.timeout, err)
}

// WaitForAttached blocks until ref is present in the DOM.
func (f *Facade) WaitForAttached(ref Ref, opts ...CallOption) error {
	o := f.options(opts)
	err := f.waitState(f.locate(ref), playwright.WaitForSelectorStateAttached, o.timeout)
	return wrap("wait for attached", ref.String(), o.timeout, err)
}

// Pause sleeps for d. Prefer a wait or an Expect* call.
func (f *Facade) Pause(d time.Duration) {
	f.clock.Sleep(d)
}

func (f *Facade) waitState(loc playwright.Locator, state *playwright.WaitForSelectorState, timeout time.Duration) error {
	return loc.WaitFor(playwright.LocatorWaitForOptions{State: state, Timeout: ms(timeout)})
}
