package ui

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/playwright-community/playwright-go"
)

// Ref identifies zero or more elements on a page. A Ref is resolved into a
// live playwright.Locator on every Facade call; nothing is cached.
//
// The set of implementations is closed: Selector, Handle and the values
// returned by the locator algebra below.
type Ref interface {
	Resolve(page playwright.Page) playwright.Locator
	String() string
	isRef()
}

// Selector is a raw locating expression. Anything playwright accepts works:
// CSS, XPath (leading "//" or ".."), or an engine prefix such as "text=".
type Selector string

// Resolve returns the page locator for the selector.
func (s Selector) Resolve(page playwright.Page) playwright.Locator { return page.Locator(string(s)) }

// String returns the selector itself.
func (s Selector) String() string { return string(s) }

func (Selector) isRef() {}

type handle struct {
	loc  playwright.Locator
	desc string
}

// Handle wraps an already-resolved locator. desc names it in errors and logs.
func Handle(loc playwright.Locator, desc string) Ref {
	return handle{loc: loc, desc: desc}
}

func (h handle) Resolve(playwright.Page) playwright.Locator { return h.loc }
func (h handle) String() string { return h.desc }
func (handle) isRef() {}

// pageRef is rooted at the page itself rather than at another Ref.
type pageRef struct {
	desc string
	fn   func(playwright.Page) playwright.Locator
}

func (p pageRef) Resolve(page playwright.Page) playwright.Locator { return p.fn(page) }
func (p pageRef) String() string { return p.desc }
func (pageRef) isRef() {}

type derived struct {
	base Ref
	step string
	fn   func(playwright.Page, playwright.Locator) playwright.Locator
}

func (d derived) Resolve(page playwright.Page) playwright.Locator {
	return d.fn(page, d.base.Resolve(page))
}
func (d derived) String() string { return d.base.String() + " >> " + d.step }
func (derived) isRef() {}

func derive(base Ref, step string, fn func(playwright.Locator) playwright.Locator) Ref {
	return derived{base: base, step: step, fn: func(_ playwright.Page, l playwright.Locator) playwright.Locator {
		return fn(l)
	}}
}

// Nth selects the i-th (0-based) match of ref.
func Nth(ref Ref, i int) Ref {
	return derive(ref, fmt.Sprintf("nth=%d", i), func(l playwright.Locator) playwright.Locator {
		return l.Nth(i)
	})
}

// First selects the first match of ref.
func First(ref Ref) Ref {
	return derive(ref, "first", func(l playwright.Locator) playwright.Locator { return l.First() })
}

// Last selects the last match of ref.
func Last(ref Ref) Ref {
	return derive(ref, "last", func(l playwright.Locator) playwright.Locator { return l.Last() })
}

// Parent selects the parent element of ref.
func Parent(ref Ref) Ref {
	return derive(ref, "parent", func(l playwright.Locator) playwright.Locator {
		return l.Locator("xpath=..")
	})
}

// Children selects descendants of ref matching sub.
func Children(ref Ref, sub string) Ref {
	return derive(ref, sub, func(l playwright.Locator) playwright.Locator { return l.Locator(sub) })
}

// Sibling selects the following siblings of ref that also match sub.
// Locator.Locator only searches below its element, so siblings are reached
// through the XPath axis and intersected with sub resolved on the page.
func Sibling(ref Ref, sub string) Ref {
	return derived{base: ref, step: "sibling " + sub, fn: func(page playwright.Page, l playwright.Locator) playwright.Locator {
		return l.Locator("xpath=following-sibling::*").And(page.Locator(sub))
	}}
}

// FilterByText keeps matches of ref whose text contains text.
func FilterByText(ref Ref, text string) Ref {
	return derive(ref, "has-text="+strconv.Quote(text), func(l playwright.Locator) playwright.Locator {
		return l.Filter(playwright.LocatorFilterOptions{HasText: text})
	})
}

// FilterByPattern keeps matches of ref whose text matches re.
func FilterByPattern(ref Ref, re *regexp.Regexp) Ref {
	return derive(ref, "has-text=/"+re.String()+"/", func(l playwright.Locator) playwright.Locator {
		return l.Filter(playwright.LocatorFilterOptions{HasText: re})
	})
}

// ByText matches elements containing text, case-insensitively.
func ByText(text string) Ref { return Selector("text=" + text) }

// ByExactText matches elements whose whole text equals text.
func ByExactText(text string) Ref { return Selector("text=" + strconv.Quote(text)) }

// ByRole matches elements by ARIA role and, when name is set, accessible name.
func ByRole(role, name string) Ref {
	if name == "" {
		return Selector("role=" + role)
	}
	return Selector(fmt.Sprintf("role=%s[name=%s]", role, strconv.Quote(name)))
}

// ByLabel matches form controls by their associated label text.
func ByLabel(text string) Ref {
	return pageRef{
		desc: "label=" + strconv.Quote(text),
		fn:   func(p playwright.Page) playwright.Locator { return p.GetByLabel(text) },
	}
}

// ByPlaceholder selects inputs by their placeholder attribute.
func ByPlaceholder(text string) Ref { return Selector(fmt.Sprintf("[placeholder=%q]", text)) }

// ByTestID selects elements by data-testid.
func ByTestID(id string) Ref { return Selector(fmt.Sprintf("[data-testid=%q]", id)) }

// ByTitle selects elements by their title attribute.
func ByTitle(text string) Ref { return Selector(fmt.Sprintf("[title=%q]", text)) }

// ByAltText selects images by their alt text.
func ByAltText(text string) Ref { return Selector(fmt.Sprintf("[alt=%q]", text)) }

// WithText matches elements selected by css that contain text.
func WithText(css, text string) Ref { return FilterByText(Selector(css), text) }
