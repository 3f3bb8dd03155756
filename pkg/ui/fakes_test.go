package ui

import (
	"fmt"
	"sync"

	"github.com/playwright-community/playwright-go"
)

// fakePage implements only the playwright.Page methods the Facade touches in
// unit tests; anything else panics through the nil embedded interface.
type fakePage struct {
	playwright.Page

	mu        sync.Mutex
	locators  map[string]*fakeLocator
	resolved  []string
	url       string
	title     string
	gotoOpts  []playwright.PageGotoOptions
	onDialog  func(playwright.Dialog)
	frames    []playwright.Frame
	gotoError error
}

func newFakePage() *fakePage {
	return &fakePage{locators: map[string]*fakeLocator{}, url: "about:blank"}
}

// on registers the locator returned for selector.
func (p *fakePage) on(selector string, l *fakeLocator) *fakeLocator {
	p.locators[selector] = l
	return l
}

func (p *fakePage) Locator(selector string, _ ...playwright.PageLocatorOptions) playwright.Locator {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.resolved = append(p.resolved, selector)
	if l, ok := p.locators[selector]; ok {
		return l
	}
	l := &fakeLocator{name: selector}
	p.locators[selector] = l
	return l
}

func (p *fakePage) Goto(url string, opts ...playwright.PageGotoOptions) (playwright.Response, error) {
	p.gotoOpts = append(p.gotoOpts, opts...)
	if p.gotoError != nil {
		return nil, p.gotoError
	}
	p.url = url
	return nil, nil
}

func (p *fakePage) URL() string { return p.url }

func (p *fakePage) Title() (string, error) { return p.title, nil }

func (p *fakePage) OnDialog(fn func(playwright.Dialog)) { p.onDialog = fn }

func (p *fakePage) Frames() []playwright.Frame { return p.frames }

// pwLocator lets fakes embed playwright.Locator without the embedded field
// shadowing the interface's own Locator method.
type pwLocator = playwright.Locator

// fakeLocator scripts the answers of one element reference.
type fakeLocator struct {
	pwLocator

	name string

	waitErr   error
	visible   []bool // successive IsVisible answers; the last one sticks
	texts     []string
	count     int
	clickErr  error
	fillValue string
	enabled   []bool // successive IsEnabled answers; the last one sticks
	checked   bool
	value     string
	attrs     map[string]string

	clickTimeouts []float64
	waitStates    []string
	nthCalls      []int
	visibleCalls  int
	textCalls     int
	enabledCalls  int
	calls         []locatorCall
	subs          []any
}

// locatorCall is one forwarded action with the options playwright got.
type locatorCall struct {
	op      string
	timeout float64
	arg     any
}

func (l *fakeLocator) record(op string, timeout *float64, arg any) {
	c := locatorCall{op: op, arg: arg}
	if timeout != nil {
		c.timeout = *timeout
	}
	l.calls = append(l.calls, c)
}

func (l *fakeLocator) WaitFor(opts ...playwright.LocatorWaitForOptions) error {
	for _, o := range opts {
		if o.State != nil {
			l.waitStates = append(l.waitStates, string(*o.State))
		}
	}
	return l.waitErr
}

func (l *fakeLocator) IsVisible(...playwright.LocatorIsVisibleOptions) (bool, error) {
	l.visibleCalls++
	if len(l.visible) == 0 {
		return false, nil
	}
	i := min(l.visibleCalls, len(l.visible)) - 1
	return l.visible[i], nil
}

func (l *fakeLocator) Count() (int, error) { return l.count, nil }

func (l *fakeLocator) TextContent(...playwright.LocatorTextContentOptions) (string, error) {
	l.textCalls++
	if len(l.texts) == 0 {
		return "", nil
	}
	i := min(l.textCalls, len(l.texts)) - 1
	return l.texts[i], nil
}

func (l *fakeLocator) Click(opts ...playwright.LocatorClickOptions) error {
	for _, o := range opts {
		if o.Timeout != nil {
			l.clickTimeouts = append(l.clickTimeouts, *o.Timeout)
		}
	}
	return l.clickErr
}

func (l *fakeLocator) Fill(value string, _ ...playwright.LocatorFillOptions) error {
	l.fillValue = value
	return nil
}

func (l *fakeLocator) Nth(i int) playwright.Locator {
	l.nthCalls = append(l.nthCalls, i)
	return &fakeLocator{name: l.name, count: 1}
}

func (l *fakeLocator) First() playwright.Locator { return l.Nth(0) }

func (l *fakeLocator) Locator(selectorOrLocator any, _ ...playwright.LocatorLocatorOptions) playwright.Locator {
	l.subs = append(l.subs, selectorOrLocator)
	return &fakeLocator{name: fmt.Sprintf("%s >> %v", l.name, selectorOrLocator)}
}

func (l *fakeLocator) And(other playwright.Locator) playwright.Locator {
	return &fakeLocator{name: l.name + " & " + other.(*fakeLocator).name}
}

func (l *fakeLocator) Dblclick(opts ...playwright.LocatorDblclickOptions) error {
	for _, o := range opts {
		l.record("dblclick", o.Timeout, nil)
	}
	return nil
}

func (l *fakeLocator) Clear(opts ...playwright.LocatorClearOptions) error {
	for _, o := range opts {
		l.record("clear", o.Timeout, nil)
	}
	l.fillValue = ""
	return nil
}

func (l *fakeLocator) Hover(opts ...playwright.LocatorHoverOptions) error {
	for _, o := range opts {
		l.record("hover", o.Timeout, nil)
	}
	return nil
}

func (l *fakeLocator) Focus(opts ...playwright.LocatorFocusOptions) error {
	for _, o := range opts {
		l.record("focus", o.Timeout, nil)
	}
	return nil
}

func (l *fakeLocator) Press(key string, opts ...playwright.LocatorPressOptions) error {
	for _, o := range opts {
		l.record("press", o.Timeout, key)
	}
	return nil
}

func (l *fakeLocator) ScrollIntoViewIfNeeded(opts ...playwright.LocatorScrollIntoViewIfNeededOptions) error {
	for _, o := range opts {
		l.record("scroll", o.Timeout, nil)
	}
	return nil
}

func (l *fakeLocator) PressSequentially(text string, opts ...playwright.LocatorPressSequentiallyOptions) error {
	for _, o := range opts {
		l.record("type", o.Timeout, *o.Delay)
	}
	l.fillValue += text
	return nil
}

func (l *fakeLocator) Check(opts ...playwright.LocatorCheckOptions) error {
	for _, o := range opts {
		l.record("check", o.Timeout, nil)
	}
	l.checked = true
	return nil
}

func (l *fakeLocator) Uncheck(opts ...playwright.LocatorUncheckOptions) error {
	for _, o := range opts {
		l.record("uncheck", o.Timeout, nil)
	}
	l.checked = false
	return nil
}

func (l *fakeLocator) SelectOption(values playwright.SelectOptionValues, opts ...playwright.LocatorSelectOptionOptions) ([]string, error) {
	for _, o := range opts {
		l.record("select", o.Timeout, values)
	}
	return nil, nil
}

func (l *fakeLocator) SetInputFiles(files any, opts ...playwright.LocatorSetInputFilesOptions) error {
	for _, o := range opts {
		l.record("upload", o.Timeout, files)
	}
	return nil
}

func (l *fakeLocator) DragTo(target playwright.Locator, opts ...playwright.LocatorDragToOptions) error {
	for _, o := range opts {
		l.record("drag", o.Timeout, target.(*fakeLocator).name)
	}
	return nil
}

func (l *fakeLocator) IsEnabled(opts ...playwright.LocatorIsEnabledOptions) (bool, error) {
	for _, o := range opts {
		l.record("is enabled", o.Timeout, nil)
	}
	l.enabledCalls++
	if len(l.enabled) == 0 {
		return false, nil
	}
	i := min(l.enabledCalls, len(l.enabled)) - 1
	return l.enabled[i], nil
}

func (l *fakeLocator) IsChecked(opts ...playwright.LocatorIsCheckedOptions) (bool, error) {
	for _, o := range opts {
		l.record("is checked", o.Timeout, nil)
	}
	return l.checked, nil
}

func (l *fakeLocator) InputValue(opts ...playwright.LocatorInputValueOptions) (string, error) {
	for _, o := range opts {
		l.record("input value", o.Timeout, nil)
	}
	return l.value, nil
}

func (l *fakeLocator) GetAttribute(name string, opts ...playwright.LocatorGetAttributeOptions) (string, error) {
	for _, o := range opts {
		l.record("get attribute", o.Timeout, name)
	}
	return l.attrs[name], nil
}

// fakeDialog records how the router answered it.
type fakeDialog struct {
	playwright.Dialog

	kind      string
	message   string
	accepted  bool
	dismissed bool
}

func (d *fakeDialog) Type() string    { return d.kind }
func (d *fakeDialog) Message() string { return d.message }

func (d *fakeDialog) Accept(...string) error {
	d.accepted = true
	return nil
}

func (d *fakeDialog) Dismiss() error {
	d.dismissed = true
	return nil
}
