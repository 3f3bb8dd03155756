package ui

import (
	"github.com/playwright-community/playwright-go"
)

// Click clicks ref once its target is actionable.
func (f *Facade) Click(ref Ref, opts ...CallOption) error {
	o := f.options(opts)
	f.trace("click", ref)
	err := f.locate(ref).Click(playwright.LocatorClickOptions{Timeout: ms(o.timeout)})
	return wrap("click", ref.String(), o.timeout, err)
}

// DoubleClick double-clicks ref once its target is actionable.
func (f *Facade) DoubleClick(ref Ref, opts ...CallOption) error {
	o := f.options(opts)
	f.trace("double click", ref)
	err := f.locate(ref).Dblclick(playwright.LocatorDblclickOptions{Timeout: ms(o.timeout)})
	return wrap("double click", ref.String(), o.timeout, err)
}

// Fill replaces the value of an input or textarea.
func (f *Facade) Fill(ref Ref, value string, opts ...CallOption) error {
	o := f.options(opts)
	f.trace("fill", ref)
	err := f.locate(ref).Fill(value, playwright.LocatorFillOptions{Timeout: ms(o.timeout)})
	return wrap("fill", ref.String(), o.timeout, err)
}

// TypeWithDelay types text one key at a time, pausing Delay between keys.
func (f *Facade) TypeWithDelay(ref Ref, text string, opts ...CallOption) error {
	o := f.options(opts)
	f.trace("type", ref)
	err := f.locate(ref).PressSequentially(text, playwright.LocatorPressSequentiallyOptions{
		Delay:   playwright.Float(float64(o.delay.Milliseconds())),
		Timeout: ms(o.timeout),
	})
	return wrap("type into", ref.String(), o.timeout, err)
}

// Clear empties an input or textarea.
func (f *Facade) Clear(ref Ref, opts ...CallOption) error {
	o := f.options(opts)
	f.trace("clear", ref)
	err := f.locate(ref).Clear(playwright.LocatorClearOptions{Timeout: ms(o.timeout)})
	return wrap("clear", ref.String(), o.timeout, err)
}

// Check ticks a checkbox or radio button. It is a no-op when already checked.
func (f *Facade) Check(ref Ref, opts ...CallOption) error {
	o := f.options(opts)
	f.trace("check", ref)
	err := f.locate(ref).Check(playwright.LocatorCheckOptions{Timeout: ms(o.timeout)})
	return wrap("check", ref.String(), o.timeout, err)
}

// Uncheck clears a checkbox.
func (f *Facade) Uncheck(ref Ref, opts ...CallOption) error {
	o := f.options(opts)
	f.trace("uncheck", ref)
	err := f.locate(ref).Uncheck(playwright.LocatorUncheckOptions{Timeout: ms(o.timeout)})
	return wrap("uncheck", ref.String(), o.timeout, err)
}

// SelectByValue picks the <option> of a <select> with the given value.
func (f *Facade) SelectByValue(ref Ref, value string, opts ...CallOption) error {
	return f.selectOption(ref, playwright.SelectOptionValues{Values: &[]string{value}}, opts)
}

// SelectByLabel picks the <option> with the given visible label.
func (f *Facade) SelectByLabel(ref Ref, label string, opts ...CallOption) error {
	return f.selectOption(ref, playwright.SelectOptionValues{Labels: &[]string{label}}, opts)
}

// SelectByIndex picks the <option> at index.
func (f *Facade) SelectByIndex(ref Ref, index int, opts ...CallOption) error {
	return f.selectOption(ref, playwright.SelectOptionValues{Indexes: &[]int{index}}, opts)
}

func (f *Facade) selectOption(ref Ref, values playwright.SelectOptionValues, opts []CallOption) error {
	o := f.options(opts)
	f.trace("select", ref)
	_, err := f.locate(ref).SelectOption(values, playwright.LocatorSelectOptionOptions{Timeout: ms(o.timeout)})
	return wrap("select option in", ref.String(), o.timeout, err)
}

// Hover moves the mouse over ref.
func (f *Facade) Hover(ref Ref, opts ...CallOption) error {
	o := f.options(opts)
	f.trace("hover", ref)
	err := f.locate(ref).Hover(playwright.LocatorHoverOptions{Timeout: ms(o.timeout)})
	return wrap("hover", ref.String(), o.timeout, err)
}

// Focus gives ref keyboard focus.
func (f *Facade) Focus(ref Ref, opts ...CallOption) error {
	o := f.options(opts)
	f.trace("focus", ref)
	err := f.locate(ref).Focus(playwright.LocatorFocusOptions{Timeout: ms(o.timeout)})
	return wrap("focus", ref.String(), o.timeout, err)
}

// Press focuses ref and presses key, e.g. "Enter" or "Control+A".
func (f *Facade) Press(ref Ref, key string, opts ...CallOption) error {
	o := f.options(opts)
	f.trace("press "+key, ref)
	err := f.locate(ref).Press(key, playwright.LocatorPressOptions{Timeout: ms(o.timeout)})
	return wrap("press "+key+" on", ref.String(), o.timeout, err)
}

// PressKey presses key on whatever element currently has focus.
func (f *Facade) PressKey(key string) error {
	f.logger.Debug("press " + key)
	return wrap("press", key, f.timeout, f.page.Keyboard().Press(key))
}

// UploadFile sets the files of an <input type=file>.
func (f *Facade) UploadFile(ref Ref, paths []string, opts ...CallOption) error {
	o := f.options(opts)
	f.trace("upload", ref)
	err := f.locate(ref).SetInputFiles(paths, playwright.LocatorSetInputFilesOptions{Timeout: ms(o.timeout)})
	return wrap("upload files to", ref.String(), o.timeout, err)
}

// DragAndDrop drags src onto dst.
func (f *Facade) DragAndDrop(src, dst Ref, opts ...CallOption) error {
	o := f.options(opts)
	f.trace("drag", src)
	err := f.locate(src).DragTo(f.locate(dst), playwright.LocatorDragToOptions{Timeout: ms(o.timeout)})
	return wrap("drag", src.String()+" to "+dst.String(), o.timeout, err)
}

// ScrollIntoView scrolls ref into the viewport if it is not already visible.
func (f *Facade) ScrollIntoView(ref Ref, opts ...CallOption) error {
	o := f.options(opts)
	err := f.locate(ref).ScrollIntoViewIfNeeded(playwright.LocatorScrollIntoViewIfNeededOptions{Timeout: ms(o.timeout)})
	return wrap("scroll to", ref.String(), o.timeout, err)
}
