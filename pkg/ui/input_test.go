package ui

import (
	"testing"
	"time"

	"github.com/playwright-community/playwright-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypeWithDelay_ForwardsDelayAndTimeout(t *testing.T) {
	tests := []struct {
		name string
		opts []CallOption
		want locatorCall
	}{
		{
			name: "defaults",
			want: locatorCall{op: "type", timeout: 30000, arg: 100.0},
		},
		{
			name: "delay override",
			opts: []CallOption{Delay(250 * time.Millisecond)},
			want: locatorCall{op: "type", timeout: 30000, arg: 250.0},
		},
		{
			name: "delay and timeout",
			opts: []CallOption{Delay(0), Timeout(2 * time.Second)},
			want: locatorCall{op: "type", timeout: 2000, arg: 0.0},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := newFakePage()
			loc := page.on("#comment", &fakeLocator{})
			f, _ := newTestFacade(t, page)

			require.NoError(t, f.TypeWithDelay(Selector("#comment"), "Automation review", tt.opts...))

			assert.Equal(t, []locatorCall{tt.want}, loc.calls)
			assert.Equal(t, "Automation review", loc.fillValue)
		})
	}
}

func TestActions_ForwardOptions(t *testing.T) {
	tests := []struct {
		name string
		act  func(f *Facade) error
		want locatorCall
	}{
		{
			name: "double click",
			act:  func(f *Facade) error { return f.DoubleClick(Selector("#target"), Timeout(time.Second)) },
			want: locatorCall{op: "dblclick", timeout: 1000},
		},
		{
			name: "check",
			act:  func(f *Facade) error { return f.Check(Selector("#target")) },
			want: locatorCall{op: "check", timeout: 30000},
		},
		{
			name: "uncheck",
			act:  func(f *Facade) error { return f.Uncheck(Selector("#target"), Timeout(1500*time.Millisecond)) },
			want: locatorCall{op: "uncheck", timeout: 1500},
		},
		{
			name: "clear",
			act:  func(f *Facade) error { return f.Clear(Selector("#target")) },
			want: locatorCall{op: "clear", timeout: 30000},
		},
		{
			name: "hover",
			act:  func(f *Facade) error { return f.Hover(Selector("#target"), Timeout(time.Second)) },
			want: locatorCall{op: "hover", timeout: 1000},
		},
		{
			name: "focus",
			act:  func(f *Facade) error { return f.Focus(Selector("#target")) },
			want: locatorCall{op: "focus", timeout: 30000},
		},
		{
			name: "press",
			act:  func(f *Facade) error { return f.Press(Selector("#target"), "Enter") },
			want: locatorCall{op: "press", timeout: 30000, arg: "Enter"},
		},
		{
			name: "scroll into view",
			act:  func(f *Facade) error { return f.ScrollIntoView(Selector("#target"), Timeout(time.Second)) },
			want: locatorCall{op: "scroll", timeout: 1000},
		},
		{
			name: "select by value",
			act:  func(f *Facade) error { return f.SelectByValue(Selector("#target"), "lamborghini") },
			want: locatorCall{op: "select", timeout: 30000, arg: playwright.SelectOptionValues{Values: &[]string{"lamborghini"}}},
		},
		{
			name: "select by label",
			act:  func(f *Facade) error { return f.SelectByLabel(Selector("#target"), "Lamborghini") },
			want: locatorCall{op: "select", timeout: 30000, arg: playwright.SelectOptionValues{Labels: &[]string{"Lamborghini"}}},
		},
		{
			name: "select by index",
			act:  func(f *Facade) error { return f.SelectByIndex(Selector("#target"), 2, Timeout(time.Second)) },
			want: locatorCall{op: "select", timeout: 1000, arg: playwright.SelectOptionValues{Indexes: &[]int{2}}},
		},
		{
			name: "upload",
			act:  func(f *Facade) error { return f.UploadFile(Selector("#target"), []string{"avatar.png"}) },
			want: locatorCall{op: "upload", timeout: 30000, arg: []string{"avatar.png"}},
		},
		{
			name: "drag and drop",
			act:  func(f *Facade) error { return f.DragAndDrop(Selector("#target"), Selector("#bin")) },
			want: locatorCall{op: "drag", timeout: 30000, arg: "#bin"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := newFakePage()
			loc := page.on("#target", &fakeLocator{name: "#target"})
			f, _ := newTestFacade(t, page)

			require.NoError(t, tt.act(f))

			assert.Equal(t, []locatorCall{tt.want}, loc.calls)
		})
	}
}

func TestCheckThenUncheck(t *testing.T) {
	page := newFakePage()
	page.on("#terms", &fakeLocator{})
	f, _ := newTestFacade(t, page)

	require.NoError(t, f.Check(Selector("#terms")))
	checked, err := f.IsChecked(Selector("#terms"))
	require.NoError(t, err)
	assert.True(t, checked)

	require.NoError(t, f.Uncheck(Selector("#terms")))
	checked, err = f.IsChecked(Selector("#terms"))
	require.NoError(t, err)
	assert.False(t, checked)
}
