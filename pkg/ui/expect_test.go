package ui

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStateQueries_WaitForAttachmentFirst(t *testing.T) {
	tests := []struct {
		name   string
		loc    *fakeLocator
		query  func(f *Facade) (any, error)
		want   any
		wantOp string
	}{
		{
			name:   "enabled",
			loc:    &fakeLocator{enabled: []bool{true}},
			query:  func(f *Facade) (any, error) { return f.IsEnabled(Selector("#field"), Timeout(time.Second)) },
			want:   true,
			wantOp: "is enabled",
		},
		{
			name:   "disabled",
			loc:    &fakeLocator{enabled: []bool{true}},
			query:  func(f *Facade) (any, error) { return f.IsDisabled(Selector("#field"), Timeout(time.Second)) },
			want:   false,
			wantOp: "is enabled",
		},
		{
			name:   "checked",
			loc:    &fakeLocator{checked: true},
			query:  func(f *Facade) (any, error) { return f.IsChecked(Selector("#field"), Timeout(time.Second)) },
			want:   true,
			wantOp: "is checked",
		},
		{
			name:   "input value",
			loc:    &fakeLocator{value: "Automation review"},
			query:  func(f *Facade) (any, error) { return f.InputValue(Selector("#field"), Timeout(time.Second)) },
			want:   "Automation review",
			wantOp: "input value",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := newFakePage()
			loc := page.on("#field", tt.loc)
			f, _ := newTestFacade(t, page)

			got, err := tt.query(f)

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, []string{"attached"}, loc.waitStates)
			assert.Equal(t, []locatorCall{{op: tt.wantOp, timeout: 1000}}, loc.calls)
		})
	}
}

func TestStateQueries_DetachedElementTimesOut(t *testing.T) {
	page := newFakePage()
	loc := page.on("#field", &fakeLocator{waitErr: timeoutErr("attached")})
	f, _ := newTestFacade(t, page)

	_, err := f.IsEnabled(Selector("#field"), Timeout(time.Second))
	require.ErrorIs(t, err, ErrTimeout)
	_, err = f.IsChecked(Selector("#field"), Timeout(time.Second))
	require.ErrorIs(t, err, ErrTimeout)
	_, err = f.InputValue(Selector("#field"), Timeout(time.Second))
	require.ErrorIs(t, err, ErrTimeout)

	assert.Equal(t, []string{"attached", "attached", "attached"}, loc.waitStates)
	assert.Empty(t, loc.calls, "nothing is read from a detached element")
}

func TestWaits_RecordState(t *testing.T) {
	page := newFakePage()
	loc := page.on("#spinner", &fakeLocator{})
	f, _ := newTestFacade(t, page)

	require.NoError(t, f.WaitForVisible(Selector("#spinner")))
	require.NoError(t, f.WaitForHidden(Selector("#spinner")))
	require.NoError(t, f.WaitForAttached(Selector("#spinner")))

	assert.Equal(t, []string{"visible", "hidden", "attached"}, loc.waitStates)
}

func TestStateAssertions(t *testing.T) {
	tests := []struct {
		name         string
		loc          *fakeLocator
		expect       func(f *Facade) error
		wantObserved string // empty when the assertion passes
	}{
		{
			name:   "hidden passes once element goes away",
			loc:    &fakeLocator{visible: []bool{true, false}},
			expect: func(f *Facade) error { return f.ExpectHidden(Selector("#target"), Timeout(time.Second)) },
		},
		{
			name:         "hidden times out while visible",
			loc:          &fakeLocator{visible: []bool{true}},
			expect:       func(f *Facade) error { return f.ExpectHidden(Selector("#target"), Timeout(time.Second)) },
			wantObserved: "visible",
		},
		{
			name:   "enabled passes once enabled",
			loc:    &fakeLocator{count: 1, enabled: []bool{false, true}},
			expect: func(f *Facade) error { return f.ExpectEnabled(Selector("#target"), Timeout(time.Second)) },
		},
		{
			name:         "enabled needs an element",
			loc:          &fakeLocator{enabled: []bool{true}},
			expect:       func(f *Facade) error { return f.ExpectEnabled(Selector("#target"), Timeout(time.Second)) },
			wantObserved: "<no element>",
		},
		{
			name:   "disabled passes",
			loc:    &fakeLocator{count: 1, enabled: []bool{false}},
			expect: func(f *Facade) error { return f.ExpectDisabled(Selector("#target"), Timeout(time.Second)) },
		},
		{
			name:         "disabled times out while enabled",
			loc:          &fakeLocator{count: 1, enabled: []bool{true}},
			expect:       func(f *Facade) error { return f.ExpectDisabled(Selector("#target"), Timeout(time.Second)) },
			wantObserved: "enabled",
		},
		{
			name:   "value passes",
			loc:    &fakeLocator{count: 1, value: "Automation review"},
			expect: func(f *Facade) error { return f.ExpectValue(Selector("#target"), "Automation review", Timeout(time.Second)) },
		},
		{
			name:         "value reports what was read",
			loc:          &fakeLocator{count: 1, value: "draft"},
			expect:       func(f *Facade) error { return f.ExpectValue(Selector("#target"), "Automation review", Timeout(time.Second)) },
			wantObserved: "draft",
		},
		{
			name:   "attribute passes",
			loc:    &fakeLocator{count: 1, attrs: map[string]string{"href": "/model/1"}},
			expect: func(f *Facade) error { return f.ExpectAttribute(Selector("#target"), "href", "/model/1", Timeout(time.Second)) },
		},
		{
			name:         "attribute reports what was read",
			loc:          &fakeLocator{count: 1, attrs: map[string]string{"href": "/model/2"}},
			expect:       func(f *Facade) error { return f.ExpectAttribute(Selector("#target"), "href", "/model/1", Timeout(time.Second)) },
			wantObserved: "/model/2",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := newFakePage()
			page.on("#target", tt.loc)
			f, clock := newTestFacade(t, page)

			err := tt.expect(f)

			if tt.wantObserved == "" {
				assert.NoError(t, err)
				return
			}
			var ae *AssertionTimeoutError
			require.ErrorAs(t, err, &ae)
			assert.Equal(t, tt.wantObserved, ae.Observed)
			assert.Equal(t, time.Second, ae.Timeout)
			slept, _ := clock.Slept()
			assert.Equal(t, time.Second, slept)
		})
	}
}

func TestExpectEnabled_ReadsWithinPollBudget(t *testing.T) {
	page := newFakePage()
	loc := page.on("#vote", &fakeLocator{count: 1, enabled: []bool{false, true}})
	f, _ := newTestFacade(t, page)

	require.NoError(t, f.ExpectEnabled(Selector("#vote")))

	budget := float64(DefaultPollInterval.Milliseconds())
	assert.Equal(t, []locatorCall{
		{op: "is enabled", timeout: budget},
		{op: "is enabled", timeout: budget},
	}, loc.calls)
}

func TestExpectAttribute_AsksForNamedAttribute(t *testing.T) {
	page := newFakePage()
	loc := page.on("a.model", &fakeLocator{count: 1, attrs: map[string]string{"href": "/model/1"}})
	f, _ := newTestFacade(t, page)

	require.NoError(t, f.ExpectAttribute(Selector("a.model"), "href", "/model/1"))

	require.Len(t, loc.calls, 1)
	assert.Equal(t, "href", loc.calls[0].arg)
}
