package ui

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRef_Strings(t *testing.T) {
	tests := []struct {
		ref  Ref
		want string
	}{
		{Selector("#username"), "#username"},
		{Nth(Selector("tr"), 2), "tr >> nth=2"},
		{First(Selector("tr")), "tr >> first"},
		{Last(Selector("tr")), "tr >> last"},
		{Parent(Selector("h2")), "h2 >> parent"},
		{Children(Selector("table"), "td"), "table >> td"},
		{Sibling(Selector("h2"), "h3"), "h2 >> sibling h3"},
		{FilterByText(Selector("a"), "Logout"), `a >> has-text="Logout"`},
		{FilterByPattern(Selector("h3"), regexp.MustCompile(`\d+ votes`)), `h3 >> has-text=/\d+ votes/`},
		{ByText("Login"), "text=Login"},
		{ByExactText("Login"), `text="Login"`},
		{ByRole("button", "Vote!"), `role=button[name="Vote!"]`},
		{ByRole("table", ""), "role=table"},
		{ByLabel("Login"), `label="Login"`},
		{ByPlaceholder("Login"), `[placeholder="Login"]`},
		{ByTestID("vote"), `[data-testid="vote"]`},
		{ByTitle("Home"), `[title="Home"]`},
		{ByAltText("Diablo"), `[alt="Diablo"]`},
		{WithText("button", "Register"), `button >> has-text="Register"`},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.ref.String())
		})
	}
}

func TestRef_DerivedIsLazyAndIdempotent(t *testing.T) {
	page := newFakePage()
	rows := page.on("tr", &fakeLocator{})
	ref := Nth(Selector("tr"), 1)

	assert.Empty(t, page.resolved, "building a ref must not touch the page")

	a := ref.Resolve(page)
	b := ref.Resolve(page)

	assert.Equal(t, []string{"tr", "tr"}, page.resolved)
	assert.Equal(t, []int{1, 1}, rows.nthCalls)
	assert.Equal(t, a, b)
}

func TestHandle_ResolvesToWrappedLocator(t *testing.T) {
	page := newFakePage()
	loc := &fakeLocator{name: "row"}

	ref := Handle(loc, "review row")

	assert.Same(t, loc, ref.Resolve(page))
	assert.Equal(t, "review row", ref.String())
	assert.Empty(t, page.resolved)
}

func TestSibling_ResolvesFollowingSiblingsMatchingSub(t *testing.T) {
	page := newFakePage()
	heading := page.on("h2", &fakeLocator{name: "h2"})

	got := Sibling(Selector("h2"), "div").Resolve(page)

	assert.Equal(t, []any{"xpath=following-sibling::*"}, heading.subs)
	assert.Equal(t, []string{"h2", "div"}, page.resolved, "sub is resolved on the page, not under h2")
	assert.Equal(t, "h2 >> xpath=following-sibling::* & div", got.(*fakeLocator).name)
}

func TestParentAndChildren_ResolveUnderBase(t *testing.T) {
	page := newFakePage()
	table := page.on("table", &fakeLocator{name: "table"})

	parent := Parent(Selector("table")).Resolve(page)
	cells := Children(Selector("table"), "td").Resolve(page)

	assert.Equal(t, []any{"xpath=..", "td"}, table.subs)
	assert.Equal(t, "table >> xpath=..", parent.(*fakeLocator).name)
	assert.Equal(t, "table >> td", cells.(*fakeLocator).name)
}
