package screens

import (
	"github.com/Eruoni/buggy.justestit/pkg/ui"
)

const voteConfirmation = "Thank you for your vote!"

var (
	modelHeader      = ui.Selector(`(//div[@class = 'row'])[3]/h3`)
	modelComment     = ui.Selector(`//textarea[@id="comment"]`)
	modelVoteButton  = ui.Selector(`//button[text()='Vote!']`)
	modelLatestReply = ui.Selector(`(//table//tr)[1]/td[last()]`)
)

// ModelContent is a car model's detail page with the vote form and the
// review table.
type ModelContent struct {
	f *ui.Facade
}

func NewModelContent(f *ui.Facade) *ModelContent {
	return &ModelContent{f: f}
}

// VerifyNavigatedToModel expects the page header to read name.
func (m *ModelContent) VerifyNavigatedToModel(name string) error {
	return m.f.ExpectText(modelHeader, name)
}

func (m *ModelContent) AddComment(comment string) error {
	return m.f.Fill(modelComment, comment)
}

func (m *ModelContent) ClickVote() error {
	return m.f.Click(modelVoteButton)
}

func (m *ModelContent) VerifyCommentAdded() error {
	return m.f.ExpectVisible(ui.ByText(voteConfirmation))
}

// VerifyCommentOnTopOfReviewTable expects the newest review row to carry
// comment in its last cell.
func (m *ModelContent) VerifyCommentOnTopOfReviewTable(comment string) error {
	return m.f.ExpectText(modelLatestReply, comment)
}
