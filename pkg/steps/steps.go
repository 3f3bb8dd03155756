package steps

import (
	"context"
	"errors"

	"github.com/cucumber/godog"
	"go.uber.org/zap"
)

func (s *Suite) userLoginAs(table *godog.Table) error {
	creds, err := ParseCredentials(table)
	if err != nil {
		return err
	}
	home, err := s.home()
	if err != nil {
		return err
	}
	register, err := s.register()
	if err != nil {
		return err
	}
	s.logger.Debug("logging in", zap.String("username", creds.Username))
	return LoginOrRegister(home, register, creds.Username, creds.Password)
}

func (s *Suite) userComesToPopularModel() error {
	home, err := s.home()
	if err != nil {
		return err
	}
	name, err := home.PopularModel()
	if err != nil {
		return err
	}
	if name == "" {
		return errors.New("popular model title has no model name")
	}
	if err := home.ClickPopularModel(); err != nil {
		return err
	}
	model, err := s.modelContent()
	if err != nil {
		return err
	}
	return model.VerifyNavigatedToModel(name)
}

func (s *Suite) userLeavesComment(ctx context.Context, comment string) (context.Context, error) {
	model, err := s.modelContent()
	if err != nil {
		return ctx, err
	}
	if err := model.AddComment(comment); err != nil {
		return ctx, err
	}
	worldFrom(ctx).comment = comment
	return ctx, nil
}

func (s *Suite) userVotes() error {
	model, err := s.modelContent()
	if err != nil {
		return err
	}
	return model.ClickVote()
}

func (s *Suite) userSeesVoteConfirmation() error {
	model, err := s.modelContent()
	if err != nil {
		return err
	}
	return model.VerifyCommentAdded()
}

func (s *Suite) userSeesCommentOnTop(ctx context.Context) error {
	model, err := s.modelContent()
	if err != nil {
		return err
	}
	return model.VerifyCommentOnTopOfReviewTable(worldFrom(ctx).comment)
}

func (s *Suite) userLogsOut() error {
	home, err := s.home()
	if err != nil {
		return err
	}
	return home.ClickLogout()
}

func (s *Suite) userSeesLoginForm() error {
	home, err := s.home()
	if err != nil {
		return err
	}
	return home.VerifyLoginFormDisplayed()
}
