package screens

import (
	"github.com/Eruoni/buggy.justestit/pkg/ui"
)

const registrationSuccess = "Registration is successful"

var (
	registerUsername        = ui.Selector("#username")
	registerFirstName       = ui.Selector("#firstName")
	registerLastName        = ui.Selector("#lastName")
	registerPassword        = ui.Selector("#password")
	registerConfirmPassword = ui.Selector("#confirmPassword")
	registerButton          = ui.Selector(`//button[text()='Register']`)
	registerCancel          = ui.Selector(`//a[text()='Cancel']`)
)

// Register is the sign-up form.
type Register struct {
	f *ui.Facade
}

func NewRegister(f *ui.Facade) *Register {
	return &Register{f: f}
}

// Register fills and submits the form, then expects the success banner.
func (r *Register) Register(username, firstName, lastName, password string) error {
	fields := []struct {
		ref   ui.Ref
		value string
	}{
		{registerUsername, username},
		{registerFirstName, firstName},
		{registerLastName, lastName},
		{registerPassword, password},
		{registerConfirmPassword, password},
	}
	for _, fld := range fields {
		if err := r.f.Fill(fld.ref, fld.value); err != nil {
			return err
		}
	}
	if err := r.f.Click(registerButton); err != nil {
		return err
	}
	return r.VerifyRegisterSuccessful()
}

func (r *Register) VerifyRegisterSuccessful() error {
	return r.f.ExpectVisible(ui.ByText(registrationSuccess))
}

func (r *Register) Cancel() error {
	return r.f.Click(registerCancel)
}
