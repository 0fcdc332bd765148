package ui

import (
	"errors"

	"github.com/boddenberg/luxe-client-go/internal/domain"
)

// feedback is the inline message area of a form: at most one field error,
// one general error and one success line.
type feedback struct {
	field    string
	fieldMsg string
	err      string
	success  string
}

func (f *feedback) clear() {
	*f = feedback{}
}

// fail records err. Validation errors attach to their field; everything
// else becomes the general error line.
func (f *feedback) fail(err error) {
	var verr *domain.ErrValidation
	if errors.As(err, &verr) {
		f.field, f.fieldMsg = verr.Field, verr.Message
		return
	}
	f.err = domain.DisplayMessage(err)
}

func (f feedback) forField(name string) string {
	if f.field == name {
		return f.fieldMsg
	}
	return ""
}

func (f feedback) render() string {
	switch {
	case f.err != "":
		return errorStyle.Render(f.err)
	case f.success != "":
		return successStyle.Render(f.success)
	}
	return ""
}
