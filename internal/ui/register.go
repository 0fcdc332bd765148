package ui

import (
	"strings"

	"github.com/boddenberg/luxe-client-go/internal/app"
	"github.com/boddenberg/luxe-client-go/internal/domain"

	tea "github.com/charmbracelet/bubbletea"
)

type registerView struct {
	lifecycle
	deps    Deps
	form    form
	loading bool
	fb      feedback
}

func newRegisterView(deps Deps) *registerView {
	return &registerView{
		lifecycle: newLifecycle(),
		deps:      deps,
		form: newForm(
			newField("name", "Name", "", false),
			newField("email", "Email", "you@example.com", false),
			newField("password", "Password", "", true),
		),
	}
}

func (v *registerView) Init() tea.Cmd { return nil }

func (v *registerView) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if v.form.focusKey(msg) {
			return v, nil
		}
		if msg.Type == tea.KeyEnter {
			return v, v.submit()
		}
	case authResultMsg:
		v.loading = false
		if msg.err != nil {
			if !domain.IsCanceled(msg.err) {
				v.fb.fail(msg.err)
			}
			return v, nil
		}
		return v, navigate(v.id, app.Transition{Event: app.EventLoggedIn, User: msg.user})
	}
	return v, v.form.update(msg)
}

// submit registers and then signs in with the same credentials.
func (v *registerView) submit() tea.Cmd {
	if v.loading {
		return nil
	}
	v.fb.clear()

	req := domain.RegisterRequest{
		Name:     strings.TrimSpace(v.form.value("name")),
		Email:    strings.TrimSpace(v.form.value("email")),
		Password: v.form.value("password"),
	}
	if err := req.Validate(); err != nil {
		v.fb.fail(err)
		return nil
	}

	v.loading = true
	ctx, id, auth := v.ctx, v.id, v.deps.Auth
	return func() tea.Msg {
		user, err := auth.Register(ctx, req.Name, req.Email, req.Password)
		return authResultMsg{from: from{id}, user: user, err: err}
	}
}

func (v *registerView) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Register"))
	b.WriteString("\n\n")
	b.WriteString(v.form.view(v.fb))
	b.WriteString("\n")
	if v.loading {
		b.WriteString(mutedStyle.Render("Creating your account…"))
		b.WriteString("\n")
	}
	if line := v.fb.render(); line != "" {
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString(mutedStyle.Render("enter: register • tab: next field • ctrl+l: login"))
	return b.String()
}
