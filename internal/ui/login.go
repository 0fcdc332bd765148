package ui

import (
	"strings"

	"github.com/boddenberg/luxe-client-go/internal/app"
	"github.com/boddenberg/luxe-client-go/internal/domain"

	tea "github.com/charmbracelet/bubbletea"
)

// authResultMsg is the outcome of a login or register+login chain.
type authResultMsg struct {
	from
	user *domain.User
	err  error
}

type loginView struct {
	lifecycle
	deps    Deps
	form    form
	loading bool
	fb      feedback
}

func newLoginView(deps Deps) *loginView {
	return &loginView{
		lifecycle: newLifecycle(),
		deps:      deps,
		form: newForm(
			newField("email", "Email", "you@example.com", false),
			newField("password", "Password", "", true),
		),
	}
}

func (v *loginView) Init() tea.Cmd { return nil }

func (v *loginView) Update(msg tea.Msg) (View, tea.Cmd) {
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

func (v *loginView) submit() tea.Cmd {
	if v.loading {
		return nil
	}
	v.fb.clear()

	req := domain.LoginRequest{
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
		user, err := auth.Login(ctx, req.Email, req.Password)
		return authResultMsg{from: from{id}, user: user, err: err}
	}
}

func (v *loginView) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Login"))
	b.WriteString("\n\n")
	b.WriteString(v.form.view(v.fb))
	b.WriteString("\n")
	if v.loading {
		b.WriteString(mutedStyle.Render("Signing in…"))
		b.WriteString("\n")
	}
	if line := v.fb.render(); line != "" {
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString(mutedStyle.Render("enter: sign in • tab: next field • ctrl+r: register"))
	return b.String()
}
