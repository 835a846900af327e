package tui

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/autolist/autolist/internal/catalog"
	"github.com/autolist/autolist/internal/config"
	autolisterrors "github.com/autolist/autolist/internal/errors"
	"github.com/autolist/autolist/internal/listing"
	"github.com/autolist/autolist/internal/logging"
	"github.com/autolist/autolist/internal/session"
	"github.com/autolist/autolist/internal/tui/components"
	"github.com/autolist/autolist/internal/tui/styles"
)

// Options wires the create-listing screen to its collaborators.
type Options struct {
	// Source provides the reference data. Required.
	Source catalog.Source
	// SourceName is shown in the header.
	SourceName string
	// Loader fetches the reference data (default: catalog.NewLoader(0)).
	Loader *catalog.Loader
	// Submitter receives valid drafts (default: listing.LogSubmitter).
	Submitter listing.Submitter
	// RequireLogin opens the login modal instead of submitting while
	// nobody is signed in.
	RequireLogin bool

	// Auth signs users in. Nil disables email/password sign-in.
	Auth session.Authenticator
	// Store holds the signed-in session (default: a new store).
	Store *session.Store
	// Modal is the shared login modal state (default: a new state).
	Modal     *session.ModalState
	Providers []session.Provider
	SignupURL string

	Form   config.FormConfig
	Logger *logging.Logger
}

// Model is the Bubble Tea model of the create-listing screen.
type Model struct {
	ctx  context.Context
	opts Options

	// Domain state
	form    *listing.Form
	cascade *listing.Cascade
	schema  *listing.Schema
	catalog *catalog.Catalog

	// Components
	header  *components.Header
	banner  *components.Banner
	spinner *components.Spinner
	fields  *components.Form
	widgets map[listing.Field]components.FormField
	submit  *components.Button
	login   *components.LoginModal
	help    *components.HelpBar
	keys    components.KeyMap

	// Window dimensions
	width  int
	height int

	loading    bool
	submitting bool
	quitting   bool
	created    []listing.Draft
}

// New creates the create-listing model. ctx bounds every request the
// screen makes.
func New(ctx context.Context, opts Options) *Model {
	if opts.Logger == nil {
		opts.Logger = logging.Global()
	}
	if opts.Loader == nil {
		opts.Loader = catalog.NewLoader(0)
	}
	if opts.Submitter == nil {
		opts.Submitter = listing.LogSubmitter{Logger: opts.Logger}
	}
	if opts.Store == nil {
		opts.Store = session.NewStore()
	}
	if opts.Modal == nil {
		opts.Modal = session.NewModalState()
	}

	schema := listing.DefaultSchema()
	keys := components.DefaultKeyMap()
	social := make([]components.SocialButton, 0, len(opts.Providers))
	for _, p := range opts.Providers {
		social = append(social, components.SocialButton{Name: p.Name, Label: p.Label})
	}

	m := &Model{
		ctx:     ctx,
		opts:    opts,
		form:    listing.NewForm(schema),
		schema:  schema,
		catalog: &catalog.Catalog{},
		header:  components.NewHeader(),
		banner:  components.NewBanner(),
		spinner: components.NewSpinner(),
		login:   components.NewLoginModal(social),
		help:    components.NewHelpBar(keys),
		keys:    keys,
		loading: true,
	}
	m.cascade = listing.NewCascade(m.form, m.catalog)
	m.buildFields()

	m.header.SetSource(opts.SourceName)
	if sess := opts.Store.Current(); sess != nil {
		m.header.SetUser(sess.DisplayName())
	}
	return m
}

// Form returns the form state container behind the screen.
func (m *Model) Form() *listing.Form {
	return m.form
}

// Modal returns the shared login modal state.
func (m *Model) Modal() *session.ModalState {
	return m.opts.Modal
}

// Created returns the drafts submitted successfully so far.
func (m *Model) Created() []listing.Draft {
	return m.created
}

// Init starts the reference-data fetch.
func (m *Model) Init() tea.Cmd {
	m.fields.SetDisabled(true)
	return tea.Batch(
		m.spinner.Start("Loading reference data..."),
		m.loadCatalog(),
	)
}

func (m *Model) loadCatalog() tea.Cmd {
	ctx, loader, src := m.ctx, m.opts.Loader.WithLogger(m.opts.Logger), m.opts.Source
	return func() tea.Msg {
		c, report := loader.Load(ctx, src)
		return CatalogLoadedMsg{Catalog: c, Report: report}
	}
}

// Update handles messages and updates the model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// The login modal captures input while visible.
	if keyMsg, ok := msg.(tea.KeyMsg); ok && m.login.IsVisible() {
		if keyMsg.Type == tea.KeyCtrlC {
			return m.quit()
		}
		return m, m.login.Update(msg)
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.setSize(msg.Width, msg.Height)
		return m, nil

	case spinner.TickMsg:
		_, cmd := m.spinner.Update(msg)
		return m, cmd

	case CatalogLoadedMsg:
		return m.handleCatalogLoaded(msg)

	case components.FieldChangedMsg:
		m.handleFieldChanged(msg)
		return m, nil

	case components.FieldBlurredMsg:
		m.form.Touch(listing.Field(msg.ID))
		m.syncErrors()
		return m, nil

	case components.FormSubmittedMsg:
		return m.startSubmit()

	case components.FormCanceledMsg:
		m.banner.Clear()
		return m, nil

	case SubmitResultMsg:
		return m.handleSubmitResult(msg)

	case components.LoginSubmitMsg:
		return m.handleLoginSubmit(msg)

	case LoginResultMsg:
		return m.handleLoginResult(msg)

	case components.SocialLoginMsg:
		return m.handleSocialLogin(msg)

	case components.SignupMsg:
		m.opts.Modal.Close()
		m.banner.SetSuccess("Create an account at " + m.opts.SignupURL)
		return m, m.syncModal()

	case components.LoginClosedMsg:
		m.opts.Modal.Close()
		return m, m.syncModal()

	case ModalChangedMsg:
		return m, m.syncModal()

	case QuitMsg:
		return m.quit()
	}

	return m, nil
}

func (m *Model) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	return m, tea.Quit
}

// handleKeyPress handles global bindings and forwards the rest to the form.
func (m *Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()
	case key.Matches(msg, m.keys.Help):
		m.help.Toggle()
		return m, nil
	case key.Matches(msg, m.keys.Login):
		m.opts.Modal.Open()
		return m, m.syncModal()
	case key.Matches(msg, m.keys.Submit):
		return m.startSubmit()
	}

	if m.loading {
		return m, nil
	}
	_, cmd := m.fields.Update(msg)
	return m, cmd
}

// syncModal brings the login overlay in line with the shared modal state.
func (m *Model) syncModal() tea.Cmd {
	open := m.opts.Modal.IsOpen()
	switch {
	case open && !m.login.IsVisible():
		return m.login.Show()
	case !open && m.login.IsVisible():
		m.login.Hide()
	}
	return nil
}

func (m *Model) handleCatalogLoaded(msg CatalogLoadedMsg) (tea.Model, tea.Cmd) {
	m.loading = false
	m.spinner.Stop()

	c := msg.Catalog
	if c == nil {
		c = &catalog.Catalog{}
	}
	m.catalog = c
	m.cascade.SetCatalog(c)
	if m.opts.Form.EnforceModelBrand {
		m.form.SetSchema(m.schema.WithCatalog(c))
	}
	m.applyOptions()

	if !msg.Report.OK() {
		m.banner.SetWarning(msg.Report.Summary())
	}
	m.fields.SetDisabled(false)
	return m, m.fields.FocusField(m.fields.FocusIndex())
}

func (m *Model) handleFieldChanged(msg components.FieldChangedMsg) {
	field := listing.Field(msg.ID)
	switch field {
	case listing.FieldBrand:
		m.cascade.SelectBrand(msg.Value)
		m.modelBox().SetValue("")
		m.modelBox().SetOptions(catalog.ModelOptions(m.cascade.ModelOptions()))
	case listing.FieldModel:
		id, err := strconv.ParseInt(msg.Value, 10, 64)
		if err != nil || msg.Value == "" {
			m.form.SetValue(listing.FieldModel, "")
			break
		}
		if err := m.cascade.SelectModel(id); err != nil {
			m.opts.Logger.Warn("model outside selected brand", "model", id, "brand", m.cascade.Brand())
			m.modelBox().SetValue("")
		}
	default:
		m.form.SetValue(field, msg.Value)
	}
	m.syncErrors()
}

// syncErrors copies the form's field errors onto the widgets.
func (m *Model) syncErrors() {
	errs := m.form.Errors()
	out := make(map[string]string, len(errs))
	for f, msg := range errs {
		out[string(f)] = msg
	}
	m.fields.SetErrors(out)
}

func (m *Model) startSubmit() (tea.Model, tea.Cmd) {
	if m.loading || m.submitting {
		return m, nil
	}
	if m.opts.RequireLogin && m.opts.Store.Current() == nil {
		m.banner.SetWarning("Sign in to create a listing.")
		m.opts.Modal.Open()
		return m, m.syncModal()
	}

	m.submitting = true
	m.banner.Clear()
	m.submit.SetBusy(true)
	m.fields.SetDisabled(true)

	ctx, form, submitter := m.ctx, m.form, m.opts.Submitter
	if sess := m.opts.Store.Current(); sess != nil {
		ctx = logging.WithUserID(ctx, sess.UserID)
	}
	return m, tea.Batch(
		m.spinner.Start("Creating listing..."),
		func() tea.Msg {
			draft, err := form.Submit(ctx, submitter)
			return SubmitResultMsg{Draft: draft, Err: err}
		},
	)
}

func (m *Model) handleSubmitResult(msg SubmitResultMsg) (tea.Model, tea.Cmd) {
	m.submitting = false
	m.spinner.Stop()
	m.submit.SetBusy(false)
	m.fields.SetDisabled(false)

	switch {
	case msg.Err == nil:
		m.created = append(m.created, msg.Draft)
		m.opts.Logger.Info("listing created", "title", msg.Draft.Title, "form_id", m.form.ID())
		m.clearFields()
		m.banner.SetSuccess(fmt.Sprintf("Listing %q created.", msg.Draft.Title))
		return m, m.fields.FocusField(0)
	case errors.Is(msg.Err, listing.ErrInvalid):
		m.syncErrors()
		m.banner.SetError("Fix the highlighted fields.")
		errs := m.form.Errors()
		if fields := errs.SortedFields(); len(fields) > 0 {
			return m, m.fields.FocusFieldByID(string(fields[0]))
		}
		return m, nil
	default:
		m.opts.Logger.Error("listing submit failed", "error", msg.Err)
		m.banner.SetError(userMessage(msg.Err))
		return m, nil
	}
}

func (m *Model) handleLoginSubmit(msg components.LoginSubmitMsg) (tea.Model, tea.Cmd) {
	creds := session.Credentials{Email: msg.Email, Password: msg.Password}
	errs := creds.Validate()
	m.login.SetFieldErrors(errs)
	if errs != nil {
		return m, nil
	}
	if m.opts.Auth == nil {
		m.login.SetError("Email sign-in is not configured.")
		return m, nil
	}

	m.login.SetError("")
	m.login.SetBusy(true)
	ctx, auth := m.ctx, m.opts.Auth
	return m, func() tea.Msg {
		sess, err := auth.Login(ctx, creds)
		return LoginResultMsg{Session: sess, Err: err}
	}
}

func (m *Model) handleLoginResult(msg LoginResultMsg) (tea.Model, tea.Cmd) {
	m.login.SetBusy(false)
	if msg.Err != nil {
		m.opts.Logger.Warn("sign in failed", "error", msg.Err)
		m.login.SetError(userMessage(msg.Err))
		return m, nil
	}

	m.opts.Store.Set(msg.Session)
	m.header.SetUser(msg.Session.DisplayName())
	m.opts.Modal.Close()
	m.banner.SetSuccess("Signed in as " + msg.Session.DisplayName() + ".")
	m.opts.Logger.Info("signed in", "user_id", msg.Session.UserID)
	return m, m.syncModal()
}

func (m *Model) handleSocialLogin(msg components.SocialLoginMsg) (tea.Model, tea.Cmd) {
	p, err := session.FindProvider(m.opts.Providers, msg.Provider)
	if err != nil {
		m.login.SetError(userMessage(err))
		return m, nil
	}
	u, err := p.AuthorizeURL(m.form.ID())
	if err != nil {
		m.login.SetError(userMessage(err))
		return m, nil
	}
	m.opts.Modal.Close()
	m.banner.SetSuccess("Continue in your browser: " + u)
	return m, m.syncModal()
}

// userMessage returns the message of an application error, or the error
// text for anything else.
func userMessage(err error) string {
	var appErr *autolisterrors.AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return err.Error()
}

func (m *Model) setSize(width, height int) {
	m.width = width
	m.height = height
	m.header.SetWidth(width)
	m.banner.SetWidth(width)
	m.help.SetWidth(width)
	m.login.SetSize(min(60, width))
	m.fields.SetWidth(width)
	for _, w := range m.widgets {
		switch w := w.(type) {
		case *components.TextInput:
			w.SetWidth(min(width, 72))
		case *components.TextArea:
			w.SetWidth(min(width, 76))
		}
	}
	// header, banner, spinner, help and padding
	m.fields.SetHeight(height - 8)
}

// View renders the screen.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.header.View())
	b.WriteString("\n")
	if m.banner.Visible() {
		b.WriteString(m.banner.View())
		b.WriteString("\n")
	}
	if m.spinner.Active() {
		b.WriteString(m.spinner.View())
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.fields.View())
	b.WriteString("\n\n")
	b.WriteString(m.help.View())

	view := b.String()
	if m.login.IsVisible() {
		view = m.renderOverlay(view, m.login.View())
	}
	return view
}

// renderOverlay centers overlay on the screen in place of the base view.
func (m *Model) renderOverlay(base, overlay string) string {
	if overlay == "" {
		return base
	}
	if m.width == 0 || m.height == 0 {
		return base + "\n" + overlay
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, overlay,
		lipgloss.WithWhitespaceForeground(styles.BorderColor))
}
