package tui

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/autolist/autolist/internal/catalog"
	"github.com/autolist/autolist/internal/config"
	"github.com/autolist/autolist/internal/listing"
	"github.com/autolist/autolist/internal/logging"
	"github.com/autolist/autolist/internal/session"
	"github.com/autolist/autolist/internal/tui/components"
)

type recordingSubmitter struct {
	mu     sync.Mutex
	drafts []listing.Draft
	err    error
}

func (s *recordingSubmitter) Submit(_ context.Context, d listing.Draft) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.drafts = append(s.drafts, d)
	return nil
}

type brandlessSource struct {
	catalog.StaticSource
}

func (brandlessSource) Brands(context.Context) ([]catalog.Brand, error) {
	return nil, errors.New("connection refused")
}

type fakeAuth struct {
	sess *session.Session
	err  error
}

func (a fakeAuth) Login(context.Context, session.Credentials) (*session.Session, error) {
	return a.sess, a.err
}

func newTestModel(t *testing.T, opts Options) *Model {
	t.Helper()
	if opts.Source == nil {
		opts.Source = catalog.StaticSource{Catalog: catalog.Demo()}
	}
	opts.Logger = logging.NewNoop()
	opts.Form = config.FormConfig{EnforceModelBrand: true, Currency: "€", DistanceUnit: "km", PowerUnit: "Hp"}
	return New(context.Background(), opts)
}

// loaded returns a model whose reference data has been delivered.
func loaded(t *testing.T, opts Options) *Model {
	t.Helper()
	m := newTestModel(t, opts)
	m.Init()
	m.Update(m.loadCatalog()())
	return m
}

// send feeds msg to the model and then every message its commands
// produce, skipping spinner ticks.
func send(m *Model, msg tea.Msg) {
	queue := []tea.Msg{msg}
	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]
		_, cmd := m.Update(next)
		queue = append(queue, runCmd(cmd)...)
	}
}

func runCmd(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	switch msg := msg.(type) {
	case tea.BatchMsg:
		var out []tea.Msg
		for _, c := range msg {
			out = append(out, runCmd(c)...)
		}
		return out
	case nil, tea.QuitMsg:
		return nil
	}
	if isNoise(msg) {
		return nil
	}
	return []tea.Msg{msg}
}

// isNoise filters animation messages that would loop forever.
func isNoise(msg tea.Msg) bool {
	switch msg.(type) {
	case components.FieldChangedMsg, components.FieldBlurredMsg, components.FormSubmittedMsg,
		components.FormCanceledMsg, components.LoginSubmitMsg, components.LoginClosedMsg,
		components.SocialLoginMsg, components.SignupMsg,
		CatalogLoadedMsg, SubmitResultMsg, LoginResultMsg, ModalChangedMsg:
		return false
	}
	return true
}

func change(f listing.Field, v string) components.FieldChangedMsg {
	return components.FieldChangedMsg{ID: string(f), Value: v}
}

func fillValid(m *Model) {
	values := listing.Values{
		listing.FieldTitle:          "Reliable family car",
		listing.FieldBrand:          "toyota",
		listing.FieldModel:          "1",
		listing.FieldMileage:        "120000",
		listing.FieldPrice:          "8999.50",
		listing.FieldPower:          "110",
		listing.FieldPreviousOwners: "2",
		listing.FieldDoorCount:      "5",
		listing.FieldSeatCount:      "5",
		listing.FieldCarType:        "2",
		listing.FieldCondition:      "2",
		listing.FieldTransmission:   "1",
		listing.FieldFuelType:       "1",
		listing.FieldColor:          "3",
	}
	for _, f := range listing.Fields() {
		if v, ok := values[f]; ok {
			send(m, change(f, v))
		}
	}
}

func TestNew(t *testing.T) {
	m := newTestModel(t, Options{})

	if !m.loading {
		t.Error("Model should start loading")
	}
	if got, want := len(m.fields.Fields()), len(listing.Fields())+1; got != want {
		t.Errorf("Expected %d widgets, got %d", want, got)
	}
	if m.Modal() == nil || m.Form() == nil {
		t.Error("Model should have modal state and a form")
	}
}

func TestInitReturnsCommand(t *testing.T) {
	m := newTestModel(t, Options{})
	if m.Init() == nil {
		t.Error("Init should start loading")
	}
	if !m.fields.Disabled() {
		t.Error("Fields should be locked while loading")
	}
}

func TestCatalogLoadedFillsOptions(t *testing.T) {
	m := loaded(t, Options{})

	if m.loading || m.spinner.Active() {
		t.Error("Loading should be finished")
	}
	if m.fields.Disabled() {
		t.Error("Fields should be unlocked")
	}
	brand := m.widgets[listing.FieldBrand].(*components.ComboBox)
	if len(brand.Options()) != 3 {
		t.Errorf("Expected 3 brands, got %d", len(brand.Options()))
	}
	if !m.modelBox().Disabled() {
		t.Error("Model picker should be disabled until a brand is chosen")
	}
	color := m.widgets[listing.FieldColor].(*components.RadioGroup)
	if len(color.Options()) != 5 || color.Options()[0].Swatch == "" {
		t.Error("Colors should carry swatches")
	}
	if m.banner.Visible() {
		t.Errorf("No banner expected, got %q", m.banner.Message())
	}
}

func TestCatalogFailureShowsWarning(t *testing.T) {
	m := loaded(t, Options{Source: brandlessSource{catalog.StaticSource{Catalog: catalog.Demo()}}})

	if m.banner.Kind() != components.BannerWarning {
		t.Errorf("Expected a warning banner, got kind %d", m.banner.Kind())
	}
	if !strings.Contains(m.banner.Message(), "brands") {
		t.Errorf("Warning should name the failed list, got %q", m.banner.Message())
	}
	brand := m.widgets[listing.FieldBrand].(*components.ComboBox)
	if !brand.Disabled() {
		t.Error("Brand picker should be disabled without options")
	}
	carType := m.widgets[listing.FieldCarType].(*components.Select)
	if len(carType.Options()) == 0 {
		t.Error("Other lists should still load")
	}
}

func TestBrandSwitchResetsModel(t *testing.T) {
	m := loaded(t, Options{})

	send(m, change(listing.FieldBrand, "toyota"))
	labels := func() []string {
		var out []string
		for _, o := range m.modelBox().Options() {
			out = append(out, o.Label)
		}
		return out
	}
	if got := strings.Join(labels(), ","); got != "Corolla,Camry,RAV4" {
		t.Fatalf("Expected Toyota models, got %s", got)
	}

	send(m, change(listing.FieldModel, "2"))
	if m.form.Value(listing.FieldModel) != "2" {
		t.Fatalf("Model should be set, got %q", m.form.Value(listing.FieldModel))
	}

	send(m, change(listing.FieldBrand, "honda"))
	if m.form.Value(listing.FieldModel) != "" || m.modelBox().Value() != "" {
		t.Error("Changing brand should clear the model")
	}
	if got := strings.Join(labels(), ","); got != "Civic,Accord" {
		t.Errorf("Expected Honda models, got %s", got)
	}
}

func TestReselectingBrandClearsModel(t *testing.T) {
	m := loaded(t, Options{})
	focus := func(f listing.Field) {
		for _, msg := range runCmd(m.fields.FocusFieldByID(string(f))) {
			send(m, msg)
		}
	}
	enter := tea.KeyMsg{Type: tea.KeyEnter}

	focus(listing.FieldBrand)
	send(m, enter)
	send(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("Toy")})
	send(m, enter)
	if m.form.Value(listing.FieldBrand) != "toyota" {
		t.Fatalf("Expected toyota to be picked, got %q", m.form.Value(listing.FieldBrand))
	}

	send(m, change(listing.FieldModel, "1"))
	if m.form.Value(listing.FieldModel) != "1" {
		t.Fatalf("Model should be set, got %q", m.form.Value(listing.FieldModel))
	}

	focus(listing.FieldBrand)
	send(m, enter)
	send(m, enter)
	if m.form.Value(listing.FieldBrand) != "toyota" {
		t.Errorf("Brand should stay toyota, got %q", m.form.Value(listing.FieldBrand))
	}
	if m.form.Value(listing.FieldModel) != "" || m.modelBox().Value() != "" {
		t.Errorf("Re-selecting the brand should clear the model, got %q", m.form.Value(listing.FieldModel))
	}
	if len(m.modelBox().Options()) != 3 {
		t.Errorf("Toyota models should stay listed, got %d", len(m.modelBox().Options()))
	}
}

func TestModelOutsideBrandIsRejected(t *testing.T) {
	m := loaded(t, Options{})
	send(m, change(listing.FieldBrand, "honda"))

	send(m, change(listing.FieldModel, "1"))
	if m.form.Value(listing.FieldModel) != "" {
		t.Error("A Toyota model should not be accepted for Honda")
	}
}

func TestBlurShowsFieldError(t *testing.T) {
	m := loaded(t, Options{})

	send(m, components.FieldBlurredMsg{ID: string(listing.FieldTitle)})
	title := m.widgets[listing.FieldTitle].(*components.TextInput)
	if title.Error() != "Title is required" {
		t.Errorf("Expected required error, got %q", title.Error())
	}

	send(m, change(listing.FieldTitle, "Reliable family car"))
	if title.Error() != "" {
		t.Errorf("Fixing the value should clear the error, got %q", title.Error())
	}
}

func TestSubmitInvalidBlocksSubmitter(t *testing.T) {
	sub := &recordingSubmitter{}
	m := loaded(t, Options{Submitter: sub})
	fillValid(m)
	send(m, change(listing.FieldPrice, ""))

	send(m, components.FormSubmittedMsg{})

	if len(sub.drafts) != 0 {
		t.Error("Submitter should not be called")
	}
	if m.banner.Kind() != components.BannerError {
		t.Error("Expected an error banner")
	}
	price := m.widgets[listing.FieldPrice].(*components.TextInput)
	if price.Error() != "Price is required" {
		t.Errorf("Expected price error, got %q", price.Error())
	}
	title := m.widgets[listing.FieldTitle].(*components.TextInput)
	if title.Error() != "" {
		t.Errorf("Only the empty field should carry an error, title has %q", title.Error())
	}
	if m.fields.FocusedField().ID() != string(listing.FieldPrice) {
		t.Errorf("Focus should jump to the invalid field, got %s", m.fields.FocusedField().ID())
	}
	if m.submitting || m.fields.Disabled() {
		t.Error("Form should be unlocked after a blocked submit")
	}
}

func TestSubmitValid(t *testing.T) {
	sub := &recordingSubmitter{}
	m := loaded(t, Options{Submitter: sub})
	fillValid(m)

	send(m, tea.KeyMsg{Type: tea.KeyCtrlS})

	if len(sub.drafts) != 1 {
		t.Fatalf("Expected one submitted draft, got %d", len(sub.drafts))
	}
	d := sub.drafts[0]
	if d.Brand != "toyota" || d.Model != 1 || d.Price != 8999.50 {
		t.Errorf("Unexpected draft %+v", d)
	}
	if len(m.Created()) != 1 {
		t.Error("Created should record the draft")
	}
	if m.banner.Kind() != components.BannerSuccess || !strings.Contains(m.banner.Message(), "Reliable family car") {
		t.Errorf("Expected success banner, got %q", m.banner.Message())
	}
	if m.form.Value(listing.FieldTitle) != "" || m.widgets[listing.FieldTitle].(*components.TextInput).Value() != "" {
		t.Error("Form should be cleared after success")
	}
	if m.submit.Busy() {
		t.Error("Submit button should be idle again")
	}
}

func TestSubmitFailureShowsError(t *testing.T) {
	sub := &recordingSubmitter{err: errors.New("listing service down")}
	m := loaded(t, Options{Submitter: sub})
	fillValid(m)

	send(m, components.FormSubmittedMsg{})

	if m.banner.Kind() != components.BannerError {
		t.Errorf("Expected error banner, got %q", m.banner.Message())
	}
	if m.form.Value(listing.FieldTitle) == "" {
		t.Error("Values should be kept after a failed submission")
	}
}

func TestSubmitIgnoredWhileLoading(t *testing.T) {
	sub := &recordingSubmitter{}
	m := newTestModel(t, Options{Submitter: sub})

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	if cmd != nil || m.submitting {
		t.Error("Submit should be ignored while loading")
	}
}

func TestRequireLoginOpensModal(t *testing.T) {
	sub := &recordingSubmitter{}
	m := loaded(t, Options{Submitter: sub, RequireLogin: true})
	fillValid(m)

	send(m, components.FormSubmittedMsg{})

	if len(sub.drafts) != 0 {
		t.Error("Submit should wait for sign in")
	}
	if !m.Modal().IsOpen() || !m.login.IsVisible() {
		t.Error("Login modal should open")
	}
}

func TestLoginFlow(t *testing.T) {
	sess := &session.Session{Token: "tok", UserID: "ada@example.com", Name: "Ada"}
	store := session.NewStore()
	m := loaded(t, Options{Auth: fakeAuth{sess: sess}, Store: store})

	send(m, tea.KeyMsg{Type: tea.KeyCtrlL})
	if !m.login.IsVisible() {
		t.Fatal("ctrl+l should open the login modal")
	}

	send(m, components.LoginSubmitMsg{Email: "ada@example.com", Password: "secret"})

	if store.Current() != sess {
		t.Error("Session should be stored")
	}
	if m.Modal().IsOpen() || m.login.IsVisible() {
		t.Error("Modal should close after sign in")
	}
	if m.header.Data().User != "Ada" {
		t.Errorf("Header should show the user, got %q", m.header.Data().User)
	}
}

func TestLoginValidationAndFailure(t *testing.T) {
	m := loaded(t, Options{Auth: fakeAuth{err: errors.New("bad credentials")}})
	send(m, tea.KeyMsg{Type: tea.KeyCtrlL})

	_, cmd := m.Update(components.LoginSubmitMsg{Email: "", Password: ""})
	if cmd != nil {
		t.Error("Invalid credentials should not reach the authenticator")
	}

	send(m, components.LoginSubmitMsg{Email: "ada@example.com", Password: "wrong"})
	if m.login.Error() != "bad credentials" {
		t.Errorf("Expected the failure on the modal, got %q", m.login.Error())
	}
	if !m.login.IsVisible() || m.login.Busy() {
		t.Error("Modal should stay open and idle after a failure")
	}
}

func TestLoginWithoutAuthenticator(t *testing.T) {
	m := loaded(t, Options{})
	send(m, tea.KeyMsg{Type: tea.KeyCtrlL})

	send(m, components.LoginSubmitMsg{Email: "ada@example.com", Password: "secret"})
	if !strings.Contains(m.login.Error(), "not configured") {
		t.Errorf("Expected not configured error, got %q", m.login.Error())
	}
}

func TestModalStateDrivesOverlay(t *testing.T) {
	m := loaded(t, Options{})

	m.Modal().Open()
	send(m, ModalChangedMsg{Open: true})
	if !m.login.IsVisible() {
		t.Error("Opening the shared state should show the modal")
	}
	if !strings.Contains(m.View(), "Sign in") {
		t.Error("View should render the modal")
	}

	send(m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.Modal().IsOpen() || m.login.IsVisible() {
		t.Error("Esc should close the modal and the shared state")
	}
}

func TestSocialLoginShowsAuthorizeURL(t *testing.T) {
	providers := []session.Provider{{
		Name:     "google",
		Label:    "Sign in with Google",
		AuthURL:  "https://accounts.example.com/o/oauth2/auth",
		ClientID: "client-1",
	}}
	m := loaded(t, Options{Providers: providers})
	send(m, tea.KeyMsg{Type: tea.KeyCtrlL})

	send(m, components.SocialLoginMsg{Provider: "google"})

	if !strings.Contains(m.banner.Message(), "client_id=client-1") {
		t.Errorf("Banner should show the authorize URL, got %q", m.banner.Message())
	}
	if m.login.IsVisible() {
		t.Error("Modal should close")
	}
}

func TestSignupLink(t *testing.T) {
	m := loaded(t, Options{SignupURL: "https://autolist.example.com/signup"})
	send(m, tea.KeyMsg{Type: tea.KeyCtrlL})

	send(m, components.SignupMsg{})
	if !strings.Contains(m.banner.Message(), "https://autolist.example.com/signup") {
		t.Errorf("Banner should show the sign up URL, got %q", m.banner.Message())
	}
}

func TestQuit(t *testing.T) {
	m := loaded(t, Options{})

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if !m.quitting || cmd == nil {
		t.Error("ctrl+c should quit")
	}
	if m.View() != "" {
		t.Error("Quitting model should render nothing")
	}
}

func TestViewAndResize(t *testing.T) {
	m := loaded(t, Options{SourceName: "file"})
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})

	view := m.View()
	for _, want := range []string{"AUTOLIST", "file", "Title", "Create a listing"} {
		if !strings.Contains(view, want) {
			t.Errorf("View should contain %q", want)
		}
	}
}
