package listing

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	autolisterrors "github.com/autolist/autolist/internal/errors"
	"github.com/autolist/autolist/internal/logging"
)

var (
	// ErrInvalid is returned by Submit when a field fails validation. The
	// messages are available from Form.Errors.
	ErrInvalid = errors.New("listing is invalid")
	// ErrSubmitting is returned by Submit while a previous submission runs.
	ErrSubmitting = errors.New("listing is already being submitted")
)

var formSeq atomic.Uint64

type entry struct {
	value string
	rev   uint64
}

// Form is the single source of truth for a draft being edited: raw values,
// touched flags, per-field errors and submission status. It is safe for
// concurrent use.
type Form struct {
	id     string
	schema *Schema

	mu         sync.Mutex
	values     map[Field]entry
	touched    map[Field]bool
	errors     FieldErrors
	rev        uint64
	submitting bool
}

// NewForm creates an empty form validated by schema.
func NewForm(schema *Schema) *Form {
	if schema == nil {
		schema = DefaultSchema()
	}
	return &Form{
		id:      fmt.Sprintf("form-%d-%d", time.Now().Unix(), formSeq.Add(1)),
		schema:  schema,
		values:  make(map[Field]entry),
		touched: make(map[Field]bool),
		errors:  make(FieldErrors),
	}
}

// ID identifies this form in logs.
func (f *Form) ID() string {
	return f.id
}

// SetSchema swaps the schema, e.g. once the catalog has loaded.
func (f *Form) SetSchema(s *Schema) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.schema = s
}

// SetValue stores value for field and returns the write's revision. A
// touched field is revalidated immediately.
func (f *Form) SetValue(field Field, value string) uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.setLocked(field, value)
}

// SetValues stores several values as one update so no reader observes a
// partial change.
func (f *Form) SetValues(values Values) uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	var rev uint64
	for _, field := range Fields() {
		if v, ok := values[field]; ok {
			rev = f.setLocked(field, v)
		}
	}
	return rev
}

func (f *Form) setLocked(field Field, value string) uint64 {
	f.rev++
	f.values[field] = entry{value: value, rev: f.rev}
	if f.touched[field] {
		f.validateLocked(field)
	}
	if field == FieldBrand && f.touched[FieldModel] {
		f.validateLocked(FieldModel)
	}
	return f.rev
}

// Value returns the raw value of field.
func (f *Form) Value(field Field) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.values[field].value
}

// Revision returns the revision of the last write to field, 0 if never set.
func (f *Form) Revision(field Field) uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.values[field].rev
}

// Values returns a snapshot of all values set so far.
func (f *Form) Values() Values {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(Values, len(f.values))
	for field, e := range f.values {
		out[field] = e.value
	}
	return out
}

// Touch marks field as visited and validates it. Later writes to a touched
// field revalidate it.
func (f *Form) Touch(field Field) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.touched[field] = true
	return f.validateLocked(field)
}

// Touched reports whether field has been visited.
func (f *Form) Touched(field Field) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.touched[field]
}

func (f *Form) validateLocked(field Field) string {
	values := make(Values, len(f.values))
	for k, e := range f.values {
		values[k] = e.value
	}
	msg := f.schema.ValidateFieldIn(field, values)
	if msg == "" {
		delete(f.errors, field)
	} else {
		f.errors[field] = msg
	}
	return msg
}

// Errors returns a copy of the current field errors.
func (f *Form) Errors() FieldErrors {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(FieldErrors, len(f.errors))
	for k, v := range f.errors {
		out[k] = v
	}
	return out
}

// Error returns the message attached to field, or "".
func (f *Form) Error(field Field) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.errors[field]
}

// IsSubmitting reports whether a submission is in flight.
func (f *Form) IsSubmitting() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.submitting
}

// Reset clears values, touched flags and errors. The revision counter keeps
// increasing across resets.
func (f *Form) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values = make(map[Field]entry)
	f.touched = make(map[Field]bool)
	f.errors = make(FieldErrors)
}

// Submit validates every field. On failure the errors are attached to the
// form and ErrInvalid is returned without calling submitter. Otherwise the
// decoded draft is handed to submitter while IsSubmitting reports true.
func (f *Form) Submit(ctx context.Context, submitter Submitter) (Draft, error) {
	ctx = logging.WithFormID(ctx, f.id)

	f.mu.Lock()
	if f.submitting {
		f.mu.Unlock()
		return Draft{}, ErrSubmitting
	}

	values := make(Values, len(f.values))
	for field, e := range f.values {
		values[field] = e.value
	}
	for _, r := range f.schema.Rules() {
		f.touched[r.Field] = true
	}

	errs := f.schema.Validate(values)
	f.errors = make(FieldErrors, len(errs))
	for k, v := range errs {
		f.errors[k] = v
	}
	if errs != nil {
		f.mu.Unlock()
		logging.DebugContext(ctx, "listing submit blocked", "invalid_fields", len(errs))
		return Draft{}, ErrInvalid
	}

	draft, err := f.schema.Decode(values)
	if err != nil {
		f.mu.Unlock()
		return Draft{}, err
	}
	f.submitting = true
	f.mu.Unlock()

	defer func() {
		f.mu.Lock()
		f.submitting = false
		f.mu.Unlock()
	}()

	if err := submitter.Submit(ctx, draft); err != nil {
		logging.WarnContext(ctx, "listing submit failed", "error", err)
		if errors.Is(err, autolisterrors.ErrSubmit) {
			return draft, err
		}
		return draft, autolisterrors.SubmitFailed(err)
	}
	return draft, nil
}
