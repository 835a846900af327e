package listing

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/autolist/autolist/internal/catalog"
	autolisterrors "github.com/autolist/autolist/internal/errors"
)

// ValueKind is the type a field's raw text must parse as.
type ValueKind int

const (
	// KindText is free text.
	KindText ValueKind = iota
	// KindInteger is a whole number.
	KindInteger
	// KindDecimal is a number that may have a fractional part.
	KindDecimal
	// KindChoice is a positive numeric id picked from a reference list.
	KindChoice
	// KindKey is an opaque text id picked from a reference list.
	KindKey
)

// Rule constrains one field.
type Rule struct {
	Field    Field
	Label    string
	Kind     ValueKind
	Required bool
	// Tag holds validator constraints for the parsed value, e.g.
	// "gte=1,lte=9". Text lengths count characters.
	Tag string
	// List is the reference list a choice or key is picked from.
	List catalog.Kind
}

// FieldErrors maps each failing field to its message.
type FieldErrors map[Field]string

// Error implements error, listing fields in form order.
func (e FieldErrors) Error() string {
	var parts []string
	for _, f := range Fields() {
		if msg, ok := e[f]; ok {
			parts = append(parts, string(f)+": "+msg)
		}
	}
	return strings.Join(parts, "; ")
}

// AppError converts e into an application error with per-field details.
func (e FieldErrors) AppError() *autolisterrors.AppError {
	m := make(map[string]string, len(e))
	for f, msg := range e {
		m[string(f)] = msg
	}
	return autolisterrors.ListingInvalid(m)
}

// Schema is an ordered set of rules, optionally bound to a catalog for
// cross-field consistency.
type Schema struct {
	rules   []Rule
	catalog *catalog.Catalog
}

// NewSchema builds a schema from rules.
func NewSchema(rules ...Rule) *Schema {
	return &Schema{rules: rules}
}

// DefaultSchema returns the create-listing rules.
func DefaultSchema() *Schema {
	rule := func(f Field, label string, kind ValueKind, required bool, list catalog.Kind) Rule {
		return Rule{Field: f, Label: label, Kind: kind, Required: required, Tag: Constraint(f), List: list}
	}
	return NewSchema(
		rule(FieldTitle, "Title", KindText, true, ""),
		rule(FieldBrand, "Brand", KindKey, true, catalog.KindBrands),
		rule(FieldModel, "Model", KindChoice, true, catalog.KindModels),
		rule(FieldMileage, "Mileage", KindInteger, true, ""),
		rule(FieldPrice, "Price", KindDecimal, true, ""),
		rule(FieldPower, "Power", KindInteger, true, ""),
		rule(FieldPreviousOwners, "Previous owners", KindInteger, true, ""),
		rule(FieldDoorCount, "Door count", KindInteger, true, ""),
		rule(FieldSeatCount, "Seat count", KindInteger, true, ""),
		rule(FieldCarType, "Car type", KindChoice, true, catalog.KindCarTypes),
		rule(FieldCondition, "Condition", KindChoice, true, catalog.KindConditions),
		rule(FieldTransmission, "Transmission", KindChoice, true, catalog.KindTransmissions),
		rule(FieldFuelType, "Fuel type", KindChoice, true, catalog.KindFuelTypes),
		rule(FieldColor, "Color", KindChoice, true, catalog.KindColors),
		rule(FieldDescription, "Description", KindText, false, ""),
	)
}

// WithCatalog returns a copy of s that also checks choices against cat and
// rejects a model that does not belong to the selected brand.
func (s *Schema) WithCatalog(cat *catalog.Catalog) *Schema {
	return &Schema{rules: s.rules, catalog: cat}
}

// Rules returns the rules in order.
func (s *Schema) Rules() []Rule {
	return s.rules
}

// Rule returns the rule for f.
func (s *Schema) Rule(f Field) (Rule, bool) {
	for _, r := range s.rules {
		if r.Field == f {
			return r, true
		}
	}
	return Rule{}, false
}

// ValidateField checks one raw value in isolation and returns the message,
// or "" when it passes. Fields without a rule always pass.
func (s *Schema) ValidateField(f Field, raw string) string {
	r, ok := s.Rule(f)
	if !ok {
		return ""
	}
	if msg := r.check(raw); msg != "" {
		return msg
	}
	return s.checkCatalog(r, raw)
}

// ValidateFieldIn checks one field like ValidateField and, for the model
// field of a catalog-bound schema, that the model belongs to the brand in
// values.
func (s *Schema) ValidateFieldIn(f Field, values Values) string {
	if msg := s.ValidateField(f, values[f]); msg != "" {
		return msg
	}
	if f == FieldModel && s.catalog != nil && s.ValidateField(FieldBrand, values[FieldBrand]) == "" {
		return s.checkModelBrand(values[FieldBrand], values[FieldModel])
	}
	return ""
}

// Validate checks every rule against values, then the brand/model
// consistency when a catalog is bound. Only failing fields appear in the
// result, which is nil when everything passes.
func (s *Schema) Validate(values Values) FieldErrors {
	errs := make(FieldErrors)
	for _, r := range s.rules {
		if msg := s.ValidateField(r.Field, values[r.Field]); msg != "" {
			errs[r.Field] = msg
		}
	}

	if s.catalog != nil && errs[FieldBrand] == "" && errs[FieldModel] == "" {
		if msg := s.checkModelBrand(values[FieldBrand], values[FieldModel]); msg != "" {
			errs[FieldModel] = msg
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

func (s *Schema) checkModelBrand(brand, model string) string {
	brand = strings.TrimSpace(brand)
	id, err := parseInt(model)
	if brand == "" || err != nil || id <= 0 {
		return ""
	}
	m, ok := s.catalog.Model(id)
	if !ok || m.BrandID != brand {
		return "Model does not belong to the selected brand"
	}
	return ""
}

// checkCatalog verifies a picked id exists, but only when its list loaded.
func (s *Schema) checkCatalog(r Rule, raw string) string {
	raw = strings.TrimSpace(raw)
	if s.catalog == nil || r.List == "" || raw == "" || s.catalog.Len(r.List) == 0 {
		return ""
	}
	if r.Kind == KindChoice {
		id, err := parseInt(raw)
		if err != nil {
			return ""
		}
		raw = strconv.FormatInt(id, 10)
	}
	if !s.catalog.Has(r.List, raw) {
		return "Select a valid " + strings.ToLower(r.Label)
	}
	return ""
}

func (r Rule) check(raw string) string {
	trimmed := strings.TrimSpace(raw)

	var value any
	switch r.Kind {
	case KindText, KindKey:
		if trimmed == "" {
			if r.Required {
				return r.requiredMessage()
			}
			return ""
		}
		value = trimmed

	case KindChoice:
		if trimmed == "" || trimmed == "0" {
			if r.Required {
				return r.requiredMessage()
			}
			return ""
		}
		id, err := parseInt(trimmed)
		if err != nil {
			return "Select a valid " + strings.ToLower(r.Label)
		}
		value = id

	case KindInteger:
		if trimmed == "" {
			if r.Required {
				return r.requiredMessage()
			}
			return ""
		}
		n, err := parseInt(trimmed)
		if err != nil {
			return r.Label + " must be a whole number"
		}
		value = n

	case KindDecimal:
		if trimmed == "" {
			if r.Required {
				return r.requiredMessage()
			}
			return ""
		}
		f, err := parseDecimal(trimmed)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return r.Label + " must be a number"
		}
		value = f
	}

	if r.Tag == "" {
		return ""
	}
	var verrs validator.ValidationErrors
	if err := validate.Var(value, r.Tag); errors.As(err, &verrs) && len(verrs) > 0 {
		return r.message(verrs[0])
	}
	return ""
}

func (r Rule) requiredMessage() string {
	switch r.Kind {
	case KindKey, KindChoice:
		return "Select a " + strings.ToLower(r.Label)
	}
	return r.Label + " is required"
}

// message renders a failed constraint in the form's wording.
func (r Rule) message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return r.requiredMessage()
	case "gt":
		return "Select a valid " + strings.ToLower(r.Label)
	case "min", "max", "gte", "lte":
		if fe.Kind() == reflect.String {
			if fe.Tag() == "min" || fe.Tag() == "gte" {
				return fmt.Sprintf("%s must be at least %s characters", r.Label, fe.Param())
			}
			return fmt.Sprintf("%s must be at most %s characters", r.Label, fe.Param())
		}
		lo, hi := r.bounds()
		return fmt.Sprintf("%s must be between %s and %s", r.Label, formatNumber(lo), formatNumber(hi))
	}
	return r.Label + " is invalid"
}

// bounds returns the numeric lower and upper limits in r.Tag.
func (r Rule) bounds() (lo, hi float64) {
	for _, c := range strings.Split(r.Tag, ",") {
		name, param, ok := strings.Cut(c, "=")
		if !ok {
			continue
		}
		n, err := strconv.ParseFloat(param, 64)
		if err != nil {
			continue
		}
		switch name {
		case "min", "gte":
			lo = n
		case "max", "lte":
			hi = n
		}
	}
	return lo, hi
}

// formatNumber renders n with thousands separators, e.g. 2,000,000.
func formatNumber(n float64) string {
	s := strconv.FormatFloat(n, 'f', -1, 64)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	intPart, frac, hasFrac := strings.Cut(s, ".")
	var b strings.Builder
	for i, c := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}
	out := b.String()
	if hasFrac {
		out += "." + frac
	}
	if neg {
		out = "-" + out
	}
	return out
}

// Decode converts values into a Draft. It fails with the field errors when
// values do not validate.
func (s *Schema) Decode(values Values) (Draft, error) {
	if errs := s.Validate(values); errs != nil {
		return Draft{}, errs
	}

	ints := make(map[Field]int64)
	for _, r := range s.rules {
		if r.Kind == KindInteger || r.Kind == KindChoice {
			raw := strings.TrimSpace(values[r.Field])
			if raw == "" {
				continue
			}
			n, _ := parseInt(raw)
			ints[r.Field] = n
		}
	}
	price, _ := parseDecimal(values[FieldPrice])

	d := Draft{
		Title:          strings.TrimSpace(values[FieldTitle]),
		Brand:          strings.TrimSpace(values[FieldBrand]),
		Model:          ints[FieldModel],
		Mileage:        ints[FieldMileage],
		Price:          price,
		Power:          ints[FieldPower],
		PreviousOwners: ints[FieldPreviousOwners],
		DoorCount:      ints[FieldDoorCount],
		SeatCount:      ints[FieldSeatCount],
		CarType:        ints[FieldCarType],
		Condition:      ints[FieldCondition],
		Transmission:   ints[FieldTransmission],
		FuelType:       ints[FieldFuelType],
		Color:          ints[FieldColor],
		Description:    strings.TrimSpace(values[FieldDescription]),
	}
	if errs := s.ValidateDraft(d); errs != nil {
		return Draft{}, errs
	}
	return d, nil
}

// SortedFields returns the failing fields in form order.
func (e FieldErrors) SortedFields() []Field {
	order := make(map[Field]int)
	for i, f := range Fields() {
		order[f] = i
	}
	out := make([]Field, 0, len(e))
	for f := range e {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return order[out[i]] < order[out[j]] })
	return out
}
