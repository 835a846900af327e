package tui

import (
	"github.com/autolist/autolist/internal/catalog"
	"github.com/autolist/autolist/internal/listing"
	"github.com/autolist/autolist/internal/tui/components"
)

// selectPlaceholders are the prompts of the dropdown fields.
var selectPlaceholders = map[listing.Field]string{
	listing.FieldCarType:      "Select a car type",
	listing.FieldTransmission: "Select a transmission",
	listing.FieldFuelType:     "Select a fuel type",
}

// listFor maps choice fields to the reference list feeding them.
var listFor = map[listing.Field]catalog.Kind{
	listing.FieldBrand:        catalog.KindBrands,
	listing.FieldCarType:      catalog.KindCarTypes,
	listing.FieldCondition:    catalog.KindConditions,
	listing.FieldTransmission: catalog.KindTransmissions,
	listing.FieldFuelType:     catalog.KindFuelTypes,
	listing.FieldColor:        catalog.KindColors,
}

// buildFields creates one widget per listing field, in form order, followed
// by the submit button.
func (m *Model) buildFields() {
	m.fields = components.NewForm(m.form.ID(), "")
	m.widgets = make(map[listing.Field]components.FormField)

	suffixes := map[listing.Field]string{
		listing.FieldMileage: m.opts.Form.DistanceUnit,
		listing.FieldPrice:   m.opts.Form.Currency,
		listing.FieldPower:   m.opts.Form.PowerUnit,
	}

	for _, f := range listing.Fields() {
		id := string(f)
		label := id
		if r, ok := m.schema.Rule(f); ok {
			label = r.Label
		}

		var w components.FormField
		switch f {
		case listing.FieldBrand:
			c := components.NewComboBox(id, label)
			c.SetPlaceholder("Select a brand")
			c.SetEmptyText("No brands found.")
			w = c
		case listing.FieldModel:
			c := components.NewComboBox(id, label)
			c.SetPlaceholder("Select a model")
			c.SetEmptyText("No models found.")
			w = c
		case listing.FieldCarType, listing.FieldTransmission, listing.FieldFuelType:
			w = components.NewSelect(id, label, selectPlaceholders[f])
		case listing.FieldCondition:
			w = components.NewRadioGroup(id, label)
		case listing.FieldColor:
			w = components.NewSwatchGrid(id, label, 5)
		case listing.FieldDescription:
			ta := components.NewTextArea(id, label)
			ta.SetPlaceholder("Tell buyers about the car")
			w = ta
		default:
			ti := components.NewTextInput(id, label)
			ti.SetSuffix(suffixes[f])
			w = ti
		}
		m.widgets[f] = w
		m.fields.AddField(w)
	}

	m.submit = components.NewButton("submit", "Create a listing")
	m.submit.SetBusyLabel("Creating listing...")
	m.fields.AddField(m.submit)
}

func (m *Model) modelBox() *components.ComboBox {
	return m.widgets[listing.FieldModel].(*components.ComboBox)
}

// applyOptions feeds the loaded reference lists into the choice widgets.
// The model list follows the selected brand.
func (m *Model) applyOptions() {
	for f, kind := range listFor {
		options := m.catalog.Options(kind)
		switch w := m.widgets[f].(type) {
		case *components.ComboBox:
			w.SetOptions(options)
		case *components.Select:
			w.SetOptions(options)
		case *components.RadioGroup:
			w.SetOptions(options)
		}
	}
	m.modelBox().SetOptions(catalog.ModelOptions(m.cascade.ModelOptions()))
}

// clearFields empties every widget after a successful submission.
func (m *Model) clearFields() {
	m.form.Reset()
	for _, w := range m.widgets {
		switch w := w.(type) {
		case *components.TextInput:
			w.Reset()
		case *components.TextArea:
			w.SetValue("")
			w.SetError("")
		case *components.ComboBox:
			w.SetValue("")
			w.SetError("")
		case *components.Select:
			w.SetValue("")
			w.SetError("")
		case *components.RadioGroup:
			w.SetValue("")
			w.SetError("")
		}
	}
	m.modelBox().SetOptions(nil)
}
