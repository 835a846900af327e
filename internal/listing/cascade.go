package listing

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/autolist/autolist/internal/catalog"
	autolisterrors "github.com/autolist/autolist/internal/errors"
)

// ErrModelNotForBrand is returned when a model outside the selected brand is
// picked.
var ErrModelNotForBrand = errors.New("model does not belong to the selected brand")

// Cascade keeps the model field consistent with the brand field.
type Cascade struct {
	form    *Form
	catalog *catalog.Catalog
}

// NewCascade binds form to the reference data in cat.
func NewCascade(form *Form, cat *catalog.Catalog) *Cascade {
	if cat == nil {
		cat = &catalog.Catalog{}
	}
	return &Cascade{form: form, catalog: cat}
}

// SetCatalog replaces the reference data, e.g. after a reload.
func (c *Cascade) SetCatalog(cat *catalog.Catalog) {
	c.catalog = cat
}

// Brand returns the selected brand id, or "".
func (c *Cascade) Brand() string {
	return strings.TrimSpace(c.form.Value(FieldBrand))
}

// ModelOptions returns exactly the models of the selected brand. It is
// empty until a brand is selected.
func (c *Cascade) ModelOptions() []catalog.Model {
	return c.catalog.ModelsForBrand(c.Brand())
}

// ModelEnabled reports whether the model picker can be used.
func (c *Cascade) ModelEnabled() bool {
	return len(c.ModelOptions()) > 0
}

// SelectBrand sets the brand and clears the model in one update. The model
// is cleared even when the same brand is picked again.
func (c *Cascade) SelectBrand(id string) {
	c.form.SetValues(Values{
		FieldBrand: id,
		FieldModel: "",
	})
}

// SelectModel sets the model if it belongs to the selected brand.
func (c *Cascade) SelectModel(id int64) error {
	for _, m := range c.ModelOptions() {
		if m.ID == id {
			c.form.SetValue(FieldModel, strconv.FormatInt(id, 10))
			return nil
		}
	}
	return fmt.Errorf("%w: %w", ErrModelNotForBrand, autolisterrors.ModelBrandMismatch(id, c.Brand()))
}

// ModelLabel returns the name of the selected model, or "".
func (c *Cascade) ModelLabel() string {
	id, err := parseInt(c.form.Value(FieldModel))
	if err != nil || id <= 0 {
		return ""
	}
	if m, ok := c.catalog.Model(id); ok {
		return m.Name
	}
	return ""
}
