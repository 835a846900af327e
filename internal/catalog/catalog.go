// Package catalog holds the reference data a listing is built from: brands,
// models, car types, conditions, transmissions, fuel types and colors. Lists
// are fetched once per form session from a Source and never mutated.
package catalog

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Kind names one reference list.
type Kind string

const (
	KindBrands        Kind = "brands"
	KindModels        Kind = "models"
	KindCarTypes      Kind = "car-types"
	KindConditions    Kind = "conditions"
	KindTransmissions Kind = "transmissions"
	KindFuelTypes     Kind = "fuel-types"
	KindColors        Kind = "colors"
)

// Kinds returns every list kind in display order.
func Kinds() []Kind {
	return []Kind{
		KindBrands,
		KindModels,
		KindCarTypes,
		KindConditions,
		KindTransmissions,
		KindFuelTypes,
		KindColors,
	}
}

// ParseKind resolves a kind from its name. Underscores are accepted in place
// of dashes so "fuel_type" and "fuel-types" both work.
func ParseKind(s string) (Kind, bool) {
	s = strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), "_", "-"))
	for _, k := range Kinds() {
		if string(k) == s || strings.TrimSuffix(string(k), "s") == s {
			return k, true
		}
	}
	return "", false
}

// Brand is a car manufacturer. Its identifier is opaque text.
type Brand struct {
	ID   string `json:"id"         yaml:"id"         db:"id"         bson:"id"`
	Name string `json:"brand_name" yaml:"brand_name" db:"brand_name" bson:"brand_name"`
}

// Model is a car model belonging to exactly one brand.
type Model struct {
	ID      int64  `json:"id"         yaml:"id"         db:"id"         bson:"id"`
	Name    string `json:"model_name" yaml:"model_name" db:"model_name" bson:"model_name"`
	BrandID string `json:"brand_id"   yaml:"brand_id"   db:"brand_id"   bson:"brand_id"`
}

// UnmarshalJSON accepts the brand either as a flat brand_id or as a nested
// brand object, as returned by APIs that expand the relation.
func (m *Model) UnmarshalJSON(data []byte) error {
	var wire struct {
		ID      int64  `json:"id"`
		Name    string `json:"model_name"`
		BrandID string `json:"brand_id"`
		Brand   *struct {
			ID string `json:"id"`
		} `json:"brand"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	m.ID = wire.ID
	m.Name = wire.Name
	m.BrandID = wire.BrandID
	if m.BrandID == "" && wire.Brand != nil {
		m.BrandID = wire.Brand.ID
	}
	return nil
}

// CarType is a body style such as sedan or hatchback.
type CarType struct {
	ID   int64  `json:"id"            yaml:"id"            db:"id"            bson:"id"`
	Name string `json:"car_type_name" yaml:"car_type_name" db:"car_type_name" bson:"car_type_name"`
}

// Condition is the state of the vehicle, e.g. new or used.
type Condition struct {
	ID   int64  `json:"id"             yaml:"id"             db:"id"             bson:"id"`
	Name string `json:"condition_type" yaml:"condition_type" db:"condition_type" bson:"condition_type"`
}

// Transmission is a gearbox type.
type Transmission struct {
	ID   int64  `json:"id"                yaml:"id"                db:"id"                bson:"id"`
	Name string `json:"transmission_type" yaml:"transmission_type" db:"transmission_type" bson:"transmission_type"`
}

// FuelType is a fuel or energy source.
type FuelType struct {
	ID   int64  `json:"id"             yaml:"id"             db:"id"             bson:"id"`
	Name string `json:"fuel_type_name" yaml:"fuel_type_name" db:"fuel_type_name" bson:"fuel_type_name"`
}

// Color is a paint color with a hex swatch.
type Color struct {
	ID   int64  `json:"id"         yaml:"id"         db:"id"         bson:"id"`
	Name string `json:"color_name" yaml:"color_name" db:"color_name" bson:"color_name"`
	Code string `json:"color_code" yaml:"color_code" db:"color_code" bson:"color_code"`
}

// Option is the renderer-neutral form of any reference record.
type Option struct {
	Value string
	Label string
	// Swatch is a hex color code, set for colors only.
	Swatch string
}

func idValue(id int64) string {
	return strconv.FormatInt(id, 10)
}

// Catalog is one loaded set of reference lists.
type Catalog struct {
	Brands        []Brand        `json:"brands"        yaml:"brands"`
	Models        []Model        `json:"models"        yaml:"models"`
	CarTypes      []CarType      `json:"car_types"     yaml:"car_types"`
	Conditions    []Condition    `json:"conditions"    yaml:"conditions"`
	Transmissions []Transmission `json:"transmissions" yaml:"transmissions"`
	FuelTypes     []FuelType     `json:"fuel_types"    yaml:"fuel_types"`
	Colors        []Color        `json:"colors"        yaml:"colors"`
}

// Brand looks up a brand by identifier.
func (c *Catalog) Brand(id string) (Brand, bool) {
	for _, b := range c.Brands {
		if b.ID == id {
			return b, true
		}
	}
	return Brand{}, false
}

// Model looks up a model by identifier.
func (c *Catalog) Model(id int64) (Model, bool) {
	for _, m := range c.Models {
		if m.ID == id {
			return m, true
		}
	}
	return Model{}, false
}

// ModelsForBrand returns exactly the models whose brand is brandID, in
// catalog order. An empty brandID matches nothing.
func (c *Catalog) ModelsForBrand(brandID string) []Model {
	if brandID == "" {
		return nil
	}
	var out []Model
	for _, m := range c.Models {
		if m.BrandID == brandID {
			out = append(out, m)
		}
	}
	return out
}

// Has reports whether a record with the given id exists in the list of kind.
// Brand ids are compared as text, all others as integers.
func (c *Catalog) Has(kind Kind, id string) bool {
	for _, o := range c.Options(kind) {
		if o.Value == id {
			return true
		}
	}
	return false
}

// Label returns the display label for id in the list of kind.
func (c *Catalog) Label(kind Kind, id string) string {
	for _, o := range c.Options(kind) {
		if o.Value == id {
			return o.Label
		}
	}
	return ""
}

// Len returns the number of records of kind.
func (c *Catalog) Len(kind Kind) int {
	switch kind {
	case KindBrands:
		return len(c.Brands)
	case KindModels:
		return len(c.Models)
	case KindCarTypes:
		return len(c.CarTypes)
	case KindConditions:
		return len(c.Conditions)
	case KindTransmissions:
		return len(c.Transmissions)
	case KindFuelTypes:
		return len(c.FuelTypes)
	case KindColors:
		return len(c.Colors)
	}
	return 0
}

// Options converts the list of kind into options.
func (c *Catalog) Options(kind Kind) []Option {
	var out []Option
	switch kind {
	case KindBrands:
		for _, b := range c.Brands {
			out = append(out, Option{Value: b.ID, Label: b.Name})
		}
	case KindModels:
		out = ModelOptions(c.Models)
	case KindCarTypes:
		for _, t := range c.CarTypes {
			out = append(out, Option{Value: idValue(t.ID), Label: t.Name})
		}
	case KindConditions:
		for _, t := range c.Conditions {
			out = append(out, Option{Value: idValue(t.ID), Label: t.Name})
		}
	case KindTransmissions:
		for _, t := range c.Transmissions {
			out = append(out, Option{Value: idValue(t.ID), Label: t.Name})
		}
	case KindFuelTypes:
		for _, t := range c.FuelTypes {
			out = append(out, Option{Value: idValue(t.ID), Label: t.Name})
		}
	case KindColors:
		for _, t := range c.Colors {
			out = append(out, Option{Value: idValue(t.ID), Label: t.Name, Swatch: t.Code})
		}
	}
	return out
}

// ModelOptions converts models into options.
func ModelOptions(models []Model) []Option {
	out := make([]Option, 0, len(models))
	for _, m := range models {
		out = append(out, Option{Value: idValue(m.ID), Label: m.Name})
	}
	return out
}
