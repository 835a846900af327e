// Package listing implements the create-listing form: the field schema and
// its validator, the form state container, the brand-to-model cascade and
// the submitters a valid draft is handed to.
package listing

import (
	"fmt"
	"strconv"
	"strings"
)

// Field names one form field. The string is also the wire and YAML key.
type Field string

const (
	FieldTitle          Field = "title"
	FieldBrand          Field = "brand"
	FieldModel          Field = "model"
	FieldMileage        Field = "mileage"
	FieldPrice          Field = "price"
	FieldPower          Field = "power"
	FieldPreviousOwners Field = "previous_owners"
	FieldDoorCount      Field = "door_count"
	FieldSeatCount      Field = "seat_count"
	FieldCarType        Field = "car_type"
	FieldCondition      Field = "condition"
	FieldTransmission   Field = "transmission"
	FieldFuelType       Field = "fuel_type"
	FieldColor          Field = "color"
	FieldDescription    Field = "description"
)

// Fields returns every field in form order.
func Fields() []Field {
	return []Field{
		FieldTitle,
		FieldBrand,
		FieldModel,
		FieldMileage,
		FieldPrice,
		FieldPower,
		FieldPreviousOwners,
		FieldDoorCount,
		FieldSeatCount,
		FieldCarType,
		FieldCondition,
		FieldTransmission,
		FieldFuelType,
		FieldColor,
		FieldDescription,
	}
}

// Values holds the raw text of each field as typed or selected.
type Values map[Field]string

// Clone returns a copy of v.
func (v Values) Clone() Values {
	out := make(Values, len(v))
	for k, s := range v {
		out[k] = s
	}
	return out
}

// ValuesFromMap converts loosely typed data, such as a decoded YAML or JSON
// document, into raw values. Unknown keys are ignored.
func ValuesFromMap(m map[string]any) Values {
	known := make(map[Field]bool)
	for _, f := range Fields() {
		known[f] = true
	}

	out := make(Values)
	for k, raw := range m {
		f := Field(k)
		if !known[f] || raw == nil {
			continue
		}
		switch v := raw.(type) {
		case string:
			out[f] = v
		case float64:
			out[f] = strconv.FormatFloat(v, 'f', -1, 64)
		default:
			out[f] = fmt.Sprint(v)
		}
	}
	return out
}

// Draft is a fully decoded listing. The binding tags hold the field
// constraints; they are checked by gin when a draft is bound from a request
// and by the schema for raw form values.
type Draft struct {
	Title          string  `json:"title"           yaml:"title"                     binding:"required,min=3,max=100"`
	Brand          string  `json:"brand"           yaml:"brand"                     binding:"required"`
	Model          int64   `json:"model"           yaml:"model"                     binding:"required,gt=0"`
	Mileage        int64   `json:"mileage"         yaml:"mileage"                   binding:"gte=0,lte=2000000"`
	Price          float64 `json:"price"           yaml:"price"                     binding:"gte=1,lte=10000000"`
	Power          int64   `json:"power"           yaml:"power"                     binding:"gte=1,lte=2000"`
	PreviousOwners int64   `json:"previous_owners" yaml:"previous_owners"           binding:"gte=0,lte=99"`
	DoorCount      int64   `json:"door_count"      yaml:"door_count"                binding:"gte=1,lte=9"`
	SeatCount      int64   `json:"seat_count"      yaml:"seat_count"                binding:"gte=1,lte=99"`
	CarType        int64   `json:"car_type"        yaml:"car_type"                  binding:"required,gt=0"`
	Condition      int64   `json:"condition"       yaml:"condition"                 binding:"required,gt=0"`
	Transmission   int64   `json:"transmission"    yaml:"transmission"              binding:"required,gt=0"`
	FuelType       int64   `json:"fuel_type"       yaml:"fuel_type"                 binding:"required,gt=0"`
	Color          int64   `json:"color"           yaml:"color"                     binding:"required,gt=0"`
	Description    string  `json:"description"     yaml:"description,omitempty"     binding:"omitempty,max=2000"`
}

// Values converts d back into raw values.
func (d Draft) Values() Values {
	i := func(n int64) string { return strconv.FormatInt(n, 10) }
	return Values{
		FieldTitle:          d.Title,
		FieldBrand:          d.Brand,
		FieldModel:          i(d.Model),
		FieldMileage:        i(d.Mileage),
		FieldPrice:          strconv.FormatFloat(d.Price, 'f', -1, 64),
		FieldPower:          i(d.Power),
		FieldPreviousOwners: i(d.PreviousOwners),
		FieldDoorCount:      i(d.DoorCount),
		FieldSeatCount:      i(d.SeatCount),
		FieldCarType:        i(d.CarType),
		FieldCondition:      i(d.Condition),
		FieldTransmission:   i(d.Transmission),
		FieldFuelType:       i(d.FuelType),
		FieldColor:          i(d.Color),
		FieldDescription:    d.Description,
	}
}

func parseInt(raw string) (int64, error) {
	return strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
}

func parseDecimal(raw string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(raw), 64)
}
