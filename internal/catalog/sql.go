package catalog

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// sqlQueries selects each reference table in display order.
var sqlQueries = map[Kind]string{
	KindBrands:        `SELECT id, brand_name FROM brands ORDER BY brand_name`,
	KindModels:        `SELECT id, model_name, brand_id FROM models ORDER BY model_name`,
	KindCarTypes:      `SELECT id, car_type_name FROM car_types ORDER BY id`,
	KindConditions:    `SELECT id, condition_type FROM conditions ORDER BY id`,
	KindTransmissions: `SELECT id, transmission_type FROM transmissions ORDER BY id`,
	KindFuelTypes:     `SELECT id, fuel_type_name FROM fuel_types ORDER BY id`,
	KindColors:        `SELECT id, color_name, color_code FROM colors ORDER BY id`,
}

// SQLSource reads reference tables from PostgreSQL.
type SQLSource struct {
	DB *sqlx.DB
}

// NewSQLSource wraps an open database handle.
func NewSQLSource(db *sqlx.DB) *SQLSource {
	return &SQLSource{DB: db}
}

// OpenSQLSource connects to the PostgreSQL database at dsn.
func OpenSQLSource(ctx context.Context, dsn string) (*SQLSource, error) {
	db, err := sqlx.ConnectContext(ctx, "postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to catalog database: %w", err)
	}
	return NewSQLSource(db), nil
}

// Close closes the database handle.
func (s *SQLSource) Close() error {
	return s.DB.Close()
}

func selectList[T any](ctx context.Context, s *SQLSource, kind Kind) ([]T, error) {
	items := []T{}
	if err := s.DB.SelectContext(ctx, &items, sqlQueries[kind]); err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", kind, err)
	}
	return items, nil
}

func (s *SQLSource) Brands(ctx context.Context) ([]Brand, error) {
	return selectList[Brand](ctx, s, KindBrands)
}

func (s *SQLSource) Models(ctx context.Context) ([]Model, error) {
	return selectList[Model](ctx, s, KindModels)
}

func (s *SQLSource) CarTypes(ctx context.Context) ([]CarType, error) {
	return selectList[CarType](ctx, s, KindCarTypes)
}

func (s *SQLSource) Conditions(ctx context.Context) ([]Condition, error) {
	return selectList[Condition](ctx, s, KindConditions)
}

func (s *SQLSource) Transmissions(ctx context.Context) ([]Transmission, error) {
	return selectList[Transmission](ctx, s, KindTransmissions)
}

func (s *SQLSource) FuelTypes(ctx context.Context) ([]FuelType, error) {
	return selectList[FuelType](ctx, s, KindFuelTypes)
}

func (s *SQLSource) Colors(ctx context.Context) ([]Color, error) {
	return selectList[Color](ctx, s, KindColors)
}
