package catalog

import (
	"context"
	"fmt"

	"github.com/autolist/autolist/internal/config"
	autolisterrors "github.com/autolist/autolist/internal/errors"
)

// Source fetches reference lists. Each method returns the full list, which
// may be empty, or an error.
type Source interface {
	Brands(ctx context.Context) ([]Brand, error)
	Models(ctx context.Context) ([]Model, error)
	CarTypes(ctx context.Context) ([]CarType, error)
	Conditions(ctx context.Context) ([]Condition, error)
	Transmissions(ctx context.Context) ([]Transmission, error)
	FuelTypes(ctx context.Context) ([]FuelType, error)
	Colors(ctx context.Context) ([]Color, error)
}

// Open builds the Source selected by cfg. The returned close function
// releases any connection the source holds and is never nil.
func Open(ctx context.Context, cfg config.CatalogConfig) (Source, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Source {
	case config.CatalogSourceHTTP, "":
		return NewHTTPSource(cfg.URL), noop, nil
	case config.CatalogSourceFile:
		return NewFileSource(cfg.File), noop, nil
	case config.CatalogSourceSQL:
		src, err := OpenSQLSource(ctx, cfg.DSN)
		if err != nil {
			return nil, noop, err
		}
		return src, src.Close, nil
	case config.CatalogSourceMongo:
		src, err := OpenMongoSource(ctx, cfg.MongoURI, cfg.MongoDatabase)
		if err != nil {
			return nil, noop, err
		}
		return src, func() error { return src.Close(context.Background()) }, nil
	}
	return nil, noop, autolisterrors.CatalogSourceUnknown(string(cfg.Source))
}

// fetch dispatches a single list fetch by kind and stores the result in c.
func fetch(ctx context.Context, src Source, kind Kind, c *Catalog) error {
	var err error
	switch kind {
	case KindBrands:
		c.Brands, err = src.Brands(ctx)
	case KindModels:
		c.Models, err = src.Models(ctx)
	case KindCarTypes:
		c.CarTypes, err = src.CarTypes(ctx)
	case KindConditions:
		c.Conditions, err = src.Conditions(ctx)
	case KindTransmissions:
		c.Transmissions, err = src.Transmissions(ctx)
	case KindFuelTypes:
		c.FuelTypes, err = src.FuelTypes(ctx)
	case KindColors:
		c.Colors, err = src.Colors(ctx)
	default:
		err = fmt.Errorf("unknown list %q", kind)
	}
	return err
}
