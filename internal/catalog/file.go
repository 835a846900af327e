package catalog

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileSource reads every list from one YAML fixture. The file is read on
// each call so edits show up the next time the form opens.
type FileSource struct {
	Path string
}

// NewFileSource creates a file source for path.
func NewFileSource(path string) *FileSource {
	return &FileSource{Path: path}
}

// ReadFile parses a YAML catalog fixture.
func ReadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse catalog file %s: %w", path, err)
	}
	return &c, nil
}

// WriteFile writes c as a YAML fixture, creating parent directories.
func WriteFile(path string, c *Catalog) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create catalog directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal catalog: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

func (s *FileSource) read(ctx context.Context) (*Catalog, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return ReadFile(s.Path)
}

func (s *FileSource) Brands(ctx context.Context) ([]Brand, error) {
	c, err := s.read(ctx)
	if err != nil {
		return nil, err
	}
	return c.Brands, nil
}

func (s *FileSource) Models(ctx context.Context) ([]Model, error) {
	c, err := s.read(ctx)
	if err != nil {
		return nil, err
	}
	return c.Models, nil
}

func (s *FileSource) CarTypes(ctx context.Context) ([]CarType, error) {
	c, err := s.read(ctx)
	if err != nil {
		return nil, err
	}
	return c.CarTypes, nil
}

func (s *FileSource) Conditions(ctx context.Context) ([]Condition, error) {
	c, err := s.read(ctx)
	if err != nil {
		return nil, err
	}
	return c.Conditions, nil
}

func (s *FileSource) Transmissions(ctx context.Context) ([]Transmission, error) {
	c, err := s.read(ctx)
	if err != nil {
		return nil, err
	}
	return c.Transmissions, nil
}

func (s *FileSource) FuelTypes(ctx context.Context) ([]FuelType, error) {
	c, err := s.read(ctx)
	if err != nil {
		return nil, err
	}
	return c.FuelTypes, nil
}

func (s *FileSource) Colors(ctx context.Context) ([]Color, error) {
	c, err := s.read(ctx)
	if err != nil {
		return nil, err
	}
	return c.Colors, nil
}

// StaticSource serves an already loaded catalog.
type StaticSource struct {
	Catalog *Catalog
}

func (s StaticSource) Brands(context.Context) ([]Brand, error) { return s.Catalog.Brands, nil }
func (s StaticSource) Models(context.Context) ([]Model, error) { return s.Catalog.Models, nil }
func (s StaticSource) CarTypes(context.Context) ([]CarType, error) {
	return s.Catalog.CarTypes, nil
}
func (s StaticSource) Conditions(context.Context) ([]Condition, error) {
	return s.Catalog.Conditions, nil
}
func (s StaticSource) Transmissions(context.Context) ([]Transmission, error) {
	return s.Catalog.Transmissions, nil
}
func (s StaticSource) FuelTypes(context.Context) ([]FuelType, error) {
	return s.Catalog.FuelTypes, nil
}
func (s StaticSource) Colors(context.Context) ([]Color, error) { return s.Catalog.Colors, nil }

// Demo returns a small catalog used by `autolist init` and the development
// server when no other data is configured.
func Demo() *Catalog {
	return &Catalog{
		Brands: []Brand{
			{ID: "toyota", Name: "Toyota"},
			{ID: "honda", Name: "Honda"},
			{ID: "volkswagen", Name: "Volkswagen"},
		},
		Models: []Model{
			{ID: 1, Name: "Corolla", BrandID: "toyota"},
			{ID: 2, Name: "Camry", BrandID: "toyota"},
			{ID: 3, Name: "RAV4", BrandID: "toyota"},
			{ID: 4, Name: "Civic", BrandID: "honda"},
			{ID: 5, Name: "Accord", BrandID: "honda"},
			{ID: 6, Name: "Golf", BrandID: "volkswagen"},
			{ID: 7, Name: "Passat", BrandID: "volkswagen"},
		},
		CarTypes: []CarType{
			{ID: 1, Name: "Sedan"},
			{ID: 2, Name: "Hatchback"},
			{ID: 3, Name: "SUV"},
			{ID: 4, Name: "Wagon"},
		},
		Conditions: []Condition{
			{ID: 1, Name: "New"},
			{ID: 2, Name: "Used"},
		},
		Transmissions: []Transmission{
			{ID: 1, Name: "Manual"},
			{ID: 2, Name: "Automatic"},
		},
		FuelTypes: []FuelType{
			{ID: 1, Name: "Petrol"},
			{ID: 2, Name: "Diesel"},
			{ID: 3, Name: "Hybrid"},
			{ID: 4, Name: "Electric"},
		},
		Colors: []Color{
			{ID: 1, Name: "Black", Code: "#000000"},
			{ID: 2, Name: "White", Code: "#FFFFFF"},
			{ID: 3, Name: "Silver", Code: "#C0C0C0"},
			{ID: 4, Name: "Red", Code: "#D32F2F"},
			{ID: 5, Name: "Blue", Code: "#1976D2"},
		},
	}
}
