package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/autolist/autolist/internal/catalog"
)

// catalogCmd represents the catalog command.
var catalogCmd = &cobra.Command{
	Use:   "catalog [kind]",
	Short: "Print the reference data",
	Long: `Print the reference data from the configured catalog source.

Without a kind, every list is fetched and its size is printed. Kinds are
brands, models, car-types, conditions, transmissions, fuel-types and colors.

Examples:
  autolist catalog                      # Summary of every list
  autolist catalog brands               # List the brands
  autolist catalog models --brand honda # Models of one brand
  autolist catalog --yaml > fixture.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCatalog,
}

func init() {
	rootCmd.AddCommand(catalogCmd)
	addCatalogFlags(catalogCmd)
}

func addCatalogFlags(c *cobra.Command) {
	addNewFlags(c)
	c.Flags().String("brand", "", "Only show models of this brand id")
	c.Flags().Bool("yaml", false, "Print as a YAML fixture")
}

// runCatalog handles the catalog command.
func runCatalog(cmd *cobra.Command, args []string) error {
	var kind catalog.Kind
	if len(args) == 1 {
		k, ok := catalog.ParseKind(args[0])
		if !ok {
			return fmt.Errorf("unknown list %q (valid: %s)", args[0], kindNames())
		}
		kind = k
	}

	ws := workspaceFrom(cmd)
	cfg, err := ws.loadConfig()
	if err != nil {
		return err
	}
	if err := applySourceFlags(cmd, ws, cfg); err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	c, report, err := loadCatalog(ctx, cfg.Catalog)
	if err != nil {
		return err
	}
	if !report.OK() {
		cmd.PrintErrln("Warning: " + report.Summary())
	}

	brand, _ := cmd.Flags().GetString("brand")
	if brand != "" {
		c.Models = c.ModelsForBrand(brand)
	}

	asYAML, _ := cmd.Flags().GetBool("yaml")
	switch {
	case asYAML:
		return printCatalogYAML(cmd, c, kind)
	case kind == "":
		printSummary(cmd, c, report)
	default:
		printList(cmd, c, kind)
	}
	return nil
}

func kindNames() string {
	names := make([]string, 0, len(catalog.Kinds()))
	for _, k := range catalog.Kinds() {
		names = append(names, string(k))
	}
	return strings.Join(names, ", ")
}

func printSummary(cmd *cobra.Command, c *catalog.Catalog, report *catalog.LoadReport) {
	for _, k := range catalog.Kinds() {
		status := ""
		if report.Failed(k) {
			status = " (failed)"
		}
		cmd.Printf("  %-14s %3d%s\n", k, c.Len(k), status)
	}
}

func printList(cmd *cobra.Command, c *catalog.Catalog, kind catalog.Kind) {
	options := c.Options(kind)
	if len(options) == 0 {
		cmd.Printf("No %s.\n", kind)
		return
	}

	for _, o := range options {
		extra := ""
		switch kind {
		case catalog.KindModels:
			id, _ := strconv.ParseInt(o.Value, 10, 64)
			if m, ok := c.Model(id); ok {
				extra = "  " + c.Label(catalog.KindBrands, m.BrandID)
			}
		case catalog.KindColors:
			extra = "  " + o.Swatch
		}
		cmd.Printf("  %-12s %s%s\n", o.Value, o.Label, extra)
	}
}

func printCatalogYAML(cmd *cobra.Command, c *catalog.Catalog, kind catalog.Kind) error {
	var v any = c
	if kind != "" {
		v = map[string]any{strings.ReplaceAll(string(kind), "-", "_"): listOf(c, kind)}
	}
	data, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal catalog: %w", err)
	}
	cmd.Print(string(data))
	return nil
}

// listOf returns the typed list of kind so YAML keeps the fixture field names.
func listOf(c *catalog.Catalog, kind catalog.Kind) any {
	switch kind {
	case catalog.KindBrands:
		return c.Brands
	case catalog.KindModels:
		return c.Models
	case catalog.KindCarTypes:
		return c.CarTypes
	case catalog.KindConditions:
		return c.Conditions
	case catalog.KindTransmissions:
		return c.Transmissions
	case catalog.KindFuelTypes:
		return c.FuelTypes
	case catalog.KindColors:
		return c.Colors
	}
	return nil
}
