package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/autolist/autolist/internal/config"
	"github.com/autolist/autolist/internal/listing"
	"github.com/autolist/autolist/internal/logging"
)

// validateCmd represents the validate command.
var validateCmd = &cobra.Command{
	Use:   "validate <draft.yaml>",
	Short: "Validate a listing draft file",
	Long: `Validate a listing draft file without opening the form.

The file is a YAML mapping of field names (title, brand, model, mileage,
price, power, previous_owners, door_count, seat_count, car_type,
condition, transmission, fuel_type, color, description) to values.

With --check-catalog the choices are also checked against the reference
data, including that the model belongs to the brand. With --submit a valid
draft is handed to the configured submitter.

Examples:
  autolist validate draft.yaml
  autolist validate draft.yaml --check-catalog
  autolist validate draft.yaml --submit --token "$AUTOLIST_TOKEN"`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
	addValidateFlags(validateCmd)
}

func addValidateFlags(c *cobra.Command) {
	addNewFlags(c)
	c.Flags().Bool("check-catalog", false, "Check choices against the reference data")
	c.Flags().Bool("submit", false, "Submit the draft when it is valid")
	c.Flags().String("token", "", "Bearer token for the create-listing API (http submit mode)")
}

// runValidate handles the validate command.
func runValidate(cmd *cobra.Command, args []string) error {
	values, err := readDraft(args[0])
	if err != nil {
		return err
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

	schema := listing.DefaultSchema()
	check, _ := cmd.Flags().GetBool("check-catalog")
	if check {
		c, report, err := loadCatalog(ctx, cfg.Catalog)
		if err != nil {
			return err
		}
		if !report.OK() {
			return fmt.Errorf("cannot check against the catalog: %s", report.Summary())
		}
		schema = schema.WithCatalog(c)
	}

	submit, _ := cmd.Flags().GetBool("submit")
	if !submit {
		if errs := schema.Validate(values); errs != nil {
			return errs.AppError()
		}
		draft, err := schema.Decode(values)
		if err != nil {
			return err
		}
		cmd.Printf("✓ %s is a valid listing: %q\n", args[0], draft.Title)
		return nil
	}

	form := listing.NewForm(schema)
	form.SetValues(values)
	token, _ := cmd.Flags().GetString("token")
	draft, err := form.Submit(ctx, draftSubmitter(cfg, token))
	switch {
	case errors.Is(err, listing.ErrInvalid):
		return form.Errors().AppError()
	case err != nil:
		return err
	}
	cmd.Printf("✓ Listing %q submitted.\n", draft.Title)
	return nil
}

// readDraft parses a YAML draft file into raw form values.
func readDraft(path string) (listing.Values, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read draft: %w", err)
	}
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse draft %s: %w", path, err)
	}
	return listing.ValuesFromMap(raw), nil
}

// draftSubmitter returns the configured submitter for headless submission.
func draftSubmitter(cfg *config.Config, token string) listing.Submitter {
	if cfg.Submit.Mode == config.SubmitModeHTTP {
		return listing.NewHTTPSubmitter(cfg.Submit.URL, cfg.Submit.Timeout, func() string { return token })
	}
	return listing.LogSubmitter{Logger: logging.Global()}
}
