package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/carvoy/locmerge/internal/config"
	"github.com/carvoy/locmerge/pkg/catalog"
	"github.com/carvoy/locmerge/pkg/errors"
)

var searchCmd = &cobra.Command{
	Use:   "search <term>",
	Short: "Search the published catalog",
	Long: `Search queries the unified catalog by name, city, IATA code or
supplier spelling and prints the best matches as JSON. With --provider
and --pickup-id it looks up the single location holding that supplier
desk instead.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().StringP("catalog", "c", config.DefaultOutputPath, "catalog file to query")
	searchCmd.Flags().IntP("limit", "n", 10, "maximum number of results")
	searchCmd.Flags().String("provider", "", "look up by supplier tag (requires --pickup-id)")
	searchCmd.Flags().String("pickup-id", "", "look up by supplier pickup id (requires --provider)")
	searchCmd.MarkFlagsRequiredTogether("provider", "pickup-id")

	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	path, err := cmd.Flags().GetString("catalog")
	if err != nil {
		return err
	}
	if path == config.DefaultOutputPath {
		// Honor LOCMERGE_OUTPUT so search reads where update wrote.
		if configured := viper.GetString("output"); configured != "" {
			path = configured
		}
	}

	locations, err := catalog.Load(path)
	if err != nil {
		return err
	}

	provider, _ := cmd.Flags().GetString("provider")
	if provider != "" {
		pickupID, _ := cmd.Flags().GetString("pickup-id")
		loc, ok := catalog.ByProviderID(locations, provider, pickupID)
		if !ok {
			return fmt.Errorf("no location for %s pickup %s: %w", provider, pickupID, errors.ErrNotFound)
		}
		return printJSON(loc)
	}

	if len(args) == 0 || strings.TrimSpace(args[0]) == "" {
		return fmt.Errorf("search term required: %w", errors.ErrInvalidInput)
	}
	limit, _ := cmd.Flags().GetInt("limit")

	return printJSON(catalog.Search(locations, args[0], limit))
}

func printJSON(v any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "    ")
	return encoder.Encode(v)
}
