package cli

import (
	"fmt"

	"github.com/alexanderramin/tripline/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.json>",
		Short: "Import a trip from an itinerary JSON document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := app.Import.ImportTrip(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %s [%s]: %d day(s), %d item(s)\n",
				res.Trip.Title, formatter.ShortID(res.Trip.ID), res.DayCount, res.ItemCount)
			return nil
		},
	}
}
