package cli

import (
	"fmt"

	"github.com/alexanderramin/tripline/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newDayCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "day",
		Short: "Inspect a day's timeline",
	}
	cmd.AddCommand(newDayShowCmd(app))
	return cmd
}

func newDayShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <trip> <day>",
		Short: "Show the timeline of one day (days start at 1)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref, err := resolveDay(cmd.Context(), app, args[0], args[1])
			if err != nil {
				return err
			}
			day, err := app.Timeline.Day(cmd.Context(), ref)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatDay(day))
			return nil
		},
	}
}
