package cli

import (
	"fmt"

	"github.com/alexanderramin/tripline/internal/cli/formatter"
	"github.com/alexanderramin/tripline/internal/domain"
	"github.com/alexanderramin/tripline/internal/service"
	"github.com/spf13/cobra"
)

func newTransitCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "transit",
		Short: "Enter transit legs by hand",
	}
	cmd.AddCommand(newTransitCheckCmd(app), newTransitAddCmd(app))
	return cmd
}

func newTransitCheckCmd(app *App) *cobra.Command {
	var start, end clockValue

	cmd := &cobra.Command{
		Use:   "check <trip> <day> <position>",
		Short: "Compute a leg's duration and warnings without saving it",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref, err := resolveDay(cmd.Context(), app, args[0], args[1])
			if err != nil {
				return err
			}
			pos, err := parsePosition(args[2])
			if err != nil {
				return err
			}
			check, err := app.Timeline.CheckTransit(cmd.Context(), ref, pos, start.String(), end.String())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatTransitCheck(check))
			return nil
		},
	}

	cmd.Flags().Var(&start, "start", "Departure time")
	cmd.Flags().Var(&end, "end", "Arrival time")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")

	return cmd
}

func newTransitAddCmd(app *App) *cobra.Command {
	var title string
	var start, end clockValue
	typ := transitTypeValue{t: domain.TransitTrain}

	cmd := &cobra.Command{
		Use:   "add <trip> <day> <position>",
		Short: "Insert a hand-typed transit leg",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref, err := resolveDay(cmd.Context(), app, args[0], args[1])
			if err != nil {
				return err
			}
			pos, err := parsePosition(args[2])
			if err != nil {
				return err
			}
			item, check, err := app.Timeline.AddTransit(cmd.Context(), service.AddTransitRequest{
				Day: ref, Position: pos, Type: typ.t, Title: title, Start: start.String(), End: end.String(),
			})
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprint(out, formatter.FormatTransitCheck(check))
			fmt.Fprintf(out, "Added %s [%s]\n", item.Title, formatter.ShortID(item.ID))
			return nil
		},
	}

	cmd.Flags().Var(&typ, "type", "airplane, train, bus, car or walk")
	cmd.Flags().StringVar(&title, "title", "", "Label shown on the leg")
	cmd.Flags().Var(&start, "start", "Departure time")
	cmd.Flags().Var(&end, "end", "Arrival time")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")

	return cmd
}
