package cli

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/tripline/internal/cli/formatter"
	"github.com/alexanderramin/tripline/internal/contract"
	"github.com/alexanderramin/tripline/internal/planner"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

func newRouteCmd(app *App) *cobra.Command {
	var at clockValue
	var pick int

	cmd := &cobra.Command{
		Use:   "route <trip> <day> <position>",
		Short: "Search transit between the places around a position and insert a route",
		Long: "Searches a route from the place before <position> to the place after it.\n" +
			"Use --pick to insert a candidate without prompting (1 = recommended).",
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ref, err := resolveDay(ctx, app, args[0], args[1])
			if err != nil {
				return err
			}
			pos, err := parsePosition(args[2])
			if err != nil {
				return err
			}

			req := contract.NewRouteSearchRequest(ref.TripID, ref.DayIndex, pos)
			req.TimeHint = at.String()

			stop := func() {}
			if app.interactive() {
				stop = formatter.StartSpinner(cmd.ErrOrStderr(), "Searching routes…")
			}
			res, err := app.Routes.Search(ctx, req)
			stop()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprint(out, formatter.FormatSearchResult(res))
			if res.Status != contract.StatusCandidates {
				return nil
			}

			choice := pick - 1
			if pick == 0 {
				if !app.interactive() {
					fmt.Fprintln(out, formatter.Dim("\nRe-run with --pick N to insert a route."))
					return nil
				}
				choice = 0
				if err := candidateForm(res.Candidates, &choice).Run(); err != nil {
					if errors.Is(err, huh.ErrUserAborted) {
						return nil
					}
					return err
				}
			}
			if choice == skipChoice {
				return nil
			}
			if choice < 0 || choice >= len(res.Candidates) {
				return fmt.Errorf("--pick %d: only %d candidate(s)", pick, len(res.Candidates))
			}

			resp, err := app.Routes.Insert(ctx, contract.RouteInsertRequest{
				TripID:         ref.TripID,
				DayIndex:       ref.DayIndex,
				InsertionIndex: res.InsertionIndex,
				Revision:       res.Revision,
				Candidate:      res.Candidates[choice],
			})
			if errors.Is(err, planner.ErrStaleSearch) {
				return fmt.Errorf("the day changed while searching; run the search again")
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "\nInserted %s\n\n", resp.Item.Title)
			fmt.Fprint(out, formatter.FormatDay(resp.Day))
			return nil
		},
	}

	cmd.Flags().Var(&at, "at", "Departure time; defaults to when the previous item ends")
	cmd.Flags().IntVar(&pick, "pick", 0, "Insert candidate N without prompting")

	return cmd
}
