package cli

import (
	"fmt"
	"time"

	"github.com/alexanderramin/tripline/internal/cli/formatter"
	"github.com/alexanderramin/tripline/internal/domain"
	"github.com/alexanderramin/tripline/internal/service"
	"github.com/spf13/cobra"
)

func newTripCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trip",
		Short: "Manage trips",
	}

	cmd.AddCommand(
		newTripAddCmd(app),
		newTripListCmd(app),
		newTripShowCmd(app),
		newTripRenameCmd(app),
		newTripResizeCmd(app),
		newTripRemoveCmd(app),
	)

	return cmd
}

func parseDate(flag, value string) (time.Time, error) {
	d, err := time.Parse(domain.DateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid %s date %q (expected YYYY-MM-DD)", flag, value)
	}
	return d, nil
}

func newTripAddCmd(app *App) *cobra.Command {
	var title, start, end, home, depart string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a trip with one empty day per date",
		RunE: func(cmd *cobra.Command, args []string) error {
			startDate, err := parseDate("start", start)
			if err != nil {
				return err
			}
			endDate := startDate
			if end != "" {
				if endDate, err = parseDate("end", end); err != nil {
					return err
				}
			}

			trip, err := app.Trips.Create(cmd.Context(), service.CreateTripRequest{
				Title: title, Start: startDate, End: endDate, Home: home, DepartTime: depart,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created trip %s [%s] with %d day(s)\n",
				trip.Title, formatter.ShortID(trip.ID), len(trip.Days))
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Trip title")
	cmd.Flags().StringVar(&start, "start", "", "First day (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "Last day (YYYY-MM-DD, defaults to start)")
	cmd.Flags().StringVar(&home, "home", "", "Departure address; adds a start anchor on day 1")
	cmd.Flags().StringVar(&depart, "depart", "", "Departure time from home (HH:MM)")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("start")

	return cmd
}

func newTripListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List trips, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			trips, err := app.Trips.List(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatTripList(trips, app.now()))
			return nil
		},
	}
}

func newTripShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <trip>",
		Short: "Show a trip and its days",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveTripID(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}
			trip, err := app.Trips.Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatTrip(trip))
			return nil
		},
	}
}

func newTripRenameCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rename <trip> <title>",
		Short: "Change a trip title",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveTripID(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}
			if err := app.Trips.Rename(cmd.Context(), id, args[1]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Renamed trip to %s\n", args[1])
			return nil
		},
	}
}

func newTripResizeCmd(app *App) *cobra.Command {
	var start, end string

	cmd := &cobra.Command{
		Use:   "resize <trip>",
		Short: "Change the trip dates; days outside the new range are dropped",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveTripID(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}
			startDate, err := parseDate("start", start)
			if err != nil {
				return err
			}
			endDate, err := parseDate("end", end)
			if err != nil {
				return err
			}
			trip, err := app.Trips.Resize(cmd.Context(), id, startDate, endDate)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Trip %s now runs %s\n",
				trip.Title, formatter.DateRange(trip.StartDate, trip.EndDate))
			return nil
		},
	}

	cmd.Flags().StringVar(&start, "start", "", "First day (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "Last day (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")

	return cmd
}

func newTripRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <trip>",
		Short: "Delete a trip and all its days",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveTripID(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}
			if err := app.Trips.Delete(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed trip %s\n", formatter.ShortID(id))
			return nil
		},
	}
}
