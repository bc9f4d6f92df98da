package cli

import (
	"fmt"
	"strconv"

	"github.com/alexanderramin/tripline/internal/cli/formatter"
	"github.com/alexanderramin/tripline/internal/domain"
	"github.com/alexanderramin/tripline/internal/geo"
	"github.com/alexanderramin/tripline/internal/service"
	"github.com/spf13/cobra"
)

func newItemCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "item",
		Short: "Add, edit and rearrange timeline items",
	}

	cmd.AddCommand(
		newItemPlaceCmd(app),
		newItemMemoCmd(app),
		newItemRemoveCmd(app),
		newItemMoveCmd(app),
		newItemCopyCmd(app),
		newItemTimeCmd(app),
		newItemDwellCmd(app),
	)

	return cmd
}

func newItemPlaceCmd(app *App) *cobra.Command {
	var title, location string
	var at clockValue
	var lat, lng float64
	var dwell, position int

	cmd := &cobra.Command{
		Use:   "place <trip> <day>",
		Short: "Add a place to a day",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref, err := resolveDay(cmd.Context(), app, args[0], args[1])
			if err != nil {
				return err
			}
			item := domain.NewPlace("", at.String(), title, location)
			if cmd.Flags().Changed("lat") || cmd.Flags().Changed("lng") {
				if err := geo.ValidateCoordinatePair(lat, lng, "place"); err != nil {
					return err
				}
				item.SetCoordinates(lat, lng)
			}
			if cmd.Flags().Changed("dwell") {
				if dwell < 0 {
					return fmt.Errorf("dwell must not be negative")
				}
				item.Duration = domain.IntPtr(dwell)
			}

			day, err := app.Timeline.Add(cmd.Context(), ref, position, item)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatDay(day))
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Place name")
	cmd.Flags().Var(&at, "time", "Arrival time; blank lets the timeline derive it")
	cmd.Flags().StringVar(&location, "location", "", "Address or searchable place name")
	cmd.Flags().Float64Var(&lat, "lat", 0, "Latitude")
	cmd.Flags().Float64Var(&lng, "lng", 0, "Longitude")
	cmd.Flags().IntVar(&dwell, "dwell", domain.DefaultDwellMin, "Minutes spent at the place")
	cmd.Flags().IntVar(&position, "at", -1, "Insert position (0 = top, default appends)")
	_ = cmd.MarkFlagRequired("title")

	return cmd
}

func newItemMemoCmd(app *App) *cobra.Command {
	var position int

	cmd := &cobra.Command{
		Use:   "memo <trip> <day> <text>",
		Short: "Add a free-text memo",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref, err := resolveDay(cmd.Context(), app, args[0], args[1])
			if err != nil {
				return err
			}
			day, err := app.Timeline.Add(cmd.Context(), ref, position, domain.NewMemo("", args[2]))
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatDay(day))
			return nil
		},
	}

	cmd.Flags().IntVar(&position, "at", -1, "Insert position (0 = top, default appends)")
	return cmd
}

type dayItem struct {
	service.DayRef
	itemID string
}

// dayItemRunE resolves "<trip> <day> <item>" and hands the item ID to fn.
func dayItemRunE(app *App, fn func(cmd *cobra.Command, ref dayItem, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ref, err := resolveDay(cmd.Context(), app, args[0], args[1])
		if err != nil {
			return err
		}
		day, err := app.Timeline.Day(cmd.Context(), ref)
		if err != nil {
			return err
		}
		itemID, err := resolveItemID(day, args[2])
		if err != nil {
			return err
		}
		return fn(cmd, dayItem{DayRef: ref, itemID: itemID}, args[3:])
	}
}

func newItemRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <trip> <day> <item>",
		Short: "Remove an item",
		Args:  cobra.ExactArgs(3),
		RunE: dayItemRunE(app, func(cmd *cobra.Command, ref dayItem, _ []string) error {
			day, err := app.Timeline.Remove(cmd.Context(), ref.DayRef, ref.itemID)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatDay(day))
			return nil
		}),
	}
}

func newItemMoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "move <trip> <day> <item> <position>",
		Short: "Move an item; times are re-derived around its new place",
		Args:  cobra.ExactArgs(4),
		RunE: dayItemRunE(app, func(cmd *cobra.Command, ref dayItem, rest []string) error {
			pos, err := parsePosition(rest[0])
			if err != nil {
				return err
			}
			day, err := app.Timeline.Move(cmd.Context(), ref.DayRef, ref.itemID, pos)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatDay(day))
			return nil
		}),
	}
}

func newItemCopyCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "copy <trip> <day> <item>",
		Short: "Duplicate an item right after itself",
		Args:  cobra.ExactArgs(3),
		RunE: dayItemRunE(app, func(cmd *cobra.Command, ref dayItem, _ []string) error {
			copied, err := app.Timeline.Copy(cmd.Context(), ref.DayRef, ref.itemID)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Copied %s as %s\n", copied.Title, formatter.ShortID(copied.ID))
			return nil
		}),
	}
}

func newItemTimeCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "time <trip> <day> <item> <HH:MM>",
		Short: "Set the arrival time of a place",
		Args:  cobra.ExactArgs(4),
		RunE: dayItemRunE(app, func(cmd *cobra.Command, ref dayItem, rest []string) error {
			var at clockValue
			if err := at.Set(rest[0]); err != nil {
				return err
			}
			day, err := app.Timeline.Update(cmd.Context(), ref.DayRef, ref.itemID, func(it *domain.Item) {
				it.Time = at.String()
			})
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatDay(day))
			return nil
		}),
	}
}

func newItemDwellCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "dwell <trip> <day> <item> <minutes>",
		Short: "Set how long you stay at a place",
		Args:  cobra.ExactArgs(4),
		RunE: dayItemRunE(app, func(cmd *cobra.Command, ref dayItem, rest []string) error {
			minutes, err := strconv.Atoi(rest[0])
			if err != nil || minutes < 0 {
				return fmt.Errorf("invalid dwell %q: enter minutes", rest[0])
			}
			day, err := app.Timeline.Update(cmd.Context(), ref.DayRef, ref.itemID, func(it *domain.Item) {
				it.Duration = domain.IntPtr(minutes)
			})
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatDay(day))
			return nil
		}),
	}
}
