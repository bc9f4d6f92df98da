package cli

import (
	"time"

	"github.com/alexanderramin/tripline/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Trips    service.TripService
	Timeline service.TimelineService
	Routes   service.RouteService
	Import   service.ImportService

	// IsInteractive reports whether prompts and spinners may be shown.
	IsInteractive func() bool
	Now           func() time.Time
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

// NewRootCmd creates the top-level "tripline" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "tripline",
		Short:         "Trip itinerary planner with transit routing",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newTripCmd(app),
		newDayCmd(app),
		newItemCmd(app),
		newTransitCmd(app),
		newRouteCmd(app),
		newImportCmd(app),
	)

	return root
}
