package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/tripline/internal/domain"
	"github.com/alexanderramin/tripline/internal/service"
)

// resolveTripID accepts a full trip ID, a unique ID prefix or an exact
// (case-insensitive) title.
func resolveTripID(ctx context.Context, app *App, input string) (string, error) {
	if input == "" {
		return "", fmt.Errorf("trip ID is required")
	}

	trips, err := app.Trips.List(ctx)
	if err != nil {
		return "", err
	}

	for _, t := range trips {
		if t.ID == input {
			return t.ID, nil
		}
	}

	var matches []string
	for _, t := range trips {
		if strings.HasPrefix(t.ID, input) {
			matches = append(matches, t.ID)
		}
	}
	if len(matches) == 0 {
		for _, t := range trips {
			if strings.EqualFold(t.Title, input) {
				matches = append(matches, t.ID)
			}
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("trip not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("trip %q is ambiguous (%d matches)", input, len(matches))
	}
}

// resolveDay turns "<trip> <day>" arguments into a DayRef. Days are
// numbered from 1 on the command line.
func resolveDay(ctx context.Context, app *App, tripArg, dayArg string) (service.DayRef, error) {
	tripID, err := resolveTripID(ctx, app, tripArg)
	if err != nil {
		return service.DayRef{}, err
	}
	n, err := strconv.Atoi(dayArg)
	if err != nil || n < 1 {
		return service.DayRef{}, fmt.Errorf("invalid day %q: use 1 for the first day", dayArg)
	}
	return service.DayRef{TripID: tripID, DayIndex: n - 1}, nil
}

// resolveItemID matches an item of day by full ID or unique prefix.
func resolveItemID(day *domain.Day, input string) (string, error) {
	if day.IndexOf(input) >= 0 {
		return input, nil
	}
	var matches []string
	for _, it := range day.Timeline {
		if strings.HasPrefix(it.ID, input) {
			matches = append(matches, it.ID)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("item not found on day %d: %q", day.Index+1, input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("item %q is ambiguous (%d matches)", input, len(matches))
	}
}

func parsePosition(arg string) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid position %q: use 0 for the top of the day", arg)
	}
	return n, nil
}
