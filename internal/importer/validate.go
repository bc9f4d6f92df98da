package importer

import (
	"fmt"
	"time"

	"github.com/alexanderramin/tripline/internal/domain"
	"github.com/alexanderramin/tripline/internal/geo"
)

// ValidateDocument checks the document before conversion and returns
// every problem found. Clock and duration strings are not checked: the
// timeline engine tolerates malformed times.
func ValidateDocument(doc *TripDocument) []error {
	var errs []error

	if doc.Title == "" {
		errs = append(errs, fmt.Errorf("title is required"))
	}
	start, end, rangeErrs := documentRange(doc)
	errs = append(errs, rangeErrs...)

	seen := make(map[string]bool)
	for i, d := range doc.Days {
		prefix := fmt.Sprintf("days[%d]", i)
		if d.Date != "" {
			date, err := time.Parse(domain.DateLayout, d.Date)
			switch {
			case err != nil:
				errs = append(errs, fmt.Errorf("%s.date: invalid date format %q (expected YYYY-MM-DD)", prefix, d.Date))
			case !start.IsZero() && (date.Before(start) || date.After(end)):
				errs = append(errs, fmt.Errorf("%s.date %s is outside the trip", prefix, d.Date))
			case seen[d.Date]:
				errs = append(errs, fmt.Errorf("%s.date: duplicate date %s", prefix, d.Date))
			}
			seen[d.Date] = true
		}

		ids := make(map[string]bool)
		for j, it := range d.Timeline {
			errs = append(errs, validateItem(fmt.Sprintf("%s.timeline[%d]", prefix, j), it, ids)...)
		}
	}

	if !start.IsZero() {
		if span := int(end.Sub(start).Hours()/24) + 1; len(doc.Days) > span {
			errs = append(errs, fmt.Errorf("document has %d days but the trip spans %d", len(doc.Days), span))
		}
	}
	return errs
}

// documentRange resolves the trip dates. A missing endDate extends the
// trip over every listed day.
func documentRange(doc *TripDocument) (time.Time, time.Time, []error) {
	if doc.StartDate == "" {
		return time.Time{}, time.Time{}, []error{fmt.Errorf("startDate is required")}
	}
	start, err := time.Parse(domain.DateLayout, doc.StartDate)
	if err != nil {
		return time.Time{}, time.Time{}, []error{fmt.Errorf("startDate: invalid date format %q (expected YYYY-MM-DD)", doc.StartDate)}
	}
	if doc.EndDate == "" {
		return start, start.AddDate(0, 0, max(len(doc.Days)-1, 0)), nil
	}
	end, err := time.Parse(domain.DateLayout, doc.EndDate)
	if err != nil {
		return time.Time{}, time.Time{}, []error{fmt.Errorf("endDate: invalid date format %q (expected YYYY-MM-DD)", doc.EndDate)}
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, []error{fmt.Errorf("endDate %s is before startDate %s", doc.EndDate, doc.StartDate)}
	}
	return start, end, nil
}

func validateItem(prefix string, it ItemDocument, ids map[string]bool) []error {
	var errs []error

	if it.ID != "" {
		if ids[it.ID] {
			errs = append(errs, fmt.Errorf("%s.id: duplicate id %q", prefix, it.ID))
		}
		ids[it.ID] = true
	}
	if it.Duration != nil && *it.Duration < 0 {
		errs = append(errs, fmt.Errorf("%s.duration must not be negative", prefix))
	}
	if (it.Lat == nil) != (it.Lng == nil) {
		errs = append(errs, fmt.Errorf("%s: lat and lng must be given together", prefix))
	} else if it.Lat != nil {
		if err := geo.ValidateCoordinatePair(*it.Lat, *it.Lng, prefix); err != nil {
			errs = append(errs, err)
		}
	}

	if !it.IsTransit {
		return errs
	}
	if it.TransitType != "" && !domain.TransitType(it.TransitType).Valid() {
		errs = append(errs, fmt.Errorf("%s.transitType: invalid value %q", prefix, it.TransitType))
	}
	if it.FlightInfo != nil && resolveTransitType(it) != domain.TransitAirplane {
		errs = append(errs, fmt.Errorf("%s.flightInfo is only allowed on airplane legs", prefix))
	}
	for k, s := range it.DetailedSteps {
		if s.Info.Duration < 0 {
			errs = append(errs, fmt.Errorf("%s.detailedSteps[%d].transitInfo.duration must not be negative", prefix, k))
		}
	}
	return errs
}
