package importer

import (
	"fmt"
	"time"

	"github.com/alexanderramin/tripline/internal/domain"
	"github.com/alexanderramin/tripline/internal/timeline"
)

// Result is a converted document ready for persistence.
type Result struct {
	Trip      *domain.Trip
	ItemCount int
}

// Convert builds a trip from a validated document. Each day is reordered
// so imported times are consistent. Call ValidateDocument first.
func Convert(doc *TripDocument, newID domain.IDGenerator) (*Result, error) {
	start, end, errs := documentRange(doc)
	if len(errs) > 0 {
		return nil, errs[0]
	}
	trip, err := domain.NewTrip(newID(), doc.Title, start, end, "", "", newID)
	if err != nil {
		return nil, err
	}

	byDate := make(map[string]*domain.Day, len(trip.Days))
	for _, d := range trip.Days {
		byDate[d.Date] = d
	}

	res := &Result{Trip: trip}
	for i, dd := range doc.Days {
		day := trip.Days[i]
		if dd.Date != "" {
			var ok bool
			if day, ok = byDate[dd.Date]; !ok {
				return nil, fmt.Errorf("day %s is outside the trip", dd.Date)
			}
		}

		used := make(map[string]bool)
		for _, it := range day.Timeline {
			used[it.ID] = true
		}
		for _, idoc := range dd.Timeline {
			item := convertItem(idoc)
			if item.ID == "" || used[item.ID] {
				item.ID = newID()
			}
			used[item.ID] = true
			day.Timeline = append(day.Timeline, item)
			res.ItemCount++
		}
		timeline.Reorder(day)
		if err := day.Validate(); err != nil {
			return nil, err
		}
	}
	trip.UpdatedAt = time.Now().UTC()
	return res, nil
}

func convertItem(d ItemDocument) *domain.Item {
	kind := domain.InferKind(d.IsTransit, d.Tag)
	item := &domain.Item{
		ID:       d.ID,
		Kind:     kind,
		Time:     d.Time,
		Title:    d.Title,
		Location: d.Location,
		Icon:     d.Icon,
		Tag:      d.Tag,
		Note:     d.Note,
		Duration: d.Duration,
	}

	switch kind {
	case domain.KindPlace:
		item.Place = &domain.PlaceDetail{
			Lat:         d.Lat,
			Lng:         d.Lng,
			Image:       d.Image,
			Expenses:    d.Expenses,
			Attachments: d.Attachments,
			Memories:    d.Memories,
		}
	case domain.KindTransit:
		t := resolveTransitType(d)
		tr := &domain.TransitDetail{
			Type:          t,
			FixedDuration: d.FixedDuration,
			Steps:         d.DetailedSteps,
		}
		if d.TransitInfo != nil {
			tr.Info = *d.TransitInfo
		}
		if t == domain.TransitAirplane {
			tr.Flight = d.FlightInfo
		}
		item.Transit = tr
		item.Duration = nil
		if item.Icon == "" {
			item.Icon = t.Icon()
		}
	case domain.KindMemo:
		item.Duration = nil
	}
	return item
}

var transitByLabel = func() map[string]domain.TransitType {
	m := make(map[string]domain.TransitType)
	for _, t := range []domain.TransitType{
		domain.TransitAirplane, domain.TransitTrain, domain.TransitBus, domain.TransitCar, domain.TransitWalk,
	} {
		m[t.Label()] = t
		m[string(t)] = t
	}
	return m
}()

// resolveTransitType reads transitType, then the tag, then the first ride
// among the steps. Legs with nothing to go on are walks.
func resolveTransitType(d ItemDocument) domain.TransitType {
	if t := domain.TransitType(d.TransitType); t.Valid() {
		return t
	}
	if t, ok := transitByLabel[d.Tag]; ok {
		return t
	}
	for _, s := range d.DetailedSteps {
		if s.Type != "" && s.Type != domain.StepWalk {
			return s.Type.TransitType()
		}
	}
	return domain.TransitWalk
}
