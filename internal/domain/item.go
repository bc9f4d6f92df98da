package domain

import (
	"fmt"

	"github.com/alexanderramin/tripline/internal/geo"
)

// DefaultDwellMin is the time spent at an anchor when Duration is unset.
const DefaultDwellMin = 30

// MemoTag marks a free-text memo item.
const MemoTag = "메모"

// Item is one entry of a day's timeline. Kind selects which payload is
// populated: Place for places, Transit for transit legs, neither for memos.
type Item struct {
	ID   string   `json:"id"`
	Kind ItemKind `json:"kind"`

	// Time is an "HH:MM" clock for places and a duration text such as
	// "1시간 30분" for transit legs.
	Time     string `json:"time"`
	Title    string `json:"title"`
	Location string `json:"location,omitempty"`
	Icon     string `json:"icon,omitempty"`
	Tag      string `json:"tag,omitempty"`
	Note     string `json:"note,omitempty"`

	// Duration is the dwell time at a place in minutes.
	Duration *int `json:"duration,omitempty"`

	Place   *PlaceDetail   `json:"place,omitempty"`
	Transit *TransitDetail `json:"transit,omitempty"`
}

// PlaceDetail carries the place-only fields of an item.
type PlaceDetail struct {
	Lat         *float64     `json:"lat,omitempty"`
	Lng         *float64     `json:"lng,omitempty"`
	Image       string       `json:"image,omitempty"`
	Expenses    []Expense    `json:"expenses,omitempty"`
	Attachments []Attachment `json:"attachments,omitempty"`
	Memories    []Memory     `json:"memories,omitempty"`
}

type Expense struct {
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Currency    string  `json:"currency,omitempty"`
}

type Attachment struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

type Memory struct {
	Text  string `json:"text,omitempty"`
	Photo string `json:"photo,omitempty"`
	Date  string `json:"date,omitempty"`
}

// TransitDetail carries the transit-only fields of an item.
type TransitDetail struct {
	Type          TransitType    `json:"transitType"`
	Info          TransitInfo    `json:"transitInfo"`
	FixedDuration bool           `json:"fixedDuration,omitempty"`
	Steps         []DetailedStep `json:"detailedSteps,omitempty"`
	Flight        *FlightInfo    `json:"flightInfo,omitempty"`
}

// TransitInfo holds the leg endpoints. Start and End are clock strings.
type TransitInfo struct {
	Start         string `json:"start,omitempty"`
	End           string `json:"end,omitempty"`
	DepStop       string `json:"depStop,omitempty"`
	ArrStop       string `json:"arrStop,omitempty"`
	Headsign      string `json:"headsign,omitempty"`
	TransferCount *int   `json:"transferCount,omitempty"`
}

// FlightInfo is only meaningful on airplane legs.
type FlightInfo struct {
	Airline      string `json:"airline,omitempty"`
	FlightNumber string `json:"flightNumber,omitempty"`
	DepAirport   string `json:"depAirport,omitempty"`
	ArrAirport   string `json:"arrAirport,omitempty"`
	Terminal     string `json:"terminal,omitempty"`
	Gate         string `json:"gate,omitempty"`
}

// NewPlace builds a place anchor.
func NewPlace(id, clockTime, title, location string) *Item {
	return &Item{
		ID:       id,
		Kind:     KindPlace,
		Time:     clockTime,
		Title:    title,
		Location: location,
		Icon:     "📍",
		Place:    &PlaceDetail{},
	}
}

// NewMemo builds a memo item holding free text.
func NewMemo(id, text string) *Item {
	return &Item{
		ID:    id,
		Kind:  KindMemo,
		Title: text,
		Icon:  "📝",
		Tag:   MemoTag,
	}
}

// NewTransit builds a transit leg of the given type with duration text.
func NewTransit(id string, t TransitType, title, durationText string) *Item {
	return &Item{
		ID:      id,
		Kind:    KindTransit,
		Time:    durationText,
		Title:   title,
		Icon:    t.Icon(),
		Tag:     t.Label(),
		Transit: &TransitDetail{Type: t},
	}
}

func (it *Item) IsTransit() bool { return it.Kind == KindTransit }
func (it *Item) IsMemo() bool    { return it.Kind == KindMemo }

// IsAnchor reports whether the item is a place that opens a timeline group.
func (it *Item) IsAnchor() bool { return it.Kind == KindPlace }

// Dwell returns the minutes spent at the item, defaulting to DefaultDwellMin.
func (it *Item) Dwell() int {
	return IntFromPtrWithDefault(DefaultDwellMin, it.Duration)
}

// Coordinates returns the place's coordinates when both are set.
func (it *Item) Coordinates() (*geo.LatLng, bool) {
	if it.Kind != KindPlace || it.Place == nil || it.Place.Lat == nil || it.Place.Lng == nil {
		return nil, false
	}
	return &geo.LatLng{Lat: *it.Place.Lat, Lng: *it.Place.Lng}, true
}

// SetCoordinates stores a coordinate pair on a place.
func (it *Item) SetCoordinates(lat, lng float64) {
	if it.Place == nil {
		it.Place = &PlaceDetail{}
	}
	it.Place.Lat = &lat
	it.Place.Lng = &lng
}

// PlaceName returns the best human-readable name for routing lookups.
func (it *Item) PlaceName() string {
	return CoalesceStr(it.Location, it.Title)
}

// Validate checks that the payload matches the kind.
func (it *Item) Validate() error {
	switch it.Kind {
	case KindPlace:
		if it.Transit != nil {
			return fmt.Errorf("item %s: place carries transit payload", it.ID)
		}
	case KindTransit:
		if it.Transit == nil {
			return fmt.Errorf("item %s: transit payload missing", it.ID)
		}
		if it.Place != nil {
			return fmt.Errorf("item %s: transit carries place payload", it.ID)
		}
		if !it.Transit.Type.Valid() {
			return fmt.Errorf("item %s: invalid transit type %q", it.ID, it.Transit.Type)
		}
		if it.Transit.Flight != nil && it.Transit.Type != TransitAirplane {
			return fmt.Errorf("item %s: flight info on %s leg", it.ID, it.Transit.Type)
		}
	case KindMemo:
		if it.Place != nil || it.Transit != nil {
			return fmt.Errorf("item %s: memo carries a payload", it.ID)
		}
	default:
		return fmt.Errorf("item %s: unknown kind %q", it.ID, it.Kind)
	}
	if it.Duration != nil && *it.Duration < 0 {
		return fmt.Errorf("item %s: negative duration", it.ID)
	}
	return nil
}

// Clone returns a deep copy of the item.
func (it *Item) Clone() *Item {
	c := *it
	if it.Duration != nil {
		d := *it.Duration
		c.Duration = &d
	}
	if it.Place != nil {
		p := *it.Place
		if it.Place.Lat != nil {
			lat := *it.Place.Lat
			p.Lat = &lat
		}
		if it.Place.Lng != nil {
			lng := *it.Place.Lng
			p.Lng = &lng
		}
		p.Expenses = append([]Expense(nil), it.Place.Expenses...)
		p.Attachments = append([]Attachment(nil), it.Place.Attachments...)
		p.Memories = append([]Memory(nil), it.Place.Memories...)
		c.Place = &p
	}
	if it.Transit != nil {
		tr := *it.Transit
		if it.Transit.Info.TransferCount != nil {
			n := *it.Transit.Info.TransferCount
			tr.Info.TransferCount = &n
		}
		tr.Steps = CloneSteps(it.Transit.Steps)
		if it.Transit.Flight != nil {
			f := *it.Transit.Flight
			tr.Flight = &f
		}
		c.Transit = &tr
	}
	return &c
}

// InferKind classifies a record that predates the kind field: transit when
// flagged as such, memo when tagged "메모", otherwise place.
func InferKind(isTransit bool, tag string) ItemKind {
	switch {
	case isTransit:
		return KindTransit
	case tag == MemoTag:
		return KindMemo
	default:
		return KindPlace
	}
}
