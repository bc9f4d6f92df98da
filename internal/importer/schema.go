package importer

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/alexanderramin/tripline/internal/domain"
)

// TripDocument is the exported itinerary format: days of loosely typed
// items told apart by isTransit and tag.
type TripDocument struct {
	Title     string        `json:"title"`
	StartDate string        `json:"startDate"`
	EndDate   string        `json:"endDate,omitempty"`
	Days      []DayDocument `json:"days"`
}

// DayDocument is one day. Date may be omitted; such days are placed by
// their position in the document.
type DayDocument struct {
	Date     string         `json:"date,omitempty"`
	Timeline []ItemDocument `json:"timeline"`
}

// ItemDocument carries the union of place, transit and memo fields.
type ItemDocument struct {
	ID        string `json:"id,omitempty"`
	Time      string `json:"time"`
	Title     string `json:"title"`
	Location  string `json:"location,omitempty"`
	Icon      string `json:"icon,omitempty"`
	Tag       string `json:"tag,omitempty"`
	Note      string `json:"note,omitempty"`
	IsTransit bool   `json:"isTransit"`
	Duration  *int   `json:"duration,omitempty"`

	Lat         *float64            `json:"lat,omitempty"`
	Lng         *float64            `json:"lng,omitempty"`
	Image       string              `json:"image,omitempty"`
	Expenses    []domain.Expense    `json:"expenses,omitempty"`
	Attachments []domain.Attachment `json:"attachments,omitempty"`
	Memories    []domain.Memory     `json:"memories,omitempty"`

	TransitType   string                `json:"transitType,omitempty"`
	TransitInfo   *domain.TransitInfo   `json:"transitInfo,omitempty"`
	FixedDuration bool                  `json:"fixedDuration,omitempty"`
	DetailedSteps []domain.DetailedStep `json:"detailedSteps,omitempty"`
	FlightInfo    *domain.FlightInfo    `json:"flightInfo,omitempty"`
}

// ParseDocument decodes an itinerary document.
func ParseDocument(r io.Reader) (*TripDocument, error) {
	var doc TripDocument
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("parsing itinerary: %w", err)
	}
	return &doc, nil
}

// LoadDocument reads and parses an itinerary JSON file.
func LoadDocument(path string) (*TripDocument, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ParseDocument(f)
}
