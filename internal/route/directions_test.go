package route

import (
	"encoding/json"
	"os"
	"testing"
	_ "time/tzdata"

	"github.com/alexanderramin/tripline/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadDirections(t *testing.T) DirectionsRoute {
	t.Helper()
	data, err := os.ReadFile("testdata/directions_transit.json")
	require.NoError(t, err)
	var resp DirectionsResponse
	require.NoError(t, json.Unmarshal(data, &resp))
	require.Len(t, resp.Routes, 1)
	return resp.Routes[0]
}

func TestFromDirections_Transit(t *testing.T) {
	r, err := FromDirections(loadDirections(t))
	require.NoError(t, err)

	assert.Equal(t, SourceDirections, r.Source)
	assert.Equal(t, ModeTransit, r.Mode)
	assert.True(t, r.FixedDuration)
	assert.Equal(t, 24, r.TotalDurationMinutes)
	assert.Equal(t, "09:30", r.DepartureTime)
	assert.Equal(t, "09:54", r.ArrivalTime)
	assert.Equal(t, 0, r.TransferCount)

	require.Len(t, r.Steps, 3)

	walk := r.Steps[0]
	assert.Equal(t, domain.StepWalk, walk.Type)
	assert.Equal(t, "Walk to Tokyo Marunouchi exit", walk.Title)
	assert.Equal(t, 3, walk.Info.Duration)

	ride := r.Steps[1]
	assert.Equal(t, domain.StepSubway, ride.Type)
	assert.Equal(t, "M", ride.Title)
	assert.Equal(t, "19분", ride.Time, "step time is duration text")
	assert.Equal(t, "09:33", ride.Info.DepTime)
	assert.Equal(t, "09:52", ride.Info.ArrTime)
	assert.Equal(t, "Tokyo", ride.Info.DepStop)
	assert.Equal(t, "Shinjuku", ride.Info.ArrStop)
	assert.Equal(t, 19, ride.Info.Duration)
	require.NotNil(t, ride.Info.StopCount)
	assert.Equal(t, 10, *ride.Info.StopCount)
	assert.Equal(t, "#F62E36", ride.Color)
	assert.Equal(t, "#FFFFFF", ride.TextColor)

	assert.Equal(t, "M", r.Summary.Title)
	assert.Equal(t, domain.StepSubway.Icon(), r.Summary.Icon)
}

func TestFromDirections_LineNameFallbacks(t *testing.T) {
	ride := func(short, name, vehicle string) DirectionsStep {
		return DirectionsStep{
			TravelMode: TravelTransit,
			Duration:   TextValue{Value: 600},
			TransitDetails: &TransitDetails{
				Line: TransitLine{ShortName: short, Name: name, Vehicle: Vehicle{Type: vehicle}},
			},
		}
	}
	route := DirectionsRoute{Legs: []DirectionsLeg{{
		Duration: TextValue{Value: 1800},
		Steps: []DirectionsStep{
			ride("", "Airport Limousine", "BUS"),
			ride("", "", "BUS"),
			ride("", "", "HEAVY_RAIL"),
		},
	}}}

	r, err := FromDirections(route)
	require.NoError(t, err)

	assert.Equal(t, "Airport Limousine", r.Steps[0].Title)
	assert.Equal(t, "대중교통", r.Steps[1].Title)
	assert.Equal(t, domain.StepTrain, r.Steps[2].Type)
	assert.Equal(t, "버스로 이동", r.Summary.Title, "no short names: majority vehicle wins")
	assert.Equal(t, 2, r.TransferCount)
	assert.Empty(t, r.Steps[0].Color)
}

func TestFromDirections_SummaryJoinsShortNames(t *testing.T) {
	ride := func(short, vehicle string) DirectionsStep {
		return DirectionsStep{
			TravelMode:     TravelTransit,
			TransitDetails: &TransitDetails{Line: TransitLine{ShortName: short, Vehicle: Vehicle{Type: vehicle}}},
		}
	}
	route := DirectionsRoute{Legs: []DirectionsLeg{{Steps: []DirectionsStep{
		ride("JY", "HEAVY_RAIL"),
		{TravelMode: TravelWalking, HTMLInstructions: "transfer"},
		ride("G", "SUBWAY"),
	}}}}

	r, err := FromDirections(route)
	require.NoError(t, err)
	assert.Equal(t, "JY→G", r.Summary.Title)
}

func TestFromDirections_WalkOnly(t *testing.T) {
	route := DirectionsRoute{Legs: []DirectionsLeg{{
		StartAddress: "Hotel",
		EndAddress:   "Museum",
		Duration:     TextValue{Value: 1250},
		Steps: []DirectionsStep{
			{TravelMode: TravelWalking, HTMLInstructions: "Head <b>north</b>", Duration: TextValue{Value: 600}},
			{TravelMode: TravelWalking, HTMLInstructions: "Turn left", Duration: TextValue{Value: 650}},
		},
	}}}

	r, err := FromDirections(route)
	require.NoError(t, err)

	assert.Equal(t, ModeWalk, r.Mode)
	require.Len(t, r.Steps, 1, "walk-only legs collapse into one synthetic step")
	assert.Equal(t, domain.StepWalk, r.Steps[0].Type)
	assert.Equal(t, "Hotel", r.Steps[0].Info.DepStop)
	assert.Equal(t, "Museum", r.Steps[0].Info.ArrStop)
	assert.Equal(t, 21, r.TotalDurationMinutes)
	assert.Equal(t, "도보로 이동", r.Summary.Title)
	assert.Equal(t, domain.TransitWalk, r.TransitType())
}

func TestFromDirections_NoLegs(t *testing.T) {
	_, err := FromDirections(DirectionsRoute{})
	assert.ErrorIs(t, err, ErrEmptyRoute)
}

func TestVehicleStepType(t *testing.T) {
	assert.Equal(t, domain.StepSubway, VehicleStepType("subway"))
	assert.Equal(t, domain.StepTrain, VehicleStepType("HIGH_SPEED_TRAIN"))
	assert.Equal(t, domain.StepShip, VehicleStepType("FERRY"))
	assert.Equal(t, domain.StepBus, VehicleStepType("CABLE_CAR"))
}

func TestStripMarkup(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"plain", "plain"},
		{"Turn <b>right</b> onto <b>Main&nbsp;St</b>", "Turn right onto Main St"},
		{"Walk<div>Destination on the left</div>", "Walk Destination on the left"},
		{"", ""},
		{"A &amp; B", "A & B"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, StripMarkup(tt.in))
	}
}
