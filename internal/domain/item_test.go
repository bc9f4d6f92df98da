package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestItem_KindPredicates(t *testing.T) {
	place := NewPlace("p1", "09:00", "Museum", "")
	memo := NewMemo("m1", "bring umbrella")
	leg := NewTransit("t1", TransitBus, "Bus 100", "20분")

	assert.True(t, place.IsAnchor())
	assert.False(t, place.IsTransit())
	assert.True(t, memo.IsMemo())
	assert.False(t, memo.IsAnchor(), "memos never open a group")
	assert.Equal(t, MemoTag, memo.Tag)
	assert.True(t, leg.IsTransit())
	assert.Equal(t, "버스", leg.Tag)
}

func TestItem_DwellDefault(t *testing.T) {
	place := NewPlace("p1", "09:00", "Museum", "")
	assert.Equal(t, DefaultDwellMin, place.Dwell())

	place.Duration = IntPtr(45)
	assert.Equal(t, 45, place.Dwell())

	place.Duration = IntPtr(0)
	assert.Equal(t, 0, place.Dwell(), "explicit zero is kept")
}

func TestItem_Coordinates(t *testing.T) {
	place := NewPlace("p1", "09:00", "Museum", "")
	_, ok := place.Coordinates()
	assert.False(t, ok)

	place.SetCoordinates(35.1, 139.2)
	p, ok := place.Coordinates()
	require.True(t, ok)
	assert.Equal(t, 35.1, p.Lat)
	assert.Equal(t, 139.2, p.Lng)

	memo := NewMemo("m1", "x")
	_, ok = memo.Coordinates()
	assert.False(t, ok)
}

func TestItem_Validate(t *testing.T) {
	assert.NoError(t, NewPlace("p1", "09:00", "A", "").Validate())
	assert.NoError(t, NewMemo("m1", "x").Validate())
	assert.NoError(t, NewTransit("t1", TransitWalk, "walk", "5분").Validate())

	missing := &Item{ID: "t2", Kind: KindTransit}
	assert.Error(t, missing.Validate())

	badType := NewTransit("t3", TransitType("rocket"), "x", "5분")
	assert.Error(t, badType.Validate())

	flightOnBus := NewTransit("t4", TransitBus, "x", "5분")
	flightOnBus.Transit.Flight = &FlightInfo{FlightNumber: "KE701"}
	assert.Error(t, flightOnBus.Validate())

	memoWithPayload := NewMemo("m2", "x")
	memoWithPayload.Place = &PlaceDetail{}
	assert.Error(t, memoWithPayload.Validate())

	unknown := &Item{ID: "u1", Kind: "hotel"}
	assert.Error(t, unknown.Validate())
}

func TestItem_CloneIsDeep(t *testing.T) {
	leg := NewTransit("t1", TransitTrain, "JR", "30분")
	leg.Transit.Steps = []DetailedStep{{Title: "JR", Type: StepTrain, Info: StepInfo{Duration: 30, StopCount: IntPtr(4)}}}
	leg.Transit.Info.TransferCount = IntPtr(1)

	c := leg.Clone()
	c.Transit.Steps[0].Title = "changed"
	*c.Transit.Steps[0].Info.StopCount = 9
	*c.Transit.Info.TransferCount = 5

	assert.Equal(t, "JR", leg.Transit.Steps[0].Title)
	assert.Equal(t, 4, *leg.Transit.Steps[0].Info.StopCount)
	assert.Equal(t, 1, *leg.Transit.Info.TransferCount)

	place := NewPlace("p1", "09:00", "A", "")
	place.SetCoordinates(1, 2)
	pc := place.Clone()
	*pc.Place.Lat = 9
	assert.Equal(t, 1.0, *place.Place.Lat)
}

func TestCloneSteps(t *testing.T) {
	assert.Nil(t, CloneSteps(nil))

	steps := []DetailedStep{{Title: "walk"}, {Title: "bus", Info: StepInfo{StopCount: IntPtr(3)}}}
	c := CloneSteps(steps)
	require.Len(t, c, 2)
	assert.Nil(t, c[0].Info.StopCount)
	assert.NotSame(t, steps[1].Info.StopCount, c[1].Info.StopCount)
	assert.Equal(t, 3, *c[1].Info.StopCount)
}

func TestInferKind(t *testing.T) {
	assert.Equal(t, KindTransit, InferKind(true, ""))
	assert.Equal(t, KindTransit, InferKind(true, MemoTag), "transit flag wins")
	assert.Equal(t, KindMemo, InferKind(false, MemoTag))
	assert.Equal(t, KindPlace, InferKind(false, "관광"))
}

func TestStepType_TransitType(t *testing.T) {
	assert.Equal(t, TransitTrain, StepSubway.TransitType())
	assert.Equal(t, TransitBus, StepBus.TransitType())
	assert.Equal(t, TransitWalk, StepWalk.TransitType())
	assert.Equal(t, 35, TotalStepMinutes([]DetailedStep{{Info: StepInfo{Duration: 10}}, {Info: StepInfo{Duration: 25}}}))
}
