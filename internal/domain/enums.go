package domain

type ItemKind string

const (
	KindPlace   ItemKind = "place"
	KindTransit ItemKind = "transit"
	KindMemo    ItemKind = "memo"
)

type TransitType string

const (
	TransitAirplane TransitType = "airplane"
	TransitTrain    TransitType = "train"
	TransitBus      TransitType = "bus"
	TransitCar      TransitType = "car"
	TransitWalk     TransitType = "walk"
)

// Valid reports whether t is one of the known transit types.
func (t TransitType) Valid() bool {
	switch t {
	case TransitAirplane, TransitTrain, TransitBus, TransitCar, TransitWalk:
		return true
	}
	return false
}

func (t TransitType) Icon() string {
	switch t {
	case TransitAirplane:
		return "✈️"
	case TransitTrain:
		return "🚆"
	case TransitBus:
		return "🚌"
	case TransitCar:
		return "🚗"
	default:
		return "🚶"
	}
}

// Label is the tag text shown on transit cards.
func (t TransitType) Label() string {
	switch t {
	case TransitAirplane:
		return "비행기"
	case TransitTrain:
		return "기차"
	case TransitBus:
		return "버스"
	case TransitCar:
		return "자동차"
	default:
		return "도보"
	}
}

type StepType string

const (
	StepWalk     StepType = "walk"
	StepBus      StepType = "bus"
	StepSubway   StepType = "subway"
	StepTrain    StepType = "train"
	StepAirplane StepType = "airplane"
	StepShip     StepType = "ship"
	StepCar      StepType = "car"
)

func (s StepType) Icon() string {
	switch s {
	case StepBus:
		return "🚌"
	case StepSubway:
		return "🚇"
	case StepTrain:
		return "🚆"
	case StepAirplane:
		return "✈️"
	case StepShip:
		return "⛴️"
	case StepCar:
		return "🚗"
	default:
		return "🚶"
	}
}

// TransitType collapses a step mode onto the coarser item transit type.
func (s StepType) TransitType() TransitType {
	switch s {
	case StepBus:
		return TransitBus
	case StepSubway, StepTrain, StepShip:
		return TransitTrain
	case StepAirplane:
		return TransitAirplane
	case StepCar:
		return TransitCar
	default:
		return TransitWalk
	}
}
