package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/tripline/internal/clock"
	"github.com/alexanderramin/tripline/internal/domain"
	"github.com/spf13/pflag"
)

// clockValue is a flag holding a normalized "HH:MM". It accepts anything
// clock.ParseClock does, such as "오후 2:10" or "2:10pm".
type clockValue struct {
	text string
}

var _ pflag.Value = (*clockValue)(nil)

func (c *clockValue) String() string { return c.text }

func (c *clockValue) Set(s string) error {
	m, ok := clock.ParseClock(s)
	if !ok {
		return fmt.Errorf("invalid time %q", s)
	}
	c.text = clock.FormatClock(m)
	return nil
}

func (c *clockValue) Type() string { return "HH:MM" }

// transitTypeValue is a flag restricted to the known transit types.
type transitTypeValue struct {
	t domain.TransitType
}

var _ pflag.Value = (*transitTypeValue)(nil)

var transitTypes = []domain.TransitType{
	domain.TransitAirplane, domain.TransitTrain, domain.TransitBus, domain.TransitCar, domain.TransitWalk,
}

func (v *transitTypeValue) String() string { return string(v.t) }

func (v *transitTypeValue) Set(s string) error {
	t := domain.TransitType(strings.ToLower(s))
	if !t.Valid() {
		names := make([]string, len(transitTypes))
		for i, tt := range transitTypes {
			names[i] = string(tt)
		}
		return fmt.Errorf("invalid transit type %q (%s)", s, strings.Join(names, ", "))
	}
	v.t = t
	return nil
}

func (v *transitTypeValue) Type() string { return "type" }
