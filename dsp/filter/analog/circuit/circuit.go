// Package circuit describes synthesized filter networks as ordered lists of
// components.
package circuit

import (
	"fmt"
	"strconv"
)

// Kind is the type of a component.
type Kind string

const (
	Resistor  Kind = "resistor"
	Capacitor Kind = "capacitor"
	Inductor  Kind = "inductor"
	OpAmp     Kind = "opamp"
)

// Position is where a component sits relative to the signal path.
type Position string

const (
	Series   Position = "series"
	Shunt    Position = "shunt"
	Feedback Position = "feedback"
	Active   Position = "active"
)

// Topology tags the network form.
type Topology string

const (
	LadderT   Topology = "ladder-t"
	LadderPi  Topology = "ladder-pi" // declared for clients, never produced
	Lattice   Topology = "lattice"
	SallenKey Topology = "sallen-key"
)

// Topologies lists every topology tag.
func Topologies() []Topology {
	return []Topology{LadderT, LadderPi, Lattice, SallenKey}
}

// Component is one element of a network. Value is in ohms, farads or
// henries; op-amp placeholders carry 0.
type Component struct {
	ID       string   `json:"id"`
	Type     Kind     `json:"type" enum:"resistor,capacitor,inductor,opamp"`
	Value    float64  `json:"value"`
	Position Position `json:"position" enum:"series,shunt,feedback,active"`
}

func (c Component) String() string {
	return fmt.Sprintf("%s %s %s %g", c.ID, c.Type, c.Position, c.Value)
}

// prefixes maps component kinds to identifier letters.
var prefixes = map[Kind]string{
	Resistor:  "R",
	Capacitor: "C",
	Inductor:  "L",
	OpAmp:     "U",
}

// Counter hands out sequential per-kind identifiers (L1, L2, C1, ...),
// optionally under a prefix such as "S2_".
type Counter struct {
	prefix string
	next   map[Kind]int
}

// NewCounter returns a counter whose identifiers start with prefix.
func NewCounter(prefix string) *Counter {
	return &Counter{prefix: prefix, next: make(map[Kind]int)}
}

// Next returns the next identifier for kind.
func (c *Counter) Next(kind Kind) string {
	c.next[kind]++

	return c.prefix + prefixes[kind] + strconv.Itoa(c.next[kind])
}

// Add creates a component with the next identifier for kind.
func (c *Counter) Add(kind Kind, value float64, pos Position) Component {
	return Component{ID: c.Next(kind), Type: kind, Value: value, Position: pos}
}

// Values returns the component values in order.
func Values(cs []Component) []float64 {
	out := make([]float64, len(cs))
	for i, c := range cs {
		out[i] = c.Value
	}

	return out
}
