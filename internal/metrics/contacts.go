package metrics

import "github.com/san-kum/nbodysim/internal/dynamo"

// Contacts totals the overlapping pairs found by the first collision scan of
// every step.
type Contacts struct {
	name  string
	total int
}

func NewContacts() *Contacts {
	return &Contacts{name: "contacts"}
}

func (c *Contacts) Name() string { return c.name }

func (c *Contacts) Observe(bodies []dynamo.Body, d dynamo.Diagnostics, t float64) {
	c.total += d.Contacts
}

func (c *Contacts) Value() float64 { return float64(c.total) }
func (c *Contacts) Reset()         { c.total = 0 }

// Degenerate totals pair resolutions that fell back to the fixed normal.
type Degenerate struct {
	name  string
	total int
}

func NewDegenerate() *Degenerate {
	return &Degenerate{name: "degenerate"}
}

func (g *Degenerate) Name() string { return g.name }

func (g *Degenerate) Observe(bodies []dynamo.Body, d dynamo.Diagnostics, t float64) {
	g.total += d.Degenerate
}

func (g *Degenerate) Value() float64 { return float64(g.total) }
func (g *Degenerate) Reset()         { g.total = 0 }
