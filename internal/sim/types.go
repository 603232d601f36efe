package sim

import "github.com/san-kum/nbodysim/internal/dynamo"

type Config struct {
	Steps         int
	Dt            float64
	ValidateState bool
}

type Result struct {
	Times       []float64
	Diagnostics []dynamo.Diagnostics
	Metrics     map[string]float64
	StepsTaken  int
	Seed        int64
	Final       []dynamo.Body
}

// Series returns one diagnostic field across the run.
func (r *Result) Series(field func(dynamo.Diagnostics) float64) []float64 {
	out := make([]float64, len(r.Diagnostics))
	for i, d := range r.Diagnostics {
		out[i] = field(d)
	}
	return out
}

func KineticEnergy(d dynamo.Diagnostics) float64 { return d.KineticEnergy }
func Contacts(d dynamo.Diagnostics) float64      { return float64(d.Contacts) }
