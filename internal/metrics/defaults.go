package metrics

import "github.com/san-kum/nbodysim/internal/dynamo"

// Defaults returns the metric set recorded for every run of cfg.
func Defaults(cfg dynamo.Config) []dynamo.Metric {
	return []dynamo.Metric{
		NewKineticEnergy(),
		NewPeakKineticEnergy(),
		NewContacts(),
		NewDegenerate(),
		NewMomentumDrift(cfg.Mass),
		NewContainment(cfg.Width, cfg.Height, cfg.Width/2),
	}
}
