package ensemble

import (
	"math"

	"github.com/katalvlaran/lvdistrict/partition"
)

// PolsbyPopper returns 4*pi*area / perimeter^2 for every district of p,
// using the summed unit areas and perimeters of its Tally. A district with
// zero perimeter scores 0.
func PolsbyPopper(p *partition.Partition) []float64 {
	t := p.Tally()
	out := make([]float64, t.NumDistricts())
	for d := range out {
		per := t.Perimeter(d)
		if per <= 0 {
			continue
		}
		out[d] = 4 * math.Pi * t.Area(d) / (per * per)
	}

	return out
}

// MeanPolsbyPopper returns the mean of PolsbyPopper(p) over districts.
func MeanPolsbyPopper(p *partition.Partition) float64 {
	scores := PolsbyPopper(p)
	if len(scores) == 0 {
		return 0
	}
	var sum float64
	for _, s := range scores {
		sum += s
	}

	return sum / float64(len(scores))
}
