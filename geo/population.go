package geo

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/paulmach/orb/geojson"
)

// ResolvePopulation picks the population of every feature of fc.
//
// With a non-empty column, that column is used and must exist. Otherwise
// the first of PopulationColumns present on any feature is used. Failing
// that, a proxy sums every numeric column whose upper-cased name starts
// with one of ProxyPrefixes. Missing or non-numeric values count as 0.
func ResolvePopulation(fc *geojson.FeatureCollection, column string) (Population, error) {
	present := make(map[string]bool)
	for _, f := range fc.Features {
		for k := range f.Properties {
			present[k] = true
		}
	}

	if column != "" {
		if !present[column] {
			return Population{}, fmt.Errorf("%w: %q", ErrColumnNotFound, column)
		}
		return Population{Column: column, Values: columnValues(fc, column)}, nil
	}
	for _, c := range PopulationColumns {
		if present[c] {
			return Population{Column: c, Values: columnValues(fc, c)}, nil
		}
	}

	votes := proxyColumns(fc, present)
	if len(votes) == 0 {
		return Population{}, ErrNoPopulation
	}
	values := make([]float64, len(fc.Features))
	var total float64
	for _, c := range votes {
		for i, v := range columnValues(fc, c) {
			values[i] += v
			total += v
		}
	}
	if total == 0 {
		return Population{}, fmt.Errorf("%w: columns %v", ErrZeroProxyPopulation, votes)
	}

	return Population{Column: ProxyColumn, ProxyColumns: votes, Values: values}, nil
}

// proxyColumns returns the sorted vote columns whose every present value is
// numeric.
func proxyColumns(fc *geojson.FeatureCollection, present map[string]bool) []string {
	var out []string
	for name := range present {
		upper := strings.ToUpper(name)
		match := false
		for _, p := range ProxyPrefixes {
			if strings.HasPrefix(upper, p) {
				match = true
				break
			}
		}
		if match && numericColumn(fc, name) {
			out = append(out, name)
		}
	}
	sort.Strings(out)

	return out
}

func numericColumn(fc *geojson.FeatureCollection, name string) bool {
	for _, f := range fc.Features {
		v, ok := f.Properties[name]
		if !ok || v == nil {
			continue
		}
		switch v.(type) {
		case float64, int, int64:
		default:
			return false
		}
	}

	return true
}

func columnValues(fc *geojson.FeatureCollection, name string) []float64 {
	out := make([]float64, len(fc.Features))
	for i, f := range fc.Features {
		out[i] = toNumber(f.Properties[name])
	}

	return out
}

// toNumber coerces a property value; anything unusable is 0.
func toNumber(v interface{}) float64 {
	var x float64
	switch t := v.(type) {
	case float64:
		x = t
	case int:
		x = float64(t)
	case int64:
		x = float64(t)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0
		}
		x = f
	default:
		return 0
	}
	if math.IsNaN(x) || math.IsInf(x, 0) || x < 0 {
		return 0
	}

	return x
}
