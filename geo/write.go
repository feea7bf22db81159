package geo

import (
	"fmt"
	"io"
	"os"

	"github.com/paulmach/orb/geojson"
)

// DistrictProperty is the feature property that receives the 1-indexed
// district of a unit.
const DistrictProperty = "best_cd"

// WriteAssignment writes the features of region to w as a GeoJSON
// FeatureCollection, each assigned feature carrying DistrictProperty =
// district+1. Features without an assignment (dropped during Load) are
// written unchanged. region.Features is not modified.
func WriteAssignment(w io.Writer, region *Region, assignment map[int]int) error {
	out := geojson.NewFeatureCollection()
	for i, f := range region.Features.Features {
		nf := geojson.NewFeature(f.Geometry)
		nf.ID = f.ID
		for k, v := range f.Properties {
			nf.Properties[k] = v
		}
		if d, ok := assignment[i]; ok {
			nf.Properties[DistrictProperty] = d + 1
		}
		out.Append(nf)
	}

	data, err := out.MarshalJSON()
	if err != nil {
		return fmt.Errorf("geo: encoding collection: %w", err)
	}
	if _, err = w.Write(data); err != nil {
		return fmt.Errorf("geo: writing collection: %w", err)
	}

	return nil
}

// WriteAssignmentFile creates path and calls WriteAssignment.
func WriteAssignmentFile(path string, region *Region, assignment map[int]int) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("geo: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("geo: %w", cerr)
		}
	}()

	return WriteAssignment(f, region, assignment)
}
