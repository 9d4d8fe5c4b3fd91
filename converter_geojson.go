package crseg

import (
	"io"
	"os"

	geojson "github.com/paulmach/go.geojson"
	"github.com/pkg/errors"
)

// PrepareGeoJSONLinestring returns GeoJSON feature for the edge
func (g *Graph) PrepareGeoJSONLinestring(seg Segment) *geojson.Feature {
	from := g.Point(seg.From)
	to := g.Point(seg.To)
	return geojson.NewLineStringFeature([][]float64{{from.X(), from.Y()}, {to.X(), to.Y()}})
}

// PrepareGeoJSONPoint returns GeoJSON feature for the node
func (g *Graph) PrepareGeoJSONPoint(c *Crossroad) *geojson.Feature {
	pt := g.Point(c.center)
	return geojson.NewPointFeature([]float64{pt.X(), pt.Y()})
}

// FeatureCollection returns crossroads as GeoJSON: a point for every center, a line for every crossroad edge and for every lane edge
func (s *Segmentation) FeatureCollection(multiscale bool) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	regions := s.Crossroads()
	if multiscale {
		regions = append(regions, s.innerRegions...)
	}
	for _, c := range regions {
		center := s.graph.PrepareGeoJSONPoint(c)
		center.SetProperty("crossroad", int64(c.ID))
		center.SetProperty("kind", c.kind.String())
		center.SetProperty("node", int64(c.center))
		center.SetProperty("lanes", len(c.lanes))
		center.SetProperty("branches", len(c.branches))
		fc.AddFeature(center)
		for _, seg := range c.edges {
			f := s.graph.PrepareGeoJSONLinestring(seg)
			f.SetProperty("type", RECORD_CROSSROAD)
			f.SetProperty("crossroad", int64(c.ID))
			f.SetProperty("kind", c.kind.String())
			fc.AddFeature(f)
		}
		for bid, branch := range c.branches {
			for _, lane := range branch.Lanes {
				f := s.graph.PrepareGeoJSONLinestring(lane.Edge)
				f.SetProperty("type", RECORD_BRANCH)
				f.SetProperty("crossroad", int64(c.ID))
				f.SetProperty("kind", c.kind.String())
				f.SetProperty("branch", bid)
				f.SetProperty("name", lane.Name)
				f.SetProperty("angle", lane.Angle)
				fc.AddFeature(f)
			}
		}
	}
	return fc
}

// WriteGeoJSON writes crossroads as GeoJSON feature collection
func (s *Segmentation) WriteGeoJSON(w io.Writer, multiscale bool) error {
	b, err := s.FeatureCollection(multiscale).MarshalJSON()
	if err != nil {
		return errors.Wrap(err, "Can't convert crossroads to geojson format")
	}
	if _, err := w.Write(b); err != nil {
		return errors.Wrap(err, "Can't write geojson")
	}
	return nil
}

// ExportGeoJSON writes crossroads as GeoJSON feature collection to the file
func (s *Segmentation) ExportGeoJSON(filename string, multiscale bool) error {
	file, err := os.Create(filename)
	if err != nil {
		return errors.Wrapf(err, "Can't create file '%s'", filename)
	}
	defer file.Close()
	return s.WriteGeoJSON(file, multiscale)
}
