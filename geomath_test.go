package crseg

import (
	"math"
	"testing"

	"github.com/paulmach/orb"
)

func Round(x, unit float64) float64 {
	if x > 0 {
		return float64(int64(x/unit+0.5)) * unit
	}
	return float64(int64(x/unit-0.5)) * unit
}

func TestGeodesicDistance(t *testing.T) {
	p1 := orb.Point{0.0, 0.0}
	p2 := orb.Point{0.0, 1.0}
	res := orb.EarthRadius * math.Pi / 180.0
	dist := METRIC_GEODESIC.distance(p1, p2)
	if Round(dist, 0.0005) != Round(res, 0.0005) {
		t.Errorf("Geodesic dist must be %f, but got %f", res, dist)
	}
}

func TestPlanarDistance(t *testing.T) {
	dist := METRIC_PLANAR.distance(orb.Point{0, 0}, orb.Point{3, 4})
	if dist != 5.0 {
		t.Errorf("Planar dist must be %f, but got %f", 5.0, dist)
	}
}

func TestBearing(t *testing.T) {
	type bearingCase struct {
		metric   Metric
		from, to orb.Point
		expected float64
	}
	cases := []bearingCase{
		{METRIC_PLANAR, orb.Point{0, 0}, orb.Point{0, 10}, 0},
		{METRIC_PLANAR, orb.Point{0, 0}, orb.Point{10, 0}, 90},
		{METRIC_PLANAR, orb.Point{0, 0}, orb.Point{0, -10}, 180},
		{METRIC_PLANAR, orb.Point{0, 0}, orb.Point{-10, 0}, 270},
		{METRIC_GEODESIC, orb.Point{0, 0}, orb.Point{0, 1}, 0},
		{METRIC_GEODESIC, orb.Point{0, 0}, orb.Point{1, 0}, 90},
		{METRIC_GEODESIC, orb.Point{0, 0}, orb.Point{-1, 0}, 270},
	}
	for i, c := range cases {
		b := c.metric.bearing(c.from, c.to)
		if Round(b, 0.0001) != Round(c.expected, 0.0001) {
			t.Errorf("Case #%d (%s): bearing must be %f, but got %f", i, c.metric, c.expected, b)
		}
		if b < 0 || b >= 360 {
			t.Errorf("Case #%d (%s): bearing %f is out of [0; 360)", i, c.metric, b)
		}
	}
}

func TestAngularDistance(t *testing.T) {
	cases := [][3]float64{
		{0, 90, 90},
		{350, 10, 20},
		{10, 350, 20},
		{0, 180, 180},
		{270, 90, 180},
		{-90, 270, 0},
	}
	for i, c := range cases {
		d := angularDistance(c[0], c[1])
		if Round(d, 0.0001) != Round(c[2], 0.0001) {
			t.Errorf("Case #%d: angular distance between %f and %f must be %f, but got %f", i, c[0], c[1], c[2], d)
		}
	}
}

func TestFindCentroid(t *testing.T) {
	line := []orb.Point{
		{37.396747, 55.8321},
		{37.397111, 55.831987},
		{37.397222, 55.831927},
		{37.397322, 55.831851},
		{37.397384, 55.83177},
		{37.397415, 55.831684},
		{37.397407, 55.831605},
		{37.397363, 55.831525},
		{37.397283, 55.83144},
		{37.39717, 55.831367},
		{37.397001, 55.831313},
		{37.39682, 55.831286},
		{37.39662, 55.83129},
		{37.396464, 55.831311},
		{37.396345, 55.831346},
		{37.396202, 55.83141},
		{37.396123, 55.831459},
		{37.396059, 55.831517},
		{37.396013, 55.831591},
		{37.395989, 55.831674},
	}
	centroid := findCentroid(line)
	correctCentroid := orb.Point{37.39680299905517, 55.83157265108678}
	if correctCentroid.Lon() != centroid.Lon() {
		t.Errorf("Correct centroid longitude should be %f, but got %f", correctCentroid.Lon(), centroid.Lon())
	}
	if correctCentroid.Lat() != centroid.Lat() {
		t.Errorf("Correct centroid latitude should be %f, but got %f", correctCentroid.Lat(), centroid.Lat())
	}
}

func TestPlanarCentroid(t *testing.T) {
	c := METRIC_PLANAR.centroid([]orb.Point{{0, 0}, {10, 0}, {10, 10}, {0, 10}})
	if c != (orb.Point{5, 5}) {
		t.Errorf("Planar centroid should be %v, but got %v", orb.Point{5, 5}, c)
	}
}
