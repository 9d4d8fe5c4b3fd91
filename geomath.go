package crseg

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
	"github.com/paulmach/orb/planar"
)

const (
	pi180    = math.Pi / 180.0
	pi180Rev = 180.0 / math.Pi
)

// Metric defines how distances and bearings are measured between graph nodes
type Metric uint16

const (
	// METRIC_GEODESIC treats point coordinates as (longitude, latitude) in degrees. Distances are in meters
	METRIC_GEODESIC = Metric(iota + 1)
	// METRIC_PLANAR treats point coordinates as Euclidean (X, Y) in meters
	METRIC_PLANAR
)

func (iotaIdx Metric) String() string {
	return [...]string{"geodesic", "planar"}[iotaIdx-1]
}

// degreesToRadians deg = r * pi / 180
func degreesToRadians(d float64) float64 {
	return d * pi180
}

// radiansTodegrees r = deg  * 180 / pi
func radiansTodegrees(d float64) float64 {
	return d * pi180Rev
}

// distance returns distance between two points in meters
func (metric Metric) distance(p, q orb.Point) float64 {
	if metric == METRIC_PLANAR {
		return planar.Distance(p, q)
	}
	return geo.DistanceHaversine(p, q)
}

// bearing returns compass bearing from p to q: degrees in [0; 360), 0 is north, 90 is east
func (metric Metric) bearing(p, q orb.Point) float64 {
	if metric == METRIC_PLANAR {
		return normalizeBearing(radiansTodegrees(math.Atan2(q.X()-p.X(), q.Y()-p.Y())))
	}
	return normalizeBearing(geo.Bearing(p, q))
}

// centroid returns center point for given set of points
func (metric Metric) centroid(pts []orb.Point) orb.Point {
	if metric == METRIC_PLANAR {
		return planarCentroid(pts)
	}
	return findCentroid(pts)
}

func normalizeBearing(angle float64) float64 {
	angle = math.Mod(angle, 360.0)
	if angle < 0 {
		angle += 360.0
	}
	return angle
}

// angularDistance returns the smallest angle between two bearings: [0; 180]
func angularDistance(a1, a2 float64) float64 {
	d := math.Abs(normalizeBearing(a1) - normalizeBearing(a2))
	if d > 180.0 {
		return 360.0 - d
	}
	return d
}

// findCentroid returns center point for given geographic points (not middle point)
func findCentroid(line []orb.Point) orb.Point {
	totalPoints := len(line)
	if totalPoints == 1 {
		return line[0]
	}
	x, y, z := 0.0, 0.0, 0.0
	for i := 0; i < totalPoints; i++ {
		longitude := degreesToRadians(line[i].Lon())
		latitude := degreesToRadians(line[i].Lat())
		c1 := math.Cos(latitude)
		x += c1 * math.Cos(longitude)
		y += c1 * math.Sin(longitude)
		z += math.Sin(latitude)
	}

	x /= float64(totalPoints)
	y /= float64(totalPoints)
	z /= float64(totalPoints)

	centralLongitude := math.Atan2(y, x)
	centralSquareRoot := math.Sqrt(x*x + y*y)
	centralLatitude := math.Atan2(z, centralSquareRoot)

	return orb.Point{
		radiansTodegrees(centralLongitude),
		radiansTodegrees(centralLatitude),
	}
}

// planarCentroid returns arithmetic mean of given points (assuming they are Euclidean)
func planarCentroid(pts []orb.Point) orb.Point {
	if len(pts) == 0 {
		return orb.Point{}
	}
	x, y := 0.0, 0.0
	for _, pt := range pts {
		x += pt.X()
		y += pt.Y()
	}
	return orb.Point{x / float64(len(pts)), y / float64(len(pts))}
}
