package crseg

import (
	"fmt"
	"math"
)

const (
	// Maximum angular distance between similar lanes (degrees)
	similarLanesAngle = 90.0
	// Maximum deviation from right angle for orthogonal lanes (degrees)
	orthogonalTolerance = 45.0
)

// Lane is a street leaving crossroad
type Lane struct {
	// Bearing from crossroad center to the far end of the street (degrees)
	Angle float64
	// Street name. Empty string when unknown
	Name string
	// Edge oriented outward: From belongs to crossroad
	Edge Segment
}

func (lane Lane) String() string {
	return fmt.Sprintf("lane %d->%d (angle: %.2f, name: '%s')", lane.Edge.From, lane.Edge.To, lane.Angle, lane.Name)
}

// HasName returns true if street name is known
func (lane Lane) HasName() bool {
	return lane.Name != ""
}

// IsSimilar returns true if both lanes share the same known name and angular distance between them is less than 90 degrees
func (lane Lane) IsSimilar(other Lane) bool {
	if !lane.HasName() || !other.HasName() || lane.Name != other.Name {
		return false
	}
	return angularDistance(lane.Angle, other.Angle) < similarLanesAngle
}

// IsOrthogonal returns true if the lane is within 45 degrees of being orthogonal to given bearing
func (lane Lane) IsOrthogonal(angle float64) bool {
	return math.Abs(angularDistance(lane.Angle, angle)-90.0) < orthogonalTolerance
}

// Matches returns true if the lane goes along the edge
func (lane Lane) Matches(key EdgeKey) bool {
	return lane.Edge.Key() == key
}
