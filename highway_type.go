package crseg

import (
	"strings"
)

type HighwayType uint16

const (
	HIGHWAY_MOTORWAY = HighwayType(iota + 1)
	HIGHWAY_TRUNK
	HIGHWAY_PRIMARY
	HIGHWAY_SECONDARY
	HIGHWAY_TERTIARY
	HIGHWAY_UNCLASSIFIED
	HIGHWAY_RESIDENTIAL
	HIGHWAY_LIVING_STREET
	HIGHWAY_SERVICE
	HIGHWAY_OTHER
)

func (iotaIdx HighwayType) String() string {
	return [...]string{"motorway", "trunk", "primary", "secondary", "tertiary", "unclassified", "residential", "living_street", "service", "other"}[iotaIdx-1]
}

// getHighwayType returns class for 'highway' tag value. Ramps ('*_link') are mapped to their base class.
// Returns zero for empty value
func getHighwayType(str string) HighwayType {
	if str == "" {
		return 0
	}
	str = strings.TrimSuffix(str, "_link")
	if found, ok := highwaysTypes[str]; ok {
		return found
	}
	return HIGHWAY_OTHER
}

// isLinkHighway returns true for ramps: 'motorway_link', 'primary_link' and etc.
func isLinkHighway(str string) bool {
	return strings.HasSuffix(str, "_link")
}

var (
	highwaysTypes = map[string]HighwayType{
		"motorway":      HIGHWAY_MOTORWAY,
		"trunk":         HIGHWAY_TRUNK,
		"primary":       HIGHWAY_PRIMARY,
		"secondary":     HIGHWAY_SECONDARY,
		"tertiary":      HIGHWAY_TERTIARY,
		"unclassified":  HIGHWAY_UNCLASSIFIED,
		"residential":   HIGHWAY_RESIDENTIAL,
		"living_street": HIGHWAY_LIVING_STREET,
		"service":       HIGHWAY_SERVICE,
	}

	// Maximum length of inner crossroad path by highway class (meters)
	boundaryDistanceByHighway = map[HighwayType]float64{
		HIGHWAY_MOTORWAY:      100,
		HIGHWAY_TRUNK:         100,
		HIGHWAY_PRIMARY:       80,
		HIGHWAY_SECONDARY:     80,
		HIGHWAY_TERTIARY:      50,
		HIGHWAY_UNCLASSIFIED:  40,
		HIGHWAY_RESIDENTIAL:   40,
		HIGHWAY_LIVING_STREET: 30,
		HIGHWAY_SERVICE:       20,
	}

	// Width of single lane by highway class (meters)
	laneWidthByHighway = map[HighwayType]float64{
		HIGHWAY_MOTORWAY:  3.5,
		HIGHWAY_TRUNK:     3.5,
		HIGHWAY_PRIMARY:   3,
		HIGHWAY_SECONDARY: 2.75,
		HIGHWAY_SERVICE:   2.25,
	}
)

const (
	defaultBoundaryDistance = 25.0
	defaultLaneWidth        = 2.75
	untaggedLaneWidth       = 3.0
)

// boundaryDistance returns maximum length of inner crossroad path for given highway class
func (iotaIdx HighwayType) boundaryDistance() float64 {
	if d, ok := boundaryDistanceByHighway[iotaIdx]; ok {
		return d
	}
	return defaultBoundaryDistance
}

// laneWidth returns width of single lane for given highway class
func (iotaIdx HighwayType) laneWidth() float64 {
	if iotaIdx == 0 {
		return untaggedLaneWidth
	}
	if w, ok := laneWidthByHighway[iotaIdx]; ok {
		return w
	}
	return defaultLaneWidth
}
