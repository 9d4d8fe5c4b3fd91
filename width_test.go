package crseg

import (
	"testing"

	"github.com/paulmach/osm"
)

func TestEstimateWidth(t *testing.T) {
	tests := []struct {
		name     string
		tags     osm.Tags
		expected float64
	}{
		{"untagged", osm.Tags{}, 6},
		{"residential", residential("A"), 5.5},
		{"residential oneway", residential("A", osm.Tag{Key: "oneway", Value: "yes"}), 2.75},
		{"roundabout", residential("", osm.Tag{Key: "junction", Value: "roundabout"}), 2.75},
		{"primary with lanes", street("primary", "A", osm.Tag{Key: "lanes", Value: "4"}), 12},
		{"primary link", street("primary_link", "", osm.Tag{Key: "oneway", Value: "yes"}), 3},
		{"motorway with lanes text", street("motorway", "", osm.Tag{Key: "lanes", Value: "3;2"}), 10.5},
		{"service", street("service", ""), 4.5},
		{"explicit width", residential("A", osm.Tag{Key: "width", Value: "7.5"}), 7.5},
		{"explicit width with unit", residential("A", osm.Tag{Key: "width", Value: "7.5 m"}), 7.5},
		{"explicit width with glued unit", residential("A", osm.Tag{Key: "width", Value: "8m"}), 8},
		{"bad width", residential("A", osm.Tag{Key: "width", Value: "wide"}), 5.5},
		{"width in feet", residential("A", osm.Tag{Key: "width", Value: "12 ft"}), 5.5},
		{"zero width", residential("A", osm.Tag{Key: "width", Value: "0"}), 5.5},
		{"cycle track", residential("A", osm.Tag{Key: "cycleway:right", Value: "track"}), 8.25},
	}
	for _, test := range tests {
		edge := &Edge{Tags: test.tags}
		width := edge.EstimateWidth()
		if Round(width, 0.000001) != Round(test.expected, 0.000001) {
			t.Errorf("%s: width should be %f, got %f", test.name, test.expected, width)
		}
	}
}

func TestEstimateWidthIsMonotonic(t *testing.T) {
	prev := 0.0
	for lanes := 1; lanes <= 6; lanes++ {
		edge := &Edge{Tags: street("secondary", "", osm.Tag{Key: "lanes", Value: string(rune('0' + lanes))})}
		width := edge.EstimateWidth()
		if width <= prev {
			t.Errorf("Width for %d lanes should be greater than %f, got %f", lanes, prev, width)
		}
		prev = width
	}
}

func TestHighwayType(t *testing.T) {
	tests := []struct {
		highway  string
		expected HighwayType
	}{
		{"motorway", HIGHWAY_MOTORWAY},
		{"motorway_link", HIGHWAY_MOTORWAY},
		{"residential", HIGHWAY_RESIDENTIAL},
		{"living_street", HIGHWAY_LIVING_STREET},
		{"busway", HIGHWAY_OTHER},
		{"", 0},
	}
	for _, test := range tests {
		if found := getHighwayType(test.highway); found != test.expected {
			t.Errorf("Highway type for '%s' should be %d, got %d", test.highway, test.expected, found)
		}
	}
	if !isLinkHighway("trunk_link") || isLinkHighway("trunk") {
		t.Errorf("Only '*_link' highways are ramps")
	}
	if HIGHWAY_PRIMARY.boundaryDistance() != 80 || HIGHWAY_OTHER.boundaryDistance() != defaultBoundaryDistance {
		t.Errorf("Unexpected boundary distances: %f, %f", HIGHWAY_PRIMARY.boundaryDistance(), HIGHWAY_OTHER.boundaryDistance())
	}
	if HIGHWAY_SERVICE.String() != "service" {
		t.Errorf("Highway type name should be 'service', got '%s'", HIGHWAY_SERVICE)
	}
}
