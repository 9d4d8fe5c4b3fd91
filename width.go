package crseg

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	lanesRegExp = regexp.MustCompile(`\d+`)
	widthRegExp = regexp.MustCompile(`^(\d+(?:\.\d+)?)\s*(?:m|meters)?$`)
)

// EstimateWidth returns estimated carriageway width of the edge (meters).
// Explicit numeric 'width' tag (optionally suffixed by meters unit) is returned as is. Otherwise number of lanes
// (from 'lanes' tag or from direction of traffic) is multiplied by width of single lane
// of the highway class. Cycle tracks add single lane
func (edge *Edge) EstimateWidth() float64 {
	if width, ok := edge.widthTag(); ok {
		return width
	}
	lanes := edge.lanesNum()
	laneWidth := getHighwayType(edge.Highway()).laneWidth()
	if edge.hasCyclewayTrack() {
		lanes++
	}
	return float64(lanes) * laneWidth
}

// widthTag parses 'width' tag. Values in units other than meters are ignored
func (edge *Edge) widthTag() (float64, bool) {
	found := widthRegExp.FindStringSubmatch(strings.TrimSpace(edge.Tags.Find("width")))
	if found == nil {
		return 0, false
	}
	width, err := strconv.ParseFloat(found[1], 64)
	if err != nil || width <= 0 {
		return 0, false
	}
	return width, true
}

// lanesNum returns number of lanes from 'lanes' tag. Falls back to single lane for oneway edges and two lanes otherwise
func (edge *Edge) lanesNum() int {
	lanesText := edge.Tags.Find("lanes")
	if lanesText != "" {
		found := lanesRegExp.FindString(lanesText)
		if lanes, err := strconv.Atoi(found); err == nil && lanes > 0 {
			return lanes
		}
	}
	if edge.IsOneway() {
		return 1
	}
	return 2
}

func (edge *Edge) hasCyclewayTrack() bool {
	for _, key := range cyclewayTrackKeys {
		if edge.Tags.Find(key) == "track" {
			return true
		}
	}
	return false
}
