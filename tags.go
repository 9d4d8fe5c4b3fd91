package crseg

var (
	// Node 'highway' values which are barely a boundary of crossroad
	stronglyNoBoundaryTags = map[string]struct{}{
		"bus_stop":  {},
		"milestone": {},
		"steps":     {},
		"elevator":  {},
	}

	// Node 'highway' values which are usually a boundary of crossroad (for nodes with degree <= 3)
	possibleBoundaryTags = map[string]struct{}{
		"crossing": {},
	}

	// Node 'highway' values which could be a crossroad boundary (for nodes with degree <= 3)
	moderateBoundaryTags = map[string]struct{}{
		"stop":              {},
		"traffic_signals":   {},
		"motorway_junction": {},
	}

	junctionTypes = map[string]struct{}{
		"roundabout": {},
		"circular":   {},
		"jughandle":  {},
	}

	onewayValues = map[string]struct{}{
		"yes":  {},
		"1":    {},
		"true": {},
		"-1":   {},
	}

	onewayReversible = map[string]struct{}{
		"reversible":  {},
		"alternating": {},
	}

	// Highways which are not part of street network for crossroad segmentation
	negligibleHighwayTags = map[string]struct{}{
		"path":          {},
		"footway":       {},
		"pedestrian":    {},
		"steps":         {},
		"cycleway":      {},
		"bridleway":     {},
		"corridor":      {},
		"elevator":      {},
		"escalator":     {},
		"proposed":      {},
		"construction":  {},
		"abandoned":     {},
		"platform":      {},
		"raceway":       {},
		"bus_stop":      {},
		"via_ferrata":   {},
		"bus_guideway":  {},
		"emergency_bay": {},
		"rest_area":     {},
		"disused":       {},
		"planned":       {},
		"razed":         {},
		"track":         {},
		"services":      {},
	}

	// 'service' values which are dropped while reading street network
	negligibleServiceTags = map[string]struct{}{
		"parking_aisle": {},
		"driveway":      {},
	}

	cyclewayTrackKeys = []string{"cycleway", "cycleway:left", "cycleway:right", "cycleway:both"}
)
