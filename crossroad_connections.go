package crseg

import (
	"sort"
	"strconv"
	"strings"
)

// Cycle is a closed alternating sequence of crossroads and links
type Cycle struct {
	Crossroads []RegionID
	// Links[i] connects Crossroads[i] with Crossroads[(i+1) % len(Crossroads)]
	Links []RegionID
}

// Pair is a couple of crossroads joined by more than one link
type Pair struct {
	First  RegionID
	Second RegionID
	Links  []RegionID
}

// CrossroadConnections is a snapshot of adjacency between crossroads and links
type CrossroadConnections struct {
	crossroads     map[RegionID]*Crossroad
	crossroadOrder []RegionID
	links          map[RegionID]*Link

	crossroadLinks map[RegionID][]RegionID
	linkCrossroads map[RegionID][]RegionID
}

// NewCrossroadConnections builds adjacency from link ends to crossroad nodes.
// Links longer than scale times max lane width of their crossroads are ignored
func NewCrossroadConnections(crossroads []*Crossroad, links []*Link, scale float64) *CrossroadConnections {
	cc := &CrossroadConnections{
		crossroads:     make(map[RegionID]*Crossroad, len(crossroads)),
		crossroadOrder: make([]RegionID, 0, len(crossroads)),
		links:          make(map[RegionID]*Link, len(links)),
		crossroadLinks: make(map[RegionID][]RegionID),
		linkCrossroads: make(map[RegionID][]RegionID),
	}
	for _, c := range crossroads {
		cc.crossroads[c.ID] = c
		cc.crossroadOrder = append(cc.crossroadOrder, c.ID)
	}
	sort.Slice(cc.crossroadOrder, func(i, j int) bool { return cc.crossroadOrder[i] < cc.crossroadOrder[j] })

	for _, link := range links {
		if len(link.path) < 2 {
			continue
		}
		start := link.path[0]
		end := link.path[len(link.path)-1]
		adjacent := []RegionID{}
		maxWidth := 0.0
		for _, cid := range cc.crossroadOrder {
			c := cc.crossroads[cid]
			if !c.HasNode(start) && !c.HasNode(end) {
				continue
			}
			adjacent = append(adjacent, cid)
			if w := c.MaxLaneWidth(); w > maxWidth {
				maxWidth = w
			}
		}
		if len(adjacent) < 2 {
			continue
		}
		if link.Length() > scale*maxWidth {
			continue
		}
		cc.links[link.ID] = link
		cc.linkCrossroads[link.ID] = adjacent
		for _, cid := range adjacent {
			cc.crossroadLinks[cid] = append(cc.crossroadLinks[cid], link.ID)
		}
	}
	for cid := range cc.crossroadLinks {
		ids := cc.crossroadLinks[cid]
		sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	}
	return cc
}

// LinksOf returns links adjacent to the crossroad
func (cc *CrossroadConnections) LinksOf(crossroad RegionID) []RegionID {
	return cc.crossroadLinks[crossroad]
}

// Cycles returns simple cycles with at least three and at most maxElements crossroads.
// Every cycle is reported once: it starts from its smallest crossroad identifier
func (cc *CrossroadConnections) Cycles(maxElements int) []Cycle {
	result := []Cycle{}
	seen := make(map[string]struct{})
	for _, start := range cc.crossroadOrder {
		onPath := map[RegionID]struct{}{start: {}}
		usedLinks := map[RegionID]struct{}{}
		cc.searchCycles(start, start, []RegionID{start}, []RegionID{}, onPath, usedLinks, maxElements, seen, &result)
	}
	return result
}

func (cc *CrossroadConnections) searchCycles(start, current RegionID, crossroads, links []RegionID, onPath, usedLinks map[RegionID]struct{}, maxElements int, seen map[string]struct{}, result *[]Cycle) {
	for _, lid := range cc.crossroadLinks[current] {
		if _, ok := usedLinks[lid]; ok {
			continue
		}
		for _, next := range cc.linkCrossroads[lid] {
			if next == current {
				continue
			}
			if next == start {
				if len(crossroads) < 3 {
					continue
				}
				cycleLinks := append(append([]RegionID{}, links...), lid)
				key := cycleKey(cycleLinks)
				if _, ok := seen[key]; ok {
					continue
				}
				seen[key] = struct{}{}
				*result = append(*result, Cycle{
					Crossroads: append([]RegionID{}, crossroads...),
					Links:      cycleLinks,
				})
				continue
			}
			if next < start {
				continue
			}
			if _, ok := onPath[next]; ok {
				continue
			}
			if len(crossroads) >= maxElements {
				continue
			}
			onPath[next] = struct{}{}
			usedLinks[lid] = struct{}{}
			cc.searchCycles(start, next, append(crossroads, next), append(links, lid), onPath, usedLinks, maxElements, seen, result)
			delete(onPath, next)
			delete(usedLinks, lid)
		}
	}
}

func cycleKey(links []RegionID) string {
	sorted := append([]RegionID{}, links...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	parts := make([]string, len(sorted))
	for i, id := range sorted {
		parts[i] = strconv.FormatInt(int64(id), 10)
	}
	return strings.Join(parts, ",")
}

// Pairs returns couples of crossroads joined by more than one link
func (cc *CrossroadConnections) Pairs() []Pair {
	type pairKey struct {
		first, second RegionID
	}
	joined := make(map[pairKey][]RegionID)
	order := []pairKey{}
	linkIDs := make([]RegionID, 0, len(cc.links))
	for lid := range cc.links {
		linkIDs = append(linkIDs, lid)
	}
	sort.Slice(linkIDs, func(i, j int) bool { return linkIDs[i] < linkIDs[j] })
	for _, lid := range linkIDs {
		adjacent := cc.linkCrossroads[lid]
		for i := 0; i < len(adjacent); i++ {
			for j := i + 1; j < len(adjacent); j++ {
				key := pairKey{adjacent[i], adjacent[j]}
				if key.first > key.second {
					key.first, key.second = key.second, key.first
				}
				if _, ok := joined[key]; !ok {
					order = append(order, key)
				}
				joined[key] = append(joined[key], lid)
			}
		}
	}
	sort.Slice(order, func(i, j int) bool {
		if order[i].first != order[j].first {
			return order[i].first < order[j].first
		}
		return order[i].second < order[j].second
	})
	ans := []Pair{}
	for _, key := range order {
		if len(joined[key]) < 2 {
			continue
		}
		ans = append(ans, Pair{First: key.first, Second: key.second, Links: joined[key]})
	}
	return ans
}

// Link returns link by its identifier
func (cc *CrossroadConnections) Link(id RegionID) (*Link, bool) {
	link, ok := cc.links[id]
	return link, ok
}
