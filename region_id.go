package crseg

// RegionID identifies region (crossroad, link or inner region) within single segmentation run
type RegionID int64

// regionIDAllocator hands out sequential region identifiers
type regionIDAllocator struct {
	next RegionID
}

func (alloc *regionIDAllocator) allocate() RegionID {
	id := alloc.next
	alloc.next++
	return id
}

func (alloc *regionIDAllocator) reset() {
	alloc.next = 0
}

// regionRedirects maps identifiers of merged-away regions to the surviving ones
type regionRedirects struct {
	parent map[RegionID]RegionID
}

func newRegionRedirects() *regionRedirects {
	return &regionRedirects{
		parent: make(map[RegionID]RegionID),
	}
}

// redirect marks 'from' as merged into 'to'
func (redirects *regionRedirects) redirect(from, to RegionID) {
	from = redirects.resolve(from)
	to = redirects.resolve(to)
	if from == to {
		return
	}
	redirects.parent[from] = to
}

// resolve returns surviving identifier for given one
func (redirects *regionRedirects) resolve(id RegionID) RegionID {
	root := id
	for {
		next, ok := redirects.parent[root]
		if !ok {
			break
		}
		root = next
	}
	// path compression
	for id != root {
		next := redirects.parent[id]
		redirects.parent[id] = root
		id = next
	}
	return root
}
