package od2veh

import (
	"fmt"
)

const (
	// SenseAggregated Sentinel sense code: traversal direction is indeterminate or capacity is not split by direction
	SenseAggregated = "0"
	// SenseUndefined Sense could not be derived or is not listed in the catalog
	SenseUndefined = ""
)

// cardinal Compass sector: 1 = North, 2 = East, 3 = South, 4 = West
type cardinal uint16

const (
	cardinalNorth = cardinal(iota + 1)
	cardinalEast
	cardinalSouth
	cardinalWest
)

func (iotaIdx cardinal) String() string {
	return [...]string{"north", "east", "south", "west"}[iotaIdx-1]
}

// cardinalOfBearing maps bearing in degrees [0;360) to compass sector.
// Sector boundaries are at 45/135/225/315 so each sector is centered on its cardinal
func cardinalOfBearing(deg float64) cardinal {
	switch {
	case deg >= 315.0 || deg < 45.0:
		return cardinalNorth
	case deg < 135.0:
		return cardinalEast
	case deg < 225.0:
		return cardinalSouth
	default:
		return cardinalWest
	}
}

// opposite returns cardinal rotated by 180 degrees
func (iotaIdx cardinal) opposite() cardinal {
	return (iotaIdx+1)%4 + 1
}

// DeriveSense returns traversal sense of the route at given checkpoint node.
/*
	The checkpoint must be strictly interior to the path, otherwise the
	sense is undefined. With u = predecessor, v = checkpoint, w = successor:
	the origin cardinal is the one opposite to the sector of bearing(u->v)
	("where the trip came from"), the destination cardinal is the sector of
	bearing(v->w) ("where the trip is going"). Equal cardinals give the
	indeterminate sentinel "0", otherwise the code is "{origin}-{dest}".
*/
func (net *Network) DeriveSense(route Route, checkpoint NodeID) string {
	idx := -1
	for i := 1; i < len(route.Path)-1; i++ {
		if route.Path[i] == checkpoint {
			idx = i
			break
		}
	}
	if idx < 0 {
		return SenseUndefined
	}
	u, okU := net.NodeGeom(route.Path[idx-1])
	v, okV := net.NodeGeom(route.Path[idx])
	w, okW := net.NodeGeom(route.Path[idx+1])
	if !okU || !okV || !okW {
		return SenseUndefined
	}
	origin := cardinalOfBearing(bearingDegrees(u, v)).opposite()
	dest := cardinalOfBearing(bearingDegrees(v, w))
	if origin == dest {
		return SenseAggregated
	}
	return fmt.Sprintf("%d-%d", origin, dest)
}

// SenseCatalog Whitelist of physically meaningful sense codes for the study area
type SenseCatalog map[string]struct{}

// NewSenseCatalog returns catalog for given set of codes
func NewSenseCatalog(codes []string) SenseCatalog {
	catalog := make(SenseCatalog, len(codes))
	for _, code := range codes {
		catalog[code] = struct{}{}
	}
	return catalog
}

// Contains reports whether code is listed in the catalog
func (catalog SenseCatalog) Contains(code string) bool {
	_, ok := catalog[code]
	return ok
}

// Validate keeps geometrically derived code only if the catalog lists it.
// The sentinel "0" is always implicitly valid
func (catalog SenseCatalog) Validate(code string) string {
	if code == SenseAggregated || code == SenseUndefined {
		return code
	}
	if !catalog.Contains(code) {
		return SenseUndefined
	}
	return code
}
