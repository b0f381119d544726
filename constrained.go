package od2veh

import (
	"math"

	"github.com/pkg/errors"
)

// ShortestRouteVia returns shortest route between two nodes forced through the via node (MC2).
/*
	Built as concatenation of two independent shortest legs: origin -> via
	and via -> destination. The via node is kept once. Since the route
	passes an intermediate waypoint its length is always greater or equal
	to the length of the unconstrained shortest route.
*/
func (net *Network) ShortestRouteVia(from, via, to NodeID) (Route, error) {
	first, err := net.ShortestRoute(from, via)
	if err != nil {
		return Route{}, errors.Wrap(err, "Leg to via node")
	}
	second, err := net.ShortestRoute(via, to)
	if err != nil {
		return Route{}, errors.Wrap(err, "Leg from via node")
	}
	merged := Route{
		Path:         make([]NodeID, 0, len(first.Path)+len(second.Path)-1),
		LengthMeters: first.LengthMeters + second.LengthMeters,
		TimeMinutes:  first.TimeMinutes + second.TimeMinutes,
	}
	merged.Path = append(merged.Path, first.Path...)
	merged.Path = append(merged.Path, second.Path[1:]...)
	return merged, nil
}

// DetourRatio returns ratio of constrained route length to unconstrained one.
// NaN for degenerate unconstrained routes of zero length
func DetourRatio(direct, via Route) float64 {
	if direct.LengthMeters <= 0 {
		return math.NaN()
	}
	return via.LengthMeters / direct.LengthMeters
}
