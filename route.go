package od2veh

import (
	"github.com/paulmach/orb"
	"github.com/pkg/errors"
)

var (
	// ErrNodeNotFound Node is not presented in road network. Configuration error: fail fast
	ErrNodeNotFound = errors.New("node is not presented in network")
	// ErrPathNotFound No path between nodes. Per-row infeasibility: the trip is impossible, processing continues
	ErrPathNotFound = errors.New("path does not exist")
	// ErrNotPrepared Network has not been prepared for routing yet
	ErrNotPrepared = errors.New("network is not prepared")
)

// Route Result of a shortest path query
type Route struct {
	Path         []NodeID
	LengthMeters float64
	TimeMinutes  float64
}

// ShortestRoute returns shortest route between two nodes with respect to time-based weights (MC).
/*
	Degenerate case origin == destination gives a single-node route with
	zero length and time, so downstream code may index into the path safely.
*/
func (net *Network) ShortestRoute(from, to NodeID) (Route, error) {
	if !net.prepared {
		return Route{}, ErrNotPrepared
	}
	if !net.HasNode(from) {
		return Route{}, errors.Wrapf(ErrNodeNotFound, "Origin %d", from)
	}
	if !net.HasNode(to) {
		return Route{}, errors.Wrapf(ErrNodeNotFound, "Destination %d", to)
	}
	if from == to {
		return Route{Path: []NodeID{from}}, nil
	}
	cost, vertexPath := net.graph.ShortestPath(int64(from), int64(to))
	if cost < 0 || len(vertexPath) == 0 {
		return Route{}, errors.Wrapf(ErrPathNotFound, "%d -> %d", from, to)
	}
	return net.assembleRoute(vertexPath)
}

// assembleRoute sums lengths and travel times along found vertex sequence
func (net *Network) assembleRoute(vertexPath []int64) (Route, error) {
	route := Route{Path: make([]NodeID, len(vertexPath))}
	for i := range vertexPath {
		route.Path[i] = NodeID(vertexPath[i])
	}
	for i := 1; i < len(route.Path); i++ {
		edge, ok := net.EdgeBetween(route.Path[i-1], route.Path[i])
		if !ok {
			return Route{}, errors.Errorf("No edge between consecutive path nodes %d -> %d", route.Path[i-1], route.Path[i])
		}
		route.LengthMeters += edge.LengthMeters
		route.TimeMinutes += edge.TimeMinutes()
	}
	return route, nil
}

// Geometry returns linestring geometry of the route
func (net *Network) Geometry(route Route) orb.LineString {
	line := make(orb.LineString, 0, len(route.Path))
	for _, id := range route.Path {
		geom, ok := net.NodeGeom(id)
		if !ok {
			continue
		}
		line = append(line, geom.Point())
	}
	return line
}
