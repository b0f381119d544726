package od2veh

import (
	"github.com/LdDl/ch"
	"github.com/pkg/errors"
)

// Network Road network prepared for routing.
/*
	Nodes carry planar coordinates, directed edges carry length (meters)
	and a time-based weight (minutes). Shortest path queries are served by
	contraction hierarchies (github.com/LdDl/ch); the underlying graph is
	weighted by travel time. Once Prepare() has been called the network is
	read-only.
*/
type Network struct {
	nodes    map[NodeID]GeoPoint
	edges    map[NodeID]map[NodeID]Edge
	graph    ch.Graph
	numEdges int
	prepared bool
}

// NewNetwork returns empty road network
func NewNetwork() *Network {
	return &Network{
		nodes: make(map[NodeID]GeoPoint),
		edges: make(map[NodeID]map[NodeID]Edge),
	}
}

// AddNode registers node with given identifier and coordinates
func (net *Network) AddNode(id NodeID, geom GeoPoint) {
	net.nodes[id] = geom
}

// AddEdge registers directed edge. Both endpoints must have been added as nodes before
func (net *Network) AddEdge(edge Edge) error {
	if net.prepared {
		return errors.New("Can not add edge to prepared network")
	}
	if _, ok := net.nodes[edge.From]; !ok {
		return errors.Wrapf(ErrNodeNotFound, "Edge source %d", edge.From)
	}
	if _, ok := net.nodes[edge.To]; !ok {
		return errors.Wrapf(ErrNodeNotFound, "Edge target %d", edge.To)
	}
	if edge.LengthMeters <= 0 {
		return errors.Errorf("Non-positive length %f for edge %d -> %d", edge.LengthMeters, edge.From, edge.To)
	}
	if edge.SpeedKmh <= 0 {
		return errors.Errorf("Non-positive speed %f for edge %d -> %d", edge.SpeedKmh, edge.From, edge.To)
	}
	if _, ok := net.edges[edge.From][edge.To]; ok {
		return errors.Errorf("Edge %d -> %d already exists", edge.From, edge.To)
	}
	err := net.graph.CreateVertex(int64(edge.From))
	if err != nil {
		return errors.Wrap(err, "Can not create source vertex")
	}
	err = net.graph.CreateVertex(int64(edge.To))
	if err != nil {
		return errors.Wrap(err, "Can not create target vertex")
	}
	err = net.graph.AddEdge(int64(edge.From), int64(edge.To), edge.TimeMinutes())
	if err != nil {
		return errors.Wrap(err, "Can not wrap source and target vertices as edge")
	}
	if _, ok := net.edges[edge.From]; !ok {
		net.edges[edge.From] = make(map[NodeID]Edge)
	}
	net.edges[edge.From][edge.To] = edge
	net.numEdges++
	return nil
}

// Prepare builds contraction hierarchies. Must be called once after the last AddEdge
func (net *Network) Prepare() {
	if net.prepared {
		return
	}
	net.graph.PrepareContractionHierarchies()
	net.prepared = true
}

// HasNode reports whether node is presented in network
func (net *Network) HasNode(id NodeID) bool {
	_, ok := net.nodes[id]
	return ok
}

// NodeGeom returns coordinates of given node
func (net *Network) NodeGeom(id NodeID) (GeoPoint, bool) {
	geom, ok := net.nodes[id]
	return geom, ok
}

// EdgeBetween returns directed edge between two adjacent nodes
func (net *Network) EdgeBetween(from, to NodeID) (Edge, bool) {
	adjacent, ok := net.edges[from]
	if !ok {
		return Edge{}, false
	}
	edge, ok := adjacent[to]
	return edge, ok
}

// NumNodes returns number of nodes in network
func (net *Network) NumNodes() int {
	return len(net.nodes)
}

// NumEdges returns number of directed edges in network
func (net *Network) NumEdges() int {
	return net.numEdges
}

// Clone returns independent copy of the network with its own contraction hierarchies.
// Used by parallel sessions: every worker owns a full copy, so queries need no locking
func (net *Network) Clone() (*Network, error) {
	clone := NewNetwork()
	for id, geom := range net.nodes {
		clone.AddNode(id, geom)
	}
	for _, adjacent := range net.edges {
		for _, edge := range adjacent {
			err := clone.AddEdge(edge)
			if err != nil {
				return nil, errors.Wrap(err, "Can not copy edge")
			}
		}
	}
	if net.prepared {
		clone.Prepare()
	}
	return clone, nil
}
