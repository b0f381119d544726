package od2veh

// DefaultSpeedKmh is used when an edge comes without speed attribute
const DefaultSpeedKmh = 50.0

// Edge Directed road network edge
type Edge struct {
	From         NodeID
	To           NodeID
	LengthMeters float64
	SpeedKmh     float64
	Class        string
}

// TimeMinutes returns time-based weight of the edge in minutes
func (edge Edge) TimeMinutes() float64 {
	return edge.LengthMeters / 1000.0 / edge.SpeedKmh * 60.0
}
