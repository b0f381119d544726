package od2veh

// NodeID alias for road network vertex identifier
type NodeID int64
