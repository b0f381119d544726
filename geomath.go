package od2veh

import (
	"fmt"
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

const (
	pi180    = math.Pi / 180.0
	pi180Rev = 180.0 / math.Pi
)

// GeoPoint representation of point on plane (projected CRS: Lon == X, Lat == Y)
type GeoPoint struct {
	Lat float64
	Lon float64
}

// String returns pretty printed value for GeoPoint
func (gp GeoPoint) String() string {
	return fmt.Sprintf("Lon: %f | Lat: %f", gp.Lon, gp.Lat)
}

// Point returns orb representation of the point
func (gp GeoPoint) Point() orb.Point {
	return orb.Point{gp.Lon, gp.Lat}
}

// bearingDegrees returns bearing from p to q in degrees [0;360).
// 0 is north, clockwise. Points are assumed to be Euclidean
func bearingDegrees(p, q GeoPoint) float64 {
	dx := q.Lon - p.Lon
	dy := q.Lat - p.Lat
	deg := math.Atan2(dx, dy) * pi180Rev
	if deg < 0 {
		deg += 360.0
	}
	return deg
}

// findDistance returns distance between two points (assuming they are Euclidean: Lon == X, Lat == Y)
func findDistance(p, q GeoPoint) float64 {
	return planar.Distance(p.Point(), q.Point())
}
