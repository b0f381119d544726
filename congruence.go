package od2veh

import (
	"math"
)

// Congruence codes: trip feasibility given routing and capacity validity
const (
	// CongruenceValid Trip is feasible
	CongruenceValid = 1
	// CongruenceImpossible Route invalid, sense invalid, capacity missing or capacity zero
	CongruenceImpossible = 4
)

// ClassifyCongruence returns congruence code for a single trip.
/*
	routeValid refers to the checkpoint-constrained route (MC2): it must
	exist and have positive length. A sense of "0" is invalid for a
	directional checkpoint since its aggregated row is never matched.
*/
func ClassifyCongruence(routeValid bool, sense string, directional bool, capTotal float64) int {
	if !routeValid {
		return CongruenceImpossible
	}
	if sense == SenseUndefined {
		return CongruenceImpossible
	}
	if directional && sense == SenseAggregated {
		return CongruenceImpossible
	}
	if math.IsNaN(capTotal) {
		return CongruenceImpossible
	}
	if capTotal == 0 {
		return CongruenceImpossible
	}
	return CongruenceValid
}
