package od2veh

import (
	"math"
)

// VehicleTrips Estimated vehicles per category and in total for a single OD pair.
// Any field may be NaN meaning the value could not be computed from the available data
type VehicleTrips struct {
	Vehicles [numCategories]float64
	Total    float64
}

// nanVehicleTrips returns result with every field set to NaN
func nanVehicleTrips() VehicleTrips {
	result := VehicleTrips{Total: math.NaN()}
	for i := 0; i < numCategories; i++ {
		result.Vehicles[i] = math.NaN()
	}
	return result
}

// ComputeVehicleTrips disaggregates person trips into vehicles per category.
/*
	Computed only for feasible trips with defined positive total capacity;
	everything else keeps NaN. Per category:

	  - zero capacity contributes zero vehicles by definition, even when
	    the occupancy factor for the category is missing;
	  - positive capacity requires both FA and a positive Focup, otherwise
	    the category stays NaN;
	  - otherwise veh = trips_person * intrazonal * FA * share / Focup
	    where share = cap_cat / cap_total.

	Total is the plain sum of the six categories, so a single NaN category
	makes the total NaN as well. An incomplete capacity or occupancy
	dataset must stay visible as missing data, never masked as zero demand.
*/
func ComputeVehicleTrips(tripsPerson, intrazonalFactor float64, record CapacityRecord, capTotal float64, congruence int) VehicleTrips {
	result := nanVehicleTrips()
	if congruence == CongruenceImpossible {
		return result
	}
	if math.IsNaN(capTotal) || capTotal <= 0 {
		return result
	}
	for i := 0; i < numCategories; i++ {
		capCat := record.Capacity[i]
		if math.IsNaN(capCat) {
			continue
		}
		if capCat == 0 {
			result.Vehicles[i] = 0.0
			continue
		}
		focup := record.Occupancy[i]
		if math.IsNaN(record.FA) || math.IsNaN(focup) || focup <= 0 {
			continue
		}
		share := capCat / capTotal
		result.Vehicles[i] = tripsPerson * intrazonalFactor * record.FA * share / focup
	}
	total := 0.0
	for i := 0; i < numCategories; i++ {
		total += result.Vehicles[i]
	}
	result.Total = total
	return result
}
