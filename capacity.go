package od2veh

import (
	"math"

	"github.com/pkg/errors"
)

// Vehicle category indices. Order matches the contractual output columns
const (
	categoryM = iota
	categoryA
	categoryB
	categoryCU
	categoryCAI
	categoryCAII
	numCategories
)

var categoryNames = [numCategories]string{"M", "A", "B", "CU", "CAI", "CAII"}

// CapacityRecord Observed capacity of a checkpoint for a single sense.
/*
	Capacity holds counted vehicles per category, Occupancy holds persons
	per vehicle (Focup) per category, FA is the adjustment factor. Any
	numeric field may be NaN meaning the value was not observed. Missing
	stays missing: no field is ever backfilled with zero.
*/
type CapacityRecord struct {
	Checkpoint NodeID
	Sense      string
	FA         float64
	Capacity   [numCategories]float64
	Occupancy  [numCategories]float64
}

// emptyCapacityRecord returns record with every numeric field set to NaN
func emptyCapacityRecord(checkpoint NodeID, sense string) CapacityRecord {
	record := CapacityRecord{Checkpoint: checkpoint, Sense: sense, FA: math.NaN()}
	for i := 0; i < numCategories; i++ {
		record.Capacity[i] = math.NaN()
		record.Occupancy[i] = math.NaN()
	}
	return record
}

// CapTotal returns sum of the six category capacities.
// NaN values are skipped; the sum is NaN only when every category is NaN
func (record CapacityRecord) CapTotal() float64 {
	return nanSum(record.Capacity[:])
}

// nanSum sums values ignoring NaN ones. Returns NaN when there is no valid value at all
func nanSum(values []float64) float64 {
	total := 0.0
	valid := false
	for _, v := range values {
		if math.IsNaN(v) {
			continue
		}
		total += v
		valid = true
	}
	if !valid {
		return math.NaN()
	}
	return total
}

// CapacityTable Capacity rows indexed by (checkpoint, sense).
/*
	A checkpoint is directional when at least one of its rows has sense
	different from "0", otherwise it is aggregated. Checkpoints absent from
	the table are treated as directional (fail-closed), so an unknown
	checkpoint can never match an aggregated row by accident.
*/
type CapacityTable struct {
	rows map[NodeID]map[string]CapacityRecord
}

// NewCapacityTable indexes given capacity rows.
// Duplicate (checkpoint, sense) keys violate the many-to-one join contract and are rejected
func NewCapacityTable(records []CapacityRecord) (*CapacityTable, error) {
	table := &CapacityTable{rows: make(map[NodeID]map[string]CapacityRecord)}
	for _, record := range records {
		if _, ok := table.rows[record.Checkpoint]; !ok {
			table.rows[record.Checkpoint] = make(map[string]CapacityRecord)
		}
		if _, ok := table.rows[record.Checkpoint][record.Sense]; ok {
			return nil, errors.Errorf("Duplicate capacity row for checkpoint %d and sense '%s'", record.Checkpoint, record.Sense)
		}
		table.rows[record.Checkpoint][record.Sense] = record
	}
	return table, nil
}

// Directional reports whether capacity of given checkpoint is split by direction.
// Unknown checkpoints are directional by default
func (table *CapacityTable) Directional(checkpoint NodeID) bool {
	senses, ok := table.rows[checkpoint]
	if !ok {
		return true
	}
	for sense := range senses {
		if sense != SenseAggregated {
			return true
		}
	}
	return false
}

// Match joins (checkpoint, sense) against the capacity rows.
/*
	Directional checkpoints match on the exact sense only; the "0" row is
	excluded, there is no fallback to aggregated capacity. Aggregated
	checkpoints force the sense to "0" (overwriting the geometrically
	derived one) and match their single aggregated row. When no row
	matches, every numeric field of the result is NaN.

	Returns the matched (or all-NaN) record and the effective sense code.
*/
func (table *CapacityTable) Match(checkpoint NodeID, sense string) (CapacityRecord, string) {
	if table.Directional(checkpoint) {
		if sense == SenseAggregated || sense == SenseUndefined {
			return emptyCapacityRecord(checkpoint, sense), sense
		}
		record, ok := table.rows[checkpoint][sense]
		if !ok {
			return emptyCapacityRecord(checkpoint, sense), sense
		}
		return record, sense
	}
	record, ok := table.rows[checkpoint][SenseAggregated]
	if !ok {
		return emptyCapacityRecord(checkpoint, SenseAggregated), SenseAggregated
	}
	return record, SenseAggregated
}
