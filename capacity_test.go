package od2veh

import (
	"math"
	"testing"
)

// directionalRow returns capacity row of checkpoint 2001 in the spirit of
// observed field data: cars and trucks counted, other categories absent
func directionalRow(sense string) CapacityRecord {
	record := emptyCapacityRecord(2001, sense)
	record.FA = 1.0
	record.Capacity = [numCategories]float64{0, 1500, 0, 500, 0, 0}
	record.Occupancy[categoryA] = 2.0
	record.Occupancy[categoryCU] = 2.0
	return record
}

func aggregatedRow(checkpoint NodeID) CapacityRecord {
	record := emptyCapacityRecord(checkpoint, SenseAggregated)
	record.FA = 1.0
	record.Capacity = [numCategories]float64{100, 800, 50, 200, 30, 20}
	for i := 0; i < numCategories; i++ {
		record.Occupancy[i] = 1.5
	}
	return record
}

func capacityFixture(t *testing.T) *CapacityTable {
	table, err := NewCapacityTable([]CapacityRecord{
		directionalRow("1-3"),
		directionalRow("3-1"),
		aggregatedRow(9002),
	})
	if err != nil {
		t.Fatalf("Can not build capacity fixture: %v", err)
	}
	return table
}

func TestDirectionalClassification(t *testing.T) {
	table := capacityFixture(t)
	if !table.Directional(2001) {
		t.Error("Checkpoint 2001 with per-sense rows must be directional")
	}
	if table.Directional(9002) {
		t.Error("Checkpoint 9002 with the single '0' row must be aggregated")
	}
	if !table.Directional(7777) {
		t.Error("Unknown checkpoint must be directional by default (fail-closed)")
	}
}

func TestMatchDirectional(t *testing.T) {
	table := capacityFixture(t)
	record, sense := table.Match(2001, "1-3")
	if sense != "1-3" {
		t.Errorf("Effective sense must stay '1-3', but got '%s'", sense)
	}
	if record.Capacity[categoryA] != 1500 || record.Capacity[categoryCU] != 500 {
		t.Errorf("Matched row must carry observed capacities, but got %v", record.Capacity)
	}
}

func TestMatchDirectionalNoAggregatedFallback(t *testing.T) {
	table := capacityFixture(t)
	for _, sense := range []string{SenseAggregated, "2-4", SenseUndefined} {
		record, _ := table.Match(2001, sense)
		if !math.IsNaN(record.CapTotal()) {
			t.Errorf("Directional checkpoint must not match sense '%s', but got cap_total %f", sense, record.CapTotal())
		}
		if !math.IsNaN(record.FA) {
			t.Errorf("Unmatched row must have NaN FA for sense '%s', but got %f", sense, record.FA)
		}
	}
}

func TestMatchAggregatedForcesSense(t *testing.T) {
	table := capacityFixture(t)
	record, sense := table.Match(9002, "1-3")
	if sense != SenseAggregated {
		t.Errorf("Aggregated checkpoint must force sense to '0', but got '%s'", sense)
	}
	if math.IsNaN(record.CapTotal()) {
		t.Error("Aggregated checkpoint must match its single row")
	}
	if record.CapTotal() != 1200.0 {
		t.Errorf("Aggregated cap_total must be 1200, but got %f", record.CapTotal())
	}
}

func TestMatchUnknownCheckpoint(t *testing.T) {
	table := capacityFixture(t)
	record, _ := table.Match(7777, SenseAggregated)
	if !math.IsNaN(record.CapTotal()) {
		t.Errorf("Unknown checkpoint must never match a row, but got cap_total %f", record.CapTotal())
	}
}

func TestDuplicateCapacityRows(t *testing.T) {
	_, err := NewCapacityTable([]CapacityRecord{
		directionalRow("1-3"),
		directionalRow("1-3"),
	})
	if err == nil {
		t.Error("Duplicate (checkpoint, sense) rows must be rejected")
	}
}

func TestCapTotalNaNSemantics(t *testing.T) {
	record := emptyCapacityRecord(2001, "1-3")
	if !math.IsNaN(record.CapTotal()) {
		t.Error("All-NaN capacities must give NaN cap_total")
	}
	record.Capacity[categoryA] = 1500
	record.Capacity[categoryCU] = 500
	if record.CapTotal() != 2000.0 {
		t.Errorf("Mixed NaN and numeric capacities must sum the numeric ones: expected 2000, got %f", record.CapTotal())
	}
}
