package od2veh

import (
	"math"
	"testing"
)

func equalOrBothNaN(a, b float64) bool {
	if math.IsNaN(a) && math.IsNaN(b) {
		return true
	}
	return a == b
}

func sessionRecords() []ODRecord {
	records := []ODRecord{}
	pairs := [][2]NodeID{
		{1001, 3001},
		{3001, 1001},
		{4001, 5001},
		{5001, 4001},
		{6001, 3001},
		{1001, 9999},
	}
	for i, pair := range pairs {
		records = append(records, ODRecord{
			Origin:           pair[0],
			Destination:      pair[1],
			Checkpoint:       2001,
			HasCheckpoint:    true,
			TripsPerson:      float64(100 * (i + 1)),
			IntrazonalFactor: 1.0,
		})
	}
	return records
}

func TestSessionMatchesSequential(t *testing.T) {
	pipeline := testPipeline(t)
	records := sessionRecords()

	sequential, err := pipeline.EvaluateAll(records)
	if err != nil {
		t.Fatal(err)
	}
	session := NewRoutingSession(pipeline, 3, 2)
	parallel, err := session.EvaluateAll(records)
	if err != nil {
		t.Fatal(err)
	}
	if len(parallel) != len(sequential) {
		t.Fatalf("Expected %d evaluations, but got %d", len(sequential), len(parallel))
	}
	for i := range sequential {
		if sequential[i].Sense != parallel[i].Sense {
			t.Errorf("Row %d: sense mismatch '%s' != '%s'", i, sequential[i].Sense, parallel[i].Sense)
		}
		if sequential[i].Congruence != parallel[i].Congruence {
			t.Errorf("Row %d: congruence mismatch %d != %d", i, sequential[i].Congruence, parallel[i].Congruence)
		}
		if !equalOrBothNaN(sequential[i].Vehicles.Total, parallel[i].Vehicles.Total) {
			t.Errorf("Row %d: total mismatch %f != %f", i, sequential[i].Vehicles.Total, parallel[i].Vehicles.Total)
		}
		for c := 0; c < numCategories; c++ {
			if !equalOrBothNaN(sequential[i].Vehicles.Vehicles[c], parallel[i].Vehicles.Vehicles[c]) {
				t.Errorf("Row %d: category %s mismatch %f != %f", i, categoryNames[c], sequential[i].Vehicles.Vehicles[c], parallel[i].Vehicles.Vehicles[c])
			}
		}
	}
}

func TestSessionPreservesOrder(t *testing.T) {
	pipeline := testPipeline(t)
	// same feasible OD pair repeated with distinct trip volumes: the
	// output row must scale with its own input row no matter which worker
	// processed it
	records := make([]ODRecord, 12)
	for i := range records {
		records[i] = ODRecord{
			Origin:           1001,
			Destination:      3001,
			Checkpoint:       2001,
			HasCheckpoint:    true,
			TripsPerson:      float64((i + 1) * 10),
			IntrazonalFactor: 1.0,
		}
	}
	session := NewRoutingSession(pipeline, 4, 3)
	evaluations, err := session.EvaluateAll(records)
	if err != nil {
		t.Fatal(err)
	}
	for i := range records {
		expected := records[i].TripsPerson / 2.0 // share 0.75 / focup 2.0 + share 0.25 / focup 2.0
		if evaluations[i].Vehicles.Total != expected {
			t.Errorf("Row %d: expected total %f, but got %f", i, expected, evaluations[i].Vehicles.Total)
		}
	}
}

func TestSessionEmptyInput(t *testing.T) {
	pipeline := testPipeline(t)
	session := NewRoutingSession(pipeline, 2, 2)
	evaluations, err := session.EvaluateAll([]ODRecord{})
	if err != nil {
		t.Fatal(err)
	}
	if len(evaluations) != 0 {
		t.Errorf("Expected empty result, but got %d evaluations", len(evaluations))
	}
}

func TestSessionReuse(t *testing.T) {
	pipeline := testPipeline(t)
	records := sessionRecords()
	session := NewRoutingSession(pipeline, 3, 2)
	first, err := session.EvaluateAll(records)
	if err != nil {
		t.Fatal(err)
	}
	second, err := session.EvaluateAll(records)
	if err != nil {
		t.Fatal(err)
	}
	for i := range first {
		if !equalOrBothNaN(first[i].Vehicles.Total, second[i].Vehicles.Total) {
			t.Errorf("Row %d: repeated run must give the same total, but got %f and %f", i, first[i].Vehicles.Total, second[i].Vehicles.Total)
		}
	}
}

func TestSessionFatalError(t *testing.T) {
	pipeline := testPipeline(t)
	records := sessionRecords()
	records = append(records, ODRecord{Origin: 424242, Destination: 3001, TripsPerson: 1, IntrazonalFactor: 1})
	session := NewRoutingSession(pipeline, 2, 2)
	_, err := session.EvaluateAll(records)
	if err == nil {
		t.Error("Unknown node must abort the whole batch")
	}
}
