package od2veh

import (
	"math"

	"github.com/pkg/errors"
)

// ODRecord Single cell of the origin-destination trip matrix with assigned network nodes.
// IntrazonalFactor is 0 or 1; 0 nullifies trips of same-zone pairs
type ODRecord struct {
	Origin           NodeID
	Destination      NodeID
	Checkpoint       NodeID
	HasCheckpoint    bool
	TripsPerson      float64
	IntrazonalFactor float64
}

// TripEvaluation Derived fields for a single OD record. The input record itself is never mutated
type TripEvaluation struct {
	Direct      Route // unconstrained shortest route (MC)
	Via         Route // route forced through the checkpoint (MC2)
	DetourRatio float64
	Sense       string
	Capacity    CapacityRecord
	CapTotal    float64
	Congruence  int
	Vehicles    VehicleTrips
}

// Pipeline Checkpoint-constrained routing and vehicle disaggregation engine
type Pipeline struct {
	net      *Network
	catalog  SenseCatalog
	capacity *CapacityTable
}

// NewPipeline returns pipeline over prepared network, sense catalog and capacity table
func NewPipeline(net *Network, catalog SenseCatalog, capacity *CapacityTable) *Pipeline {
	return &Pipeline{net: net, catalog: catalog, capacity: capacity}
}

// EvaluateRecord runs the whole chain for a single OD record: MC, MC2,
// sense derivation, capacity matching, congruence and vehicle trips.
/*
	Unknown origin, destination or checkpoint nodes are configuration
	errors and abort the run. A missing path, an indeterminate sense or an
	unmatched capacity row are per-row infeasibilities: the record gets
	CongruenceImpossible with NaN vehicle fields and processing goes on.
*/
func (pipeline *Pipeline) EvaluateRecord(od ODRecord) (TripEvaluation, error) {
	evaluation := TripEvaluation{
		DetourRatio: math.NaN(),
		Sense:       SenseUndefined,
		Capacity:    emptyCapacityRecord(od.Checkpoint, SenseUndefined),
		CapTotal:    math.NaN(),
	}
	if !pipeline.net.HasNode(od.Origin) {
		return evaluation, errors.Wrapf(ErrNodeNotFound, "Origin %d", od.Origin)
	}
	if !pipeline.net.HasNode(od.Destination) {
		return evaluation, errors.Wrapf(ErrNodeNotFound, "Destination %d", od.Destination)
	}
	if od.HasCheckpoint && !pipeline.net.HasNode(od.Checkpoint) {
		return evaluation, errors.Wrapf(ErrNodeNotFound, "Checkpoint %d", od.Checkpoint)
	}

	direct, err := pipeline.net.ShortestRoute(od.Origin, od.Destination)
	if err != nil {
		if errors.Cause(err) != ErrPathNotFound {
			return evaluation, errors.Wrap(err, "Unconstrained route")
		}
	} else {
		evaluation.Direct = direct
	}

	routeValid := false
	if od.HasCheckpoint {
		via, err := pipeline.net.ShortestRouteVia(od.Origin, od.Checkpoint, od.Destination)
		if err != nil {
			if errors.Cause(err) != ErrPathNotFound {
				return evaluation, errors.Wrap(err, "Constrained route")
			}
		} else {
			evaluation.Via = via
			evaluation.DetourRatio = DetourRatio(evaluation.Direct, via)
			evaluation.Sense = pipeline.catalog.Validate(pipeline.net.DeriveSense(via, od.Checkpoint))
			routeValid = via.LengthMeters > 0
		}
	}

	directional := pipeline.capacity.Directional(od.Checkpoint)
	if od.HasCheckpoint {
		evaluation.Capacity, evaluation.Sense = pipeline.capacity.Match(od.Checkpoint, evaluation.Sense)
		evaluation.CapTotal = evaluation.Capacity.CapTotal()
	}
	evaluation.Congruence = ClassifyCongruence(routeValid, evaluation.Sense, directional, evaluation.CapTotal)
	evaluation.Vehicles = ComputeVehicleTrips(od.TripsPerson, od.IntrazonalFactor, evaluation.Capacity, evaluation.CapTotal, evaluation.Congruence)
	return evaluation, nil
}

// EvaluateAll evaluates records one by one preserving input order
func (pipeline *Pipeline) EvaluateAll(records []ODRecord) ([]TripEvaluation, error) {
	evaluations := make([]TripEvaluation, len(records))
	for i := range records {
		evaluation, err := pipeline.EvaluateRecord(records[i])
		if err != nil {
			return nil, errors.Wrapf(err, "Record %d", i)
		}
		evaluations[i] = evaluation
	}
	return evaluations, nil
}
