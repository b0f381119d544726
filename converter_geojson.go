package od2veh

import (
	"os"

	geojson "github.com/paulmach/go.geojson"
	"github.com/paulmach/orb"
	"github.com/pkg/errors"
)

// lineCoords converts orb linestring to raw coordinates consumable by go.geojson
func lineCoords(line orb.LineString) [][]float64 {
	pts2d := make([][]float64, len(line))
	for i := range line {
		pts2d[i] = []float64{line[i].X(), line[i].Y()}
	}
	return pts2d
}

// ExportRoutesToGeoJSON writes debug FeatureCollection of checkpoint-constrained routes.
/*
	One LineString feature per evaluated record carrying origin,
	destination, sense and congruence properties, plus one Point feature
	per distinct checkpoint. Debug-only output: it is not a part of the
	engine's contractual artifact.
*/
func ExportRoutesToGeoJSON(net *Network, records []ODRecord, evaluations []TripEvaluation, fileName string) error {
	if len(records) != len(evaluations) {
		return errors.Errorf("Records and evaluations mismatch: %d != %d", len(records), len(evaluations))
	}
	fc := geojson.NewFeatureCollection()
	checkpoints := make(map[NodeID]struct{})
	for i := range records {
		line := net.Geometry(evaluations[i].Via)
		if len(line) < 2 {
			continue
		}
		feature := geojson.NewLineStringFeature(lineCoords(line))
		feature.SetProperty("origin", int64(records[i].Origin))
		feature.SetProperty("destination", int64(records[i].Destination))
		feature.SetProperty("checkpoint", int64(records[i].Checkpoint))
		feature.SetProperty("sense", evaluations[i].Sense)
		feature.SetProperty("congruence", evaluations[i].Congruence)
		fc.AddFeature(feature)
		if records[i].HasCheckpoint {
			checkpoints[records[i].Checkpoint] = struct{}{}
		}
	}
	for checkpoint := range checkpoints {
		geom, ok := net.NodeGeom(checkpoint)
		if !ok {
			continue
		}
		feature := geojson.NewPointFeature([]float64{geom.Point().X(), geom.Point().Y()})
		feature.SetProperty("checkpoint", int64(checkpoint))
		fc.AddFeature(feature)
	}
	b, err := fc.MarshalJSON()
	if err != nil {
		return errors.Wrap(err, "Can not marshal feature collection")
	}
	err = os.WriteFile(fileName, b, 0644)
	if err != nil {
		return errors.Wrap(err, "Can not write file")
	}
	return nil
}
