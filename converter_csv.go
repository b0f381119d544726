package od2veh

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"strconv"

	"github.com/pkg/errors"
)

// ExportVehicleTripsToCSV writes the final vehicle trips artifact (';' separated).
/*
	Exactly 9 columns leave the engine boundary:
	Origen;Destino;veh_M;veh_A;veh_B;veh_CU;veh_CAI;veh_CAII;veh_total

	Intermediate fields (sense, capacities, congruence, distances) are
	debug-only and are never written here. NaN values are rendered as
	empty cells so missing data stays distinguishable from zero demand.
*/
func ExportVehicleTripsToCSV(records []ODRecord, evaluations []TripEvaluation, fileName string) error {
	if len(records) != len(evaluations) {
		return errors.Errorf("Records and evaluations mismatch: %d != %d", len(records), len(evaluations))
	}
	file, err := os.Create(fileName)
	if err != nil {
		return errors.Wrap(err, "Can not create file")
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()
	writer.Comma = ';'

	header := []string{"Origen", "Destino"}
	for i := 0; i < numCategories; i++ {
		header = append(header, "veh_"+categoryNames[i])
	}
	header = append(header, "veh_total")
	err = writer.Write(header)
	if err != nil {
		return errors.Wrap(err, "Can not write header")
	}

	for i := range records {
		row := []string{
			fmt.Sprintf("%d", records[i].Origin),
			fmt.Sprintf("%d", records[i].Destination),
		}
		for c := 0; c < numCategories; c++ {
			row = append(row, formatOptionalFloat(evaluations[i].Vehicles.Vehicles[c]))
		}
		row = append(row, formatOptionalFloat(evaluations[i].Vehicles.Total))
		err = writer.Write(row)
		if err != nil {
			return errors.Wrapf(err, "Can not write row %d", i+1)
		}
	}
	return nil
}

// formatOptionalFloat renders float value, NaN becomes empty cell
func formatOptionalFloat(v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
