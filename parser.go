package od2veh

import (
	"bufio"
	"encoding/csv"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// ImportNetworkFromCSV imports road network from two CSV files (';' separated).
/*
	Nodes file columns: id;x;y
	Edges file columns: from;to;length_m;speed_kmh;class

	Speed may be left empty, then defaultSpeedKmh is used. The returned
	network is already prepared for routing.
*/
func ImportNetworkFromCSV(nodesFileName, edgesFileName string, defaultSpeedKmh float64) (*Network, error) {
	net := NewNetwork()

	nodesRows, err := readCSV(nodesFileName, []string{"id", "x", "y"})
	if err != nil {
		return nil, errors.Wrap(err, "Can not read nodes file")
	}
	for i, row := range nodesRows {
		id, err := parseNodeID(row[0])
		if err != nil {
			return nil, errors.Wrapf(err, "Bad node identifier in row %d", i+1)
		}
		x, err := strconv.ParseFloat(row[1], 64)
		if err != nil {
			return nil, errors.Wrapf(err, "Bad X coordinate in row %d", i+1)
		}
		y, err := strconv.ParseFloat(row[2], 64)
		if err != nil {
			return nil, errors.Wrapf(err, "Bad Y coordinate in row %d", i+1)
		}
		net.AddNode(id, GeoPoint{Lon: x, Lat: y})
	}

	edgesRows, err := readCSV(edgesFileName, []string{"from", "to", "length_m", "speed_kmh", "class"})
	if err != nil {
		return nil, errors.Wrap(err, "Can not read edges file")
	}
	for i, row := range edgesRows {
		from, err := parseNodeID(row[0])
		if err != nil {
			return nil, errors.Wrapf(err, "Bad edge source in row %d", i+1)
		}
		to, err := parseNodeID(row[1])
		if err != nil {
			return nil, errors.Wrapf(err, "Bad edge target in row %d", i+1)
		}
		length, err := strconv.ParseFloat(row[2], 64)
		if err != nil {
			return nil, errors.Wrapf(err, "Bad edge length in row %d", i+1)
		}
		speed := defaultSpeedKmh
		if strings.TrimSpace(row[3]) != "" {
			speed, err = strconv.ParseFloat(row[3], 64)
			if err != nil {
				return nil, errors.Wrapf(err, "Bad edge speed in row %d", i+1)
			}
		}
		err = net.AddEdge(Edge{From: from, To: to, LengthMeters: length, SpeedKmh: speed, Class: row[4]})
		if err != nil {
			return nil, errors.Wrapf(err, "Can not add edge from row %d", i+1)
		}
	}

	net.Prepare()
	return net, nil
}

// ImportODFromCSV imports OD records from CSV file (';' separated).
/*
	Columns: origin;destination;checkpoint;trips_person;intrazonal_factor
	Checkpoint may be left empty. Intrazonal factor must be 0 or 1.
*/
func ImportODFromCSV(fileName string) ([]ODRecord, error) {
	rows, err := readCSV(fileName, []string{"origin", "destination", "checkpoint", "trips_person", "intrazonal_factor"})
	if err != nil {
		return nil, errors.Wrap(err, "Can not read OD file")
	}
	records := make([]ODRecord, 0, len(rows))
	for i, row := range rows {
		record := ODRecord{}
		record.Origin, err = parseNodeID(row[0])
		if err != nil {
			return nil, errors.Wrapf(err, "Bad origin in row %d", i+1)
		}
		record.Destination, err = parseNodeID(row[1])
		if err != nil {
			return nil, errors.Wrapf(err, "Bad destination in row %d", i+1)
		}
		if strings.TrimSpace(row[2]) != "" {
			record.Checkpoint, err = parseNodeID(row[2])
			if err != nil {
				return nil, errors.Wrapf(err, "Bad checkpoint in row %d", i+1)
			}
			record.HasCheckpoint = true
		}
		record.TripsPerson, err = strconv.ParseFloat(row[3], 64)
		if err != nil {
			return nil, errors.Wrapf(err, "Bad trips value in row %d", i+1)
		}
		if record.TripsPerson < 0 {
			return nil, errors.Errorf("Negative trips value in row %d", i+1)
		}
		record.IntrazonalFactor, err = strconv.ParseFloat(row[4], 64)
		if err != nil {
			return nil, errors.Wrapf(err, "Bad intrazonal factor in row %d", i+1)
		}
		if record.IntrazonalFactor != 0 && record.IntrazonalFactor != 1 {
			return nil, errors.Errorf("Intrazonal factor must be 0 or 1 in row %d", i+1)
		}
		records = append(records, record)
	}
	return records, nil
}

// ImportCapacityFromCSV imports observed capacity rows from CSV file (';' separated).
/*
	Columns: checkpoint;sentido;fa;m;a;b;cu;cai;caii;
	         focup_m;focup_a;focup_b;focup_cu;focup_cai;focup_caii

	Empty numeric cells become NaN: a missing observation must stay
	visible as missing, never as zero.
*/
func ImportCapacityFromCSV(fileName string) ([]CapacityRecord, error) {
	header := []string{"checkpoint", "sentido", "fa"}
	for i := 0; i < numCategories; i++ {
		header = append(header, strings.ToLower(categoryNames[i]))
	}
	for i := 0; i < numCategories; i++ {
		header = append(header, "focup_"+strings.ToLower(categoryNames[i]))
	}
	rows, err := readCSV(fileName, header)
	if err != nil {
		return nil, errors.Wrap(err, "Can not read capacity file")
	}
	records := make([]CapacityRecord, 0, len(rows))
	for i, row := range rows {
		record := CapacityRecord{}
		record.Checkpoint, err = parseNodeID(row[0])
		if err != nil {
			return nil, errors.Wrapf(err, "Bad checkpoint in row %d", i+1)
		}
		record.Sense = strings.TrimSpace(row[1])
		record.FA, err = parseOptionalFloat(row[2])
		if err != nil {
			return nil, errors.Wrapf(err, "Bad FA in row %d", i+1)
		}
		for c := 0; c < numCategories; c++ {
			record.Capacity[c], err = parseOptionalFloat(row[3+c])
			if err != nil {
				return nil, errors.Wrapf(err, "Bad capacity '%s' in row %d", categoryNames[c], i+1)
			}
			record.Occupancy[c], err = parseOptionalFloat(row[3+numCategories+c])
			if err != nil {
				return nil, errors.Wrapf(err, "Bad occupancy '%s' in row %d", categoryNames[c], i+1)
			}
		}
		records = append(records, record)
	}
	return records, nil
}

// ImportSenseCatalogFromFile imports sense catalog from plain text file: one code per line, '#' starts a comment
func ImportSenseCatalogFromFile(fileName string) (SenseCatalog, error) {
	file, err := os.Open(fileName)
	if err != nil {
		return nil, errors.Wrap(err, "Can not open sense catalog file")
	}
	defer file.Close()
	codes := []string{}
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		codes = append(codes, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "Can not read sense catalog file")
	}
	return NewSenseCatalog(codes), nil
}

// readCSV reads ';' separated file and verifies the header columns
func readCSV(fileName string, expectedHeader []string) ([][]string, error) {
	file, err := os.Open(fileName)
	if err != nil {
		return nil, errors.Wrap(err, "Can not open file")
	}
	defer file.Close()
	reader := csv.NewReader(file)
	reader.Comma = ';'
	header, err := reader.Read()
	if err != nil {
		return nil, errors.Wrap(err, "Can not read header")
	}
	if len(header) < len(expectedHeader) {
		return nil, errors.Errorf("Expected %d columns, got %d", len(expectedHeader), len(header))
	}
	for i := range expectedHeader {
		if strings.ToLower(strings.TrimSpace(header[i])) != expectedHeader[i] {
			return nil, errors.Errorf("Expected column '%s' at position %d, got '%s'", expectedHeader[i], i+1, header[i])
		}
	}
	rows := [][]string{}
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "Can not read row")
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// parseNodeID parses node identifier
func parseNodeID(s string) (NodeID, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, errors.Wrap(err, "Can not parse node identifier")
	}
	return NodeID(id), nil
}

// parseOptionalFloat parses float value treating empty cell as NaN
func parseOptionalFloat(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return math.NaN(), nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN(), errors.Wrap(err, "Can not parse float value")
	}
	return v, nil
}
