package main

import (
	"flag"
	"fmt"
	"time"

	"github.com/movilidad-urbana/od2veh"
)

var (
	configFileName   = flag.String("config", "", "Filename of YAML configuration file (optional, defaults are used when omitted)")
	nodesFileName    = flag.String("nodes", "nodes.csv", "Filename of CSV file with network nodes (id;x;y)")
	edgesFileName    = flag.String("edges", "edges.csv", "Filename of CSV file with network edges (from;to;length_m;speed_kmh;class)")
	odFileName       = flag.String("od", "od.csv", "Filename of CSV file with OD records")
	capacityFileName = flag.String("capacity", "capacity.csv", "Filename of CSV file with observed checkpoint capacity")
	sensesFileName   = flag.String("senses", "", "Filename of sense catalog file, one code per line (optional, configured codes are used when omitted)")
	outFileName      = flag.String("out", "vehicle_trips.csv", "Filename of output CSV file with vehicle trips")
	geojsonFileName  = flag.String("geojson", "", "Filename of debug GeoJSON file with checkpoint-constrained routes (optional)")
	workersNum       = flag.Int("workers", -1, "Number of workers for batch evaluation. Overrides configuration when non-negative; 0 means all CPUs")
)

func main() {
	flag.Parse()

	cfg := od2veh.DefaultConfig()
	if *configFileName != "" {
		var err error
		cfg, err = od2veh.LoadConfig(*configFileName)
		if err != nil {
			fmt.Println(err)
			return
		}
	}
	if *workersNum >= 0 {
		cfg.Workers = *workersNum
	}

	st := time.Now()
	net, err := od2veh.ImportNetworkFromCSV(*nodesFileName, *edgesFileName, cfg.DefaultSpeedKmh)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Printf("Network of %d nodes and %d edges prepared in %v\n", net.NumNodes(), net.NumEdges(), time.Since(st))

	catalog := od2veh.NewSenseCatalog(cfg.SenseCodes)
	if *sensesFileName != "" {
		catalog, err = od2veh.ImportSenseCatalogFromFile(*sensesFileName)
		if err != nil {
			fmt.Println(err)
			return
		}
	}

	capacityRows, err := od2veh.ImportCapacityFromCSV(*capacityFileName)
	if err != nil {
		fmt.Println(err)
		return
	}
	capacity, err := od2veh.NewCapacityTable(capacityRows)
	if err != nil {
		fmt.Println(err)
		return
	}

	records, err := od2veh.ImportODFromCSV(*odFileName)
	if err != nil {
		fmt.Println(err)
		return
	}
	if cfg.CheckpointFilter > 0 {
		filtered := make([]od2veh.ODRecord, 0, len(records))
		for _, record := range records {
			if record.HasCheckpoint && record.Checkpoint == od2veh.NodeID(cfg.CheckpointFilter) {
				filtered = append(filtered, record)
			}
		}
		fmt.Printf("Checkpoint filter %d keeps %d of %d records\n", cfg.CheckpointFilter, len(filtered), len(records))
		records = filtered
	}

	pipeline := od2veh.NewPipeline(net, catalog, capacity)
	session := od2veh.NewRoutingSession(pipeline, cfg.Workers, cfg.ChunkSize)

	st = time.Now()
	evaluations, err := session.EvaluateAll(records)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Printf("Evaluated %d records in %v\n", len(records), time.Since(st))

	err = od2veh.ExportVehicleTripsToCSV(records, evaluations, *outFileName)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Printf("Vehicle trips written to %s\n", *outFileName)

	if *geojsonFileName != "" {
		err = od2veh.ExportRoutesToGeoJSON(net, records, evaluations, *geojsonFileName)
		if err != nil {
			fmt.Println(err)
			return
		}
		fmt.Printf("Debug routes written to %s\n", *geojsonFileName)
	}
}
