package od2veh

import (
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config Run configuration for the pipeline.
/*
	An explicit struct passed into the entry point: nothing is read from
	process environment. Zero workers means "use all CPUs", zero checkpoint
	filter means "evaluate every record".
*/
type Config struct {
	DefaultSpeedKmh  float64  `yaml:"default_speed_kmh" validate:"gt=0"`
	Workers          int      `yaml:"workers" validate:"gte=0"`
	ChunkSize        int      `yaml:"chunk_size" validate:"gte=0"`
	SenseCodes       []string `yaml:"sense_codes"`
	CheckpointFilter int64    `yaml:"checkpoint_filter" validate:"gte=0"`
}

// DefaultConfig returns configuration with sane defaults.
// Default sense catalog lists every ordered pair of distinct cardinals
func DefaultConfig() Config {
	return Config{
		DefaultSpeedKmh: DefaultSpeedKmh,
		Workers:         0,
		ChunkSize:       DefaultChunkSize,
		SenseCodes: []string{
			"1-2", "1-3", "1-4",
			"2-1", "2-3", "2-4",
			"3-1", "3-2", "3-4",
			"4-1", "4-2", "4-3",
		},
	}
}

// LoadConfig reads and validates YAML configuration file.
// Absent fields keep their defaults
func LoadConfig(fileName string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(fileName)
	if err != nil {
		return cfg, errors.Wrap(err, "Can not read configuration file")
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrap(err, "Can not parse configuration file")
	}
	v := validator.New()
	if err := v.Struct(cfg); err != nil {
		return cfg, errors.Wrap(err, "Configuration is invalid")
	}
	return cfg, nil
}
