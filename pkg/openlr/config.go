package openlr

import (
	"runtime"

	"github.com/spf13/viper"
)

type Config struct {
	// candidate search radius (meter)
	SearchRadius float64
	// the radius is multiplied once by this factor when a point has no candidates.
	RadiusEscalationFactor float64
	MaxCandidatesPerPoint  int
	MaxRouteCombinations   int
	// number of classes the LowestFRCToNext floor is widened by during route search.
	FRCFloorTolerance int
	// k in exp(-k * |length - declared| / max(declared, DistanceResolution))
	DistancePenalty float64
	// meter, length of one DNP quantization step.
	DistanceResolution float64
	RouteWorkers       int

	// meter, maximum distance between two consecutive LRPs when encoding.
	MaxLRPDistance       float64
	SplitOnFRCChange     bool
	MaxEncodeIterations  int
	DefaultOnUnknownTags bool
}

func DefaultConfig() Config {
	return Config{
		SearchRadius:           50,
		RadiusEscalationFactor: 2,
		MaxCandidatesPerPoint:  10,
		MaxRouteCombinations:   30,
		FRCFloorTolerance:      1,
		DistancePenalty:        3,
		DistanceResolution:     58.6,
		RouteWorkers:           runtime.NumCPU(),
		MaxLRPDistance:         15000,
		SplitOnFRCChange:       false,
		MaxEncodeIterations:    64,
		DefaultOnUnknownTags:   false,
	}
}

// ConfigFromViper. read OPENLR_* keys, missing keys fall back to DefaultConfig.
func ConfigFromViper() Config {
	def := DefaultConfig()
	viper.SetDefault("OPENLR_SEARCH_RADIUS", def.SearchRadius)
	viper.SetDefault("OPENLR_RADIUS_ESCALATION_FACTOR", def.RadiusEscalationFactor)
	viper.SetDefault("OPENLR_MAX_CANDIDATES", def.MaxCandidatesPerPoint)
	viper.SetDefault("OPENLR_MAX_ROUTE_COMBINATIONS", def.MaxRouteCombinations)
	viper.SetDefault("OPENLR_FRC_FLOOR_TOLERANCE", def.FRCFloorTolerance)
	viper.SetDefault("OPENLR_DISTANCE_PENALTY", def.DistancePenalty)
	viper.SetDefault("OPENLR_DISTANCE_RESOLUTION", def.DistanceResolution)
	viper.SetDefault("OPENLR_ROUTE_WORKERS", def.RouteWorkers)
	viper.SetDefault("OPENLR_MAX_LRP_DISTANCE", def.MaxLRPDistance)
	viper.SetDefault("OPENLR_SPLIT_ON_FRC_CHANGE", def.SplitOnFRCChange)
	viper.SetDefault("OPENLR_MAX_ENCODE_ITERATIONS", def.MaxEncodeIterations)
	viper.SetDefault("OPENLR_DEFAULT_ON_UNKNOWN_TAGS", def.DefaultOnUnknownTags)

	return Config{
		SearchRadius:           viper.GetFloat64("OPENLR_SEARCH_RADIUS"),
		RadiusEscalationFactor: viper.GetFloat64("OPENLR_RADIUS_ESCALATION_FACTOR"),
		MaxCandidatesPerPoint:  viper.GetInt("OPENLR_MAX_CANDIDATES"),
		MaxRouteCombinations:   viper.GetInt("OPENLR_MAX_ROUTE_COMBINATIONS"),
		FRCFloorTolerance:      viper.GetInt("OPENLR_FRC_FLOOR_TOLERANCE"),
		DistancePenalty:        viper.GetFloat64("OPENLR_DISTANCE_PENALTY"),
		DistanceResolution:     viper.GetFloat64("OPENLR_DISTANCE_RESOLUTION"),
		RouteWorkers:           viper.GetInt("OPENLR_ROUTE_WORKERS"),
		MaxLRPDistance:         viper.GetFloat64("OPENLR_MAX_LRP_DISTANCE"),
		SplitOnFRCChange:       viper.GetBool("OPENLR_SPLIT_ON_FRC_CHANGE"),
		MaxEncodeIterations:    viper.GetInt("OPENLR_MAX_ENCODE_ITERATIONS"),
		DefaultOnUnknownTags:   viper.GetBool("OPENLR_DEFAULT_ON_UNKNOWN_TAGS"),
	}
}
