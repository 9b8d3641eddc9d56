package orbitlib

import (
	"os"

	"github.com/spf13/viper"
)

const (
	defaultNewtonMaxIters      = 1000
	defaultSearchSamples       = 1000
	defaultSearchTolerance     = 1e-2 // seconds
	defaultSearchMaxIters      = 100
	defaultPredictionTolerance = 1e-8
)

var (
	cfgLoaded = false
	config    = _orbitlibconfig{}
)

// _orbitlibconfig is a "hidden" struct, just use `libConfig`.
type _orbitlibconfig struct {
	newtonMaxIters      uint
	searchSamples       int
	searchTolerance     float64
	searchMaxIters      uint
	predictionTolerance float64
}

// libConfig returns the solver configuration. Built-in defaults are used
// unless the ORBITLIB_CONFIG environment variable points to a directory
// holding an orbitlib.toml overriding them.
func libConfig() _orbitlibconfig {
	if cfgLoaded {
		return config
	}
	v := viper.New()
	v.SetDefault("newton.max_iterations", defaultNewtonMaxIters)
	v.SetDefault("search.samples", defaultSearchSamples)
	v.SetDefault("search.tolerance", defaultSearchTolerance)
	v.SetDefault("search.max_iterations", defaultSearchMaxIters)
	v.SetDefault("search.prediction_tolerance", defaultPredictionTolerance)
	if confPath := os.Getenv("ORBITLIB_CONFIG"); confPath != "" {
		v.SetConfigName("orbitlib")
		v.AddConfigPath(confPath)
		// A missing or broken file falls back to the defaults.
		v.ReadInConfig()
	}
	config = _orbitlibconfig{
		newtonMaxIters:      uint(v.GetInt("newton.max_iterations")),
		searchSamples:       v.GetInt("search.samples"),
		searchTolerance:     v.GetFloat64("search.tolerance"),
		searchMaxIters:      uint(v.GetInt("search.max_iterations")),
		predictionTolerance: v.GetFloat64("search.prediction_tolerance"),
	}
	cfgLoaded = true
	return config
}
