package main

import (
	"flag"
	"fmt"
	"math"
	"os"
	"strings"

	kitlog "github.com/go-kit/kit/log"
	"github.com/spf13/viper"

	"github.com/daftcube/orbitlib"
)

// orbitctl reads a scenario TOML, propagates the requested orbit over the
// prediction span via the universal variable formulation, and optionally runs
// a closest-approach query between two orbits of the scenario.

const defaultScenario = "~~unset~~"

var (
	scenario string
	verbose  bool
)

func init() {
	flag.StringVar(&scenario, "scenario", defaultScenario, "scenario TOML file")
	flag.BoolVar(&verbose, "verbose", false, "log every predicted state")
}

func main() {
	flag.Parse()
	logger := kitlog.NewLogfmtLogger(kitlog.NewSyncWriter(os.Stderr))
	logger = kitlog.With(logger, "ts", kitlog.DefaultTimestampUTC, "cmd", "orbitctl")
	if scenario == defaultScenario {
		logger.Log("err", "no scenario provided")
		os.Exit(1)
	}
	scenario = strings.Replace(scenario, ".toml", "", 1)
	viper.AddConfigPath(".")
	viper.SetConfigName(scenario)
	if err := viper.ReadInConfig(); err != nil {
		logger.Log("err", err, "scenario", scenario)
		os.Exit(1)
	}

	scn, err := loadScenario()
	if err != nil {
		logger.Log("err", err)
		os.Exit(1)
	}
	logger.Log("msg", "scenario loaded", "bodies", len(scn.bodies), "orbits", len(scn.orbits))

	if scn.prediction != nil {
		if err := runPrediction(logger, scn); err != nil {
			logger.Log("err", err)
			os.Exit(1)
		}
	}
	if scn.approach != nil {
		runApproach(logger, scn)
	}
}

func runPrediction(logger kitlog.Logger, scn *scenarioData) error {
	p := scn.prediction
	orbit, found := scn.orbits[p.orbit]
	if !found {
		return fmt.Errorf("prediction references unknown orbit `%s`", p.orbit)
	}
	var out *os.File
	if p.output != "" {
		f, err := os.Create(p.output)
		if err != nil {
			return err
		}
		defer f.Close()
		if _, err := f.WriteString("t,nu,rx,ry,rz,vx,vy,vz\n"); err != nil {
			return err
		}
		out = f
	}
	steps := 0
	for t := p.start; t <= p.end; t += p.step {
		ν, err := orbit.UniversalPrediction(t, p.tolerance)
		if err != nil {
			return fmt.Errorf("t=%f: %s", t, err)
		}
		R, V := orbit.RVAtTrueAnomaly(ν)
		if out != nil {
			out.WriteString(fmt.Sprintf("%f,%f,%f,%f,%f,%f,%f,%f\n", t, ν, R[0], R[1], R[2], V[0], V[1], V[2]))
		}
		if verbose {
			logger.Log("t", t, "nu", ν, "r", orbitlib.Norm(R), "v", orbitlib.Norm(V))
		}
		steps++
	}
	logger.Log("msg", "prediction complete", "orbit", p.orbit, "steps", steps, "output", p.output)
	return nil
}

func runApproach(logger kitlog.Logger, scn *scenarioData) {
	ap := scn.approach
	a, foundA := scn.orbits[ap.orbits[0]]
	b, foundB := scn.orbits[ap.orbits[1]]
	if !foundA || !foundB {
		logger.Log("err", "approach references an unknown orbit")
		os.Exit(1)
	}
	t, crossed := a.CrossesWithinDistance(b, ap.distance, ap.start, ap.end)
	if !crossed {
		logger.Log("msg", "no crossing found", "distance", ap.distance, "start", ap.start, "end", ap.end)
		return
	}
	logger.Log("msg", "crossing found", "t", t, "distance", ap.distance)
	if !math.IsInf(a.Period(), 1) {
		logger.Log("msg", "crossing position on orbit", "orbit", ap.orbits[0], "periodFraction", (t-a.Epoch())/a.Period())
	}
}
