package main

import (
	"fmt"

	"github.com/soniakeys/meeus/julian"
	"github.com/spf13/viper"

	"github.com/daftcube/orbitlib"
)

type predictionSpec struct {
	orbit      string
	start, end float64
	step       float64
	tolerance  float64
	output     string
}

type approachSpec struct {
	orbits     [2]string
	distance   float64
	start, end float64
}

type scenarioData struct {
	bodies     map[string]*orbitlib.ParentBody
	orbits     map[string]*orbitlib.Orbit
	prediction *predictionSpec
	approach   *approachSpec
}

// loadScenario builds the body tree and orbits from the loaded viper config.
// Bodies are created first, then orbits (which reference bodies), then parent
// links (which reference orbits).
func loadScenario() (*scenarioData, error) {
	scn := &scenarioData{
		bodies: make(map[string]*orbitlib.ParentBody),
		orbits: make(map[string]*orbitlib.Orbit),
	}
	for name := range viper.GetStringMap("bodies") {
		mass := viper.GetFloat64(fmt.Sprintf("bodies.%s.mass", name))
		radius := viper.GetFloat64(fmt.Sprintf("bodies.%s.radius", name))
		if mass <= 0 {
			return nil, fmt.Errorf("body `%s` needs a positive mass", name)
		}
		scn.bodies[name] = orbitlib.NewParentBody(name, mass, radius)
	}
	for name := range viper.GetStringMap("orbits") {
		orbit, err := loadOrbit(scn, name)
		if err != nil {
			return nil, err
		}
		scn.orbits[name] = orbit
	}
	for name, body := range scn.bodies {
		parentName := viper.GetString(fmt.Sprintf("bodies.%s.parent", name))
		if parentName == "" {
			continue
		}
		parent, found := scn.bodies[parentName]
		if !found {
			return nil, fmt.Errorf("body `%s` references unknown parent `%s`", name, parentName)
		}
		orbitName := viper.GetString(fmt.Sprintf("bodies.%s.orbit", name))
		orbit, found := scn.orbits[orbitName]
		if !found {
			return nil, fmt.Errorf("body `%s` references unknown orbit `%s`", name, orbitName)
		}
		if err := body.SetParent(parent, orbit); err != nil {
			return nil, err
		}
	}
	if viper.IsSet("prediction") {
		scn.prediction = &predictionSpec{
			orbit:     viper.GetString("prediction.orbit"),
			start:     confReadEpoch("prediction.start"),
			end:       confReadEpoch("prediction.end"),
			step:      viper.GetFloat64("prediction.step"),
			tolerance: viper.GetFloat64("prediction.tolerance"),
			output:    viper.GetString("prediction.output"),
		}
		if scn.prediction.step <= 0 {
			scn.prediction.step = 60
		}
		if scn.prediction.tolerance <= 0 {
			scn.prediction.tolerance = 1e-8
		}
	}
	if viper.IsSet("approach") {
		names := viper.GetStringSlice("approach.orbits")
		if len(names) != 2 {
			return nil, fmt.Errorf("approach needs exactly two orbits, got %d", len(names))
		}
		scn.approach = &approachSpec{
			orbits:   [2]string{names[0], names[1]},
			distance: viper.GetFloat64("approach.distance"),
			start:    confReadEpoch("approach.start"),
			end:      confReadEpoch("approach.end"),
		}
	}
	return scn, nil
}

func loadOrbit(scn *scenarioData, name string) (*orbitlib.Orbit, error) {
	bodyName := viper.GetString(fmt.Sprintf("orbits.%s.body", name))
	body, found := scn.bodies[bodyName]
	if !found {
		return nil, fmt.Errorf("orbit `%s` references unknown body `%s`", name, bodyName)
	}
	epoch := confReadEpoch(fmt.Sprintf("orbits.%s.epoch", name))
	if viper.IsSet(fmt.Sprintf("orbits.%s.rx", name)) {
		R := []float64{
			viper.GetFloat64(fmt.Sprintf("orbits.%s.rx", name)),
			viper.GetFloat64(fmt.Sprintf("orbits.%s.ry", name)),
			viper.GetFloat64(fmt.Sprintf("orbits.%s.rz", name)),
		}
		V := []float64{
			viper.GetFloat64(fmt.Sprintf("orbits.%s.vx", name)),
			viper.GetFloat64(fmt.Sprintf("orbits.%s.vy", name)),
			viper.GetFloat64(fmt.Sprintf("orbits.%s.vz", name)),
		}
		return orbitlib.NewOrbitFromRV(R, V, epoch, body), nil
	}
	a := viper.GetFloat64(fmt.Sprintf("orbits.%s.sma", name))
	e := viper.GetFloat64(fmt.Sprintf("orbits.%s.ecc", name))
	i := viper.GetFloat64(fmt.Sprintf("orbits.%s.inc", name))
	Ω := viper.GetFloat64(fmt.Sprintf("orbits.%s.RAAN", name))
	ω := viper.GetFloat64(fmt.Sprintf("orbits.%s.argPeri", name))
	ν := viper.GetFloat64(fmt.Sprintf("orbits.%s.tAnomaly", name))
	orbit, err := orbitlib.NewOrbitFromOE(a, e, i, Ω, ω, ν, epoch, body)
	if err != nil {
		return nil, fmt.Errorf("orbit `%s`: %s", name, err)
	}
	return orbit, nil
}

// confReadEpoch reads either a number of seconds or a date, which is converted
// to seconds on the Julian day timeline.
func confReadEpoch(key string) float64 {
	sec := viper.GetFloat64(key)
	if sec == 0 {
		if dt := viper.GetTime(key); !dt.IsZero() {
			return julian.TimeToJD(dt) * 86400
		}
	}
	return sec
}
