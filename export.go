package rocketry

import (
	"fmt"
	"os"
	"time"

	"github.com/soniakeys/meeus/julian"
)

// ExportConfig configures the exporting of the simulation.
type ExportConfig struct {
	Filename  string
	AsCSV     bool
	Timestamp bool
}

// IsUseless returns whether this config doesn't actually do anything.
func (c ExportConfig) IsUseless() bool {
	return !c.AsCSV
}

// createStateCSVFile returns a file which requires a defer close statement!
func createStateCSVFile(filename string, conf ExportConfig, stateDT time.Time) *os.File {
	config := rocketryConfig()
	if conf.Timestamp {
		t := time.Now()
		filename = fmt.Sprintf("%s/states-%s-%d-%02d-%02dT%02d.%02d.%02d.csv", config.outputDir, filename, t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second())
	} else {
		filename = fmt.Sprintf("%s/states-%s.csv", config.outputDir, filename)
	}
	f, err := os.Create(filename)
	if err != nil {
		panic(err)
	}
	// Header
	f.WriteString(fmt.Sprintf(`# Creation date (UTC): %s
# Records are <jd> <parent> <x> <y> <vx> <vy> <fuel>
#   Time is a UTC Julian date
#   Position in meters, velocity in m/s, both in the parent frame
#   Simulation time start (UTC): %s
jd,time,parent,x,y,vx,vy,fuel`, time.Now(), stateDT.UTC()))
	return f
}

// StreamStates streams the output of the channel to a CSV file. A new file is
// started whenever the rocket changes parent, so each file holds states in a
// single frame.
func StreamStates(conf ExportConfig, stateChan <-chan State) {
	var prevStatePtr *State
	var fileNo uint8
	var f *os.File
	for {
		state, more := <-stateChan
		if !more {
			// The channel is closed, hence the simulation is over.
			if f != nil {
				f.WriteString(fmt.Sprintf("\n# Simulation time end (UTC): %s\n", prevStatePtr.DT.UTC()))
				f.Close()
			}
			break
		}
		if prevStatePtr == nil {
			f = createStateCSVFile(fmt.Sprintf("%s-%d", conf.Filename, fileNo), conf, state.DT)
			fileNo++
		} else if prevStatePtr.Parent != state.Parent {
			// SOI transition: switch files.
			f.WriteString(fmt.Sprintf("\n# Simulation time end (UTC): %s\n", state.DT.UTC()))
			f.Close()
			f = createStateCSVFile(fmt.Sprintf("%s-%d", conf.Filename, fileNo), conf, state.DT)
			fileNo++
		}
		prevStatePtr = &state
		r := state.Rocket
		asTxt := fmt.Sprintf("%f,%s,%s,%f,%f,%f,%f,%.3f", julian.TimeToJD(state.DT), state.DT.UTC().Format("2006-01-02 15:04:05"), state.Parent, r.X, r.Y, r.DX, r.DY, r.FuelMass)
		if _, err := f.WriteString("\n" + asTxt); err != nil {
			panic(err)
		}
	}
}
