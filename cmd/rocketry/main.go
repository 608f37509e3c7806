package main

import (
	"flag"
	"log"
	"time"

	"github.com/SanderBuruma/rocketry"
)

var (
	durationDays float64
	altitudeKm   float64
	parentName   string
	exportName   string
	dryMass      float64
	fuelMass     float64
	thrust       float64
	fuelRate     float64
)

func init() {
	flag.Float64Var(&durationDays, "days", 1, "number of days to propagate")
	flag.Float64Var(&altitudeKm, "altitude", 200, "initial circular orbit altitude in km")
	flag.StringVar(&parentName, "parent", "Earth", "body to start in orbit around")
	flag.StringVar(&exportName, "export", "", "CSV export name (empty disables export)")
	flag.Float64Var(&dryMass, "dry", 1000, "dry mass in kg")
	flag.Float64Var(&fuelMass, "fuel", 9000, "fuel mass in kg")
	flag.Float64Var(&thrust, "thrust", 150e3, "thrust in N")
	flag.Float64Var(&fuelRate, "rate", 40, "fuel consumption rate in kg/s")
}

func main() {
	flag.Parse()

	sys := rocketry.NewSolarSystem()
	parent, found := sys.BodyByName(parentName)
	if !found {
		log.Fatalf("unknown body %q", parentName)
	}
	rocket, err := rocketry.NewRocketInCircularOrbit("vehicle", dryMass, fuelMass, thrust, fuelRate, parent, altitudeKm)
	if err != nil {
		log.Fatal(err)
	}

	start := time.Now().UTC()
	end := start.Add(time.Duration(durationDays*24) * time.Hour)
	conf := rocketry.ExportConfig{Filename: exportName, AsCSV: exportName != ""}
	sim := rocketry.NewPreciseSimulation("cli", sys, []*rocketry.Rocket{rocket}, start, end, rocketry.DefaultStep(), conf)

	go startControlServer(sim, sys, rocket)

	if err := sim.Propagate(); err != nil {
		log.Fatal(err)
	}
}
