package rocketry

import (
	"os"
	"strings"
	"testing"
	"time"
)

func TestExportConfigUselessness(t *testing.T) {
	if !(ExportConfig{}).IsUseless() {
		t.Fatal("empty config not useless")
	}
	if (ExportConfig{Filename: "x", AsCSV: true}).IsUseless() {
		t.Fatal("CSV config flagged useless")
	}
}

func TestStreamStatesWritesCSV(t *testing.T) {
	os.Unsetenv("ROCKETRY_CONFIG")
	cfgLoaded = false

	earth := mustBody("Earth", 5.972e24, 6371.0, [3]uint8{}, nil, 0)
	sys, err := NewSystem(earth)
	if err != nil {
		t.Fatal(err)
	}
	r, err := NewRocketInCircularOrbit("csv", 1000, 9000, 150e3, 40, earth, 200)
	if err != nil {
		t.Fatal(err)
	}
	start := time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC)
	conf := ExportConfig{Filename: "unittest", AsCSV: true}
	sim := NewPreciseSimulation("csv", sys, []*Rocket{r}, start, start.Add(5*time.Second), time.Second, conf)
	if err = sim.Propagate(); err != nil {
		t.Fatal(err)
	}

	filename := "./states-unittest-0.csv"
	defer os.Remove(filename)
	contents, err := os.ReadFile(filename)
	if err != nil {
		t.Fatalf("no export written: %v", err)
	}
	asStr := string(contents)
	if !strings.Contains(asStr, "jd,time,parent,x,y,vx,vy,fuel") {
		t.Fatal("missing CSV header")
	}
	if !strings.Contains(asStr, ",Earth,") {
		t.Fatal("missing state records")
	}
	if !strings.Contains(asStr, "# Simulation time end (UTC)") {
		t.Fatal("missing closing comment")
	}
	// Header plus one record per tick plus the end comment.
	if lines := strings.Count(asStr, "\n"); lines < 6 {
		t.Fatalf("only %d lines exported", lines)
	}
}
