package rocketry

import (
	"math"
	"testing"

	"github.com/gonum/floats"
)

func TestAngleConversions(t *testing.T) {
	for _, pair := range [][2]float64{{0, 0}, {90, math.Pi / 2}, {180, math.Pi}, {270, 3 * math.Pi / 2}, {-90, 3 * math.Pi / 2}} {
		if got := Deg2rad(pair[0]); !floats.EqualWithinAbs(got, pair[1], angleε) {
			t.Fatalf("Deg2rad(%f) = %f, expected %f", pair[0], got, pair[1])
		}
	}
	for _, pair := range [][2]float64{{0, 0}, {math.Pi / 2, 90}, {math.Pi, 180}, {-math.Pi / 2, 270}} {
		if got := Rad2deg(pair[0]); !floats.EqualWithinAbs(got, pair[1], 1e-6) {
			t.Fatalf("Rad2deg(%f) = %f, expected %f", pair[0], got, pair[1])
		}
	}
}

func TestWrapTwoPi(t *testing.T) {
	for _, pair := range [][2]float64{
		{0, 0},
		{2 * math.Pi, 0},
		{5 * math.Pi, math.Pi},
		{-math.Pi / 2, 3 * math.Pi / 2},
		{7 * math.Pi / 2, 3 * math.Pi / 2},
	} {
		if got := wrapTwoPi(pair[0]); !floats.EqualWithinAbs(got, pair[1], angleε) {
			t.Fatalf("wrapTwoPi(%f) = %f, expected %f", pair[0], got, pair[1])
		}
	}
}

func TestVectorHelpers(t *testing.T) {
	if got := norm(3, 4); !floats.EqualWithinAbs(got, 5, 1e-12) {
		t.Fatalf("norm(3,4) = %f", got)
	}
	if got := dot([]float64{1, 2}, []float64{3, 4}); !floats.EqualWithinAbs(got, 11, 1e-12) {
		t.Fatalf("dot = %f", got)
	}
	ux, uy := unit(0, -2)
	if !floats.EqualWithinAbs(ux, 0, 1e-12) || !floats.EqualWithinAbs(uy, -1, 1e-12) {
		t.Fatalf("unit(0,-2) = (%f, %f)", ux, uy)
	}
	ux, uy = unit(0, 0)
	if ux != 0 || uy != 0 {
		t.Fatalf("unit(0,0) = (%f, %f)", ux, uy)
	}
}
