package rocketry

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	rocketFuelGauge = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "rocket_fuel_kg",
			Help: "Remaining fuel mass of each rocket (in kg)",
		},
		[]string{"rocket"},
	)
	rocketSpeedGauge = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "rocket_speed_mps",
			Help: "Speed of each rocket relative to its parent body (in m/s)",
		},
		[]string{"rocket"},
	)
	rocketDistanceGauge = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "rocket_distance_km",
			Help: "Distance of each rocket from its parent body's center (in km)",
		},
		[]string{"rocket", "parent"},
	)
	rocketDeltaVGauge = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "rocket_delta_v_mps",
			Help: "Remaining ideal delta-v of each rocket (in m/s)",
		},
		[]string{"rocket"},
	)
	rocketThrustFractionGauge = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "rocket_thrust_fraction",
			Help: "Throttle setting of each rocket (0 to 1)",
		},
		[]string{"rocket"},
	)
	simTicksCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "sim_ticks_total",
		Help: "Number of simulation ticks performed",
	})
)

func init() {
	prometheus.MustRegister(
		rocketFuelGauge, rocketSpeedGauge, rocketDistanceGauge,
		rocketDeltaVGauge, rocketThrustFractionGauge, simTicksCounter,
	)
}

func pushTelemetry(r *Rocket) {
	rocketFuelGauge.WithLabelValues(r.Name).Set(r.FuelMass)
	rocketSpeedGauge.WithLabelValues(r.Name).Set(r.Speed())
	rocketDistanceGauge.WithLabelValues(r.Name, r.Parent().Name).Set(r.DistanceFromParent())
	rocketDeltaVGauge.WithLabelValues(r.Name).Set(r.DeltaV())
	rocketThrustFractionGauge.WithLabelValues(r.Name).Set(r.ThrustFraction())
}

func countTick() {
	simTicksCounter.Inc()
}
