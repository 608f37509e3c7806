package main

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/SanderBuruma/rocketry"
)

type bodyView struct {
	Name           string  `json:"name"`
	MassKg         float64 `json:"mass_kg"`
	RadiusKm       float64 `json:"radius_km"`
	Parent         string  `json:"parent,omitempty"`
	DistanceKm     float64 `json:"distance_km,omitempty"`
	OrbitAngle     float64 `json:"orbit_angle_rad"`
	SurfaceGravity float64 `json:"surface_gravity_mps2"`
	EscapeVelocity float64 `json:"escape_velocity_mps"`
	SOIKm          float64 `json:"soi_km,omitempty"`
	AbsX           float64 `json:"abs_x_m"`
	AbsY           float64 `json:"abs_y_m"`
}

type rocketView struct {
	Name           string  `json:"name"`
	Parent         string  `json:"parent"`
	X              float64 `json:"x_m"`
	Y              float64 `json:"y_m"`
	DX             float64 `json:"dx_mps"`
	DY             float64 `json:"dy_mps"`
	Rotation       float64 `json:"rotation_rad"`
	ThrustFraction float64 `json:"thrust_fraction"`
	FuelKg         float64 `json:"fuel_kg"`
	DistanceKm     float64 `json:"distance_km"`
	SpeedMps       float64 `json:"speed_mps"`
	DeltaVMps      float64 `json:"delta_v_mps"`
	BurnTimeS      float64 `json:"burn_time_s"`
}

// startControlServer exposes the read accessors and the thrust/rotation
// mutators over HTTP, plus the Prometheus scrape endpoint.
func startControlServer(sim *rocketry.Simulation, sys *rocketry.System, rocket *rocketry.Rocket) {
	router := mux.NewRouter()
	router.HandleFunc("/bodies", getBodiesHandler(sys)).Methods("GET")
	router.HandleFunc("/rocket", getRocketHandler(rocket)).Methods("GET")
	router.HandleFunc("/rocket/thrust", setThrustHandler(rocket)).Methods("POST")
	router.HandleFunc("/rocket/rotate", rotateHandler(rocket)).Methods("POST")
	router.HandleFunc("/simulation/stop", stopHandler(sim)).Methods("POST")
	router.Handle("/actuator/prometheus", promhttp.Handler())

	addr := rocketry.ListenAddress()
	log.Printf("control server listening at %s", addr)
	log.Fatal(http.ListenAndServe(addr, router))
}

func getBodiesHandler(sys *rocketry.System) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bodies := sys.Bodies()
		views := make([]bodyView, 0, len(bodies))
		for _, b := range bodies {
			x, y, err := sys.AbsolutePosition(b)
			if err != nil {
				http.Error(w, err.Error(), http.StatusInternalServerError)
				return
			}
			view := bodyView{
				Name:           b.Name,
				MassKg:         b.Mass,
				RadiusKm:       b.Radius,
				OrbitAngle:     b.OrbitAngle(),
				SurfaceGravity: b.SurfaceGravity(),
				EscapeVelocity: b.EscapeVelocity(),
				AbsX:           x,
				AbsY:           y,
			}
			if parent := b.Parent(); parent != nil {
				view.Parent = parent.Name
				view.DistanceKm = b.DistanceFromParent()
				soi, err := b.SphereOfInfluence()
				if err != nil {
					http.Error(w, err.Error(), http.StatusInternalServerError)
					return
				}
				view.SOIKm = soi
			}
			views = append(views, view)
		}
		writeJSON(w, views)
	}
}

func getRocketHandler(rocket *rocketry.Rocket) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, rocketView{
			Name:           rocket.Name,
			Parent:         rocket.Parent().Name,
			X:              rocket.X,
			Y:              rocket.Y,
			DX:             rocket.DX,
			DY:             rocket.DY,
			Rotation:       rocket.Rotation,
			ThrustFraction: rocket.ThrustFraction(),
			FuelKg:         rocket.FuelMass,
			DistanceKm:     rocket.DistanceFromParent(),
			SpeedMps:       rocket.Speed(),
			DeltaVMps:      rocket.DeltaV(),
			BurnTimeS:      rocket.BurnTime(),
		})
	}
}

func setThrustHandler(rocket *rocketry.Rocket) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload struct {
			Fraction float64 `json:"fraction"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			http.Error(w, "invalid JSON payload", http.StatusBadRequest)
			return
		}
		rocket.SetThrust(payload.Fraction)
		w.WriteHeader(http.StatusOK)
	}
}

func rotateHandler(rocket *rocketry.Rocket) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload struct {
			Delta float64 `json:"delta_rad"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			http.Error(w, "invalid JSON payload", http.StatusBadRequest)
			return
		}
		rocket.Rotate(payload.Delta)
		w.WriteHeader(http.StatusOK)
	}
}

func stopHandler(sim *rocketry.Simulation) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sim.StopPropagation()
		w.WriteHeader(http.StatusAccepted)
	}
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil && !errors.Is(err, http.ErrHandlerTimeout) {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
