package rocketry

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

var (
	cfgLoaded = false
	config    = _rocketryconfig{}
)

// _rocketryconfig is a "hidden" struct, just use `rocketryConfig`
type _rocketryconfig struct {
	outputDir string
	step      time.Duration
	listen    string
}

// rocketryConfig returns the rocketry configuration, loaded once from
// $ROCKETRY_CONFIG/conf.toml. When the environment variable is unset, the
// defaults apply.
func rocketryConfig() _rocketryconfig {
	if cfgLoaded {
		return config
	}
	viper.SetDefault("general.output_path", ".")
	viper.SetDefault("simulation.step", "1s")
	viper.SetDefault("server.listen", ":8086")
	if confPath := os.Getenv("ROCKETRY_CONFIG"); confPath != "" {
		viper.SetConfigName("conf")
		viper.AddConfigPath(confPath)
		if err := viper.ReadInConfig(); err != nil {
			panic(fmt.Errorf("%s/conf.toml not found", confPath))
		}
	}
	step, err := time.ParseDuration(viper.GetString("simulation.step"))
	if err != nil {
		panic(fmt.Errorf("invalid simulation.step: %s", err))
	}
	config = _rocketryconfig{outputDir: viper.GetString("general.output_path"), step: step, listen: viper.GetString("server.listen")}
	cfgLoaded = true
	return config
}

// DefaultStep returns the configured simulation step size.
func DefaultStep() time.Duration {
	return rocketryConfig().step
}

// ListenAddress returns the configured address of the control server.
func ListenAddress() string {
	return rocketryConfig().listen
}
