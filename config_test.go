package rocketry

import (
	"os"
	"testing"
	"time"
)

func TestConfigDefaults(t *testing.T) {
	os.Unsetenv("ROCKETRY_CONFIG")
	cfgLoaded = false
	if step := DefaultStep(); step != time.Second {
		t.Fatalf("default step = %s", step)
	}
	if addr := ListenAddress(); addr != ":8086" {
		t.Fatalf("default listen address = %s", addr)
	}
}

func TestConfigMissingFile(t *testing.T) {
	os.Setenv("ROCKETRY_CONFIG", "/nonexistent-rocketry-conf")
	cfgLoaded = false
	assertPanic(t, func() {
		rocketryConfig()
	})
	os.Unsetenv("ROCKETRY_CONFIG")
	cfgLoaded = false
}
