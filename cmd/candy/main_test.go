package main

import (
	"testing"

	"github.com/vovakirdan/candy-arcade/internal/registry"
)

func TestCommandsRegistered(t *testing.T) {
	for _, name := range []string{"list", "play", "menu", "serve", "scores", "simulate", "config"} {
		cmd, _, err := rootCmd.Find([]string{name})
		if err != nil || cmd.Name() != name {
			t.Errorf("command %q not registered (got %v, %v)", name, cmd, err)
		}
	}

	sub, _, err := rootCmd.Find([]string{"config", "init"})
	if err != nil || sub.Name() != "init" {
		t.Errorf("config init not registered: %v", err)
	}
}

func TestModesRegistered(t *testing.T) {
	for _, id := range []string{"candy", "candy_endless", autoplayGameID} {
		if !registry.Exists(id) {
			t.Errorf("mode %q not registered", id)
		}
	}
}

func TestPortOf(t *testing.T) {
	tests := map[string]string{
		":23234":         "23234",
		"0.0.0.0:2222":   "2222",
		"[::1]:22":       "22",
		"no-port-at-all": "no-port-at-all",
	}
	for addr, want := range tests {
		if got := portOf(addr); got != want {
			t.Errorf("portOf(%q) = %q, want %q", addr, got, want)
		}
	}
}
