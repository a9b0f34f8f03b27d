// Package backend opens numeric engines by name.
package backend

import (
	"sort"

	"github.com/pkg/errors"

	"github.com/umer200/ivy/internal/backend/cpu"
	"github.com/umer200/ivy/internal/backend/sim"
	"github.com/umer200/ivy/internal/tensor"
)

// Spec selects and configures an engine.
type Spec struct {
	Name    string   // "cpu" or "sim"
	Version string   // sim only; empty keeps the engine default
	Devices []string // sim only; empty keeps the engine default
}

var openers = map[string]func(Spec) (tensor.Backend, error){
	"cpu": func(s Spec) (tensor.Backend, error) {
		if s.Version != "" && s.Version != cpu.Version {
			return nil, errors.Errorf("backend cpu: version is fixed at %s, got %s", cpu.Version, s.Version)
		}
		if len(s.Devices) > 0 && (len(s.Devices) != 1 || s.Devices[0] != string(tensor.CPU)) {
			return nil, errors.Errorf("backend cpu: only the %q device exists, got %v", tensor.CPU, s.Devices)
		}
		return cpu.New(), nil
	},
	"sim": func(s Spec) (tensor.Backend, error) {
		devices := make([]tensor.Device, len(s.Devices))
		for i, d := range s.Devices {
			devices[i] = tensor.Device(d)
		}
		return sim.New(sim.WithVersion(s.Version), sim.WithDevices(devices...)), nil
	},
}

// Names lists the engines Open understands.
func Names() []string {
	names := make([]string, 0, len(openers))
	for n := range openers {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Open creates the engine named by spec.
func Open(spec Spec) (tensor.Backend, error) {
	open, ok := openers[spec.Name]
	if !ok {
		return nil, errors.Errorf("unknown backend %q (available: %v)", spec.Name, Names())
	}
	return open(spec)
}
