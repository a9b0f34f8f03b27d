// Package capability implements the capability gate: a declarative,
// read-only registry of the dtypes each operation rejects per backend,
// backend version and device.
package capability

import (
	"slices"
	"sort"

	"github.com/pkg/errors"

	"github.com/umer200/ivy/internal/tensor"
)

// Record declares dtypes an operation does not support on a backend.
// An empty Device applies to every device; otherwise it matches either the
// full device token ("gpu:1") or its kind ("gpu"). An empty Versions key
// applies to every version.
type Record struct {
	Op          string
	Backend     string
	Versions    string
	Device      string
	Unsupported []tensor.DType
}

type entry struct {
	Record
	versions VersionRange
}

type key struct {
	op      string
	backend string
}

// Registry is the immutable result of Builder.Build. It is safe for
// concurrent use without locking: nothing mutates it after Build.
type Registry struct {
	entries map[key][]entry
	records []Record
}

// Builder collects records at operation definition time.
type Builder struct {
	records []Record
}

// NewBuilder returns an empty builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Add appends a record.
func (b *Builder) Add(r Record) *Builder {
	r.Unsupported = slices.Clone(r.Unsupported)
	b.records = append(b.records, r)
	return b
}

// Unsupported declares a device-independent unsupported dtype set.
func (b *Builder) Unsupported(op, backend, versions string, dtypes ...tensor.DType) *Builder {
	return b.Add(Record{Op: op, Backend: backend, Versions: versions, Unsupported: dtypes})
}

// UnsupportedOnDevices declares per-device unsupported dtype sets.
func (b *Builder) UnsupportedOnDevices(op, backend, versions string, byDevice map[string][]tensor.DType) *Builder {
	devices := make([]string, 0, len(byDevice))
	for d := range byDevice {
		devices = append(devices, d)
	}
	sort.Strings(devices)
	for _, d := range devices {
		b.Add(Record{Op: op, Backend: backend, Versions: versions, Device: d, Unsupported: byDevice[d]})
	}
	return b
}

// Build validates every record and freezes the registry.
func (b *Builder) Build() (*Registry, error) {
	reg := &Registry{
		entries: make(map[key][]entry),
		records: slices.Clone(b.records),
	}
	for _, r := range b.records {
		if r.Op == "" || r.Backend == "" {
			return nil, errors.Errorf("capability record %+v needs an operation and a backend", r)
		}
		vr, err := ParseVersionRange(r.Versions)
		if err != nil {
			return nil, errors.Wrapf(err, "capability record for %s on %s", r.Op, r.Backend)
		}
		for _, dt := range r.Unsupported {
			if !dt.Valid() {
				return nil, errors.Errorf("capability record for %s on %s lists invalid dtype %v", r.Op, r.Backend, dt)
			}
		}
		k := key{op: r.Op, backend: r.Backend}
		reg.entries[k] = append(reg.entries[k], entry{Record: r, versions: vr})
	}
	return reg, nil
}

// MustBuild is like Build but panics on error.
func (b *Builder) MustBuild() *Registry {
	reg, err := b.Build()
	if err != nil {
		panic(err)
	}
	return reg
}

func (e entry) appliesTo(device tensor.Device) bool {
	return e.Device == "" || e.Device == string(device) || e.Device == device.Kind()
}

// Check returns nil if dtype is allowed for op on the backend at version
// and device. A hit in a device-independent record yields
// *tensor.UnsupportedDTypeError; a hit only in device-scoped records
// yields *tensor.UnsupportedDeviceAndDTypeError.
func (r *Registry) Check(op, backend, version string, device tensor.Device, dtype tensor.DType) error {
	var unconditional, scoped bool
	for _, e := range r.matching(op, backend, version) {
		if !e.appliesTo(device) || !slices.Contains(e.Unsupported, dtype) {
			continue
		}
		if e.Device == "" {
			unconditional = true
		} else {
			scoped = true
		}
	}
	switch {
	case unconditional:
		return errors.WithStack(&tensor.UnsupportedDTypeError{
			Op: op, Backend: backend, Version: version, Device: device, DType: dtype,
		})
	case scoped:
		return errors.WithStack(&tensor.UnsupportedDeviceAndDTypeError{
			Op: op, Backend: backend, Version: version, Device: device, DType: dtype,
		})
	}
	return nil
}

// Supports is Check reduced to a boolean.
func (r *Registry) Supports(op, backend, version string, device tensor.Device, dtype tensor.DType) bool {
	return r.Check(op, backend, version, device, dtype) == nil
}

// Unsupported returns the union of unsupported dtypes for op at version on
// device, in declaration order of the closed dtype set.
func (r *Registry) Unsupported(op, backend, version string, device tensor.Device) []tensor.DType {
	set := make(map[tensor.DType]bool)
	for _, e := range r.matching(op, backend, version) {
		if !e.appliesTo(device) {
			continue
		}
		for _, dt := range e.Unsupported {
			set[dt] = true
		}
	}
	var out []tensor.DType
	for _, dt := range tensor.AllDTypes {
		if set[dt] {
			out = append(out, dt)
		}
	}
	return out
}

// Records returns a copy of every registered record in registration order.
func (r *Registry) Records() []Record {
	out := make([]Record, len(r.records))
	for i, rec := range r.records {
		rec.Unsupported = slices.Clone(rec.Unsupported)
		out[i] = rec
	}
	return out
}

func (r *Registry) matching(op, backend, version string) []entry {
	var out []entry
	for _, e := range r.entries[key{op: op, backend: backend}] {
		if e.versions.Contains(version) {
			out = append(out, e)
		}
	}
	return out
}
