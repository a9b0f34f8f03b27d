package tensor

import (
	"fmt"
	"strings"
)

// Device is an opaque placement token such as "cpu" or "gpu:0".
type Device string

// CPU is the host device every engine knows.
const CPU Device = "cpu"

// GPU returns the token for the n-th GPU.
func GPU(n int) Device {
	return Device(fmt.Sprintf("gpu:%d", n))
}

// Kind returns the device family, i.e. the token up to the first ':'.
func (d Device) Kind() string {
	kind, _, _ := strings.Cut(string(d), ":")
	return kind
}

// String returns the device token.
func (d Device) String() string {
	return string(d)
}
