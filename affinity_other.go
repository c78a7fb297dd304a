//go:build !linux

package workload

// PinToCPU is a no-op on platforms without thread affinity support.
func PinToCPU(cpu int) error { return nil }
