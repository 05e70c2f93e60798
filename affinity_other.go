//go:build !linux

package taskpool

// PinToCPU is not supported outside Linux.
func PinToCPU(int) error {
	return ErrPinUnsupported
}
