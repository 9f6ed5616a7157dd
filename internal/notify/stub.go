//go:build !linux

package notify

// New returns Nop: desktop notifications are only wired on Linux.
func New() (Notifier, error) {
	return Nop{}, nil
}
