//go:build !linux && !darwin && !windows

package platform

// Notify does nothing where no notification service is supported.
func Notify(title, body string, opts Options) error {
	return nil
}
