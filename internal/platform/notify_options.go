// Package platform delivers desktop notifications through the host's
// notification service.
package platform

// AppName identifies the sender to the notification service.
const AppName = "postcardscan"

// Options configures how a notification is displayed on the host platform.
type Options struct {
	// IconPath points to an image shown with the notification, typically the
	// postcard that was just written.
	IconPath string
	// Timeout in milliseconds, 0 uses DefaultTimeout.
	Timeout int32
}

// DefaultTimeout is how long a notification stays visible where the platform
// lets the sender choose.
const DefaultTimeout int32 = 5000

func (o Options) timeout() int32 {
	if o.Timeout > 0 {
		return o.Timeout
	}
	return DefaultTimeout
}
