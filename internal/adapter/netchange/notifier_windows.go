//go:build windows

package netchange

import (
	"context"
	"fmt"
	"unsafe"

	"github.com/charmbracelet/log"
	"golang.org/x/sys/windows"
)

var (
	iphlpapi                                = windows.NewLazySystemDLL("iphlpapi.dll")
	procNotifyNetworkConnectivityHintChange = iphlpapi.NewProc("NotifyNetworkConnectivityHintChange")
	procCancelMibChangeNotify2              = iphlpapi.NewProc("CancelMibChangeNotify2")
)

// Notifier subscribes to the OS connectivity hint (Windows 10 2004+).
type Notifier struct {
	logger *log.Logger
}

func New(logger *log.Logger) *Notifier {
	return &Notifier{logger: logger}
}

// Listen registers the hint callback with an initial notification, so the
// first login happens at startup.
func (n *Notifier) Listen(ctx context.Context, signals chan<- struct{}) error {
	defer close(signals)
	if err := procNotifyNetworkConnectivityHintChange.Find(); err != nil {
		return fmt.Errorf("connectivity hint API unavailable: %w", err)
	}

	// NL_NETWORK_CONNECTIVITY_HINT is 12 bytes, so on amd64 it arrives by
	// reference. Its content is not needed.
	cb := windows.NewCallback(func(callerContext, hint uintptr) uintptr {
		select {
		case signals <- struct{}{}:
		default:
		}
		return 0
	})

	var handle windows.Handle
	r1, _, _ := procNotifyNetworkConnectivityHintChange.Call(
		cb,
		0, // caller context
		1, // initial notification
		uintptr(unsafe.Pointer(&handle)),
	)
	if r1 != 0 {
		return fmt.Errorf("NotifyNetworkConnectivityHintChange: %w", windows.Errno(r1))
	}
	n.logger.Info("Network connectivity hint changed notification registered")

	<-ctx.Done()

	// Blocks until running callbacks return, so closing signals afterwards is safe.
	if r1, _, _ := procCancelMibChangeNotify2.Call(uintptr(handle)); r1 != 0 {
		n.logger.Warn("CancelMibChangeNotify2 failed", "err", windows.Errno(r1))
	}
	return nil
}
