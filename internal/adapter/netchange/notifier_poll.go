//go:build !windows

package netchange

import (
	"context"
	"net"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

const defaultPollInterval = 2 * time.Second

// Notifier polls interface addresses and signals when the set changes.
type Notifier struct {
	logger   *log.Logger
	interval time.Duration
	addrs    func() ([]string, error)
}

func New(logger *log.Logger) *Notifier {
	return &Notifier{logger: logger, interval: defaultPollInterval, addrs: interfaceAddrs}
}

// Listen emits one signal immediately, then one per observed change.
func (n *Notifier) Listen(ctx context.Context, signals chan<- struct{}) error {
	defer close(signals)

	last, err := n.fingerprint()
	if err != nil {
		n.logger.Warn("Listing interface addresses failed", "err", err)
	}
	notify(signals)
	n.logger.Info("Network change polling started", "interval", n.interval)

	ticker := time.NewTicker(n.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			cur, err := n.fingerprint()
			if err != nil {
				n.logger.Warn("Listing interface addresses failed", "err", err)
				continue
			}
			if cur != last {
				n.logger.Debug("Interface addresses changed", "addrs", cur)
				last = cur
				notify(signals)
			}
		}
	}
}

func (n *Notifier) fingerprint() (string, error) {
	addrs, err := n.addrs()
	if err != nil {
		return "", err
	}
	slices.Sort(addrs)
	return strings.Join(addrs, ","), nil
}

func notify(signals chan<- struct{}) {
	select {
	case signals <- struct{}{}:
	default:
	}
}

func interfaceAddrs() ([]string, error) {
	ifaces, err := net.Interfaces()
	if err != nil {
		return nil, err
	}
	var out []string
	for _, iface := range ifaces {
		if iface.Flags&net.FlagUp == 0 || iface.Flags&net.FlagLoopback != 0 {
			continue
		}
		addrs, err := iface.Addrs()
		if err != nil {
			continue
		}
		for _, a := range addrs {
			out = append(out, iface.Name+"="+a.String())
		}
	}
	return out, nil
}
