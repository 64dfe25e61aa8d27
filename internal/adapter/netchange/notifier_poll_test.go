//go:build !windows

package netchange

import (
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

type addrSource struct {
	mu    sync.Mutex
	addrs []string
}

func (s *addrSource) set(addrs ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.addrs = addrs
}

func (s *addrSource) get() ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.addrs...), nil
}

func waitSignal(t *testing.T, signals <-chan struct{}) {
	t.Helper()
	select {
	case _, ok := <-signals:
		if !ok {
			t.Fatal("signals closed early")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no signal")
	}
}

func TestNotifier_InitialAndChange(t *testing.T) {
	src := &addrSource{addrs: []string{"eth0=10.0.0.2/24"}}
	n := &Notifier{logger: log.New(io.Discard), interval: 5 * time.Millisecond, addrs: src.get}

	ctx, cancel := context.WithCancel(context.Background())
	signals := make(chan struct{}, 1)
	done := make(chan error, 1)
	go func() { done <- n.Listen(ctx, signals) }()

	waitSignal(t, signals)

	src.set("eth0=10.163.22.7/16", "wlan0=192.168.1.4/24")
	waitSignal(t, signals)

	cancel()
	if err := <-done; err != nil {
		t.Fatal(err)
	}
	for range signals {
	}
}

func TestNotifier_NoChangeNoSignal(t *testing.T) {
	src := &addrSource{addrs: []string{"b=2", "a=1"}}
	n := &Notifier{logger: log.New(io.Discard), interval: 5 * time.Millisecond, addrs: src.get}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	signals := make(chan struct{}, 1)
	go n.Listen(ctx, signals)

	waitSignal(t, signals)
	src.set("a=1", "b=2") // same set, different order
	select {
	case <-signals:
		t.Fatal("unexpected signal for unchanged address set")
	case <-time.After(50 * time.Millisecond):
	}
}
