package chathub

import (
	"sync"
	"sync/atomic"
	"time"
)

// LivenessState is the per-connection heartbeat state.
type LivenessState int32

const (
	Alive LivenessState = iota
	AwaitingPong
	Dead
)

// Monitor is the per-connection liveness state machine. Every interval it
// sends a probe and waits up to window for an acknowledgment; a missed
// acknowledgment makes it fire expired exactly once and stop. A dead peer
// behind a half-open connection would otherwise appear online indefinitely.
type Monitor struct {
	interval time.Duration
	window   time.Duration
	probe    func() error
	expired  func()

	state    atomic.Int32
	acks     chan struct{}
	stop     chan struct{}
	stopOnce sync.Once
}

func NewMonitor(interval, window time.Duration, probe func() error, expired func()) *Monitor {
	return &Monitor{
		interval: interval,
		window:   window,
		probe:    probe,
		expired:  expired,
		acks:     make(chan struct{}, 1),
		stop:     make(chan struct{}),
	}
}

// Run drives the state machine until the monitor is stopped or the
// connection is declared dead. Run in its own goroutine.
func (m *Monitor) Run() {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-m.stop:
			return
		case <-m.acks:
			// Unsolicited acknowledgment outside a probe window.
		case <-ticker.C:
			if err := m.probe(); err != nil {
				m.die()
				return
			}
			m.state.Store(int32(AwaitingPong))

			window := time.NewTimer(m.window)
			select {
			case <-m.acks:
				window.Stop()
				m.state.Store(int32(Alive))
			case <-window.C:
				m.die()
				return
			case <-m.stop:
				window.Stop()
				return
			}
		}
	}
}

func (m *Monitor) die() {
	m.state.Store(int32(Dead))
	m.expired()
}

// Ack records a heartbeat acknowledgment. Never blocks; a duplicate ack
// while none is pending is dropped.
func (m *Monitor) Ack() {
	select {
	case m.acks <- struct{}{}:
	default:
	}
}

// Stop halts the monitor without declaring the connection dead. Idempotent,
// so it is safe on every teardown path even when the timeout already fired.
func (m *Monitor) Stop() {
	m.stopOnce.Do(func() { close(m.stop) })
}

// State reports the current liveness state.
func (m *Monitor) State() LivenessState {
	return LivenessState(m.state.Load())
}
