package network

import (
	"errors"
	"sync"

	"github.com/automoto/duelsync/shared/messages"
	"github.com/automoto/duelsync/shared/protocol"
	"github.com/sirupsen/logrus"
)

type ConnState int

const (
	StateDisconnected ConnState = iota
	StateConnected
	StateError
)

func (s ConnState) String() string {
	switch s {
	case StateConnected:
		return "connected"
	case StateError:
		return "error"
	}
	return "disconnected"
}

// Peer is the outbound side of the link to the other participant.
// Sends are fire-and-forget: while no channel is attached, or after it
// closed, messages are dropped and logged at warning level.
// All shared fields are protected by mu.
type Peer struct {
	mu sync.RWMutex

	state     ConnState
	lastError error
	ch        Channel
	sent      uint64
	dropped   uint64

	log logrus.FieldLogger
}

func NewPeer(log logrus.FieldLogger) *Peer {
	return &Peer{state: StateDisconnected, log: log}
}

// Attach makes ch the active channel.
func (p *Peer) Attach(ch Channel) {
	p.mu.Lock()
	p.ch = ch
	p.state = StateConnected
	p.lastError = nil
	p.mu.Unlock()
	p.log.Info("peer connected")
}

// Detach drops the active channel. A nil or ErrClosed cause is an orderly
// disconnect; anything else leaves the peer in StateError.
func (p *Peer) Detach(cause error) {
	p.mu.Lock()
	wasConnected := p.ch != nil
	p.ch = nil
	if cause == nil || errors.Is(cause, ErrClosed) {
		p.state = StateDisconnected
	} else {
		p.state = StateError
		p.lastError = cause
	}
	p.mu.Unlock()

	if wasConnected {
		p.log.WithError(cause).Info("peer disconnected")
	}
}

func (p *Peer) Connected() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.state == StateConnected
}

func (p *Peer) State() ConnState {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.state
}

func (p *Peer) LastError() error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.lastError
}

// Stats returns how many messages were handed to the channel and how many
// were dropped.
func (p *Peer) Stats() (sent, dropped uint64) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.sent, p.dropped
}

// Send encodes msg and writes it to the active channel. It never returns
// an error to the caller and never retries; it reports whether the message
// left this process.
func (p *Peer) Send(msg messages.Message) bool {
	p.mu.RLock()
	ch := p.ch
	p.mu.RUnlock()

	if ch == nil {
		p.drop(msg, ErrNotConnected)
		return false
	}

	payload, err := protocol.Encode(msg)
	if err != nil {
		p.log.WithError(err).WithField("kind", msg.Kind()).Error("encode failed")
		p.count(false)
		return false
	}

	if err := ch.Send(payload); err != nil {
		p.drop(msg, err)
		if errors.Is(err, ErrClosed) {
			p.Detach(err)
		}
		return false
	}
	p.count(true)
	return true
}

func (p *Peer) drop(msg messages.Message, err error) {
	p.count(false)
	p.log.WithError(err).WithField("kind", msg.Kind()).Warn("dropping outbound message")
}

func (p *Peer) count(sent bool) {
	p.mu.Lock()
	if sent {
		p.sent++
	} else {
		p.dropped++
	}
	p.mu.Unlock()
}

// Close closes and detaches the active channel, if any.
func (p *Peer) Close() error {
	p.mu.Lock()
	ch := p.ch
	p.mu.Unlock()
	if ch == nil {
		return nil
	}
	err := ch.Close()
	p.Detach(nil)
	return err
}
