// Copyright (c) the twitchirc authors. All rights reserved. Use of this
// source code is governed by the MIT license that can be found in the
// LICENSE file.

package twitchirc

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
)

// waitRequest is a pending WaitFor call, identified by a UUID so Dispatcher
// can correlate an arriving frame to the right caller even with several
// concurrent WaitFor calls outstanding for different kinds. This plays the
// role the teacher's Caller fills with string cuids (handler.go's
// register/cuidToID), generalized from "many permanent handlers, looked up
// by command" to "a handful of one-shot waiters, looked up by kind".
type waitRequest struct {
	id     uuid.UUID
	kind   CommandKind
	result chan AllCommands
}

// Dispatcher owns the single reader of a Decoder and fans matching frames
// out to concurrent WaitFor callers. Since Pump is the only goroutine that
// ever reads the Decoder, a frame that doesn't match a waiter at the moment
// it arrives cannot be pushed back for "ordinary" consumption — nothing
// else is reading. Instead it's held in a small per-kind backlog, so a
// WaitFor call arriving a moment later still finds it.
type Dispatcher struct {
	dec *Decoder

	// OnFrame, if set, is called with every classified frame Pump reads,
	// whether or not it matches a waiter. Used to drive activity tracking
	// and logging without a second reader on the same Decoder.
	OnFrame func(AllCommands)

	mu      sync.Mutex
	waiting []waitRequest
	backlog map[CommandKind][]AllCommands
}

// maxBacklogPerKind bounds how many unclaimed frames of a single kind
// Dispatcher holds onto. A caller that never calls WaitFor for a kind it
// receives (e.g. it only cares about PRIVMSG but the server sends many
// JOINs) will see that kind's backlog capped here rather than grow without
// bound; the oldest unclaimed frame is dropped to make room.
const maxBacklogPerKind = 256

// NewDispatcher wraps dec. Call Pump in its own goroutine to start
// delivering frames to waiters.
func NewDispatcher(dec *Decoder) *Dispatcher {
	return &Dispatcher{dec: dec, backlog: make(map[CommandKind][]AllCommands)}
}

// WaitFor blocks until a frame of the given kind arrives, or ctx is done.
// A frame already sitting in the backlog (delivered by Pump before this
// call was made) is returned immediately.
func (d *Dispatcher) WaitFor(ctx context.Context, kind CommandKind) (AllCommands, error) {
	d.mu.Lock()
	if queue := d.backlog[kind]; len(queue) > 0 {
		cmd := queue[0]
		d.backlog[kind] = queue[1:]
		d.mu.Unlock()
		return cmd, nil
	}
	req := waitRequest{id: uuid.New(), kind: kind, result: make(chan AllCommands, 1)}
	d.waiting = append(d.waiting, req)
	d.mu.Unlock()

	defer d.cancel(req.id)

	select {
	case cmd := <-req.result:
		return cmd, nil
	case <-ctx.Done():
		return AllCommands{}, ctx.Err()
	}
}

func (d *Dispatcher) cancel(id uuid.UUID) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for i, w := range d.waiting {
		if w.id == id {
			d.waiting = append(d.waiting[:i], d.waiting[i+1:]...)
			return
		}
	}
}

// Pump reads from the underlying Decoder until ctx is done or a read
// error occurs. A frame that fails to decode (ParseError, ErrInvalidUTF8)
// is skipped and reading goes on; a read error after ctx is done returns
// nil. Each frame goes to the oldest waiter registered for its
// kind, if any, and otherwise into that kind's backlog for a future
// WaitFor call to claim.
func (d *Dispatcher) Pump(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		msg, err := d.dec.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			if errors.Is(err, ErrInvalidUTF8) || errors.As(err, new(ParseError)) {
				continue
			}
			return err
		}
		owned := msg.IntoOwned()
		cmd := FromIRC(owned)

		if d.OnFrame != nil {
			d.OnFrame(cmd)
		}

		matched, ok := d.takeWaiter(cmd.Kind)
		if ok {
			matched.result <- cmd
			continue
		}
		d.pushBacklog(cmd)
	}
}

// pushBacklog appends cmd to its kind's backlog, evicting the oldest entry
// first if that would exceed maxBacklogPerKind.
func (d *Dispatcher) pushBacklog(cmd AllCommands) {
	d.mu.Lock()
	defer d.mu.Unlock()
	queue := d.backlog[cmd.Kind]
	if len(queue) >= maxBacklogPerKind {
		queue = queue[1:]
	}
	d.backlog[cmd.Kind] = append(queue, cmd)
}

func (d *Dispatcher) takeWaiter(kind CommandKind) (waitRequest, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for i, w := range d.waiting {
		if w.kind == kind {
			d.waiting = append(d.waiting[:i], d.waiting[i+1:]...)
			return w, true
		}
	}
	return waitRequest{}, false
}
