// Copyright (c) the twitchirc authors. All rights reserved. Use of this
// source code is governed by the MIT license that can be found in the
// LICENSE file.

package twitchirc

import (
	"bufio"
	"errors"
	"io"
	"unicode/utf8"
)

// readBufferSize matches the teacher's bufio.NewReadWriter default-sized
// reader; Twitch lines are small, so this comfortably avoids reallocation.
const readBufferSize = 4096

// Decoder reads CRLF-delimited IRC lines from an io.Reader and parses them
// into IrcMessage values. It also holds a back-queue: messages pushed back
// via Push are replayed, in order, before any new line is read. This lets a
// single-threaded reader peek at a frame and, if it turns out not to be its
// concern, put it back for whatever reads next. (The handshake does not use
// it; it collects such frames in its own missed list.)
type Decoder struct {
	r         *bufio.Reader
	backQueue []IrcMessage
}

// NewDecoder wraps r for reading IRC frames.
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{r: bufio.NewReaderSize(r, readBufferSize)}
}

// Push requeues msg to be returned by the next ReadMessage/Next call,
// ahead of any new data on the wire, preserving the order repeated Push
// calls are made in. msg is promoted to an owned copy, so it no longer
// pins whatever string it was borrowed from.
func (d *Decoder) Push(msg IrcMessage) {
	d.backQueue = append(d.backQueue, msg.IntoOwned())
}

// ReadMessage returns the next message. When it comes straight off the
// wire, its Buffer is borrowed from that line's own string (each line is a
// separate allocation, so later reads do not disturb it); call IntoOwned to
// drop the reference to the whole line before holding onto a part of it.
func (d *Decoder) ReadMessage() (IrcMessage, error) {
	if len(d.backQueue) > 0 {
		msg := d.backQueue[0]
		d.backQueue = d.backQueue[1:]
		return msg, nil
	}

	line, err := d.r.ReadString('\n')
	if err != nil && line == "" {
		if errors.Is(err, io.EOF) {
			return IrcMessage{}, ErrEOF
		}
		return IrcMessage{}, IOError{Cause: err}
	}

	if !utf8.ValidString(line) {
		return IrcMessage{}, ErrInvalidUTF8
	}

	msg, perr := ParseMessage(line)
	if perr != nil {
		return IrcMessage{}, ParseError{Cause: perr}
	}
	return msg, nil
}

// Next is the owned-iterator form: it promotes the message to own its data
// and reports exhaustion via ok, the same Next/ok pair FrameStream uses,
// so callers can loop with `for { msg, err, ok := dec.Next(); ... }`
// without special-casing end-of-stream as an error value.
func (d *Decoder) Next() (msg IrcMessage, err error, ok bool) {
	m, rerr := d.ReadMessage()
	if rerr == ErrEOF {
		return IrcMessage{}, nil, false
	}
	if rerr != nil {
		return IrcMessage{}, rerr, true
	}
	return m.IntoOwned(), nil, true
}
