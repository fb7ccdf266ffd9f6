// Copyright (c) the twitchirc authors. All rights reserved. Use of this
// source code is governed by the MIT license that can be found in the
// LICENSE file.

package twitchirc

import "strings"

// FrameStream walks a single in-memory buffer that may contain many
// CRLF-delimited IRC frames, yielding one parsed IrcMessage per line. It is
// the in-memory counterpart to Decoder, which reads frames from an
// io.Reader instead. Every yielded message borrows from the FrameStream's
// original buffer.
type FrameStream struct {
	buf  Buffer
	pos  int
	done bool
}

// NewFrameStream constructs a FrameStream over data.
func NewFrameStream(data string) *FrameStream {
	return &FrameStream{buf: NewBorrowedBuffer(data)}
}

// Next returns the next frame. ok is false once the stream is exhausted. A
// dangling tail with no terminating '\n' yields exactly one
// IncompleteMessageError (with ok==true, err!=nil) and then the stream is
// done.
func (s *FrameStream) Next() (msg IrcMessage, err error, ok bool) {
	if s.done {
		return IrcMessage{}, nil, false
	}

	raw := s.buf.String()
	if s.pos >= len(raw) {
		s.done = true
		return IrcMessage{}, nil, false
	}

	rest := raw[s.pos:]
	nl := strings.IndexByte(rest, '\n')
	if nl < 0 {
		s.done = true
		return IrcMessage{}, IncompleteMessageError{Pos: len(rest)}, true
	}

	lineEnd := s.pos + nl + 1
	frame := s.buf.slice(s.pos, lineEnd)
	s.pos = lineEnd

	m, perr := parseFrame(frame)
	if perr != nil {
		return IrcMessage{}, perr, true
	}
	return m, nil, true
}

// All drains the stream into a slice, for tests and small inputs. Prefer
// Next for long-running iteration.
func (s *FrameStream) All() (msgs []IrcMessage, errs []error) {
	for {
		m, err, ok := s.Next()
		if !ok {
			return msgs, errs
		}
		if err != nil {
			errs = append(errs, err)
			continue
		}
		msgs = append(msgs, m)
	}
}
