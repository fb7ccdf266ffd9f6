// Copyright (c) the twitchirc authors. All rights reserved. Use of this
// source code is governed by the MIT license that can be found in the
// LICENSE file.

package twitchirc

import "fmt"

// sentinelError is a comparable, errors.Is-friendly error with a fixed
// message and no associated data. Mirrors the flat, non-overlapping error
// kinds called for across the spec's error taxonomy.
type sentinelError string

func newSentinel(msg string) error {
	return sentinelError(msg)
}

func (e sentinelError) Error() string { return string(e) }

// Framing errors (component C).
var (
	// ErrEmptyMessage is returned when a line is empty after trimming.
	ErrEmptyMessage = newSentinel("empty message")
	// ErrInvalidUTF8 is returned when a frame is not valid UTF-8.
	ErrInvalidUTF8 = newSentinel("invalid utf-8 in frame")
)

// IncompleteMessageError is returned when a line lacks a terminating CRLF
// when parsed as a complete frame.
type IncompleteMessageError struct {
	Pos int
}

func (e IncompleteMessageError) Error() string {
	return fmt.Sprintf("incomplete message at position %d", e.Pos)
}

// Protocol/typed-layer errors (component D).

// InvalidCommandError is returned by a typed-command constructor when the
// frame's command does not match what that constructor expects.
type InvalidCommandError struct {
	Expected string
	Got      string
}

func (e InvalidCommandError) Error() string {
	return fmt.Sprintf("invalid command: expected %s, got %s", e.Expected, e.Got)
}

var (
	// ErrExpectedNick is returned when a command requires a nickname prefix
	// that is absent.
	ErrExpectedNick = newSentinel("expected nickname prefix")
	// ErrExpectedData is returned when a command requires trailing data
	// that is absent.
	ErrExpectedData = newSentinel("expected trailing data")
)

// ExpectedArgError is returned when a command requires an argument at a
// specific position that is absent.
type ExpectedArgError struct {
	Pos int
}

func (e ExpectedArgError) Error() string {
	return fmt.Sprintf("expected argument at position %d", e.Pos)
}

// ExpectedTagError is returned when a command requires a tag that is absent.
type ExpectedTagError struct {
	Name string
}

func (e ExpectedTagError) Error() string {
	return fmt.Sprintf("expected tag %q", e.Name)
}

// CannotParseTagError is returned when a tag is present but fails to parse
// as the type the caller requested.
type CannotParseTagError struct {
	Name  string
	Cause error
}

func (e CannotParseTagError) Error() string {
	return fmt.Sprintf("cannot parse tag %q: %s", e.Name, e.Cause)
}

func (e CannotParseTagError) Unwrap() error { return e.Cause }

// Transport errors (component F/H).
var (
	// ErrEOF is returned when the byte source returns a zero-byte read.
	ErrEOF = newSentinel("eof")
	// ErrTimedOut is returned by the timeout supervisor when a PONG does
	// not arrive within the grace period after a self-initiated PING.
	ErrTimedOut = newSentinel("timed out waiting for pong")
	// ErrShouldReconnect is returned when the server sends RECONNECT.
	ErrShouldReconnect = newSentinel("server requested reconnect")
)

// IOError wraps an underlying transport error.
type IOError struct {
	Cause error
}

func (e IOError) Error() string { return fmt.Sprintf("io: %s", e.Cause) }
func (e IOError) Unwrap() error { return e.Cause }

// ParseError wraps a framing/protocol error encountered while decoding a
// single frame. Per spec.md §7, this is per-frame and does not kill the
// connection.
type ParseError struct {
	Cause error
}

func (e ParseError) Error() string { return fmt.Sprintf("parse error: %s", e.Cause) }
func (e ParseError) Unwrap() error { return e.Cause }

// Handshake errors (component G).
var (
	// ErrBadPass is returned when the server rejects the supplied
	// credentials (NOTICE "Login authentication failed"/"Login
	// unsuccessful", or a SASL failure).
	ErrBadPass = newSentinel("bad password or authentication rejected")
)

// InvalidCapabilityError is returned when the server NAKs a requested
// capability.
type InvalidCapabilityError struct {
	Capability string
}

func (e InvalidCapabilityError) Error() string {
	return fmt.Sprintf("server rejected capability %q", e.Capability)
}

// Configuration errors.

// InvalidConfigError is returned when a Config fails validation.
type InvalidConfigError struct {
	Reason string
}

func (e InvalidConfigError) Error() string { return "invalid configuration: " + e.Reason }
