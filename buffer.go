// Copyright (c) the twitchirc authors. All rights reserved. Use of this
// source code is governed by the MIT license that can be found in the
// LICENSE file.

package twitchirc

import "strings"

// Buffer is a string value that is either borrowed — sharing the backing
// array of some larger buffer the caller does not own — or owned —
// independently allocated and safe to outlive whatever produced it.
//
// A borrowed Buffer pins the memory of the string it was sliced from for as
// long as it's reachable, exactly like a Rust &str borrow. This matters here
// because a FrameStream slices many messages out of one input string: a
// single long-lived borrowed IrcMessage will keep that entire input alive.
// Call ToOwned to break the reference.
type Buffer struct {
	raw   string
	owned bool
}

// NewBorrowedBuffer wraps s as a borrowed Buffer.
func NewBorrowedBuffer(s string) Buffer {
	return Buffer{raw: s}
}

// NewOwnedBuffer wraps s as an already-owned Buffer. Use this when s is
// known to already be an independent allocation (e.g. it was just built
// with strings.Builder).
func NewOwnedBuffer(s string) Buffer {
	return Buffer{raw: s, owned: true}
}

// String returns the underlying string. Valid regardless of ownership.
func (b Buffer) String() string {
	return b.raw
}

// Len returns the byte length of the buffer.
func (b Buffer) Len() int {
	return len(b.raw)
}

// Owned reports whether this Buffer holds an independent allocation.
func (b Buffer) Owned() bool {
	return b.owned
}

// ToOwned returns a Buffer holding an independent copy of the string data,
// promoting a borrowed Buffer to one with no lifetime dependence on its
// source. Calling ToOwned on an already-owned Buffer is a cheap no-op.
func (b Buffer) ToOwned() Buffer {
	if b.owned {
		return b
	}
	return Buffer{raw: strings.Clone(b.raw), owned: true}
}

// slice returns a Buffer over a sub-range of b's bytes, preserving b's
// ownership state. Since Go substrings share the backing array of the
// string they were sliced from, a slice of a borrowed Buffer is still
// borrowed (and still pins the original array); a slice of an owned Buffer
// is still owned (owned here means "independently allocated", not
// "exclusively referenced").
func (b Buffer) slice(start, end int) Buffer {
	return Buffer{raw: b.raw[start:end], owned: b.owned}
}

// Index is a half-open [Start, End) byte range into a Buffer. Indices are
// always relative to the Buffer they were produced from; applying one to a
// different Buffer is a caller bug.
//
// The 16-bit bound caps a single IRC line at 65535 bytes, well above
// Twitch's practical ~4KiB line length, while keeping every typed command
// struct small and copyable.
type Index struct {
	Start uint16
	End   uint16
}

// ErrIndexOutOfRange is returned when a computed index would need more than
// 16 bits to represent, i.e. the line is pathologically long.
var ErrIndexOutOfRange = newSentinel("index out of range (line exceeds 65535 bytes)")

// NewIndex constructs an Index for the half-open range [start, end) of buf.
func NewIndex(start, end int) (Index, error) {
	if start < 0 || end < start || end > 0xFFFF {
		return Index{}, ErrIndexOutOfRange
	}
	return Index{Start: uint16(start), End: uint16(end)}, nil
}

// Slice applies the index to buf, returning the referenced substring.
func (i Index) Slice(buf Buffer) string {
	return buf.raw[i.Start:i.End]
}

// Empty reports whether the index spans zero bytes.
func (i Index) Empty() bool {
	return i.Start == i.End
}

// Len returns the number of bytes the index spans.
func (i Index) Len() int {
	return int(i.End) - int(i.Start)
}

// Range returns the half-open range as plain ints, for use with ordinary
// Go slicing.
func (i Index) Range() (start, end int) {
	return int(i.Start), int(i.End)
}

// Shift returns a copy of i moved by offset bytes in both endpoints. Used
// when re-basing an index computed against a substring back onto the
// original buffer it was sliced from.
func (i Index) Shift(offset int) Index {
	return Index{Start: uint16(int(i.Start) + offset), End: uint16(int(i.End) + offset)}
}

// Resize returns a copy of i with its end moved to start+n.
func (i Index) Resize(n int) Index {
	return Index{Start: i.Start, End: uint16(int(i.Start) + n)}
}
