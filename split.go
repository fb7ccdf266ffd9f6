// Copyright (c) the twitchirc authors. All rights reserved. Use of this
// source code is governed by the MIT license that can be found in the
// LICENSE file.

package twitchirc

import (
	"bytes"
	"unicode/utf8"
)

// maxChatTextLen is the longest a PRIVMSG body can be before the line
// itself (command, channel, ":" prefix; CRLF is not counted) would exceed
// MaxMessageLength. Computed conservatively for a channel name up to 25
// bytes, so it doesn't need a live server prefix length like the teacher's
// maxPrefixLen does.
const maxChatTextLen = MaxMessageLength - len("PRIVMSG #") - 25 - len(" :")

// SplitMessage breaks message into one or more PrivmsgCommands, none of
// which exceed the wire length limit, splitting on whitespace where
// possible instead of mid-word. Most chat messages fit in the first
// returned command.
func SplitMessage(channel, message string) []PrivmsgCommand {
	b := []byte(message)
	if len(b) <= maxChatTextLen {
		return []PrivmsgCommand{{Channel: channel, Message: message}}
	}

	var out []PrivmsgCommand
	for len(b) > maxChatTextLen {
		idx := bytes.LastIndexByte(b[:maxChatTextLen], ' ')
		if idx > 0 {
			idx++ // keep the separator with the chunk that precedes it
		} else {
			idx = lastRuneBoundary(b, maxChatTextLen)
		}
		out = append(out, PrivmsgCommand{Channel: channel, Message: string(b[:idx])})
		b = b[idx:]
	}
	out = append(out, PrivmsgCommand{Channel: channel, Message: string(b)})
	return out
}

// lastRuneBoundary returns the largest index <= limit at which b can be
// split without cutting a multi-byte rune in half, walking back to the
// start of whatever rune straddles limit.
func lastRuneBoundary(b []byte, limit int) int {
	idx := limit
	for idx > 0 && !utf8.RuneStart(b[idx]) {
		idx--
	}
	return idx
}
