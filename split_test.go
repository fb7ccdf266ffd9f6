// Copyright (c) the twitchirc authors. All rights reserved. Use of this
// source code is governed by the MIT license that can be found in the
// LICENSE file.

package twitchirc

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitMessageFitsInOne(t *testing.T) {
	out := SplitMessage("museun", "hello there")
	require.Len(t, out, 1)
	assert.Equal(t, "hello there", out[0].Message)
	assert.Equal(t, "museun", out[0].Channel)
}

func TestSplitMessageBreaksOnWhitespace(t *testing.T) {
	word := "abcde "
	long := strings.Repeat(word, maxChatTextLen)
	out := SplitMessage("museun", long)
	require.Greater(t, len(out), 1)
	for _, p := range out {
		assert.LessOrEqual(t, len(p.Message), maxChatTextLen)
		assert.Equal(t, "museun", p.Channel)
	}
	assert.Equal(t, long, strings.Join(messagesOf(out), ""))
}

func TestSplitMessageFallsBackToByteOffsetWithoutSpaces(t *testing.T) {
	long := strings.Repeat("a", maxChatTextLen*2)
	out := SplitMessage("museun", long)
	require.Greater(t, len(out), 1)
	for _, p := range out {
		assert.LessOrEqual(t, len(p.Message), maxChatTextLen)
	}
	assert.Equal(t, long, strings.Join(messagesOf(out), ""))
}

func TestSplitMessageFallbackNeverSplitsARune(t *testing.T) {
	long := strings.Repeat("é", maxChatTextLen)
	out := SplitMessage("museun", long)
	require.Greater(t, len(out), 1)
	for _, p := range out {
		assert.LessOrEqual(t, len(p.Message), maxChatTextLen)
		assert.True(t, utf8.ValidString(p.Message))
	}
	assert.Equal(t, long, strings.Join(messagesOf(out), ""))
}

func messagesOf(cmds []PrivmsgCommand) []string {
	out := make([]string, len(cmds))
	for i, c := range cmds {
		out[i] = c.Message
	}
	return out
}
