// Copyright (c) the twitchirc authors. All rights reserved. Use of this
// source code is governed by the MIT license that can be found in the
// LICENSE file.

package twitchirc

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestChatCommandsScopesChannel(t *testing.T) {
	c := NewChatCommands("museun")
	assert.Equal(t, "#museun", c.Channel)
	c2 := NewChatCommands("#museun")
	assert.Equal(t, "#museun", c2.Channel)
}

func TestTimeoutOmitsZeroDuration(t *testing.T) {
	c := NewChatCommands("museun")
	assert.Equal(t, "PRIVMSG #museun :/timeout baduser", c.Timeout("baduser", 0, "").Encode())
	assert.Equal(t, "PRIVMSG #museun :/timeout baduser 600 spam", c.Timeout("baduser", 600, "spam").Encode())
}

func TestBanWithAndWithoutReason(t *testing.T) {
	c := NewChatCommands("museun")
	assert.Equal(t, "PRIVMSG #museun :/ban baduser", c.Ban("baduser", "").Encode())
	assert.Equal(t, "PRIVMSG #museun :/ban baduser spamming", c.Ban("baduser", "spamming").Encode())
}

func TestFollowersOnlyDefaultsToNoMinimum(t *testing.T) {
	c := NewChatCommands("museun")
	assert.Equal(t, "PRIVMSG #museun :/followers", c.FollowersOnly(0).Encode())
	assert.Equal(t, "PRIVMSG #museun :/followers 30", c.FollowersOnly(30).Encode())
}

func TestSlowUsesDefaultSeconds(t *testing.T) {
	c := NewChatCommands("museun")
	assert.Equal(t, "PRIVMSG #museun :/slow 120", c.Slow(0).Encode())
	assert.Equal(t, "PRIVMSG #museun :/slow 5", c.Slow(5).Encode())
}

func TestHostAndRaidStripChannelPrefix(t *testing.T) {
	c := NewChatCommands("museun")
	assert.Equal(t, "PRIVMSG #museun :/host otherchannel", c.Host("#otherchannel").Encode())
	assert.Equal(t, "PRIVMSG #museun :/raid otherchannel", c.Raid("otherchannel").Encode())
}

func TestMarkerTruncatesToMaxLength(t *testing.T) {
	c := NewChatCommands("museun")
	long := strings.Repeat("a", MaxMarkerLength*2)
	line := c.Marker(long).Encode()
	assert.LessOrEqual(t, len(line)-len("PRIVMSG #museun :/marker "), MaxMarkerLength)
}

func TestMeSendsAction(t *testing.T) {
	c := NewChatCommands("museun")
	assert.Equal(t, "PRIVMSG #museun :/me waves", c.Me("waves").Encode())
}

func TestTruncateUTF8DoesNotSplitRune(t *testing.T) {
	s := "aéb" // 'é' is two bytes in UTF-8
	got := truncateUTF8(s, 2)
	assert.LessOrEqual(t, len(got), 2)
	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, "a", got)
}
