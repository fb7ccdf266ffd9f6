// Copyright (c) the twitchirc authors. All rights reserved. Use of this
// source code is governed by the MIT license that can be found in the
// LICENSE file.

package twitchirc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMessage(t *testing.T) {
	tests := []struct {
		name        string
		line        string
		wantCommand string
		wantPrefix  string
		wantArgs    []string
		wantData    string
		hasData     bool
	}{
		{
			name:        "simple privmsg",
			line:        ":ronni!ronni@ronni.tmi.twitch.tv PRIVMSG #museun :Kappa Keepo Kappa\r\n",
			wantCommand: "PRIVMSG",
			wantPrefix:  "ronni",
			wantArgs:    []string{"#museun"},
			wantData:    "Kappa Keepo Kappa",
			hasData:     true,
		},
		{
			name:        "ping",
			line:        "PING :tmi.twitch.tv\r\n",
			wantCommand: "PING",
			wantData:    "tmi.twitch.tv",
			hasData:     true,
		},
		{
			name:        "bare server prefix",
			line:        "tmi.twitch.tv 001 museun :Welcome, GLHF!\r\n",
			wantCommand: "001",
			wantArgs:    []string{"museun"},
			wantData:    "Welcome, GLHF!",
			hasData:     true,
		},
		{
			name:        "no trailing data",
			line:        ":tmi.twitch.tv CAP * ACK\r\n",
			wantCommand: "CAP",
			wantArgs:    []string{"*", "ACK"},
		},
		{
			name:        "bare LF tolerated",
			line:        "PING :abc\n",
			wantCommand: "PING",
			wantData:    "abc",
			hasData:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg, err := ParseMessage(tt.line)
			require.NoError(t, err)
			assert.Equal(t, tt.wantCommand, msg.CommandString())
			if tt.wantPrefix != "" {
				nick, ok := msg.PrefixNick()
				assert.True(t, ok)
				assert.Equal(t, tt.wantPrefix, nick)
			}
			assert.Equal(t, tt.wantArgs, msg.ArgsList())
			data, ok := msg.DataString()
			assert.Equal(t, tt.hasData, ok)
			if tt.hasData {
				assert.Equal(t, tt.wantData, data)
			}
		})
	}
}

func TestParseMessageWithTags(t *testing.T) {
	line := "@badges=broadcaster/1;color=#0000FF;display-name=ronni :ronni!ronni@ronni.tmi.twitch.tv PRIVMSG #museun :Kappa\r\n"
	msg, err := ParseMessage(line)
	require.NoError(t, err)

	assert.True(t, msg.HasTags())
	color, ok := msg.TagsView().Get("color")
	assert.True(t, ok)
	assert.Equal(t, "#0000FF", color)
}

func TestParseMessageIncomplete(t *testing.T) {
	_, err := ParseMessage("PING :abc")
	var incomplete IncompleteMessageError
	require.ErrorAs(t, err, &incomplete)
}

func TestParseMessageEmpty(t *testing.T) {
	_, err := ParseMessage("   \r\n")
	assert.ErrorIs(t, err, ErrEmptyMessage)
}

func TestIrcMessageIntoOwned(t *testing.T) {
	line := ":ronni!ronni@ronni.tmi.twitch.tv PRIVMSG #museun :Kappa\r\n"
	msg, err := ParseMessage(line)
	require.NoError(t, err)

	owned := msg.IntoOwned()
	assert.True(t, owned.Raw.Owned())
	assert.True(t, msg.Equal(owned))
}

func TestArgIndex(t *testing.T) {
	msg, err := ParseMessage(":tmi.twitch.tv CAP * ACK :twitch.tv/tags\r\n")
	require.NoError(t, err)

	first, ok := msg.ArgIndex(0)
	require.True(t, ok)
	assert.Equal(t, "*", first.Slice(msg.Raw))

	second, ok := msg.ArgIndex(1)
	require.True(t, ok)
	assert.Equal(t, "ACK", second.Slice(msg.Raw))

	_, ok = msg.ArgIndex(5)
	assert.False(t, ok)
}
