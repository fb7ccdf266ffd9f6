// Copyright (c) the twitchirc authors. All rights reserved. Use of this
// source code is governed by the MIT license that can be found in the
// LICENSE file.

package twitchirc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRejectsEmptyNick(t *testing.T) {
	_, err := New(Config{})
	var invalid InvalidConfigError
	require.ErrorAs(t, err, &invalid)
}

func TestNewFillsEmptyServerWithoutConnector(t *testing.T) {
	_, err := New(Config{Nick: "museun", Server: "", Connector: nil, TLS: false})
	// setDefaults fills Server before isValid runs, so an empty Server is
	// not rejected.
	require.NoError(t, err)
}

func TestNewFillsCapabilityAndServerDefaults(t *testing.T) {
	c, err := New(Config{Nick: "justinfan12345"})
	require.NoError(t, err)
	assert.Equal(t, DefaultAddress, c.config.Server)
	assert.Equal(t, []Capability{CapabilityMembership, CapabilityTags, CapabilityCommands}, c.config.Capabilities)
}

func TestNewUsesPlainAddressWhenTLSFalse(t *testing.T) {
	c, err := New(Config{Nick: "museun", TLS: false})
	require.NoError(t, err)
	assert.Equal(t, DefaultAddress, c.config.Server)
}

func TestClientSendBeforeConnectReturnsErrNotConnected(t *testing.T) {
	c, err := New(Config{Nick: "museun"})
	require.NoError(t, err)
	assert.ErrorIs(t, c.Send(PingCommand{Token: "x"}), ErrNotConnected)
}

func TestClientCloseBeforeConnectIsNoop(t *testing.T) {
	c, err := New(Config{Nick: "museun"})
	require.NoError(t, err)
	assert.NoError(t, c.Close())
}

func TestConfigConnectorPrefersExplicitOverride(t *testing.T) {
	cfg := Config{Nick: "museun", Connector: TCPConnector{Address: "example.org:1234"}}
	cfg.setDefaults()
	conn := cfg.connector()
	tcp, ok := conn.(TCPConnector)
	require.True(t, ok)
	assert.Equal(t, "example.org:1234", tcp.Address)
}

func TestConfigConnectorUsesTLSWhenEnabled(t *testing.T) {
	cfg := Config{Nick: "museun", TLS: true}
	cfg.setDefaults()
	_, ok := cfg.connector().(TLSConnector)
	assert.True(t, ok)
}

func TestChatReturnsScopedChatCommands(t *testing.T) {
	c, err := New(Config{Nick: "museun"})
	require.NoError(t, err)
	assert.Equal(t, "#museun", c.Chat("museun").Channel)
}
