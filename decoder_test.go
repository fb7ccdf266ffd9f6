// Copyright (c) the twitchirc authors. All rights reserved. Use of this
// source code is governed by the MIT license that can be found in the
// LICENSE file.

package twitchirc

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecoderReadMessageSequence(t *testing.T) {
	r := strings.NewReader("PING :a\r\nPING :b\r\n")
	dec := NewDecoder(r)

	m1, err := dec.ReadMessage()
	require.NoError(t, err)
	assert.Equal(t, "PING", m1.CommandString())
	data1, _ := m1.DataString()
	assert.Equal(t, "a", data1)

	m2, err := dec.ReadMessage()
	require.NoError(t, err)
	data2, _ := m2.DataString()
	assert.Equal(t, "b", data2)

	_, err = dec.ReadMessage()
	assert.ErrorIs(t, err, ErrEOF)
}

func TestDecoderPushReplaysBeforeWire(t *testing.T) {
	r := strings.NewReader("PING :wire\r\n")
	dec := NewDecoder(r)

	pushed, err := ParseMessage("PING :pushed\r\n")
	require.NoError(t, err)
	dec.Push(pushed)

	first, err := dec.ReadMessage()
	require.NoError(t, err)
	data, _ := first.DataString()
	assert.Equal(t, "pushed", data)

	second, err := dec.ReadMessage()
	require.NoError(t, err)
	data, _ = second.DataString()
	assert.Equal(t, "wire", data)
}

func TestDecoderPushPreservesOrder(t *testing.T) {
	dec := NewDecoder(strings.NewReader(""))

	a, err := ParseMessage("PING :a\r\n")
	require.NoError(t, err)
	b, err := ParseMessage("PING :b\r\n")
	require.NoError(t, err)
	dec.Push(a)
	dec.Push(b)

	first, err := dec.ReadMessage()
	require.NoError(t, err)
	data, _ := first.DataString()
	assert.Equal(t, "a", data)

	second, err := dec.ReadMessage()
	require.NoError(t, err)
	data, _ = second.DataString()
	assert.Equal(t, "b", data)
}

func TestDecoderNextReportsExhaustion(t *testing.T) {
	dec := NewDecoder(strings.NewReader("PING :only\r\n"))

	_, err, ok := dec.Next()
	require.NoError(t, err)
	assert.True(t, ok)

	_, err, ok = dec.Next()
	assert.NoError(t, err)
	assert.False(t, ok)
}
