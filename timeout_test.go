// Copyright (c) the twitchirc authors. All rights reserved. Use of this
// source code is governed by the MIT license that can be found in the
// LICENSE file.

package twitchirc

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSupervisorStopsCleanlyOnContextCancel(t *testing.T) {
	sup := NewSupervisor()
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- sup.Run(ctx) }()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestSupervisorActivityNeverBlocks(t *testing.T) {
	sup := NewSupervisor()
	assert.NotPanics(t, func() {
		for i := 0; i < 10; i++ {
			sup.Activity()
		}
	})
}

func TestSupervisorNoPingRequestBeforeRunStarted(t *testing.T) {
	sup := NewSupervisor()
	select {
	case <-sup.PingRequests():
		t.Fatal("unexpected ping request before Run started")
	default:
	}
}
