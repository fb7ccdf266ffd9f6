// Copyright (c) the twitchirc authors. All rights reserved. Use of this
// source code is governed by the MIT license that can be found in the
// LICENSE file.

// Package taskgroup runs a connection's background goroutines (the read
// pump, the write loop, the timeout supervisor) as a group that cancels
// and drains on first error, the same shape the teacher gets from its
// internal/ctxgroup package.
package taskgroup

import (
	"context"

	"github.com/sourcegraph/conc/pool"
)

// Group runs a fixed set of goroutines against a shared, cancelable
// context. The first one to return an error cancels the rest; Wait
// reports that error (or nil if every task returned nil).
type Group struct {
	pool   *pool.ContextPool
	cancel context.CancelFunc
}

// New derives a cancelable context from ctx and returns a Group tied to it.
func New(ctx context.Context) (*Group, context.Context) {
	gctx, cancel := context.WithCancel(ctx)
	p := pool.New().WithContext(gctx).WithCancelOnError()
	return &Group{pool: p, cancel: cancel}, gctx
}

// Go schedules fn to run in its own goroutine. fn should return promptly
// once its context argument is done.
func (g *Group) Go(fn func(ctx context.Context) error) {
	g.pool.Go(fn)
}

// Wait blocks until every scheduled task has returned, then returns the
// first non-nil error, if any.
func (g *Group) Wait() error {
	return g.pool.Wait()
}

// Cancel stops every task in the group without waiting for it to exit.
func (g *Group) Cancel() {
	g.cancel()
}
