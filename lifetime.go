// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package callback

import (
	"sync/atomic"
)

// Lifetime is a liveness token for a callback target.
// The zero value is alive. An owner ends it when the object it stands for
// is finished, after which every [Guarded] handle sharing the token stops
// invoking. A nil *Lifetime is always alive.
//
// Lifetime is opt-in: plain [Callback] handles never consult it.
type Lifetime struct {
	ended atomic.Uintptr
}

// End marks the lifetime as finished. Calling End more than once is allowed.
func (l *Lifetime) End() {
	l.ended.Store(1)
}

// Alive reports whether End has not been called.
func (l *Lifetime) Alive() bool {
	return l == nil || l.ended.Load() == 0
}

// Guarded pairs a [Callback] with the [Lifetime] of its target.
//
// An invocation that has already passed the liveness check when End is
// called still runs to completion.
type Guarded[R, A any] struct {
	cb Callback[R, A]
	lt *Lifetime
}

// Guard returns cb guarded by lt.
func Guard[R, A any](cb Callback[R, A], lt *Lifetime) Guarded[R, A] {
	return Guarded[R, A]{cb: cb, lt: lt}
}

// IsValid reports whether the handle is bound and its lifetime is alive.
func (g Guarded[R, A]) IsValid() bool {
	return g.cb.IsValid() && g.lt.Alive()
}

// Invoke calls the guarded callback.
// Returns the zero value of R if unbound or if the lifetime has ended.
func (g Guarded[R, A]) Invoke(arg A) R {
	if !g.lt.Alive() {
		var zero R
		return zero
	}
	return g.cb.Invoke(arg)
}

// TryInvoke attempts to call the guarded callback.
// Returns (result, true) on a call, or (zero, false) if unbound or ended.
func (g Guarded[R, A]) TryInvoke(arg A) (R, bool) {
	if !g.lt.Alive() {
		var zero R
		return zero, false
	}
	return g.cb.TryInvoke(arg)
}

// Callback returns the unguarded handle.
func (g Guarded[R, A]) Callback() Callback[R, A] {
	return g.cb
}
