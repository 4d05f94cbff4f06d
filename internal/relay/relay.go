// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package relay fans an event out to a fixed set of callback handles.
//
// A Relay is the consumer side of a callback: it stores handles to methods
// on objects it knows nothing about and invokes them in attach order.
// Storage is a fixed array, so attaching and firing never allocate in the
// relay itself.
package relay

import (
	"errors"

	"github.com/sirupsen/logrus"

	"code.hybscloud.com/callback"
)

// Capacity is the number of handles a Relay can hold.
const Capacity = 16

var (
	// ErrFull is returned by Attach when every slot is in use.
	ErrFull = errors.New("relay: full")

	// ErrUnbound is returned by Attach for an unbound handle.
	ErrUnbound = errors.New("relay: unbound callback")
)

// Relay holds up to Capacity handles of one signature.
// A Relay is not safe for concurrent use.
type Relay[R, A any] struct {
	name  string
	log   *logrus.Entry
	slots [Capacity]callback.Callback[R, A]
	n     int
}

// New returns an empty relay. A nil logger uses the logrus standard logger.
func New[R, A any](name string, logger *logrus.Entry) *Relay[R, A] {
	if logger == nil {
		logger = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Relay[R, A]{
		name: name,
		log:  logger.WithField("relay", name),
	}
}

// Name returns the relay name.
func (r *Relay[R, A]) Name() string { return r.name }

// Len returns the number of attached handles.
func (r *Relay[R, A]) Len() int { return r.n }

// Attach appends h. Attaching the same handle twice makes it fire twice.
func (r *Relay[R, A]) Attach(h callback.Callback[R, A]) error {
	if !h.IsValid() {
		return ErrUnbound
	}
	if r.n == Capacity {
		r.log.WithFields(logrus.Fields{
			"capacity": Capacity,
		}).Warn("Relay full, callback rejected")
		return ErrFull
	}
	r.slots[r.n] = h
	r.n++
	r.log.WithFields(logrus.Fields{
		"slot":  r.n - 1,
		"count": r.n,
	}).Debug("Callback attached")
	return nil
}

// Detach removes the first handle equal to h, keeping the order of the
// rest. Returns false if no such handle is attached.
func (r *Relay[R, A]) Detach(h callback.Callback[R, A]) bool {
	for i := 0; i < r.n; i++ {
		if !r.slots[i].Equal(h) {
			continue
		}
		copy(r.slots[i:r.n], r.slots[i+1:r.n])
		r.n--
		r.slots[r.n].Reset()
		r.log.WithFields(logrus.Fields{
			"slot":  i,
			"count": r.n,
		}).Debug("Callback detached")
		return true
	}
	return false
}

// Fire invokes every attached handle with arg in attach order and passes
// each result to yield. A nil yield discards the results.
// Returns the number of handles invoked.
//
// Fire invokes the handles attached when it starts. A callback may Attach or
// Detach during Fire; the change takes effect from the next Fire.
func (r *Relay[R, A]) Fire(arg A, yield func(R)) int {
	n := r.n
	snap := r.slots
	if r.log.Logger.IsLevelEnabled(logrus.DebugLevel) {
		r.log.WithFields(logrus.Fields{
			"count": n,
		}).Debug("Firing relay")
	}
	for i := 0; i < n; i++ {
		res := snap[i].Invoke(arg)
		if yield != nil {
			yield(res)
		}
	}
	return n
}

// Clear detaches every handle.
func (r *Relay[R, A]) Clear() {
	for i := 0; i < r.n; i++ {
		r.slots[i].Reset()
	}
	r.n = 0
}
