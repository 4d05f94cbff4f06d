// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package callback

import "unsafe"

// Callback is a type-erased handle to a method bound to an object.
// Callback[R, A] invokes a method taking A and returning R, without
// carrying the type of the object that owns the method.
//
// The zero value is unbound. Bound handles are produced by [Bind]; they
// are plain values and may be copied, stored and reassigned freely.
// Copying duplicates the references, never the target.
//
// A Callback does not own its target. The object must stay logically live
// for every invocation made through the handle; the handle cannot detect an
// object its owner has finished with (see [Lifetime] for an opt-in check).
//
// A Callback is not safe for concurrent mutation and invocation.
type Callback[R, A any] struct {
	target unsafe.Pointer
	entry  unsafe.Pointer
}

// IsValid reports whether the handle is bound to a target and method.
func (c Callback[R, A]) IsValid() bool {
	return c.target != nil
}

// Invoke calls the bound method on the bound target with arg and returns
// its result. On an unbound handle Invoke performs no call and returns the
// zero value of R; use [Callback.IsValid] or [Callback.TryInvoke] when that
// must be told apart from a method that returned zero.
func (c Callback[R, A]) Invoke(arg A) R {
	if c.target == nil {
		var zero R
		return zero
	}
	return c.call(arg)
}

// TryInvoke calls the bound method like Invoke.
// Returns (result, true) if a call was made, or (zero, false) if unbound.
func (c Callback[R, A]) TryInvoke(arg A) (R, bool) {
	if c.target == nil {
		var zero R
		return zero, false
	}
	return c.call(arg), true
}

// Assign copies the binding of other into c and returns c.
// Assigning an unbound handle unbinds c. Self-assignment is a no-op.
func (c *Callback[R, A]) Assign(other Callback[R, A]) *Callback[R, A] {
	*c = other
	return c
}

// Reset unbinds c.
func (c *Callback[R, A]) Reset() {
	*c = Callback[R, A]{}
}

// Equal reports whether c and other refer to the same method on the same
// target. Two unbound handles are equal.
func (c Callback[R, A]) Equal(other Callback[R, A]) bool {
	return c.target == other.target && c.entry == other.entry
}

// call reinterprets entry, the word of a func(*T, A) R, as a function
// taking the target as an unsafe.Pointer. *T and unsafe.Pointer share one
// representation, so the call passes the same bits the direct call would.
func (c Callback[R, A]) call(arg A) R {
	m := *(*func(unsafe.Pointer, A) R)(unsafe.Pointer(&c.entry))
	return m(c.target, arg)
}
