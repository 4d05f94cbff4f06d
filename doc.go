// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package callback provides type-erased, allocation-free method callbacks
// in Go.
//
// The core type [Callback] binds an object and one of its methods into a
// value parameterized only by the method's result and argument types.
// A consumer can store and invoke the handle without knowing the type of
// the object behind it, and without an interface, a closure or a heap
// allocation.
//
// # Design Philosophy
//
// callback provides:
//   - A single concrete handle type with no interface dispatch
//   - One trusted construction path ([Bind]) that performs the type erasure
//   - Allocation-free bind, copy, assign and invoke
//
// # Type Erasure
//
// A bound handle holds two opaque references:
//
//   - the target: the object pointer, stored as an unsafe.Pointer
//   - the entry: the single word representing the func(*T, A) R value
//
// Invocation reads the entry back as a func(unsafe.Pointer, A) R and calls
// it with the target. A *T and an unsafe.Pointer have the same
// representation, so the callee receives exactly the bits a direct call
// would pass and the erased call has the semantics of the direct one.
// Nothing else in the package handles the erased words.
//
// # Handle
//
//   - [Callback.IsValid]: Report whether the handle is bound
//   - [Callback.Invoke]: Call the bound method (zero result if unbound)
//   - [Callback.TryInvoke]: Call and report whether a call happened
//   - [Callback.Assign]: Copy another handle's binding
//   - [Callback.Reset]: Unbind
//   - [Callback.Equal]: Compare target and method
//
// The zero value is unbound. Bound and unbound are the only states; any
// state is reachable from any other by Bind, Assign or Reset.
//
// # Binding
//
//   - [Bind]: Bind func(*T, A) R to a *T
//   - [MustBind]: Bind, panicking on a nil target or method
//
// Method expressions cover pointer receivers, value receivers and methods
// promoted from embedded fields. Bind does not allocate for method
// expressions on concrete types. A method expression written inside a
// generic function, such as (*Box[T]).Put, compiles to a closure over the
// instantiation's dictionary and costs one allocation each time it is
// evaluated; hoist it out of the loop, or bind from non-generic code, where
// that matters:
//
//	type Counter struct{ total int }
//	func (c *Counter) Add(n int) int { c.total += n; return c.total }
//
//	var c Counter
//	h := callback.Bind(&c, (*Counter).Add) // Callback[int, int]
//	h.Invoke(5)                            // 5
//	h.Invoke(3)                            // 8
//
// # Lifetimes
//
// A handle never owns its target. Go's collector keeps the target's memory
// reachable, so a stale handle cannot fault, but it will happily call into
// an object its owner considers finished. Preventing that is the owner's
// job. [Lifetime] and [Guarded] make it checkable for owners that opt in:
//
//   - [Lifetime.End]: Mark the target finished
//   - [Guard]: Pair a handle with a Lifetime
//   - [Guarded.IsValid]: Bound and alive
//   - [Guarded.Invoke], [Guarded.TryInvoke]: No-op once ended
//
// # Concurrency
//
// Invocation is a direct synchronous call. Handles carry no synchronization;
// invoking a handle while another goroutine reassigns it is a data race.
// Access to the target is entirely the target's concern.
package callback
