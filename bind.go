// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package callback

import "unsafe"

// Method is the signature of a method expression on *T taking A and
// returning R, such as (*Counter).Add.
type Method[T, R, A any] = func(*T, A) R

// Bind binds method to obj and returns the type-erased handle.
//
// method is usually a method expression: (*T).M for pointer receivers,
// value receivers and methods promoted from embedded fields alike. Any
// other func(*T, A) R works too. The type parameters tie R and A of the
// handle to the method signature, so a mismatch is a compile error.
//
// Bind is the only place a *T and its method lose their types; the handle
// keeps their bits unchanged and [Callback.Invoke] passes them back as is.
//
// A nil obj or nil method yields an unbound handle; use [MustBind] to
// panic instead.
func Bind[T, R, A any](obj *T, method Method[T, R, A]) Callback[R, A] {
	if obj == nil || method == nil {
		return Callback[R, A]{}
	}
	return Callback[R, A]{
		target: unsafe.Pointer(obj),
		entry:  funcWord(method),
	}
}

// MustBind is like Bind but panics if obj or method is nil.
func MustBind[T, R, A any](obj *T, method Method[T, R, A]) Callback[R, A] {
	if obj == nil {
		panic("callback: nil target")
	}
	if method == nil {
		panic("callback: nil method")
	}
	return Bind(obj, method)
}

// funcWord returns the single machine word a func value is represented by.
func funcWord[T, R, A any](f func(*T, A) R) unsafe.Pointer {
	return *(*unsafe.Pointer)(unsafe.Pointer(&f))
}
