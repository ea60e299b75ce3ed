// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package emplace

// OutOfCapacity is the error reported by capacity-bounded providers that
// cannot fit a requested layout. It is the only recoverable failure in the
// package: the constructor is left untouched, so the caller may retry with
// another provider or let a fallback combinator do so.
type OutOfCapacity struct{}

func (OutOfCapacity) Error() string { return "out of capacity" }

// ErrOutOfCapacity is the sentinel value returned by capacity-bounded
// providers; compare with errors.Is or a direct equality check.
var ErrOutOfCapacity error = OutOfCapacity{}

// Fixed panic messages. Everything that panics in this package is a
// contract violation by the caller, not a recoverable condition.
const (
	panicFailedInit     = "failed to initialize"
	panicConsumed       = "emplace: constructor already consumed"
	panicHandleReleased = "emplace: handle released twice"
	panicHandleUse      = "emplace: handle used after release"
	panicSealedReuse    = "emplace: sealed receiver used twice"
	panicAddrMismatch   = "emplace: constructed address mismatches"
	panicLayoutMismatch = "emplace: constructed layout mismatches"
)
