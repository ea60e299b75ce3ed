// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package emplace_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"code.hybscloud.com/emplace"
)

type account struct {
	balance  int
	disposed *int
}

func (a *account) Dispose() {
	if a.disposed != nil {
		*a.disposed++
	}
}

func TestSealRefRoundTrip(t *testing.T) {
	recv := &account{balance: 42}
	s := emplace.SealRef(recv)
	require.Equal(t, emplace.KindBorrowed, s.Kind())
	require.False(t, s.Consumed())

	got := emplace.UnsealRef[account](s)
	require.Same(t, recv, got)
	require.True(t, s.Consumed())
}

func TestSealMutRoundTrip(t *testing.T) {
	recv := &account{balance: 1}
	s := emplace.SealMut(recv)
	require.Equal(t, emplace.KindBorrowedMut, s.Kind())
	emplace.UnsealMut[account](s).balance = 2
	require.Equal(t, 2, recv.balance)
}

func TestUnsealTwicePanics(t *testing.T) {
	s := emplace.SealRef(&account{})
	emplace.UnsealRef[account](s)
	require.PanicsWithValue(t, "emplace: sealed receiver used twice", func() {
		emplace.UnsealRef[account](s)
	})
}

func TestUnsealKindMismatch(t *testing.T) {
	s := emplace.SealRef(&account{})
	require.Panics(t, func() { emplace.UnsealMut[account](s) })
}

func TestZeroSealedPanics(t *testing.T) {
	var s emplace.Sealed
	require.Panics(t, func() { emplace.UnsealRef[account](s) })
}

func TestSealedPin(t *testing.T) {
	s := emplace.SealRef(&account{}).Pin()
	require.True(t, s.Pinned())
}

func TestSealOwnedReleaseRunsDispose(t *testing.T) {
	dropped := 0
	s := emplace.SealOwned(&account{balance: 9}, func(a *account) { dropped++ })
	s.Release()
	require.Equal(t, 1, dropped, "never-unsealed receiver must release exactly once")
	require.Panics(t, func() { s.Release() })
}

func TestSealOwnedUnsealDisarms(t *testing.T) {
	dropped := 0
	recv := &account{balance: 9}
	s := emplace.SealOwned(recv, func(a *account) { dropped++ })
	got := emplace.UnsealOwned[account](s)
	require.Same(t, recv, got)
	require.Zero(t, dropped, "unsealing transfers ownership; dispose must not run")
}

func TestRcCounting(t *testing.T) {
	disposed := 0
	rc := emplace.NewRc(account{balance: 5, disposed: &disposed})
	require.Equal(t, 1, rc.Refs())

	s := emplace.SealRc(rc)
	require.Equal(t, 2, rc.Refs(), "sealing captures one count")

	s.Release()
	require.Equal(t, 1, rc.Refs())
	require.Zero(t, disposed)

	rc.Release()
	require.Zero(t, rc.Refs())
	require.Equal(t, 1, disposed, "last release disposes exactly once")
}

func TestRcUnsealTransfersCount(t *testing.T) {
	disposed := 0
	rc := emplace.NewRc(account{disposed: &disposed})
	s := emplace.SealRc(rc)

	got := emplace.UnsealRc[account](s)
	require.Same(t, rc, got)
	require.Equal(t, 2, rc.Refs(), "the captured count transfers, not drops")

	got.Release()
	rc.Release()
	require.Equal(t, 1, disposed)
}

func TestRcOverRelease(t *testing.T) {
	rc := emplace.NewRc(account{})
	rc.Release()
	require.Panics(t, func() { rc.Release() })
}

func TestArcCounting(t *testing.T) {
	disposed := 0
	arc := emplace.NewArc(account{disposed: &disposed})
	s := emplace.SealArc(arc)
	require.Equal(t, int64(2), arc.Refs())

	s.Release()
	arc.Release()
	require.Equal(t, 1, disposed)
}

func TestArcConcurrentClones(t *testing.T) {
	arc := emplace.NewArc(account{})
	const goroutines = 16
	var wg sync.WaitGroup
	wg.Add(goroutines)
	for range goroutines {
		go func() {
			defer wg.Done()
			c := arc.Clone()
			c.Release()
		}()
	}
	wg.Wait()
	require.Equal(t, int64(1), arc.Refs())
}

func TestReceiverKindString(t *testing.T) {
	kinds := map[emplace.ReceiverKind]string{
		emplace.KindBorrowed:     "Borrowed",
		emplace.KindBorrowedMut:  "BorrowedMut",
		emplace.KindOwned:        "Owned",
		emplace.KindShared:       "Shared",
		emplace.KindSharedAtomic: "SharedAtomic",
	}
	for k, want := range kinds {
		require.Equal(t, want, k.String())
	}
}
