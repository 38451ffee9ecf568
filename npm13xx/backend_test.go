// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package npm13xx

import "fmt"

// regWrite records one register write seen by the fake backend.
type regWrite struct {
	Addr uint16
	Val  byte
}

// fakeBackend is an in-memory register map. It is the mock-transport
// seam: tests preload register values and inspect the write log.
type fakeBackend struct {
	regs   map[uint16]byte
	writes []regWrite
	// failing addresses return errFake.
	fail map[uint16]bool
}

var errFake = fmt.Errorf("fake backend fault")

func newFakeBackend() *fakeBackend {
	return &fakeBackend{regs: map[uint16]byte{}, fail: map[uint16]bool{}}
}

func (f *fakeBackend) WriteRegisters(addr uint16, p []byte) error {
	for i, b := range p {
		a := addr + uint16(i)
		if f.fail[a] {
			return errFake
		}
		f.regs[a] = b
		f.writes = append(f.writes, regWrite{a, b})
	}
	return nil
}

func (f *fakeBackend) ReadRegisters(addr uint16, p []byte) error {
	for i := range p {
		a := addr + uint16(i)
		if f.fail[a] {
			return errFake
		}
		p[i] = f.regs[a]
	}
	return nil
}

// lastWrite returns the most recent write to addr, or -1 if none.
func (f *fakeBackend) lastWrite(addr uint16) int {
	for i := len(f.writes) - 1; i >= 0; i-- {
		if f.writes[i].Addr == addr {
			return int(f.writes[i].Val)
		}
	}
	return -1
}
