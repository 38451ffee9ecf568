// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package npm1300

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/i2c"

	"github.com/NordicSemiconductor/npmx-go/npm13xx"
)

// DefaultAddress is the chip's fixed 7-bit I2C address.
const DefaultAddress uint16 = 0x6B

// PinUnset marks a PMIC GPIO role as not wired on this board.
const PinUnset = -1

var (
	// ErrCoreInit means the PMIC core library rejected initialization.
	ErrCoreInit = errors.New("npm1300: core init failed")
	// ErrBusNotReady means the chip did not answer on the bus.
	ErrBusNotReady = errors.New("npm1300: bus not ready")
	// ErrInterruptSetup means the interrupt line could not be brought up.
	ErrInterruptSetup = errors.New("npm1300: interrupt setup failed")

	// ErrPofPinUnavailable means no PMIC GPIO is assigned as the
	// power-loss warning output on this device.
	ErrPofPinUnavailable = errors.New("npm1300: no PMIC power-fail pin configured")
	// ErrHostPinUnavailable means no host GPIO is wired to the
	// power-loss warning output.
	ErrHostPinUnavailable = errors.New("npm1300: no host power-fail pin configured")
	// ErrCallbackRequired means RegisterPofCallback was given a nil
	// callback.
	ErrCallbackRequired = errors.New("npm1300: power-fail callback required")
	// ErrPofRegistered means a power-fail callback is already armed.
	ErrPofRegistered = errors.New("npm1300: power-fail callback already registered")
)

// Opts holds the board wiring of one nPM1300.
type Opts struct {
	// Addr is the I2C address, normally DefaultAddress.
	Addr uint16
	// IntPin is the host GPIO wired to the PMIC interrupt output.
	// Required.
	IntPin gpio.PinIn
	// IntPMICPin is the PMIC GPIO (0..4) driven as the interrupt
	// output.
	IntPMICPin int
	// PofPin is the host GPIO wired to the power-loss warning output,
	// or nil when unused.
	PofPin gpio.PinIn
	// PofPMICPin is the PMIC GPIO driven as the power-loss warning
	// output, or PinUnset.
	PofPMICPin int
	// ResetPMICPin is the PMIC GPIO driven as a reset output for
	// companion chips, or PinUnset.
	ResetPMICPin int
	// Diag receives events that fire without a registered callback.
	Diag npm13xx.DiagFunc
	// OnError receives failures from the deferred event worker. The
	// worker re-arms the interrupt line even when a service pass
	// fails, so this is the only place such a failure is visible.
	OnError func(error)
}

// DefaultOpts is the canonical wiring: interrupt on PMIC GPIO0, no
// power-fail or reset pins.
var DefaultOpts = Opts{
	Addr:         DefaultAddress,
	IntPMICPin:   0,
	PofPMICPin:   PinUnset,
	ResetPMICPin: PinUnset,
}

// Dev is a handle to one nPM1300.
type Dev struct {
	core    *npm13xx.Core
	backend *i2cBackend

	intPin       gpio.PinIn
	pofPin       gpio.PinIn
	intPMICPin   int
	pofPMICPin   int
	resetPMICPin int

	onError func(error)

	intArmed atomic.Bool
	pofArmed atomic.Bool

	// trigger carries at most one queued service pass; submissions
	// while one is queued coalesce.
	trigger chan struct{}
	// rearm wakes the edge watcher after the worker re-enables the
	// line.
	rearm    chan struct{}
	shutdown chan struct{}
	wg       sync.WaitGroup

	mu     sync.Mutex
	pofCB  PofCallback
	halted bool
}

// New initializes an nPM1300 on the bus and arms its interrupt line.
//
// The bus and the host GPIO pins must already be usable, i.e. host.Init
// has run and the pins were obtained from a live gpioreg. Failure
// leaves the device non-functional; there is no partial bring-up.
func New(bus i2c.Bus, opts *Opts) (*Dev, error) {
	if opts == nil {
		o := DefaultOpts
		opts = &o
	}
	addr := opts.Addr
	if addr == 0 {
		addr = DefaultAddress
	}
	if opts.IntPin == nil {
		return nil, fmt.Errorf("%w: no host interrupt pin", ErrInterruptSetup)
	}
	if opts.IntPMICPin < 0 || opts.IntPMICPin >= npm13xx.NumGPIO {
		return nil, fmt.Errorf("%w: PMIC pin %d out of range", ErrInterruptSetup, opts.IntPMICPin)
	}
	for _, p := range []int{opts.PofPMICPin, opts.ResetPMICPin} {
		if p != PinUnset && (p < 0 || p >= npm13xx.NumGPIO) {
			return nil, fmt.Errorf("npm1300: PMIC pin %d out of range", p)
		}
		if p == opts.IntPMICPin {
			return nil, fmt.Errorf("npm1300: PMIC pin %d assigned to conflicting roles", p)
		}
	}
	if opts.PofPMICPin != PinUnset && opts.PofPMICPin == opts.ResetPMICPin {
		return nil, fmt.Errorf("npm1300: PMIC pin %d assigned to conflicting roles", opts.PofPMICPin)
	}

	d := &Dev{
		backend:      &i2cBackend{d: i2c.Dev{Bus: bus, Addr: addr}},
		intPin:       opts.IntPin,
		pofPin:       opts.PofPin,
		intPMICPin:   opts.IntPMICPin,
		pofPMICPin:   opts.PofPMICPin,
		resetPMICPin: opts.ResetPMICPin,
		onError:      opts.OnError,
		trigger:      make(chan struct{}, 1),
		rearm:        make(chan struct{}, 1),
		shutdown:     make(chan struct{}),
	}

	core, err := npm13xx.New(d.backend, opts.Diag)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCoreInit, err)
	}
	d.core = core

	if err := core.CheckCommunication(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBusNotReady, err)
	}

	// Drop any interrupt state left over from a previous boot so
	// nothing dispatches before handlers are installed.
	if err := core.InterruptDisableAll(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInterruptSetup, err)
	}

	if err := d.setupInterrupt(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInterruptSetup, err)
	}

	if d.resetPMICPin != PinUnset {
		if err := core.GPIOSetMode(d.resetPMICPin, npm13xx.GPIOModeOutputReset); err != nil {
			return nil, err
		}
	}
	return d, nil
}

func (d *Dev) String() string {
	return fmt.Sprintf("npm1300{%s}", &d.backend.d)
}

// Core returns the register-level core handle. Event callbacks are
// registered on it directly via RegisterCallback.
func (d *Dev) Core() *npm13xx.Core {
	return d.core
}

// InterruptPMICPin returns the PMIC GPIO used as interrupt output.
func (d *Dev) InterruptPMICPin() int {
	return d.intPMICPin
}

// PofPMICPin returns the PMIC GPIO used as power-loss warning output,
// or false when the board does not wire one.
func (d *Dev) PofPMICPin() (int, bool) {
	return d.pofPMICPin, d.pofPMICPin != PinUnset
}

// ResetPMICPin returns the PMIC GPIO used as reset output, or false
// when the board does not wire one.
func (d *Dev) ResetPMICPin() (int, bool) {
	return d.resetPMICPin, d.resetPMICPin != PinUnset
}

// InterruptArmed reports whether the main interrupt line is enabled.
func (d *Dev) InterruptArmed() bool {
	return d.intArmed.Load()
}

// PofArmed reports whether the power-fail line is enabled.
func (d *Dev) PofArmed() bool {
	return d.pofArmed.Load()
}

// Halt disarms both interrupt lines and stops the goroutines.
// Implements conn.Resource.
func (d *Dev) Halt() error {
	d.mu.Lock()
	if d.halted {
		d.mu.Unlock()
		return nil
	}
	d.halted = true
	d.mu.Unlock()
	d.intArmed.Store(false)
	d.pofArmed.Store(false)
	close(d.shutdown)
	d.wg.Wait()
	return nil
}

func (d *Dev) reportError(err error) {
	if d.onError != nil {
		d.onError(err)
	}
}
