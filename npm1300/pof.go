// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package npm1300

import (
	"fmt"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"

	"github.com/NordicSemiconductor/npmx-go/npm13xx"
)

// Polarity selects which level of the power-loss warning output means
// "power is failing".
type Polarity uint8

const (
	ActiveHigh Polarity = iota
	ActiveLow
)

// PofConfig configures the power-fail path.
type PofConfig struct {
	Polarity Polarity
	// Threshold optionally programs the VSYS comparator threshold
	// (2.6V to 3.5V). Zero leaves the comparator configuration
	// untouched.
	Threshold physic.ElectricPotential
}

// PofCallback runs when the power-loss warning line asserts. It runs on
// the watching goroutine with both interrupt lines already taken down,
// so it must be short and must not expect further event dispatch.
type PofCallback func(c *npm13xx.Core)

// RegisterPofCallback arms the power-fail path: cb will run the moment
// the PMIC's power-loss warning output asserts.
//
// The path is independent of the main interrupt line, except that a
// power-fail deliberately takes the main line down too before cb runs:
// once power is failing, further register I/O may be unreliable or
// moot. Both lines then stay down; the path is one-shot.
//
// No state is committed when an error is returned.
func (d *Dev) RegisterPofCallback(cfg PofConfig, cb PofCallback) error {
	if d.pofPMICPin == PinUnset {
		return ErrPofPinUnavailable
	}
	if d.pofPin == nil {
		return ErrHostPinUnavailable
	}
	if cb == nil {
		return ErrCallbackRequired
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.pofCB != nil {
		return ErrPofRegistered
	}

	if cfg.Threshold != 0 {
		if err := d.core.POFEnable(cfg.Threshold, cfg.Polarity == ActiveHigh); err != nil {
			return err
		}
	}
	if err := d.core.GPIOSetMode(d.pofPMICPin, npm13xx.GPIOModeOutputPowerLossWarning); err != nil {
		return err
	}

	pull, edge := gpio.PullDown, gpio.RisingEdge
	if cfg.Polarity == ActiveLow {
		pull, edge = gpio.PullUp, gpio.FallingEdge
	}
	if err := d.pofPin.In(pull, edge); err != nil {
		return fmt.Errorf("npm1300: power-fail pin config: %w", err)
	}

	d.pofCB = cb
	d.pofArmed.Store(true)
	d.wg.Add(1)
	go d.watchPof()
	return nil
}

// watchPof waits for the power-loss warning line. One-shot: after a
// power-fail fires the goroutine exits and both lines stay down.
func (d *Dev) watchPof() {
	defer d.wg.Done()
	for {
		select {
		case <-d.shutdown:
			return
		default:
		}
		if !d.pofPin.WaitForEdge(edgeTimeout) {
			continue
		}
		if !d.pofArmed.Load() {
			continue
		}
		// Power is failing. Take the power-fail line down, then the
		// main interrupt line as well: event dispatch must stop
		// before the application callback runs, because register
		// traffic can no longer be trusted.
		d.pofArmed.Store(false)
		d.intArmed.Store(false)
		d.mu.Lock()
		cb := d.pofCB
		d.mu.Unlock()
		if cb != nil {
			cb(d.core)
		}
		return
	}
}
