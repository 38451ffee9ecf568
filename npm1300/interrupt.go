// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package npm1300

import (
	"time"

	"periph.io/x/conn/v3/gpio"

	"github.com/NordicSemiconductor/npmx-go/npm13xx"
)

// edgeTimeout bounds each WaitForEdge call so the watchers notice a
// Halt without needing the pin to fire.
const edgeTimeout = 100 * time.Millisecond

// setupInterrupt programs the PMIC pin as interrupt output, arms the
// host pin and starts the watcher and worker goroutines.
func (d *Dev) setupInterrupt() error {
	if err := d.core.GPIOSetMode(d.intPMICPin, npm13xx.GPIOModeOutputIRQ); err != nil {
		return err
	}
	// The chip holds the line high until every pending event is
	// cleared, so the rising edge is the arming condition and the
	// level is rechecked after each service pass.
	if err := d.intPin.In(gpio.PullDown, gpio.RisingEdge); err != nil {
		return err
	}
	d.intArmed.Store(true)
	d.wg.Add(2)
	go d.watchInterrupt()
	go d.worker()
	return nil
}

// submit queues one service pass. Idempotent: submitting while a pass
// is already queued coalesces into it, the pending events are drained
// all at once when the worker runs.
func (d *Dev) submit() {
	select {
	case d.trigger <- struct{}{}:
	default:
	}
}

// watchInterrupt is the edge-watching goroutine, the ISR stand-in. It
// is restricted to non-blocking work: flip the armed flag and submit.
// No register I/O happens here.
func (d *Dev) watchInterrupt() {
	defer d.wg.Done()
	for {
		select {
		case <-d.shutdown:
			return
		default:
		}
		if !d.intArmed.Load() {
			// Line disabled; park until the worker re-arms it.
			select {
			case <-d.rearm:
			case <-d.shutdown:
				return
			}
			continue
		}
		if d.intPin.WaitForEdge(edgeTimeout) {
			if !d.intArmed.Load() {
				// Disarmed while waiting (power-fail path).
				continue
			}
			d.intArmed.Store(false)
			d.submit()
		}
	}
}

// worker drains queued service passes.
func (d *Dev) worker() {
	defer d.wg.Done()
	for {
		select {
		case <-d.shutdown:
			return
		case <-d.trigger:
			d.service()
		}
	}
}

// service runs one Pending→Armed pass: latch the pending event groups,
// dispatch them, then re-arm the host line. Dispatch always happens
// before re-arming, so the line is never enabled while latched events
// are still being serviced.
//
// A core failure does not stop the re-arm: a permanently wedged
// interrupt line is worse than one lost notification. The failure is
// surfaced through OnError instead.
func (d *Dev) service() {
	if err := d.core.Interrupt(); err != nil {
		d.reportError(err)
	} else if err := d.core.Proc(); err != nil {
		d.reportError(err)
	}
	// Reconfiguring the pin drops edges that latched while the line
	// was disabled; the level recheck below covers them.
	if err := d.intPin.In(gpio.PullDown, gpio.RisingEdge); err != nil {
		d.reportError(err)
	}
	d.intArmed.Store(true)
	select {
	case d.rearm <- struct{}{}:
	default:
	}
	// The chip keeps the line asserted while anything is still
	// pending. Events that arrived during the pass produced no new
	// edge, so recheck the level and reschedule instead of waiting
	// for one.
	if d.intPin.Read() == gpio.High {
		d.intArmed.Store(false)
		d.submit()
	}
}
