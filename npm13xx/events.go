// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package npm13xx

// EventGroup identifies one of the PMIC's interrupt source categories.
// Each group owns a status/clear/mask register quad in the MAIN block.
type EventGroup uint8

const (
	EventGroupADC EventGroup = iota
	EventGroupCharger0
	EventGroupCharger1
	EventGroupCharger2
	EventGroupShipHold
	EventGroupVbusIn0
	EventGroupVbusIn1
	EventGroupGPIO
	eventGroupCount
)

func (g EventGroup) String() string {
	switch g {
	case EventGroupADC:
		return "ADC"
	case EventGroupCharger0:
		return "CHARGER0"
	case EventGroupCharger1:
		return "CHARGER1"
	case EventGroupCharger2:
		return "CHARGER2"
	case EventGroupShipHold:
		return "SHPHLD"
	case EventGroupVbusIn0:
		return "VBUSIN0"
	case EventGroupVbusIn1:
		return "VBUSIN1"
	case EventGroupGPIO:
		return "GPIO"
	}
	return "INVALID"
}

// Event bits within the groups. Only the commonly used subset is named.
const (
	// EventGroupADC
	EventADCVbatReady uint8 = 1 << 0
	EventADCNtcReady  uint8 = 1 << 1
	EventADCTempReady uint8 = 1 << 2
	EventADCVsysReady uint8 = 1 << 3

	// EventGroupCharger0 (NTC zone transitions)
	EventChargerNtcCold uint8 = 1 << 0
	EventChargerNtcCool uint8 = 1 << 1
	EventChargerNtcWarm uint8 = 1 << 2
	EventChargerNtcHot  uint8 = 1 << 3

	// EventGroupCharger1 (charge state)
	EventChargerSupplement uint8 = 1 << 0
	EventChargerTrickle    uint8 = 1 << 1
	EventChargerConstCurr  uint8 = 1 << 2
	EventChargerConstVolt  uint8 = 1 << 3
	EventChargerCompleted  uint8 = 1 << 4
	EventChargerError      uint8 = 1 << 5

	// EventGroupShipHold
	EventShipHoldPressed  uint8 = 1 << 0
	EventShipHoldReleased uint8 = 1 << 1
	EventWatchdogWarn     uint8 = 1 << 2

	// EventGroupVbusIn0
	EventVbusDetected uint8 = 1 << 0
	EventVbusRemoved  uint8 = 1 << 1
	EventVbusOvervolt uint8 = 1 << 2

	// EventGroupGPIO (one bit per pin, edge detected)
	EventGPIOEdge0 uint8 = 1 << 0
	EventGPIOEdge1 uint8 = 1 << 1
	EventGPIOEdge2 uint8 = 1 << 2
	EventGPIOEdge3 uint8 = 1 << 3
	EventGPIOEdge4 uint8 = 1 << 4
)

// Each group is a quad of byte registers starting at eventsBase:
// EVENTSSET (read pending), EVENTSCLR (write 1 to clear), INTENSET,
// INTENCLR.
const (
	eventsBase    uint16 = baseMain + 0x02
	eventsStride  uint16 = 4
	offEventsSet  uint16 = 0
	offEventsClr  uint16 = 1
	offIntenSet   uint16 = 2
	offIntenClr   uint16 = 3
	eventsAllMask uint8  = 0xFF
)

func eventReg(g EventGroup, off uint16) uint16 {
	return eventsBase + uint16(g)*eventsStride + off
}

// RegisterCallback installs fn as the handler for group. At most one
// callback per group; re-registering replaces the previous handler.
func (c *Core) RegisterCallback(group EventGroup, fn CallbackFunc) error {
	if group >= eventGroupCount {
		return ErrBadEventGroup
	}
	if fn == nil {
		return ErrNilCallback
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.callbacks[group] = fn
	return nil
}

// Interrupt reads every group's pending-event register and ORs the bits
// into the internal latch. It does not dispatch and does not clear
// anything on the chip; pair it with Proc. Safe to call repeatedly
// before Proc runs: bits accumulate, none are dropped.
func (c *Core) Interrupt() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for g := EventGroup(0); g < eventGroupCount; g++ {
		bits, err := c.readReg(eventReg(g, offEventsSet))
		if err != nil {
			return err
		}
		c.latched[g] |= bits
	}
	return nil
}

// Proc dispatches the latched event bits. Groups are serviced in
// ascending order; for each group with pending bits the registered
// callback (or the diagnostic callback when none is registered) runs
// synchronously, then the bits are cleared on the chip and in the
// latch. Callbacks run in the caller's goroutine.
func (c *Core) Proc() error {
	for g := EventGroup(0); g < eventGroupCount; g++ {
		c.mu.Lock()
		bits := c.latched[g]
		cb := c.callbacks[g]
		c.mu.Unlock()
		if bits == 0 {
			continue
		}
		if cb != nil {
			cb(c, g, bits)
		} else if c.diag != nil {
			c.diag(g, bits)
		}
		c.mu.Lock()
		err := c.writeReg(eventReg(g, offEventsClr), bits)
		if err == nil {
			c.latched[g] &^= bits
		}
		c.mu.Unlock()
		if err != nil {
			return err
		}
	}
	return nil
}

// EventInterruptEnable clears any stale pending bits in mask, then
// unmasks them so the PMIC asserts its interrupt output when they fire.
func (c *Core) EventInterruptEnable(group EventGroup, mask uint8) error {
	if group >= eventGroupCount {
		return ErrBadEventGroup
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.writeReg(eventReg(group, offEventsClr), mask); err != nil {
		return err
	}
	return c.writeReg(eventReg(group, offIntenSet), mask)
}

// EventInterruptDisable masks the events in mask and clears any pending
// bits so they cannot fire later from stale state.
func (c *Core) EventInterruptDisable(group EventGroup, mask uint8) error {
	if group >= eventGroupCount {
		return ErrBadEventGroup
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.writeReg(eventReg(group, offIntenClr), mask); err != nil {
		return err
	}
	return c.writeReg(eventReg(group, offEventsClr), mask)
}

// InterruptDisableAll masks and clears every event group. Used at
// bring-up so no interrupt state from a previous boot can dispatch
// before handlers are installed.
func (c *Core) InterruptDisableAll() error {
	for g := EventGroup(0); g < eventGroupCount; g++ {
		if err := c.EventInterruptDisable(g, eventsAllMask); err != nil {
			return err
		}
	}
	return nil
}
