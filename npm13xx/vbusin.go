// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package npm13xx

import "periph.io/x/conn/v3/physic"

const (
	regTaskUpdateIlim   uint16 = baseVbusin + 0x00
	regVbusInIlim       uint16 = baseVbusin + 0x01
	regVbusSuspend      uint16 = baseVbusin + 0x03
	regUsbcDetectStatus uint16 = baseVbusin + 0x05
	regVbusInStatus     uint16 = baseVbusin + 0x07
)

// VBUS input current limit: 100mA to 1.5A in 100mA steps.
const (
	vbusIlimMin  = 100 * physic.MilliAmpere
	vbusIlimMax  = 1500 * physic.MilliAmpere
	vbusIlimStep = 100 * physic.MilliAmpere
)

// VBUSSetCurrentLimit programs the input current limit and strobes the
// update task so the new limit is applied to the active input switch.
func (c *Core) VBUSSetCurrentLimit(i physic.ElectricCurrent) error {
	if i < vbusIlimMin || i > vbusIlimMax || i%vbusIlimStep != 0 {
		return ErrValueOutOfRange
	}
	code := byte(i / vbusIlimStep)
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.writeReg(regVbusInIlim, code); err != nil {
		return err
	}
	return c.writeReg(regTaskUpdateIlim, taskStrobe)
}

// VBUSStatus reads the raw VBUS input status register.
func (c *Core) VBUSStatus() (uint8, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.readReg(regVbusInStatus)
}

// VBUSSuspend puts the VBUS input in or out of USB suspend.
func (c *Core) VBUSSuspend(suspend bool) error {
	var v byte
	if suspend {
		v = 1
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.writeReg(regVbusSuspend, v)
}
