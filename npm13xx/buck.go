// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package npm13xx

import "periph.io/x/conn/v3/physic"

// NumBucks is the number of buck converters.
const NumBucks = 2

const (
	regTaskBuckEnaSet uint16 = baseBuck + 0x00 // +2 per buck
	regTaskBuckEnaClr uint16 = baseBuck + 0x01
	regBuckVoutNorm   uint16 = baseBuck + 0x08 // +2 per buck
	regBuckVoutRet    uint16 = baseBuck + 0x09
	regBuckSwCtrlSel  uint16 = baseBuck + 0x0F
	regBuckStatus     uint16 = baseBuck + 0x34
)

// Buck output range: 1.0V to 3.3V in 100mV steps.
const (
	buckVoutMin  = 1000 * physic.MilliVolt
	buckVoutMax  = 3300 * physic.MilliVolt
	buckVoutStep = 100 * physic.MilliVolt
)

func buckCheck(buck int) error {
	if buck < 0 || buck >= NumBucks {
		return ErrPinOutOfRange
	}
	return nil
}

// BuckEnable turns buck converter buck on.
func (c *Core) BuckEnable(buck int) error {
	if err := buckCheck(buck); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.writeReg(regTaskBuckEnaSet+uint16(2*buck), taskStrobe)
}

// BuckDisable turns buck converter buck off.
func (c *Core) BuckDisable(buck int) error {
	if err := buckCheck(buck); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.writeReg(regTaskBuckEnaClr+uint16(2*buck), taskStrobe)
}

// BuckSetVoltage programs the normal-mode output voltage of buck and
// switches the converter to software VOUT control so the value takes
// effect regardless of the VSET pin strapping.
func (c *Core) BuckSetVoltage(buck int, v physic.ElectricPotential) error {
	if err := buckCheck(buck); err != nil {
		return err
	}
	code, err := buckVoutCode(v)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.writeReg(regBuckVoutNorm+uint16(2*buck), code); err != nil {
		return err
	}
	sel, err := c.readReg(regBuckSwCtrlSel)
	if err != nil {
		return err
	}
	return c.writeReg(regBuckSwCtrlSel, sel|1<<uint(buck))
}

// BuckSetRetentionVoltage programs the retention-mode output voltage of
// buck, used while the converter is in low power retention.
func (c *Core) BuckSetRetentionVoltage(buck int, v physic.ElectricPotential) error {
	if err := buckCheck(buck); err != nil {
		return err
	}
	code, err := buckVoutCode(v)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.writeReg(regBuckVoutRet+uint16(2*buck), code)
}

// BuckVoltage reads back the programmed normal-mode output voltage.
func (c *Core) BuckVoltage(buck int) (physic.ElectricPotential, error) {
	if err := buckCheck(buck); err != nil {
		return 0, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	code, err := c.readReg(regBuckVoutNorm + uint16(2*buck))
	if err != nil {
		return 0, err
	}
	return buckVoutFromCode(code), nil
}

// BuckStatus reads the raw buck status register.
func (c *Core) BuckStatus() (uint8, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.readReg(regBuckStatus)
}

func buckVoutCode(v physic.ElectricPotential) (byte, error) {
	if v < buckVoutMin || v > buckVoutMax {
		return 0, ErrValueOutOfRange
	}
	return byte((v - buckVoutMin) / buckVoutStep), nil
}

func buckVoutFromCode(code byte) physic.ElectricPotential {
	v := buckVoutMin + physic.ElectricPotential(code)*buckVoutStep
	if v > buckVoutMax {
		v = buckVoutMax
	}
	return v
}
