// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package npm13xx

import "periph.io/x/conn/v3/physic"

// NumLoadSwitches is the number of load switch / LDO channels.
const NumLoadSwitches = 2

const (
	regTaskLdswSet uint16 = baseLdsw + 0x00 // +2 per channel
	regTaskLdswClr uint16 = baseLdsw + 0x01
	regLdswStatus  uint16 = baseLdsw + 0x04
	regLdswConfig  uint16 = baseLdsw + 0x07
	regLdswVoutSel uint16 = baseLdsw + 0x0C // +1 per channel
)

func ldswCheck(ch int) error {
	if ch < 0 || ch >= NumLoadSwitches {
		return ErrPinOutOfRange
	}
	return nil
}

// LoadSwitchEnable closes load switch ch.
func (c *Core) LoadSwitchEnable(ch int) error {
	if err := ldswCheck(ch); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.writeReg(regTaskLdswSet+uint16(2*ch), taskStrobe)
}

// LoadSwitchDisable opens load switch ch.
func (c *Core) LoadSwitchDisable(ch int) error {
	if err := ldswCheck(ch); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.writeReg(regTaskLdswClr+uint16(2*ch), taskStrobe)
}

// LoadSwitchSetLDO reconfigures channel ch as an LDO regulating to v.
// The output range is 1.0V to 3.3V in 100mV steps.
func (c *Core) LoadSwitchSetLDO(ch int, v physic.ElectricPotential) error {
	if err := ldswCheck(ch); err != nil {
		return err
	}
	code, err := buckVoutCode(v)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.writeReg(regLdswVoutSel+uint16(ch), code); err != nil {
		return err
	}
	cfg, err := c.readReg(regLdswConfig)
	if err != nil {
		return err
	}
	return c.writeReg(regLdswConfig, cfg|1<<uint(ch))
}

// LoadSwitchStatus reads the raw load switch status register.
func (c *Core) LoadSwitchStatus() (uint8, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.readReg(regLdswStatus)
}
