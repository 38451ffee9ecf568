// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package npm13xx

import "periph.io/x/conn/v3/physic"

const regPOFConfig uint16 = basePOF + 0x00

// POFConfig register bits.
const (
	pofEnable      byte = 1 << 0
	pofActiveHigh  byte = 1 << 1
	pofThreshShift      = 2
)

// POF comparator threshold: 2.6V to 3.5V in 100mV steps.
const (
	pofThreshMin  = 2600 * physic.MilliVolt
	pofThreshMax  = 3500 * physic.MilliVolt
	pofThreshStep = 100 * physic.MilliVolt
)

// POFEnable arms the power-fail comparator at the given VSYS threshold.
// activeHigh selects the polarity of the warning output.
func (c *Core) POFEnable(threshold physic.ElectricPotential, activeHigh bool) error {
	if threshold < pofThreshMin || threshold > pofThreshMax {
		return ErrValueOutOfRange
	}
	code := byte((threshold - pofThreshMin) / pofThreshStep)
	v := pofEnable | code<<pofThreshShift
	if activeHigh {
		v |= pofActiveHigh
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.writeReg(regPOFConfig, v)
}

// POFDisable turns the power-fail comparator off.
func (c *Core) POFDisable() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.writeReg(regPOFConfig, 0)
}
