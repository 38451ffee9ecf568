// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package npm13xx

import "periph.io/x/conn/v3/physic"

const (
	regTaskReleaseErr       uint16 = baseCharger + 0x00
	regTaskClearChgErr      uint16 = baseCharger + 0x01
	regTaskClearSafetyTimer uint16 = baseCharger + 0x02
	regChgEnableSet         uint16 = baseCharger + 0x04
	regChgEnableClr         uint16 = baseCharger + 0x05
	regChgIsetMsb           uint16 = baseCharger + 0x08
	regChgIsetLsb           uint16 = baseCharger + 0x09
	regChgVterm             uint16 = baseCharger + 0x0C
	regChgVtermR            uint16 = baseCharger + 0x0D
	regChgStatus            uint16 = baseCharger + 0x34
	regChgErrReason         uint16 = baseCharger + 0x36
)

// ChargeStatus is the raw charger status register with named bits.
type ChargeStatus uint8

const (
	ChargeStatusBatteryDetected ChargeStatus = 1 << 0
	ChargeStatusCompleted       ChargeStatus = 1 << 1
	ChargeStatusTrickle         ChargeStatus = 1 << 2
	ChargeStatusConstCurrent    ChargeStatus = 1 << 3
	ChargeStatusConstVoltage    ChargeStatus = 1 << 4
	ChargeStatusRecharge        ChargeStatus = 1 << 5
	ChargeStatusDieTempPause    ChargeStatus = 1 << 6
	ChargeStatusSupplement      ChargeStatus = 1 << 7
)

// Charging current range, programmed in 2mA steps split across an
// MSB/LSB register pair.
const (
	chargerCurrentMin  = 32 * physic.MilliAmpere
	chargerCurrentMax  = 800 * physic.MilliAmpere
	chargerCurrentStep = 2 * physic.MilliAmpere
)

// Termination voltage: 3.50V-3.65V then 4.00V-4.45V, 50mV steps.
const (
	vtermLowMin  = 3500 * physic.MilliVolt
	vtermLowMax  = 3650 * physic.MilliVolt
	vtermHighMin = 4000 * physic.MilliVolt
	vtermHighMax = 4450 * physic.MilliVolt
	vtermStep    = 50 * physic.MilliVolt
)

// ChargerEnable starts battery charging.
func (c *Core) ChargerEnable() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.writeReg(regChgEnableSet, 1)
}

// ChargerDisable stops battery charging.
func (c *Core) ChargerDisable() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.writeReg(regChgEnableClr, 1)
}

// ChargerSetCurrent programs the constant-current charge current.
// Values snap down to the 2mA register resolution.
func (c *Core) ChargerSetCurrent(i physic.ElectricCurrent) error {
	if i < chargerCurrentMin || i > chargerCurrentMax {
		return ErrValueOutOfRange
	}
	code := uint16(i / chargerCurrentStep)
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.writeReg(regChgIsetMsb, byte(code>>1)); err != nil {
		return err
	}
	return c.writeReg(regChgIsetLsb, byte(code&1))
}

// ChargerCurrent reads back the programmed charge current.
func (c *Core) ChargerCurrent() (physic.ElectricCurrent, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	msb, err := c.readReg(regChgIsetMsb)
	if err != nil {
		return 0, err
	}
	lsb, err := c.readReg(regChgIsetLsb)
	if err != nil {
		return 0, err
	}
	code := uint16(msb)<<1 | uint16(lsb&1)
	return physic.ElectricCurrent(code) * chargerCurrentStep, nil
}

// ChargerSetTerminationVoltage programs the charge termination voltage.
// The chip accepts 3.50V-3.65V and 4.00V-4.45V in 50mV steps; anything
// else is rejected.
func (c *Core) ChargerSetTerminationVoltage(v physic.ElectricPotential) error {
	code, err := vtermCode(v)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.writeReg(regChgVterm, code)
}

// ChargerStatus reads the charger status register.
func (c *Core) ChargerStatus() (ChargeStatus, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, err := c.readReg(regChgStatus)
	return ChargeStatus(v), err
}

// ChargerError reads the latched charger error reason.
func (c *Core) ChargerError() (uint8, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.readReg(regChgErrReason)
}

// ChargerClearError clears a latched charger error and releases the
// charger from its error hold-off.
func (c *Core) ChargerClearError() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.writeReg(regTaskClearChgErr, taskStrobe); err != nil {
		return err
	}
	return c.writeReg(regTaskReleaseErr, taskStrobe)
}

func vtermCode(v physic.ElectricPotential) (byte, error) {
	switch {
	case v >= vtermLowMin && v <= vtermLowMax:
		return byte((v - vtermLowMin) / vtermStep), nil
	case v >= vtermHighMin && v <= vtermHighMax:
		return byte(4 + (v-vtermHighMin)/vtermStep), nil
	}
	return 0, ErrValueOutOfRange
}
