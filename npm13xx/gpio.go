// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package npm13xx

import "periph.io/x/conn/v3/gpio"

// NumGPIO is the number of multi-purpose GPIO pins on the PMIC.
const NumGPIO = 5

// GPIOMode selects the function of one of the PMIC's GPIO pins.
type GPIOMode uint8

const (
	GPIOModeInput            GPIOMode = 0
	GPIOModeInputLogic1      GPIOMode = 1
	GPIOModeInputLogic0      GPIOMode = 2
	GPIOModeInputRisingEdge  GPIOMode = 3
	GPIOModeInputFallingEdge GPIOMode = 4
	// GPIOModeOutputIRQ drives the pin as the chip's interrupt output:
	// held high while any unmasked event is pending.
	GPIOModeOutputIRQ GPIOMode = 5
	// GPIOModeOutputReset drives the pin as a reset output for
	// companion chips.
	GPIOModeOutputReset GPIOMode = 6
	// GPIOModeOutputPowerLossWarning drives the pin from the POF
	// comparator: asserted when VSYS drops below the configured
	// threshold.
	GPIOModeOutputPowerLossWarning GPIOMode = 7
	GPIOModeOutputLogic1           GPIOMode = 8
	GPIOModeOutputLogic0           GPIOMode = 9
)

const (
	regGPIOMode      uint16 = baseGPIO + 0x00 // ..0x04, one per pin
	regGPIODrive     uint16 = baseGPIO + 0x05 // ..0x09
	regGPIOPullUp    uint16 = baseGPIO + 0x0A // ..0x0E
	regGPIOPullDown  uint16 = baseGPIO + 0x0F // ..0x13
	regGPIOOpenDrain uint16 = baseGPIO + 0x14 // ..0x18
	regGPIODebounce  uint16 = baseGPIO + 0x19 // ..0x1D
	regGPIOStatus    uint16 = baseGPIO + 0x1E
)

// GPIOSetMode programs the function of pin.
func (c *Core) GPIOSetMode(pin int, m GPIOMode) error {
	if pin < 0 || pin >= NumGPIO {
		return ErrPinOutOfRange
	}
	if m > GPIOModeOutputLogic0 {
		return ErrValueOutOfRange
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.writeReg(regGPIOMode+uint16(pin), byte(m))
}

// GPIOGetMode reads back the programmed function of pin.
func (c *Core) GPIOGetMode(pin int) (GPIOMode, error) {
	if pin < 0 || pin >= NumGPIO {
		return 0, ErrPinOutOfRange
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	v, err := c.readReg(regGPIOMode + uint16(pin))
	return GPIOMode(v), err
}

// GPIOSetPull configures the pull resistor of pin. The two pull enables
// are separate registers on the chip; both are always written so the
// previous setting cannot linger.
func (c *Core) GPIOSetPull(pin int, p gpio.Pull) error {
	if pin < 0 || pin >= NumGPIO {
		return ErrPinOutOfRange
	}
	var up, down byte
	switch p {
	case gpio.PullUp:
		up = 1
	case gpio.PullDown:
		down = 1
	case gpio.Float, gpio.PullNoChange:
	default:
		return ErrValueOutOfRange
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.writeReg(regGPIOPullUp+uint16(pin), up); err != nil {
		return err
	}
	return c.writeReg(regGPIOPullDown+uint16(pin), down)
}

// GPIOStatus reads the input level of all pins as a bitmask, bit n for
// pin n.
func (c *Core) GPIOStatus() (uint8, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.readReg(regGPIOStatus)
}
