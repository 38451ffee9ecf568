// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package npm13xx

// NumLEDs is the number of LED driver outputs.
const NumLEDs = 3

// LEDMode selects what drives an LED output.
type LEDMode uint8

const (
	// LEDModeError mirrors the charger error state.
	LEDModeError LEDMode = 0
	// LEDModeCharging is on while the battery is charging.
	LEDModeCharging LEDMode = 1
	// LEDModeHost hands the output to software via LEDSet.
	LEDModeHost LEDMode = 2
)

const (
	regLEDMode uint16 = baseLED + 0x00 // ..0x02, one per LED
	regLEDSet  uint16 = baseLED + 0x03 // +2 per LED
	regLEDClr  uint16 = baseLED + 0x04
)

func ledCheck(led int) error {
	if led < 0 || led >= NumLEDs {
		return ErrPinOutOfRange
	}
	return nil
}

// LEDSetMode programs what drives LED output led.
func (c *Core) LEDSetMode(led int, m LEDMode) error {
	if err := ledCheck(led); err != nil {
		return err
	}
	if m > LEDModeHost {
		return ErrValueOutOfRange
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.writeReg(regLEDMode+uint16(led), byte(m))
}

// LEDSet drives LED output led from software. The output must be in
// LEDModeHost for the write to have a visible effect.
func (c *Core) LEDSet(led int, on bool) error {
	if err := ledCheck(led); err != nil {
		return err
	}
	reg := regLEDClr
	if on {
		reg = regLEDSet
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.writeReg(reg+uint16(2*led), taskStrobe)
}
