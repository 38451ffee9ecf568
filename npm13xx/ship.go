// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package npm13xx

import "time"

const (
	regShipConfig    uint16 = baseShip + 0x04
	regLpResetConfig uint16 = baseShip + 0x06
)

// Ship-hold button debounce times accepted by the chip.
var shipDebounce = []time.Duration{
	16 * time.Millisecond,
	32 * time.Millisecond,
	64 * time.Millisecond,
	96 * time.Millisecond,
	304 * time.Millisecond,
	608 * time.Millisecond,
	1008 * time.Millisecond,
	3008 * time.Millisecond,
}

// EnterShipMode powers the device down to ship mode. Only the ship-hold
// button or VBUS insertion wakes the chip; register access is lost
// until then.
func (c *Core) EnterShipMode() error {
	return c.TaskTrigger(TaskEnterShipMode)
}

// EnterHibernate powers down to hibernate mode. The wakeup timer keeps
// running and revives the chip when it expires.
func (c *Core) EnterHibernate() error {
	return c.TaskTrigger(TaskEnterHibernate)
}

// ShipSetDebounce programs the ship-hold button debounce time and
// strobes the config so it takes effect. d must be one of the chip's
// fixed debounce values.
func (c *Core) ShipSetDebounce(d time.Duration) error {
	code := -1
	for i, v := range shipDebounce {
		if v == d {
			code = i
			break
		}
	}
	if code < 0 {
		return ErrValueOutOfRange
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.writeReg(regShipConfig, byte(code)); err != nil {
		return err
	}
	return c.writeReg(uint16(TaskShipCfgStrobe), taskStrobe)
}
