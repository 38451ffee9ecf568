// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package npm13xx

const (
	regScratch0     uint16 = baseErrlog + 0x01
	regScratch1     uint16 = baseErrlog + 0x02
	regRstCause     uint16 = baseErrlog + 0x03
	regChgErrLogged uint16 = baseErrlog + 0x04
)

// ResetCause is the boot-persistent reset reason register.
type ResetCause uint8

const (
	ResetCauseShipExit  ResetCause = 1 << 0
	ResetCauseBootTimer ResetCause = 1 << 1
	ResetCauseWatchdog  ResetCause = 1 << 2
	ResetCauseLongPress ResetCause = 1 << 3
	ResetCauseThermal   ResetCause = 1 << 4
	ResetCauseVsysLow   ResetCause = 1 << 5
	ResetCauseSoftware  ResetCause = 1 << 6
)

// LastResetCause reads why the PMIC last went through reset.
func (c *Core) LastResetCause() (ResetCause, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, err := c.readReg(regRstCause)
	return ResetCause(v), err
}

// ClearErrorLog wipes the reset-cause and charger-error log.
func (c *Core) ClearErrorLog() error {
	return c.TaskTrigger(TaskClearErrlog)
}

// Scratch returns one of the two boot-persistent scratch registers.
func (c *Core) Scratch(n int) (byte, error) {
	if n < 0 || n > 1 {
		return 0, ErrValueOutOfRange
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.readReg(regScratch0 + uint16(n))
}

// SetScratch writes one of the two boot-persistent scratch registers.
func (c *Core) SetScratch(n int, v byte) error {
	if n < 0 || n > 1 {
		return ErrValueOutOfRange
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.writeReg(regScratch0+uint16(n), v)
}
