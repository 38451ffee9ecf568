// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package npm13xx

import "time"

// TimerMode selects what the 24-bit timer drives.
type TimerMode uint8

const (
	TimerModeBootMonitor   TimerMode = 0
	TimerModeWatchdogWarn  TimerMode = 1
	TimerModeWatchdogReset TimerMode = 2
	TimerModeWakeup        TimerMode = 3
	TimerModeGeneral       TimerMode = 4
)

const (
	regTaskTimerStart  uint16 = baseTimer + 0x00
	regTaskTimerStop   uint16 = baseTimer + 0x01
	regTaskTimerStrobe uint16 = baseTimer + 0x03
	regTimerConfig     uint16 = baseTimer + 0x05
	regTimerStatus     uint16 = baseTimer + 0x06
	regTimerHiByte     uint16 = baseTimer + 0x08
	regTimerMidByte    uint16 = baseTimer + 0x09
	regTimerLoByte     uint16 = baseTimer + 0x0A
)

// timerTick is the timer resolution; the 24-bit counter gives a range
// of 2ms to just under 9h20m.
const timerTick = 2 * time.Millisecond

// TimerSetPeriod loads the 24-bit timer compare value and strobes it
// into the timer domain. The duration snaps down to the 2ms tick.
func (c *Core) TimerSetPeriod(d time.Duration) error {
	ticks := int64(d / timerTick)
	if ticks < 1 || ticks > 0xFFFFFF {
		return ErrValueOutOfRange
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.writeReg(regTimerHiByte, byte(ticks>>16)); err != nil {
		return err
	}
	if err := c.writeReg(regTimerMidByte, byte(ticks>>8)); err != nil {
		return err
	}
	if err := c.writeReg(regTimerLoByte, byte(ticks)); err != nil {
		return err
	}
	return c.writeReg(regTaskTimerStrobe, taskStrobe)
}

// TimerSetMode selects the timer function.
func (c *Core) TimerSetMode(m TimerMode) error {
	if m > TimerModeGeneral {
		return ErrValueOutOfRange
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.writeReg(regTimerConfig, byte(m))
}

// TimerStart starts the timer.
func (c *Core) TimerStart() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.writeReg(regTaskTimerStart, taskStrobe)
}

// TimerStop stops the timer.
func (c *Core) TimerStop() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.writeReg(regTaskTimerStop, taskStrobe)
}

// WatchdogKick feeds the watchdog when the timer runs in one of the
// watchdog modes.
func (c *Core) WatchdogKick() error {
	return c.TaskTrigger(TaskWatchdogKick)
}

// TimerBusy reports whether a timer value strobe is still propagating
// into the timer clock domain.
func (c *Core) TimerBusy() (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, err := c.readReg(regTimerStatus)
	return v&1 != 0, err
}
