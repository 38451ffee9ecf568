// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package npm13xx

import (
	"errors"
	"fmt"
	"sync"
)

// Register base addresses. The upper byte of the 16-bit register address
// selects the peripheral block, the lower byte the register within it.
const (
	baseMain    uint16 = 0x0000
	baseVbusin  uint16 = 0x0200
	baseCharger uint16 = 0x0300
	baseBuck    uint16 = 0x0400
	baseADC     uint16 = 0x0500
	baseGPIO    uint16 = 0x0600
	baseTimer   uint16 = 0x0700
	baseLdsw    uint16 = 0x0800
	basePOF     uint16 = 0x0900
	baseLED     uint16 = 0x0A00
	baseShip    uint16 = 0x0B00
	baseErrlog  uint16 = 0x0E00
)

var (
	ErrNilBackend      = errors.New("npm13xx: backend is nil")
	ErrNilCallback     = errors.New("npm13xx: callback is nil")
	ErrBadEventGroup   = errors.New("npm13xx: invalid event group")
	ErrPinOutOfRange   = errors.New("npm13xx: pin index out of range")
	ErrValueOutOfRange = errors.New("npm13xx: value out of range")
)

// Backend is the register transport bound to a Core. It is the only
// channel through which a Core performs I/O. Both calls are synchronous
// and may block for the duration of a bus transaction.
type Backend interface {
	// WriteRegisters writes p to consecutive registers starting at addr
	// as a single bus transaction.
	WriteRegisters(addr uint16, p []byte) error
	// ReadRegisters fills p from consecutive registers starting at addr
	// as a single bus transaction.
	ReadRegisters(addr uint16, p []byte) error
}

// CallbackFunc is invoked by Proc for each event group with pending
// bits. It runs in the caller's goroutine and must not re-enter
// configuration APIs on the same Core.
type CallbackFunc func(c *Core, group EventGroup, bits uint8)

// DiagFunc receives events that fired without a registered callback.
type DiagFunc func(group EventGroup, bits uint8)

// Core is the handle to one physical PMIC. It holds the event latch and
// the callback table, and serializes all register traffic.
type Core struct {
	mu      sync.Mutex
	backend Backend
	diag    DiagFunc

	latched   [eventGroupCount]uint8
	callbacks [eventGroupCount]CallbackFunc
}

// New binds a Core to a register backend. diag may be nil.
func New(b Backend, diag DiagFunc) (*Core, error) {
	if b == nil {
		return nil, ErrNilBackend
	}
	return &Core{backend: b, diag: diag}, nil
}

func (c *Core) writeReg(addr uint16, p ...byte) error {
	if err := c.backend.WriteRegisters(addr, p); err != nil {
		return fmt.Errorf("npm13xx: write 0x%04x: %w", addr, err)
	}
	return nil
}

func (c *Core) readReg(addr uint16) (byte, error) {
	var p [1]byte
	if err := c.backend.ReadRegisters(addr, p[:]); err != nil {
		return 0, fmt.Errorf("npm13xx: read 0x%04x: %w", addr, err)
	}
	return p[0], nil
}

func (c *Core) readRegs(addr uint16, p []byte) error {
	if err := c.backend.ReadRegisters(addr, p); err != nil {
		return fmt.Errorf("npm13xx: read 0x%04x: %w", addr, err)
	}
	return nil
}

// CheckCommunication verifies the backend can reach the chip, using a
// harmless one-byte read of an event register.
func (c *Core) CheckCommunication() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, err := c.readReg(eventReg(EventGroupADC, offEventsSet))
	return err
}

// Task is the address of a single-byte task strobe register.
type Task uint16

// Task strobes usable with TaskTrigger. Peripheral helpers trigger most
// of these internally; they are exported for callers that drive the
// chip directly.
const (
	TaskSoftwareReset  Task = Task(baseMain + 0x01)
	TaskEnterHibernate Task = Task(baseShip + 0x00)
	TaskShipCfgStrobe  Task = Task(baseShip + 0x01)
	TaskEnterShipMode  Task = Task(baseShip + 0x02)
	TaskResetShipCfg   Task = Task(baseShip + 0x03)
	TaskWatchdogKick   Task = Task(baseTimer + 0x04)
	TaskClearErrlog    Task = Task(baseErrlog + 0x00)
)

// TaskTrigger strobes a task register.
func (c *Core) TaskTrigger(t Task) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.writeReg(uint16(t), taskStrobe)
}

// taskStrobe is the value written to any task register to fire it.
const taskStrobe byte = 0x01

// SoftwareReset triggers a full power cycle of the PMIC.
func (c *Core) SoftwareReset() error {
	return c.TaskTrigger(TaskSoftwareReset)
}
