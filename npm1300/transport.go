// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package npm1300

import (
	"fmt"

	"periph.io/x/conn/v3/i2c"
)

// i2cBackend implements npm13xx.Backend on an I2C device. Registers are
// addressed with 16 bits, most significant byte first.
type i2cBackend struct {
	d i2c.Dev
}

// WriteRegisters sends the register address and payload as one
// stop-terminated bus transaction. Errors are wrapped and surfaced to
// the caller; no retry happens at this layer.
func (b *i2cBackend) WriteRegisters(addr uint16, p []byte) error {
	w := make([]byte, 0, 2+len(p))
	w = append(w, byte(addr>>8), byte(addr))
	w = append(w, p...)
	if err := b.d.Tx(w, nil); err != nil {
		return fmt.Errorf("npm1300: register write 0x%04x: %w", addr, err)
	}
	return nil
}

// ReadRegisters writes the register address and reads len(p) bytes in a
// single transaction, with no stop condition between the two phases.
func (b *i2cBackend) ReadRegisters(addr uint16, p []byte) error {
	if err := b.d.Tx([]byte{byte(addr >> 8), byte(addr)}, p); err != nil {
		return fmt.Errorf("npm1300: register read 0x%04x: %w", addr, err)
	}
	return nil
}
