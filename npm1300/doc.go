// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package npm1300 provides a driver for the Nordic nPM1300 power
// management IC on an I2C bus.
//
// The driver binds an npm13xx.Core to the bus, services the chip's
// interrupt output through a host GPIO, and exposes the power-fail
// warning output as a dedicated low-latency path.
//
// The chip signals events by holding its interrupt output high until
// every pending event is cleared. The driver watches the host pin in a
// dedicated goroutine that does nothing but disarm the line and
// schedule a service pass; a worker goroutine performs the actual
// register traffic (read pending events, dispatch callbacks, clear,
// re-arm). Register I/O therefore never happens on the edge-watching
// path, mirroring how an ISR hands off to a work queue on an RTOS.
//
// A second, independent host pin can be wired to the PMIC's power-loss
// warning output. That path deliberately skips the worker: when power
// is failing the registered callback runs immediately on the watching
// goroutine, after both interrupt lines have been taken down.
//
// # Datasheet
//
// https://docs.nordicsemi.com/bundle/ps_npm1300/
package npm1300
