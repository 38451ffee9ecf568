// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package npm13xx provides register-level access to the Nordic nPM13xx
// family of power management ICs.
//
// The package is transport agnostic: all register traffic goes through a
// Backend, a write/read pair bound once to a bus by the host-side driver
// (see the npm1300 package for an I2C backend). A Core owns the event
// latch and the event-group to callback dispatch table; peripherals
// (bucks, load switches, charger, ADC, GPIOs, LEDs, timer, POF
// comparator, ship modes) are exposed as methods on Core.
//
// The register map here is intentionally a working subset, not a full
// model of the chip.
//
// # Datasheet
//
// https://docs.nordicsemi.com/bundle/ps_npm1300/
package npm13xx
