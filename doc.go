// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package npmx is a container for Nordic nPM13xx PMIC drivers.
//
// The npm13xx package holds the register-level core library, npm1300
// holds the host-side device driver, and ledsink holds a terminal
// emulator for the charge-indicator LED rails.
package npmx
