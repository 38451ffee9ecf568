// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package ledsink_test

import (
	"log"
	"time"

	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"

	"github.com/NordicSemiconductor/npmx-go/ledsink"
	"github.com/NordicSemiconductor/npmx-go/npm13xx"
	"github.com/NordicSemiconductor/npmx-go/npm1300"
)

// Example mirrors the PMIC's charger state on the console instead of
// the physical LED outputs.
func Example() {
	if _, err := host.Init(); err != nil {
		log.Fatal(err)
	}
	bus, err := i2creg.Open("")
	if err != nil {
		log.Fatal(err)
	}
	defer bus.Close()

	opts := npm1300.DefaultOpts
	opts.IntPin = gpioreg.ByName("GPIO22")
	dev, err := npm1300.New(bus, &opts)
	if err != nil {
		log.Fatal(err)
	}
	defer dev.Halt()

	leds := ledsink.New(&ledsink.Opts{})
	defer leds.Halt()

	core := dev.Core()
	for i := 0; i < 30; i++ {
		st, err := core.ChargerStatus()
		if err != nil {
			log.Fatal(err)
		}
		chgErr, err := core.ChargerError()
		if err != nil {
			log.Fatal(err)
		}
		charging := st&(npm13xx.ChargeStatusTrickle|
			npm13xx.ChargeStatusConstCurrent|
			npm13xx.ChargeStatusConstVoltage) != 0
		if err := leds.Update([ledsink.NumRails]bool{
			chgErr != 0,
			charging,
			st&npm13xx.ChargeStatusCompleted != 0,
		}); err != nil {
			log.Fatal(err)
		}
		time.Sleep(time.Second)
	}
}
