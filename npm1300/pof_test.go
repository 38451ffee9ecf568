// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package npm1300

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpiotest"
	"periph.io/x/conn/v3/i2c/i2ctest"
	"periph.io/x/conn/v3/physic"

	"github.com/NordicSemiconductor/npmx-go/npm13xx"
)

// newPofDev builds a device with the power-fail path wired on PMIC
// GPIO4 and appends extraOps to the init recording.
func newPofDev(t *testing.T, extraOps ...i2ctest.IO) (*Dev, *i2ctest.Playback, *pofPins) {
	t.Helper()
	ops := append(initOps(0, PinUnset), extraOps...)
	pb := &i2ctest.Playback{Ops: ops, DontPanic: true}
	intPin := testPin("INT", 22)
	pofPin := testPin("POF", 23)
	opts := DefaultOpts
	opts.IntPin = intPin
	opts.PofPin = pofPin
	opts.PofPMICPin = 4
	dev, err := New(pb, &opts)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = dev.Halt() })
	return dev, pb, &pofPins{intPin, pofPin}
}

// pofPins bundles the two host pins of a test device.
type pofPins struct {
	intPin *gpiotest.Pin
	pofPin *gpiotest.Pin
}

func TestRegisterPofCallbackPreconditions(t *testing.T) {
	cb := func(*npm13xx.Core) {}

	// No PMIC-side pin wins over every other missing piece.
	pb := &i2ctest.Playback{Ops: initOps(0, PinUnset), DontPanic: true}
	opts := DefaultOpts
	opts.IntPin = testPin("INT", 22)
	dev, err := New(pb, &opts)
	if err != nil {
		t.Fatal(err)
	}
	defer dev.Halt()
	if err := dev.RegisterPofCallback(PofConfig{}, nil); !errors.Is(err, ErrPofPinUnavailable) {
		t.Errorf("err=%v, want ErrPofPinUnavailable", err)
	}

	// PMIC pin wired but no host pin.
	pb = &i2ctest.Playback{Ops: initOps(0, PinUnset), DontPanic: true}
	opts = DefaultOpts
	opts.IntPin = testPin("INT", 22)
	opts.PofPMICPin = 4
	dev2, err := New(pb, &opts)
	if err != nil {
		t.Fatal(err)
	}
	defer dev2.Halt()
	if err := dev2.RegisterPofCallback(PofConfig{}, cb); !errors.Is(err, ErrHostPinUnavailable) {
		t.Errorf("err=%v, want ErrHostPinUnavailable", err)
	}

	// Both pins wired, callback missing. No register traffic may have
	// happened for any of the failed attempts.
	dev3, pb3, _ := newPofDev(t)
	if err := dev3.RegisterPofCallback(PofConfig{}, nil); !errors.Is(err, ErrCallbackRequired) {
		t.Errorf("err=%v, want ErrCallbackRequired", err)
	}
	if dev3.PofArmed() {
		t.Error("failed registration armed the power-fail line")
	}
	if err := pb3.Close(); err != nil {
		t.Errorf("failed registration produced register traffic: %v", err)
	}
}

func TestRegisterPofCallbackTwice(t *testing.T) {
	dev, _, _ := newPofDev(t,
		i2ctest.IO{Addr: DefaultAddress, W: []byte{0x06, 0x04, 0x07}})
	cb := func(*npm13xx.Core) {}
	if err := dev.RegisterPofCallback(PofConfig{}, cb); err != nil {
		t.Fatal(err)
	}
	if err := dev.RegisterPofCallback(PofConfig{}, cb); !errors.Is(err, ErrPofRegistered) {
		t.Errorf("err=%v, want ErrPofRegistered", err)
	}
}

// Power-fail assertion takes down the power-fail line and the main
// interrupt line, in that order, before the callback runs.
func TestPofCrossDisable(t *testing.T) {
	dev, pb, pins := newPofDev(t,
		i2ctest.IO{Addr: DefaultAddress, W: []byte{0x06, 0x04, 0x07}})

	var mu sync.Mutex
	var sequence []string
	done := make(chan struct{})
	err := dev.RegisterPofCallback(PofConfig{Polarity: ActiveHigh}, func(c *npm13xx.Core) {
		mu.Lock()
		sequence = append(sequence,
			"callback",
			"pof-armed="+boolStr(dev.PofArmed()),
			"int-armed="+boolStr(dev.InterruptArmed()),
		)
		mu.Unlock()
		close(done)
	})
	if err != nil {
		t.Fatal(err)
	}
	if !dev.PofArmed() || !dev.InterruptArmed() {
		t.Fatal("both lines should be armed before the power-fail")
	}

	pins.pofPin.EdgesChan <- gpio.High
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("power-fail callback never ran")
	}

	want := []string{"callback", "pof-armed=false", "int-armed=false"}
	mu.Lock()
	got := append([]string(nil), sequence...)
	mu.Unlock()
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("call sequence (-want +got):\n%s", diff)
	}
	// The power-fail path does no register I/O of its own.
	if err := pb.Close(); err != nil {
		t.Errorf("unexpected register traffic: %v", err)
	}
}

func TestPofActiveLow(t *testing.T) {
	dev, _, pins := newPofDev(t,
		i2ctest.IO{Addr: DefaultAddress, W: []byte{0x06, 0x04, 0x07}})

	fired := make(chan struct{})
	err := dev.RegisterPofCallback(PofConfig{Polarity: ActiveLow}, func(*npm13xx.Core) {
		close(fired)
	})
	if err != nil {
		t.Fatal(err)
	}
	if pull := pins.pofPin.P; pull != gpio.PullUp {
		t.Errorf("active-low pull=%s, want PullUp", pull)
	}

	pins.pofPin.EdgesChan <- gpio.Low
	select {
	case <-fired:
	case <-time.After(2 * time.Second):
		t.Fatal("power-fail callback never ran")
	}
}

// A non-zero threshold programs the POF comparator before the warning
// pin is handed over.
func TestPofThreshold(t *testing.T) {
	dev, pb, _ := newPofDev(t,
		i2ctest.IO{Addr: DefaultAddress, W: []byte{0x09, 0x00, 0x0B}},
		i2ctest.IO{Addr: DefaultAddress, W: []byte{0x06, 0x04, 0x07}})

	err := dev.RegisterPofCallback(PofConfig{
		Polarity:  ActiveHigh,
		Threshold: 2800 * physic.MilliVolt,
	}, func(*npm13xx.Core) {})
	if err != nil {
		t.Fatal(err)
	}
	if err := pb.Close(); err != nil {
		t.Errorf("unconsumed traffic: %v", err)
	}
}

func boolStr(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
