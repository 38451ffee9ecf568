// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package ledsink emulates the three charge indicator LED rails of a
// nPM13xx PMIC on the terminal using ANSI color codes.
//
// Useful to mirror the PMIC's error, charging and host LED state while
// developing on a board where the LEDs are not populated.
package ledsink

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"
	"io"

	"github.com/maruel/ansi256"
	"github.com/mattn/go-colorable"
)

// NumRails is the number of LED rails on the PMIC.
const NumRails = 3

// Rail colors, in PMIC order: error, charging, host.
var railColors = [NumRails]color.NRGBA{
	{R: 255, A: 255},
	{R: 255, G: 191, A: 255},
	{B: 255, A: 255},
}

var railOff = color.NRGBA{R: 24, G: 24, B: 24, A: 255}

// Opts represents the options available for this display.
type Opts struct {
	// W is where the rails are rendered. Defaults to a colorable stdout.
	W io.Writer
	// Palette quantizes the rail colors. Defaults to ansi256.Default.
	Palette *ansi256.Palette

	_ struct{}
}

// Dev is a 3 rail LED emulator that outputs to the console.
type Dev struct {
	w       io.Writer
	palette ansi256.Palette

	rails [NumRails]bool
	buf   bytes.Buffer
}

// New returns a Dev that displays the LED rails at the console.
func New(opts *Opts) *Dev {
	w := opts.W
	if w == nil {
		w = colorable.NewColorableStdout()
	}
	p := opts.Palette
	if p == nil {
		p = ansi256.Default
	}
	return &Dev{w: w, palette: *p}
}

func (d *Dev) String() string {
	return "LEDSink"
}

// Halt implements conn.Resource.
//
// It resets the terminal attributes so the console is not corrupted.
func (d *Dev) Halt() error {
	_, err := d.w.Write([]byte("\n\033[0m"))
	return err
}

// Update redraws the three rails. rails is in PMIC order: error,
// charging, host.
func (d *Dev) Update(rails [NumRails]bool) error {
	d.rails = rails
	return d.refresh()
}

// Set changes a single rail, leaving the others as they were.
func (d *Dev) Set(rail int, on bool) error {
	if rail < 0 || rail >= NumRails {
		return errors.New("ledsink: rail out of range")
	}
	d.rails[rail] = on
	return d.refresh()
}

func (d *Dev) refresh() error {
	// This code is designed to minimize the amount of memory allocated per call.
	d.buf.Reset()
	_, _ = d.buf.WriteString("\r\033[0m")
	for i, on := range d.rails {
		c := railOff
		if on {
			c = railColors[i]
		}
		_, _ = io.WriteString(&d.buf, d.palette.Block(c))
	}
	_, _ = d.buf.WriteString("\033[0m ")
	_, err := d.buf.WriteTo(d.w)
	return err
}

var _ fmt.Stringer = &Dev{}
