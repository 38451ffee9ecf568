// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package ledsink

import (
	"bytes"
	"strings"
	"testing"
)

func TestUpdate(t *testing.T) {
	b := &bytes.Buffer{}
	d := New(&Opts{W: b})
	if err := d.Update([NumRails]bool{false, true, false}); err != nil {
		t.Fatal(err)
	}
	got := b.String()
	if !strings.HasPrefix(got, "\r\033[0m") {
		t.Errorf("missing carriage return and reset prefix: %q", got)
	}
	if !strings.HasSuffix(got, "\033[0m ") {
		t.Errorf("missing reset suffix: %q", got)
	}

	b.Reset()
	if err := d.Update([NumRails]bool{true, true, true}); err != nil {
		t.Fatal(err)
	}
	if b.String() == got {
		t.Error("different rail states rendered identically")
	}
}

func TestSet(t *testing.T) {
	b := &bytes.Buffer{}
	d := New(&Opts{W: b})
	if err := d.Set(1, true); err != nil {
		t.Fatal(err)
	}
	charging := b.String()

	// Toggling another rail must leave rail 1 lit.
	b.Reset()
	if err := d.Set(1, false); err != nil {
		t.Fatal(err)
	}
	b.Reset()
	if err := d.Set(1, true); err != nil {
		t.Fatal(err)
	}
	if b.String() != charging {
		t.Error("rail state is not sticky across Set calls")
	}

	if err := d.Set(NumRails, true); err == nil {
		t.Error("expected an error for an out of range rail")
	}
	if err := d.Set(-1, true); err == nil {
		t.Error("expected an error for a negative rail")
	}
}

func TestHalt(t *testing.T) {
	b := &bytes.Buffer{}
	d := New(&Opts{W: b})
	if err := d.Halt(); err != nil {
		t.Fatal(err)
	}
	if got := b.String(); got != "\n\033[0m" {
		t.Errorf("Halt wrote %q", got)
	}
}

func TestString(t *testing.T) {
	if s := New(&Opts{W: &bytes.Buffer{}}).String(); s != "LEDSink" {
		t.Errorf("String() = %q", s)
	}
}
