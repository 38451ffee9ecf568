// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package npm13xx

import (
	"math"
	"time"

	"periph.io/x/conn/v3/physic"
)

const (
	regTaskVbatMeasure uint16 = baseADC + 0x00
	regTaskNtcMeasure  uint16 = baseADC + 0x01
	regTaskTempMeasure uint16 = baseADC + 0x02
	regTaskVsysMeasure uint16 = baseADC + 0x03
	regADCConfig       uint16 = baseADC + 0x09
	regADCNtcRSel      uint16 = baseADC + 0x0A
	regVbatResultMsb   uint16 = baseADC + 0x11
	regNtcResultMsb    uint16 = baseADC + 0x12
	regTempResultMsb   uint16 = baseADC + 0x13
	regVsysResultMsb   uint16 = baseADC + 0x14
	regADCResultLsbs   uint16 = baseADC + 0x15
)

// LSB positions within the packed result-LSB register.
const (
	lsbShiftVbat = 0
	lsbShiftNtc  = 2
	lsbShiftTemp = 4
	lsbShiftVsys = 6
)

// adcConversionTime is the worst case single-shot conversion time.
const adcConversionTime = 250 * time.Microsecond

// 10-bit converter, VBAT full scale 5.0V, VSYS full scale 6.375V.
const (
	adcCounts     = 1024
	vbatFullScale = 5000 * physic.MilliVolt
	vsysFullScale = 6375 * physic.MilliVolt
)

// NTCResistor selects the nominal battery thermistor resistance.
type NTCResistor uint8

const (
	NTC10k  NTCResistor = 1
	NTC47k  NTCResistor = 2
	NTC100k NTCResistor = 3
)

// NTCSetResistor programs the thermistor range used by the NTC
// measurement path.
func (c *Core) NTCSetResistor(r NTCResistor) error {
	if r < NTC10k || r > NTC100k {
		return ErrValueOutOfRange
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.writeReg(regADCNtcRSel, byte(r))
}

// MeasureVBAT performs a one-shot battery voltage conversion.
func (c *Core) MeasureVBAT() (physic.ElectricPotential, error) {
	code, err := c.measure(regTaskVbatMeasure, regVbatResultMsb, lsbShiftVbat)
	if err != nil {
		return 0, err
	}
	return vbatFullScale / adcCounts * physic.ElectricPotential(code), nil
}

// MeasureVSYS performs a one-shot system voltage conversion.
func (c *Core) MeasureVSYS() (physic.ElectricPotential, error) {
	code, err := c.measure(regTaskVsysMeasure, regVsysResultMsb, lsbShiftVsys)
	if err != nil {
		return 0, err
	}
	return vsysFullScale / adcCounts * physic.ElectricPotential(code), nil
}

// MeasureNTC performs a one-shot thermistor conversion and converts the
// result to a battery temperature using the thermistor's β coefficient.
func (c *Core) MeasureNTC(beta uint32) (physic.Temperature, error) {
	if beta == 0 {
		return 0, ErrValueOutOfRange
	}
	code, err := c.measure(regTaskNtcMeasure, regNtcResultMsb, lsbShiftNtc)
	if err != nil {
		return 0, err
	}
	return ntcTemperature(code, beta), nil
}

// MeasureDieTemp performs a one-shot die temperature conversion.
func (c *Core) MeasureDieTemp() (physic.Temperature, error) {
	code, err := c.measure(regTaskTempMeasure, regTempResultMsb, lsbShiftTemp)
	if err != nil {
		return 0, err
	}
	return dieTemperature(code), nil
}

// measure triggers a single-shot conversion, waits out the conversion
// time and reassembles the 10-bit result from the MSB register and the
// packed LSB register.
func (c *Core) measure(task, msbReg uint16, lsbShift uint) (uint16, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.writeReg(task, taskStrobe); err != nil {
		return 0, err
	}
	time.Sleep(adcConversionTime)
	msb, err := c.readReg(msbReg)
	if err != nil {
		return 0, err
	}
	lsbs, err := c.readReg(regADCResultLsbs)
	if err != nil {
		return 0, err
	}
	return uint16(msb)<<2 | uint16(lsbs>>lsbShift)&0x3, nil
}

// dieTemperature converts a raw die sensor code. The sensor is linear:
// 394.67°C at code 0, -0.7926°C per count.
func dieTemperature(code uint16) physic.Temperature {
	mc := 394670 - int64(code)*7926/10
	return physic.ZeroCelsius + physic.Temperature(mc)*physic.MilliKelvin
}

// ntcTemperature converts a raw NTC code to a temperature with the β
// equation 1/T = 1/T₀ + ln(R/R₀)/β, T₀ = 25°C. The ADC measures the
// thermistor as a ratio of full scale, so R/R₀ = (1023-code)/code and
// the nominal resistance cancels out.
func ntcTemperature(code uint16, beta uint32) physic.Temperature {
	if code == 0 {
		code = 1
	}
	if code >= adcCounts-1 {
		code = adcCounts - 2
	}
	const t0 = 298.15 // 25°C in kelvin
	ratio := float64(adcCounts-1-int(code)) / float64(code)
	invT := 1.0/t0 + math.Log(ratio)/float64(beta)
	return physic.Temperature(float64(physic.Kelvin) / invT)
}
