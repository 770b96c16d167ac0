// Copyright 2025 The Panels Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package st7789

import (
	"time"

	"periph.io/x/conn/v3/gpio"
)

// errorHandler is a wrapper for error management. After the first failure it
// stops issuing transfers, but a transaction that already pulled chip-select
// low always releases it so the shared bus is never left half-claimed.
type errorHandler struct {
	d   *Dev
	err error
}

func (eh *errorHandler) pinOut(p gpio.PinOut, l gpio.Level) {
	if eh.err != nil {
		return
	}
	eh.err = p.Out(l)
}

func (eh *errorHandler) delay(t time.Duration) {
	if eh.err != nil {
		return
	}
	eh.d.sleep(t)
}

func (eh *errorHandler) tx(w []byte) {
	if eh.err != nil {
		return
	}
	txErr := eh.d.c.Tx(w, nil)
	csErr := eh.d.cs.Out(gpio.High)
	if txErr != nil {
		eh.err = txErr
	} else {
		eh.err = csErr
	}
}

func (eh *errorHandler) sendCommand(cmd byte) {
	eh.pinOut(eh.d.dc, gpio.Low)
	eh.pinOut(eh.d.cs, gpio.Low)
	eh.tx([]byte{cmd})
}

func (eh *errorHandler) sendData(data []byte) {
	eh.pinOut(eh.d.dc, gpio.High)
	eh.pinOut(eh.d.cs, gpio.Low)
	eh.tx(data)
}

var _ controller = &errorHandler{}
