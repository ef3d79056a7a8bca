/*
 * MIT License
 *
 * Copyright (c) 2026 FairGo Authors
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

package device

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/nabbar/fairgo/state"
)

// ControlMode selects how a Device's lifecycle transitions are driven
// once Run starts the state machine.
type ControlMode uint8

const (
	// ControlStatic drives the full InitDevice..Run sequence on its own,
	// then winds back down through ResetTask, ResetDevice and End once
	// Running returns to Ready.
	ControlStatic ControlMode = iota
	// ControlInteractive reads single-character commands from stdin.
	ControlInteractive
	// ControlDDS defers to an external DDS control channel.
	ControlDDS
)

func (m ControlMode) String() string {
	switch m {
	case ControlInteractive:
		return "interactive"
	case ControlDDS:
		return "dds"
	default:
		return "static"
	}
}

// ParseControlMode parses the --control flag's values.
func ParseControlMode(s string) (ControlMode, error) {
	switch strings.ToLower(s) {
	case "", "static":
		return ControlStatic, nil
	case "interactive":
		return ControlInteractive, nil
	case "dds":
		return ControlDDS, nil
	default:
		return ControlStatic, ErrInvalidControlMode.Error(fmt.Errorf("got %q", s))
	}
}

func (d *Device) runControl() {
	switch d.opt.Control {
	case ControlInteractive:
		d.runInteractiveControl()
	case ControlDDS:
		d.runDDSControl()
	default:
		d.runStaticControl()
	}
}

// staticSequence is the static control driver's startup path: every
// transition the Idle..Running path of spec section 4.1 requires, in
// order. Run leaves the machine in Running; the worker thread spawned for
// it requests Stop on its own once it has nothing left to drive.
var staticSequence = []state.Transition{
	state.InitDevice, state.CompleteInit, state.Bind, state.Connect, state.InitTask, state.Run,
}

// shutdownSequence is driven once Running has returned to Ready.
var shutdownSequence = []state.Transition{
	state.ResetTask, state.ResetDevice, state.End,
}

// stableStateAfter is the state WaitForState should block on right after
// requesting tr: the resting point of its auto-chain, if any.
func stableStateAfter(tr state.Transition) state.State {
	switch tr {
	case state.InitDevice:
		return state.InitializingDevice
	case state.CompleteInit:
		return state.Initialized
	case state.Bind:
		return state.Bound
	case state.Connect:
		return state.DeviceReady
	case state.InitTask:
		return state.Ready
	case state.Run:
		return state.Running
	case state.ResetTask:
		return state.DeviceReady
	case state.ResetDevice:
		return state.Idle
	case state.End:
		return state.Exiting
	default:
		return state.Idle
	}
}

func (d *Device) runStaticControl() {
	for _, tr := range staticSequence {
		if err := d.driveTransition(tr); err != nil {
			return
		}
	}

	// Running is entered; wait for the worker thread to drive Stop on
	// its own before winding the device back down.
	if err := d.machine.WaitForState(state.Ready, -1); err != nil {
		return
	}

	for _, tr := range shutdownSequence {
		if err := d.driveTransition(tr); err != nil {
			return
		}
	}
}

func (d *Device) driveTransition(tr state.Transition) error {
	if err := d.machine.ChangeStateOrThrow(tr); err != nil {
		d.log.WithFields(map[string]interface{}{"transition": tr.String()}).Error(err)
		return err
	}
	return d.machine.WaitForState(stableStateAfter(tr), -1)
}

var interactiveHelp = "i:InitDevice k:CompleteInit b:Bind x:Connect j:InitTask r:Run s:Stop t:ResetTask d:ResetDevice q:End h:help"

var interactiveMap = map[rune]state.Transition{
	'i': state.InitDevice,
	'k': state.CompleteInit,
	'b': state.Bind,
	'x': state.Connect,
	'j': state.InitTask,
	'r': state.Run,
	's': state.Stop,
	't': state.ResetTask,
	'd': state.ResetDevice,
	'q': state.End,
}

// runInteractiveControl reads one character at a time from stdin and maps
// it to a transition request per spec section 6's table; 'h' prints the
// command list and 'q' ends the session.
func (d *Device) runInteractiveControl() {
	reader := bufio.NewReader(os.Stdin)
	for {
		r, _, err := reader.ReadRune()
		if err != nil {
			return
		}

		switch r {
		case '\n', '\r', ' ':
			continue
		case 'h':
			fmt.Println(interactiveHelp)
			continue
		}

		tr, ok := interactiveMap[r]
		if !ok {
			fmt.Printf("unknown command %q, press h for help\n", r)
			continue
		}

		if err := d.machine.ChangeStateOrThrow(tr); err != nil {
			d.log.Error(err)
		}
		if tr == state.End {
			return
		}
	}
}

// runDDSControl surfaces DDS_SESSION_ID and waits for Exiting. No DDS
// client library is part of this module's dependency set, so the actual
// transition requests under this mode must come from outside, via
// ChangeState/ChangeStateOrThrow on the Device returned by New.
func (d *Device) runDDSControl() {
	sid, _, _ := d.props.Get("DDS_SESSION_ID")
	d.log.WithFields(map[string]interface{}{"ddsSessionId": sid}).
		Warn("dds control: no DDS client in this build; drive transitions externally")
	_ = d.machine.WaitForState(state.Exiting, -1)
}
