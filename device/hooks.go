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

// Hooks holds the user callbacks a Device invokes on each lifecycle
// transition, per spec section 4.1's hook table. Every hook is optional;
// a nil hook is a no-op. PreRun, Run, ConditionalRun and PostRun run on
// the worker thread spawned for Running; every other hook runs on the
// machine thread.
type Hooks struct {
	Init      func(d *Device) error
	InitTask  func(d *Device) error
	PreRun    func(d *Device) error
	PostRun   func(d *Device) error

	// Run is the long-running worker contract: it should loop until
	// d.NewStatePending() returns true. Mutually exclusive with
	// ConditionalRun in practice, but both may be set; Run takes priority.
	Run func(d *Device) error

	// ConditionalRun is called repeatedly by the worker thread until it
	// returns false or d.NewStatePending() is true; when it returns false
	// the worker stops driving it as soon as Run and every OnData handler
	// have also stopped.
	ConditionalRun func(d *Device) (bool, error)

	ResetTask func(d *Device) error
	Reset     func(d *Device) error
}
