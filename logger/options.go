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

package logger

// Options configures a Logger's standard-output hooks, mirroring the
// --log-level, --log-color and --log-verbose CLI flags of spec section 6.
type Options struct {
	// Level sets the minimum level a message must carry to be written.
	Level Level

	// DisableStandard, when set, registers no stdout/stderr hooks at all;
	// a device running under a DDS control session that redirects output
	// elsewhere uses this to silence the default handlers.
	DisableStandard bool

	// DisableColor is stored and cloned; the hooks do not read it, and their
	// output carries no color codes whether or not it is set.
	DisableColor bool

	// DisableTimestamp removes a "time" key from an entry's fields; the
	// timestamp the formatter prints is not affected.
	DisableTimestamp bool

	// EnableTrace keeps "caller", "file" and "line" keys in an entry's
	// fields; when it is false the hooks delete them. It does not add these
	// fields itself.
	EnableTrace bool

	init   FuncCustomConfig
	change FuncCustomConfig
}

// FuncCustomConfig is called after a Logger is built or re-leveled, letting
// a caller attach extra fields or side effects without subclassing Logger.
type FuncCustomConfig func(log Logger)

// RegisterFuncUpdateLogger registers fct to run once New/NewFrom has
// finished building the Logger.
func (o *Options) RegisterFuncUpdateLogger(fct FuncCustomConfig) {
	o.init = fct
}

// RegisterFuncUpdateLevel registers fct to run every time SetLevel changes
// the Logger's minimum level.
func (o *Options) RegisterFuncUpdateLevel(fct FuncCustomConfig) {
	o.change = fct
}

func (o Options) Clone() Options {
	return Options{
		Level:            o.Level,
		DisableStandard:  o.DisableStandard,
		DisableColor:     o.DisableColor,
		DisableTimestamp: o.DisableTimestamp,
		EnableTrace:      o.EnableTrace,
		init:             o.init,
		change:           o.change,
	}
}
