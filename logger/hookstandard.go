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

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// StdWriter selects which standard stream a HookStandard writes to.
type StdWriter uint8

const (
	StdOut StdWriter = iota
	StdErr
)

// HookStandard is a logrus.Hook that is also an io.Writer; both write to
// the stream chosen when the hook is built.
type HookStandard interface {
	logrus.Hook
	io.Writer
	RegisterHook(log *logrus.Logger)
}

type hookStd struct {
	w io.Writer
	l []logrus.Level
	d bool
	t bool
}

// NewHookStandard builds a hook writing every entry at or above opt.Level
// to stdout or stderr. s selects which stream the hook filters for: StdErr
// carries Warn and above, StdOut carries everything else, matching the
// split a device's interactive control session expects on its terminal.
func NewHookStandard(opt Options, s StdWriter) HookStandard {
	var w io.Writer
	lvls := make([]logrus.Level, 0, len(logrus.AllLevels))

	switch s {
	case StdErr:
		w = os.Stderr
		for _, l := range logrus.AllLevels {
			if l <= opt.Level.Logrus() && l <= logrus.WarnLevel {
				lvls = append(lvls, l)
			}
		}
	default:
		w = os.Stdout
		for _, l := range logrus.AllLevels {
			if l <= opt.Level.Logrus() && l > logrus.WarnLevel {
				lvls = append(lvls, l)
			}
		}
	}

	return &hookStd{
		w: w,
		l: lvls,
		d: opt.DisableTimestamp,
		t: opt.EnableTrace,
	}
}

func (h *hookStd) RegisterHook(log *logrus.Logger) {
	log.AddHook(h)
}

func (h *hookStd) Levels() []logrus.Level {
	return h.l
}

func (h *hookStd) Fire(entry *logrus.Entry) error {
	if h.d {
		delete(entry.Data, logrus.FieldKeyTime)
	}
	if !h.t {
		delete(entry.Data, "caller")
		delete(entry.Data, "file")
		delete(entry.Data, "line")
	}

	line, err := entry.Bytes()
	if err != nil {
		return err
	}

	_, err = h.Write(line)
	return err
}

func (h *hookStd) Write(p []byte) (int, error) {
	if h.w == nil {
		return 0, ErrWriterClosed.Error(nil)
	}
	return h.w.Write(p)
}
