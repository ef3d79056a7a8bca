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

// Package logger wraps sirupsen/logrus with the fixed Level enum, Options
// struct, and stdout/stderr hook pair that every fairgo component logs
// device lifecycle and transport events through.
package logger

import (
	"context"
	"io"
	"sync"

	"github.com/sirupsen/logrus"
)

// Logger is the logging surface every package in this module depends on
// instead of importing logrus directly.
type Logger interface {
	SetLevel(lvl Level)
	GetLevel() Level

	SetFields(fields map[string]interface{})
	AddField(key string, value interface{})

	Clone() Logger

	Debug(args ...interface{})
	Info(args ...interface{})
	Warn(args ...interface{})
	Error(args ...interface{})
	Fatal(args ...interface{})

	WithFields(fields map[string]interface{}) *logrus.Entry

	Entry() *logrus.Entry
}

type logger struct {
	mu     sync.Mutex
	ctx    context.Context
	log    *logrus.Logger
	opt    Options
	fields logrus.Fields
}

// New builds a Logger with the default Options (InfoLevel, stdout/stderr
// hooks). Output is plain text; no color codes are written.
func New(ctx context.Context) Logger {
	l, err := NewFrom(ctx, Options{Level: InfoLevel})
	if err != nil {
		panic(err)
	}
	return l
}

// NewFrom builds a Logger from opt, registering stdout/stderr hooks unless
// opt.DisableStandard is set.
func NewFrom(ctx context.Context, opt Options) (Logger, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	l := &logger{
		ctx:    ctx,
		log:    logrus.New(),
		opt:    opt.Clone(),
		fields: logrus.Fields{},
	}
	l.log.SetOutput(io.Discard) // hooks own all writing; base output goes nowhere.
	l.log.SetLevel(opt.Level.Logrus())

	if !opt.DisableStandard {
		NewHookStandard(opt, StdOut).RegisterHook(l.log)
		NewHookStandard(opt, StdErr).RegisterHook(l.log)
	}

	if opt.init != nil {
		opt.init(l)
	}

	return l, nil
}

func (o *logger) SetLevel(lvl Level) {
	o.mu.Lock()
	o.opt.Level = lvl
	o.log.SetLevel(lvl.Logrus())
	fct := o.opt.change
	o.mu.Unlock()

	if fct != nil {
		fct(o)
	}
}

func (o *logger) GetLevel() Level {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.opt.Level
}

func (o *logger) SetFields(fields map[string]interface{}) {
	o.mu.Lock()
	defer o.mu.Unlock()
	f := make(logrus.Fields, len(fields))
	for k, v := range fields {
		f[k] = v
	}
	o.fields = f
}

func (o *logger) AddField(key string, value interface{}) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.fields[key] = value
}

// Clone returns an independent Logger sharing no mutable state with o;
// changing the clone's level or fields does not affect the original.
func (o *logger) Clone() Logger {
	o.mu.Lock()
	defer o.mu.Unlock()

	n := &logger{
		ctx:    o.ctx,
		log:    logrus.New(),
		opt:    o.opt.Clone(),
		fields: make(logrus.Fields, len(o.fields)),
	}
	for k, v := range o.fields {
		n.fields[k] = v
	}
	n.log.SetOutput(io.Discard)
	n.log.SetLevel(o.log.GetLevel())
	n.log.Hooks = make(logrus.LevelHooks, len(o.log.Hooks))
	for lvl, hooks := range o.log.Hooks {
		n.log.Hooks[lvl] = append([]logrus.Hook(nil), hooks...)
	}
	return n
}

func (o *logger) Entry() *logrus.Entry {
	o.mu.Lock()
	defer o.mu.Unlock()
	return logrus.NewEntry(o.log).WithFields(o.fields)
}

func (o *logger) WithFields(fields map[string]interface{}) *logrus.Entry {
	return o.Entry().WithFields(fields)
}

func (o *logger) Debug(args ...interface{}) { o.Entry().Debug(args...) }
func (o *logger) Info(args ...interface{})  { o.Entry().Info(args...) }
func (o *logger) Warn(args ...interface{})  { o.Entry().Warn(args...) }
func (o *logger) Error(args ...interface{}) { o.Entry().Error(args...) }
func (o *logger) Fatal(args ...interface{}) { o.Entry().Fatal(args...) }
