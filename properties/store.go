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

// Package properties implements the hierarchical string-keyed property
// store of spec section 4.6: Set/Get are type-checked at runtime against
// scalars, strings, and ordered sequences of the above, and a successful
// Set fires a typed-change event and a stringified-change event, in that
// order, synchronously on the caller's goroutine. Storage is built on the
// teacher's context.Config[string] generic atomic map; dispatch is built
// on the sibling event.Manager.
package properties

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	libctx "github.com/nabbar/fairgo/context"
	libevt "github.com/nabbar/fairgo/event"
)

// entry is what Store keeps under each key: the value as last Set, and
// the concrete type name it was first stored with, so a later Set with a
// different type is rejected rather than silently changing a property's
// declared type out from under its subscribers.
type entry struct {
	value    interface{}
	typeName string
}

// Store is a property store. The zero value is not usable; use New.
type Store struct {
	cfg    libctx.Config[string]
	events *libevt.Manager
}

// New returns an empty Store.
func New() *Store {
	return &Store{
		cfg:    libctx.New[string](context.Background()),
		events: libevt.New(),
	}
}

// Set validates value's type, rejects a type change against whatever was
// previously stored under key, stores it, and publishes the typed and
// stringified change events in that order.
func (s *Store) Set(key string, value interface{}) error {
	if key == "" {
		return ErrEmptyKey.Error(nil)
	}

	typeName, err := validateValue(value)
	if err != nil {
		return err
	}

	if prev, ok := s.cfg.Load(key); ok {
		if pe, ok := prev.(entry); ok && pe.typeName != typeName {
			return ErrTypeMismatch.Error(fmt.Errorf("key %q: stored as %s, got %s", key, pe.typeName, typeName))
		}
	}

	s.cfg.Store(key, entry{value: value, typeName: typeName})

	s.events.Publish(libevt.Event{Key: key, Kind: libevt.KindTyped, Type: typeName, Value: value})
	s.events.Publish(libevt.Event{Key: key, Kind: libevt.KindStringified, Type: typeName, Text: stringify(value)})

	return nil
}

// Get returns key's value and its declared type name.
func (s *Store) Get(key string) (value interface{}, typeName string, err error) {
	v, ok := s.cfg.Load(key)
	if !ok {
		return nil, "", ErrNotFound.Error(nil)
	}
	e := v.(entry)
	return e.value, e.typeName, nil
}

// Delete removes key, if present. Deleting an absent key is a no-op.
func (s *Store) Delete(key string) {
	s.cfg.Delete(key)
}

// Walk calls fct for every stored key-value pair, in no particular order.
func (s *Store) Walk(fct func(key string, value interface{}) bool) {
	s.cfg.Walk(func(key string, val interface{}) bool {
		e, ok := val.(entry)
		if !ok {
			return true
		}
		return fct(key, e.value)
	})
}

// Subscribe registers h under name for every Set's change events,
// replacing any handler already registered under that name.
func (s *Store) Subscribe(name string, h libevt.Handler) error {
	return s.events.Subscribe(name, h)
}

// Unsubscribe removes name's handler, if any.
func (s *Store) Unsubscribe(name string) {
	s.events.Unsubscribe(name)
}

func supportedKind(k reflect.Kind) bool {
	switch k {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64,
		reflect.String:
		return true
	}
	return false
}

// validateValue returns value's concrete type name if it is a scalar, a
// string, or a slice of one of the above; ErrUnsupportedType otherwise.
func validateValue(value interface{}) (string, error) {
	if value == nil {
		return "", ErrUnsupportedType.Error(fmt.Errorf("nil value"))
	}

	rv := reflect.ValueOf(value)
	rt := rv.Type()

	if rt.Kind() == reflect.Slice {
		if !supportedKind(rt.Elem().Kind()) {
			return "", ErrUnsupportedType.Error(fmt.Errorf("unsupported element type %s", rt.Elem()))
		}
		return rt.String(), nil
	}

	if !supportedKind(rt.Kind()) {
		return "", ErrUnsupportedType.Error(fmt.Errorf("unsupported type %s", rt))
	}
	return rt.String(), nil
}

// stringify renders value the way the stringified-change event carries
// it: scalars and strings via fmt.Sprint, sequences as their elements
// joined by commas.
func stringify(value interface{}) string {
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Slice {
		return fmt.Sprint(value)
	}

	parts := make([]string, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		parts[i] = fmt.Sprint(rv.Index(i).Interface())
	}
	return strings.Join(parts, ",")
}
