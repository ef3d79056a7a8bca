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

package properties

import (
	"fmt"

	liberr "github.com/nabbar/fairgo/errors"
)

const (
	ErrEmptyKey liberr.CodeError = iota + liberr.MinPkgProperty
	ErrUnsupportedType
	ErrTypeMismatch
	ErrNotFound
)

func init() {
	if liberr.ExistInMapMessage(ErrEmptyKey) {
		panic(fmt.Errorf("error code collision with package properties"))
	}
	liberr.RegisterIdFctMessage(ErrEmptyKey, getMessage)
	liberr.RegisterIdFctMessage(ErrUnsupportedType, getMessage)
	liberr.RegisterIdFctMessage(ErrTypeMismatch, getMessage)
	liberr.RegisterIdFctMessage(ErrNotFound, getMessage)
}

func getMessage(code liberr.CodeError) (message string) {
	switch code {
	case ErrEmptyKey:
		return "property key must not be empty"
	case ErrUnsupportedType:
		return "property value type is not a scalar, string, or ordered sequence of one"
	case ErrTypeMismatch:
		return "property value type does not match the previously stored type for this key"
	case ErrNotFound:
		return "property key not found"
	}

	return liberr.NullMessage
}
