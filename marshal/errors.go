// Copyright (C) 2022 Sneller, Inc.
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

package marshal

import (
	"errors"
	"fmt"
)

// ErrUnsupported is returned (wrapped with context) when a document
// requests a feature this codec never implements, such as a regular
// expression value.
var ErrUnsupported = errors.New("marshal: unsupported")

// DecodeError reports that a byte slice could not be interpreted as a
// valid marshal document: a bad version prefix, an unrecognized tag,
// an out-of-range back-reference, or a truncated read.
type DecodeError struct {
	// Offset is always 0: the decoder does not record the byte
	// position at which a failure occurs.
	Offset int
	Tag    byte
	Msg    string
}

func (e *DecodeError) Error() string {
	if e.Tag == 0 {
		return fmt.Sprintf("marshal: decode at offset %d: %s", e.Offset, e.Msg)
	}
	return fmt.Sprintf("marshal: decode at offset %d (tag %q): %s", e.Offset, string(e.Tag), e.Msg)
}

func decodeErr(offset int, tag byte, format string, args ...any) error {
	return &DecodeError{Offset: offset, Tag: tag, Msg: fmt.Sprintf(format, args...)}
}

// KindError reports that an operation was applied to a Value of the
// wrong Kind, e.g. calling Add on a Hash.
type KindError struct {
	Op           string
	Wanted, Found Kind
}

func (e *KindError) Error() string {
	return fmt.Sprintf("marshal.%s: found kind %s, wanted kind %s", e.Op, e.Found, e.Wanted)
}

func kindErr(op string, wanted, found Kind) error {
	return &KindError{Op: op, Wanted: wanted, Found: found}
}

// IndexError reports that an Array operation was given an index outside
// 0..Len()-1, the other half of the "invalid argument" class alongside
// KindError.
type IndexError struct {
	Op    string
	Index int
	Len   int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("marshal.%s: index %d out of range (length %d)", e.Op, e.Index, e.Len)
}

func indexErr(op string, index, length int) error {
	return &IndexError{Op: op, Index: index, Len: length}
}
