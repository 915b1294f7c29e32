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
	"fmt"
	"strconv"
)

// Wire tags, one byte each. Named m* to match the format's own
// mnemonic letters rather than invent new ones.
const (
	mNil        = '0'
	mTrue       = 'T'
	mFalse      = 'F'
	mInteger    = 'i'
	mBignum     = 'l'
	mFloat      = 'f'
	mSymbol     = ':'
	mSymlink    = ';'
	mArray      = '['
	mHash       = '{'
	mHashDef    = '}'
	mOldString  = '"'
	mIVar       = 'I'
	mClass      = 'c'
	mModule     = 'm'
	mObject     = 'o'
	mUserDef    = 'u'
	mObjectRef  = '@'
	mInnerStr   = '"' // inner tag of an IVar wrapper carrying a String
	mInnerRegex = '/' // inner tag of an IVar wrapper carrying a Regex
)

const (
	defaultMaxDepth  = 512
	defaultMaxLength = 1 << 28 // 256 MiB; generous, but not "whatever fits in an int32"
)

// Decoder decodes marshal documents into Value trees. Construct one
// with NewDecoder: the zero Decoder has both bounds at 0, so it rejects
// any nested value and any non-empty length-prefixed run or container.
type Decoder struct {
	maxDepth  int
	maxLength int32
}

// DecoderOption configures a Decoder constructed by NewDecoder.
type DecoderOption func(*Decoder)

// WithMaxDepth bounds how deeply nested a document's Array/Hash/Object
// structure may be before decoding fails, so a pathological document
// fails predictably instead of recursing without limit.
func WithMaxDepth(n int) DecoderOption {
	return func(d *Decoder) { d.maxDepth = n }
}

// WithMaxLength bounds the largest length-prefixed byte run or
// container size the decoder will honor.
func WithMaxLength(n int32) DecoderOption {
	return func(d *Decoder) { d.maxLength = n }
}

// NewDecoder returns a Decoder configured with opts, falling back to
// generous defaults (see WithMaxDepth, WithMaxLength) for anything not
// set explicitly.
func NewDecoder(opts ...DecoderOption) *Decoder {
	d := &Decoder{maxDepth: defaultMaxDepth, maxLength: defaultMaxLength}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Decode parses a single marshal document (the two-byte version prefix
// followed by one top-level Value) from data. It fails on a version
// mismatch, a truncated or malformed body, or an out-of-range
// back-reference.
func Decode(data []byte) (*Value, error) {
	return NewDecoder().Decode(data)
}

// Decode parses a single marshal document from data using d's
// configured bounds.
func (d *Decoder) Decode(data []byte) (*Value, error) {
	rest, err := readVersion(data)
	if err != nil {
		return nil, err
	}
	tabs := &decodeTables{}
	v, _, err := d.decodeValue(rest, tabs, 0)
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (d *Decoder) checkDepth(depth int) error {
	if depth > d.maxDepth {
		return decodeErr(0, 0, "max depth %d exceeded", d.maxDepth)
	}
	return nil
}

func (d *Decoder) checkLength(n int32) error {
	if n < 0 || n > d.maxLength {
		return decodeErr(0, 0, "length %d exceeds configured maximum %d", n, d.maxLength)
	}
	return nil
}

func (d *Decoder) decodeValue(data []byte, tabs *decodeTables, depth int) (*Value, []byte, error) {
	if err := d.checkDepth(depth); err != nil {
		return nil, nil, err
	}
	if len(data) < 1 {
		return nil, nil, decodeErr(0, 0, "truncated value")
	}
	tag := data[0]
	data = data[1:]

	switch tag {
	case mNil:
		return MakeNil(), data, nil
	case mTrue:
		return MakeBool(true), data, nil
	case mFalse:
		return MakeBool(false), data, nil
	case mInteger:
		n, rest, err := readVarint(data)
		if err != nil {
			return nil, nil, err
		}
		return MakeInt(n), rest, nil
	case mBignum:
		return d.decodeBignum(data, tabs)
	case mFloat:
		return d.decodeFloat(data)
	case mSymbol:
		return d.decodeSymbol(data, tabs)
	case mSymlink:
		return d.decodeSymlink(data, tabs)
	case mArray:
		return d.decodeArray(data, tabs, depth)
	case mHash:
		return d.decodeHash(data, tabs, depth, false)
	case mHashDef:
		return d.decodeHash(data, tabs, depth, true)
	case mOldString:
		return d.decodeOldString(data, tabs)
	case mIVar:
		return d.decodeIVar(data, tabs, depth)
	case mClass:
		return d.decodeClass(data, tabs)
	case mModule:
		return d.decodeModule(data, tabs)
	case mObject:
		return d.decodeObject(data, tabs, depth)
	case mUserDef:
		return d.decodeUserDef(data, tabs, depth)
	case mObjectRef:
		return d.decodeObjectRef(data, tabs)
	default:
		return nil, nil, decodeErr(0, tag, "unrecognized tag")
	}
}

func (d *Decoder) decodeBignum(data []byte, tabs *decodeTables) (*Value, []byte, error) {
	if len(data) < 1 {
		return nil, nil, decodeErr(0, mBignum, "truncated sign byte")
	}
	var sign int8
	switch data[0] {
	case '+':
		sign = 1
	case '-':
		sign = -1
	default:
		return nil, nil, decodeErr(0, mBignum, "bad sign byte %q", data[0])
	}
	data = data[1:]
	halfLen, rest, err := readVarint(data)
	if err != nil {
		return nil, nil, err
	}
	length := halfLen * 2
	if err := d.checkLength(length); err != nil {
		return nil, nil, err
	}
	if int32(len(rest)) < length {
		return nil, nil, decodeErr(0, mBignum, "truncated magnitude")
	}
	v := &Value{kind: Bignum, bignumSign: sign, bignumMag: cloneBytes(rest[:length])}
	tabs.addObject(v)
	return v, rest[length:], nil
}

func (d *Decoder) decodeFloat(data []byte) (*Value, []byte, error) {
	text, rest, err := readBytes(data)
	if err != nil {
		return nil, nil, err
	}
	f, err := strconv.ParseFloat(string(text), 64)
	if err != nil {
		return nil, nil, decodeErr(0, mFloat, "invalid float text %q: %s", text, err)
	}
	return MakeFloat(f), rest, nil
}

func (d *Decoder) decodeSymbol(data []byte, tabs *decodeTables) (*Value, []byte, error) {
	name, rest, err := readBytes(data)
	if err != nil {
		return nil, nil, err
	}
	if err := d.checkLength(int32(len(name))); err != nil {
		return nil, nil, err
	}
	v := MakeSymbol(name)
	tabs.addSymbol(v)
	return v, rest, nil
}

func (d *Decoder) decodeSymlink(data []byte, tabs *decodeTables) (*Value, []byte, error) {
	index, rest, err := readVarint(data)
	if err != nil {
		return nil, nil, err
	}
	sym, err := tabs.symbol(index)
	if err != nil {
		return nil, nil, err
	}
	return Clone(sym), rest, nil
}

func (d *Decoder) decodeArray(data []byte, tabs *decodeTables, depth int) (*Value, []byte, error) {
	v := MakeArray()
	tabs.addObject(v)

	n, rest, err := readVarint(data)
	if err != nil {
		return nil, nil, err
	}
	if err := d.checkLength(n); err != nil {
		return nil, nil, err
	}
	v.elems = make([]*Value, 0, n)
	for i := int32(0); i < n; i++ {
		var elem *Value
		elem, rest, err = d.decodeValue(rest, tabs, depth+1)
		if err != nil {
			return nil, nil, err
		}
		v.elems = append(v.elems, elem)
	}
	return v, rest, nil
}

func (d *Decoder) decodeHash(data []byte, tabs *decodeTables, depth int, hasDefault bool) (*Value, []byte, error) {
	v := &Value{kind: Hash}
	tabs.addObject(v)

	n, rest, err := readVarint(data)
	if err != nil {
		return nil, nil, err
	}
	if err := d.checkLength(n); err != nil {
		return nil, nil, err
	}
	v.pairs = make([]Pair, 0, n)
	for i := int32(0); i < n; i++ {
		var key, val *Value
		key, rest, err = d.decodeValue(rest, tabs, depth+1)
		if err != nil {
			return nil, nil, err
		}
		val, rest, err = d.decodeValue(rest, tabs, depth+1)
		if err != nil {
			return nil, nil, err
		}
		v.pairs = append(v.pairs, Pair{Key: key, Val: val})
	}
	if hasDefault {
		v.defaultVal, rest, err = d.decodeValue(rest, tabs, depth+1)
		if err != nil {
			return nil, nil, err
		}
		v.hasDefault = true
	}
	return v, rest, nil
}

func (d *Decoder) decodeOldString(data []byte, tabs *decodeTables) (*Value, []byte, error) {
	raw, rest, err := readBytes(data)
	if err != nil {
		return nil, nil, err
	}
	if err := d.checkLength(int32(len(raw))); err != nil {
		return nil, nil, err
	}
	v := MakeString(raw, ASCII8BIT)
	tabs.addObject(v)
	return v, rest, nil
}

func (d *Decoder) decodeIVar(data []byte, tabs *decodeTables, depth int) (*Value, []byte, error) {
	if len(data) < 1 {
		return nil, nil, decodeErr(0, mIVar, "truncated inner tag")
	}
	inner := data[0]
	data = data[1:]
	if inner == mInnerRegex {
		return nil, nil, fmt.Errorf("%w: %w", decodeErr(0, mIVar, "regex values"), ErrUnsupported)
	}
	if inner != mInnerStr {
		return nil, nil, decodeErr(0, mIVar, "unsupported inner tag %q", inner)
	}

	payload, rest, err := readBytes(data)
	if err != nil {
		return nil, nil, err
	}
	if err := d.checkLength(int32(len(payload))); err != nil {
		return nil, nil, err
	}

	v := MakeString(payload, ASCII8BIT)
	tabs.addObject(v)

	n, rest2, err := readVarint(rest)
	if err != nil {
		return nil, nil, err
	}
	if err := d.checkLength(n); err != nil {
		return nil, nil, err
	}
	rest = rest2
	v.ivars = make([]IVar, 0, n)
	for i := int32(0); i < n; i++ {
		var name, val *Value
		name, rest, err = d.decodeValue(rest, tabs, depth+1)
		if err != nil {
			return nil, nil, err
		}
		val, rest, err = d.decodeValue(rest, tabs, depth+1)
		if err != nil {
			return nil, nil, err
		}
		v.ivars = append(v.ivars, IVar{Name: name, Val: val})
	}
	v.encoding = deriveEncoding(v.ivars)
	return v, rest, nil
}

// deriveEncoding inspects a String's instance-variable pairs and
// derives its encoding tag, per §4.3: an ("E", true/false) pair yields
// UTF-8/US-ASCII, an ("encoding", name) pair looks the name up in the
// encoding table, and the absence of both yields ASCII-8BIT.
func deriveEncoding(ivars []IVar) Encoding {
	for _, iv := range ivars {
		name, ok := iv.Name.SymbolName()
		if !ok {
			continue
		}
		switch string(name) {
		case "E":
			if b, ok := iv.Val.Bool(); ok {
				if b {
					id, _ := EncodingByName("UTF-8")
					return id
				}
				id, _ := EncodingByName("US-ASCII")
				return id
			}
		case "encoding":
			if raw, _, ok := iv.Val.StringBytes(); ok {
				if id, ok := EncodingByName(string(raw)); ok {
					return id
				}
			}
		}
	}
	return ASCII8BIT
}

func (d *Decoder) decodeClass(data []byte, tabs *decodeTables) (*Value, []byte, error) {
	name, rest, err := readBytes(data)
	if err != nil {
		return nil, nil, err
	}
	v := MakeClass(name)
	tabs.addObject(v)
	return v, rest, nil
}

func (d *Decoder) decodeModule(data []byte, tabs *decodeTables) (*Value, []byte, error) {
	name, rest, err := readBytes(data)
	if err != nil {
		return nil, nil, err
	}
	v := MakeModule(name)
	tabs.addObject(v)
	return v, rest, nil
}

func (d *Decoder) decodeObject(data []byte, tabs *decodeTables, depth int) (*Value, []byte, error) {
	sym, rest, err := d.decodeValue(data, tabs, depth+1)
	if err != nil {
		return nil, nil, err
	}
	if sym.Kind() != Symbol {
		return nil, nil, decodeErr(0, mObject, "class name decoded as %s, wanted Symbol", sym.Kind())
	}

	n, rest2, err := readVarint(rest)
	if err != nil {
		return nil, nil, err
	}
	if err := d.checkLength(n); err != nil {
		return nil, nil, err
	}
	rest = rest2

	v := &Value{kind: Object, classSym: sym, className: string(sym.bytes)}
	v.ivars = make([]IVar, 0, n)
	for i := int32(0); i < n; i++ {
		var name, val *Value
		name, rest, err = d.decodeValue(rest, tabs, depth+1)
		if err != nil {
			return nil, nil, err
		}
		val, rest, err = d.decodeValue(rest, tabs, depth+1)
		if err != nil {
			return nil, nil, err
		}
		v.ivars = append(v.ivars, IVar{Name: name, Val: val})
	}
	return v, rest, nil
}

func (d *Decoder) decodeUserDef(data []byte, tabs *decodeTables, depth int) (*Value, []byte, error) {
	sym, rest, err := d.decodeValue(data, tabs, depth+1)
	if err != nil {
		return nil, nil, err
	}
	if sym.Kind() != Symbol {
		return nil, nil, decodeErr(0, mUserDef, "class name decoded as %s, wanted Symbol", sym.Kind())
	}

	size, rest2, err := readVarint(rest)
	if err != nil {
		return nil, nil, err
	}
	if err := d.checkLength(size); err != nil {
		return nil, nil, err
	}
	rest = rest2
	if int32(len(rest)) < size {
		return nil, nil, decodeErr(0, mUserDef, "truncated payload")
	}
	v := &Value{kind: UserDef, classSym: sym, className: string(sym.bytes), bytes: cloneBytes(rest[:size])}
	return v, rest[size:], nil
}

func (d *Decoder) decodeObjectRef(data []byte, tabs *decodeTables) (*Value, []byte, error) {
	index, rest, err := readVarint(data)
	if err != nil {
		return nil, nil, err
	}
	obj, err := tabs.object(index)
	if err != nil {
		return nil, nil, err
	}
	return Clone(obj), rest, nil
}
