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

import "strconv"

// Encoder serializes a Value tree to the wire format. The zero Encoder
// is ready to use and emits no back-references; set DedupeSymbols to
// opt into a write-side symbol table.
type Encoder struct {
	// DedupeSymbols causes repeated Symbol Values (by byte content) to
	// be emitted once and back-referenced afterward, the way a document
	// built by hand-walking a single object graph would naturally
	// produce. It is off by default because a tree built fresh by this
	// package's constructors has no canonical notion of "the same
	// symbol" beyond byte equality, and paying for the lookup table is
	// wasted work for documents with no repeated symbols.
	DedupeSymbols bool
}

// Encode serializes v into a new document using a zero Encoder.
func Encode(v *Value) ([]byte, error) {
	return new(Encoder).Encode(v)
}

// Encode serializes v into a new document using e's configuration.
func (e *Encoder) Encode(v *Value) ([]byte, error) {
	dst := appendVersion(nil)
	var tab *encodeSymtab
	if e.DedupeSymbols {
		tab = newEncodeSymtab()
	}
	return e.encodeValue(dst, v, tab)
}

func (e *Encoder) encodeValue(dst []byte, v *Value, tab *encodeSymtab) ([]byte, error) {
	switch v.Kind() {
	case Nil:
		return append(dst, mNil), nil
	case Bool:
		b, _ := v.Bool()
		if b {
			return append(dst, mTrue), nil
		}
		return append(dst, mFalse), nil
	case Int:
		n, _ := v.Int()
		dst = append(dst, mInteger)
		return appendVarint(dst, n), nil
	case Bignum:
		return e.encodeBignum(dst, v)
	case Float:
		f, _ := v.Float()
		dst = append(dst, mFloat)
		return appendBytes(dst, []byte(strconv.FormatFloat(f, 'g', 17, 64))), nil
	case Symbol:
		return e.encodeSymbol(dst, v, tab)
	case Array:
		return e.encodeArray(dst, v, tab)
	case Hash:
		return e.encodeHash(dst, v, tab)
	case String:
		return e.encodeString(dst, v, tab)
	case Class:
		dst = append(dst, mClass)
		name, _ := v.ClassName()
		return appendBytes(dst, []byte(name)), nil
	case Module:
		dst = append(dst, mModule)
		name, _ := v.ClassName()
		return appendBytes(dst, []byte(name)), nil
	case Object:
		return e.encodeObject(dst, v, tab)
	case UserDef:
		return e.encodeUserDef(dst, v, tab)
	default:
		return nil, decodeErr(0, 0, "cannot encode a Value of kind %s", v.Kind())
	}
}

func (e *Encoder) encodeBignum(dst []byte, v *Value) ([]byte, error) {
	sign, mag, _ := v.Bignum()
	dst = append(dst, mBignum)
	if sign < 0 {
		dst = append(dst, '-')
	} else {
		dst = append(dst, '+')
	}
	dst = appendVarint(dst, int32(len(mag)/2))
	return append(dst, mag...), nil
}

func (e *Encoder) encodeSymbol(dst []byte, v *Value, tab *encodeSymtab) ([]byte, error) {
	name, _ := v.SymbolName()
	if tab != nil {
		if idx, ok := tab.lookup(name); ok {
			dst = append(dst, mSymlink)
			return appendVarint(dst, idx), nil
		}
		tab.intern(name)
	}
	dst = append(dst, mSymbol)
	return appendBytes(dst, name), nil
}

func (e *Encoder) encodeArray(dst []byte, v *Value, tab *encodeSymtab) ([]byte, error) {
	dst = append(dst, mArray)
	elems := v.Elems()
	dst = appendVarint(dst, int32(len(elems)))
	var err error
	for _, elem := range elems {
		dst, err = e.encodeValue(dst, elem, tab)
		if err != nil {
			return nil, err
		}
	}
	return dst, nil
}

func (e *Encoder) encodeHash(dst []byte, v *Value, tab *encodeSymtab) ([]byte, error) {
	def, hasDefault := v.Default()
	if hasDefault {
		dst = append(dst, mHashDef)
	} else {
		dst = append(dst, mHash)
	}
	pairs := v.Pairs()
	dst = appendVarint(dst, int32(len(pairs)))
	var err error
	for _, p := range pairs {
		dst, err = e.encodeValue(dst, p.Key, tab)
		if err != nil {
			return nil, err
		}
		dst, err = e.encodeValue(dst, p.Val, tab)
		if err != nil {
			return nil, err
		}
	}
	if hasDefault {
		dst, err = e.encodeValue(dst, def, tab)
		if err != nil {
			return nil, err
		}
	}
	return dst, nil
}

// encodeString always wraps the payload in an IVar carrying the
// encoding pair(s), mirroring what every String produced by the host
// language's own marshal facility does: a bare 'tag: "' string with no
// wrapper decodes as ASCII-8BIT, which is never what MakeString(..., E)
// for E != ASCII8BIT means.
func (e *Encoder) encodeString(dst []byte, v *Value, tab *encodeSymtab) ([]byte, error) {
	data, enc, _ := v.StringBytes()
	ivars, _ := v.IVars()

	dst = append(dst, mIVar, mInnerStr)
	dst = appendBytes(dst, data)

	extra := encodingIVars(enc)
	if deriveEncoding(ivars) == enc {
		// The String's own pairs already reproduce enc on decode (as they
		// do for a decoded String), so no synthetic pair is added.
		extra = nil
	}
	dst = appendVarint(dst, int32(len(ivars)+len(extra)))

	var err error
	for _, iv := range extra {
		dst, err = e.encodeValue(dst, iv.Name, tab)
		if err != nil {
			return nil, err
		}
		dst, err = e.encodeValue(dst, iv.Val, tab)
		if err != nil {
			return nil, err
		}
	}
	for _, iv := range ivars {
		dst, err = e.encodeValue(dst, iv.Name, tab)
		if err != nil {
			return nil, err
		}
		dst, err = e.encodeValue(dst, iv.Val, tab)
		if err != nil {
			return nil, err
		}
	}
	return dst, nil
}

// encodingIVars returns the synthetic ("E", bool) or ("encoding", name)
// pair that reproduces enc on decode, or nil for ASCII8BIT (which needs
// no ivar at all).
func encodingIVars(enc Encoding) []IVar {
	switch enc {
	case ASCII8BIT:
		return nil
	case mustEncoding("UTF-8"):
		return []IVar{{Name: MakeSymbol([]byte("E")), Val: MakeBool(true)}}
	case mustEncoding("US-ASCII"):
		return []IVar{{Name: MakeSymbol([]byte("E")), Val: MakeBool(false)}}
	default:
		return []IVar{{Name: MakeSymbol([]byte("encoding")), Val: MakeString([]byte(enc.Name()), ASCII8BIT)}}
	}
}

func mustEncoding(name string) Encoding {
	id, ok := EncodingByName(name)
	if !ok {
		panic("marshal: missing built-in encoding " + name)
	}
	return id
}

func (e *Encoder) encodeObject(dst []byte, v *Value, tab *encodeSymtab) ([]byte, error) {
	className, _ := v.ObjectClassName()
	ivars, _ := v.IVars()

	dst = append(dst, mObject)
	var err error
	dst, err = e.encodeValue(dst, MakeSymbol([]byte(className)), tab)
	if err != nil {
		return nil, err
	}
	dst = appendVarint(dst, int32(len(ivars)))
	for _, iv := range ivars {
		dst, err = e.encodeValue(dst, iv.Name, tab)
		if err != nil {
			return nil, err
		}
		dst, err = e.encodeValue(dst, iv.Val, tab)
		if err != nil {
			return nil, err
		}
	}
	return dst, nil
}

func (e *Encoder) encodeUserDef(dst []byte, v *Value, tab *encodeSymtab) ([]byte, error) {
	className, payload, _ := v.UserDefName()
	dst = append(dst, mUserDef)
	var err error
	dst, err = e.encodeValue(dst, MakeSymbol([]byte(className)), tab)
	if err != nil {
		return nil, err
	}
	dst = appendVarint(dst, int32(len(payload)))
	return append(dst, payload...), nil
}
