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

// Value is a closed, tagged tree node: every documented wire type has a
// matching Kind and this struct carries the payload for whichever Kind
// it holds. Fields are reused across variants rather than branching
// into per-kind struct types, the way a hand-rolled sum type would in
// a language without tagged unions.
//
// A Value forms a tree: every child Value is owned by exactly one
// parent, and no Value is shared after Decode (back-references are
// resolved by deep copy, see Decoder).
type Value struct {
	kind Kind

	boolVal bool
	intVal  int32

	bignumSign int8   // +1 or -1
	bignumMag  []byte // little-endian magnitude, even length

	floatVal float64

	// bytes holds the Symbol name, the Class/Module fully-qualified
	// name, the UserDef raw payload, or the String raw payload,
	// depending on kind. Never more than one of these at a time.
	bytes []byte

	elems []*Value // Array

	pairs      []Pair // Hash
	hasDefault bool
	defaultVal *Value

	ivars    []IVar   // String or Object instance-variable pairs
	encoding Encoding // String encoding tag

	className string // Object / UserDef: derived view of classSym's name
	classSym  *Value // Object / UserDef: owned Symbol Value
}

// Pair is one (key, value) entry of a Hash.
type Pair struct {
	Key, Val *Value
}

// IVar is one (symbol, value) instance-variable entry of a String or
// Object.
type IVar struct {
	Name *Value // always Kind == Symbol
	Val  *Value
}

// Kind reports which variant v holds.
func (v *Value) Kind() Kind {
	if v == nil {
		return Invalid
	}
	return v.kind
}

// ---- constructors ----

// MakeNil returns a new Nil Value.
func MakeNil() *Value { return &Value{kind: Nil} }

// MakeBool returns a new Boolean Value.
func MakeBool(b bool) *Value { return &Value{kind: Bool, boolVal: b} }

// MakeInt returns a new Integer Value.
func MakeInt(n int32) *Value { return &Value{kind: Int, intVal: n} }

// MakeBignum returns a new Bignum Value. sign must be +1 or -1; mag is
// copied and must have even length.
func MakeBignum(sign int8, mag []byte) *Value {
	return &Value{kind: Bignum, bignumSign: sign, bignumMag: cloneBytes(mag)}
}

// MakeFloat returns a new Float Value.
func MakeFloat(f float64) *Value { return &Value{kind: Float, floatVal: f} }

// MakeSymbol returns a new Symbol Value. name is copied.
func MakeSymbol(name []byte) *Value {
	return &Value{kind: Symbol, bytes: cloneBytes(name)}
}

// MakeArray returns a new, empty Array Value.
func MakeArray() *Value { return &Value{kind: Array} }

// MakeHash returns a new, empty Hash Value. def may be nil for "no
// default"; otherwise it is owned by the returned Hash.
func MakeHash(def *Value) *Value {
	return &Value{kind: Hash, hasDefault: def != nil, defaultVal: def}
}

// MakeString returns a new String Value with the given raw payload
// (copied) and encoding, and no instance variables yet.
func MakeString(data []byte, enc Encoding) *Value {
	return &Value{kind: String, bytes: cloneBytes(data), encoding: enc}
}

// MakeClass returns a new Class Value for the given fully-qualified
// name.
func MakeClass(name []byte) *Value {
	return &Value{kind: Class, bytes: cloneBytes(name)}
}

// MakeModule returns a new Module Value for the given fully-qualified
// name.
func MakeModule(name []byte) *Value {
	return &Value{kind: Module, bytes: cloneBytes(name)}
}

// MakeObject returns a new Object Value. sym must be a Symbol Value and
// becomes owned by the returned Object; its name buffer backs the
// Object's ClassName.
func MakeObject(sym *Value) (*Value, error) {
	if sym.Kind() != Symbol {
		return nil, kindErr("MakeObject", Symbol, sym.Kind())
	}
	return &Value{kind: Object, classSym: sym, className: string(sym.bytes)}, nil
}

// MakeUserDef returns a new UserDef Value with the given raw payload
// (copied). sym must be a Symbol Value and becomes owned by the
// returned UserDef.
func MakeUserDef(sym *Value, data []byte) (*Value, error) {
	if sym.Kind() != Symbol {
		return nil, kindErr("MakeUserDef", Symbol, sym.Kind())
	}
	return &Value{kind: UserDef, classSym: sym, className: string(sym.bytes), bytes: cloneBytes(data)}, nil
}

func cloneBytes(b []byte) []byte {
	if b == nil {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}

// ---- scalar accessors ----

// Bool returns v's boolean payload. ok is false if v is not a Boolean.
func (v *Value) Bool() (b, ok bool) {
	if v.Kind() != Bool {
		return false, false
	}
	return v.boolVal, true
}

// Int returns v's integer payload. ok is false if v is not an Integer.
func (v *Value) Int() (n int32, ok bool) {
	if v.Kind() != Int {
		return 0, false
	}
	return v.intVal, true
}

// Bignum returns v's sign and magnitude. ok is false if v is not a
// Bignum. The returned slice aliases v's storage and must not be
// mutated.
func (v *Value) Bignum() (sign int8, mag []byte, ok bool) {
	if v.Kind() != Bignum {
		return 0, nil, false
	}
	return v.bignumSign, v.bignumMag, true
}

// Float returns v's float payload. ok is false if v is not a Float.
func (v *Value) Float() (f float64, ok bool) {
	if v.Kind() != Float {
		return 0, false
	}
	return v.floatVal, true
}

// SymbolName returns v's symbol name bytes. ok is false if v is not a
// Symbol. The returned slice aliases v's storage and must not be
// mutated.
func (v *Value) SymbolName() (name []byte, ok bool) {
	if v.Kind() != Symbol {
		return nil, false
	}
	return v.bytes, true
}

// ClassName returns v's fully-qualified name. ok is false unless v is a
// Class or a Module.
func (v *Value) ClassName() (name string, ok bool) {
	switch v.Kind() {
	case Class, Module:
		return string(v.bytes), true
	default:
		return "", false
	}
}

// StringBytes returns v's raw payload and encoding tag. ok is false if
// v is not a String. The returned slice aliases v's storage and must
// not be mutated.
func (v *Value) StringBytes() (data []byte, enc Encoding, ok bool) {
	if v.Kind() != String {
		return nil, 0, false
	}
	return v.bytes, v.encoding, true
}

// IVars returns v's instance-variable pairs. ok is false unless v is a
// String or an Object. The returned slice aliases v's storage.
func (v *Value) IVars() (ivars []IVar, ok bool) {
	switch v.Kind() {
	case String, Object:
		return v.ivars, true
	default:
		return nil, false
	}
}

// UserDefName returns the class name and raw payload of a UserDef
// Value. ok is false if v is not a UserDef.
func (v *Value) UserDefName() (className string, data []byte, ok bool) {
	if v.Kind() != UserDef {
		return "", nil, false
	}
	return v.className, v.bytes, true
}

// ObjectClassName returns the class name of an Object Value. ok is
// false if v is not an Object.
func (v *Value) ObjectClassName() (className string, ok bool) {
	if v.Kind() != Object {
		return "", false
	}
	return v.className, true
}

// ---- Array ----

// Len returns the number of elements in an Array, or the number of
// pairs in a Hash. It returns 0 for any other Kind.
func (v *Value) Len() int {
	switch v.Kind() {
	case Array:
		return len(v.elems)
	case Hash:
		return len(v.pairs)
	default:
		return 0
	}
}

// Get returns the element at index i of an Array, or (nil, false) if i
// is out of range. It returns (nil, false) if v is not an Array.
func (v *Value) Get(i int) (*Value, bool) {
	if v.Kind() != Array {
		return nil, false
	}
	if i < 0 || i >= len(v.elems) {
		return nil, false
	}
	return v.elems[i], true
}

// Add appends value to an Array. It returns a *KindError if v is not an
// Array.
func (v *Value) Add(value *Value) error {
	if v.Kind() != Array {
		return kindErr("Add", Array, v.Kind())
	}
	v.elems = append(v.elems, value)
	return nil
}

// Del removes and discards the element at index i of an Array, shifting
// the tail left. It returns a *KindError if v is not an Array, or an
// error if i is out of range.
func (v *Value) Del(i int) error {
	if v.Kind() != Array {
		return kindErr("Del", Array, v.Kind())
	}
	if i < 0 || i >= len(v.elems) {
		return indexErr("Del", i, len(v.elems))
	}
	copy(v.elems[i:], v.elems[i+1:])
	v.elems[len(v.elems)-1] = nil
	v.elems = v.elems[:len(v.elems)-1]
	return nil
}

// Elems returns the elements of an Array. The returned slice aliases
// v's storage. It returns nil for any other Kind.
func (v *Value) Elems() []*Value {
	if v.Kind() != Array {
		return nil
	}
	return v.elems
}

// ---- Hash ----

// Default returns the Hash's default Value, if any.
func (v *Value) Default() (def *Value, ok bool) {
	if v.Kind() != Hash {
		return nil, false
	}
	return v.defaultVal, v.hasDefault
}

// Pairs returns the Hash's (key, value) pairs in insertion order. The
// returned slice aliases v's storage.
func (v *Value) Pairs() []Pair {
	if v.Kind() != Hash {
		return nil
	}
	return v.pairs
}

// HashGet returns the value whose key is structurally equal to key, or
// the Hash's default if no such key exists (which may itself be absent).
func (v *Value) HashGet(key *Value) (val *Value, found bool) {
	if v.Kind() != Hash {
		return nil, false
	}
	if i := v.hashIndex(key); i >= 0 {
		return v.pairs[i].Val, true
	}
	return v.defaultVal, v.hasDefault
}

// HashSet inserts (key, value) if no structurally-equal key already
// exists; otherwise it replaces both the stored key and value, so later
// lookups observe identical ownership of the new key.
func (v *Value) HashSet(key, value *Value) error {
	if v.Kind() != Hash {
		return kindErr("HashSet", Hash, v.Kind())
	}
	if i := v.hashIndex(key); i >= 0 {
		v.pairs[i] = Pair{Key: key, Val: value}
		return nil
	}
	v.pairs = append(v.pairs, Pair{Key: key, Val: value})
	return nil
}

func (v *Value) hashIndex(key *Value) int {
	for i := range v.pairs {
		if Equal(v.pairs[i].Key, key) {
			return i
		}
	}
	return -1
}

// ---- Object / String ivars ----

// ObjectGet performs a linear scan over v's (symbol, value) pairs and
// returns the value whose symbol name is byte-equal to name. It returns
// (nil, false) if v is not an Object/String or no such pair exists.
func (v *Value) ObjectGet(name []byte) (*Value, bool) {
	switch v.Kind() {
	case Object, String:
	default:
		return nil, false
	}
	for _, iv := range v.ivars {
		if symName, ok := iv.Name.SymbolName(); ok && bytesEqual(symName, name) {
			return iv.Val, true
		}
	}
	return nil, false
}

// AddIVar appends a (symbol, value) instance-variable pair to a String
// or an Object. name must be a Symbol Value.
func (v *Value) AddIVar(name, value *Value) error {
	switch v.Kind() {
	case Object, String:
	default:
		return kindErr("AddIVar", Object, v.Kind())
	}
	if name.Kind() != Symbol {
		return kindErr("AddIVar", Symbol, name.Kind())
	}
	v.ivars = append(v.ivars, IVar{Name: name, Val: value})
	return nil
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Destroy releases v's owned payload and recursively destroys its
// owned children. The Go runtime reclaims memory on its own; Destroy
// exists so a caller can drop a large subtree's references early
// (e.g. inside a long-lived batch decoder) instead of waiting for the
// tree to fall out of scope. Calling it is never required for
// correctness.
func Destroy(v *Value) {
	if v == nil {
		return
	}
	switch v.kind {
	case Array:
		for _, e := range v.elems {
			Destroy(e)
		}
	case Hash:
		for _, p := range v.pairs {
			Destroy(p.Key)
			Destroy(p.Val)
		}
		Destroy(v.defaultVal)
	case String:
		for _, iv := range v.ivars {
			Destroy(iv.Name)
			Destroy(iv.Val)
		}
	case Object:
		for _, iv := range v.ivars {
			Destroy(iv.Name)
			Destroy(iv.Val)
		}
		Destroy(v.classSym)
	case UserDef:
		Destroy(v.classSym)
	}
	v.elems = nil
	v.pairs = nil
	v.defaultVal = nil
	v.ivars = nil
	v.bytes = nil
	v.bignumMag = nil
	v.classSym = nil
}
