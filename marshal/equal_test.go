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

import "testing"

func TestEqualScalars(t *testing.T) {
	if !Equal(MakeNil(), MakeNil()) {
		t.Error("two Nils should be equal")
	}
	if !Equal(MakeInt(5), MakeInt(5)) {
		t.Error("equal Integers should be equal")
	}
	if Equal(MakeInt(5), MakeInt(6)) {
		t.Error("unequal Integers should not be equal")
	}
	if Equal(MakeInt(5), MakeFloat(5)) {
		t.Error("values of different Kind should never be equal")
	}
}

func TestEqualNilValue(t *testing.T) {
	var a, b *Value
	if !Equal(a, b) {
		t.Error("two nil *Value should be equal")
	}
	if Equal(a, MakeNil()) {
		t.Error("a nil *Value should never equal a non-nil one")
	}
}

func TestEqualArrayOrderSensitive(t *testing.T) {
	a := MakeArray()
	a.Add(MakeInt(1))
	a.Add(MakeInt(2))
	b := MakeArray()
	b.Add(MakeInt(2))
	b.Add(MakeInt(1))
	if Equal(a, b) {
		t.Error("arrays with the same elements in different order should not be equal")
	}
}

func TestEqualHashOrderInsensitive(t *testing.T) {
	a := MakeHash(nil)
	a.HashSet(MakeSymbol([]byte("x")), MakeInt(1))
	a.HashSet(MakeSymbol([]byte("y")), MakeInt(2))

	b := MakeHash(nil)
	b.HashSet(MakeSymbol([]byte("y")), MakeInt(2))
	b.HashSet(MakeSymbol([]byte("x")), MakeInt(1))

	if !Equal(a, b) {
		t.Error("hashes with the same pairs in different insertion order should be equal")
	}
}

func TestEqualHashDefaultMatters(t *testing.T) {
	a := MakeHash(MakeInt(0))
	b := MakeHash(MakeInt(1))
	if Equal(a, b) {
		t.Error("hashes with different defaults should not be equal")
	}
}

func TestEqualObjectIVarsOrderInsensitive(t *testing.T) {
	sym := MakeSymbol([]byte("Point"))
	a, _ := MakeObject(sym)
	a.AddIVar(MakeSymbol([]byte("x")), MakeInt(1))
	a.AddIVar(MakeSymbol([]byte("y")), MakeInt(2))

	b, _ := MakeObject(MakeSymbol([]byte("Point")))
	b.AddIVar(MakeSymbol([]byte("y")), MakeInt(2))
	b.AddIVar(MakeSymbol([]byte("x")), MakeInt(1))

	if !Equal(a, b) {
		t.Error("objects with the same class and ivars in different order should be equal")
	}
}

func TestEqualStringIVarsOrderSensitive(t *testing.T) {
	a := MakeString([]byte("hi"), ASCII8BIT)
	a.AddIVar(MakeSymbol([]byte("x")), MakeInt(1))
	a.AddIVar(MakeSymbol([]byte("y")), MakeInt(2))

	b := MakeString([]byte("hi"), ASCII8BIT)
	b.AddIVar(MakeSymbol([]byte("y")), MakeInt(2))
	b.AddIVar(MakeSymbol([]byte("x")), MakeInt(1))

	if Equal(a, b) {
		t.Error("strings with the same ivars in different order should not be equal")
	}

	c := MakeString([]byte("hi"), ASCII8BIT)
	c.AddIVar(MakeSymbol([]byte("x")), MakeInt(1))
	c.AddIVar(MakeSymbol([]byte("y")), MakeInt(2))

	if !Equal(a, c) {
		t.Error("strings with identical ivars in the same order should be equal")
	}
}

func TestEqualBignum(t *testing.T) {
	a := MakeBignum(1, []byte{0x01, 0x00})
	b := MakeBignum(1, []byte{0x01, 0x00})
	c := MakeBignum(-1, []byte{0x01, 0x00})
	if !Equal(a, b) {
		t.Error("equal bignums should be equal")
	}
	if Equal(a, c) {
		t.Error("bignums with different sign should not be equal")
	}
}
