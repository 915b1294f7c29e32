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

func TestArrayAddGetDel(t *testing.T) {
	a := MakeArray()
	if err := a.Add(MakeInt(1)); err != nil {
		t.Fatal(err)
	}
	if err := a.Add(MakeInt(2)); err != nil {
		t.Fatal(err)
	}
	if err := a.Add(MakeInt(3)); err != nil {
		t.Fatal(err)
	}
	if a.Len() != 3 {
		t.Fatalf("got len %d, want 3", a.Len())
	}
	if err := a.Del(1); err != nil {
		t.Fatal(err)
	}
	if a.Len() != 2 {
		t.Fatalf("got len %d, want 2", a.Len())
	}
	first, _ := a.Get(0)
	second, _ := a.Get(1)
	if n, _ := first.Int(); n != 1 {
		t.Fatalf("elem 0: got %d, want 1", n)
	}
	if n, _ := second.Int(); n != 3 {
		t.Fatalf("elem 1: got %d, want 3", n)
	}
}

func TestAddOnNonArray(t *testing.T) {
	err := MakeNil().Add(MakeInt(1))
	if err == nil {
		t.Fatal("expected a KindError")
	}
	if _, ok := err.(*KindError); !ok {
		t.Fatalf("got error of type %T, want *KindError", err)
	}
}

func TestDelOutOfRangeIsIndexError(t *testing.T) {
	a := MakeArray()
	a.Add(MakeInt(1))
	err := a.Del(5)
	if err == nil {
		t.Fatal("expected an IndexError")
	}
	if _, ok := err.(*IndexError); !ok {
		t.Fatalf("got error of type %T, want *IndexError", err)
	}
}

func TestHashSetGetDefault(t *testing.T) {
	h := MakeHash(MakeInt(-1))
	if err := h.HashSet(MakeSymbol([]byte("a")), MakeInt(1)); err != nil {
		t.Fatal(err)
	}
	v, found := h.HashGet(MakeSymbol([]byte("a")))
	if !found {
		t.Fatal("expected key to be found")
	}
	if n, _ := v.Int(); n != 1 {
		t.Fatalf("got %d, want 1", n)
	}

	def, found := h.HashGet(MakeSymbol([]byte("missing")))
	if !found {
		t.Fatal("expected the default to be returned")
	}
	if n, _ := def.Int(); n != -1 {
		t.Fatalf("got default %d, want -1", n)
	}
}

func TestHashSetReplacesExisting(t *testing.T) {
	h := MakeHash(nil)
	key := MakeSymbol([]byte("a"))
	h.HashSet(key, MakeInt(1))
	h.HashSet(MakeSymbol([]byte("a")), MakeInt(2))
	if h.Len() != 1 {
		t.Fatalf("got %d pairs, want 1", h.Len())
	}
	v, _ := h.HashGet(key)
	if n, _ := v.Int(); n != 2 {
		t.Fatalf("got %d, want 2 (replaced)", n)
	}
}

func TestObjectIVars(t *testing.T) {
	sym := MakeSymbol([]byte("Point"))
	obj, err := MakeObject(sym)
	if err != nil {
		t.Fatal(err)
	}
	if err := obj.AddIVar(MakeSymbol([]byte("x")), MakeInt(3)); err != nil {
		t.Fatal(err)
	}
	v, ok := obj.ObjectGet([]byte("x"))
	if !ok {
		t.Fatal("expected ivar x to be found")
	}
	if n, _ := v.Int(); n != 3 {
		t.Fatalf("got %d, want 3", n)
	}
	if _, ok := obj.ObjectGet([]byte("y")); ok {
		t.Fatal("expected ivar y to be absent")
	}
}

func TestMakeObjectRejectsNonSymbol(t *testing.T) {
	if _, err := MakeObject(MakeInt(1)); err == nil {
		t.Fatal("expected a KindError")
	}
}

func TestNilValueKind(t *testing.T) {
	var v *Value
	if v.Kind() != Invalid {
		t.Fatalf("got kind %s, want Invalid", v.Kind())
	}
}
