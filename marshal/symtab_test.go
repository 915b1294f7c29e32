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

func TestDecodeTablesSymbolOutOfRange(t *testing.T) {
	var tabs decodeTables
	if _, err := tabs.symbol(0); err == nil {
		t.Fatal("expected an error for an empty symbol table")
	}
	tabs.addSymbol(MakeSymbol([]byte("a")))
	if _, err := tabs.symbol(0); err != nil {
		t.Fatal(err)
	}
	if _, err := tabs.symbol(1); err == nil {
		t.Fatal("expected an out-of-range error")
	}
}

func TestEncodeSymtabInternAndLookup(t *testing.T) {
	tab := newEncodeSymtab()
	if _, ok := tab.lookup([]byte("foo")); ok {
		t.Fatal("lookup on an empty table should fail")
	}
	tab.intern([]byte("foo"))
	idx, ok := tab.lookup([]byte("foo"))
	if !ok || idx != 0 {
		t.Fatalf("got (%d, %v), want (0, true)", idx, ok)
	}
	tab.intern([]byte("bar"))
	idx, ok = tab.lookup([]byte("bar"))
	if !ok || idx != 1 {
		t.Fatalf("got (%d, %v), want (1, true)", idx, ok)
	}
	if _, ok := tab.lookup([]byte("baz")); ok {
		t.Fatal("lookup for an unseen name should fail")
	}
}

func TestHashSymbolDeterministic(t *testing.T) {
	if hashSymbol([]byte("foo")) != hashSymbol([]byte("foo")) {
		t.Fatal("hashSymbol must be deterministic for identical input")
	}
}
