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

import "github.com/dchest/siphash"

// decodeTables holds the per-decode symbol and object back-reference
// tables. Both are discarded at the end of a single Decode call; they
// hold references into the tree being built, never copies.
type decodeTables struct {
	syms []*Value
	objs []*Value
}

func (t *decodeTables) addSymbol(v *Value) { t.syms = append(t.syms, v) }

func (t *decodeTables) symbol(index int32) (*Value, error) {
	if index < 0 || int(index) >= len(t.syms) {
		return nil, decodeErr(0, ';', "symbol back-reference %d out of range (%d interned)", index, len(t.syms))
	}
	return t.syms[index], nil
}

func (t *decodeTables) addObject(v *Value) { t.objs = append(t.objs, v) }

func (t *decodeTables) object(index int32) (*Value, error) {
	if index < 0 || int(index) >= len(t.objs) {
		return nil, decodeErr(0, '@', "object back-reference %d out of range (%d registered)", index, len(t.objs))
	}
	return t.objs[index], nil
}

// symtabSeed is fixed rather than randomized: the write-side symbol
// table only needs to disambiguate siphash collisions within a single
// Encode call, not resist an adversary, so there is no reason to pay
// for a fresh seed per document.
const symtabSeed uint64 = 0x6d617273

// encodeSymtab is the encoder's optional write-side symbol table (see
// Encoder.DedupeSymbols). It mirrors decodeTables' append-on-fresh-
// symbol-only rule so a decoder following §4.3 resolves every emitted
// back-reference to the same symbol. siphash keys the lookup the same
// way ion/zion hashes byte runs for its own dedup tables, since a raw
// map[string][]byte key would otherwise force a copy of every symbol's
// bytes just to probe the map.
type encodeSymtab struct {
	byHash map[uint64][]int32 // siphash(name) -> indices into names, for collision disambiguation
	names  [][]byte
}

func newEncodeSymtab() *encodeSymtab {
	return &encodeSymtab{byHash: make(map[uint64][]int32)}
}

func hashSymbol(name []byte) uint64 {
	return siphash.Hash(symtabSeed, 0, name)
}

// lookup returns the back-reference index of an already-emitted symbol
// with these exact bytes, if any.
func (t *encodeSymtab) lookup(name []byte) (index int32, ok bool) {
	h := hashSymbol(name)
	for _, idx := range t.byHash[h] {
		if bytesEqual(t.names[idx], name) {
			return idx, true
		}
	}
	return 0, false
}

// intern records a freshly-emitted symbol's bytes at its append order.
func (t *encodeSymtab) intern(name []byte) {
	h := hashSymbol(name)
	idx := int32(len(t.names))
	t.names = append(t.names, name)
	t.byHash[h] = append(t.byHash[h], idx)
}
