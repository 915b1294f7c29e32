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

// Kind identifies the variant held by a Value.
type Kind uint8

const (
	// Invalid is the zero Kind; no constructor ever produces it.
	Invalid Kind = iota
	Nil
	Bool
	Int
	Bignum
	Float
	Symbol
	Array
	Hash
	String
	Class
	Module
	Object
	UserDef
)

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(?)"
}

var kindNames = [...]string{
	Invalid: "Invalid",
	Nil:     "Nil",
	Bool:    "Bool",
	Int:     "Int",
	Bignum:  "Bignum",
	Float:   "Float",
	Symbol:  "Symbol",
	Array:   "Array",
	Hash:    "Hash",
	String:  "String",
	Class:   "Class",
	Module:  "Module",
	Object:  "Object",
	UserDef: "UserDef",
}
