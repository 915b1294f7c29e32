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

// Equal reports whether a and b are structurally equal: same Kind,
// same scalar payload, and recursively equal children. Hash and Object
// comparisons are order-insensitive over their pairs; Array comparison
// and a String's instance-variable pairs are order-sensitive. Two nil
// Values are equal; a nil Value is never equal to a non-nil one.
func Equal(a, b *Value) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case Nil:
		return true
	case Bool:
		return a.boolVal == b.boolVal
	case Int:
		return a.intVal == b.intVal
	case Bignum:
		return a.bignumSign == b.bignumSign && bytesEqual(a.bignumMag, b.bignumMag)
	case Float:
		return a.floatVal == b.floatVal
	case Symbol:
		return bytesEqual(a.bytes, b.bytes)
	case Array:
		return equalArray(a, b)
	case Hash:
		return equalHash(a, b)
	case String:
		return a.encoding == b.encoding && bytesEqual(a.bytes, b.bytes) && equalIVarsOrdered(a.ivars, b.ivars)
	case Class, Module:
		return bytesEqual(a.bytes, b.bytes)
	case Object:
		return a.className == b.className && equalIVars(a.ivars, b.ivars)
	case UserDef:
		return a.className == b.className && bytesEqual(a.bytes, b.bytes)
	default:
		return false
	}
}

func equalArray(a, b *Value) bool {
	if len(a.elems) != len(b.elems) {
		return false
	}
	for i := range a.elems {
		if !Equal(a.elems[i], b.elems[i]) {
			return false
		}
	}
	return true
}

// equalHash compares two Hash Values order-insensitively: every pair in
// a must have a structurally-equal counterpart in b, and vice versa via
// the length check. Defaults participate too.
func equalHash(a, b *Value) bool {
	if len(a.pairs) != len(b.pairs) {
		return false
	}
	if a.hasDefault != b.hasDefault {
		return false
	}
	if a.hasDefault && !Equal(a.defaultVal, b.defaultVal) {
		return false
	}
	used := make([]bool, len(b.pairs))
	for _, pa := range a.pairs {
		found := false
		for j, pb := range b.pairs {
			if used[j] {
				continue
			}
			if Equal(pa.Key, pb.Key) && Equal(pa.Val, pb.Val) {
				used[j] = true
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// equalIVarsOrdered compares a String's instance-variable pairs
// pairwise in order, matching _examples/original_source/src/equal.c's
// equal_string (which walks both pair arrays by the same index rather
// than searching for a match).
func equalIVarsOrdered(a, b []IVar) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !Equal(a[i].Name, b[i].Name) || !Equal(a[i].Val, b[i].Val) {
			return false
		}
	}
	return true
}

// equalIVars compares an Object's instance-variable pairs
// order-insensitively, matching the object model's treatment of ivars
// as a named-field set rather than a sequence.
func equalIVars(a, b []IVar) bool {
	if len(a) != len(b) {
		return false
	}
	used := make([]bool, len(b))
	for _, ia := range a {
		found := false
		for j, ib := range b {
			if used[j] {
				continue
			}
			if Equal(ia.Name, ib.Name) && Equal(ia.Val, ib.Val) {
				used[j] = true
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
