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

import "golang.org/x/exp/slices"

// Clone returns a deep copy of v: every owned slice and child Value is
// copied rather than shared, so mutating the clone (or Destroy-ing it)
// never affects v. This is how the decoder turns a back-reference into
// a tree-shaped value without introducing a shared node, and it is the
// only supported way to duplicate a Value.
func Clone(v *Value) *Value {
	if v == nil {
		return nil
	}
	out := &Value{
		kind:       v.kind,
		boolVal:    v.boolVal,
		intVal:     v.intVal,
		bignumSign: v.bignumSign,
		bignumMag:  slices.Clone(v.bignumMag),
		floatVal:   v.floatVal,
		bytes:      slices.Clone(v.bytes),
		hasDefault: v.hasDefault,
		encoding:   v.encoding,
		className:  v.className,
	}
	if v.elems != nil {
		out.elems = make([]*Value, len(v.elems))
		for i, e := range v.elems {
			out.elems[i] = Clone(e)
		}
	}
	if v.pairs != nil {
		out.pairs = make([]Pair, len(v.pairs))
		for i, p := range v.pairs {
			out.pairs[i] = Pair{Key: Clone(p.Key), Val: Clone(p.Val)}
		}
	}
	out.defaultVal = Clone(v.defaultVal)
	if v.ivars != nil {
		out.ivars = make([]IVar, len(v.ivars))
		for i, iv := range v.ivars {
			out.ivars[i] = IVar{Name: Clone(iv.Name), Val: Clone(iv.Val)}
		}
	}
	if v.classSym != nil {
		out.classSym = Clone(v.classSym)
		// Reseat className onto the clone's own buffer: className is a
		// derived view and must never alias the source symbol's bytes.
		out.className = string(out.classSym.bytes)
	}
	return out
}
