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

// Package marshal implements a decoder and encoder for the binary
// object-serialization format produced by format version 4.8 of a
// well-known dynamic language's standard "marshal" facility.
//
// A Value is a closed, tagged tree: every documented wire type has a
// matching Value kind, and every child Value is owned by exactly one
// parent. Decode builds a Value tree from a byte slice; Encode walks a
// Value tree back into one. Clone, Equal and Fprint operate purely on
// the tree and do not touch the wire format.
package marshal
