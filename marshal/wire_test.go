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

func TestVarintRoundTrip(t *testing.T) {
	cases := []int32{
		0, 1, 122, 123, -1, -123, -124,
		0xFF, 0x100, 0xFFFF, 0x10000, 0xFFFFFF, 0x1000000,
		-0xFF, -0x10000, -0x1000000,
	}
	for _, want := range cases {
		dst := appendVarint(nil, want)
		got, rest, err := readVarint(dst)
		if err != nil {
			t.Fatalf("value %d: %s", want, err)
		}
		if len(rest) != 0 {
			t.Fatalf("value %d: %d trailing bytes", want, len(rest))
		}
		if got != want {
			t.Fatalf("value %d: round-tripped as %d (wire %x)", want, got, dst)
		}
	}
}

func TestVarintMinimalForm(t *testing.T) {
	// Small values in -123..122 must fit in a single control byte, per
	// the format's framing.
	for _, v := range []int32{0, 1, 122, -1, -123} {
		dst := appendVarint(nil, v)
		if len(dst) != 1 {
			t.Fatalf("value %d: expected 1-byte encoding, got %d bytes (%x)", v, len(dst), dst)
		}
	}
}

func TestVarintTruncated(t *testing.T) {
	// A control byte claiming a 2-byte payload with only 1 byte present.
	_, _, err := readVarint([]byte{2, 0x01})
	if err == nil {
		t.Fatal("expected truncation error")
	}
}

func TestBytesRoundTrip(t *testing.T) {
	for _, s := range [][]byte{nil, {}, []byte("hello"), make([]byte, 300)} {
		dst := appendBytes(nil, s)
		got, rest, err := readBytes(dst)
		if err != nil {
			t.Fatal(err)
		}
		if len(rest) != 0 {
			t.Fatalf("%d trailing bytes", len(rest))
		}
		if len(got) != len(s) {
			t.Fatalf("length mismatch: got %d want %d", len(got), len(s))
		}
	}
}

func TestVersionRoundTrip(t *testing.T) {
	dst := appendVersion(nil)
	rest, err := readVersion(dst)
	if err != nil {
		t.Fatal(err)
	}
	if len(rest) != 0 {
		t.Fatalf("%d trailing bytes", len(rest))
	}
}

func TestVersionMismatch(t *testing.T) {
	_, err := readVersion([]byte{4, 9})
	if err == nil {
		t.Fatal("expected version mismatch error")
	}
}
