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

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestEncodingByNameRoundTrip(t *testing.T) {
	for _, name := range []string{"UTF-8", "US-ASCII", "ASCII-8BIT", "Shift_JIS", "ISO-8859-1"} {
		id, ok := EncodingByName(name)
		if !ok {
			t.Fatalf("%s: expected to be found", name)
		}
		if id.Name() != name {
			t.Fatalf("%s: round-tripped as %q", name, id.Name())
		}
	}
}

func TestEncodingByNameUnknown(t *testing.T) {
	if _, ok := EncodingByName("not-a-real-encoding"); ok {
		t.Fatal("expected an unknown encoding name to fail lookup")
	}
}

func TestASCII8BITIsZero(t *testing.T) {
	if ASCII8BIT != 0 {
		t.Fatalf("got %d, want 0", ASCII8BIT)
	}
	if ASCII8BIT.Name() != "ASCII-8BIT" {
		t.Fatalf("got %q, want ASCII-8BIT", ASCII8BIT.Name())
	}
}

func TestEncodingTableHasNoDuplicateNames(t *testing.T) {
	seen := make(map[string]Encoding, len(encodingNames))
	var dupes []string
	for id, name := range encodingNames {
		if _, ok := seen[name]; ok {
			dupes = append(dupes, name)
		}
		seen[name] = Encoding(id)
	}
	if diff := cmp.Diff([]string(nil), dupes); diff != "" {
		t.Fatalf("encoding table has duplicate names (-want +got):\n%s", diff)
	}
}
