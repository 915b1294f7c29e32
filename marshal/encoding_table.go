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

// Encoding identifies a string encoding by the format's small integer
// id. The wire format never spells these ids out directly; they are
// derived from (and emitted as) the textual names in encodingNames.
type Encoding int

// ASCII8BIT is the default for any String with no encoding ivar pair.
const ASCII8BIT Encoding = 0

// encodingNames is the static bidirectional table of ~100 textual
// encoding names this format is known to use, in the order the source
// facility defines them. It is a pure lookup table; the concrete
// integer values are this library's own numbering (the wire format
// never encodes them, only the names), with ASCII8BIT pinned to 0 so
// the zero Encoding is the sensible default.
var encodingNames = []string{
	"ASCII-8BIT",
	"UTF-8",
	"US-ASCII",
	"UTF-16BE",
	"UTF-16LE",
	"UTF-32BE",
	"UTF-32LE",
	"UTF-16",
	"UTF-32",
	"UTF8-MAC",
	"EUC-JP",
	"Windows-31J",
	"Big5",
	"Big5-HKSCS",
	"Big5-UAO",
	"CP949",
	"Emacs-Mule",
	"EUC-KR",
	"EUC-TW",
	"GB2312",
	"GB18030",
	"GBK",
	"ISO-8859-1",
	"ISO-8859-2",
	"ISO-8859-3",
	"ISO-8859-4",
	"ISO-8859-5",
	"ISO-8859-6",
	"ISO-8859-7",
	"ISO-8859-8",
	"ISO-8859-9",
	"ISO-8859-10",
	"ISO-8859-11",
	"ISO-8859-13",
	"ISO-8859-14",
	"ISO-8859-15",
	"ISO-8859-16",
	"KOI8-R",
	"KOI8-U",
	"Shift_JIS",
	"Windows-1250",
	"Windows-1251",
	"Windows-1252",
	"Windows-1253",
	"Windows-1254",
	"Windows-1257",
	"IBM437",
	"IBM737",
	"IBM775",
	"CP850",
	"IBM852",
	"CP852",
	"IBM855",
	"CP855",
	"IBM857",
	"IBM860",
	"IBM861",
	"IBM862",
	"IBM863",
	"IBM864",
	"IBM865",
	"IBM866",
	"IBM869",
	"Windows-1258",
	"GB1988",
	"macCentEuro",
	"macCroatian",
	"macCyrillic",
	"macGreek",
	"macIceland",
	"macRoman",
	"macRomania",
	"macThai",
	"macTurkish",
	"macUkraine",
	"CP950",
	"CP951",
	"IBM037",
	"stateless-ISO-2022-JP",
	"eucJP-ms",
	"CP51932",
	"EUC-JIS-2004",
	"GB12345",
	"ISO-2022-JP",
	"ISO-2022-JP-2",
	"CP50220",
	"CP50221",
	"Windows-1256",
	"Windows-1255",
	"TIS-620",
	"Windows-874",
	"MacJapanese",
	"UTF-7",
	"UTF8-DoCoMo",
	"SJIS-DoCoMo",
	"UTF8-KDDI",
	"SJIS-KDDI",
	"ISO-2022-JP-KDDI",
	"stateless-ISO-2022-JP-KDDI",
	"UTF8-SoftBank",
	"SJIS-SoftBank",
}

var encodingByName map[string]Encoding

func init() {
	encodingByName = make(map[string]Encoding, len(encodingNames))
	for id, name := range encodingNames {
		encodingByName[name] = Encoding(id)
	}
}

// EncodingByName looks up an encoding by its textual name, returning
// (0, false) if the name is not in the table.
func EncodingByName(name string) (Encoding, bool) {
	id, ok := encodingByName[name]
	return id, ok
}

// Name returns e's textual name, or "" if e is out of range.
func (e Encoding) Name() string {
	if e < 0 || int(e) >= len(encodingNames) {
		return ""
	}
	return encodingNames[e]
}
