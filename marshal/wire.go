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

// versionMajor and versionMinor are the two bytes every document
// begins with. Decode fails fast if either differs.
const (
	versionMajor byte = 4
	versionMinor byte = 8
)

// readVersion consumes the two-byte version prefix.
func readVersion(data []byte) (rest []byte, err error) {
	if len(data) < 2 {
		return nil, decodeErr(0, 0, "truncated version prefix")
	}
	if data[0] != versionMajor || data[1] != versionMinor {
		return nil, decodeErr(0, 0, "unsupported version %d.%d", data[0], data[1])
	}
	return data[2:], nil
}

// appendVersion appends the two-byte version prefix to dst.
func appendVersion(dst []byte) []byte {
	return append(dst, versionMajor, versionMinor)
}

// readVarint reads the format's variable-length signed integer framing
// (used for lengths, small integers, and cache indices) from the front
// of data. It returns the decoded value and the unconsumed remainder.
func readVarint(data []byte) (value int32, rest []byte, err error) {
	if len(data) < 1 {
		return 0, nil, decodeErr(0, 0, "truncated integer")
	}
	c := data[0]
	data = data[1:]
	switch {
	case c == 0:
		return 0, data, nil
	case c >= 1 && c <= 4:
		n := int(c)
		if len(data) < n {
			return 0, nil, decodeErr(0, 0, "truncated integer payload")
		}
		var v uint32
		for i := n - 1; i >= 0; i-- {
			v = v<<8 | uint32(data[i])
		}
		return int32(v), data[n:], nil
	case c <= 0x7F:
		return int32(c) - 5, data, nil
	case c <= 0xFB:
		return int32(c) - 0xFB, data, nil
	default: // 0xFC..0xFF
		n := 256 - int(c)
		if len(data) < n {
			return 0, nil, decodeErr(0, 0, "truncated integer payload")
		}
		var v uint32
		for i := n - 1; i >= 0; i-- {
			v = v<<8 | uint32(data[i])
		}
		return int32(v) - int32(uint32(1)<<(uint(n)*8)), data[n:], nil
	}
}

// appendVarint appends the minimal encoding of value to dst, per the
// rules in the format's "fixnum" framing.
func appendVarint(dst []byte, value int32) []byte {
	switch {
	case value == 0:
		return append(dst, 0)
	case value >= 1 && value <= 122:
		return append(dst, byte(value+5))
	case value > 122:
		n := byteWidth(uint32(value))
		dst = append(dst, byte(n))
		return appendLittleEndian(dst, uint32(value), n)
	case value >= -123:
		return append(dst, byte(value+0xFB))
	default: // value < -123
		mag := uint32(-value)
		n := byteWidth(mag)
		dst = append(dst, byte(256-n))
		biased := uint32(value) + (uint32(1) << (uint(n) * 8))
		return appendLittleEndian(dst, biased, n)
	}
}

// byteWidth returns the smallest width in 1..4 bytes that can hold v.
func byteWidth(v uint32) int {
	switch {
	case v < 1<<8:
		return 1
	case v < 1<<16:
		return 2
	case v < 1<<24:
		return 3
	default:
		return 4
	}
}

func appendLittleEndian(dst []byte, v uint32, n int) []byte {
	for i := 0; i < n; i++ {
		dst = append(dst, byte(v))
		v >>= 8
	}
	return dst
}

// readBytes reads a length-prefixed byte run: a varint length N followed
// by N raw bytes. The returned slice aliases data; callers that retain it
// beyond the lifetime of the input must copy it.
func readBytes(data []byte) (value []byte, rest []byte, err error) {
	n, rest, err := readVarint(data)
	if err != nil {
		return nil, nil, err
	}
	if n < 0 {
		return nil, nil, decodeErr(0, 0, "negative length %d", n)
	}
	if len(rest) < int(n) {
		return nil, nil, decodeErr(0, 0, "truncated byte run of length %d", n)
	}
	return rest[:n], rest[n:], nil
}

// appendBytes appends the length-prefixed encoding of value to dst.
func appendBytes(dst []byte, value []byte) []byte {
	dst = appendVarint(dst, int32(len(value)))
	return append(dst, value...)
}
