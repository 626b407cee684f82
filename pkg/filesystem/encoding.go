package filesystem

import (
	"fmt"
	"runtime"
	"unicode/utf16"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// EncodingError describes an invalid sequence encountered while converting a
// path between UTF-8 and the native wide representation.
type EncodingError struct {
	// Offset is the offset of the invalid sequence in the input, measured in
	// bytes for UTF-8 input and in code units for wide input.
	Offset int
	// Reason describes the problem.
	Reason string
}

// Error implements error.Error.
func (e *EncodingError) Error() string {
	return fmt.Sprintf("%s at offset %d", e.Reason, e.Offset)
}

// Codec converts paths between the universal UTF-8 representation used by
// callers and the wide (UTF-16) representation used by native wide-character
// APIs. Output is always terminated with a NUL code unit so that it can be
// handed directly to APIs expecting a terminated string.
type Codec struct {
	// Recompose causes decoded strings to be normalized to NFC. Decomposing
	// filesystems (e.g. HFS+) report names in NFD, which otherwise wouldn't
	// compare equal to the names callers used to create them.
	Recompose bool
}

// DefaultCodec is the codec used by package-level operations.
var DefaultCodec = Codec{Recompose: runtime.GOOS == "darwin"}

// EncodeNative converts a UTF-8 string to a terminated wide buffer using
// DefaultCodec.
func EncodeNative(value string) ([]uint16, error) {
	return DefaultCodec.EncodeNativeInto(nil, value)
}

// DecodeUTF8 converts a wide buffer to UTF-8 using DefaultCodec. See
// Codec.DecodeUTF8 for the meaning of length.
func DecodeUTF8(native []uint16, length int) (string, error) {
	return DefaultCodec.DecodeUTF8(native, length)
}

// EncodeNative converts a UTF-8 string to a terminated wide buffer.
func (c Codec) EncodeNative(value string) ([]uint16, error) {
	return c.EncodeNativeInto(nil, value)
}

// EncodeNativeInto converts a UTF-8 string to a terminated wide buffer,
// reusing the storage of buffer if it has sufficient capacity and growing it
// otherwise. The returned slice's length includes the terminator.
func (c Codec) EncodeNativeInto(buffer []uint16, value string) ([]uint16, error) {
	// Handle the empty case without running the converter.
	if value == "" {
		return append(buffer[:0], 0), nil
	}

	// Sizing pass.
	required, err := wideLength(value)
	if err != nil {
		return nil, kindError("encode", value, KindEncoding, err)
	}

	// Grow the output buffer and perform the conversion.
	buffer = growUnits(buffer, required+1)
	for _, r := range value {
		if r >= 0x10000 {
			high, low := utf16.EncodeRune(r)
			buffer = append(buffer, uint16(high), uint16(low))
		} else {
			buffer = append(buffer, uint16(r))
		}
	}
	return append(buffer, 0), nil
}

// DecodeUTF8 converts a wide buffer to UTF-8. If length is negative, the
// buffer is decoded up to (but not including) its first NUL code unit, or in
// its entirety if it's unterminated. Otherwise exactly length code units are
// decoded.
func (c Codec) DecodeUTF8(native []uint16, length int) (string, error) {
	// Compute the effective input.
	if length < 0 {
		length = len(native)
		for i, unit := range native {
			if unit == 0 {
				length = i
				break
			}
		}
	} else if length > len(native) {
		return "", kindError("decode", "", KindInvalidArgument, fmt.Errorf("length %d exceeds buffer size %d", length, len(native)))
	}
	native = native[:length]

	// Handle the empty case without running the converter.
	if length == 0 {
		return "", nil
	}

	// Sizing pass.
	required, err := narrowLength(native)
	if err != nil {
		return "", kindError("decode", "", KindEncoding, err)
	}

	// Grow the output buffer and perform the conversion. The sizing pass has
	// already validated surrogate pairing.
	buffer := growBytes(nil, required)
	for i := 0; i < len(native); i++ {
		r := rune(native[i])
		if utf16.IsSurrogate(r) {
			r = utf16.DecodeRune(r, rune(native[i+1]))
			i++
		}
		buffer = utf8.AppendRune(buffer, r)
	}
	return c.recompose(string(buffer)), nil
}

// recompose normalizes a decoded name to NFC if the codec is configured to do
// so. Names read from POSIX directories bypass wide decoding but still pass
// through here.
func (c Codec) recompose(name string) string {
	if c.Recompose && !norm.NFC.IsNormalString(name) {
		return norm.NFC.String(name)
	}
	return name
}

// wideLength computes the number of wide code units (excluding a terminator)
// required to represent a UTF-8 string, validating it in the process.
func wideLength(value string) (int, error) {
	var result int
	for i := 0; i < len(value); {
		r, size := utf8.DecodeRuneInString(value[i:])
		if r == utf8.RuneError && size == 1 {
			return 0, &EncodingError{Offset: i, Reason: "invalid UTF-8 sequence"}
		} else if r == 0 {
			return 0, &EncodingError{Offset: i, Reason: "embedded NUL character"}
		}
		if r >= 0x10000 {
			result += 2
		} else {
			result++
		}
		i += size
	}
	return result, nil
}

// narrowLength computes the number of UTF-8 bytes required to represent a wide
// buffer, validating surrogate pairing in the process.
func narrowLength(native []uint16) (int, error) {
	var result int
	for i := 0; i < len(native); i++ {
		r := rune(native[i])
		if !utf16.IsSurrogate(r) {
			result += utf8.RuneLen(r)
			continue
		}
		if r >= 0xdc00 || i+1 == len(native) {
			return 0, &EncodingError{Offset: i, Reason: "unpaired surrogate"}
		}
		next := rune(native[i+1])
		if next < 0xdc00 || next > 0xdfff {
			return 0, &EncodingError{Offset: i, Reason: "unpaired surrogate"}
		}
		result += 4
		i++
	}
	return result, nil
}

// growUnits returns an empty slice backed by buffer's storage if it has at
// least the specified capacity, or by new storage otherwise.
func growUnits(buffer []uint16, capacity int) []uint16 {
	if cap(buffer) < capacity {
		return make([]uint16, 0, capacity)
	}
	return buffer[:0]
}

// growBytes is the byte equivalent of growUnits.
func growBytes(buffer []byte, capacity int) []byte {
	if cap(buffer) < capacity {
		return make([]byte, 0, capacity)
	}
	return buffer[:0]
}
