package filesystem

import (
	"errors"
	"testing"
	"unicode/utf16"
)

func TestEncodeNativeEmpty(t *testing.T) {
	native, err := EncodeNative("")
	if err != nil {
		t.Fatal("unable to encode empty string:", err)
	} else if len(native) != 1 || native[0] != 0 {
		t.Error("empty string not encoded as lone terminator:", native)
	}
}

func TestEncodeNativeTerminated(t *testing.T) {
	native, err := EncodeNative("abc")
	if err != nil {
		t.Fatal("unable to encode:", err)
	} else if len(native) != 4 || native[3] != 0 {
		t.Error("encoded buffer not terminated:", native)
	}
}

func TestCodecRoundTrip(t *testing.T) {
	codec := Codec{}
	testCases := []string{
		"",
		"simple",
		"C:\\Users\\example\\tmp-1a2b.txt",
		"/tmp/ünïcödé/файл",
		"emoji-😀-and-𝄞",
		"日本語のパス",
		"\uFFFD replacement is valid",
	}
	for _, testCase := range testCases {
		native, err := codec.EncodeNative(testCase)
		if err != nil {
			t.Errorf("unable to encode %q: %v", testCase, err)
			continue
		}
		decoded, err := codec.DecodeUTF8(native, -1)
		if err != nil {
			t.Errorf("unable to decode %q: %v", testCase, err)
		} else if decoded != testCase {
			t.Errorf("round trip mismatch: %q != %q", decoded, testCase)
		}
		if len(native)-1 != len(utf16.Encode([]rune(testCase))) {
			t.Errorf("unexpected encoded length for %q", testCase)
		}
	}
}

func TestEncodeNativeInvalid(t *testing.T) {
	testCases := []string{
		"bad\xffbyte",
		"embedded\x00nul",
		"\xed\xa0\x80surrogate",
	}
	for _, testCase := range testCases {
		_, err := EncodeNative(testCase)
		if !errors.Is(err, ErrEncoding) {
			t.Errorf("expected encoding error for %q, got %v", testCase, err)
		}
		var encodingErr *EncodingError
		if !errors.As(err, &encodingErr) {
			t.Errorf("missing encoding error cause for %q", testCase)
		}
	}
}

func TestDecodeUTF8UnpairedSurrogate(t *testing.T) {
	testCases := [][]uint16{
		{'a', 0xd800},
		{0xd800, 'a'},
		{0xdc00, 'a'},
	}
	for _, testCase := range testCases {
		if _, err := DecodeUTF8(testCase, len(testCase)); !errors.Is(err, ErrEncoding) {
			t.Errorf("expected encoding error for %v, got %v", testCase, err)
		}
	}
}

func TestDecodeUTF8ExplicitLength(t *testing.T) {
	native := []uint16{'a', 'b', 'c', 'd', 0}
	if decoded, err := DecodeUTF8(native, 2); err != nil {
		t.Fatal("unable to decode:", err)
	} else if decoded != "ab" {
		t.Error("unexpected decoded value:", decoded)
	}
	if _, err := DecodeUTF8(native, 10); !errors.Is(err, ErrInvalidArgument) {
		t.Error("excessive length not rejected:", err)
	}
}

func TestDecodeUTF8Recompose(t *testing.T) {
	decomposed := "e\u0301"
	native, err := Codec{}.EncodeNative(decomposed)
	if err != nil {
		t.Fatal("unable to encode:", err)
	}
	if decoded, err := (Codec{Recompose: true}).DecodeUTF8(native, -1); err != nil {
		t.Fatal("unable to decode:", err)
	} else if decoded != "\u00e9" {
		t.Errorf("name not recomposed: %q", decoded)
	}
	if decoded, err := (Codec{}).DecodeUTF8(native, -1); err != nil {
		t.Fatal("unable to decode:", err)
	} else if decoded != decomposed {
		t.Errorf("name unexpectedly recomposed: %q", decoded)
	}
}

func TestEncodeNativeIntoReusesBuffer(t *testing.T) {
	buffer := make([]uint16, 0, 64)
	result, err := Codec{}.EncodeNativeInto(buffer, "short")
	if err != nil {
		t.Fatal("unable to encode:", err)
	} else if &result[0] != &buffer[:1][0] {
		t.Error("buffer with sufficient capacity was not reused")
	}
	grown, err := Codec{}.EncodeNativeInto(make([]uint16, 0, 2), "longer than two")
	if err != nil {
		t.Fatal("unable to encode:", err)
	} else if len(grown) != len("longer than two")+1 {
		t.Error("unexpected grown length:", len(grown))
	}
}
