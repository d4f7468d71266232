package spirv

import (
	"encoding/binary"
	"errors"
	"testing"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		words []uint32
		want  error
	}{
		{"empty", nil, ErrTooShort},
		{"four words", []uint32{MagicNumber, 0x10000, 0, 1}, ErrTooShort},
		{"bad magic", []uint32{0xdeadbeef, 0x10000, 0, 1, 0}, ErrBadMagic},
		{"swapped magic", []uint32{0x03022307, 0x10000, 0, 1, 0}, ErrBadMagic},
		{"schema", []uint32{MagicNumber, 0x10000, 0, 1, 7}, ErrBadSchema},
		{"header only", []uint32{MagicNumber, 0x10000, 0, 1, 0}, nil},
		{"zero bound accepted", []uint32{MagicNumber, 0x10300, 0, 0, 0}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.words)
			if !errors.Is(err, tt.want) {
				t.Fatalf("Validate() = %v, want %v", err, tt.want)
			}
			if IsValid(tt.words) != (tt.want == nil) {
				t.Errorf("IsValid() = %v, want %v", IsValid(tt.words), tt.want == nil)
			}
		})
	}
}

func TestWordsFromBytes(t *testing.T) {
	header := []uint32{MagicNumber, Version1_3.Word(), GeneratorID, 9, 0}

	little := Bytes(header)
	big := make([]byte, len(header)*4)
	for i, w := range header {
		binary.BigEndian.PutUint32(big[i*4:], w)
	}

	for name, data := range map[string][]byte{"little endian": little, "big endian": big} {
		t.Run(name, func(t *testing.T) {
			words, err := WordsFromBytes(data)
			if err != nil {
				t.Fatalf("WordsFromBytes: %v", err)
			}
			if len(words) != len(header) {
				t.Fatalf("got %d words, want %d", len(words), len(header))
			}
			for i := range header {
				if words[i] != header[i] {
					t.Errorf("word %d = 0x%08X, want 0x%08X", i, words[i], header[i])
				}
			}
		})
	}

	if _, err := WordsFromBytes([]byte{1, 2, 3}); err == nil {
		t.Error("expected error for a length that is not a multiple of 4")
	}
}

func TestDecodeHeader(t *testing.T) {
	words := NewBuilder(Version1_5).Words()
	hdr, err := DecodeHeader(words)
	if err != nil {
		t.Fatalf("DecodeHeader: %v", err)
	}
	if hdr.Version != Version1_5 {
		t.Errorf("Version = %v, want %v", hdr.Version, Version1_5)
	}
	if hdr.Bound != 1 {
		t.Errorf("Bound = %d, want 1", hdr.Bound)
	}
}
