package spirv

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math/bits"
)

// Header validation errors.
var (
	ErrTooShort  = errors.New("spirv: module shorter than the 5-word header")
	ErrBadMagic  = errors.New("spirv: bad magic number")
	ErrBadSchema = errors.New("spirv: non-zero schema word")
)

// Header is the decoded 5-word module header.
type Header struct {
	Magic     uint32
	Version   Version
	Generator uint32
	Bound     uint32
	Schema    uint32
}

// Validate checks that words start with a plausible SPIR-V header: at least
// five words, the magic number first and a zero schema word.
func Validate(words []uint32) error {
	if len(words) < HeaderWords {
		return fmt.Errorf("%w: %d words", ErrTooShort, len(words))
	}
	if words[0] != MagicNumber {
		return fmt.Errorf("%w: 0x%08X", ErrBadMagic, words[0])
	}
	if words[4] != 0 {
		return fmt.Errorf("%w: %d", ErrBadSchema, words[4])
	}
	return nil
}

// IsValid reports whether Validate accepts words.
func IsValid(words []uint32) bool {
	return Validate(words) == nil
}

// DecodeHeader returns the header of a validated module.
func DecodeHeader(words []uint32) (Header, error) {
	if err := Validate(words); err != nil {
		return Header{}, err
	}
	return Header{
		Magic:     words[0],
		Version:   VersionFromWord(words[1]),
		Generator: words[2],
		Bound:     words[3],
		Schema:    words[4],
	}, nil
}

// WordsFromBytes decodes a SPIR-V binary into words. The byte order is taken
// from the magic number; little endian is assumed when it matches neither.
func WordsFromBytes(data []byte) ([]uint32, error) {
	if len(data)%4 != 0 {
		return nil, fmt.Errorf("spirv: binary length %d is not a multiple of 4", len(data))
	}
	var order binary.ByteOrder = binary.LittleEndian
	if len(data) >= 4 && binary.LittleEndian.Uint32(data) == bits.ReverseBytes32(MagicNumber) {
		order = binary.BigEndian
	}
	words := make([]uint32, len(data)/4)
	for i := range words {
		words[i] = order.Uint32(data[i*4:])
	}
	return words, nil
}

// Bytes encodes words as a little-endian SPIR-V binary.
func Bytes(words []uint32) []byte {
	data := make([]byte, len(words)*4)
	for i, w := range words {
		binary.LittleEndian.PutUint32(data[i*4:], w)
	}
	return data
}

// decodeString reads a nul-terminated literal string starting at words[0]
// and returns it with the number of words it occupies.
func decodeString(words []uint32) (string, int) {
	buf := make([]byte, 0, len(words)*4)
	for i, w := range words {
		for shift := 0; shift < 32; shift += 8 {
			b := byte(w >> shift)
			if b == 0 {
				return string(buf), i + 1
			}
			buf = append(buf, b)
		}
	}
	return string(buf), len(words)
}
