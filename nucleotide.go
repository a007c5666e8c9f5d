package motiffinding

import "fmt"

// Alphabet is the nucleotide alphabet in encoding order. Encode and
// Decode map between these characters and {0, 1, 2, 3}, and the same
// order indexes the columns of every position weight matrix, so the
// mapping must never change between components.
const Alphabet = "ACGT"

// NumNucleotides is the size of the nucleotide alphabet.
const NumNucleotides = len(Alphabet)

// encodeTable maps a byte to its nucleotide encoding, or -1 for any
// byte outside the alphabet. Lookup is a single index so it is cheap
// enough for the scoring inner loop.
var encodeTable = func() [256]int8 {
	var t [256]int8
	for i := range t {
		t[i] = -1
	}
	for i := 0; i < NumNucleotides; i++ {
		t[Alphabet[i]] = int8(i)
	}
	return t
}()

// Encode maps a nucleotide character to its column index.
// Characters outside the alphabet are an input error.
func Encode(c byte) (int, error) {
	v := encodeTable[c]
	if v < 0 {
		return 0, fmt.Errorf(InvalidSymbolError, c)
	}
	return int(v), nil
}

// mustEncode encodes a character that has already been validated.
// Only sequences that passed through Encode or the generator may be
// indexed with it.
func mustEncode(c byte) int {
	v := encodeTable[c]
	if v < 0 {
		panic(fmt.Sprintf(InvalidSymbolError, c))
	}
	return int(v)
}

// Decode maps a column index back to its nucleotide character.
// i must be in [0, NumNucleotides).
func Decode(i int) byte {
	return Alphabet[i]
}
