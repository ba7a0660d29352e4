package encoding

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppendSymbols(t *testing.T) {
	tests := []struct {
		name    string
		r       rune
		symbols []byte
	}{
		{"printable low", ' ', []byte{0x20}},
		{"printable letter", 'A', []byte{0x41}},
		{"printable tilde", '~', []byte{0x7E}},
		{"tab", '\t', []byte{0x19}},
		{"line feed", '\n', []byte{0x1A}},
		{"carriage return", '\r', []byte{0x1D}},
		{"NUL", 0x00, []byte{0x7F}},
		{"BEL", 0x07, []byte{0x1F}},
		{"BS", 0x08, []byte{0x1E}},
		{"SOH overlong", 0x01, []byte{0x00, 0x01}},
		{"ESC overlong", 0x1B, []byte{0x00, 0x1B}},
		{"DEL overlong", 0x7F, []byte{0x00, 0x7F}},
		{"two symbol low", 0x80, []byte{0x01, 0x00}},
		{"e acute", 'é', []byte{0x01, 0x69}},
		{"two symbol high", 0x7FF, []byte{0x0F, 0x7F}},
		{"three symbol low", 0x800, []byte{0x10, 0x10, 0x00}},
		{"euro sign", '€', []byte{0x10, 0x41, 0x2C}},
		{"three symbol high", 0xFFFF, []byte{0x13, 0x7F, 0x7F}},
		{"supplementary low", 0x10000, []byte{0x18, 0x04, 0x00, 0x00}},
		{"emoji", '😀', []byte{0x18, 0x07, 0x6C, 0x00}},
		{"supplementary high", 0x10FFFF, []byte{0x18, 0x43, 0x7F, 0x7F}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := appendSymbols(nil, tt.r)
			assert.Equal(t, tt.symbols, got)
			for _, sym := range got {
				assert.Zero(t, sym&0x80, "symbols never carry a high bit")
			}
		})
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		sym   byte
		class symbolClass
	}{
		{0x00, classLead2},
		{0x01, classLead2},
		{0x0F, classLead2},
		{0x10, classLead3},
		{0x13, classLead3},
		{0x14, classInvalid},
		{0x15, classInvalid},
		{0x16, classInvalid},
		{0x17, classInvalid},
		{0x18, classLead4},
		{0x19, classShifted},
		{0x1D, classShifted},
		{0x1E, classBS},
		{0x1F, classBEL},
		{0x20, classLiteral},
		{0x7E, classLiteral},
		{0x7F, classNUL},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.class, classify(tt.sym), "symbol 0x%02X", tt.sym)
	}
}

func TestClassify_EveryLeadIsDistinct(t *testing.T) {
	for r := rune(0); r <= 0x10FFFF; r += 0x3F {
		if r >= 0xD800 && r <= 0xDFFF {
			continue
		}

		symbols := appendSymbols(nil, r)
		class := classify(symbols[0])
		require.NotEqual(t, classInvalid, class, "U+%04X", r)

		switch len(symbols) {
		case 1:
			assert.NotContains(t, []symbolClass{classLead2, classLead3, classLead4}, class, "U+%04X", r)
		case 2:
			assert.Equal(t, classLead2, class, "U+%04X", r)
		case 3:
			assert.Equal(t, classLead3, class, "U+%04X", r)
		case 4:
			assert.Equal(t, classLead4, class, "U+%04X", r)
		}
	}
}

func TestPackSymbols_FullGroup(t *testing.T) {
	// 'H' = 0b1001000: bits 6..0 land in the high bits of bytes 0..6.
	packed := packSymbols(nil, []byte("ABCDEFGH"))

	require.Len(t, packed, 7)
	assert.Equal(t, []byte{0xC1, 0x42, 0x43, 0xC4, 0x45, 0x46, 0x47}, packed)
}

func TestPackSymbols_HighBitTheft(t *testing.T) {
	for stolen := 0; stolen < 0x80; stolen++ {
		symbols := []byte{0x11, 0x22, 0x33, 0x44, 0x55, 0x66, 0x77, byte(stolen)}
		packed := packSymbols(nil, symbols)
		require.Len(t, packed, 7)

		for i := 0; i < 7; i++ {
			assert.Equal(t, symbols[i], packed[i]&0x7F, "low bits of byte %d", i)
			wantBit := (byte(stolen) >> (6 - i)) & 1
			assert.Equal(t, wantBit, packed[i]>>7, "high bit of byte %d for stolen 0x%02X", i, stolen)
		}
	}
}

func TestPackSymbols_PartialGroup(t *testing.T) {
	for n := 0; n < 8; n++ {
		symbols := []byte("ABCDEFG")[:n]
		packed := packSymbols(nil, symbols)
		assert.Equal(t, string(symbols), string(packed), "partial group of %d symbols is copied", n)
		assert.Len(t, packed, n)
	}
}

func TestPackSymbols_MultipleGroups(t *testing.T) {
	symbols := []byte("ABCDEFGHABCDEFGHxyz")
	packed := packSymbols(nil, symbols)

	want := []byte{0xC1, 0x42, 0x43, 0xC4, 0x45, 0x46, 0x47}
	want = append(want, want...)
	want = append(want, 'x', 'y', 'z')
	assert.Equal(t, want, packed)
}

func TestSizeHelpers(t *testing.T) {
	tests := []struct {
		symbols int
		packed  int
	}{
		{0, 0}, {1, 1}, {7, 7}, {8, 7}, {9, 8}, {15, 14}, {16, 14}, {17, 15}, {800, 700},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.packed, PackedSize(tt.symbols), "PackedSize(%d)", tt.symbols)
		assert.GreaterOrEqual(t, SymbolCount(tt.packed), tt.symbols, "SymbolCount(%d)", tt.packed)
	}

	assert.Equal(t, uint32(7), PackedSize(uint32(8)))
	assert.Equal(t, int64(16), SymbolCount(int64(14)))
	assert.Equal(t, 16, MaxDecodedSize(14))
	assert.Equal(t, 14, MaxEncodedSize(8))
}
