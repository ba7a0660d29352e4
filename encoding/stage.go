package encoding

// bitGroupStage rebuilds the stolen eighth symbol of a packed group from the high
// bits of its seven bytes.
type bitGroupStage struct {
	count  uint8 // bytes of the current group seen so far
	stolen byte  // high bits collected so far, byte i at bit (6-i)

	// pendingZero is set when a group completed with a zero stolen symbol. A trailing
	// group of seven symbols looks the same as a full group whose eighth symbol is zero.
	// The zero is fed when more bytes follow, or at the end of the stream when it
	// completes a code point in progress. Otherwise it is the padding of a seven
	// symbol tail and dropped.
	pendingZero bool
}

// push records the high bit of b.
// After the seventh byte of a group it returns the stolen symbol and true.
func (s *bitGroupStage) push(b byte) (byte, bool) {
	s.stolen |= (b & 0x80) >> (s.count + 1)
	s.count++

	if s.count < GroupBytes {
		return 0, false
	}

	sym := s.stolen
	s.count = 0
	s.stolen = 0

	return sym, true
}

func (s *bitGroupStage) reset() {
	*s = bitGroupStage{}
}

// codePointAccumulator collects the trailer symbols of a multi-symbol code point.
type codePointAccumulator struct {
	remaining uint8
	value     uint32
}

// active reports whether a code point is in progress.
func (a *codePointAccumulator) active() bool {
	return a.remaining > 0
}

// start begins a code point with the bits carried by its lead and the number of
// trailers still expected.
func (a *codePointAccumulator) start(value uint32, trailers uint8) {
	a.value = value
	a.remaining = trailers
}

// add merges a trailer symbol.
// It returns the completed code point and true once the last trailer arrives.
func (a *codePointAccumulator) add(sym byte) (uint32, bool) {
	a.remaining--
	a.value |= uint32(sym&symMask) << (7 * uint32(a.remaining))

	if a.remaining > 0 {
		return 0, false
	}

	cp := a.value
	a.value = 0

	return cp, true
}

func (a *codePointAccumulator) reset() {
	*a = codePointAccumulator{}
}
