// Package encoding implements Dense7, a reversible text encoding that is denser than
// UTF-8 for mostly-ASCII text.
//
// # Symbols
//
// Text is first mapped to 7-bit symbols. Each code point becomes one to four symbols:
//
//	Input                          Symbols
//	0x20-0x7E printable ASCII      the value
//	0x09-0x0D tab..CR              value + 0x10
//	NUL, BEL, BS                   0x7F, 0x1F, 0x1E
//	other ASCII controls           0x00, value
//	U+0080-U+07FF                  cp>>7 (0x01-0x0F), cp&0x7F
//	U+0800-U+FFFF                  0x10|cp>>14, (cp>>7)&0x7F, cp&0x7F
//	U+10000-U+10FFFF               0x18, cp>>14&0x7F, (cp>>7)&0x7F, cp&0x7F
//
// Symbols 0x14-0x17 are never a lead and are rejected by the decoder.
//
// # Packing
//
// Every run of eight symbols is packed into seven bytes. Byte i holds symbol i in its
// low seven bits and bit (6-i) of the eighth symbol in its high bit:
//
//	symbols: s0 s1 s2 s3 s4 s5 s6 s7
//	bytes:   s0|b6 s1|b5 s2|b4 s3|b3 s4|b2 s5|b1 s6|b0    (bN = bit N of s7, shifted to 0x80)
//
// A trailing run of fewer than eight symbols is written one symbol per byte. Packed
// output has no header or length prefix; the caller keeps the byte count.
//
// # Usage
//
// Encoders and decoders are stateful and reused through explicit pools:
//
//	encoders, _ := encoding.NewEncoderPool()
//	decoders, _ := encoding.NewDecoderPool()
//
//	enc := encoders.GetOrCreate()
//	res, err := enc.Encode("hello, world")
//	data := bytes.Clone(res.Bytes())
//	enc.Close()
//
//	dec := decoders.GetOrCreate()
//	text, err := dec.Decode(data, len(data))
//	dec.Close()
//
// A Decoder can also consume its input in chunks with PrepareDecode, PartialDecode and
// FinishDecode, which yields the same text as a single Decode call.
//
// # Errors
//
// Every encoding failure wraps errs.ErrEncoding and every decoding failure wraps
// errs.ErrDecoding. A failed call leaves the instance reset and ready for reuse.
//
// # Thread Safety
//
// Encoder and Decoder are not thread-safe. EncoderPool and DecoderPool are.
package encoding
