package encoding

import (
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/arloliu/dense7/errs"
)

type StreamDecodeSuite struct {
	suite.Suite

	rng *rand.Rand
	dec *Decoder
}

func TestStreamDecodeSuite(t *testing.T) {
	suite.Run(t, new(StreamDecodeSuite))
}

func (s *StreamDecodeSuite) SetupTest() {
	s.rng = rand.New(rand.NewPCG(7, 8))

	dec, err := NewDecoder()
	s.Require().NoError(err)
	s.dec = dec
}

// randomText builds text drawn from every symbol class.
func (s *StreamDecodeSuite) randomText(n int) string {
	alphabet := []rune{
		'a', 'Z', ' ', '~', '\t', '\n', '\r', 0x00, 0x07, 0x08, 0x01, 0x1b, 0x7f,
		'é', 'ß', 0x7ff, '€', '語', 0xffff, '😀', 0x10000, 0x10ffff,
	}

	var sb strings.Builder
	for i := 0; i < n; i++ {
		sb.WriteRune(alphabet[s.rng.IntN(len(alphabet))])
	}

	return sb.String()
}

// splitRandom cuts data into chunks of random sizes, empty chunks included.
func (s *StreamDecodeSuite) splitRandom(data []byte) [][]byte {
	var chunks [][]byte
	for len(data) > 0 {
		n := s.rng.IntN(min(len(data), 17) + 1)
		chunks = append(chunks, data[:n])
		data = data[n:]
	}

	return chunks
}

func (s *StreamDecodeSuite) streamDecode(data []byte, chunks [][]byte) (string, error) {
	if err := s.dec.PrepareDecode(len(data)); err != nil {
		return "", err
	}

	for i, chunk := range chunks {
		if err := s.dec.PartialDecode(chunk, i == len(chunks)-1); err != nil {
			return "", err
		}
	}

	return s.dec.FinishDecode()
}

func (s *StreamDecodeSuite) TestEquivalentToOneShot() {
	for i := 0; i < 300; i++ {
		text := s.randomText(s.rng.IntN(64))
		data := encodeForTest(s.T(), text)

		want, err := s.dec.Decode(data, len(data))
		s.Require().NoError(err)
		s.Require().Equal(text, want)

		got, err := s.streamDecode(data, s.splitRandom(data))
		s.Require().NoError(err, "text %q", text)
		s.Require().Equal(want, got)
	}
}

func (s *StreamDecodeSuite) TestSingleByteChunks() {
	text := s.randomText(200)
	data := encodeForTest(s.T(), text)

	chunks := make([][]byte, len(data))
	for i := range data {
		chunks[i] = data[i : i+1]
	}

	got, err := s.streamDecode(data, chunks)
	s.Require().NoError(err)
	s.Equal(text, got)
}

func (s *StreamDecodeSuite) TestFinalFlagOptional() {
	data := encodeForTest(s.T(), "abcd😀")

	s.Require().NoError(s.dec.PrepareDecode(len(data)))
	s.Require().NoError(s.dec.PartialDecode(data[:3], false))
	s.Require().NoError(s.dec.PartialDecode(data[3:], false))

	got, err := s.dec.FinishDecode()
	s.Require().NoError(err)
	s.Equal("abcd😀", got)
}

func (s *StreamDecodeSuite) TestPrepareWhileBusy() {
	s.Require().NoError(s.dec.PrepareDecode(4))
	s.Require().ErrorIs(s.dec.PrepareDecode(4), errs.ErrDecoderBusy)

	_, err := s.dec.Decode([]byte("ab"), 2)
	s.Require().ErrorIs(err, errs.ErrDecoderBusy)

	// the stream in progress is unaffected
	s.Require().NoError(s.dec.PartialDecode([]byte("ab"), true))
	got, err := s.dec.FinishDecode()
	s.Require().NoError(err)
	s.Equal("ab", got)
}

func (s *StreamDecodeSuite) TestNotPrepared() {
	s.Require().ErrorIs(s.dec.PartialDecode([]byte("a"), true), errs.ErrDecoderNotPrepared)

	_, err := s.dec.FinishDecode()
	s.Require().ErrorIs(err, errs.ErrDecoderNotPrepared)
}

func (s *StreamDecodeSuite) TestExceedsPrepared() {
	s.Require().NoError(s.dec.PrepareDecode(2))
	err := s.dec.PartialDecode([]byte("abc"), true)
	s.Require().ErrorIs(err, errs.ErrExceedsPrepared)
	s.Require().ErrorIs(err, errs.ErrDecoding)

	// the decoder was reset by the error
	s.Require().ErrorIs(s.dec.PartialDecode([]byte("a"), true), errs.ErrDecoderNotPrepared)
}

func (s *StreamDecodeSuite) TestChunkAfterFinal() {
	s.Require().NoError(s.dec.PrepareDecode(10))
	s.Require().NoError(s.dec.PartialDecode([]byte("ab"), true))
	s.Require().NoError(s.dec.PartialDecode(nil, true), "empty chunks are accepted")
	s.Require().ErrorIs(s.dec.PartialDecode([]byte("c"), false), errs.ErrExceedsPrepared)
}

func (s *StreamDecodeSuite) TestFewerBytesThanPrepared() {
	s.Require().NoError(s.dec.PrepareDecode(100))
	s.Require().NoError(s.dec.PartialDecode([]byte("short"), true))

	got, err := s.dec.FinishDecode()
	s.Require().NoError(err)
	s.Equal("short", got)
}

func (s *StreamDecodeSuite) TestTruncatedStream() {
	data := encodeForTest(s.T(), "xy€")

	s.Require().NoError(s.dec.PrepareDecode(len(data)))
	s.Require().NoError(s.dec.PartialDecode(data[:len(data)-1], true))

	_, err := s.dec.FinishDecode()
	s.Require().ErrorIs(err, errs.ErrTruncatedInput)

	got, err := s.dec.Decode(data, len(data))
	s.Require().NoError(err)
	s.Equal("xy€", got)
}

func (s *StreamDecodeSuite) TestErrorMidStreamResets() {
	s.Require().NoError(s.dec.PrepareDecode(4))
	s.Require().ErrorIs(s.dec.PartialDecode([]byte{'a', 0x16}, false), errs.ErrInvalidSymbol)

	s.Require().NoError(s.dec.PrepareDecode(2), "a new stream can start after an error")
	s.Require().NoError(s.dec.PartialDecode([]byte("ok"), true))
	got, err := s.dec.FinishDecode()
	s.Require().NoError(err)
	s.Equal("ok", got)
}
