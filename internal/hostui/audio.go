package hostui

import (
	"bytes"
	"encoding/binary"
	"io"

	"github.com/hajimehoshi/ebiten/v2/audio"

	"nescore/internal/console"
)

// audioStream adapts Console.DrainAudio's float32 samples into the
// signed 16-bit stereo PCM stream ebiten's audio player expects, mixing
// the APU's mono output to both channels.
type audioStream struct {
	c   *console.Console
	buf bytes.Buffer
}

func newAudioStream(c *console.Console) *audioStream { return &audioStream{c: c} }

// Read satisfies io.Reader by draining any samples the APU has mixed
// since the last call and appending them as interleaved stereo PCM.
func (s *audioStream) Read(p []byte) (int, error) {
	if s.buf.Len() == 0 {
		for _, sample := range s.c.DrainAudio() {
			v := int16(clampSample(sample) * 32767)
			var frame [4]byte
			binary.LittleEndian.PutUint16(frame[0:2], uint16(v))
			binary.LittleEndian.PutUint16(frame[2:4], uint16(v))
			s.buf.Write(frame[:])
		}
	}
	if s.buf.Len() == 0 {
		// Nothing mixed yet this call; report silence rather than
		// blocking, so the player's ring buffer doesn't stall.
		for i := range p {
			p[i] = 0
		}
		return len(p), nil
	}
	return s.buf.Read(p)
}

func clampSample(v float32) float32 {
	switch {
	case v > 1:
		return 1
	case v < -1:
		return -1
	default:
		return v
	}
}

// audioPlayer owns the ebiten audio context and streaming player that
// feeds it from the running Console.
type audioPlayer struct {
	player *audio.Player
}

// newAudioPlayer starts streaming playback of c's mixed output at
// sampleRate. The returned player must be closed when the App exits.
func newAudioPlayer(c *console.Console, sampleRate int) (*audioPlayer, error) {
	ctx := audio.NewContext(sampleRate)
	p, err := ctx.NewPlayer(newInfiniteReader(newAudioStream(c)))
	if err != nil {
		return nil, err
	}
	p.Play()
	return &audioPlayer{player: p}, nil
}

func (a *audioPlayer) Close() error {
	if a.player == nil {
		return nil
	}
	return a.player.Close()
}

// infiniteReader never returns io.EOF, matching what audio.Player expects
// of a live stream rather than a fixed-length clip.
type infiniteReader struct {
	r io.Reader
}

func newInfiniteReader(r io.Reader) *infiniteReader { return &infiniteReader{r: r} }

func (r *infiniteReader) Read(p []byte) (int, error) {
	n, err := r.r.Read(p)
	if err == io.EOF {
		err = nil
	}
	return n, err
}
