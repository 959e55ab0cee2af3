package audio

import (
	"io"

	"github.com/gopxl/beep"
)

const bytesPerFrame = 4 // 16-bit little endian, two channels

// Reader turns a finite beep stream into the PCM byte stream ebiten plays.
type Reader struct {
	s    beep.Streamer
	buf  [][2]float64
	done bool
}

func NewReader(s beep.Streamer) *Reader {
	return &Reader{s: s, buf: make([][2]float64, 512)}
}

func (r *Reader) Read(p []byte) (int, error) {
	if r.done {
		return 0, io.EOF
	}
	frames := len(p) / bytesPerFrame
	if frames == 0 {
		return 0, nil
	}
	if frames > len(r.buf) {
		frames = len(r.buf)
	}

	n, ok := r.s.Stream(r.buf[:frames])
	for i := 0; i < n; i++ {
		l, rt := pcm(r.buf[i][0]), pcm(r.buf[i][1])
		p[i*4] = byte(l)
		p[i*4+1] = byte(l >> 8)
		p[i*4+2] = byte(rt)
		p[i*4+3] = byte(rt >> 8)
	}
	if !ok || n == 0 {
		r.done = true
		if err := r.s.Err(); err != nil {
			return n * bytesPerFrame, err
		}
		if n == 0 {
			return 0, io.EOF
		}
	}
	return n * bytesPerFrame, nil
}

func pcm(v float64) int16 {
	v = max(-1, min(1, v))
	return int16(v * 32767)
}
