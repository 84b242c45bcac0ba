package ebitenbooth

import (
	"encoding/binary"
	"math"

	"github.com/hajimehoshi/ebiten/v2/audio"
)

const (
	sampleRate    = 48000
	beepFrequency = 1760
	beepSeconds   = 0.08
)

// Beep is the shutter cue played on every capture.
type Beep struct {
	ctx *audio.Context
	pcm []byte
}

// NewBeep builds the cue for ctx.
func NewBeep(ctx *audio.Context) *Beep {
	return &Beep{ctx: ctx, pcm: sinePCM(ctx.SampleRate(), beepFrequency, beepSeconds)}
}

// Play starts the cue and returns immediately.
func (b *Beep) Play() {
	if b == nil || b.ctx == nil {
		return
	}
	b.ctx.NewPlayerFromBytes(b.pcm).Play()
}

// sinePCM renders a sine tone as 16-bit little-endian stereo with a linear
// fade out so the cue ends without a click.
func sinePCM(rate int, freq, seconds float64) []byte {
	n := int(float64(rate) * seconds)
	buf := make([]byte, n*4)
	for i := 0; i < n; i++ {
		fade := 1 - float64(i)/float64(n)
		v := int16(math.Sin(2*math.Pi*freq*float64(i)/float64(rate)) * fade * 0.4 * math.MaxInt16)
		binary.LittleEndian.PutUint16(buf[i*4:], uint16(v))
		binary.LittleEndian.PutUint16(buf[i*4+2:], uint16(v))
	}
	return buf
}
