package frame

import (
	"bytes"
	"context"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeneratorDefaults(t *testing.T) {
	g := NewGenerator()
	assert.Equal(t, 136, g.FrameSize())
}

func TestGeneratorWriteFrames(t *testing.T) {
	g := NewGenerator()

	var buf bytes.Buffer
	n, err := g.WriteFrames(context.Background(), &buf, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(3*136), n)
	assert.Equal(t, 3*136, buf.Len())

	data := buf.Bytes()
	var counter uint32
	for f := 0; f < 3; f++ {
		frame := data[f*136 : (f+1)*136]
		assert.Equal(t, DefaultGeneratorHeader, frame[:4])
		for w := 0; w < DefaultWords; w++ {
			got := binary.LittleEndian.Uint32(frame[4+w*4:])
			assert.Equal(t, counter, got)
			counter++
		}
	}
}

func TestGeneratorCustomLayout(t *testing.T) {
	g := &Generator{Header: []byte{0x55, 0xAA}, Words: 1}

	var buf bytes.Buffer
	_, err := g.WriteFrames(context.Background(), &buf, 2)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x55, 0xAA, 0, 0, 0, 0, 0x55, 0xAA, 1, 0, 0, 0}, buf.Bytes())
}

func TestGeneratorErrors(t *testing.T) {
	var buf bytes.Buffer

	_, err := NewGenerator().WriteFrames(context.Background(), &buf, -1)
	assert.Error(t, err)

	_, err = (&Generator{Words: 1}).WriteFrames(context.Background(), &buf, 1)
	assert.Error(t, err)

	_, err = (&Generator{Header: []byte{0x55}, Words: 1 << 30}).WriteFrames(context.Background(), &buf, 5)
	assert.ErrorContains(t, err, "overflow the 32-bit counter")
	assert.Zero(t, buf.Len())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = NewGenerator().WriteFrames(ctx, &buf, 10)
	assert.ErrorIs(t, err, context.Canceled)
}
