package palette

import (
	"bytes"
	"encoding/binary"
	"image/color"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chunk(id string, body ...[]byte) []byte {
	data := bytes.Join(body, nil)
	res := append([]byte(id), binary.LittleEndian.AppendUint32(nil, uint32(len(data)))...)
	res = append(res, data...)
	if len(data)%2 == 1 {
		res = append(res, 0)
	}
	return res
}

func palChunk(version uint16, count int, cols ...color.RGBA) []byte {
	body := binary.LittleEndian.AppendUint16(nil, version)
	body = binary.LittleEndian.AppendUint16(body, uint16(count))
	for _, c := range cols {
		body = append(body, c.R, c.G, c.B, 0)
	}
	return chunk("data", body)
}

var (
	red   = color.RGBA{R: 0xff, A: 0xff}
	green = color.RGBA{G: 0xff, A: 0xff}
	blue  = color.RGBA{B: 0xff, A: 0xff}
)

func TestReadFrom(t *testing.T) {
	stream := chunk("RIFF",
		[]byte("PAL "),
		palChunk(palVersion, 1, red),
		chunk("LIST", []byte("PAL "), palChunk(palVersion, 2, green, blue)),
	)

	pals, err := ReadFrom(bytes.NewReader(stream))
	require.NoError(t, err)

	want := []color.Palette{{red}, {green, blue}}
	if diff := cmp.Diff(want, pals); diff != "" {
		t.Errorf("ReadFrom() mismatch (-want +got):\n%s", diff)
	}
}

func TestReadFromErrors(t *testing.T) {
	tests := map[string][]byte{
		"not riff":     []byte("GIF89a"),
		"form type":    chunk("RIFF", []byte("WAVE"), palChunk(palVersion, 1, red)),
		"version":      chunk("RIFF", []byte("PAL "), palChunk(0x0100, 1, red)),
		"short":        chunk("RIFF", []byte("PAL "), palChunk(palVersion, 3, red)),
		"chunk type":   chunk("RIFF", []byte("PAL "), chunk("fmt ", []byte{1, 2})),
		"list type":    chunk("RIFF", []byte("PAL "), chunk("LIST", []byte("INFO"))),
		"short header": chunk("RIFF", []byte("PAL "), chunk("data", []byte{0, 3})),
	}

	for name, stream := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ReadFrom(bytes.NewReader(stream))
			assert.Error(t, err)
		})
	}
}

func TestWriteTo(t *testing.T) {
	pals := []color.Palette{
		{red, green},
		{color.NRGBA{R: 0x12, G: 0x34, B: 0x56, A: 0x80}},
	}

	var buf bytes.Buffer
	n, err := WriteTo(&buf, pals)
	require.NoError(t, err)
	assert.EqualValues(t, 3, n)

	want := chunk("RIFF",
		[]byte("PAL "),
		palChunk(palVersion, 2, red, green),
		palChunk(palVersion, 1, color.RGBA{R: 0x12, G: 0x34, B: 0x56}),
	)
	assert.Equal(t, want, buf.Bytes())

	got, err := ReadFrom(&buf)
	require.NoError(t, err)
	want2 := []color.Palette{
		{red, green},
		{color.RGBA{R: 0x12, G: 0x34, B: 0x56, A: 0xff}},
	}
	if diff := cmp.Diff(want2, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestIndexRIFF(t *testing.T) {
	src := New()
	require.NoError(t, src.Add("#ff0000", "rgb(0, 255, 0)", "rgba(0, 0, 255, 0.5)"))

	var buf bytes.Buffer
	n, err := src.WriteRIFF(&buf)
	require.NoError(t, err)
	assert.EqualValues(t, 3, n)

	dst := New()
	n, err = dst.ReadRIFF(&buf)
	require.NoError(t, err)
	assert.EqualValues(t, 3, n)

	got, err := dst.To(color.RGBAModel)
	require.NoError(t, err)
	if diff := cmp.Diff(color.Palette{red, green, blue}, got); diff != "" {
		t.Errorf("ReadRIFF() mismatch (-want +got):\n%s", diff)
	}

	near, err := dst.Near("#FF1111", 1)
	require.NoError(t, err)
	assert.Equal(t, []any{red}, near)
}
