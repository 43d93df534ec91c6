// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"math"
	"os"
	"path/filepath"
	"testing"
)

// createWAVFile builds a canonical RIFF/WAVE file around raw PCM data.
func createWAVFile(audioFormat, sampleRate, channels, bitsPerSample int, data []byte) []byte {
	buf := new(bytes.Buffer)

	blockAlign := channels * bitsPerSample / 8
	byteRate := sampleRate * blockAlign

	buf.WriteString("RIFF")
	binary.Write(buf, binary.LittleEndian, uint32(36+len(data)))
	buf.WriteString("WAVE")

	buf.WriteString("fmt ")
	binary.Write(buf, binary.LittleEndian, uint32(16))
	binary.Write(buf, binary.LittleEndian, uint16(audioFormat))
	binary.Write(buf, binary.LittleEndian, uint16(channels))
	binary.Write(buf, binary.LittleEndian, uint32(sampleRate))
	binary.Write(buf, binary.LittleEndian, uint32(byteRate))
	binary.Write(buf, binary.LittleEndian, uint16(blockAlign))
	binary.Write(buf, binary.LittleEndian, uint16(bitsPerSample))

	buf.WriteString("data")
	binary.Write(buf, binary.LittleEndian, uint32(len(data)))
	buf.Write(data)

	return buf.Bytes()
}

func pcm16(samples ...int16) []byte {
	buf := new(bytes.Buffer)
	for _, s := range samples {
		binary.Write(buf, binary.LittleEndian, s)
	}
	return buf.Bytes()
}

func readAll(t *testing.T, data []byte) ([]float32, int, int) {
	t.Helper()

	src, err := Decoder{}.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	defer src.Close()

	var out []float32
	buf := make([]float32, 64)
	for {
		n, err := src.ReadSamples(buf)
		out = append(out, buf[:n]...)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			t.Fatalf("ReadSamples() error = %v", err)
		}
	}

	return out, src.SampleRate(), src.Channels()
}

func TestDecoder_Mono16(t *testing.T) {
	t.Parallel()

	data := createWAVFile(1, 16000, 1, 16, pcm16(0, 16384, -16384, -32768))
	got, rate, channels := readAll(t, data)

	if rate != 16000 || channels != 1 {
		t.Fatalf("format = %d Hz/%d ch, want 16000 Hz/1 ch", rate, channels)
	}

	want := []float32{0, 0.5, -0.5, -1}
	if len(got) != len(want) {
		t.Fatalf("got %d samples, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("sample %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestDecoder_Stereo16(t *testing.T) {
	t.Parallel()

	data := createWAVFile(1, 44100, 2, 16, pcm16(100, -100, 200, -200, 300, -300))
	got, rate, channels := readAll(t, data)

	if rate != 44100 || channels != 2 {
		t.Fatalf("format = %d Hz/%d ch, want 44100 Hz/2 ch", rate, channels)
	}
	if len(got) != 6 {
		t.Fatalf("got %d samples, want 6", len(got))
	}
	if got[0] <= 0 || got[1] >= 0 {
		t.Errorf("interleaving lost: L=%v R=%v", got[0], got[1])
	}
}

func TestDecoder_NonSeekableInput(t *testing.T) {
	t.Parallel()

	data := createWAVFile(1, 8000, 1, 16, pcm16(1, 2, 3))
	src, err := Decoder{}.Decode(io.MultiReader(bytes.NewReader(data)))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if src.SampleRate() != 8000 {
		t.Errorf("SampleRate() = %d, want 8000", src.SampleRate())
	}
}

func TestDecoder_Rejects(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data []byte
		want error
	}{
		{
			name: "not riff",
			data: []byte("this is definitely not a wave file at all, just text padding"),
			want: ErrNotWavFile,
		},
		{
			name: "ieee float",
			data: createWAVFile(3, 44100, 1, 32, make([]byte, 16)),
			want: ErrOnlyPCMSupported,
		},
		{
			name: "8-bit",
			data: createWAVFile(1, 8000, 1, 8, make([]byte, 16)),
			want: ErrUnsupportedBitDepth,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Decoder{}.Decode(bytes.NewReader(tt.data))
			if !errors.Is(err, tt.want) {
				t.Errorf("Decode() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestEncode_RoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "out.wav")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}

	in := []float32{0, 0.25, -0.25, 0.5, -0.5, 0.75}
	if err := Encode(f, 22050, 2, in); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	got, rate, channels := readAll(t, data)
	if rate != 22050 || channels != 2 {
		t.Fatalf("format = %d Hz/%d ch, want 22050 Hz/2 ch", rate, channels)
	}
	if len(got) != len(in) {
		t.Fatalf("got %d samples, want %d", len(got), len(in))
	}
	for i := range in {
		if math.Abs(float64(got[i]-in[i])) > 1.0/16384 {
			t.Errorf("sample %d = %v, want %v", i, got[i], in[i])
		}
	}
}

func TestEncode_InvalidFormat(t *testing.T) {
	t.Parallel()

	f, err := os.Create(filepath.Join(t.TempDir(), "bad.wav"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	if err := Encode(f, 0, 2, nil); !errors.Is(err, ErrInvalidFormat) {
		t.Errorf("Encode() error = %v, want %v", err, ErrInvalidFormat)
	}
}

func BenchmarkSource_ReadSamples(b *testing.B) {
	samples := make([]int16, 44100)
	for i := range samples {
		samples[i] = int16(math.Sin(float64(i)*0.05) * 20000)
	}
	data := createWAVFile(1, 44100, 1, 16, pcm16(samples...))
	buf := make([]float32, 4096)

	b.ReportAllocs()
	for range b.N {
		src, err := Decoder{}.Decode(bytes.NewReader(data))
		if err != nil {
			b.Fatal(err)
		}
		for {
			if _, err := src.ReadSamples(buf); err != nil {
				break
			}
		}
	}
}
