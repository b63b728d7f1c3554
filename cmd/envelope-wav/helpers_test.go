package main

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/audio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cspline "github.com/tphakala/go-constrained-spline"
	"github.com/tphakala/go-constrained-spline/internal/testutil"
)

// writeTestWAV writes an interleaved 16-bit WAV file and returns its path.
func writeTestWAV(t *testing.T, rate, channels int, samples []int) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "input.wav")

	out, err := createWAVOutput(path, rate, bitsPerSample16, channels)
	require.NoError(t, err)
	require.NoError(t, out.WriteSamples(samples))
	require.NoError(t, out.Close())
	return path
}

// readTestWAV decodes a whole WAV file.
func readTestWAV(t *testing.T, path string) (*wavInputInfo, []int) {
	t.Helper()
	in, err := openWAVInput(path, false)
	require.NoError(t, err)
	defer func() { _ = in.Close() }()

	buf, err := in.decoder.FullPCMBuffer()
	require.NoError(t, err)
	return in, buf.Data
}

func constantSamples(n int, value int) []int {
	s := make([]int, n)
	for i := range s {
		s[i] = value
	}
	return s
}

// =============================================================================
// Input and output
// =============================================================================

func TestOpenWAVInput_FileNotFound(t *testing.T) {
	_, err := openWAVInput("/nonexistent/file.wav", false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open input file")
}

func TestOpenWAVInput_InvalidWAV(t *testing.T) {
	tmpDir := t.TempDir()
	invalidFile := filepath.Join(tmpDir, "invalid.wav")
	err := os.WriteFile(invalidFile, []byte("not a wav file"), 0o644)
	require.NoError(t, err)

	_, err = openWAVInput(invalidFile, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid WAV file")
}

func TestCreateWAVOutput_InvalidDirectory(t *testing.T) {
	_, err := createWAVOutput("/nonexistent/dir/output.wav", 48000, 16, 2)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create output file")
}

func TestWAVOutput_RoundTrip(t *testing.T) {
	samples := []int{0, 100, -100, 32767, -32768, 5}
	path := writeTestWAV(t, 8000, stereoChannels, samples)

	in, got := readTestWAV(t, path)
	assert.Equal(t, 8000, in.rate)
	assert.Equal(t, stereoChannels, in.channels)
	assert.Equal(t, bitsPerSample16, in.bitDepth)
	assert.Equal(t, samples, got)
}

func TestNewEnvelopeBuffers(t *testing.T) {
	format := &audio.Format{SampleRate: 44100, NumChannels: 2}
	buffers := newEnvelopeBuffers[float64](2, 16, format)

	require.NotNil(t, buffers)
	assert.Len(t, buffers.channelBufs, 2)
	assert.Len(t, buffers.gains, bufferSize)
	assert.Len(t, buffers.intBuffer.Data, bufferSize*2)
	assert.InDelta(t, maxInt16, buffers.maxVal, 0)
	assert.InDelta(t, 1/maxInt16, buffers.invMaxVal, 1e-15)
}

// =============================================================================
// Gain envelope
// =============================================================================

func TestGainEnvelope_Gains(t *testing.T) {
	knots := []cspline.DataPoint{{X: 0, Y: 0}, {X: 1, Y: 1}}
	env, err := newGainEnvelope[float64](knots, 2, 10)
	require.NoError(t, err)

	dst := make([]float64, 4)
	gains := env.gainsInto(dst, 8, 4)

	// Frames 8..11 at 10 Hz are 0.8s..1.1s; the ramp is linear then flat
	assert.InDeltaSlice(t, []float64{1.6, 1.8, 2, 2}, gains, 1e-9)
	assert.Same(t, &dst[0], &gains[0])
}

func TestGainEnvelope_Float32(t *testing.T) {
	knots := []cspline.DataPoint{{X: 0, Y: 1}, {X: 1, Y: 0}, {X: 2, Y: 1}}
	env, err := newGainEnvelope[float32](knots, 1, 4)
	require.NoError(t, err)

	gains := env.gainsInto(make([]float32, 9), 0, 9)
	for i, g := range gains {
		assert.GreaterOrEqual(t, g, float32(-1e-6), "frame %d", i)
		assert.LessOrEqual(t, g, float32(1+1e-6), "frame %d", i)
	}
	assert.InDelta(t, 0, float64(gains[4]), 1e-6)
}

// TestGainEnvelope_MinutesIntoFile checks gains for a chunk that starts long
// after the start of the file, in both precisions.
func TestGainEnvelope_MinutesIntoFile(t *testing.T) {
	const rate = 48000

	for _, startSec := range []float64{600, 3600} {
		knots := []cspline.DataPoint{
			{X: startSec, Y: 1},
			{X: startSec + 1, Y: 0.5},
			{X: startSec + 2, Y: 1},
			{X: startSec + 3, Y: 0.25},
		}
		start := int64(startSec) * rate
		frames := 2*rate + 1

		t.Run(fmt.Sprintf("float64 at %gs", startSec), func(t *testing.T) {
			env, err := newGainEnvelope[float64](knots, 1, rate)
			require.NoError(t, err)

			gains := env.gainsInto(make([]float64, frames), start, frames)
			assert.InDelta(t, 1.0, gains[0], 1e-9)
			assert.InDelta(t, 0.5, gains[rate], 1e-9)
			assert.InDelta(t, 1.0, gains[2*rate], 1e-9)
			testutil.AssertAllInRange(t, gains, 0.5-1e-9, 1+1e-9)
		})

		t.Run(fmt.Sprintf("float32 at %gs", startSec), func(t *testing.T) {
			env, err := newGainEnvelope[float32](knots, 1, rate)
			require.NoError(t, err)

			gains := env.gainsInto(make([]float32, frames), start, frames)
			assert.InDelta(t, 1.0, float64(gains[0]), 1e-4)
			assert.InDelta(t, 0.5, float64(gains[rate]), 1e-4)
			assert.InDelta(t, 1.0, float64(gains[2*rate]), 1e-4)
			for i, g := range gains {
				assert.GreaterOrEqual(t, g, float32(0.5-1e-4), "frame %d", i)
				assert.LessOrEqual(t, g, float32(1+1e-4), "frame %d", i)
			}
		})
	}
}

func TestGainEnvelope_RejectsKnotsCollapsedByFloat32(t *testing.T) {
	knots := []cspline.DataPoint{{X: 0, Y: 1}, {X: 1, Y: 0}, {X: 1 + 1e-9, Y: 1}}

	_, err := newGainEnvelope[float64](knots, 1, 48000)
	require.NoError(t, err)

	_, err = newGainEnvelope[float32](knots, 1, 48000)
	assert.ErrorIs(t, err, cspline.ErrNotIncreasing)
}

func TestApplyEnvelopeWAV_FastRejectsCollapsedKnots(t *testing.T) {
	input := writeTestWAV(t, 100, monoChannels, constantSamples(10, 1000))
	output := filepath.Join(t.TempDir(), "output.wav")

	cfg := &envelopeConfig{knots: []cspline.DataPoint{{X: 0, Y: 1}, {X: 1, Y: 0}, {X: 1 + 1e-9, Y: 1}}, fast: true}
	require.NoError(t, cfg.Validate())

	_, err := applyEnvelopeWAV[float32](input, output, cfg)
	assert.ErrorIs(t, err, cspline.ErrNotIncreasing)
}

func TestApplyGains_ParallelMatchesSequential(t *testing.T) {
	gains := []float64{0, 0.5, 1, 2}
	makeBufs := func() [][]float64 {
		return [][]float64{{1, 1, 1, 1}, {-1, -1, -1, -1}, {0.5, 0.5, 0.5, 0.5}}
	}

	seq := makeBufs()
	applyGains(seq, gains, 4, false)
	par := makeBufs()
	applyGains(par, gains, 4, true)

	assert.Equal(t, seq, par)
	assert.Equal(t, []float64{0, -0.5, -1, -2}, par[1])
}

func TestApplyGains_OnlyFirstFrames(t *testing.T) {
	bufs := [][]float64{{1, 1, 1}}
	applyGains(bufs, []float64{0, 0, 0}, 2, true)
	assert.Equal(t, []float64{0, 0, 1}, bufs[0])
}

// =============================================================================
// Interleaving
// =============================================================================

func TestDeinterleaveInto_Stereo(t *testing.T) {
	bufs := [][]float64{make([]float64, 2), make([]float64, 2)}
	deinterleaveInto([]int{2, -2, 4, -4}, bufs, 2, 2, 0.5)

	assert.Equal(t, []float64{1, 2}, bufs[0])
	assert.Equal(t, []float64{-1, -2}, bufs[1])
}

func TestInterleaveInto(t *testing.T) {
	tests := []struct {
		name        string
		channels    [][]float64
		want        []int
		wantClipped int
	}{
		{"mono", [][]float64{{0.5, -0.5}}, []int{50, -50}, 0},
		{"stereo", [][]float64{{0.1, 0.2}, {-0.1, 2}}, []int{10, -10, 20, 100}, 1},
		{"three channels", [][]float64{{0.1}, {0.2}, {-3}}, []int{10, 20, -100}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			frames := len(tt.channels[0])
			scratch := make([]float64, frames*len(tt.channels))
			dst := make([]int, len(scratch))

			n, clipped := interleaveInto(tt.channels, frames, scratch, dst, 100)
			assert.Equal(t, len(tt.want), n)
			assert.Equal(t, tt.wantClipped, clipped)
			for i := range tt.want {
				assert.InDelta(t, tt.want[i], dst[i], 1, "sample %d", i)
			}
		})
	}
}

// =============================================================================
// Progress
// =============================================================================

func TestProgressTracker_VerboseMode(t *testing.T) {
	tracker := newProgressTracker(1000, true)
	require.NotNil(t, tracker)

	assert.Equal(t, int64(1000), tracker.totalFrames)
	assert.True(t, tracker.verbose)
	assert.Equal(t, 0, tracker.lastProgress)

	tracker.reportIfNeeded(500)
	assert.Equal(t, 50, tracker.lastProgress)
}

func TestProgressTracker_NonVerboseMode(t *testing.T) {
	tracker := newProgressTracker(1000, false)
	tracker.reportIfNeeded(500)
	assert.Equal(t, 0, tracker.lastProgress)
}

func TestProgressTracker_ZeroFrames(t *testing.T) {
	tracker := newProgressTracker(0, true)
	tracker.reportIfNeeded(100)
	assert.Equal(t, 0, tracker.lastProgress)
}

// =============================================================================
// End to end
// =============================================================================

func TestApplyEnvelopeWAV_FadeIn(t *testing.T) {
	const rate = 1000
	input := writeTestWAV(t, rate, monoChannels, constantSamples(rate, 16000))
	output := filepath.Join(t.TempDir(), "output.wav")

	cfg := &envelopeConfig{knots: []cspline.DataPoint{{X: 0, Y: 0}, {X: 1, Y: 1}}, parallel: true}
	require.NoError(t, cfg.Validate())

	stats, err := applyEnvelopeWAV[float64](input, output, cfg)
	require.NoError(t, err)
	assert.Equal(t, int64(rate), stats.frames)
	assert.Equal(t, int64(0), stats.clipped)

	_, got := readTestWAV(t, output)
	require.Len(t, got, rate)
	for i, s := range got {
		want := 16000 * float64(i) / rate
		assert.InDelta(t, want, float64(s), 2, "frame %d", i)
	}
}

func TestApplyEnvelopeWAV_StereoMasterGain(t *testing.T) {
	const rate = 100
	samples := make([]int, 2*rate)
	for i := range rate {
		samples[2*i] = 10000
		samples[2*i+1] = -10000
	}
	input := writeTestWAV(t, rate, stereoChannels, samples)
	output := filepath.Join(t.TempDir(), "output.wav")

	cfg := &envelopeConfig{
		knots:  []cspline.DataPoint{{X: 0, Y: 1}},
		gainDB: -20 * math.Log10(2), // halve
		fast:   true,
	}
	require.NoError(t, cfg.Validate())

	stats, err := applyEnvelopeWAV[float32](input, output, cfg)
	require.NoError(t, err)
	assert.Equal(t, int64(rate), stats.frames)

	_, got := readTestWAV(t, output)
	require.Len(t, got, 2*rate)
	for i := range rate {
		assert.InDelta(t, 5000, got[2*i], 2, "left frame %d", i)
		assert.InDelta(t, -5000, got[2*i+1], 2, "right frame %d", i)
	}
}

func TestApplyEnvelopeWAV_Clipping(t *testing.T) {
	input := writeTestWAV(t, 100, monoChannels, constantSamples(10, 30000))
	output := filepath.Join(t.TempDir(), "output.wav")

	cfg := &envelopeConfig{knots: []cspline.DataPoint{{X: 0, Y: 2}}}
	stats, err := applyEnvelopeWAV[float64](input, output, cfg)
	require.NoError(t, err)
	assert.Equal(t, int64(10), stats.clipped)

	_, got := readTestWAV(t, output)
	for _, s := range got {
		assert.Equal(t, int(maxInt16), s)
	}
}

func TestEnvelopeConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     envelopeConfig
		wantErr bool
	}{
		{"valid", envelopeConfig{knots: []cspline.DataPoint{{X: 0, Y: 1}}}, false},
		{"no knots", envelopeConfig{}, true},
		{"unsorted", envelopeConfig{knots: []cspline.DataPoint{{X: 1, Y: 1}, {X: 0, Y: 1}}}, true},
		{"infinite gain", envelopeConfig{knots: []cspline.DataPoint{{X: 0, Y: 1}}, gainDB: math.Inf(1)}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}

	cfg := envelopeConfig{gainDB: 20}
	assert.InDelta(t, 10.0, cfg.masterGain(), 1e-12)
}
