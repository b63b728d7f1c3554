package main

import (
	"fmt"
	"log"
	"os"
	"runtime"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/remeh/sizedwaitgroup"

	cspline "github.com/tphakala/go-constrained-spline"
	"github.com/tphakala/go-constrained-spline/internal/engine"
	"github.com/tphakala/go-constrained-spline/internal/mathutil"
	"github.com/tphakala/go-constrained-spline/internal/simdops"
)

// wavInputInfo holds validated input file information.
type wavInputInfo struct {
	file        *os.File
	decoder     *wav.Decoder
	rate        int
	channels    int
	bitDepth    int
	totalFrames int64
	format      *audio.Format
}

// openWAVInput opens and validates a WAV file, returning format information.
func openWAVInput(path string, verbose bool) (*wavInputInfo, error) {
	inputFile, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}

	decoder := wav.NewDecoder(inputFile)
	if !decoder.IsValidFile() {
		_ = inputFile.Close()
		return nil, fmt.Errorf("invalid WAV file: %s", path)
	}

	format := decoder.Format()
	rate := format.SampleRate
	channels := format.NumChannels
	bitDepth := int(decoder.BitDepth)

	if verbose {
		log.Printf("Input format: %d Hz, %d channels, %d-bit", rate, channels, bitDepth)
	}

	// Get total duration for progress reporting
	duration, err := decoder.Duration()
	if err != nil {
		duration = 0
	}
	totalFrames := int64(duration.Seconds() * float64(rate))

	return &wavInputInfo{
		file:        inputFile,
		decoder:     decoder,
		rate:        rate,
		channels:    channels,
		bitDepth:    bitDepth,
		totalFrames: totalFrames,
		format:      format,
	}, nil
}

// Close closes the input file.
func (w *wavInputInfo) Close() error {
	return w.file.Close()
}

// gainEnvelope maps frame positions to linear gains.
type gainEnvelope[F Float] struct {
	spline *engine.Spline[F]
	master F
	rate   float64
	times  []F
	ops    *simdops.Ops[F]
}

// newGainEnvelope builds the envelope spline from (seconds, gain) knots.
//
// The knots are validated again after conversion to F: distinct float64
// times can round to the same float32 time, and large values can overflow.
func newGainEnvelope[F Float](knots []cspline.DataPoint, master float64, rate int) (*gainEnvelope[F], error) {
	points := make([]engine.Point[F], len(knots))
	narrowed := make([]cspline.DataPoint, len(knots))
	for i, k := range knots {
		points[i] = engine.Point[F]{X: F(k.X), Y: F(k.Y)}
		narrowed[i] = cspline.DataPoint{X: float64(points[i].X), Y: float64(points[i].Y)}
	}
	if err := cspline.ValidatePoints(narrowed); err != nil {
		return nil, fmt.Errorf("envelope does not fit %T precision: %w", F(0), err)
	}

	return &gainEnvelope[F]{
		spline: engine.NewSpline(points),
		master: F(master),
		rate:   float64(rate),
		ops:    simdops.For[F](),
	}, nil
}

// gainsInto fills dst with the gains for frames [start, start+frames) and
// returns the filled prefix.
func (e *gainEnvelope[F]) gainsInto(dst []F, start int64, frames int) []F {
	if cap(e.times) < frames {
		e.times = make([]F, frames)
	}
	times := e.times[:frames]
	for i := range times {
		times[i] = F(float64(start+int64(i)) / e.rate)
	}

	gains := e.spline.EvaluateAll(times, dst)
	if e.master != 1 {
		e.ops.Scale(gains, gains, e.master)
	}
	return gains
}

// wavOutputWriter wraps output file and encoder.
type wavOutputWriter struct {
	file    *os.File
	encoder *wav.Encoder
	buf     *audio.IntBuffer
}

// createWAVOutput creates output file and encoder.
func createWAVOutput(path string, sampleRate, bitDepth, channels int) (*wavOutputWriter, error) {
	outputFile, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}

	return &wavOutputWriter{
		file:    outputFile,
		encoder: wav.NewEncoder(outputFile, sampleRate, bitDepth, channels, wavFormatPCM),
		buf: &audio.IntBuffer{
			Format:         &audio.Format{NumChannels: channels, SampleRate: sampleRate},
			SourceBitDepth: bitDepth,
		},
	}, nil
}

// WriteSamples writes interleaved samples to the output file.
func (w *wavOutputWriter) WriteSamples(samples []int) error {
	w.buf.Data = samples
	return w.encoder.Write(w.buf)
}

// Close finalizes the WAV header and closes the file.
func (w *wavOutputWriter) Close() error {
	if err := w.encoder.Close(); err != nil {
		_ = w.file.Close()
		return fmt.Errorf("failed to finalize WAV file: %w", err)
	}
	return w.file.Close()
}

// envelopeBuffers holds all preallocated buffers for processing.
type envelopeBuffers[F Float] struct {
	intBuffer    *audio.IntBuffer
	channelBufs  [][]F
	gains        []F
	interleaved  []F
	outputIntBuf []int
	invMaxVal    float64
	maxVal       float64
}

// newEnvelopeBuffers creates and preallocates all processing buffers.
func newEnvelopeBuffers[F Float](channels, bitDepth int, format *audio.Format) *envelopeBuffers[F] {
	channelBufs := make([][]F, channels)
	for ch := range channels {
		channelBufs[ch] = make([]F, bufferSize)
	}

	maxVal := getMaxValue(bitDepth)

	return &envelopeBuffers[F]{
		intBuffer: &audio.IntBuffer{
			Data:   make([]int, bufferSize*channels),
			Format: format,
		},
		channelBufs:  channelBufs,
		gains:        make([]F, bufferSize),
		interleaved:  make([]F, bufferSize*channels),
		outputIntBuf: make([]int, bufferSize*channels),
		invMaxVal:    1.0 / maxVal,
		maxVal:       maxVal,
	}
}

// getMaxValue returns the maximum sample value for the given bit depth.
func getMaxValue(bitDepth int) float64 {
	switch bitDepth {
	case bitsPerSample16:
		return maxInt16
	case bitsPerSample24:
		return maxInt24
	case bitsPerSample32:
		return maxInt32
	default:
		return maxInt16
	}
}

// deinterleaveInto converts interleaved int samples into preallocated per-channel buffers.
func deinterleaveInto[F Float](data []int, channelBufs [][]F, numChannels, frames int, invMaxVal float64) {
	// Fast path for mono
	if numChannels == monoChannels {
		buf := channelBufs[0]
		for i := range frames {
			buf[i] = F(float64(data[i]) * invMaxVal)
		}
		return
	}

	for i := range frames {
		base := i * numChannels
		for ch := range numChannels {
			channelBufs[ch][i] = F(float64(data[base+ch]) * invMaxVal)
		}
	}
}

// applyGains multiplies the first frames samples of every channel by gains.
// With parallel set, channels are processed concurrently, bounded by the
// number of CPUs.
func applyGains[F Float](channelBufs [][]F, gains []F, frames int, parallel bool) {
	gains = gains[:frames]

	if !parallel || len(channelBufs) == monoChannels {
		for ch := range channelBufs {
			multiplyInPlace(channelBufs[ch][:frames], gains)
		}
		return
	}

	swg := sizedwaitgroup.New(min(len(channelBufs), runtime.NumCPU()))
	for ch := range channelBufs {
		swg.Add()
		go func(buf []F) {
			defer swg.Done()
			multiplyInPlace(buf, gains)
		}(channelBufs[ch][:frames])
	}
	swg.Wait()
}

func multiplyInPlace[F Float](dst, gains []F) {
	for i := range dst {
		dst[i] *= gains[i]
	}
}

// interleaveInto converts per-channel float slices into the preallocated int
// buffer dst, clamping to [-1, 1]. Stereo goes through the SIMD interleave
// into scratch first. It returns the number of elements written and the
// number of samples that had to be clipped.
func interleaveInto[F Float](channels [][]F, frames int, scratch []F, dst []int, maxVal float64) (written, clipped int) {
	numChannels := len(channels)
	if numChannels == 0 || frames == 0 {
		return 0, 0
	}
	total := frames * numChannels

	switch numChannels {
	case monoChannels:
		scratch = channels[0][:frames]
	case stereoChannels:
		simdops.For[F]().Interleave2(scratch[:total], channels[0][:frames], channels[1][:frames])
	default:
		for i := range frames {
			base := i * numChannels
			for ch := range numChannels {
				scratch[base+ch] = channels[ch][i]
			}
		}
	}

	for i, s := range scratch[:total] {
		sample := mathutil.Clamp(float64(s), -1, 1)
		if sample != float64(s) {
			clipped++
		}
		dst[i] = int(sample * maxVal)
	}
	return total, clipped
}

// progressTracker handles progress reporting.
type progressTracker struct {
	totalFrames  int64
	lastProgress int
	verbose      bool
}

// newProgressTracker creates a new progress tracker.
func newProgressTracker(totalFrames int64, verbose bool) *progressTracker {
	return &progressTracker{
		totalFrames: totalFrames,
		verbose:     verbose,
	}
}

// reportIfNeeded reports progress if threshold crossed.
func (p *progressTracker) reportIfNeeded(currentFrames int64) {
	if !p.verbose || p.totalFrames == 0 {
		return
	}

	progress := int(float64(currentFrames) / float64(p.totalFrames) * percentScale)
	if progress >= p.lastProgress+progressInterval {
		log.Printf("Progress: %d%%", progress)
		p.lastProgress = progress
	}
}
