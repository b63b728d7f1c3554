// Command envelope-wav applies a smooth gain envelope to a WAV file.
//
// The envelope is a constrained cubic spline through (seconds, gain) knots,
// so fades and ducking curves never overshoot the gains you specify.
//
// Usage:
//
//	envelope-wav -points 0:0,0.5:1,9.5:1,10:0 input.wav output.wav   # fade in and out
//	envelope-wav -knots duck.yaml -gain -3 input.wav output.wav
//	envelope-wav -points 0:1,2:0.25 -fast input.wav output.wav       # float32 precision
//	envelope-wav -points 0:1,2:0.25 -parallel=false in.wav out.wav    # Disable parallel processing
//
// Before the first knot the first gain applies and after the last knot the
// last gain applies.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"

	cspline "github.com/tphakala/go-constrained-spline"
	"github.com/tphakala/go-constrained-spline/internal/knotfile"
)

const (
	// Buffer size for processing (number of frames per chunk)
	bufferSize = 65536

	// Channel count constants for fast paths
	monoChannels   = 1
	stereoChannels = 2

	// Sample format constants
	bitsPerSample16 = 16
	bitsPerSample24 = 24
	bitsPerSample32 = 32

	// Conversion constants
	maxInt16         = 32767.0
	maxInt24         = 8388607.0
	maxInt32         = 2147483647.0
	progressInterval = 10 // Print progress every N%
	decibelsPerGain  = 20.0

	// CLI defaults
	minRequiredArgs = 2
	percentScale    = 100

	// WAV encoder audio format tag for integer PCM
	wavFormatPCM = 1
)

// envelopeConfig holds the validated settings for one run.
type envelopeConfig struct {
	knots    []cspline.DataPoint
	gainDB   float64
	fast     bool
	parallel bool
	verbose  bool
}

// Validate checks the knots and the master gain.
func (c *envelopeConfig) Validate() error {
	if len(c.knots) == 0 {
		return errors.New("no envelope knots given: use -knots FILE or -points t:gain,...")
	}
	if err := cspline.ValidatePoints(c.knots); err != nil {
		return fmt.Errorf("invalid envelope: %w", err)
	}
	if math.IsNaN(c.gainDB) || math.IsInf(c.gainDB, 0) {
		return fmt.Errorf("master gain must be finite, got %v dB", c.gainDB)
	}
	return nil
}

// masterGain converts the master gain from decibels to a linear factor.
func (c *envelopeConfig) masterGain() float64 {
	return math.Pow(10, c.gainDB/decibelsPerGain)
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	// Parse command line flags
	knotsPath := flag.String("knots", "", "Envelope knot file (.yaml, .yml or .csv) with seconds,gain rows")
	inline := flag.String("points", "", "Inline envelope knots as seconds:gain,...")
	gainDB := flag.Float64("gain", 0, "Master gain in dB applied on top of the envelope")
	fast := flag.Bool("fast", false, "Use float32 precision")
	parallel := flag.Bool("parallel", true, "Enable parallel channel processing")
	verbose := flag.Bool("v", false, "Verbose output")
	flag.Parse()

	args := flag.Args()
	if len(args) < minRequiredArgs {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] input.wav output.wav\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s -points 0:0,1:1 in.wav out.wav          # 1s fade in\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -points 0:1,5:1,6:0 in.wav out.wav      # Fade out at 5s\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -knots duck.csv -gain -6 in.wav out.wav # Ducking curve, -6 dB\n", os.Args[0])
		return errors.New("insufficient arguments")
	}

	knots, err := loadKnots(*knotsPath, *inline)
	if err != nil {
		return err
	}

	cfg := &envelopeConfig{
		knots:    knots,
		gainDB:   *gainDB,
		fast:     *fast,
		parallel: *parallel,
		verbose:  *verbose,
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	inputPath := args[0]
	outputPath := args[1]

	if cfg.verbose {
		log.Printf("Input: %s", inputPath)
		log.Printf("Output: %s", outputPath)
		log.Printf("Envelope: %d knots over %gs to %gs", len(knots), knots[0].X, knots[len(knots)-1].X)
		log.Printf("Master gain: %+.2f dB (x%.4f)", cfg.gainDB, cfg.masterGain())
		if cfg.fast {
			log.Printf("Precision: float32 (fast mode)")
		} else {
			log.Printf("Precision: float64 (high precision)")
		}
	}

	// Process the file
	start := time.Now()
	var stats *envelopeStats
	if cfg.fast {
		stats, err = applyEnvelopeWAV[float32](inputPath, outputPath, cfg)
	} else {
		stats, err = applyEnvelopeWAV[float64](inputPath, outputPath, cfg)
	}
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	// Print summary
	fmt.Printf("Enveloped %s -> %s\n", filepath.Base(inputPath), filepath.Base(outputPath))
	fmt.Printf("  %d Hz (%d channels, %d-bit)\n", stats.rate, stats.channels, stats.bitDepth)
	fmt.Printf("  %s frames, %s clipped samples\n",
		humanize.Comma(stats.frames), humanize.Comma(stats.clipped))
	fmt.Printf("  Duration: %.2fs, Speed: %.1fx realtime\n",
		elapsed.Seconds(),
		float64(stats.frames)/float64(stats.rate)/elapsed.Seconds())

	return nil
}

func loadKnots(path, inline string) ([]cspline.DataPoint, error) {
	switch {
	case path != "" && inline != "":
		return nil, errors.New("use either -knots or -points, not both")
	case path != "":
		return knotfile.Load(path)
	default:
		return knotfile.ParseInline(inline)
	}
}

type envelopeStats struct {
	rate     int
	channels int
	bitDepth int
	frames   int64
	clipped  int64
}

// Float constraint for generic processing.
type Float interface {
	float32 | float64
}

func applyEnvelopeWAV[F Float](inputPath, outputPath string, cfg *envelopeConfig) (stats *envelopeStats, err error) {
	// 1. Open and validate input
	input, err := openWAVInput(inputPath, cfg.verbose)
	if err != nil {
		return nil, err
	}
	defer func() { _ = input.Close() }()

	// 2. Build the gain envelope
	env, err := newGainEnvelope[F](cfg.knots, cfg.masterGain(), input.rate)
	if err != nil {
		return nil, err
	}

	// 3. Create output writer
	output, err := createWAVOutput(outputPath, input.rate, input.bitDepth, input.channels)
	if err != nil {
		return nil, err
	}
	// Close output, capturing close errors on success path (important for WAV header updates)
	defer func() {
		if closeErr := output.Close(); err == nil {
			err = closeErr
		}
	}()

	// 4. Initialize processing buffers
	buffers := newEnvelopeBuffers[F](input.channels, input.bitDepth, input.format)

	// 5. Initialize tracking
	stats = &envelopeStats{
		rate:     input.rate,
		channels: input.channels,
		bitDepth: input.bitDepth,
	}
	progress := newProgressTracker(input.totalFrames, cfg.verbose)

	// 6. Main processing loop
	for {
		n, err := input.decoder.PCMBuffer(buffers.intBuffer)
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("failed to read audio data: %w", err)
		}
		frames := n / input.channels
		if frames == 0 {
			break
		}

		// Gains for this chunk
		gains := env.gainsInto(buffers.gains, stats.frames, frames)

		deinterleaveInto(
			buffers.intBuffer.Data,
			buffers.channelBufs,
			input.channels, frames,
			buffers.invMaxVal,
		)

		applyGains(buffers.channelBufs, gains, frames, cfg.parallel)

		outputLen, clipped := interleaveInto(
			buffers.channelBufs, frames,
			buffers.interleaved,
			buffers.outputIntBuf,
			buffers.maxVal,
		)
		stats.frames += int64(frames)
		stats.clipped += int64(clipped)

		if err := output.WriteSamples(buffers.outputIntBuf[:outputLen]); err != nil {
			return nil, fmt.Errorf("failed to write audio data: %w", err)
		}

		progress.reportIfNeeded(stats.frames)

		// Reset buffer
		buffers.intBuffer.Data = buffers.intBuffer.Data[:cap(buffers.intBuffer.Data)]
	}

	return stats, nil
}
