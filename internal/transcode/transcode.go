package transcode

import (
	"fmt"
	"image"
	"image/color"
	"os"

	"github.com/disintegration/imaging"
)

// Options bounds a single conversion.
type Options struct {
	// MaxBytes is the output size budget. The quality search stops at the
	// first level that fits.
	MaxBytes int64
	// MaxDimension caps either side of the image; larger sources are
	// downscaled with Lanczos resampling, preserving aspect ratio.
	MaxDimension int
	// StartQuality is the first JPEG quality level tried.
	StartQuality int
	// FloorQuality ends the search: once quality drops below it, the most
	// recent encode is kept even if it exceeds MaxBytes.
	FloorQuality int
	// QualityStep is subtracted from the quality level between attempts.
	QualityStep int
}

// Outcome records the result of converting one file.
type Outcome struct {
	Success     bool
	OutputBytes int64
	// Quality is the JPEG quality of the file left on disk. Zero when the
	// conversion failed before the first encode.
	Quality int
	Err     error
}

// File converts the PNG at src into a JPEG at dst under the given bounds.
//
// Each quality attempt overwrites dst in place, so on failure a partial or
// over-budget file may remain at dst. Callers treat the Outcome, not the
// filesystem, as the source of truth.
func File(src, dst string, opts Options) Outcome {
	decoded, err := imaging.Open(src)
	if err != nil {
		return Outcome{Err: fmt.Errorf("decode %s: %w", src, err)}
	}
	img := imaging.Clone(decoded)

	// JPEG has no alpha channel; flatten transparent sources onto white
	// before encoding instead of letting the encoder zero them out.
	if !opaque(img) {
		background := imaging.New(img.Bounds().Dx(), img.Bounds().Dy(), color.White)
		img = imaging.Overlay(background, img, image.Point{}, 1.0)
	}

	if bounds := img.Bounds(); bounds.Dx() > opts.MaxDimension || bounds.Dy() > opts.MaxDimension {
		img = imaging.Fit(img, opts.MaxDimension, opts.MaxDimension, imaging.Lanczos)
	}

	quality := opts.StartQuality
	var size int64
	for {
		if err := imaging.Save(img, dst, imaging.JPEGQuality(quality)); err != nil {
			return Outcome{Quality: quality, Err: fmt.Errorf("encode %s at quality %d: %w", dst, quality, err)}
		}

		info, err := os.Stat(dst)
		if err != nil {
			return Outcome{Quality: quality, Err: fmt.Errorf("stat %s: %w", dst, err)}
		}
		size = info.Size()

		// The floor check follows the encode on purpose: the terminal
		// attempt lands one step below the floor, matching the original
		// optimizer's loop shape.
		if size <= opts.MaxBytes || quality < opts.FloorQuality {
			break
		}
		quality -= opts.QualityStep
	}

	return Outcome{Success: true, OutputBytes: size, Quality: quality}
}

func opaque(img *image.NRGBA) bool {
	// NRGBA stores pixels as R,G,B,A byte quads.
	for i := 3; i < len(img.Pix); i += 4 {
		if img.Pix[i] != 0xff {
			return false
		}
	}
	return true
}
