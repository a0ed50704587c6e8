// Package pipeline runs the end to end annotation pass: it loads a
// detection document, builds entity timelines, then streams the source
// video frame by frame, drawing the resolved boxes and label badges onto
// each frame before writing it to the output file.
package pipeline

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"gocv.io/x/gocv"

	vidmark "github.com/vidmark/go-vidmark"
	"github.com/vidmark/go-vidmark/detect"
	"github.com/vidmark/go-vidmark/label"
	"github.com/vidmark/go-vidmark/render"
	"github.com/vidmark/go-vidmark/timeline"
)

// progressEvery is the frame interval between progress log lines
const progressEvery = 100

// Options configures an annotation run.  VideoPath and DetectionsPath are
// required, everything else has a usable default.
type Options struct {
	// VideoPath is the source video file
	VideoPath string
	// DetectionsPath is the detection document JSON file
	DetectionsPath string
	// OutputPath is the annotated video destination, derived from the
	// inputs when empty
	OutputPath string
	// DetectionKey overrides the document's preferred label attribute key
	DetectionKey string
	// MaxGap is the largest frame gap bridged by interpolation, the
	// resolver default applies when zero or negative
	MaxGap int
	// Codecs is the output codec fallback chain, DefaultCodecs when empty
	Codecs []string
	// Style controls box and badge geometry
	Style render.Style
	// Quiet suppresses progress and summary logging
	Quiet bool
}

// DefaultOutputPath derives the annotated video path from the inputs: the
// video file stem with an _annotated.mp4 suffix, placed next to the
// detection document.
func DefaultOutputPath(videoPath, detectionsPath string) string {

	stem := strings.TrimSuffix(filepath.Base(videoPath),
		filepath.Ext(videoPath))

	return filepath.Join(filepath.Dir(detectionsPath),
		stem+"_annotated.mp4")
}

// checkInput verifies an input file exists before opening any resources
func checkInput(path string) error {

	info, err := os.Stat(path)

	if err != nil {
		return fmt.Errorf("%w: %s", vidmark.ErrInputNotFound, path)
	}

	if info.IsDir() {
		return fmt.Errorf("%w: %s is a directory", vidmark.ErrInputNotFound, path)
	}

	return nil
}

// Annotate runs the full annotation pass and returns the output video
// path.  The source video is read exactly once, frames are annotated in
// place and written out in the same order they were decoded.
func Annotate(opts Options) (string, error) {

	if err := checkInput(opts.VideoPath); err != nil {
		return "", err
	}

	if err := checkInput(opts.DetectionsPath); err != nil {
		return "", err
	}

	doc, err := detect.ReadDocument(opts.DetectionsPath)

	if err != nil {
		return "", err
	}

	detectionKey := opts.DetectionKey

	if detectionKey == "" {
		detectionKey = doc.DetectionKey
	}

	timelines := timeline.Build(doc.ByFrame())
	resolver := timeline.NewResolver(timelines, opts.MaxGap)
	entityIDs := resolver.EntityIDs()

	if !opts.Quiet {
		sum := timeline.Summarize(timelines)
		log.Printf("loaded %d records for %d entities, mean confidence %.2f, "+
			"mean gap %.1f, max gap %d",
			sum.Records, sum.Entities, sum.MeanConfidence, sum.MeanGap,
			sum.MaxGap)
	}

	annotator, err := render.NewAnnotator(opts.Style)

	if err != nil {
		return "", err
	}

	video, err := gocv.VideoCaptureFile(opts.VideoPath)

	if err != nil {
		return "", fmt.Errorf("%w: %v", vidmark.ErrDecodeFailure, err)
	}

	defer video.Close()

	width := int(video.Get(gocv.VideoCaptureFrameWidth))
	height := int(video.Get(gocv.VideoCaptureFrameHeight))
	fps := video.Get(gocv.VideoCaptureFPS)

	if fps <= 0 {
		fps = doc.VideoInfo.FPS
	}

	outPath := opts.OutputPath

	if outPath == "" {
		outPath = DefaultOutputPath(opts.VideoPath, opts.DetectionsPath)
	}

	codecs := opts.Codecs

	if len(codecs) == 0 {
		codecs = DefaultCodecs
	}

	writer, codec, err := openWriter(outPath, codecs, fps, width, height)

	if err != nil {
		return "", err
	}

	defer writer.Close()

	if !opts.Quiet {
		log.Printf("writing %dx%d @ %.2f fps to %s (%s)", width, height,
			fps, outPath, codec)
	}

	img := gocv.NewMat()
	defer img.Close()

	frame := 0

	for {
		if ok := video.Read(&img); !ok {
			break
		}

		if img.Empty() {
			continue
		}

		for _, id := range entityIDs {

			rec := resolver.Resolve(id, frame)

			if rec == nil {
				continue
			}

			text := label.Resolve(rec.Attributes, detectionKey)

			err = annotator.Draw(&img, rec.Box, render.ColorFor(id), text)

			if err != nil {
				return "", fmt.Errorf("frame %d entity %d: %w", frame, id, err)
			}
		}

		if err = writer.Write(img); err != nil {
			return "", fmt.Errorf("writing frame %d: %w", frame, err)
		}

		frame++

		if !opts.Quiet && frame%progressEvery == 0 {
			log.Printf("annotated %d/%d frames", frame,
				doc.VideoInfo.TotalFrames)
		}
	}

	if !opts.Quiet {
		log.Printf("done, %d frames written", frame)
	}

	return outPath, nil
}
