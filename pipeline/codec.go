package pipeline

import (
	"fmt"
	"os"
	"strings"

	"gocv.io/x/gocv"

	vidmark "github.com/vidmark/go-vidmark"
)

// DefaultCodecs is the output codec fallback chain.  H.264 is preferred
// for hardware and browser compatibility, MPEG-4 part 2 is the widely
// encodable last resort.
var DefaultCodecs = []string{"avc1", "mp4v"}

// ParseCodecs splits a comma delimited fourcc list into a codec chain,
// eg: "avc1,mp4v".  An empty input selects DefaultCodecs.
func ParseCodecs(s string) []string {

	var codecs []string

	for _, word := range strings.Split(s, ",") {
		trimmed := strings.TrimSpace(word)

		if trimmed != "" {
			codecs = append(codecs, trimmed)
		}
	}

	if len(codecs) == 0 {
		return DefaultCodecs
	}

	return codecs
}

// openWriter opens the output video writer by trying each codec in order,
// the first codec that opens wins.  When the whole chain fails the partial
// output file is removed and ErrCodecUnavailable returned.
func openWriter(path string, codecs []string, fps float64, width,
	height int) (*gocv.VideoWriter, string, error) {

	for _, codec := range codecs {

		writer, err := gocv.VideoWriterFile(path, codec, fps, width, height, true)

		if err != nil {
			continue
		}

		if !writer.IsOpened() {
			writer.Close()
			continue
		}

		return writer, codec, nil
	}

	// a failed open must not leave a truncated file behind
	os.Remove(path)

	return nil, "", fmt.Errorf("%w: tried %s", vidmark.ErrCodecUnavailable,
		strings.Join(codecs, ", "))
}
