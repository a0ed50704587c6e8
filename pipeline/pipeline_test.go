package pipeline

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	vidmark "github.com/vidmark/go-vidmark"
)

func TestDefaultOutputPath(t *testing.T) {

	tests := []struct {
		video      string
		detections string
		want       string
	}{
		{
			video:      "/data/videos/walk.mp4",
			detections: "/data/results/walk_detections.json",
			want:       filepath.Join("/data/results", "walk_annotated.mp4"),
		},
		{
			video:      "clip.avi",
			detections: "clip.json",
			want:       "clip_annotated.mp4",
		},
		{
			video:      "/tmp/no_extension",
			detections: "/tmp/d.json",
			want:       filepath.Join("/tmp", "no_extension_annotated.mp4"),
		},
	}

	for _, tt := range tests {
		got := DefaultOutputPath(tt.video, tt.detections)

		if got != tt.want {
			t.Errorf("DefaultOutputPath(%q, %q) = %q, want %q",
				tt.video, tt.detections, got, tt.want)
		}
	}
}

func TestParseCodecs(t *testing.T) {

	tests := []struct {
		in   string
		want []string
	}{
		{"avc1,mp4v", []string{"avc1", "mp4v"}},
		{" avc1 , mp4v ", []string{"avc1", "mp4v"}},
		{"mp4v", []string{"mp4v"}},
		{"", DefaultCodecs},
		{" , ", DefaultCodecs},
	}

	for _, tt := range tests {
		got := ParseCodecs(tt.in)

		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("ParseCodecs(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestAnnotateMissingVideo(t *testing.T) {

	opts := Options{
		VideoPath:      filepath.Join(t.TempDir(), "missing.mp4"),
		DetectionsPath: filepath.Join(t.TempDir(), "missing.json"),
	}

	_, err := Annotate(opts)

	if !errors.Is(err, vidmark.ErrInputNotFound) {
		t.Errorf("Annotate() error = %v, want ErrInputNotFound", err)
	}
}

func TestAnnotateMissingDetections(t *testing.T) {

	dir := t.TempDir()
	videoPath := filepath.Join(dir, "clip.mp4")

	if err := os.WriteFile(videoPath, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	opts := Options{
		VideoPath:      videoPath,
		DetectionsPath: filepath.Join(dir, "missing.json"),
	}

	_, err := Annotate(opts)

	if !errors.Is(err, vidmark.ErrInputNotFound) {
		t.Errorf("Annotate() error = %v, want ErrInputNotFound", err)
	}
}

func TestCheckInputDirectory(t *testing.T) {

	err := checkInput(t.TempDir())

	if !errors.Is(err, vidmark.ErrInputNotFound) {
		t.Errorf("checkInput(dir) error = %v, want ErrInputNotFound", err)
	}
}

func TestOpenWriterEmptyChain(t *testing.T) {

	path := filepath.Join(t.TempDir(), "out.mp4")

	_, _, err := openWriter(path, nil, 30, 640, 480)

	if !errors.Is(err, vidmark.ErrCodecUnavailable) {
		t.Errorf("openWriter() error = %v, want ErrCodecUnavailable", err)
	}

	if _, statErr := os.Stat(path); !os.IsNotExist(statErr) {
		t.Errorf("partial output file was left behind at %s", path)
	}
}
