package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/mdobak/go-xerrors"

	"github.com/vidmark/go-vidmark/config"
	"github.com/vidmark/go-vidmark/pipeline"
	"github.com/vidmark/go-vidmark/render"
	"github.com/vidmark/go-vidmark/timeline"
)

// envDefault returns the VIDMARK_ prefixed environment value for the key,
// or the fallback when unset
func envDefault(key, fallback string) string {

	if v := os.Getenv("VIDMARK_" + key); v != "" {
		return v
	}

	return fallback
}

func envDefaultInt(key string, fallback int) int {

	if v := os.Getenv("VIDMARK_" + key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}

	return fallback
}

func main() {
	// disable logging timestamps
	log.SetFlags(0)

	// pick up VIDMARK_ environment defaults from a local .env file if
	// one exists
	_ = godotenv.Load()

	// read in cli flags
	videoFile := flag.String("v", envDefault("VIDEO", ""),
		"Source video file to annotate")
	detectionsFile := flag.String("d", envDefault("DETECTIONS", ""),
		"Detection document JSON file")
	outFile := flag.String("o", envDefault("OUTPUT", ""),
		"Annotated video output file, derived from inputs when empty")
	detectionKey := flag.String("k", envDefault("DETECTION_KEY", ""),
		"Preferred label attribute key, overrides the document's own")
	maxGap := flag.Int("g", envDefaultInt("MAX_GAP", timeline.DefaultMaxGap),
		"Largest frame gap bridged by interpolation")
	codecs := flag.String("codecs", envDefault("CODECS", ""),
		"Comma delimited output codec fallback chain, eg: avc1,mp4v")
	configFile := flag.String("c", envDefault("CONFIG", ""),
		"Optional YAML configuration file")
	quiet := flag.Bool("q", false, "Suppress progress logging")

	flag.Parse()

	if *videoFile == "" || *detectionsFile == "" {
		fmt.Fprintln(os.Stderr, "both -v <video> and -d <detections> are required")
		flag.Usage()
		os.Exit(2)
	}

	opts := pipeline.Options{
		VideoPath:      *videoFile,
		DetectionsPath: *detectionsFile,
		OutputPath:     *outFile,
		DetectionKey:   *detectionKey,
		MaxGap:         *maxGap,
		Style:          render.DefaultStyle(),
		Quiet:          *quiet,
	}

	if *codecs != "" {
		opts.Codecs = pipeline.ParseCodecs(*codecs)
	}

	if *configFile != "" {

		cfg, err := config.Load(*configFile)

		if err != nil {
			log.Fatal("Error loading config: ", xerrors.New(err))
		}

		// track which flags were given on the command line, a set flag
		// beats the config file
		setFlags := make(map[string]bool)

		flag.Visit(func(f *flag.Flag) {
			setFlags[f.Name] = true
		})

		if !setFlags["g"] && cfg.MaxGap > 0 {
			opts.MaxGap = cfg.MaxGap
		}

		if !setFlags["k"] && opts.DetectionKey == "" {
			opts.DetectionKey = cfg.DetectionKey
		}

		if !setFlags["codecs"] && len(cfg.Codecs) > 0 {
			opts.Codecs = cfg.Codecs
		}

		if !setFlags["o"] && opts.OutputPath == "" {
			opts.OutputPath = cfg.Output
		}

		opts.Style = cfg.ApplyStyle(opts.Style)
	}

	outPath, err := pipeline.Annotate(opts)

	if err != nil {
		log.Fatal("Error annotating video: ", xerrors.New(err))
	}

	// print the output path for calling scripts
	fmt.Println(outPath)
}
