// ABOUTME: Offline analysis tool for cat vocalization recordings
// ABOUTME: Classifies, trains libraries, and plays back audio files
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/meowtalk-labs/meowtalk-go/internal/librarysync"
	"github.com/meowtalk-labs/meowtalk-go/pkg/audio/decode"
	"github.com/meowtalk-labs/meowtalk-go/pkg/audio/output"
	"github.com/meowtalk-labs/meowtalk-go/pkg/classify"
	"github.com/meowtalk-labs/meowtalk-go/pkg/dsp"
	"github.com/meowtalk-labs/meowtalk-go/pkg/meowtalk"
)

var (
	library    = flag.String("library", "", "Sample library JSON file")
	libraryURL = flag.String("library-url", "", "Fetch the sample library from a URL instead")
	train      = flag.String("train", "", "Add the file to the library under this emotion label")
	play       = flag.Bool("play", false, "Play the file through the default audio device")
	volume     = flag.Int("volume", 80, "Playback volume 0-100")
)

func main() {
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] <audio-file>\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(1)
	}
	path := flag.Arg(0)

	clip, err := decode.LoadFile(path)
	if err != nil {
		log.Fatalf("Failed to load %s: %v", path, err)
	}
	fmt.Printf("%s: %d samples at %dHz (%.2fs)\n",
		path, len(clip.Samples), clip.SampleRate, clip.Duration().Seconds())

	if *play {
		playClip(clip.Samples, clip.SampleRate)
		return
	}

	switch {
	case *train != "":
		trainLibrary(clip.Samples, clip.SampleRate, *train)
	default:
		classifyClip(clip.Samples, clip.SampleRate)
	}
}

// loadLibrary loads from -library or fetches from -library-url
func loadLibrary() *classify.Library {
	if *libraryURL != "" {
		d, err := librarysync.NewDownloader()
		if err != nil {
			log.Fatalf("Failed to create downloader: %v", err)
		}
		lib, cached, err := d.Fetch(*libraryURL)
		if err != nil {
			log.Fatalf("Failed to fetch library: %v", err)
		}
		fmt.Printf("library: %s (cached at %s)\n", *libraryURL, cached)
		return lib
	}

	if *library == "" {
		log.Fatalf("missing -library or -library-url")
	}
	lib, err := classify.LoadFile(*library)
	if err != nil {
		log.Fatalf("Failed to load library: %v", err)
	}
	return lib
}

// classifyClip runs one-shot detection and prints the result JSON
func classifyClip(samples []float32, sampleRate int) {
	detector, err := meowtalk.NewDetectorWithClassifier(loadLibrary(), meowtalk.Config{
		SampleRate: sampleRate,
	})
	if err != nil {
		log.Fatalf("Failed to create detector: %v", err)
	}

	result, err := detector.ProcessAudio(samples)
	if err != nil {
		log.Fatalf("Classification failed: %v", err)
	}

	fmt.Println(result.JSON())
}

// trainLibrary extracts features and saves them under an emotion label
func trainLibrary(samples []float32, sampleRate int, emotion string) {
	if *library == "" {
		log.Fatalf("training requires -library (a writable file)")
	}

	lib, err := classify.LoadFile(*library)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			log.Fatalf("Failed to load library: %v", err)
		}
		lib = classify.NewLibrary()
	}

	extractor := dsp.NewExtractor(sampleRate)
	features := extractor.Extract(dsp.FromFloat32(samples))
	lib.AddSample(emotion, classify.VectorFromFeatures(features))

	if err := lib.SaveFile(*library); err != nil {
		log.Fatalf("Failed to save library: %v", err)
	}

	fmt.Printf("added %q sample, library now holds %d samples across %d emotions\n",
		emotion, lib.SampleCount(), len(lib.Emotions()))
}

// playClip plays samples through the default output device
func playClip(samples []float32, sampleRate int) {
	out := output.NewOto()
	if err := out.Open(sampleRate, 1); err != nil {
		log.Fatalf("Failed to open audio output: %v", err)
	}
	defer out.Close()

	out.SetVolume(*volume)
	if err := out.Write(samples); err != nil {
		log.Fatalf("Playback failed: %v", err)
	}
}
