// ABOUTME: Entry point for the MeowTalk streaming client
// ABOUTME: Streams an audio file to a server and displays detections
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/meowtalk-labs/meowtalk-go/internal/discovery"
	"github.com/meowtalk-labs/meowtalk-go/internal/ui"
	"github.com/meowtalk-labs/meowtalk-go/internal/version"
	"github.com/meowtalk-labs/meowtalk-go/pkg/audio"
	"github.com/meowtalk-labs/meowtalk-go/pkg/audio/decode"
	"github.com/meowtalk-labs/meowtalk-go/pkg/audio/encode"
	"github.com/meowtalk-labs/meowtalk-go/pkg/audio/resample"
	"github.com/meowtalk-labs/meowtalk-go/pkg/protocol"
)

var (
	serverAddr = flag.String("server", "", "Manual server address (skip mDNS)")
	audioFile  = flag.String("file", "", "Audio file to stream (WAV, MP3, FLAC)")
	name       = flag.String("name", "", "Client friendly name (default: hostname-meowtalk)")
	chunkMs    = flag.Int("chunk-ms", 20, "Upload chunk duration in milliseconds")
	logFile    = flag.String("log-file", "meowtalk-client.log", "Log file path")
	noTUI      = flag.Bool("no-tui", false, "Disable TUI, use streaming logs instead")
)

func main() {
	flag.Parse()

	useTUI := !*noTUI

	f, err := os.OpenFile(*logFile, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		log.Fatalf("error opening log file: %v", err)
	}
	defer func() { _ = f.Close() }()

	if useTUI {
		// TUI mode: log only to file
		log.SetOutput(f)
	} else {
		log.SetOutput(io.MultiWriter(os.Stdout, f))
	}

	if *audioFile == "" {
		fmt.Fprintln(os.Stderr, "missing -file: nothing to stream")
		flag.Usage()
		os.Exit(1)
	}

	clientName := *name
	if clientName == "" {
		hostname, err := os.Hostname()
		if err != nil {
			hostname = "unknown"
		}
		clientName = fmt.Sprintf("%s-meowtalk", hostname)
	}

	var tuiProg *tea.Program
	if useTUI {
		tuiProg, err = ui.Run()
		if err != nil {
			log.Fatalf("Failed to start TUI: %v", err)
		}
		go tuiProg.Run()
	}

	updateTUI := func(msg ui.StatusMsg) {
		if tuiProg != nil {
			tuiProg.Send(msg)
		}
	}

	serverAddress := *serverAddr
	if serverAddress == "" {
		log.Printf("Starting server discovery...")
		disc := discovery.NewManager(discovery.Config{ServiceName: clientName})
		disc.Browse()

		select {
		case server := <-disc.Servers():
			serverAddress = fmt.Sprintf("%s:%d", server.Host, server.Port)
			log.Printf("Discovered server at %s", serverAddress)
		case <-time.After(10 * time.Second):
			log.Fatalf("No server found after 10 seconds")
		}
		disc.Stop()
	}

	clip, err := decode.LoadFile(*audioFile)
	if err != nil {
		log.Fatalf("Failed to load %s: %v", *audioFile, err)
	}
	log.Printf("Loaded %s: %d samples at %dHz (%.1fs)",
		*audioFile, len(clip.Samples), clip.SampleRate, clip.Duration().Seconds())

	client := protocol.NewClient(protocol.Config{
		ServerAddr: serverAddress,
		ClientID:   clientName,
		Name:       clientName,
		Version:    1,
		DeviceInfo: protocol.DeviceInfo{
			ProductName:     version.Product,
			Manufacturer:    version.Manufacturer,
			SoftwareVersion: version.Version,
		},
		SupportedFormats: []protocol.AudioFormat{
			{Codec: "pcm", Channels: 1, SampleRate: clip.SampleRate, BitDepth: 16},
			{Codec: "pcm", Channels: 1, SampleRate: 44100, BitDepth: 16},
		},
	})

	if err := client.Connect(); err != nil {
		log.Fatalf("Connection failed: %v", err)
	}
	defer client.Close()

	serverHello := client.ServerHello()
	log.Printf("Connected to %s (emotions: %v)", serverHello.Name, serverHello.Emotions)

	connected := true
	updateTUI(ui.StatusMsg{
		Connected:  &connected,
		ServerName: serverHello.Name,
		Codec:      serverHello.Format.Codec,
		SampleRate: serverHello.Format.SampleRate,
		Channels:   serverHello.Format.Channels,
	})

	samples := clip.Samples
	if clip.SampleRate != serverHello.Format.SampleRate {
		samples = resample.Convert(samples, clip.SampleRate, serverHello.Format.SampleRate)
		log.Printf("Resampled %dHz -> %dHz", clip.SampleRate, serverHello.Format.SampleRate)
	}

	if err := client.StartStream(""); err != nil {
		log.Fatalf("Failed to start stream: %v", err)
	}

	var streamID string
	select {
	case started := <-client.Started:
		streamID = started.StreamID
		log.Printf("Stream started: %s", streamID)
		updateTUI(ui.StatusMsg{StreamID: streamID})
	case <-time.After(5 * time.Second):
		log.Fatalf("Stream start not acknowledged")
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	done := make(chan struct{})
	go func() {
		defer close(done)
		streamAudio(client, samples, serverHello.Format, updateTUI)
	}()

	var resultsReceived, errorCount int64
	for {
		select {
		case result := <-client.Results:
			resultsReceived++
			log.Printf("Detection: %s (%.0f%%) on %s",
				result.Emotion, result.Confidence*100, result.StreamID)
			updateTUI(ui.StatusMsg{
				Detection: &ui.Detection{
					Emotion:    result.Emotion,
					Confidence: result.Confidence,
				},
				ResultsReceived: resultsReceived,
			})

		case serverErr := <-client.Errors:
			errorCount++
			log.Printf("Server error [%s]: %s", serverErr.Code, serverErr.Message)
			updateTUI(ui.StatusMsg{Errors: errorCount})

		case <-done:
			// Allow trailing results to arrive before closing
			time.Sleep(500 * time.Millisecond)
			client.EndStream(streamID)
			log.Printf("Stream complete: %d results", resultsReceived)
			if tuiProg != nil {
				tuiProg.Quit()
			}
			return

		case <-sigChan:
			log.Printf("Shutdown signal received")
			client.EndStream(streamID)
			if tuiProg != nil {
				tuiProg.Quit()
			}
			return
		}
	}
}

// streamAudio paces PCM chunks to the server at real-time rate
func streamAudio(client *protocol.Client, samples []float32, format protocol.AudioFormat, updateTUI func(ui.StatusMsg)) {
	chunkSamples := format.SampleRate * *chunkMs / 1000
	if chunkSamples <= 0 {
		chunkSamples = format.SampleRate / 50
	}

	encoder, err := encode.NewPCM(audio.Format{
		Codec:      format.Codec,
		Channels:   format.Channels,
		SampleRate: format.SampleRate,
		BitDepth:   format.BitDepth,
	})
	if err != nil {
		log.Printf("Failed to create encoder: %v", err)
		return
	}
	defer encoder.Close()

	ticker := time.NewTicker(time.Duration(*chunkMs) * time.Millisecond)
	defer ticker.Stop()

	var chunksSent int64
	for offset := 0; offset < len(samples); offset += chunkSamples {
		end := offset + chunkSamples
		if end > len(samples) {
			end = len(samples)
		}

		data, err := encoder.Encode(samples[offset:end])
		if err != nil {
			log.Printf("Encode failed: %v", err)
			return
		}
		if err := client.SendAudio(time.Now().UnixMicro(), data); err != nil {
			log.Printf("Upload failed: %v", err)
			return
		}

		chunksSent++
		if chunksSent%50 == 0 {
			updateTUI(ui.StatusMsg{ChunksSent: chunksSent})
		}

		<-ticker.C
	}
	updateTUI(ui.StatusMsg{ChunksSent: chunksSent})
}
