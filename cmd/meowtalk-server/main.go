// ABOUTME: Entry point for the MeowTalk classification server
// ABOUTME: Parses CLI flags or a YAML config and starts the server
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/meowtalk-labs/meowtalk-go/internal/server"
)

var (
	configFile = flag.String("config", "", "YAML config file (flags override nothing when set)")
	port       = flag.Int("port", 8765, "WebSocket server port")
	name       = flag.String("name", "", "Server friendly name (default: hostname-meowtalk-server)")
	library    = flag.String("library", "", "Sample library JSON file")
	sampleRate = flag.Int("sample-rate", 44100, "Expected upload sample rate")
	windowSize = flag.Int("window-size", 4096, "Analysis window in samples")
	logFile    = flag.String("log-file", "meowtalk-server.log", "Log file path")
	debug      = flag.Bool("debug", false, "Enable debug logging")
	noMDNS     = flag.Bool("no-mdns", false, "Disable mDNS advertisement")
	useTUI     = flag.Bool("tui", false, "Show the status TUI")
)

func main() {
	flag.Parse()

	f, err := os.OpenFile(*logFile, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		log.Fatalf("error opening log file: %v", err)
	}
	defer f.Close()

	if *useTUI {
		// TUI mode: log only to file
		log.SetOutput(f)
	} else {
		log.SetOutput(io.MultiWriter(os.Stdout, f))
	}

	var config server.Config
	if *configFile != "" {
		config, err = server.LoadConfig(*configFile)
		if err != nil {
			log.Fatalf("Config error: %v", err)
		}
	} else {
		serverName := *name
		if serverName == "" {
			hostname, err := os.Hostname()
			if err != nil {
				hostname = "unknown"
			}
			serverName = fmt.Sprintf("%s-meowtalk-server", hostname)
		}

		if *library == "" {
			log.Fatalf("missing -library: no sample library to classify against")
		}

		config = server.Config{
			Port:        *port,
			Name:        serverName,
			LibraryPath: *library,
			SampleRate:  *sampleRate,
			WindowSize:  *windowSize,
			EnableMDNS:  !*noMDNS,
			Debug:       *debug,
			UseTUI:      *useTUI,
		}
	}

	log.Printf("Starting MeowTalk Server: %s on port %d", config.Name, config.Port)

	srv, err := server.New(config)
	if err != nil {
		log.Fatalf("Failed to create server: %v", err)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		log.Printf("Received %v signal, shutting down gracefully...", sig)
		srv.Stop()
	}()

	if err := srv.Start(); err != nil {
		log.Fatalf("Server error: %v", err)
	}

	log.Printf("Server stopped")
}
