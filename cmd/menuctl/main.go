// Command menuctl reads the public menu API the way the website does and
// prints the result as JSON, noting whether it came live or from fallback
// data.
//
//	menuctl [flags] menu
//	menuctl [flags] dish <id>
//	menuctl [flags] restaurant
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"

	"go.uber.org/zap"

	"aukra/client"
	"aukra/config"
)

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: %s [flags] menu | dish <id> | restaurant\n", os.Args[0])
	flag.PrintDefaults()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	api := flag.String("api", cfg.Client.BaseURL, "Base URL of the menu API")
	timeout := flag.Duration("timeout", cfg.Client.Timeout, "Per-request timeout")
	noFallback := flag.Bool("no-fallback", false, "Do not substitute bundled data on failure")
	verbose := flag.Bool("v", false, "Log fetch failures")
	flag.Usage = usage
	flag.Parse()

	logger := zap.NewNop()
	if *verbose {
		if logger, err = zap.NewDevelopment(); err != nil {
			log.Fatal("Failed to initialize logger:", err)
		}
	}
	defer logger.Sync()

	opts := client.Options{Timeout: *timeout, Logger: logger.Sugar()}
	if *noFallback {
		opts.Fallback = client.NoFallback{}
	}
	f := client.New(*api, client.NewCache(), opts)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var (
		data   any
		source client.Source
		ferr   error
	)
	switch args := flag.Args(); {
	case len(args) == 1 && args[0] == "menu":
		res := f.Menu(ctx)
		data, source, ferr = res.Data, res.Source, res.Err
	case len(args) == 2 && args[0] == "dish":
		res := f.Dish(ctx, args[1])
		data, source, ferr = res.Data, res.Source, res.Err
	case len(args) == 1 && args[0] == "restaurant":
		res := f.Restaurant(ctx)
		data, source, ferr = res.Data, res.Source, res.Err
	default:
		usage()
		os.Exit(2)
	}

	if ferr != nil {
		fmt.Fprintln(os.Stderr, "error:", ferr)
	}
	fmt.Fprintln(os.Stderr, "source:", source)
	if source == client.SourceNone {
		os.Exit(1)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		log.Fatal(err)
	}
}
