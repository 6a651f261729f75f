package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/reflow/scalar/internal/bundle"
)

func main() {
	dir := flag.String("dir", "static", "Directory holding the embedded bundle")
	version := flag.String("version", "latest", "Version of @scalar/api-reference to install")
	force := flag.Bool("force", false, "Download even if the installed version matches")
	registry := flag.String("registry", bundle.DefaultRegistry, "npm registry base URL")
	cdn := flag.String("cdn", bundle.DefaultCDN, "CDN base URL serving npm packages")
	timeout := flag.Duration("timeout", 2*time.Minute, "Overall timeout")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	ctx, cancelTimeout := context.WithTimeout(ctx, *timeout)
	defer cancelTimeout()

	f := bundle.NewFetcher(bundle.Config{
		Registry: *registry,
		CDN:      *cdn,
	})

	res, err := f.Sync(ctx, *dir, *version, *force)
	if err != nil {
		log.Fatal().Err(err).Str("dir", *dir).Msg("Failed to install Scalar bundle")
	}

	log.Info().
		Str("version", res.Version).
		Str("path", res.Path).
		Bool("updated", res.Updated).
		Msg("Done")
}
