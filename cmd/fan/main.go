// Copyright (C) 2025 The FAN Project
//
// This file is part of fan-go.
//
// fan-go is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// fan-go is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with fan-go.  If not, see <https://www.gnu.org/licenses/>.

// Command fan starts a Federated Auth Network agent: an HTTP daemon serving
// the node's own DID document and signed per-user documents.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/fan-project/fan-go/pkg/config"
	"github.com/fan-project/fan-go/pkg/jwk"
	"github.com/fan-project/fan-go/pkg/server"
	"github.com/fan-project/fan-go/pkg/storage"
)

var (
	generateJWK = flag.Bool("generate-signing-jwk", false, "Generate a signing JWK, and exit")
	configPath  = flag.String("config", "", "Path to YAML config file")
	keyPath     = flag.String("signing-key", "", "Path to JWK w/ private key for signing")
	listenAddr  = flag.String("listen", "", "Listen addr:port")
	rootDir     = flag.String("root", "", "Path to root of served filesystem")
	cborFormat  = flag.Bool("cbor", false, "Documents are in CBOR format")
	logLevel    = flag.String("log-level", "", "Log level (trace..panic)")
	rateLimit   = flag.Float64("rate-limit", 0, "Global requests-per-second cap (0 disables)")
)

func main() {
	flag.Parse()

	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()

	if *generateJWK {
		if err := printSigningJWK(); err != nil {
			logger.Fatal().Err(err).Msg("failed to generate signing key")
		}
		return
	}

	cfg, err := loadConfig()
	if err != nil {
		logger.Fatal().Err(err).Msg("invalid configuration")
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		logger.Fatal().Err(err).Str("log_level", cfg.LogLevel).Msg("invalid log level")
	}
	logger = logger.Level(level)

	key, err := jwk.ParseFile(cfg.SigningKey)
	if err != nil {
		logger.Fatal().Err(err).Str("path", cfg.SigningKey).Msg("failed to load signing key")
	}
	if !key.IsPrivate() {
		logger.Fatal().Str("path", cfg.SigningKey).Msg("signing key has no private material")
	}

	driver := storage.NewFilesystemDriver(cfg.Root, cfg.CBOR)
	engine := storage.New(driver, key)

	srv := server.New(engine, logger)
	srv.SetRateLimit(cfg.RateLimit, cfg.RateBurst)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info().
		Str("listen", cfg.Listen).
		Str("root", cfg.Root).
		Bool("cbor", cfg.CBOR).
		Str("curve", key.Crv).
		Msg("starting fan agent")

	if err := srv.ListenAndServe(ctx, cfg.Listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal().Err(err).Msg("server failed")
	}

	logger.Info().Msg("shutdown complete")
}

// printSigningJWK writes a fresh P-256 private key to stdout.
func printSigningJWK() error {
	key, err := jwk.Generate(jwk.CurveP256)
	if err != nil {
		return err
	}

	data, err := key.Marshal()
	if err != nil {
		return err
	}

	fmt.Println(string(data))
	return nil
}

// loadConfig resolves the effective configuration: defaults, then the
// config file, then any flags set on the command line.
func loadConfig() (config.Config, error) {
	cfg := config.Default()

	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}

	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "signing-key":
			cfg.SigningKey = *keyPath
		case "listen":
			cfg.Listen = *listenAddr
		case "root":
			cfg.Root = *rootDir
		case "cbor":
			cfg.CBOR = *cborFormat
		case "log-level":
			cfg.LogLevel = *logLevel
		case "rate-limit":
			cfg.RateLimit = *rateLimit
		}
	})

	return cfg, cfg.Validate()
}
