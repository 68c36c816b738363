// ldpcgen synthesizes the superframe parity-check matrices offline and
// persists one AList file per code for the belief-propagation engine.
//
// With no -config it generates the three reference deployment codes. A TOML
// config replaces the registry:
//
//	[[codes]]
//	name        = "voice_576_384"
//	n           = 576
//	k           = 384
//	col_weights = [2, 3]
//	row_weights = [8, 9]
//	seed        = 24323
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/dvradio/superframe/ldpc"
)

type codeEntry struct {
	Name       string  `toml:"name"`
	N          int     `toml:"n"`
	K          int     `toml:"k"`
	ColWeights []int   `toml:"col_weights"`
	RowWeights []int   `toml:"row_weights"`
	Seed       int64  `toml:"seed"`
}

type genConfig struct {
	Codes []codeEntry `toml:"codes"`
}

func main() {
	var (
		cfgPath = flag.String("config", "", "TOML code definition file (default: built-in reference codes)")
		outDir  = flag.String("out", ".", "output directory for .alist files")
		verbose = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}).
		With().Timestamp().Str("app", "ldpcgen").Logger()
	if !*verbose {
		logger = logger.Level(zerolog.InfoLevel)
	}

	defs, err := loadDefinitions(*cfgPath)
	if err != nil {
		logger.Fatal().Err(err).Msg("load code definitions")
	}
	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		logger.Fatal().Err(err).Msg("create output directory")
	}

	// Each synthesis owns its own seeded generator, so the codes can run
	// concurrently.
	var g errgroup.Group
	for _, def := range defs {
		def := def
		g.Go(func() error {
			start := time.Now()
			h, err := ldpc.Synthesize(def.CodeParams)
			if err != nil {
				return fmt.Errorf("%s: %w", def.Name, err)
			}
			if err := h.Validate(); err != nil {
				return fmt.Errorf("%s: %w", def.Name, err)
			}
			path := filepath.Join(*outDir, def.Name+".alist")
			if err := ldpc.SaveAListFile(path, h); err != nil {
				return fmt.Errorf("%s: %w", def.Name, err)
			}
			logger.Info().
				Str("code", def.Name).
				Int("n", h.N).Int("k", h.K).Int("m", h.M).
				Int("ones", h.Ones()).
				Dur("elapsed", time.Since(start)).
				Str("path", path).
				Msg("wrote matrix")
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		logger.Fatal().Err(err).Msg("synthesis failed")
	}
}

func loadDefinitions(path string) ([]ldpc.CodeDefinition, error) {
	if path == "" {
		return ldpc.ReferenceCodes(), nil
	}
	var cfg genConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, err
	}
	if len(cfg.Codes) == 0 {
		return nil, fmt.Errorf("%s: no [[codes]] entries", path)
	}
	defs := make([]ldpc.CodeDefinition, 0, len(cfg.Codes))
	for i, c := range cfg.Codes {
		if c.Name == "" {
			return nil, fmt.Errorf("%s: codes[%d] missing name", path, i)
		}
		defs = append(defs, ldpc.CodeDefinition{
			Name: c.Name,
			CodeParams: ldpc.CodeParams{
				N: c.N, K: c.K,
				ColWeights: c.ColWeights,
				RowWeights: c.RowWeights,
				Seed:       c.Seed,
			},
		})
	}
	return defs, nil
}
