package core

import (
	"fmt"
	"math/rand/v2"

	"github.com/huangsam/cyclocsv/internal/contract"
	"github.com/huangsam/cyclocsv/schema"
)

// NewFixtureRand returns the random source for fixture generation. A seeded config
// yields a reproducible PCG stream; otherwise the stream is seeded from the runtime.
func NewFixtureRand(cfg *contract.FixtureConfig) *rand.Rand {
	if cfg.Seeded {
		return rand.New(rand.NewPCG(cfg.Seed, cfg.Seed))
	}
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

// GenerateFixtures draws n independent fixture rows from rng.
func GenerateFixtures(rng *rand.Rand, n int) []schema.FixtureRow {
	rows := make([]schema.FixtureRow, 0, max(n, 0))
	for range n {
		rows = append(rows, schema.FixtureRow{
			Path:  fmt.Sprintf(schema.FixturePathFormat, 1+rng.IntN(schema.FixtureMaxFileNumber)),
			Value: rng.Float64() * schema.FixtureMaxValue,
			Count: rng.IntN(schema.FixtureMaxCount + 1),
		})
	}
	return rows
}
