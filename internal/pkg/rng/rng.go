// Package rng derives per-level, per-purpose seeds from a world seed and
// exposes seeded dice rollers for deterministic generation.
package rng

import (
	"encoding/binary"
	"math/rand/v2"

	"github.com/KirkDiggler/rpg-toolkit/dice"
	"github.com/cespare/xxhash/v2"

	"github.com/KirkDiggler/rpg-levelgen/internal/errors"
)

// Purposes of the independent random streams of one generation run
const (
	PurposeLayout   = "layout"
	PurposeTerrain  = "terrain"
	PurposeEntities = "entities"
	PurposeRepair   = "repair"
)

// LevelSeed derives the seed of one level from the world seed and level index
func LevelSeed(worldSeed int64, levelIndex int) uint64 {
	var buf [16]byte
	binary.LittleEndian.PutUint64(buf[:8], uint64(worldSeed))
	binary.LittleEndian.PutUint64(buf[8:], uint64(int64(levelIndex)))
	return xxhash.Sum64(buf[:])
}

// PurposeSeed derives an independent sub-seed for one purpose
func PurposeSeed(levelSeed uint64, purpose string) uint64 {
	d := xxhash.New()
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], levelSeed)
	_, _ = d.Write(buf[:])
	_, _ = d.WriteString(purpose)
	return d.Sum64()
}

// Stream is a seeded dice.Roller; identical seeds give identical rolls
type Stream struct {
	rnd *rand.Rand
}

// NewStream creates a stream from a seed
func NewStream(seed uint64) *Stream {
	return &Stream{rnd: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// Roll rolls one die with the given number of sides, returning 1..size
func (s *Stream) Roll(size int) (int, error) {
	if size <= 0 {
		return 0, errors.InvalidArgumentf("die size must be positive, got %d", size)
	}
	return s.rnd.IntN(size) + 1, nil
}

// RollN rolls count dice of the given size
func (s *Stream) RollN(count, size int) ([]int, error) {
	if count < 0 {
		return nil, errors.InvalidArgumentf("dice count must not be negative, got %d", count)
	}
	out := make([]int, count)
	for i := range out {
		v, err := s.Roll(size)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

var _ dice.Roller = (*Stream)(nil)

// Streams holds the per-purpose rollers of one level
type Streams struct {
	Seed     uint64
	Layout   *Stream
	Terrain  *Stream
	Entities *Stream
	Repair   *Stream
}

// NewStreams derives every purpose stream from a level seed
func NewStreams(levelSeed uint64) *Streams {
	return &Streams{
		Seed:     levelSeed,
		Layout:   NewStream(PurposeSeed(levelSeed, PurposeLayout)),
		Terrain:  NewStream(PurposeSeed(levelSeed, PurposeTerrain)),
		Entities: NewStream(PurposeSeed(levelSeed, PurposeEntities)),
		Repair:   NewStream(PurposeSeed(levelSeed, PurposeRepair)),
	}
}

// Intn returns a value in [0, n) from any roller; n <= 1 yields 0
func Intn(r dice.Roller, n int) int {
	if n <= 1 {
		return 0
	}
	v, err := r.Roll(n)
	if err != nil {
		return 0
	}
	return v - 1
}

// Percent rolls a d100 and reports whether it landed at or under chance
func Percent(r dice.Roller, chance int) bool {
	if chance <= 0 {
		return false
	}
	v, err := r.Roll(100)
	if err != nil {
		return false
	}
	return v <= chance
}
