package DHMap

import (
	"fmt"
	"slices"
	"time"

	"github.com/rs/zerolog"
)

const DefaultLoadFactor uint = 2

// Config of a table. It's only read at construction, use the With functions to set it.
type Config struct {
	Seed       uint64
	LoadFactor uint
	Schedule   []uint64
	Logger     zerolog.Logger
}

type Option func(*Config)

// WithSeed fixes the seed of the coefficient generator, and of the default hash function for string and integer keys. With
// such keys two tables built with the same seed and the same operations have the same layout, in any process. Without it
// the seed comes from the wall clock.
func WithSeed(seed uint64) Option {
	return func(c *Config) {
		c.Seed = seed
	}
}

// WithLoadFactor sets the rebuild threshold: a rebuild happens once occupied*lf >= capacity. lf must be at least 2, so a
// table is never more than half occupied.
func WithLoadFactor(lf uint) Option {
	return func(c *Config) {
		c.LoadFactor = lf
	}
}

// WithSchedule replaces DefaultSchedule. The slice is copied.
func WithSchedule(s []uint64) Option {
	return func(c *Config) {
		c.Schedule = append([]uint64(nil), s...)
	}
}

// WithLogger receives a debug event for every rebuild.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Config) {
		c.Logger = l
	}
}

func newConfig(opts []Option) Config {
	c := Config{
		Seed:       uint64(time.Now().UnixNano()),
		LoadFactor: DefaultLoadFactor,
		Schedule:   slices.Clone(DefaultSchedule),
		Logger:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(&c)
	}
	if c.LoadFactor < 2 {
		panic(fmt.Sprintf("DHMap: load factor %d is below 2", c.LoadFactor))
	}
	if err := checkSchedule(c.Schedule); err != nil {
		panic("DHMap: " + err.Error())
	}
	return c
}
