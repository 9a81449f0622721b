package config

import "fmt"

// TerrainSettings holds world generation parameters.
type TerrainSettings struct {
	Seed        int64   `yaml:"seed"`
	Scale       float64 `yaml:"scale"`
	Octaves     int     `yaml:"octaves"`
	Persistence float64 `yaml:"persistence"`
	Lacunarity  float64 `yaml:"lacunarity"`

	HeightMultiplier float64 `yaml:"height_multiplier"`
	// HeightOffset shifts every column relative to sea level. Negative values
	// flood the lowlands.
	HeightOffset int     `yaml:"height_offset"`
	TreeChance   float64 `yaml:"tree_chance"`
}

// DefaultTerrain returns the stock generation parameters.
func DefaultTerrain() TerrainSettings {
	return TerrainSettings{
		Seed:             42,
		Scale:            0.05,
		Octaves:          4,
		Persistence:      0.5,
		Lacunarity:       2.0,
		HeightMultiplier: 20,
		TreeChance:       0.02,
	}
}

func (t TerrainSettings) validate() error {
	switch {
	case t.Scale <= 0:
		return fmt.Errorf("%w: terrain.scale must be positive, got %g", ErrInvalid, t.Scale)
	case t.Octaves < 1:
		return fmt.Errorf("%w: terrain.octaves must be at least 1, got %d", ErrInvalid, t.Octaves)
	case t.Persistence <= 0:
		return fmt.Errorf("%w: terrain.persistence must be positive, got %g", ErrInvalid, t.Persistence)
	case t.Lacunarity <= 0:
		return fmt.Errorf("%w: terrain.lacunarity must be positive, got %g", ErrInvalid, t.Lacunarity)
	case t.HeightMultiplier < 0:
		return fmt.Errorf("%w: terrain.height_multiplier must not be negative, got %g", ErrInvalid, t.HeightMultiplier)
	case t.TreeChance < 0 || t.TreeChance > 1:
		return fmt.Errorf("%w: terrain.tree_chance %g outside [0, 1]", ErrInvalid, t.TreeChance)
	}
	return nil
}
