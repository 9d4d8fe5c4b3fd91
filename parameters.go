package crseg

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

const (
	defaultC0               = 2.0
	defaultC1               = 2.5
	defaultC2               = 4.0
	defaultMaxCycleElements = 10
)

// Parameters of segmentation
type Parameters struct {
	// C0 multiplies street width to obtain distance between crossroad center and its boundary
	C0 float64 `toml:"c0"`
	// C1 multiplies crossroad lane width to obtain clustering neighbourhood
	C1 float64 `toml:"c1"`
	// C2 multiplies crossroad lane width to obtain maximum length of link between crossroads
	C2 float64 `toml:"c2"`
	// MaxCycleElements is maximum number of crossroads in a cycle which is merged into single crossroad
	MaxCycleElements int `toml:"max_cycle_elements"`
}

// DefaultParameters returns default segmentation parameters
func DefaultParameters() Parameters {
	return Parameters{
		C0:               defaultC0,
		C1:               defaultC1,
		C2:               defaultC2,
		MaxCycleElements: defaultMaxCycleElements,
	}
}

func (params Parameters) String() string {
	return fmt.Sprintf(`
Segmentation parameters:
	C0: %f
	C1: %f
	C2: %f
	max_cycle_elements: %d
	`,
		params.C0,
		params.C1,
		params.C2,
		params.MaxCycleElements,
	)
}

// Validate checks that every coefficient is positive
func (params Parameters) Validate() error {
	if params.C0 <= 0 {
		return fmt.Errorf("C0 must be positive, got %f", params.C0)
	}
	if params.C1 <= 0 {
		return fmt.Errorf("C1 must be positive, got %f", params.C1)
	}
	if params.C2 <= 0 {
		return fmt.Errorf("C2 must be positive, got %f", params.C2)
	}
	if params.MaxCycleElements < 3 {
		return fmt.Errorf("max_cycle_elements must be at least 3, got %d", params.MaxCycleElements)
	}
	return nil
}

// ParseParameters decodes TOML document. Missing keys keep default values
func ParseParameters(data []byte) (Parameters, error) {
	params := DefaultParameters()
	if err := toml.Unmarshal(data, &params); err != nil {
		return Parameters{}, errors.Wrap(err, "Can't parse parameters")
	}
	if err := params.Validate(); err != nil {
		return Parameters{}, errors.Wrap(err, "Invalid parameters")
	}
	return params, nil
}

// LoadParameters reads TOML file with segmentation parameters
func LoadParameters(filename string) (Parameters, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return Parameters{}, errors.Wrapf(err, "Can't read parameters file '%s'", filename)
	}
	return ParseParameters(data)
}
