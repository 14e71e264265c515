package machine

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// MachineType names a supported machine model.
type MachineType string

const MachineSWG091N2 MachineType = "SWG091N2"

// KnittingPosition is where on the beds a program is placed.
type KnittingPosition string

const (
	PositionLeft   KnittingPosition = "Left"
	PositionRight  KnittingPosition = "Right"
	PositionCenter KnittingPosition = "Center"
	PositionKeep   KnittingPosition = "Keep"
)

// ValidMachineTypes is the set of recognized machine models.
var ValidMachineTypes = map[MachineType]bool{MachineSWG091N2: true}

// ValidKnittingPositions is the set of recognized knitting positions.
var ValidKnittingPositions = map[KnittingPosition]bool{
	PositionLeft: true, PositionRight: true, PositionCenter: true, PositionKeep: true,
}

// carrierPalette gives carriers 1..10 distinct default yarn colors.
var carrierPalette = []string{
	"lightcoral", "lightskyblue", "lightgreen", "plum", "khaki",
	"wheat", "aquamarine", "palevioletred", "sandybrown", "powderblue",
}

const defaultYarnColor = "lightgray"

// Specification is the fixed configuration of a machine.
type Specification struct {
	Machine         MachineType      `yaml:"machine"`
	Gauge           int              `yaml:"gauge"`
	Position        KnittingPosition `yaml:"position"`
	CarrierCount    int              `yaml:"carrier_count"`
	NeedleCount     int              `yaml:"needle_count"`
	MaximumRack     int              `yaml:"maximum_rack"`
	MaximumFloat    int              `yaml:"maximum_float"`
	MaximumLoopHold int              `yaml:"maximum_loop_hold"`
	HookSize        int              `yaml:"hook_size"`
	CarrierColors   map[int]string   `yaml:"carrier_colors,omitempty"` // overrides the default palette
}

// DefaultSpecification returns the specification of a standard 15 gauge machine.
func DefaultSpecification() Specification {
	return Specification{
		Machine:         MachineSWG091N2,
		Gauge:           15,
		Position:        PositionRight,
		CarrierCount:    10,
		NeedleCount:     540,
		MaximumRack:     4,
		MaximumFloat:    20,
		MaximumLoopHold: 4,
		HookSize:        5,
	}
}

// CarrierColor is the default yarn color for a carrier id.
func (s Specification) CarrierColor(id int) string {
	if c, ok := s.CarrierColors[id]; ok {
		return c
	}
	if id >= 1 && id <= len(carrierPalette) {
		return carrierPalette[id-1]
	}
	return defaultYarnColor
}

// Validate checks that every field is in range.
func (s Specification) Validate() error {
	if !ValidMachineTypes[s.Machine] {
		return fmt.Errorf("unknown machine type %q", s.Machine)
	}
	if !ValidKnittingPositions[s.Position] {
		return fmt.Errorf("unknown knitting position %q", s.Position)
	}
	if s.Gauge <= 0 {
		return fmt.Errorf("gauge must be positive, got %d", s.Gauge)
	}
	if s.NeedleCount <= 0 {
		return fmt.Errorf("needle_count must be positive, got %d", s.NeedleCount)
	}
	if s.CarrierCount < 1 || s.CarrierCount > 99 {
		return fmt.Errorf("carrier_count must be in [1, 99], got %d", s.CarrierCount)
	}
	if s.MaximumRack < 0 {
		return fmt.Errorf("maximum_rack must be non-negative, got %d", s.MaximumRack)
	}
	if s.MaximumFloat < 0 {
		return fmt.Errorf("maximum_float must be non-negative, got %d", s.MaximumFloat)
	}
	if s.MaximumLoopHold <= 0 {
		return fmt.Errorf("maximum_loop_hold must be positive, got %d", s.MaximumLoopHold)
	}
	if s.HookSize < 0 {
		return fmt.Errorf("hook_size must be non-negative, got %d", s.HookSize)
	}
	for id := range s.CarrierColors {
		if id < 1 || id > s.CarrierCount {
			return fmt.Errorf("carrier_colors names carrier %d outside [1, %d]", id, s.CarrierCount)
		}
	}
	return nil
}

// LoadSpecification reads a YAML specification. Fields missing from the file keep
// their default values; unknown fields are rejected.
func LoadSpecification(path string) (Specification, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Specification{}, fmt.Errorf("reading machine spec: %w", err)
	}
	return ParseSpecification(data)
}

// ParseSpecification decodes a YAML specification over the defaults and validates it.
func ParseSpecification(data []byte) (Specification, error) {
	spec := DefaultSpecification()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&spec); err != nil && !errors.Is(err, io.EOF) {
		return Specification{}, fmt.Errorf("parsing machine spec: %w", err)
	}
	if err := spec.Validate(); err != nil {
		return Specification{}, fmt.Errorf("invalid machine spec: %w", err)
	}
	return spec, nil
}

// YAML renders the specification in the format LoadSpecification reads.
func (s Specification) YAML() ([]byte, error) {
	return yaml.Marshal(s)
}
