package machine

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// PolicyBundle is a violation policy configuration loadable from YAML.
// Kinds missing from Responses use Default; a nil Default keeps raise-on-everything.
type PolicyBundle struct {
	Default   *ResponseConfig              `yaml:"default"`
	Responses map[Violation]ResponseConfig `yaml:"responses"`
}

// ResponseConfig is the YAML form of a ViolationResponse.
type ResponseConfig struct {
	Action  ViolationAction `yaml:"action"`
	Handle  bool            `yaml:"handle"`
	Proceed bool            `yaml:"proceed"`
}

func (c ResponseConfig) response() ViolationResponse {
	return NewViolationResponse(c.Action, c.Handle, c.Proceed)
}

// LoadPolicyBundle reads and parses a YAML violation policy file. Unknown fields
// are rejected; an empty file yields an empty bundle.
func LoadPolicyBundle(path string) (*PolicyBundle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading policy config: %w", err)
	}
	var bundle PolicyBundle
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&bundle); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing policy config: %w", err)
	}
	return &bundle, nil
}

// Validate checks that every violation kind and action in the bundle is recognized.
func (b *PolicyBundle) Validate() error {
	if b.Default != nil && !ValidViolationActions[b.Default.Action] {
		return fmt.Errorf("unknown default action %q", b.Default.Action)
	}
	for kind, r := range b.Responses {
		if !ValidViolations[kind] {
			return fmt.Errorf("unknown violation %q", kind)
		}
		if !ValidViolationActions[r.Action] {
			return fmt.Errorf("unknown action %q for violation %q", r.Action, kind)
		}
	}
	return nil
}

// Policy builds a ViolationPolicy from the bundle.
func (b *PolicyBundle) Policy() (*ViolationPolicy, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}
	p := NewViolationPolicy()
	if b.Default != nil {
		p.Default = b.Default.response()
	}
	for kind, r := range b.Responses {
		p.SetResponseFor(kind, r.response())
	}
	return p, nil
}
