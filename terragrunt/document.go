package terragrunt

import (
	"encoding/json"
	"fmt"

	"github.com/kitfox-games/gameday/jsonutil"
)

// Unit describes one configuration unit for the external scaffolding tool to
// materialize: where the module lives, which ref to pin, where the resources
// land, and the variables the module needs.
type Unit struct {
	Source         string            `json:"source"`
	Ref            string            `json:"ref"`
	Region         string            `json:"region"`
	Environment    string            `json:"environment"`
	SubscriptionID string            `json:"subscription_id"`
	Inputs         map[string]string `json:"inputs"`
}

// Document is the full configuration handed to the external tool. It's
// constructed as structured data and serialized exactly once so no manual
// escaping or partial string concatenation can leave a hole in it.
type Document struct {
	Units map[string]Unit `json:"units"`
}

// MissingValueError means a unit would have been emitted with an empty
// value, which the external tool would accept silently and misprovision.
type MissingValueError struct {
	Unit, Field string
}

func (err MissingValueError) Error() string {
	return fmt.Sprintf("configuration value %s.%s is empty", err.Unit, err.Field)
}

// Marshal validates and serializes the document. Output is byte-identical
// for identical documents: no timestamps, no nonces, and map keys are
// serialized in sorted order.
func (d *Document) Marshal() ([]byte, error) {
	if err := d.validate(); err != nil {
		return nil, err
	}
	return json.MarshalIndent(d, "", "\t")
}

// Write validates and writes the document to pathname.
func (d *Document) Write(pathname string) error {
	if err := d.validate(); err != nil {
		return err
	}
	return jsonutil.Write(d, pathname)
}

func (d *Document) validate() error {
	for label, unit := range d.Units {
		for field, value := range map[string]string{
			"source":          unit.Source,
			"ref":             unit.Ref,
			"region":          unit.Region,
			"environment":     unit.Environment,
			"subscription_id": unit.SubscriptionID,
		} {
			if value == "" {
				return MissingValueError{label, field}
			}
		}
		for name, value := range unit.Inputs {
			if value == "" {
				return MissingValueError{label, "inputs." + name}
			}
		}
	}
	return nil
}
