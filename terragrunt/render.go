package terragrunt

import (
	"encoding/base64"
	"fmt"

	"github.com/kitfox-games/gameday/naming"
)

// ModulesSource is where the external Terragrunt modules live. Individual
// modules are addressed with the usual double-slash subdirectory syntax.
const ModulesSource = "github.com/kitfox-games/gameday-modules"

const (
	DefaultRegion      = "westeurope"
	DefaultEnvironment = "game"
)

// Inputs carries everything the renderer needs. Rendering is a pure function
// of Inputs; any randomness happened earlier, when the Name was chosen.
type Inputs struct {
	Name           naming.Name
	GitHubOrg      string
	GitHubToken    string // validated for presence, propagated via the environment, never serialized
	SubscriptionID string
	Region         string // DefaultRegion if empty
	Environment    string // DefaultEnvironment if empty
	StackRef       string
	ScaffoldRef    string
}

// MissingInputError means rendering was attempted without a required input,
// which must fail before anything is written to disk.
type MissingInputError string

func (err MissingInputError) Error() string {
	return fmt.Sprintf("missing required configuration input %s", string(err))
}

func (in *Inputs) normalize() error {
	for field, value := range map[string]string{
		"Name":           in.Name.String(),
		"GitHubOrg":      in.GitHubOrg,
		"GitHubToken":    in.GitHubToken,
		"SubscriptionID": in.SubscriptionID,
		"StackRef":       in.StackRef,
		"ScaffoldRef":    in.ScaffoldRef,
	} {
		if value == "" {
			return MissingInputError(field)
		}
	}
	if in.Region == "" {
		in.Region = DefaultRegion
	}
	if in.Environment == "" {
		in.Environment = DefaultEnvironment
	}
	return nil
}

func (in Inputs) unit(module, ref string, inputs map[string]string) Unit {
	return Unit{
		Source:         fmt.Sprintf("%s//modules/%s", ModulesSource, module),
		Ref:            ref,
		Region:         in.Region,
		Environment:    in.Environment,
		SubscriptionID: in.SubscriptionID,
		Inputs:         inputs,
	}
}

// Bootstrap renders the inner payload: the units that must exist before
// anything else can, namely the Terraform state backend, the managed
// identity, and the companion repository. All three ride the scaffold ref.
func Bootstrap(in Inputs) (*Document, error) {
	if err := in.normalize(); err != nil {
		return nil, err
	}
	return &Document{Units: map[string]Unit{
		"remote_state": in.unit("state-backend", in.ScaffoldRef, map[string]string{
			"resource_group":  in.Name.ResourceGroup(),
			"storage_account": in.Name.StorageAccount(),
			"state_container": in.Name.StateContainer(),
		}),
		"identity": in.unit("managed-identity", in.ScaffoldRef, map[string]string{
			"resource_group": in.Name.ResourceGroup(),
			"identity_name":  in.Name.Identity(),
		}),
		"repository": in.unit("game-repository", in.ScaffoldRef, map[string]string{
			"github_org": in.GitHubOrg,
			"repository": in.Name.Repository(),
		}),
	}}, nil
}

// Orchestrator renders the outer payload. The game stack unit carries a
// base64 copy of the fully rendered bootstrap payload because the external
// tool needs the complete child configuration as an opaque blob before the
// child resources exist.
func Orchestrator(in Inputs) (*Document, error) {
	bootstrap, err := Bootstrap(in)
	if err != nil {
		return nil, err
	}
	b, err := bootstrap.Marshal()
	if err != nil {
		return nil, err
	}
	return &Document{Units: map[string]Unit{
		"game_stack": in.unit("game-stack", in.StackRef, map[string]string{
			"name":              in.Name.String(),
			"resource_group":    in.Name.ResourceGroup(),
			"repository":        in.Name.Repository(),
			"bootstrap_payload": base64.StdEncoding.EncodeToString(b),
		}),
	}}, nil
}
