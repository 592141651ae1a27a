// Package environ names the environment tokens gameday reads and answers
// whether the required ones are present. Tokens are read once per use and
// never cached or persisted.
package environ

import (
	"fmt"
	"os"
	"strings"
)

// Environment variable names are preserved from the launch scripts so that
// existing shells and CI configurations keep working. The TF_VAR_ names
// also propagate into the external tools unchanged.
const (
	GitHubOrg      = "TF_VAR_github_org"
	GitHubToken    = "TF_VAR_github_pat"
	SubscriptionID = "ARM_SUBSCRIPTION_ID"

	StackRef    = "GAMEDAY_STACK_REF"
	ScaffoldRef = "GAMEDAY_SCAFFOLD_REF"

	// AutoApprove set to "true" skips the confirmation prompt, which is how
	// the launch service keeps `gameday run` from blocking on input.
	AutoApprove = "GAMEDAY_AUTO_APPROVE"
)

const (
	DefaultStackRef    = "v0.4.2"
	DefaultScaffoldRef = "v1.2.0"
)

// Required lists the tokens without which no run can start.
func Required() []string {
	return []string{GitHubOrg, GitHubToken, SubscriptionID}
}

type MissingTokenError []string

func (err MissingTokenError) Error() string {
	return fmt.Sprintf("missing required credential %s", strings.Join(err, ", "))
}

// Check fails with a MissingTokenError naming every absent required token.
// It must be called before any side effect.
func Check() error {
	if missing := Missing(); len(missing) > 0 {
		return MissingTokenError(missing)
	}
	return nil
}

func Missing() []string {
	var missing []string
	for _, name := range Required() {
		if os.Getenv(name) == "" {
			missing = append(missing, name)
		}
	}
	return missing
}

type Status struct {
	Variable string `json:"variable"`
	IsSet    bool   `json:"is_set"`
}

// Statuses reports presence (never values) of every required token.
func Statuses() []Status {
	statuses := make([]Status, 0, len(Required()))
	for _, name := range Required() {
		statuses = append(statuses, Status{
			Variable: name,
			IsSet:    os.Getenv(name) != "",
		})
	}
	return statuses
}

// Ref returns the named version-reference token or def when it's unset.
func Ref(name, def string) string {
	if s := os.Getenv(name); s != "" {
		return s
	}
	return def
}
