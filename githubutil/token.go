// Package githubutil verifies the source-control token and organization
// before any side effect. The companion repository itself is created by the
// external Terragrunt module, never by this process.
package githubutil

import (
	"context"
	"fmt"

	"github.com/google/go-github/v66/github"
	"golang.org/x/oauth2"
)

// TokenError reports that the source-control credential check failed,
// distinct from a cloud credential failure.
type TokenError struct {
	Org string
	Err error
}

func (err *TokenError) Error() string {
	if err.Org == "" {
		return fmt.Sprintf("source-control token check failed: %v", err.Err)
	}
	return fmt.Sprintf("source-control token check failed for organization %s: %v", err.Org, err.Err)
}

func (err *TokenError) Unwrap() error { return err.Err }

// CheckToken authenticates the personal access token and confirms it can see
// the organization that will own the companion repository. It returns the
// authenticated login for the user's benefit and mutates nothing.
func CheckToken(ctx context.Context, org, token string) (string, error) {
	client := NewClient(ctx, token)
	user, _, err := client.Users.Get(ctx, "")
	if err != nil {
		return "", &TokenError{"", err}
	}
	if _, _, err := client.Organizations.Get(ctx, org); err != nil {
		return "", &TokenError{org, err}
	}
	return user.GetLogin(), nil
}

// NewClient returns a GitHub client authenticated with the given personal
// access token.
func NewClient(ctx context.Context, token string) *github.Client {
	return github.NewClient(oauth2.NewClient(
		ctx,
		oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token}),
	))
}
