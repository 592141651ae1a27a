// Package azutil verifies Azure credentials before any resource mutation
// happens. Provisioning itself is Terragrunt's job, not this package's.
package azutil

import (
	"context"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/resources/armsubscriptions"
)

// SubscriptionError reports that the cloud-subscription check failed,
// distinct from a source-control credential failure.
type SubscriptionError struct {
	SubscriptionID string
	Err            error
}

func (err *SubscriptionError) Error() string {
	return fmt.Sprintf("cloud subscription check failed for %s: %v", err.SubscriptionID, err.Err)
}

func (err *SubscriptionError) Unwrap() error { return err.Err }

// CheckSubscription authenticates with ambient Azure credentials (CLI login,
// service principal, or managed identity) and confirms the subscription is
// visible to the authenticated principal. It returns the subscription's
// display name for the user's benefit and mutates nothing.
func CheckSubscription(ctx context.Context, subscriptionID string) (string, error) {
	credential, err := azidentity.NewDefaultAzureCredential(nil)
	if err != nil {
		return "", &SubscriptionError{subscriptionID, err}
	}
	client, err := armsubscriptions.NewClient(credential, nil)
	if err != nil {
		return "", &SubscriptionError{subscriptionID, err}
	}
	resp, err := client.Get(ctx, subscriptionID, nil)
	if err != nil {
		return "", &SubscriptionError{subscriptionID, err}
	}
	displayName := subscriptionID
	if resp.DisplayName != nil {
		displayName = *resp.DisplayName
	}
	return displayName, nil
}
