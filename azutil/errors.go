package azutil

import (
	"errors"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
)

const SubscriptionNotFound = "SubscriptionNotFound"

func ErrorCode(err error) string {
	var rerr *azcore.ResponseError
	if errors.As(err, &rerr) {
		return rerr.ErrorCode
	}
	return ""
}

func ErrorCodeIs(err error, code string) bool {
	return ErrorCode(err) == code
}

func ErrorStatusIs(err error, statusCode int) bool {
	var rerr *azcore.ResponseError
	if errors.As(err, &rerr) {
		return rerr.StatusCode == statusCode
	}
	return false
}
