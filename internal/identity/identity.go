// Package identity resolves the account-linking bearer token carried by a
// directive into the user id that owns the linked endpoints.
package identity

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
)

var (
	// ErrNoToken is returned when the directive carries no bearer token
	ErrNoToken = errors.New("no bearer token")
	// ErrNoUser is returned when the token resolves to a user without an id
	ErrNoUser = errors.New("token resolved to no user")
)

// subAttribute is the Cognito attribute holding the stable user id
const subAttribute = "sub"

// CognitoClient defines the interface for Cognito operations
type CognitoClient interface {
	GetUser(ctx context.Context, params *cognitoidentityprovider.GetUserInput, optFns ...func(*cognitoidentityprovider.Options)) (*cognitoidentityprovider.GetUserOutput, error)
}

// CognitoResolver resolves access tokens issued by a Cognito user pool
type CognitoResolver struct {
	client CognitoClient
}

// NewCognitoResolver creates a new CognitoResolver
func NewCognitoResolver(client CognitoClient) *CognitoResolver {
	return &CognitoResolver{client: client}
}

// UserID returns the sub attribute of the token's user, falling back to the
// username when the pool does not return one
func (r *CognitoResolver) UserID(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", ErrNoToken
	}

	output, err := r.client.GetUser(ctx, &cognitoidentityprovider.GetUserInput{
		AccessToken: aws.String(token),
	})
	if err != nil {
		return "", fmt.Errorf("failed to get user: %w", err)
	}

	for _, attr := range output.UserAttributes {
		if aws.ToString(attr.Name) == subAttribute && aws.ToString(attr.Value) != "" {
			return aws.ToString(attr.Value), nil
		}
	}

	if username := aws.ToString(output.Username); username != "" {
		return username, nil
	}
	return "", ErrNoUser
}
