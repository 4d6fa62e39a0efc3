package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager/types"

	kerrors "github.com/PolarWolf314/ssh-keys/internal/errors"
)

// secretsManagerAPI is the subset of the Secrets Manager client AWSStore uses.
type secretsManagerAPI interface {
	GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
	PutSecretValue(ctx context.Context, params *secretsmanager.PutSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.PutSecretValueOutput, error)
}

// AWSOptions selects the credentials and region for AWSStore.
type AWSOptions struct {
	// Profile is a profile name from ~/.aws/config.
	Profile string

	// Region is the AWS region holding the secret.
	Region string
}

// AWSStore is a SecretStore backed by AWS Secrets Manager.
type AWSStore struct {
	client secretsManagerAPI
}

// NewAWSStore loads the shared AWS configuration for opts.Profile and returns
// a store for opts.Region. The SDK's own retries are disabled; a failed
// request is reported once.
func NewAWSStore(ctx context.Context, opts AWSOptions) (*AWSStore, error) {
	loadOpts := []func(*config.LoadOptions) error{
		config.WithRetryMaxAttempts(1),
	}
	if opts.Profile != "" {
		loadOpts = append(loadOpts, config.WithSharedConfigProfile(opts.Profile))
	}
	if opts.Region != "" {
		loadOpts = append(loadOpts, config.WithRegion(opts.Region))
	}

	cfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("%w: loading AWS profile %q: %v", kerrors.ErrStore, opts.Profile, err)
	}

	return &AWSStore{client: secretsmanager.NewFromConfig(cfg)}, nil
}

// Fetch implements SecretStore.
func (s *AWSStore) Fetch(ctx context.Context, id string) (string, error) {
	out, err := s.client.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(id),
	})
	if err != nil {
		return "", wrapAWSError("fetching", id, err)
	}

	if out.SecretString == nil {
		return "", fmt.Errorf("%w: %s", kerrors.ErrSecretNoContent, id)
	}

	return *out.SecretString, nil
}

// Replace implements SecretStore.
func (s *AWSStore) Replace(ctx context.Context, id, payload, token string) (string, error) {
	input := &secretsmanager.PutSecretValueInput{
		SecretId:     aws.String(id),
		SecretString: aws.String(payload),
	}
	if token != "" {
		input.ClientRequestToken = aws.String(token)
	}

	out, err := s.client.PutSecretValue(ctx, input)
	if err != nil {
		return "", wrapAWSError("replacing", id, err)
	}

	return aws.ToString(out.VersionId), nil
}

func wrapAWSError(action, id string, err error) error {
	var notFound *types.ResourceNotFoundException
	if errors.As(err, &notFound) {
		return fmt.Errorf("%w: %s: %v", kerrors.ErrSecretNotFound, id, err)
	}
	return fmt.Errorf("%w: %s %s: %v", kerrors.ErrStore, action, id, err)
}
