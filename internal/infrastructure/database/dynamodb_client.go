package database

import (
	"context"

	appconfig "rugquotes/internal/infrastructure/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

// NewDynamoDBClient creates a DynamoDB client from the service config.
//
// DynamoDBEndpoint is optional and local-friendly (e.g. http://dynamodb:8000
// for dynamodb-local); when empty the SDK resolves the regional endpoint.
func NewDynamoDBClient(ctx context.Context, cfg *appconfig.Config) (*dynamodb.Client, error) {
	awsCfg, err := newAWSConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return dynamodb.NewFromConfig(awsCfg), nil
}

func newAWSConfig(ctx context.Context, cfg *appconfig.Config) (aws.Config, error) {
	creds := credentials.NewStaticCredentialsProvider(
		cfg.AWSAccessKeyID,
		cfg.AWSSecretAccessKey,
		"",
	)

	loadOpts := []func(*config.LoadOptions) error{
		config.WithRegion(cfg.AWSRegion),
		config.WithCredentialsProvider(creds),
	}

	if cfg.DynamoDBEndpoint != "" {
		endpoint := cfg.DynamoDBEndpoint
		resolver := aws.EndpointResolverWithOptionsFunc(func(service, region string, _ ...interface{}) (aws.Endpoint, error) {
			if service == dynamodb.ServiceID {
				return aws.Endpoint{URL: endpoint, SigningRegion: region, HostnameImmutable: true}, nil
			}
			return aws.Endpoint{}, &aws.EndpointNotFoundError{}
		})
		loadOpts = append(loadOpts, config.WithEndpointResolverWithOptions(resolver))
	}

	return config.LoadDefaultConfig(ctx, loadOpts...)
}
