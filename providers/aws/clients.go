// Package aws implements the remote collaborators of the subscription
// engine on top of the AWS SDK: CloudWatch Logs for subscription filter
// queries and Lambda for forwarder existence checks.
package aws

import (
	"context"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
)

// Clients bundles the service clients one pass needs
type Clients struct {
	Logs      *CloudWatchLogService
	Functions *LambdaFunctionService
}

// NewClients builds service clients for the region using the default
// credential chain
func NewClients(ctx context.Context, region string) (*Clients, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return &Clients{
		Logs:      NewCloudWatchLogService(cloudwatchlogs.NewFromConfig(cfg)),
		Functions: NewLambdaFunctionService(lambda.NewFromConfig(cfg)),
	}, nil
}
