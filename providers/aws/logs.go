package aws

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs"

	"github.com/yairfalse/virta/subscriber"
)

// DescribeSubscriptionFiltersAPI is the slice of the CloudWatch Logs
// client the log service needs
type DescribeSubscriptionFiltersAPI interface {
	DescribeSubscriptionFilters(ctx context.Context, params *cloudwatchlogs.DescribeSubscriptionFiltersInput, optFns ...func(*cloudwatchlogs.Options)) (*cloudwatchlogs.DescribeSubscriptionFiltersOutput, error)
}

// CloudWatchLogService implements subscriber.LogService
type CloudWatchLogService struct {
	client DescribeSubscriptionFiltersAPI
}

// NewCloudWatchLogService creates a log service backed by CloudWatch Logs
func NewCloudWatchLogService(client DescribeSubscriptionFiltersAPI) *CloudWatchLogService {
	return &CloudWatchLogService{client: client}
}

// ListSubscriptionFilters returns every subscription filter attached to
// the log group. Callers treat any failure here as an empty list; the
// error is still returned so they can log it.
func (s *CloudWatchLogService) ListSubscriptionFilters(ctx context.Context, logGroupName string) ([]subscriber.SubscriptionFilter, error) {
	var filters []subscriber.SubscriptionFilter

	input := &cloudwatchlogs.DescribeSubscriptionFiltersInput{
		LogGroupName: aws.String(logGroupName),
	}

	for {
		output, err := s.client.DescribeSubscriptionFilters(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("failed to describe subscription filters for %s: %w", logGroupName, err)
		}

		for _, filter := range output.SubscriptionFilters {
			converted := subscriber.SubscriptionFilter{
				FilterName:     aws.ToString(filter.FilterName),
				DestinationArn: aws.ToString(filter.DestinationArn),
				FilterPattern:  aws.ToString(filter.FilterPattern),
				LogGroupName:   aws.ToString(filter.LogGroupName),
				Distribution:   string(filter.Distribution),
				RoleArn:        aws.ToString(filter.RoleArn),
			}
			if filter.CreationTime != nil {
				converted.CreationTime = time.UnixMilli(*filter.CreationTime)
			}
			filters = append(filters, converted)
		}

		if output.NextToken == nil {
			break
		}
		input.NextToken = output.NextToken
	}

	return filters, nil
}
