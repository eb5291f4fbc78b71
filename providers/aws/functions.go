package aws

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
	lambdatypes "github.com/aws/aws-sdk-go-v2/service/lambda/types"
	"github.com/aws/smithy-go"
)

// GetFunctionAPI is the slice of the Lambda client the function service needs
type GetFunctionAPI interface {
	GetFunction(ctx context.Context, params *lambda.GetFunctionInput, optFns ...func(*lambda.Options)) (*lambda.GetFunctionOutput, error)
}

// LambdaFunctionService implements subscriber.FunctionService
type LambdaFunctionService struct {
	client GetFunctionAPI
}

// NewLambdaFunctionService creates a function service backed by Lambda
func NewLambdaFunctionService(client GetFunctionAPI) *LambdaFunctionService {
	return &LambdaFunctionService{client: client}
}

// FunctionExists reports whether the identifier names a deployed
// function. A ResourceNotFoundException means no; any other failure is
// returned as an error so the caller can abort.
func (s *LambdaFunctionService) FunctionExists(ctx context.Context, name string) (bool, error) {
	_, err := s.client.GetFunction(ctx, &lambda.GetFunctionInput{
		FunctionName: aws.String(name),
	})
	if err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to get function %s: %w", name, err)
	}
	return true, nil
}

// isNotFound classifies the typed SDK error as well as the bare API
// error code, which some endpoints still return
func isNotFound(err error) bool {
	var notFound *lambdatypes.ResourceNotFoundException
	if errors.As(err, &notFound) {
		return true
	}

	var apiErr smithy.APIError
	return errors.As(err, &apiErr) && apiErr.ErrorCode() == "ResourceNotFoundException"
}
