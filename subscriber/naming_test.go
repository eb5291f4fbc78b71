package subscriber

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogGroupLogicalID(t *testing.T) {
	tests := []struct {
		handler string
		want    string
	}{
		{"foo", "FooLogGroup"},
		{"my-function_test", "MyDashFunctionUnderscoretestLogGroup"},
		{"charge", "ChargeLogGroup"},
		{"refund-worker", "RefundDashWorkerLogGroup"},
		{"snake_case", "SnakeUnderscorecaseLogGroup"},
		{"Upper", "UpperLogGroup"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.handler, func(t *testing.T) {
			assert.Equal(t, tt.want, LogGroupLogicalID(tt.handler))
		})
	}
}
