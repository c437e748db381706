package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/pageza/mealmind/backend/internal/llm"
)

// MockCompleter is a mock implementation of the llm.Completer interface
type MockCompleter struct {
	mock.Mock
}

var _ llm.Completer = (*MockCompleter)(nil)

func (m *MockCompleter) Complete(ctx context.Context, req llm.CompletionRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

// Requests returns the requests received so far, in order
func (m *MockCompleter) Requests() []llm.CompletionRequest {
	var out []llm.CompletionRequest
	for _, call := range m.Calls {
		if call.Method != "Complete" {
			continue
		}
		out = append(out, call.Arguments.Get(1).(llm.CompletionRequest))
	}
	return out
}

// ForModel matches requests sent to the given model
func ForModel(model string) interface{} {
	return mock.MatchedBy(func(req llm.CompletionRequest) bool {
		return req.Model == model
	})
}

// AtTemperature matches requests at the given temperature, which separates primary
// calls from repair calls
func AtTemperature(temperature float64) interface{} {
	return mock.MatchedBy(func(req llm.CompletionRequest) bool {
		return req.Temperature == temperature
	})
}
