package terraform

import "context"

// MockExecutor is a mock implementation of Executor. Each method delegates to
// the corresponding Func field when set and otherwise returns an empty success.
type MockExecutor struct {
	InitFunc     func(ctx context.Context, opts InitOptions) error
	ValidateFunc func(ctx context.Context) error
	ApplyFunc    func(ctx context.Context) (*ApplyOutput, error)
	DestroyFunc  func(ctx context.Context, target string) error
	OutputFunc   func(ctx context.Context) (map[string]OutputValue, error)
}

// Ensure interface compliance.
var _ Executor = (*MockExecutor)(nil)

// Init mocks workspace initialization.
func (m *MockExecutor) Init(ctx context.Context, opts InitOptions) error {
	if m.InitFunc != nil {
		return m.InitFunc(ctx, opts)
	}
	return nil
}

// Validate mocks configuration validation.
func (m *MockExecutor) Validate(ctx context.Context) error {
	if m.ValidateFunc != nil {
		return m.ValidateFunc(ctx)
	}
	return nil
}

// Apply mocks an apply run.
func (m *MockExecutor) Apply(ctx context.Context) (*ApplyOutput, error) {
	if m.ApplyFunc != nil {
		return m.ApplyFunc(ctx)
	}
	return &ApplyOutput{}, nil
}

// Destroy mocks a destroy run.
func (m *MockExecutor) Destroy(ctx context.Context, target string) error {
	if m.DestroyFunc != nil {
		return m.DestroyFunc(ctx, target)
	}
	return nil
}

// Output mocks output retrieval.
func (m *MockExecutor) Output(ctx context.Context) (map[string]OutputValue, error) {
	if m.OutputFunc != nil {
		return m.OutputFunc(ctx)
	}
	return map[string]OutputValue{}, nil
}
