package reconciler

import (
	"github.com/agentstation/toolmap/pkg/errors"
)

type options struct {
	strategy Strategy
	tracking bool
}

func defaultOptions() *options {
	strategy, _ := NewFieldPolicyStrategy(nil)
	return &options{
		strategy: strategy,
		tracking: false,
	}
}

// Option is a function that configures a Reconciler.
type Option func(*options) error

func (o *options) apply(opts ...Option) (*options, error) {
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	return o, nil
}

// newOptions returns reconciler options with default values.
func newOptions(opts ...Option) (*options, error) {
	return defaultOptions().apply(opts...)
}

// WithStrategy sets the merge strategy.
func WithStrategy(strategy Strategy) Option {
	return func(o *options) error {
		if strategy == nil {
			return &errors.ValidationError{
				Field:   "strategy",
				Message: "cannot be nil",
			}
		}
		o.strategy = strategy
		return nil
	}
}

// WithPolicies replaces the strategy with a field-policy strategy using the
// given overrides.
func WithPolicies(overrides map[Field]PolicyType) Option {
	return func(o *options) error {
		strategy, err := NewFieldPolicyStrategy(overrides)
		if err != nil {
			return err
		}
		o.strategy = strategy
		return nil
	}
}

// WithProvenance enables field-level tracking.
func WithProvenance(enabled bool) Option {
	return func(o *options) error {
		o.tracking = enabled
		return nil
	}
}
