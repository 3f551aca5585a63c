// Package guard runs ordered precondition checks in front of an operation. The first failing
// check aborts the chain and the operation is never called.
package guard

import (
	"context"

	"go.uber.org/zap"

	"pickme-backend/pkg/apperror"
	"pickme-backend/pkg/logger"
	"pickme-backend/pkg/metrics"
)

// Check passes by returning nil.
type Check func(ctx context.Context) error

type step struct {
	name  string
	check Check
}

type Chain struct {
	operation string
	steps     []step
}

// For starts an empty chain for the named operation.
func For(operation string) *Chain {
	return &Chain{operation: operation}
}

func (c *Chain) Then(name string, check Check) *Chain {
	c.steps = append(c.steps, step{name: name, check: check})
	return c
}

func (c *Chain) Operation() string {
	return c.operation
}

// Steps lists the check names in execution order.
func (c *Chain) Steps() []string {
	names := make([]string, len(c.steps))
	for i, s := range c.steps {
		names[i] = s.name
	}
	return names
}

// Verify runs every check in order and returns the first failure.
func (c *Chain) Verify(ctx context.Context) error {
	for _, s := range c.steps {
		err := s.check(ctx)
		if err == nil {
			continue
		}
		kind := apperror.KindOf(err)
		metrics.RecordGuardRejection(c.operation, string(kind))
		if kind == apperror.KindInternal {
			logger.Log.Error("Guard check failed",
				zap.String("operation", c.operation),
				zap.String("check", s.name),
				zap.Error(err),
			)
		} else {
			logger.Log.Info("Guard rejected operation",
				zap.String("operation", c.operation),
				zap.String("check", s.name),
				zap.String("kind", string(kind)),
			)
		}
		return err
	}
	return nil
}

// Run calls op only after every check of c has passed.
func Run[T any](ctx context.Context, c *Chain, op func(ctx context.Context) (T, error)) (T, error) {
	if err := c.Verify(ctx); err != nil {
		var zero T
		return zero, err
	}
	return op(ctx)
}
