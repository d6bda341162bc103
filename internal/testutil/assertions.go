package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/objgraph/objgraph"
)

// AssertResolvable checks id resolves to a non-nil T
func AssertResolvable[T any](t *testing.T, c *objgraph.Container, id objgraph.Identifier) T {
	t.Helper()
	instance, err := objgraph.Resolve[T](c, id)
	require.NoError(t, err, "failed to resolve %s", id)
	require.NotNil(t, instance, "resolved %s is nil", id)
	return instance
}

// AssertNotFound checks resolving id fails with a not found error
func AssertNotFound(t *testing.T, c *objgraph.Container, id objgraph.Identifier) {
	t.Helper()
	_, err := c.Resolve(id)
	assert.Error(t, err)
	assert.True(t, objgraph.IsNotFound(err), "expected not found error, got: %v", err)
}

// AssertErrorType checks if an error is of a specific type
func AssertErrorType[T error](t *testing.T, err error, msgAndArgs ...interface{}) T {
	t.Helper()
	var target T
	assert.ErrorAs(t, err, &target, msgAndArgs...)
	return target
}

// AssertCircularDependency checks if an error is a circular dependency error
func AssertCircularDependency(t *testing.T, err error) {
	t.Helper()
	assert.Error(t, err)
	assert.True(t, objgraph.IsCircularDependency(err), "expected circular dependency error, got: %v", err)
}

// AssertSameInstance verifies two values are the same instance
func AssertSameInstance(t *testing.T, expected, actual interface{}, msgAndArgs ...interface{}) {
	t.Helper()
	assert.Same(t, expected, actual, msgAndArgs...)
}

// AssertDifferentInstances verifies two values are different instances
func AssertDifferentInstances(t *testing.T, first, second interface{}, msgAndArgs ...interface{}) {
	t.Helper()
	assert.NotSame(t, first, second, msgAndArgs...)
}
