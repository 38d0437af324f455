package errs_test

import (
	"errors"
	"fmt"
	"testing"

	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInvalidTransitionError(t *testing.T) {
	t.Run("without cause", func(t *testing.T) {
		err := errs.NewInvalidTransitionError("product", "intake", "storage")

		assert.Equal(t, "transition is invalid: product intake -> storage", err.Error())
		require.ErrorIs(t, err, errs.ErrInvalidTransition)
	})

	t.Run("with cause", func(t *testing.T) {
		err := errs.NewInvalidTransitionErrorWithCause("product", "inspection", "storage", errors.New("location is required"))

		assert.Equal(t,
			"transition is invalid: product inspection -> storage (cause: location is required)",
			err.Error())
	})
}

func TestCapacityExceededError(t *testing.T) {
	err := errs.NewCapacityExceededError("A-01", 4)

	assert.Equal(t, "capacity exceeded: location A-01 is full at capacity 4", err.Error())
}

func TestTaxonomyUnwrapsToSentinels(t *testing.T) {
	cases := map[string]struct {
		err      error
		sentinel error
	}{
		"unauthorized":      {errs.NewUnauthorizedError("seller", "picking", "packed"), errs.ErrUnauthorized},
		"capacity_exceeded": {errs.NewCapacityExceededError("A-01", 1), errs.ErrCapacityExceeded},
		"already_bundled":   {errs.NewAlreadyBundledError("p1", "g1"), errs.ErrAlreadyBundled},
		"owner_mismatch":    {errs.NewOwnerMismatchError("s1", "s2"), errs.ErrOwnerMismatch},
		"conflict":          {errs.NewConflictError("shipment_group", "g1", 3), errs.ErrConflict},
		"dispatch_failure":  {errs.NewDispatchFailureError("shipment_packed", "s1", nil), errs.ErrDispatchFailure},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			require.ErrorIs(t, tc.err, tc.sentinel)

			wrapped := fmt.Errorf("handler: %w", tc.err)
			require.ErrorIs(t, wrapped, tc.sentinel)
		})
	}
}

func TestInternalize(t *testing.T) {
	t.Run("wraps unknown errors", func(t *testing.T) {
		cause := errors.New("connection reset")

		err := errs.Internalize(cause)

		require.ErrorIs(t, err, errs.ErrInternal)
		require.ErrorIs(t, err, cause)
		assert.Equal(t, "internal error: connection reset", err.Error())
	})

	t.Run("keeps domain errors", func(t *testing.T) {
		domainErr := errs.NewConflictError("product", "p1", 1)

		err := errs.Internalize(domainErr)

		assert.Same(t, domainErr, err)
		assert.False(t, errors.Is(err, errs.ErrInternal))
	})

	t.Run("keeps nil", func(t *testing.T) {
		require.NoError(t, errs.Internalize(nil))
	})

	t.Run("does not double wrap", func(t *testing.T) {
		internal := errs.NewInternalError(errors.New("boom"))

		assert.Same(t, internal, errs.Internalize(internal))
	})
}

func TestIsDomain(t *testing.T) {
	assert.True(t, errs.IsDomain(errs.NewObjectNotFoundError("product", "p1")))
	assert.True(t, errs.IsDomain(errs.NewValueIsRequiredError("ownerID")))
	assert.False(t, errs.IsDomain(errors.New("disk full")))
	assert.False(t, errs.IsDomain(errs.NewDispatchFailureError("product_sold", "s1", nil)))
}
