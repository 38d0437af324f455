package location

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

// ErrLocationIsNotConstructed indicates that the Location was not properly
// initialized through NewLocation or RestoreLocation.
var ErrLocationIsNotConstructed = errors.New("Location must be created via NewLocation constructor")

// MaxCodeLength bounds the human-readable slot code printed on shelf labels.
const MaxCodeLength = 64

// Location is a storage slot in the warehouse. Products in storage or listed
// reference exactly one location, and currentCount tracks how many do.
//
// Key business rules:
//   - Must be constructed through NewLocation or RestoreLocation
//   - 0 <= currentCount <= capacity at all times
//   - A zero-capacity location exists but never accepts a product
//   - currentCount changes only through Reserve and Release
//
// Example usage:
//
//	shelf, err := location.NewLocation(kernel.NewUUID(), "A-01-03", 4)
//	if err != nil {
//	    return err
//	}
//	if err = shelf.Reserve(); err != nil {
//	    return err // CapacityExceeded
//	}
type Location struct {
	id           kernel.UUID
	code         string
	capacity     int
	currentCount int
	createdAt    time.Time
	guard        guard.ConstructorGuard
}

func NewLocation(id kernel.UUID, code string, capacity int) (*Location, error) {
	l := &Location{
		createdAt: time.Now().UTC(),
		guard:     guard.NewConstructorGuard(),
	}
	if err := errors.Join(l.setID(id), l.setCode(code), l.setCapacity(capacity)); err != nil {
		return nil, err
	}
	return l, nil
}

func RestoreLocation(id kernel.UUID, code string, capacity, currentCount int, createdAt time.Time) (*Location, error) {
	l := &Location{
		createdAt: createdAt,
		guard:     guard.NewConstructorGuard(),
	}
	if err := errors.Join(
		l.setID(id),
		l.setCode(code),
		l.setCapacity(capacity),
	); err != nil {
		return nil, err
	}
	if currentCount < 0 || currentCount > capacity {
		return nil, errs.NewValueIsOutOfRangeError("currentCount", currentCount, 0, capacity)
	}
	l.currentCount = currentCount
	return l, nil
}

func (l *Location) Validate() error {
	if l == nil {
		return ErrLocationIsNotConstructed
	}
	return l.guard.Validate(ErrLocationIsNotConstructed)
}

func (l *Location) ID() kernel.UUID {
	return l.id
}

func (l *Location) Code() string {
	return l.code
}

func (l *Location) Capacity() int {
	return l.capacity
}

func (l *Location) CurrentCount() int {
	return l.currentCount
}

func (l *Location) CreatedAt() time.Time {
	return l.createdAt
}

// IsFull reports whether Reserve would fail.
func (l *Location) IsFull() bool {
	return l.currentCount >= l.capacity
}

// Reserve takes one slot.
func (l *Location) Reserve() error {
	if l.IsFull() {
		return errs.NewCapacityExceededError(l.id, l.capacity)
	}
	l.currentCount++
	return nil
}

// Release frees one slot. It reports false when the count was already zero,
// which means the ledger and the products disagree; the count stays at zero.
func (l *Location) Release() bool {
	if l.currentCount == 0 {
		return false
	}
	l.currentCount--
	return true
}

// Recount overwrites currentCount with the number of products actually
// referencing the location. It returns the previous value.
func (l *Location) Recount(actual int) (int, error) {
	if actual < 0 || actual > l.capacity {
		return l.currentCount, errs.NewValueIsOutOfRangeError("actual", actual, 0, l.capacity)
	}
	prev := l.currentCount
	l.currentCount = actual
	return prev, nil
}

func (l *Location) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	l.id = id
	return nil
}

func (l *Location) setCode(code string) error {
	code = strings.TrimSpace(code)
	if code == "" {
		return errs.NewValueIsRequiredError("code")
	}
	if len(code) > MaxCodeLength {
		return errs.NewValueIsInvalidErrorWithCause("code", fmt.Errorf("longer than %d characters", MaxCodeLength))
	}
	l.code = code
	return nil
}

func (l *Location) setCapacity(capacity int) error {
	if capacity < 0 {
		return errs.NewValueIsInvalidErrorWithCause("capacity", fmt.Errorf("%d is negative", capacity))
	}
	l.capacity = capacity
	return nil
}
