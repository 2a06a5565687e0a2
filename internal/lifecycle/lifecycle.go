// Package lifecycle enforces the status state machines for rentals and
// catalog items, plus the role/ownership policy for driving them. Every
// transition is validated against the row's current state and written as
// a single conditional UPDATE, so concurrent readers never observe a
// half-applied change.
package lifecycle

import (
	"context"
	"time"

	"github.com/reelhub/media-rental/internal/model"
	"github.com/reelhub/media-rental/internal/queue"
	"github.com/reelhub/media-rental/internal/repository"
)

// Identity is the verified caller, as decoded from the access token.
type Identity struct {
	UserID uint64
	Role   string
}

// IsStaff reports whether the identity carries the staff capability.
func (id Identity) IsStaff() bool { return id.Role == model.RoleStaff }

// RequireStaff is the capability check used by all staff-only
// operations. It returns repository.ErrForbidden for non-staff callers.
func RequireStaff(id Identity) error {
	if !id.IsStaff() {
		return repository.ErrForbidden
	}
	return nil
}

// Permitted transitions. Missing source keys are terminal states.
var rentalTransitions = map[string][]string{
	model.RentalStatusNew:     {model.RentalStatusPending, model.RentalStatusCancelled},
	model.RentalStatusPending: {model.RentalStatusReturned, model.RentalStatusCancelled},
}

var videoTransitions = map[string][]string{
	model.VideoStatusNew:     {model.VideoStatusPending},
	model.VideoStatusPending: {model.VideoStatusAccepted, model.VideoStatusRejected},
}

func canTransition(table map[string][]string, from, to string) bool {
	for _, t := range table[from] {
		if t == to {
			return true
		}
	}
	return false
}

// RentalCanTransition reports whether a rental may move from one status
// to another.
func RentalCanTransition(from, to string) bool { return canTransition(rentalTransitions, from, to) }

// VideoCanTransition reports whether a catalog item may move from one
// status to another.
func VideoCanTransition(from, to string) bool { return canTransition(videoTransitions, from, to) }

// rentalStore and videoStore are the slices of the repository layer the
// controller needs. repository.RentalRepo / VideoRepo satisfy them.
type rentalStore interface {
	GetByID(ctx context.Context, id uint64) (model.Rental, error)
	UpdateStatus(ctx context.Context, id uint64, from, to string, setReturnDate bool) (int64, error)
}

type videoStore interface {
	GetByID(ctx context.Context, id uint64) (model.Video, error)
	UpdateStatus(ctx context.Context, id uint64, from, to string) (int64, error)
}

// publisher emits domain events after successful transitions. May be nil.
type publisher interface {
	Publish(ctx context.Context, queueName string, event any) error
}

// Controller validates and applies status transitions.
type Controller struct {
	rentals rentalStore
	videos  videoStore
	events  publisher
}

// NewController builds a Controller. events may be nil to disable
// event publishing.
func NewController(rentals rentalStore, videos videoStore, events publisher) *Controller {
	return &Controller{rentals: rentals, videos: videos, events: events}
}

// ChangeRentalStatus moves a rental to target on behalf of actor.
// Staff may perform any legal transition; the owning user may only
// cancel their own rental. The write is conditional on the status read
// here, so a concurrent transition makes this one fail rather than
// double-apply.
func (c *Controller) ChangeRentalStatus(ctx context.Context, actor Identity, rentalID uint64, target string) error {
	r, err := c.rentals.GetByID(ctx, rentalID)
	if err != nil {
		return err
	}
	if !actor.IsStaff() {
		if r.UserID != actor.UserID || target != model.RentalStatusCancelled {
			return repository.ErrForbidden
		}
	}
	if !RentalCanTransition(r.Status, target) {
		return repository.ErrInvalidTransition
	}
	setReturn := target == model.RentalStatusReturned
	n, err := c.rentals.UpdateStatus(ctx, rentalID, r.Status, target, setReturn)
	if err != nil {
		return err
	}
	if n == 0 {
		// Lost a race against another transition.
		return repository.ErrInvalidTransition
	}
	if c.events != nil {
		_ = c.events.Publish(ctx, queue.RentalStatusQueue, queue.RentalStatusChangedEvent{
			RentalID:  rentalID,
			UserID:    r.UserID,
			VideoID:   r.VideoID,
			From:      r.Status,
			To:        target,
			ChangedAt: time.Now().UTC().Format(time.RFC3339),
		})
	}
	return nil
}

// ChangeVideoStatus moves a catalog item to target. Staff only.
func (c *Controller) ChangeVideoStatus(ctx context.Context, actor Identity, videoID uint64, target string) error {
	if err := RequireStaff(actor); err != nil {
		return err
	}
	v, err := c.videos.GetByID(ctx, videoID)
	if err != nil {
		return err
	}
	if !VideoCanTransition(v.Status, target) {
		return repository.ErrInvalidTransition
	}
	n, err := c.videos.UpdateStatus(ctx, videoID, v.Status, target)
	if err != nil {
		return err
	}
	if n == 0 {
		return repository.ErrInvalidTransition
	}
	return nil
}
