// Package rating holds user ratings of arbitrary entities and their
// aggregation. Ratings are append-only: a value never changes once recorded.
package rating

import (
	"errors"
	"fmt"
	"time"

	"golang.org/x/exp/constraints"

	"magazine/catalog/internal/owner"
)

const (
	MinValue     = 1
	MaxValue     = 10
	DefaultValue = 5
)

// ErrValueRange is returned for values outside [MinValue, MaxValue].
var ErrValueRange = errors.New("rating value out of range")

// Rating is one user's score for one entity.
type Rating struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Value     int       `json:"value"`
	Owner     owner.Ref `json:"owner"`
	CreatedAt time.Time `json:"created_at"`
}

// New validates and builds an unsaved rating. A zero value means DefaultValue.
func New(userID int64, ref owner.Ref, value int) (Rating, error) {
	if userID <= 0 {
		return Rating{}, &owner.InvalidOwnerError{Ref: owner.Ref{Kind: owner.User, ID: userID}, Reason: "rating author has no identity"}
	}
	if !ref.HasIdentity() {
		return Rating{}, &owner.InvalidOwnerError{Ref: ref, Reason: "rated entity has no identity"}
	}
	if value == 0 {
		value = DefaultValue
	}
	if value < MinValue || value > MaxValue {
		return Rating{}, fmt.Errorf("%w: %d not in [%d, %d]", ErrValueRange, value, MinValue, MaxValue)
	}
	return Rating{UserID: userID, Value: value, Owner: ref}, nil
}

// Mean is the arithmetic mean of xs, or nil for an empty slice.
func Mean[T constraints.Integer | constraints.Float](xs []T) *float64 {
	if len(xs) == 0 {
		return nil
	}
	var sum float64
	for _, x := range xs {
		sum += float64(x)
	}
	m := sum / float64(len(xs))
	return &m
}

// Aggregate is the mean value of ratings, or nil when there are none.
func Aggregate(ratings []Rating) *float64 {
	values := make([]int, len(ratings))
	for i, r := range ratings {
		values[i] = r.Value
	}
	return Mean(values)
}
