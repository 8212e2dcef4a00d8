package queries

import (
	"time"

	"shareit/internal/domain/booking"
)

type UserRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type ItemRef struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	OwnerID int64  `json:"owner_id"`
}

// BookingView is a booking joined with its item and booker.
type BookingView struct {
	ID        int64     `json:"id"`
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	Status    string    `json:"status"`
	Item      ItemRef   `json:"item"`
	Booker    UserRef   `json:"booker"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type UserView struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type ItemView struct {
	ID          int64  `json:"id"`
	OwnerID     int64  `json:"owner_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Available   bool   `json:"available"`
}

type BookingBrief struct {
	ID       int64     `json:"id"`
	BookerID int64     `json:"booker_id"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
}

// NearestBookingsView holds the latest finished and the earliest upcoming
// booking of an item. Either may be nil.
type NearestBookingsView struct {
	ItemID int64         `json:"item_id"`
	Last   *BookingBrief `json:"last,omitempty"`
	Next   *BookingBrief `json:"next,omitempty"`
}

// Scope decides whose bookings a listing covers.
type Scope int

const (
	ScopeBooker Scope = iota + 1
	ScopeOwner
)

func (s Scope) String() string {
	switch s {
	case ScopeBooker:
		return "booker"
	case ScopeOwner:
		return "owner"
	default:
		return "unknown"
	}
}

type BookingFilter struct {
	Scope   Scope
	ActorID int64
	State   booking.State
	Now     time.Time
	Page    Page
}
