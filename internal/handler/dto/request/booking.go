package request

import (
	"time"

	"shareit/internal/usecase/commands"
)

type CreateBookingRequest struct {
	ItemID int64     `json:"itemId" binding:"required,gt=0"`
	Start  time.Time `json:"start" binding:"required"`
	End    time.Time `json:"end" binding:"required"`
}

func (r CreateBookingRequest) ToCommand() commands.CreateBookingRequest {
	return commands.CreateBookingRequest{
		ItemID: r.ItemID,
		Start:  r.Start,
		End:    r.End,
	}
}

// ApproveBookingQuery requires the flag to be present; a missing value is
// not read as false.
type ApproveBookingQuery struct {
	Approved *bool `form:"approved" binding:"required"`
}

// ListBookingsQuery keeps state as a raw string so an unknown literal is
// reported by the usecase with the literal in the message.
type ListBookingsQuery struct {
	State string `form:"state,default=ALL"`
	From  int    `form:"from,default=0"`
	Size  int    `form:"size,default=10"`
}
