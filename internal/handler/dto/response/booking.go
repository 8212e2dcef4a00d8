package response

import (
	"time"

	"shareit/internal/usecase/queries"

	"github.com/jinzhu/copier"
)

type ItemRefResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type BookerRefResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type BookingResponse struct {
	ID     int64             `json:"id"`
	Start  time.Time         `json:"start"`
	End    time.Time         `json:"end"`
	Status string            `json:"status"`
	Item   ItemRefResponse   `json:"item"`
	Booker BookerRefResponse `json:"booker"`
}

type BookingBriefResponse struct {
	ID       int64     `json:"id"`
	BookerID int64     `json:"bookerId"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
}

type NearestBookingsResponse struct {
	ItemID      int64                 `json:"itemId"`
	LastBooking *BookingBriefResponse `json:"lastBooking"`
	NextBooking *BookingBriefResponse `json:"nextBooking"`
}

func FromBookingView(v *queries.BookingView) (*BookingResponse, error) {
	var res BookingResponse
	if err := copier.Copy(&res, v); err != nil {
		return nil, err
	}
	return &res, nil
}

func FromBookingViews(views []*queries.BookingView) ([]*BookingResponse, error) {
	res := make([]*BookingResponse, 0, len(views))
	for _, v := range views {
		item, err := FromBookingView(v)
		if err != nil {
			return nil, err
		}
		res = append(res, item)
	}
	return res, nil
}

func FromNearestBookings(v *queries.NearestBookingsView) *NearestBookingsResponse {
	return &NearestBookingsResponse{
		ItemID:      v.ItemID,
		LastBooking: fromBrief(v.Last),
		NextBooking: fromBrief(v.Next),
	}
}

func fromBrief(b *queries.BookingBrief) *BookingBriefResponse {
	if b == nil {
		return nil
	}
	return &BookingBriefResponse{
		ID:       b.ID,
		BookerID: b.BookerID,
		Start:    b.Start,
		End:      b.End,
	}
}
