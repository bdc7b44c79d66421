package dto

import (
	"github.com/Eursukkul/shareit/internal/models"
	"github.com/Eursukkul/shareit/internal/service"
)

type UserResponse struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type ItemResponse struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Available   bool   `json:"available"`
	RequestID   *uint  `json:"requestId,omitempty"`
}

type BookingShortResponse struct {
	ID       uint     `json:"id"`
	BookerID uint     `json:"bookerId"`
	Start    DateTime `json:"start"`
	End      DateTime `json:"end"`
}

type CommentResponse struct {
	ID         uint     `json:"id"`
	Text       string   `json:"text"`
	AuthorName string   `json:"authorName"`
	Created    DateTime `json:"created"`
}

type ItemDetailsResponse struct {
	ItemResponse
	LastBooking *BookingShortResponse `json:"lastBooking"`
	NextBooking *BookingShortResponse `json:"nextBooking"`
	Comments    []CommentResponse     `json:"comments"`
}

type ItemRequestResponse struct {
	ID          uint           `json:"id"`
	Description string         `json:"description"`
	RequestorID uint           `json:"requestorId"`
	Created     DateTime       `json:"created"`
	Items       []ItemResponse `json:"items"`
}

type BookingResponse struct {
	ID     uint                 `json:"id"`
	Start  DateTime             `json:"start"`
	End    DateTime             `json:"end"`
	Status models.BookingStatus `json:"status"`
	Item   ItemResponse         `json:"item"`
	Booker UserResponse         `json:"booker"`
}

type ErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

func ToUserResponse(u *models.User) UserResponse {
	return UserResponse{ID: u.ID, Name: u.Name, Email: u.Email}
}

func ToUserResponses(users []models.User) []UserResponse {
	resp := make([]UserResponse, len(users))
	for i := range users {
		resp[i] = ToUserResponse(&users[i])
	}
	return resp
}

func ToItemResponse(it *models.Item) ItemResponse {
	return ItemResponse{
		ID:          it.ID,
		Name:        it.Name,
		Description: it.Description,
		Available:   it.Available,
		RequestID:   it.RequestID,
	}
}

func ToItemResponses(items []models.Item) []ItemResponse {
	resp := make([]ItemResponse, len(items))
	for i := range items {
		resp[i] = ToItemResponse(&items[i])
	}
	return resp
}

func ToCommentResponse(c *models.Comment) CommentResponse {
	resp := CommentResponse{ID: c.ID, Text: c.Text, Created: NewDateTime(c.Created)}
	if c.Author != nil {
		resp.AuthorName = c.Author.Name
	}
	return resp
}

func ToItemDetailsResponse(d *service.ItemDetails) ItemDetailsResponse {
	resp := ItemDetailsResponse{
		ItemResponse: ToItemResponse(&d.Item),
		LastBooking:  toBookingShort(d.LastBooking),
		NextBooking:  toBookingShort(d.NextBooking),
		Comments:     make([]CommentResponse, len(d.Comments)),
	}
	for i := range d.Comments {
		resp.Comments[i] = ToCommentResponse(&d.Comments[i])
	}
	return resp
}

func ToItemDetailsResponses(details []service.ItemDetails) []ItemDetailsResponse {
	resp := make([]ItemDetailsResponse, len(details))
	for i := range details {
		resp[i] = ToItemDetailsResponse(&details[i])
	}
	return resp
}

func toBookingShort(b *models.Booking) *BookingShortResponse {
	if b == nil {
		return nil
	}
	return &BookingShortResponse{
		ID:       b.ID,
		BookerID: b.BookerID,
		Start:    NewDateTime(b.Start),
		End:      NewDateTime(b.End),
	}
}

func ToItemRequestResponse(r *service.RequestWithItems) ItemRequestResponse {
	return ItemRequestResponse{
		ID:          r.ID,
		Description: r.Description,
		RequestorID: r.RequestorID,
		Created:     NewDateTime(r.Created),
		Items:       ToItemResponses(r.Items),
	}
}

func ToItemRequestResponses(reqs []service.RequestWithItems) []ItemRequestResponse {
	resp := make([]ItemRequestResponse, len(reqs))
	for i := range reqs {
		resp[i] = ToItemRequestResponse(&reqs[i])
	}
	return resp
}

func ToBookingResponse(b *models.Booking) BookingResponse {
	resp := BookingResponse{
		ID:     b.ID,
		Start:  NewDateTime(b.Start),
		End:    NewDateTime(b.End),
		Status: b.Status,
	}
	if b.Item != nil {
		resp.Item = ToItemResponse(b.Item)
	} else {
		resp.Item = ItemResponse{ID: b.ItemID}
	}
	if b.Booker != nil {
		resp.Booker = ToUserResponse(b.Booker)
	} else {
		resp.Booker = UserResponse{ID: b.BookerID}
	}
	return resp
}

func ToBookingResponses(bookings []models.Booking) []BookingResponse {
	resp := make([]BookingResponse, len(bookings))
	for i := range bookings {
		resp[i] = ToBookingResponse(&bookings[i])
	}
	return resp
}
