package dto

type CreateUserRequest struct {
	Name  string `json:"name" validate:"required,max=255"`
	Email string `json:"email" validate:"max=512"`
}

type UpdateUserRequest struct {
	Name  *string `json:"name" validate:"omitempty,max=255"`
	Email *string `json:"email" validate:"omitempty,max=512"`
}

type CreateItemRequest struct {
	Name        string `json:"name" validate:"max=255"`
	Description string `json:"description" validate:"max=1024"`
	Available   *bool  `json:"available"`
	RequestID   *uint  `json:"requestId" validate:"omitempty,gt=0"`
}

type UpdateItemRequest struct {
	Name        *string `json:"name" validate:"omitempty,max=255"`
	Description *string `json:"description" validate:"omitempty,max=1024"`
	Available   *bool   `json:"available"`
}

type CreateCommentRequest struct {
	Text string `json:"text" validate:"max=2048"`
}

type CreateItemRequestRequest struct {
	Description string `json:"description" validate:"max=1024"`
}

type CreateBookingRequest struct {
	ItemID uint      `json:"itemId" validate:"required"`
	Start  *DateTime `json:"start"`
	End    *DateTime `json:"end"`
}
