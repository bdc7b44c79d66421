package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/Eursukkul/shareit/internal/middleware"
	"github.com/Eursukkul/shareit/internal/models"
	"github.com/Eursukkul/shareit/internal/service"
	"github.com/labstack/echo/v4"
)

// --- Mock UserService ---

type mockUserService struct {
	createFn func(ctx context.Context, name, email string) (*models.User, error)
	updateFn func(ctx context.Context, id uint, patch service.UserPatch) (*models.User, error)
	getFn    func(ctx context.Context, id uint) (*models.User, error)
	listFn   func(ctx context.Context) ([]models.User, error)
	deleteFn func(ctx context.Context, id uint) error
}

func (m *mockUserService) CreateUser(ctx context.Context, name, email string) (*models.User, error) {
	return m.createFn(ctx, name, email)
}
func (m *mockUserService) UpdateUser(ctx context.Context, id uint, patch service.UserPatch) (*models.User, error) {
	return m.updateFn(ctx, id, patch)
}
func (m *mockUserService) GetUser(ctx context.Context, id uint) (*models.User, error) {
	return m.getFn(ctx, id)
}
func (m *mockUserService) ListUsers(ctx context.Context) ([]models.User, error) {
	return m.listFn(ctx)
}
func (m *mockUserService) DeleteUser(ctx context.Context, id uint) error {
	return m.deleteFn(ctx, id)
}

// --- Mock ItemService ---

type mockItemService struct {
	createFn func(ctx context.Context, ownerID uint, in service.ItemInput) (*models.Item, error)
	updateFn func(ctx context.Context, userID, itemID uint, patch service.ItemPatch) (*models.Item, error)
	getFn    func(ctx context.Context, itemID, userID uint) (*service.ItemDetails, error)
	listFn   func(ctx context.Context, ownerID uint) ([]service.ItemDetails, error)
	searchFn func(ctx context.Context, text string) ([]models.Item, error)
}

func (m *mockItemService) CreateItem(ctx context.Context, ownerID uint, in service.ItemInput) (*models.Item, error) {
	return m.createFn(ctx, ownerID, in)
}
func (m *mockItemService) UpdateItem(ctx context.Context, userID, itemID uint, patch service.ItemPatch) (*models.Item, error) {
	return m.updateFn(ctx, userID, itemID, patch)
}
func (m *mockItemService) GetItem(ctx context.Context, itemID, userID uint) (*service.ItemDetails, error) {
	return m.getFn(ctx, itemID, userID)
}
func (m *mockItemService) ListOwnerItems(ctx context.Context, ownerID uint) ([]service.ItemDetails, error) {
	return m.listFn(ctx, ownerID)
}
func (m *mockItemService) SearchItems(ctx context.Context, text string) ([]models.Item, error) {
	return m.searchFn(ctx, text)
}

// --- Mock CommentService ---

type mockCommentService struct {
	createFn func(ctx context.Context, authorID, itemID uint, text string) (*models.Comment, error)
}

func (m *mockCommentService) CreateComment(ctx context.Context, authorID, itemID uint, text string) (*models.Comment, error) {
	return m.createFn(ctx, authorID, itemID, text)
}

// --- Mock RequestService ---

type mockRequestService struct {
	createFn     func(ctx context.Context, requestorID uint, description string) (*service.RequestWithItems, error)
	listOwnFn    func(ctx context.Context, userID uint) ([]service.RequestWithItems, error)
	listOthersFn func(ctx context.Context, userID uint) ([]service.RequestWithItems, error)
	getFn        func(ctx context.Context, requestID, userID uint) (*service.RequestWithItems, error)
}

func (m *mockRequestService) CreateRequest(ctx context.Context, requestorID uint, description string) (*service.RequestWithItems, error) {
	return m.createFn(ctx, requestorID, description)
}
func (m *mockRequestService) ListOwnRequests(ctx context.Context, userID uint) ([]service.RequestWithItems, error) {
	return m.listOwnFn(ctx, userID)
}
func (m *mockRequestService) ListOtherRequests(ctx context.Context, userID uint) ([]service.RequestWithItems, error) {
	return m.listOthersFn(ctx, userID)
}
func (m *mockRequestService) GetRequest(ctx context.Context, requestID, userID uint) (*service.RequestWithItems, error) {
	return m.getFn(ctx, requestID, userID)
}

// --- Mock BookingService ---

type mockBookingService struct {
	createFn     func(ctx context.Context, bookerID uint, in service.BookingInput) (*models.Booking, error)
	approveFn    func(ctx context.Context, userID, bookingID uint, approved bool) (*models.Booking, error)
	getFn        func(ctx context.Context, userID, bookingID uint) (*models.Booking, error)
	listBookerFn func(ctx context.Context, userID uint, state string) ([]models.Booking, error)
	listOwnerFn  func(ctx context.Context, userID uint, state string) ([]models.Booking, error)
}

func (m *mockBookingService) CreateBooking(ctx context.Context, bookerID uint, in service.BookingInput) (*models.Booking, error) {
	return m.createFn(ctx, bookerID, in)
}
func (m *mockBookingService) ApproveBooking(ctx context.Context, userID, bookingID uint, approved bool) (*models.Booking, error) {
	return m.approveFn(ctx, userID, bookingID, approved)
}
func (m *mockBookingService) GetBooking(ctx context.Context, userID, bookingID uint) (*models.Booking, error) {
	return m.getFn(ctx, userID, bookingID)
}
func (m *mockBookingService) ListBookerBookings(ctx context.Context, userID uint, state string) ([]models.Booking, error) {
	return m.listBookerFn(ctx, userID, state)
}
func (m *mockBookingService) ListOwnerBookings(ctx context.Context, userID uint, state string) ([]models.Booking, error) {
	return m.listOwnerFn(ctx, userID, state)
}

// --- Helpers ---

type routes interface {
	RegisterRoutes(e *echo.Echo)
}

func newServer(handlers ...routes) *echo.Echo {
	e := echo.New()
	e.HTTPErrorHandler = middleware.ErrorHandler
	e.Validator = NewValidator()
	for _, h := range handlers {
		h.RegisterRoutes(e)
	}
	return e
}

// do sends a request through the router; userID "" omits the acting user header.
func do(e *echo.Echo, method, target, userID, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if userID != "" {
		req.Header.Set(middleware.HeaderUserID, userID)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}
