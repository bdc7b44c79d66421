package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Eursukkul/shareit/internal/models"
	"github.com/Eursukkul/shareit/internal/repository"
	"gorm.io/gorm"
)

// RequestWithItems is an item request with the items created in answer to it.
type RequestWithItems struct {
	models.ItemRequest
	Items []models.Item
}

type RequestService interface {
	CreateRequest(ctx context.Context, requestorID uint, description string) (*RequestWithItems, error)
	ListOwnRequests(ctx context.Context, userID uint) ([]RequestWithItems, error)
	ListOtherRequests(ctx context.Context, userID uint) ([]RequestWithItems, error)
	GetRequest(ctx context.Context, requestID, userID uint) (*RequestWithItems, error)
}

type requestService struct {
	userRepo    repository.UserRepository
	requestRepo repository.RequestRepository
	itemRepo    repository.ItemRepository
	publisher   EventPublisher
	now         func() time.Time
}

func NewRequestService(
	userRepo repository.UserRepository,
	requestRepo repository.RequestRepository,
	itemRepo repository.ItemRepository,
	publisher EventPublisher,
) RequestService {
	return &requestService{
		userRepo:    userRepo,
		requestRepo: requestRepo,
		itemRepo:    itemRepo,
		publisher:   publisher,
		now:         utcNow,
	}
}

func (s *requestService) CreateRequest(ctx context.Context, requestorID uint, description string) (*RequestWithItems, error) {
	req := &models.ItemRequest{Description: description, RequestorID: requestorID}

	err := s.requestRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := requireUser(ctx, s.userRepo, tx, requestorID); err != nil {
			return err
		}
		if strings.TrimSpace(description) == "" {
			return validation("request description must not be blank")
		}

		req.Created = s.now()
		if err := s.requestRepo.Create(ctx, tx, req); err != nil {
			return fmt.Errorf("create request: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("item request created", "request_id", req.ID, "requestor_id", requestorID)
	publish(s.publisher, EventRequestCreated, req)
	return &RequestWithItems{ItemRequest: *req, Items: []models.Item{}}, nil
}

func (s *requestService) ListOwnRequests(ctx context.Context, userID uint) ([]RequestWithItems, error) {
	if err := requireUser(ctx, s.userRepo, s.userRepo.GetDB(), userID); err != nil {
		return nil, err
	}
	reqs, err := s.requestRepo.FindByRequestorID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.withItems(ctx, reqs)
}

func (s *requestService) ListOtherRequests(ctx context.Context, userID uint) ([]RequestWithItems, error) {
	if err := requireUser(ctx, s.userRepo, s.userRepo.GetDB(), userID); err != nil {
		return nil, err
	}
	reqs, err := s.requestRepo.FindByOtherRequestors(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.withItems(ctx, reqs)
}

func (s *requestService) GetRequest(ctx context.Context, requestID, userID uint) (*RequestWithItems, error) {
	db := s.requestRepo.GetDB()
	if err := requireUser(ctx, s.userRepo, db, userID); err != nil {
		return nil, err
	}

	req, err := s.requestRepo.FindByID(ctx, db, requestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, requestNotFound(requestID)
		}
		return nil, err
	}

	result, err := s.withItems(ctx, []models.ItemRequest{*req})
	if err != nil {
		return nil, err
	}
	return &result[0], nil
}

func (s *requestService) withItems(ctx context.Context, reqs []models.ItemRequest) ([]RequestWithItems, error) {
	ids := make([]uint, len(reqs))
	for i, r := range reqs {
		ids[i] = r.ID
	}

	items, err := s.itemRepo.FindByRequestIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byRequest := make(map[uint][]models.Item, len(reqs))
	for _, it := range items {
		byRequest[*it.RequestID] = append(byRequest[*it.RequestID], it)
	}

	result := make([]RequestWithItems, len(reqs))
	for i, r := range reqs {
		ri := RequestWithItems{ItemRequest: r, Items: byRequest[r.ID]}
		if ri.Items == nil {
			ri.Items = []models.Item{}
		}
		result[i] = ri
	}
	return result, nil
}
