package service

import (
	"errors"
	"time"
)

func (s *ServiceSuite) TestCreateComment_RequiresCompletedRental() {
	owner := s.createUser("owner")
	booker := s.createUser("booker-name")
	drill := s.createItem(owner.ID, "Drill", "Electric drill", true)

	_, err := s.comments.CreateComment(s.ctx, booker.ID, drill.ID, "Great drill")
	s.requireKind(err, ErrValidation)

	b := s.createBooking(booker.ID, drill.ID, time.Hour, 2*time.Hour)
	s.approve(owner.ID, b.ID, true)

	// approved but not finished yet
	_, err = s.comments.CreateComment(s.ctx, booker.ID, drill.ID, "Great drill")
	s.requireKind(err, ErrValidation)

	s.advance(3 * time.Hour)
	c, err := s.comments.CreateComment(s.ctx, booker.ID, drill.ID, "Great drill")

	s.Require().NoError(err)
	s.NotZero(c.ID)
	s.Equal("Great drill", c.Text)
	s.Require().NotNil(c.Author)
	s.Equal("booker-name", c.Author.Name)
	s.True(s.clock.Equal(c.Created))
	s.Contains(s.pub.published(), EventCommentCreated)
}

func (s *ServiceSuite) TestCreateComment_RejectedBookingDoesNotCount() {
	owner := s.createUser("owner")
	booker := s.createUser("booker")
	drill := s.createItem(owner.ID, "Drill", "Electric drill", true)
	b := s.createBooking(booker.ID, drill.ID, time.Hour, 2*time.Hour)
	s.approve(owner.ID, b.ID, false)
	s.advance(3 * time.Hour)

	_, err := s.comments.CreateComment(s.ctx, booker.ID, drill.ID, "Never got it")

	s.requireKind(err, ErrValidation)
}

func (s *ServiceSuite) TestCreateComment_BlankText() {
	owner := s.createUser("owner")
	booker := s.createUser("booker")
	drill := s.createItem(owner.ID, "Drill", "Electric drill", true)
	b := s.createBooking(booker.ID, drill.ID, time.Hour, 2*time.Hour)
	s.approve(owner.ID, b.ID, true)
	s.advance(3 * time.Hour)

	_, err := s.comments.CreateComment(s.ctx, booker.ID, drill.ID, " ")

	s.requireKind(err, ErrValidation)
}

func (s *ServiceSuite) TestCreateComment_UnknownAuthorOrItem() {
	owner := s.createUser("owner")
	drill := s.createItem(owner.ID, "Drill", "Electric drill", true)

	_, err := s.comments.CreateComment(s.ctx, 404, drill.ID, "hi")
	s.requireKind(err, ErrNotFound)

	_, err = s.comments.CreateComment(s.ctx, owner.ID, 404, "hi")
	s.requireKind(err, ErrNotFound)
}

func (s *ServiceSuite) TestPublishFailureDoesNotFailOperation() {
	s.pub.err = errors.New("broker down")

	u, err := s.users.CreateUser(s.ctx, "alice", "alice@example.com")

	s.Require().NoError(err)
	_, err = s.users.GetUser(s.ctx, u.ID)
	s.NoError(err)
}
