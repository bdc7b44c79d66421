package service

import (
	"errors"
	"sync"
	"time"

	"github.com/Eursukkul/shareit/internal/models"
)

func (s *ServiceSuite) TestBookingLifecycle_Approve() {
	owner := s.createUser("owner")
	booker := s.createUser("booker")
	drill := s.createItem(owner.ID, "Drill", "Electric drill", true)

	b := s.createBooking(booker.ID, drill.ID, 24*time.Hour, 48*time.Hour)
	s.Equal(models.StatusWaiting, b.Status)
	s.Require().NotNil(b.Item)
	s.Require().NotNil(b.Booker)
	s.Equal("Drill", b.Item.Name)
	s.Equal("booker", b.Booker.Name)

	approved := s.approve(owner.ID, b.ID, true)
	s.Equal(models.StatusApproved, approved.Status)
	s.Contains(s.pub.published(), EventBookingCreated)
	s.Contains(s.pub.published(), EventBookingApproved)
}

func (s *ServiceSuite) TestApproveBooking_Reject() {
	owner := s.createUser("owner")
	booker := s.createUser("booker")
	drill := s.createItem(owner.ID, "Drill", "Electric drill", true)
	b := s.createBooking(booker.ID, drill.ID, time.Hour, 2*time.Hour)

	rejected := s.approve(owner.ID, b.ID, false)

	s.Equal(models.StatusRejected, rejected.Status)
	s.Contains(s.pub.published(), EventBookingRejected)
}

func (s *ServiceSuite) TestCreateBooking_OwnBookingIsNotFound() {
	booker := s.createUser("booker")
	own := s.createItem(booker.ID, "Drill", "Electric drill", true)

	_, err := s.bookings.CreateBooking(s.ctx, booker.ID, BookingInput{ItemID: own.ID, Start: s.at(time.Hour), End: s.at(2 * time.Hour)})

	s.requireKind(err, ErrNotFound)
}

func (s *ServiceSuite) TestCreateBooking_OwnItemWithBadDatesIsNotFound() {
	owner := s.createUser("owner")
	own := s.createItem(owner.ID, "Drill", "Electric drill", true)

	_, err := s.bookings.CreateBooking(s.ctx, owner.ID, BookingInput{ItemID: own.ID, Start: s.at(time.Hour), End: s.at(time.Hour)})

	s.requireKind(err, ErrNotFound)
}

func (s *ServiceSuite) TestCreateBooking_Validation() {
	owner := s.createUser("owner")
	booker := s.createUser("booker")
	drill := s.createItem(owner.ID, "Drill", "Electric drill", true)

	cases := map[string]BookingInput{
		"missing start": {ItemID: drill.ID, End: s.at(time.Hour)},
		"missing end":   {ItemID: drill.ID, Start: s.at(time.Hour)},
		"start in past": {ItemID: drill.ID, Start: s.at(-time.Hour), End: s.at(time.Hour)},
		"end == start":  {ItemID: drill.ID, Start: s.at(time.Hour), End: s.at(time.Hour)},
		"end < start":   {ItemID: drill.ID, Start: s.at(2 * time.Hour), End: s.at(time.Hour)},
	}
	for name, in := range cases {
		_, err := s.bookings.CreateBooking(s.ctx, booker.ID, in)
		s.Require().Error(err, name)
		s.True(errors.Is(err, ErrValidation), name)
	}

	bookings, err := s.bookings.ListBookerBookings(s.ctx, booker.ID, "ALL")
	s.Require().NoError(err)
	s.Empty(bookings)
}

func (s *ServiceSuite) TestCreateBooking_StartNowIsAllowed() {
	owner := s.createUser("owner")
	booker := s.createUser("booker")
	drill := s.createItem(owner.ID, "Drill", "Electric drill", true)

	b := s.createBooking(booker.ID, drill.ID, 0, time.Hour)

	s.True(s.clock.Equal(b.Start), b.Start)
}

func (s *ServiceSuite) TestCreateBooking_Unavailable() {
	owner := s.createUser("owner")
	booker := s.createUser("booker")
	drill := s.createItem(owner.ID, "Drill", "Electric drill", false)

	_, err := s.bookings.CreateBooking(s.ctx, booker.ID, BookingInput{ItemID: drill.ID, Start: s.at(time.Hour), End: s.at(2 * time.Hour)})

	s.requireKind(err, ErrValidation)
}

func (s *ServiceSuite) TestCreateBooking_UnknownBookerOrItem() {
	owner := s.createUser("owner")
	booker := s.createUser("booker")
	drill := s.createItem(owner.ID, "Drill", "Electric drill", true)

	_, err := s.bookings.CreateBooking(s.ctx, 999, BookingInput{ItemID: drill.ID, Start: s.at(time.Hour), End: s.at(2 * time.Hour)})
	s.requireKind(err, ErrNotFound)

	_, err = s.bookings.CreateBooking(s.ctx, booker.ID, BookingInput{ItemID: 999, Start: s.at(time.Hour), End: s.at(2 * time.Hour)})
	s.requireKind(err, ErrNotFound)
}

func (s *ServiceSuite) TestApproveBooking_NotOwnerIsForbidden() {
	owner := s.createUser("owner")
	booker := s.createUser("booker")
	drill := s.createItem(owner.ID, "Drill", "Electric drill", true)
	b := s.createBooking(booker.ID, drill.ID, time.Hour, 2*time.Hour)

	_, err := s.bookings.ApproveBooking(s.ctx, booker.ID, b.ID, true)

	s.requireKind(err, ErrForbidden)
}

func (s *ServiceSuite) TestApproveBooking_Missing() {
	owner := s.createUser("owner")

	_, err := s.bookings.ApproveBooking(s.ctx, owner.ID, 404, true)

	s.requireKind(err, ErrNotFound)
}

func (s *ServiceSuite) TestApproveBooking_Twice() {
	owner := s.createUser("owner")
	booker := s.createUser("booker")
	drill := s.createItem(owner.ID, "Drill", "Electric drill", true)
	b := s.createBooking(booker.ID, drill.ID, time.Hour, 2*time.Hour)
	s.approve(owner.ID, b.ID, true)

	_, err := s.bookings.ApproveBooking(s.ctx, owner.ID, b.ID, true)
	s.requireKind(err, ErrValidation)
	_, err = s.bookings.ApproveBooking(s.ctx, owner.ID, b.ID, false)
	s.requireKind(err, ErrValidation)

	got, err := s.bookings.GetBooking(s.ctx, owner.ID, b.ID)
	s.Require().NoError(err)
	s.Equal(models.StatusApproved, got.Status)
}

func (s *ServiceSuite) TestApproveBooking_Concurrent() {
	owner := s.createUser("owner")
	booker := s.createUser("booker")
	drill := s.createItem(owner.ID, "Drill", "Electric drill", true)
	b := s.createBooking(booker.ID, drill.ID, time.Hour, 2*time.Hour)

	const n = 5
	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = s.bookings.ApproveBooking(s.ctx, owner.ID, b.ID, i%2 == 0)
		}(i)
	}
	wg.Wait()

	var ok int
	for _, err := range errs {
		if err == nil {
			ok++
			continue
		}
		s.True(errors.Is(err, ErrValidation), err)
	}
	s.Equal(1, ok)
}

func (s *ServiceSuite) TestGetBooking_Access() {
	owner := s.createUser("owner")
	booker := s.createUser("booker")
	stranger := s.createUser("stranger")
	drill := s.createItem(owner.ID, "Drill", "Electric drill", true)
	b := s.createBooking(booker.ID, drill.ID, time.Hour, 2*time.Hour)

	_, err := s.bookings.GetBooking(s.ctx, booker.ID, b.ID)
	s.NoError(err)
	_, err = s.bookings.GetBooking(s.ctx, owner.ID, b.ID)
	s.NoError(err)

	_, err = s.bookings.GetBooking(s.ctx, stranger.ID, b.ID)
	s.requireKind(err, ErrNotFound)
	_, err = s.bookings.GetBooking(s.ctx, owner.ID, 404)
	s.requireKind(err, ErrNotFound)
}

func (s *ServiceSuite) TestListBookings_States() {
	owner := s.createUser("owner")
	booker := s.createUser("booker")
	drill := s.createItem(owner.ID, "Drill", "Electric drill", true)

	past := s.createBooking(booker.ID, drill.ID, time.Hour, 2*time.Hour)
	current := s.createBooking(booker.ID, drill.ID, 3*time.Hour, 10*time.Hour)
	future := s.createBooking(booker.ID, drill.ID, 20*time.Hour, 30*time.Hour)
	rejected := s.createBooking(booker.ID, drill.ID, 40*time.Hour, 50*time.Hour)
	s.approve(owner.ID, past.ID, true)
	s.approve(owner.ID, current.ID, true)
	s.approve(owner.ID, rejected.ID, false)

	s.advance(5 * time.Hour)

	ids := func(bs []models.Booking) []uint {
		out := make([]uint, len(bs))
		for i, b := range bs {
			out[i] = b.ID
		}
		return out
	}

	want := map[string][]uint{
		"ALL":      {rejected.ID, future.ID, current.ID, past.ID},
		"CURRENT":  {current.ID},
		"PAST":     {past.ID},
		"FUTURE":   {rejected.ID, future.ID},
		"WAITING":  {future.ID},
		"REJECTED": {rejected.ID},
	}
	for state, expected := range want {
		byBooker, err := s.bookings.ListBookerBookings(s.ctx, booker.ID, state)
		s.Require().NoError(err, state)
		s.Equal(expected, ids(byBooker), "booker %s", state)

		byOwner, err := s.bookings.ListOwnerBookings(s.ctx, owner.ID, state)
		s.Require().NoError(err, state)
		s.Equal(expected, ids(byOwner), "owner %s", state)
	}
}

func (s *ServiceSuite) TestListBookings_CurrentBoundsInclusive() {
	owner := s.createUser("owner")
	booker := s.createUser("booker")
	drill := s.createItem(owner.ID, "Drill", "Electric drill", true)
	b := s.createBooking(booker.ID, drill.ID, time.Hour, 2*time.Hour)

	s.advance(time.Hour)
	got, err := s.bookings.ListBookerBookings(s.ctx, booker.ID, "CURRENT")
	s.Require().NoError(err)
	s.Require().Len(got, 1)
	s.Equal(b.ID, got[0].ID)

	s.advance(time.Hour)
	got, err = s.bookings.ListBookerBookings(s.ctx, booker.ID, "CURRENT")
	s.Require().NoError(err)
	s.Len(got, 1)
}

func (s *ServiceSuite) TestListBookings_UnknownState() {
	owner := s.createUser("owner")
	booker := s.createUser("booker")
	s.createItem(owner.ID, "Drill", "Electric drill", true)

	_, err := s.bookings.ListBookerBookings(s.ctx, booker.ID, "SOMETIMES")
	s.requireKind(err, ErrValidation)
	s.Equal("Unknown state: SOMETIMES", err.Error())

	_, err = s.bookings.ListOwnerBookings(s.ctx, owner.ID, "SOMETIMES")
	s.requireKind(err, ErrValidation)
}

func (s *ServiceSuite) TestListOwnerBookings_NoItemsSkipsStateCheck() {
	owner := s.createUser("owner")

	got, err := s.bookings.ListOwnerBookings(s.ctx, owner.ID, "SOMETIMES")

	s.Require().NoError(err)
	s.Empty(got)
}

func (s *ServiceSuite) TestListBookings_UnknownUser() {
	_, err := s.bookings.ListBookerBookings(s.ctx, 404, "ALL")
	s.requireKind(err, ErrNotFound)

	_, err = s.bookings.ListOwnerBookings(s.ctx, 404, "ALL")
	s.requireKind(err, ErrNotFound)
}
