package service

import (
	"errors"
	"sync"
)

func (s *ServiceSuite) TestCreateUser_Success() {
	u, err := s.users.CreateUser(s.ctx, "Alice", "alice@example.com")

	s.Require().NoError(err)
	s.NotZero(u.ID)
	s.Equal("Alice", u.Name)
	s.Equal([]string{EventUserCreated}, s.pub.published())
}

func (s *ServiceSuite) TestCreateUser_InvalidEmail() {
	for _, email := range []string{"", "   ", "no-at-sign"} {
		_, err := s.users.CreateUser(s.ctx, "Bob", email)
		s.requireKind(err, ErrValidation)
	}
}

func (s *ServiceSuite) TestCreateUser_DuplicateEmail() {
	s.createUser("alice")

	_, err := s.users.CreateUser(s.ctx, "Other Alice", "alice@example.com")

	s.requireKind(err, ErrConflict)
	s.Contains(err.Error(), "alice@example.com")
}

func (s *ServiceSuite) TestCreateUser_ConcurrentDuplicateEmail() {
	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = s.users.CreateUser(s.ctx, "twin", "twin@example.com")
		}(i)
	}
	wg.Wait()

	var ok, conflicts int
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, ErrConflict):
			conflicts++
		}
	}
	s.Equal(1, ok)
	s.Equal(1, conflicts)
}

func (s *ServiceSuite) TestUpdateUser_Partial() {
	u := s.createUser("alice")

	updated, err := s.users.UpdateUser(s.ctx, u.ID, UserPatch{Name: strPtr("Alice Smith")})

	s.Require().NoError(err)
	s.Equal("Alice Smith", updated.Name)
	s.Equal("alice@example.com", updated.Email)

	updated, err = s.users.UpdateUser(s.ctx, u.ID, UserPatch{Email: strPtr("smith@example.com")})
	s.Require().NoError(err)
	s.Equal("Alice Smith", updated.Name)
	s.Equal("smith@example.com", updated.Email)
}

func (s *ServiceSuite) TestUpdateUser_SameEmailIsNotConflict() {
	u := s.createUser("alice")

	_, err := s.users.UpdateUser(s.ctx, u.ID, UserPatch{Email: strPtr("alice@example.com")})

	s.NoError(err)
}

func (s *ServiceSuite) TestUpdateUser_EmailTaken() {
	s.createUser("alice")
	bob := s.createUser("bob")

	_, err := s.users.UpdateUser(s.ctx, bob.ID, UserPatch{Email: strPtr("alice@example.com")})

	s.requireKind(err, ErrConflict)
}

func (s *ServiceSuite) TestUpdateUser_InvalidEmail() {
	u := s.createUser("alice")

	_, err := s.users.UpdateUser(s.ctx, u.ID, UserPatch{Email: strPtr("broken")})

	s.requireKind(err, ErrValidation)
}

func (s *ServiceSuite) TestUpdateUser_NotFound() {
	_, err := s.users.UpdateUser(s.ctx, 999, UserPatch{Name: strPtr("ghost")})

	s.requireKind(err, ErrNotFound)
}

func (s *ServiceSuite) TestGetUser_Idempotent() {
	u := s.createUser("alice")

	first, err := s.users.GetUser(s.ctx, u.ID)
	s.Require().NoError(err)
	second, err := s.users.GetUser(s.ctx, u.ID)
	s.Require().NoError(err)

	s.Equal(first, second)
}

func (s *ServiceSuite) TestListUsers() {
	s.createUser("alice")
	s.createUser("bob")

	users, err := s.users.ListUsers(s.ctx)

	s.Require().NoError(err)
	s.Len(users, 2)
	s.Equal("alice", users[0].Name)
}

func (s *ServiceSuite) TestDeleteUser() {
	u := s.createUser("alice")

	s.Require().NoError(s.users.DeleteUser(s.ctx, u.ID))

	_, err := s.users.GetUser(s.ctx, u.ID)
	s.requireKind(err, ErrNotFound)
	s.requireKind(s.users.DeleteUser(s.ctx, u.ID), ErrNotFound)
}

func (s *ServiceSuite) TestDeleteUser_WithItemsIsConflict() {
	owner := s.createUser("owner")
	s.createItem(owner.ID, "Drill", "Electric drill", true)

	err := s.users.DeleteUser(s.ctx, owner.ID)

	s.requireKind(err, ErrConflict)
}
