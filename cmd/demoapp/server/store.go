package server

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	ErrUserExists    = errors.New("UsernameExistsException: User already exists")
	ErrUnknownModel  = errors.New("model not found")
	ErrAlreadyVoted  = errors.New("you have already voted for this model")
	ErrNotAuthorized = errors.New("not authorized")
)

// User is a registered account.
type User struct {
	Username  string
	FirstName string
	LastName  string
	Password  string
}

// Comment is one row of a model's review table.
type Comment struct {
	Date   time.Time
	Author string
	Text   string
}

// Model is a rated car model.
type Model struct {
	ID          string
	Make        string
	Name        string
	Description string
	Votes       int
	Comments    []Comment // newest first
}

// Store keeps users, sessions and votes in memory.
type Store struct {
	mu       sync.RWMutex
	users    map[string]User
	sessions map[string]string // token -> username
	models   map[string]*Model
	voters   map[string]map[string]bool // model -> usernames
	now      func() time.Time
}

// NewStore returns a Store seeded with a few models and reviews.
func NewStore() *Store {
	s := &Store{
		users:    map[string]User{},
		sessions: map[string]string{},
		models:   map[string]*Model{},
		voters:   map[string]map[string]bool{},
		now:      time.Now,
	}
	seeded := time.Date(2024, 3, 14, 10, 0, 0, 0, time.UTC)
	for _, m := range []*Model{
		{
			ID: "diablo", Make: "Lamborghini", Name: "Diablo", Votes: 12,
			Description: "Mid-engine sports car produced from 1990 to 2001.",
			Comments: []Comment{
				{Date: seeded, Author: "Ada Lovelace", Text: "Loud and proud"},
				{Date: seeded.Add(-24 * time.Hour), Author: "Alan Turing", Text: "Hard to park"},
			},
		},
		{
			ID: "zonda", Make: "Pagani", Name: "Zonda", Votes: 7,
			Description: "Hand-built supercar with an AMG V12.",
			Comments:    []Comment{{Date: seeded, Author: "Grace Hopper", Text: "Stunning"}},
		},
		{
			ID: "veneno", Make: "Lamborghini", Name: "Veneno", Votes: 5,
			Description: "Limited production hypercar.",
		},
	} {
		s.models[m.ID] = m
	}
	return s
}

// Register adds a user. Usernames are case-insensitive.
func (s *Store) Register(u User, confirmPassword string) error {
	switch {
	case strings.TrimSpace(u.Username) == "":
		return errors.New("InvalidParameterException: Username is required")
	case u.FirstName == "" || u.LastName == "":
		return errors.New("InvalidParameterException: First and last name are required")
	case len(u.Password) < 6:
		return errors.New("InvalidPasswordException: Password did not conform with policy: Password not long enough")
	case u.Password != confirmPassword:
		return errors.New("Passwords do not match")
	}

	key := strings.ToLower(u.Username)
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[key]; ok {
		return ErrUserExists
	}
	s.users[key] = u
	return nil
}

// Login checks credentials and opens a session.
func (s *Store) Login(username, password string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[strings.ToLower(username)]
	if !ok || u.Password != password {
		return "", false
	}
	token := uuid.NewString()
	s.sessions[token] = u.Username
	return token, true
}

// Logout ends a session. Unknown tokens are ignored.
func (s *Store) Logout(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
}

// UserForSession resolves a session token.
func (s *Store) UserForSession(token string) (User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	name, ok := s.sessions[token]
	if !ok {
		return User{}, false
	}
	u, ok := s.users[strings.ToLower(name)]
	return u, ok
}

// Popular returns the model with the most votes.
func (s *Store) Popular() Model {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var best *Model
	for _, m := range s.models {
		if best == nil || m.Votes > best.Votes || (m.Votes == best.Votes && m.ID < best.ID) {
			best = m
		}
	}
	return best.clone()
}

// Model returns a copy of the model with the given id.
func (s *Store) Model(id string) (Model, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.models[id]
	if !ok {
		return Model{}, false
	}
	return m.clone(), true
}

// HasVoted reports whether username already voted for model id.
func (s *Store) HasVoted(id, username string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.voters[id][strings.ToLower(username)]
}

// Vote records one vote and an optional comment by user on model id.
func (s *Store) Vote(id string, user User, comment string) (Model, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.models[id]
	if !ok {
		return Model{}, fmt.Errorf("%w: %s", ErrUnknownModel, id)
	}
	key := strings.ToLower(user.Username)
	if s.voters[id][key] {
		return Model{}, ErrAlreadyVoted
	}
	if s.voters[id] == nil {
		s.voters[id] = map[string]bool{}
	}
	s.voters[id][key] = true
	m.Votes++
	if comment = strings.TrimSpace(comment); comment != "" {
		c := Comment{Date: s.now(), Author: user.FirstName + " " + user.LastName, Text: comment}
		m.Comments = append([]Comment{c}, m.Comments...)
	}
	return m.clone(), nil
}

func (m *Model) clone() Model {
	c := *m
	c.Comments = slices.Clone(m.Comments)
	return c
}
