package state

// SendFriendRequest records an outgoing friend request. Requesting an existing
// friend, or the same counterparty twice, is a no-op.
func (s *Store) SendFriendRequest(userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.active {
		return ErrNotLoggedIn
	}
	for _, id := range s.doc.Friends {
		if id == userID {
			return nil
		}
	}
	for _, id := range s.doc.SentRequests {
		if id == userID {
			return nil
		}
	}
	s.doc.SentRequests = append(s.doc.SentRequests, userID)
	s.save()
	return nil
}

// Friends returns the friend list.
func (s *Store) Friends() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]string, len(s.doc.Friends))
	copy(out, s.doc.Friends)
	return out
}

// SentRequests returns the counterparty ids with an outstanding outgoing
// friend request.
func (s *Store) SentRequests() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]string, len(s.doc.SentRequests))
	copy(out, s.doc.SentRequests)
	return out
}
