package state

import "github.com/danhyun/motiday/internal/model"

// ShieldItemID is the shop item that grants a streak shield.
const ShieldItemID = "shield"

// PurchaseItem debits the point balance and adds the item to the inventory.
// The balance is never debited below zero: an unaffordable purchase is a
// refusal with no mutation.
func (s *Store) PurchaseItem(itemID string, price int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.active {
		return ErrNotLoggedIn
	}
	if price < 0 {
		return ErrInvalidAmount
	}
	if s.doc.Points < price {
		return ErrInsufficientPoints
	}

	s.doc.Points -= price
	s.doc.Inventory = append(s.doc.Inventory, itemID)
	if itemID == ShieldItemID {
		s.doc.ShieldCount++
	}
	s.save()
	return nil
}

// PlaceBet stakes points on future check-in behavior. Only one bet may be
// open at a time; the potential payout is 1.5x, rounded down.
func (s *Store) PlaceBet(amount int) (*model.Bet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.active {
		return nil, ErrNotLoggedIn
	}
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}
	if s.doc.ActiveBet != nil {
		return nil, ErrBetActive
	}
	if s.doc.Points < amount {
		return nil, ErrInsufficientPoints
	}

	s.doc.Points -= amount
	bet := model.Bet{Amount: amount, Potential: amount * 3 / 2}
	s.doc.ActiveBet = &bet
	s.save()
	return &bet, nil
}

// StartSavings stakes points into the single savings slot. The goal payout is
// 1.1x, rounded down.
func (s *Store) StartSavings(amount int) (*model.Savings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.active {
		return nil, ErrNotLoggedIn
	}
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}
	if s.doc.ActiveSavings != nil {
		return nil, ErrSavingsActive
	}
	if s.doc.Points < amount {
		return nil, ErrInsufficientPoints
	}

	s.doc.Points -= amount
	savings := model.Savings{
		Amount:    amount,
		Goal:      amount * 11 / 10,
		StartedOn: s.now().Format("2006-01-02"),
	}
	s.doc.ActiveSavings = &savings
	s.save()
	return &savings, nil
}

// UseShield consumes one shield to clear the missed-day prompt and restore
// the streak that was at risk.
func (s *Store) UseShield() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.active {
		return ErrNotLoggedIn
	}
	if s.doc.ShieldCount <= 0 {
		return ErrNoShields
	}

	s.doc.ShieldCount--
	s.doc.MissedDayPrompt = false
	if s.doc.StreakBeforeMiss > 0 {
		s.doc.CurrentStreak = s.doc.StreakBeforeMiss
		s.doc.StreakBeforeMiss = 0
	}
	s.save()
	return nil
}

// Points returns the current point balance.
func (s *Store) Points() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc.Points
}

// Inventory returns purchased item ids in purchase order.
func (s *Store) Inventory() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]string, len(s.doc.Inventory))
	copy(out, s.doc.Inventory)
	return out
}

// ActiveBet returns the open bet, or nil.
func (s *Store) ActiveBet() *model.Bet {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.doc.ActiveBet == nil {
		return nil
	}
	bet := *s.doc.ActiveBet
	return &bet
}

// ActiveSavings returns the open savings deposit, or nil.
func (s *Store) ActiveSavings() *model.Savings {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.doc.ActiveSavings == nil {
		return nil
	}
	sv := *s.doc.ActiveSavings
	return &sv
}

// ShieldCount returns the number of unused shields.
func (s *Store) ShieldCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc.ShieldCount
}
