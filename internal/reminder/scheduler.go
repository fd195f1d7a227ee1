// Package reminder polls the clock against the active account's check-in
// schedules and delivers web-push reminders.
package reminder

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/danhyun/motiday/internal/metrics"
	"github.com/danhyun/motiday/internal/push"
	"github.com/danhyun/motiday/internal/state"
)

// Scheduler periodically checks whether a "time to check in" reminder is due.
// Apart from triggering the store's day rollover, every tick is read-only.
type Scheduler struct {
	mu       sync.RWMutex
	state    *state.Store
	service  *push.Service
	subs     *push.SubscriptionStore
	logger   *slog.Logger
	interval time.Duration
	now      func() time.Time
	cancel   context.CancelFunc
	done     chan struct{}
}

// NewScheduler creates a reminder scheduler.
func NewScheduler(st *state.Store, svc *push.Service, subs *push.SubscriptionStore, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		state:    st,
		service:  svc,
		subs:     subs,
		logger:   logger,
		interval: 60 * time.Second,
		now:      time.Now,
	}
}

// Start begins the scheduler loop.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	ctx, s.cancel = context.WithCancel(ctx)
	s.done = make(chan struct{})
	s.mu.Unlock()

	go func() {
		defer close(s.done)
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.Tick(ctx)
			}
		}
	}()
}

// Stop gracefully stops the scheduler.
func (s *Scheduler) Stop() {
	s.mu.RLock()
	cancel := s.cancel
	done := s.done
	s.mu.RUnlock()

	if cancel != nil {
		cancel()
	}
	if done != nil {
		<-done
	}
}

// Tick runs one scheduler pass: roll the day over if the date advanced, then
// send any due reminders.
func (s *Scheduler) Tick(ctx context.Context) {
	now := s.now()

	if res := s.state.Rollover(now); res != nil && res.MissedDay {
		s.logger.Info("day rollover", "days_elapsed", res.DaysElapsed, "missed_day", true)
	}

	accountID := s.state.ActiveAccountID()
	if accountID == "" {
		return
	}

	due := s.state.ReminderDue(now)
	if len(due) == 0 {
		return
	}

	today := now.Format("2006-01-02")
	for _, club := range due {
		sent, err := s.subs.WasReminded(accountID, club.ID, today)
		if err != nil {
			s.logger.Error("check reminder log", "error", err)
			continue
		}
		if sent {
			continue
		}
		s.remind(ctx, accountID, club.ID, club.Title)
		if err := s.subs.MarkReminded(accountID, club.ID, today); err != nil {
			s.logger.Error("mark reminded", "error", err)
		}
	}
}

// remind delivers one reminder to every subscription of the account, with
// bounded backoff per device. Subscriptions the push service reports gone are
// pruned.
func (s *Scheduler) remind(ctx context.Context, accountID, clubID, clubTitle string) {
	subs, err := s.subs.ListByAccount(accountID)
	if err != nil {
		s.logger.Error("list subscriptions", "error", err)
		return
	}

	payload := push.Payload{
		Title: "Check-in time ⏰",
		Body:  fmt.Sprintf("Today's %s check-in is still open.", clubTitle),
		Tag:   "reminder-" + clubID,
	}

	for i := range subs {
		sub := subs[i]
		backoff := retry.WithMaxRetries(2, retry.NewExponential(500*time.Millisecond))
		err := retry.Do(ctx, backoff, func(ctx context.Context) error {
			if err := s.service.Send(&sub, payload); err != nil {
				if errors.Is(err, push.ErrExpired) {
					return err // not worth retrying
				}
				return retry.RetryableError(err)
			}
			return nil
		})
		if errors.Is(err, push.ErrExpired) {
			if err := s.subs.DeleteByEndpoint(sub.Endpoint); err != nil {
				s.logger.Error("prune subscription", "error", err)
			}
			continue
		}
		if err != nil {
			s.logger.Warn("send reminder", "club", clubID, "error", err)
			continue
		}
		metrics.RemindersSent.Inc()
	}
}
