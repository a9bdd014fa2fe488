package reminder

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/prepcheck/prepcheck/internal/push"
	"github.com/prepcheck/prepcheck/internal/store"
	"github.com/prepcheck/prepcheck/internal/websocket"
)

// sentLogRetention is how long delivered-reminder rows are kept before
// pruning.
const sentLogRetention = 7 * 24 * time.Hour

// Scheduler polls the engine once a minute and delivers due reminders:
// every reminder is broadcast to connected WebSocket clients, and pushed
// to subscribed devices at most once per trigger window.
type Scheduler struct {
	mu       sync.RWMutex
	engine   *Engine
	hub      *websocket.Hub
	pushSvc  *push.Service
	pushes   *store.PushStore
	interval time.Duration
	logger   *slog.Logger
	cancel   context.CancelFunc
	done     chan struct{}
}

// NewScheduler creates a reminder scheduler. The push service may be nil
// when VAPID keys are not configured; WebSocket delivery still runs.
func NewScheduler(engine *Engine, hub *websocket.Hub, pushSvc *push.Service, pushStore *store.PushStore, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		engine:   engine,
		hub:      hub,
		pushSvc:  pushSvc,
		pushes:   pushStore,
		interval: 60 * time.Second,
		logger:   logger,
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
				s.tick(ctx, time.Now())
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

func (s *Scheduler) tick(ctx context.Context, now time.Time) {
	reminders, err := s.engine.Check(ctx, now)
	if err != nil {
		s.logger.Error("reminder check", "error", err)
		return
	}

	for i := range reminders {
		s.deliver(&reminders[i], now)
	}

	// Housekeeping once an hour.
	if now.Minute() == 0 {
		if err := s.pushes.PruneSentBefore(now.Add(-sentLogRetention)); err != nil {
			s.logger.Warn("prune sent reminders", "error", err)
		}
	}
}

func (s *Scheduler) deliver(r *Reminder, now time.Time) {
	tag := fmt.Sprintf("%s-%s-%d", r.Source, r.RefID, r.WindowStart)

	s.hub.Broadcast(websocket.Message{
		Type:   "reminder_fired",
		Entity: "reminder",
		Action: "fired",
		ID:     r.RefID,
		Tag:    tag,
		Extra: map[string]any{
			"source":              r.Source,
			"name":                r.Name,
			"message":             r.Message,
			"items":               r.Items,
			"weather":             r.Weather,
			"weather_suggestions": r.Suggestions,
		},
	})

	if s.pushSvc == nil {
		return
	}

	// One push per trigger window: the engine re-fires on every poll
	// inside the window, so dedup happens here against the sent log.
	refID := fmt.Sprintf("%s:%s", r.RefID, now.Format("2006-01-02"))
	sent, err := s.pushes.WasSent(r.Source, refID, r.WindowStart)
	if err != nil {
		s.logger.Error("check sent reminder", "error", err)
		return
	}
	if sent {
		return
	}

	subs, err := s.pushes.List()
	if err != nil {
		s.logger.Error("list push subscriptions", "error", err)
		return
	}

	payload := push.Payload{
		Title: r.Name,
		Body:  r.Message,
		Items: r.Items,
		URL:   "/",
		Tag:   tag,
	}

	for _, sub := range subs {
		if err := s.pushSvc.Send(&sub, payload); err != nil {
			if errors.Is(err, push.ErrExpired) {
				if err := s.pushes.DeleteByEndpoint(sub.Endpoint); err != nil {
					s.logger.Warn("delete expired subscription", "error", err)
				}
			} else {
				s.logger.Warn("send reminder push", "error", err)
			}
		}
	}

	if err := s.pushes.RecordSent(r.Source, refID, r.WindowStart); err != nil {
		s.logger.Warn("record sent reminder", "error", err)
	}
}
