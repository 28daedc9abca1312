package event

import (
	"context"
	"sync"
	"time"

	"github.com/nymstead/wayfarer/internal/logger"
)

// ResilientConfig configures the ResilientPublisher
type ResilientConfig struct {
	MaxRetries     int
	RetryDelay     time.Duration
	DeadLetterPath string
}

// ResilientPublisher wraps an event Bus to add retry logic and dead-letter queuing
type ResilientPublisher struct {
	inner      Bus
	config     ResilientConfig
	deadLetter *DeadLetterWriter
	mu         sync.Mutex
}

// NewResilientPublisher creates a new ResilientPublisher
func NewResilientPublisher(inner Bus, config ResilientConfig) *ResilientPublisher {
	if config.MaxRetries <= 0 {
		config.MaxRetries = RetryMaxAttempts
	}
	return &ResilientPublisher{
		inner:  inner,
		config: config,
	}
}

// Publish attempts to publish an event. If it fails, it initiates a background
// retry loop. It returns nil to the caller once the event is accepted for
// processing, decoupling the caller from the retry mechanism.
func (p *ResilientPublisher) Publish(ctx context.Context, event Event) error {
	err := p.inner.Publish(ctx, event)
	if err == nil {
		return nil
	}

	log := logger.FromContext(ctx)
	log.Warn("event publish failed, initiating async retry",
		"event_type", event.Type,
		"error", err,
		"retries", p.config.MaxRetries)

	// Detached from the request context: the original request may complete
	// before the retries do.
	go p.retryLoop(event)

	return nil
}

func (p *ResilientPublisher) retryLoop(event Event) {
	ctx := context.Background()
	log := logger.FromContext(ctx)

	var lastErr error
	for i := 1; i <= p.config.MaxRetries; i++ {
		time.Sleep(p.config.RetryDelay * time.Duration(i))

		lastErr = p.inner.Publish(ctx, event)
		if lastErr == nil {
			log.Info("event published after retry",
				"event_type", event.Type,
				"attempt", i)
			return
		}

		log.Warn("event retry failed",
			"event_type", event.Type,
			"attempt", i,
			"error", lastErr)
	}

	p.writeToDeadLetter(event, lastErr)
}

func (p *ResilientPublisher) writeToDeadLetter(event Event, lastErr error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	log := logger.FromContext(context.Background())

	if p.deadLetter == nil {
		if p.config.DeadLetterPath == "" {
			log.Error("event dropped, no dead-letter path configured", "event_type", event.Type)
			return
		}
		dlw, err := NewDeadLetterWriter(p.config.DeadLetterPath)
		if err != nil {
			log.Error("failed to open dead-letter file", "error", err, "path", p.config.DeadLetterPath)
			return
		}
		p.deadLetter = dlw
	}

	if err := p.deadLetter.Write(event, p.config.MaxRetries, lastErr); err != nil {
		log.Error("failed to write dead-letter entry", "error", err)
	}
}

// Subscribe delegates to the inner bus
func (p *ResilientPublisher) Subscribe(eventType Type, handler Handler) {
	p.inner.Subscribe(eventType, handler)
}

// Close releases the dead-letter file if one was opened
func (p *ResilientPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.deadLetter == nil {
		return nil
	}
	return p.deadLetter.Close()
}
