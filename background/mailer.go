// Package background contains work that runs independently of the HTTP request-response
// cycle. Today that is the notification sink: account emails are queued by the request
// path and delivered later by a small pool of workers, so a slow or failing email
// provider never delays or fails a request.
package background

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/user/taskmanager-go/config"
	"github.com/user/taskmanager-go/logging"
)

// defaultBackoff is the first retry delay; each further retry doubles it.
const defaultBackoff = 500 * time.Millisecond

// sendTimeout bounds a single delivery attempt.
const sendTimeout = 15 * time.Second

// ErrUndeliverable marks failures that retrying can not fix, such as a rejected address.
var ErrUndeliverable = errors.New("message undeliverable")

// Message is one outgoing email.
type Message struct {
	To      string
	Name    string
	Subject string
	Text    string
	HTML    string
}

// Sender delivers a single message.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// Mailer is a buffered queue of messages drained by a fixed pool of workers.
// Failed deliveries are retried with exponential backoff, then logged and dropped.
type Mailer struct {
	sender     Sender
	queue      chan Message
	workers    int
	maxRetries uint64
	backoff    time.Duration
	log        logging.Logger

	// mu guards closed so Enqueue never sends on a closed queue.
	mu     sync.RWMutex
	closed bool

	wg     sync.WaitGroup
	ctx    context.Context
	cancel context.CancelFunc
}

// NewMailer creates a Mailer. Call Start to launch the workers.
func NewMailer(sender Sender, cfg *config.MailConfig, log logging.Logger) *Mailer {
	ctx, cancel := context.WithCancel(context.Background())
	return &Mailer{
		sender:     sender,
		queue:      make(chan Message, max(cfg.QueueSize, 1)),
		workers:    max(cfg.Workers, 1),
		maxRetries: uint64(max(cfg.MaxRetries, 0)),
		backoff:    defaultBackoff,
		log:        log,
		ctx:        ctx,
		cancel:     cancel,
	}
}

// Start launches the worker goroutines.
func (m *Mailer) Start() {
	m.log.Info(m.ctx, "mailer starting", "workers", m.workers, "queue_size", cap(m.queue))
	for i := 0; i < m.workers; i++ {
		m.wg.Add(1)
		go func(workerID int) {
			defer m.wg.Done()
			for msg := range m.queue {
				m.deliver(workerID, msg)
			}
		}(i)
	}
}

// Stop stops accepting messages and waits for the queue to drain. If ctx ends
// first, in-flight deliveries are cancelled and ctx's error is returned.
func (m *Mailer) Stop(ctx context.Context) error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return nil
	}
	m.closed = true
	close(m.queue)
	m.mu.Unlock()

	done := make(chan struct{})
	go func() {
		m.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		m.cancel()
		m.log.Info(ctx, "mailer stopped")
		return nil
	case <-ctx.Done():
		pending := len(m.queue)
		m.cancel()
		<-done
		m.log.Warn(ctx, "mailer stopped before the queue drained", "pending", pending)
		return ctx.Err()
	}
}

// Enqueue hands msg to the workers without blocking. It reports false, and logs,
// when the queue is full or the mailer has been stopped.
func (m *Mailer) Enqueue(msg Message) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		m.log.Warn(m.ctx, "mailer stopped, dropping message", "to", msg.To, "subject", msg.Subject)
		return false
	}
	select {
	case m.queue <- msg:
		return true
	default:
		m.log.Warn(m.ctx, "mail queue full, dropping message", "to", msg.To, "subject", msg.Subject)
		return false
	}
}

// SendWelcome queues the welcome email. The request context is not used for
// delivery, which happens after the response has been written.
func (m *Mailer) SendWelcome(ctx context.Context, email, name string) {
	m.Enqueue(WelcomeMessage(email, name))
}

// SendCancellation queues the goodbye email sent after an account is deleted.
func (m *Mailer) SendCancellation(ctx context.Context, email, name string) {
	m.Enqueue(CancellationMessage(email, name))
}

func (m *Mailer) deliver(workerID int, msg Message) {
	attempts := 0
	b := retry.WithMaxRetries(m.maxRetries, retry.NewExponential(m.backoff))

	err := retry.Do(m.ctx, b, func(ctx context.Context) error {
		attempts++
		sendCtx, cancel := context.WithTimeout(ctx, sendTimeout)
		defer cancel()

		if err := m.sender.Send(sendCtx, msg); err != nil {
			if errors.Is(err, ErrUndeliverable) {
				return err
			}
			m.log.Debug(ctx, "mail delivery attempt failed", "worker", workerID, "attempt", attempts, "error", err)
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		m.log.Error(m.ctx, "mail delivery failed",
			"worker", workerID,
			"to", msg.To,
			"subject", msg.Subject,
			"attempts", attempts,
			"error", err,
		)
		return
	}
	m.log.Info(m.ctx, "mail sent", "worker", workerID, "to", msg.To, "subject", msg.Subject)
}
