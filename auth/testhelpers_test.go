package auth

import (
	"context"
	"sync"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/user/taskmanager-go/logging"
	"github.com/user/taskmanager-go/store/memory"
)

type sentMail struct {
	kind  string
	email string
	name  string
}

// recordingNotifier remembers every notification it is asked to send.
type recordingNotifier struct {
	mu   sync.Mutex
	sent []sentMail
}

func (n *recordingNotifier) SendWelcome(ctx context.Context, email, name string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, sentMail{"welcome", email, name})
}

func (n *recordingNotifier) SendCancellation(ctx context.Context, email, name string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, sentMail{"cancellation", email, name})
}

type fixture struct {
	store    *memory.Store
	tokens   *TokenIssuer
	notifier *recordingNotifier
	service  *Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	st := memory.New()
	tokens := NewTokenIssuer("test-secret", time.Hour)
	notifier := &recordingNotifier{}
	return &fixture{
		store:    st,
		tokens:   tokens,
		notifier: notifier,
		service:  NewService(st, NewBcryptHasher(bcrypt.MinCost), tokens, notifier, logging.Discard()),
	}
}
