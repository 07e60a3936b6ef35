package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/custodia-labs/numen-cli/internal/core/domain"
	"github.com/custodia-labs/numen-cli/internal/core/ports/driven"
)

// mockAIConfigValidator records the settings it was asked to validate.
type mockAIConfigValidator struct {
	got *domain.LLMSettings
	err error
}

func (m *mockAIConfigValidator) ValidateLLM(settings *domain.LLMSettings) error {
	m.got = settings
	return m.err
}

// stubCatalog returns "Number N" for every value in texts.
type stubCatalog struct {
	texts  map[int]domain.Interpretation
	karmic map[int]string
}

func newStubCatalog() *stubCatalog {
	c := &stubCatalog{
		texts:  make(map[int]domain.Interpretation),
		karmic: make(map[int]string),
	}
	for _, n := range []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 11, 22, 33} {
		c.texts[n] = domain.Interpretation{
			Number:      n,
			Title:       fmt.Sprintf("Number %d", n),
			Keywords:    []string{"k1", "k2"},
			Description: fmt.Sprintf("Description of %d.", n),
		}
	}
	for d := 1; d <= 9; d++ {
		c.karmic[d] = fmt.Sprintf("Lesson %d", d)
	}
	return c
}

func (c *stubCatalog) Number(n int) (domain.Interpretation, bool) {
	text, ok := c.texts[n]
	return text, ok
}

func (c *stubCatalog) KarmicLesson(digit int) (string, bool) {
	note, ok := c.karmic[digit]
	return note, ok
}

// stubDeck has a card for every total from 3 to 18.
type stubDeck struct{}

func (stubDeck) Card(total int) (domain.OracleCard, bool) {
	if total < domain.OracleMinTotal || total > domain.OracleMaxTotal {
		return domain.OracleCard{}, false
	}
	return domain.OracleCard{Total: total, Name: fmt.Sprintf("Card %d", total), Message: "message"}, true
}

// emptyDeck has no cards.
type emptyDeck struct{}

func (emptyDeck) Card(int) (domain.OracleCard, bool) { return domain.OracleCard{}, false }

// fixedDice returns faces in order, cycling.
type fixedDice struct {
	mu    sync.Mutex
	faces []int
	next  int
	err   error
}

func (d *fixedDice) Roll(int) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.err != nil {
		return 0, d.err
	}
	face := d.faces[d.next%len(d.faces)]
	d.next++
	return face, nil
}

// mockLLM records every call and returns a canned reply.
type mockLLM struct {
	mu       sync.Mutex
	reply    string
	err      error
	calls    int
	messages [][]domain.ChatMessage
	opts     []driven.ChatOptions
}

func (m *mockLLM) Chat(_ context.Context, messages []domain.ChatMessage, opts driven.ChatOptions) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	m.messages = append(m.messages, messages)
	m.opts = append(m.opts, opts)
	return m.reply, m.err
}

func (m *mockLLM) ModelName() string            { return "mock-model" }
func (m *mockLLM) Ping(_ context.Context) error { return nil }
func (m *mockLLM) Close() error                 { return nil }

func (m *mockLLM) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// mockPromptStore serves prompts from a map.
type mockPromptStore struct {
	prompts map[string]string
}

func (m *mockPromptStore) Load(name string) (string, error) {
	if p, ok := m.prompts[name]; ok {
		return p, nil
	}
	return "", fmt.Errorf("prompt %s: %w", name, domain.ErrNotFound)
}

func (m *mockPromptStore) Reload() {}

// mockMailer records sent messages.
type mockMailer struct {
	sent []domain.EmailMessage
	err  error
}

func (m *mockMailer) Send(_ context.Context, msg domain.EmailMessage) error {
	m.sent = append(m.sent, msg)
	return m.err
}

// mockObjectStore keeps uploads in memory.
type mockObjectStore struct {
	objects      map[string][]byte
	contentTypes map[string]string
	ttl          time.Duration
	putErr       error
	presignErr   error
}

func newMockObjectStore() *mockObjectStore {
	return &mockObjectStore{
		objects:      make(map[string][]byte),
		contentTypes: make(map[string]string),
	}
}

func (m *mockObjectStore) Put(_ context.Context, key, contentType string, body []byte) error {
	if m.putErr != nil {
		return m.putErr
	}
	m.objects[key] = body
	m.contentTypes[key] = contentType
	return nil
}

func (m *mockObjectStore) PresignGet(_ context.Context, key string, ttl time.Duration) (string, error) {
	if m.presignErr != nil {
		return "", m.presignErr
	}
	m.ttl = ttl
	return "https://bucket.example/" + key + "?sig=abc", nil
}

// upperRenderer wraps markdown in markers so tests can see it ran.
type upperRenderer struct {
	width int
	err   error
}

func (r *upperRenderer) Render(md string, width int) (string, error) {
	r.width = width
	if r.err != nil {
		return "", r.err
	}
	return "<rendered>" + md + "</rendered>", nil
}

// errProfileStore fails every call.
type errProfileStore struct {
	err error
}

func (s errProfileStore) Save(context.Context, domain.BirthProfile) error { return s.err }
func (s errProfileStore) Get(context.Context, string) (*domain.BirthProfile, error) {
	return nil, s.err
}
func (s errProfileStore) Delete(context.Context, string) error { return s.err }
func (s errProfileStore) List(context.Context) ([]domain.BirthProfile, error) {
	return nil, s.err
}

// testProfile is John Robert Smith, born 1988-04-15.
func testProfile() domain.BirthProfile {
	return domain.BirthProfile{
		FullName:  "John Robert Smith",
		BirthDate: domain.Date{Year: 1988, Month: 4, Day: 15},
	}
}

// testOn is the reference date used across service tests.
var testOn = domain.Date{Year: 2026, Month: 10, Day: 19}
