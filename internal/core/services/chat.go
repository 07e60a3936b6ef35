package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/custodia-labs/numen-cli/internal/core/domain"
	"github.com/custodia-labs/numen-cli/internal/core/ports/driven"
	"github.com/custodia-labs/numen-cli/internal/core/ports/driving"
	"github.com/custodia-labs/numen-cli/internal/logger"
	"github.com/custodia-labs/numen-cli/internal/ratelimit"
)

// Chat defaults.
const (
	defaultChatCacheSize = 128
	defaultChatCacheTTL  = 10 * time.Minute
	maxChatMessages      = 20
	maxChatMessageLength = 4000
	chatMaxTokens        = 1024
	chatTemperature      = 0.7
)

// Default prompts used when no PromptStore is set.
const (
	defaultChatSystemPrompt = `You are Numen, a warm and knowledgeable numerology guide.
Answer questions about Pythagorean numerology: life path, destiny, soul urge,
personality, birthday, challenge, pinnacle and personal cycle numbers, and the
master numbers 11, 22 and 33. Keep answers short and kind. Numerology is for
reflection and entertainment; never present it as medical, legal or financial advice.`

	defaultChatProfilePrompt = `The user has shared this numerology profile.
Refer to it when it helps answer their questions:

%s`
)

// Ensure ChatService implements the interfaces.
var (
	_ driving.ChatService     = (*ChatService)(nil)
	_ driven.PromptStoreAware = (*ChatService)(nil)
)

type cachedReply struct {
	reply    domain.ChatReply
	storedAt time.Time
}

// ChatService proxies numerology conversations to an LLM.
type ChatService struct {
	llm        driven.LLMService
	profiles   driven.ProfileStore
	numerology driving.NumerologyService
	prompts    driven.PromptStore
	limiter    *ratelimit.Limiter
	cache      *lru.Cache[string, cachedReply]
	ttl        time.Duration
	now        func() time.Time
}

// NewChatService creates a new chat service.
// The llm parameter is optional; without it Ask returns ErrLLMUnavailable.
func NewChatService(
	llm driven.LLMService,
	profiles driven.ProfileStore,
	numerology driving.NumerologyService,
) *ChatService {
	cache, err := lru.New[string, cachedReply](defaultChatCacheSize)
	if err != nil {
		// lru.New only errors on non-positive size.
		cache = nil
	}
	return &ChatService{
		llm:        llm,
		profiles:   profiles,
		numerology: numerology,
		limiter:    ratelimit.New(ratelimit.DefaultRate, ratelimit.DefaultBurst),
		cache:      cache,
		ttl:        defaultChatCacheTTL,
		now:        time.Now,
	}
}

// SetPromptStore sets the prompt store for loading customisable prompts.
func (s *ChatService) SetPromptStore(store driven.PromptStore) {
	s.prompts = store
}

// SetLimiter replaces the outbound rate limiter.
func (s *ChatService) SetLimiter(l *ratelimit.Limiter) {
	s.limiter = l
}

// Available returns true if an LLM is configured.
func (s *ChatService) Available() bool {
	return s.llm != nil
}

// Ask sends the conversation and returns the assistant reply.
// The LLM is called at most once; failures are not retried.
func (s *ChatService) Ask(ctx context.Context, req domain.ChatRequest) (*domain.ChatReply, error) {
	if s.llm == nil {
		return nil, domain.ErrLLMUnavailable
	}

	logger.Section("Chat")
	turns, err := sanitiseTurns(req.Messages)
	if err != nil {
		return nil, err
	}

	messages := []domain.ChatMessage{{Role: domain.RoleSystem, Content: s.loadPrompt(driven.PromptChatSystem)}}
	if req.ProfileID != "" {
		profileMsg, err := s.profileContext(ctx, req.ProfileID)
		if err != nil {
			return nil, err
		}
		messages = append(messages, profileMsg)
	}
	messages = append(messages, turns...)

	key := s.cacheKey(messages)
	if s.cache != nil {
		if entry, ok := s.cache.Get(key); ok {
			if s.now().Sub(entry.storedAt) < s.ttl {
				logger.Debug("Chat cache hit")
				reply := entry.reply
				reply.Cached = true
				return &reply, nil
			}
			s.cache.Remove(key)
		}
	}

	if s.limiter != nil {
		if err := s.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("%w: %w", domain.ErrRateLimited, err)
		}
	}

	logger.Debug("Sending %d messages to %s", len(messages), s.llm.ModelName())
	content, err := s.llm.Chat(ctx, messages, driven.ChatOptions{
		MaxTokens:   chatMaxTokens,
		Temperature: chatTemperature,
	})
	if err != nil {
		logger.Warn("chat completion failed: %v", err)
		return nil, fmt.Errorf("%w: %w", domain.ErrChatUnavailable, err)
	}
	content = strings.TrimSpace(content)
	if content == "" {
		logger.Warn("chat completion returned an empty reply")
		return nil, fmt.Errorf("%w: empty reply", domain.ErrChatUnavailable)
	}

	reply := domain.ChatReply{Content: content, Model: s.llm.ModelName()}
	if s.cache != nil {
		s.cache.Add(key, cachedReply{reply: reply, storedAt: s.now()})
	}
	return &reply, nil
}

// sanitiseTurns drops caller system messages, validates roles and keeps the
// most recent turns. The conversation must end with a user message.
func sanitiseTurns(in []domain.ChatMessage) ([]domain.ChatMessage, error) {
	turns := make([]domain.ChatMessage, 0, len(in))
	for _, m := range in {
		content := strings.TrimSpace(m.Content)
		switch m.Role {
		case domain.RoleSystem:
			continue
		case domain.RoleUser, domain.RoleAssistant:
		default:
			return nil, domain.NewFieldError("messages", "unknown role %q", m.Role)
		}
		if content == "" {
			continue
		}
		if len(content) > maxChatMessageLength {
			return nil, domain.NewFieldError("messages", "message is longer than %d characters", maxChatMessageLength)
		}
		turns = append(turns, domain.ChatMessage{Role: m.Role, Content: content})
	}

	if len(turns) == 0 || turns[len(turns)-1].Role != domain.RoleUser {
		return nil, domain.NewFieldError("messages", "must end with a user message")
	}
	if len(turns) > maxChatMessages {
		turns = turns[len(turns)-maxChatMessages:]
	}
	return turns, nil
}

// profileContext builds a system message describing a saved profile.
func (s *ChatService) profileContext(ctx context.Context, id string) (domain.ChatMessage, error) {
	if s.profiles == nil || s.numerology == nil {
		return domain.ChatMessage{}, fmt.Errorf("profile %s: %w", id, domain.ErrNotFound)
	}
	profile, err := s.profiles.Get(ctx, id)
	if err != nil {
		return domain.ChatMessage{}, fmt.Errorf("profile %s: %w", id, err)
	}
	report, err := s.numerology.Report(ctx, *profile, domain.DateOf(s.now()))
	if err != nil {
		return domain.ChatMessage{}, fmt.Errorf("profile report: %w", err)
	}
	tmpl := s.loadPrompt(driven.PromptChatProfile)
	if !strings.Contains(tmpl, "%s") {
		tmpl += "\n\n%s"
	}
	return domain.ChatMessage{
		Role:    domain.RoleSystem,
		Content: fmt.Sprintf(tmpl, reportSummary(report)),
	}, nil
}

func (s *ChatService) loadPrompt(name string) string {
	if s.prompts != nil {
		prompt, err := s.prompts.Load(name)
		if err == nil && strings.TrimSpace(prompt) != "" {
			return prompt
		}
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			logger.Debug("Failed to load prompt %s: %v", name, err)
		}
	}
	switch name {
	case driven.PromptChatProfile:
		return defaultChatProfilePrompt
	default:
		return defaultChatSystemPrompt
	}
}

func (s *ChatService) cacheKey(messages []domain.ChatMessage) string {
	h := sha256.New()
	h.Write([]byte(s.llm.ModelName()))
	for _, m := range messages {
		h.Write([]byte{0})
		h.Write([]byte(m.Role))
		h.Write([]byte{0})
		h.Write([]byte(m.Content))
	}
	return hex.EncodeToString(h.Sum(nil))
}
