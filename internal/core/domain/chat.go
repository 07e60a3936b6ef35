package domain

// Chat roles.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatMessage is one turn in a conversation.
type ChatMessage struct {
	// Role is one of "system", "user" or "assistant".
	Role string `json:"role"`

	// Content is the message text.
	Content string `json:"content"`
}

// ChatRequest is a conversation sent to the chat proxy.
type ChatRequest struct {
	// ProfileID optionally grounds the conversation in a saved profile.
	ProfileID string `json:"profile_id,omitempty"`

	// Messages are the user and assistant turns so far. System messages
	// supplied by callers are ignored.
	Messages []ChatMessage `json:"messages"`
}

// ChatReply is the assistant's answer.
type ChatReply struct {
	// Content is the reply text.
	Content string `json:"content"`

	// Model is the model that produced the reply.
	Model string `json:"model,omitempty"`

	// Cached is true when the reply was served from the local cache.
	Cached bool `json:"cached,omitempty"`
}

// EmailMessage is an outbound transactional email.
type EmailMessage struct {
	To      string
	Subject string
	Text    string
	HTML    string
}
