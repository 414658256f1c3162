package assistant

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/justyntemme/cloudreader/internal/metrics"
)

// Message roles
const (
	RoleUser  = "user"
	RoleModel = "model"
)

// Answers shown in place of a model reply
const (
	EmptyAnswer    = "抱歉，我无法回答。"
	FallbackAnswer = "AI服务暂时不可用，请检查API Key配置。"
)

// Message is one turn of a conversation
type Message struct {
	Role string
	Text string
	At   time.Time
}

// Conversation is a chat about one book. Failures never surface as errors;
// they are answered with FallbackAnswer instead.
type Conversation struct {
	ID   uuid.UUID
	Book Book

	client Client

	mu       sync.Mutex
	messages []Message
}

// NewConversation starts an empty conversation about book
func NewConversation(client Client, book Book) *Conversation {
	return &Conversation{
		ID:     uuid.New(),
		Book:   book,
		client: client,
	}
}

// Messages returns a copy of the conversation so far
func (c *Conversation) Messages() []Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Message(nil), c.messages...)
}

// Send asks question and appends both the question and the reply. Blank
// questions are ignored and return false.
func (c *Conversation) Send(ctx context.Context, question string) (Message, bool) {
	question = strings.TrimSpace(question)
	if question == "" {
		return Message{}, false
	}

	c.append(Message{Role: RoleUser, Text: question, At: time.Now()})

	text, outcome := c.ask(ctx, question)
	metrics.AssistantRequests.WithLabelValues(outcome).Inc()

	reply := Message{Role: RoleModel, Text: text, At: time.Now()}
	c.append(reply)
	return reply, true
}

func (c *Conversation) ask(ctx context.Context, question string) (string, string) {
	if c.client == nil {
		return FallbackAnswer, "fallback"
	}

	answer, err := c.client.Ask(ctx, c.Book, question)
	if err != nil {
		log.Warn().Err(err).Str("conversation", c.ID.String()).Str("book", c.Book.Title).
			Msg("assistant request failed")
		return FallbackAnswer, "fallback"
	}
	if strings.TrimSpace(answer) == "" {
		return EmptyAnswer, "empty"
	}
	return answer, "ok"
}

func (c *Conversation) append(m Message) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.messages = append(c.messages, m)
}
