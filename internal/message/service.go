package message

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"backend-sparnet/internal/db"
	"backend-sparnet/internal/stream"

	"github.com/google/uuid"
)

type Service struct {
	db  db.Querier
	hub *stream.Hub
}

func NewService(db db.Querier, hub *stream.Hub) *Service {
	return &Service{db: db, hub: hub}
}

// StartConversation finds or creates the conversation between two users.
// The pair is stored in lexical order so (a,b) and (b,a) map to one row.
func (s *Service) StartConversation(ctx context.Context, userA, userB string) (Conversation, error) {
	if userA == "" || userB == "" || userA == userB {
		return Conversation{}, errors.New("two distinct users required")
	}
	if userA > userB {
		userA, userB = userB, userA
	}

	conv := Conversation{ID: uuid.NewString(), UserA: userA, UserB: userB}
	row := s.db.QueryRow(ctx, `
		INSERT INTO conversations (id, user_a, user_b)
		VALUES ($1,$2,$3)
		ON CONFLICT (user_a, user_b) DO UPDATE SET user_a=EXCLUDED.user_a
		RETURNING id, created_at
	`, conv.ID, conv.UserA, conv.UserB)
	if err := row.Scan(&conv.ID, &conv.CreatedAt); err != nil {
		return Conversation{}, err
	}
	return conv, nil
}

func (s *Service) SendMessage(ctx context.Context, conversationID, senderID, body string) (Message, error) {
	if strings.TrimSpace(body) == "" {
		return Message{}, errors.New("message body required")
	}

	msg := Message{
		ID:             uuid.NewString(),
		ConversationID: conversationID,
		SenderID:       senderID,
		Body:           body,
	}
	row := s.db.QueryRow(ctx, `
		INSERT INTO messages (id, conversation_id, sender_id, body)
		VALUES ($1,$2,$3,$4)
		RETURNING created_at
	`, msg.ID, msg.ConversationID, msg.SenderID, msg.Body)
	if err := row.Scan(&msg.CreatedAt); err != nil {
		return Message{}, err
	}

	if s.hub != nil {
		payload, _ := json.Marshal(msg)
		s.hub.Broadcast(conversationID, payload)
	}

	return msg, nil
}

func (s *Service) Messages(ctx context.Context, conversationID string) ([]Message, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, conversation_id, sender_id, body, created_at
		FROM messages WHERE conversation_id=$1
		ORDER BY created_at
	`, conversationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []Message
	for rows.Next() {
		var m Message
		if err := rows.Scan(&m.ID, &m.ConversationID, &m.SenderID, &m.Body, &m.CreatedAt); err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}
	return messages, nil
}

func (s *Service) Conversations(ctx context.Context, userID string) ([]Conversation, error) {
	rows, err := s.db.Query(ctx, `
		SELECT c.id, c.user_a, c.user_b, c.created_at,
		       m.id, m.sender_id, m.body, m.created_at
		FROM conversations c
		LEFT JOIN LATERAL (
			SELECT id, sender_id, body, created_at
			FROM messages WHERE conversation_id = c.id
			ORDER BY created_at DESC LIMIT 1
		) m ON true
		WHERE c.user_a=$1 OR c.user_b=$1
		ORDER BY COALESCE(m.created_at, c.created_at) DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var conversations []Conversation
	for rows.Next() {
		var c Conversation
		var msgID, msgSender, msgBody *string
		var msgCreatedAt *time.Time
		if err := rows.Scan(&c.ID, &c.UserA, &c.UserB, &c.CreatedAt, &msgID, &msgSender, &msgBody, &msgCreatedAt); err != nil {
			return nil, err
		}
		if msgID != nil {
			c.LastMessage = &Message{
				ID:             *msgID,
				ConversationID: c.ID,
				SenderID:       *msgSender,
				Body:           *msgBody,
				CreatedAt:      *msgCreatedAt,
			}
		}
		conversations = append(conversations, c)
	}
	return conversations, nil
}
