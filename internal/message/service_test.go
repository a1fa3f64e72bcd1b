package message

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"backend-sparnet/internal/stream"

	"github.com/pashagolub/pgxmock/v3"
)

var errMessage = errors.New("message error")

func TestStartConversationOrdersPair(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	// user-b sorts after user-a; passing them reversed must still store (a,b).
	mock.ExpectQuery(`INSERT INTO conversations`).
		WithArgs(pgxmock.AnyArg(), "user-a", "user-b").
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow("conv-1", time.Now()))

	svc := NewService(mock, nil)
	conv, err := svc.StartConversation(context.Background(), "user-b", "user-a")
	if err != nil {
		t.Fatalf("start conversation: %v", err)
	}
	if conv.ID != "conv-1" || conv.UserA != "user-a" || conv.UserB != "user-b" {
		t.Fatalf("unexpected conversation: %+v", conv)
	}
}

func TestStartConversationRejectsBadPairs(t *testing.T) {
	svc := NewService(nil, nil)
	if _, err := svc.StartConversation(context.Background(), "user-a", "user-a"); err == nil {
		t.Fatalf("expected error for self conversation")
	}
	if _, err := svc.StartConversation(context.Background(), "", "user-a"); err == nil {
		t.Fatalf("expected error for missing user")
	}
}

func TestSendMessageBroadcasts(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery(`INSERT INTO messages`).
		WithArgs(pgxmock.AnyArg(), "conv-1", "user-a", "ready to spar saturday?").
		WillReturnRows(pgxmock.NewRows([]string{"created_at"}).AddRow(time.Now()))

	hub := stream.NewHub(nil)
	client := hub.Register("conv-1")
	defer hub.Unregister(client)

	svc := NewService(mock, hub)
	msg, err := svc.SendMessage(context.Background(), "conv-1", "user-a", "ready to spar saturday?")
	if err != nil {
		t.Fatalf("send message: %v", err)
	}

	select {
	case payload := <-client.Send:
		var got Message
		if err := json.Unmarshal(payload, &got); err != nil {
			t.Fatalf("unmarshal broadcast: %v", err)
		}
		if got.ID != msg.ID || got.Body != msg.Body {
			t.Fatalf("broadcast mismatch: %+v", got)
		}
	case <-time.After(time.Second):
		t.Fatalf("no broadcast received")
	}
}

func TestSendMessageBlankBody(t *testing.T) {
	svc := NewService(nil, nil)
	if _, err := svc.SendMessage(context.Background(), "conv-1", "user-a", "   "); err == nil {
		t.Fatalf("expected error for blank body")
	}
}

func TestMessagesAndConversations(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	now := time.Now()
	mock.ExpectQuery(`SELECT id, conversation_id, sender_id, body, created_at`).
		WithArgs("conv-1").
		WillReturnRows(pgxmock.NewRows([]string{"id", "conversation_id", "sender_id", "body", "created_at"}).
			AddRow("msg-1", "conv-1", "user-a", "hey", now))

	svc := NewService(mock, nil)
	messages, err := svc.Messages(context.Background(), "conv-1")
	if err != nil || len(messages) != 1 {
		t.Fatalf("messages: %v", err)
	}

	body := "see you at open mat"
	sender := "user-b"
	msgID := "msg-2"
	mock.ExpectQuery(`SELECT c.id, c.user_a, c.user_b, c.created_at`).
		WithArgs("user-a").
		WillReturnRows(pgxmock.NewRows([]string{"id", "user_a", "user_b", "created_at", "m_id", "m_sender", "m_body", "m_created_at"}).
			AddRow("conv-1", "user-a", "user-b", now, &msgID, &sender, &body, &now).
			AddRow("conv-2", "user-a", "user-c", now, nil, nil, nil, nil))

	conversations, err := svc.Conversations(context.Background(), "user-a")
	if err != nil {
		t.Fatalf("conversations: %v", err)
	}
	if len(conversations) != 2 {
		t.Fatalf("expected 2 conversations, got %d", len(conversations))
	}
	if conversations[0].LastMessage == nil || conversations[0].LastMessage.Body != body {
		t.Fatalf("expected last message on conv-1")
	}
	if conversations[1].LastMessage != nil {
		t.Fatalf("expected no last message on conv-2")
	}
}

func TestSendMessageInsertError(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery(`INSERT INTO messages`).
		WithArgs(pgxmock.AnyArg(), "conv-1", "user-a", "hi").
		WillReturnError(errMessage)

	svc := NewService(mock, nil)
	if _, err := svc.SendMessage(context.Background(), "conv-1", "user-a", "hi"); err == nil {
		t.Fatalf("expected error")
	}
}

func TestConversationsQueryError(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery(`SELECT c.id, c.user_a, c.user_b, c.created_at`).
		WithArgs("user-err").
		WillReturnError(errMessage)

	svc := NewService(mock, nil)
	if _, err := svc.Conversations(context.Background(), "user-err"); err == nil {
		t.Fatalf("expected error")
	}
}
