package stream

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func TestHubBroadcast(t *testing.T) {
	hub := NewHub(nil)
	client := hub.Register("community")
	defer hub.Unregister(client)

	payload := []byte("hello")
	hub.Broadcast("community", payload)

	select {
	case msg := <-client.Send:
		if string(msg) != "hello" {
			t.Fatalf("unexpected message")
		}
	case <-time.After(100 * time.Millisecond):
		t.Fatalf("timeout waiting for message")
	}
}

func TestHubHelpers(t *testing.T) {
	ch := redisChannel("community")
	if ch == "" {
		t.Fatalf("expected channel")
	}
	if topicFromChannel(ch) != "community" {
		t.Fatalf("unexpected topic")
	}
	if topicFromChannel("bad") != "" {
		t.Fatalf("expected empty topic")
	}
}

func TestUnregisterCloses(t *testing.T) {
	hub := NewHub(nil)
	client := hub.Register("conversation-2")
	hub.Unregister(client)
	_, ok := <-client.Send
	if ok {
		t.Fatalf("expected channel closed")
	}
}

func TestHubRedisBroadcastAndSubscribe(t *testing.T) {
	s := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: s.Addr()})
	defer client.Close()

	hub := NewHub(client)
	ws := hub.Register("community")
	defer hub.Unregister(ws)
	time.Sleep(20 * time.Millisecond)

	// A broadcast round-trips through pub/sub back to local subscribers.
	hub.Broadcast("community", []byte("ping"))

	select {
	case msg := <-ws.Send:
		if string(msg) != "ping" {
			t.Fatalf("unexpected message")
		}
	case <-time.After(200 * time.Millisecond):
		t.Fatalf("timeout waiting for broadcast")
	}

	// A publish from another instance reaches local subscribers too.
	if err := client.Publish(context.Background(), "sparnet:community:events", "pong").Err(); err != nil {
		t.Fatalf("publish error: %v", err)
	}

	select {
	case msg := <-ws.Send:
		if string(msg) != "pong" {
			t.Fatalf("unexpected forwarded message")
		}
	case <-time.After(200 * time.Millisecond):
		t.Fatalf("timeout waiting for forwarded message")
	}
}

func TestHubSubscribesPerTopic(t *testing.T) {
	s := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: s.Addr()})
	defer client.Close()

	hub := NewHub(client)
	first := hub.Register("conversation-1")
	second := hub.Register("conversation-1")
	time.Sleep(20 * time.Millisecond)

	channels, err := client.PubSubChannels(context.Background(), "sparnet:*").Result()
	if err != nil {
		t.Fatalf("pubsub channels: %v", err)
	}
	if len(channels) != 1 || channels[0] != "sparnet:conversation-1:events" {
		t.Fatalf("expected one topic channel, got %v", channels)
	}

	// Only the last unregister drops the subscription.
	hub.Unregister(first)
	time.Sleep(20 * time.Millisecond)
	channels, _ = client.PubSubChannels(context.Background(), "sparnet:*").Result()
	if len(channels) != 1 {
		t.Fatalf("expected channel to survive first unregister, got %v", channels)
	}

	hub.Unregister(second)
	time.Sleep(20 * time.Millisecond)
	channels, _ = client.PubSubChannels(context.Background(), "sparnet:*").Result()
	if len(channels) != 0 {
		t.Fatalf("expected no channels after last unregister, got %v", channels)
	}
}
