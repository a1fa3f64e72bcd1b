package stream

import (
	"context"
	"log"
	"sync"

	"github.com/redis/go-redis/v9"
)

// Hub fans feed and conversation events out to websocket subscribers.
// With redis attached every broadcast travels through pub/sub, so all
// instances (this one included) deliver from their subscription; the hub
// only subscribes to channels that currently have local subscribers.
type Hub struct {
	redis   *redis.Client
	pubsub  *redis.PubSub
	clients map[string]map[*Client]struct{}
	mu      sync.RWMutex
}

type Client struct {
	Topic string
	Send  chan []byte
}

func NewHub(redisClient *redis.Client) *Hub {
	h := &Hub{
		redis:   redisClient,
		clients: map[string]map[*Client]struct{}{},
	}

	if redisClient != nil {
		h.pubsub = redisClient.Subscribe(context.Background())
		go h.readPump()
	}
	return h
}

func (h *Hub) Register(topic string) *Client {
	client := &Client{
		Topic: topic,
		Send:  make(chan []byte, 64),
	}

	h.mu.Lock()
	first := h.clients[topic] == nil
	if first {
		h.clients[topic] = map[*Client]struct{}{}
	}
	h.clients[topic][client] = struct{}{}
	h.mu.Unlock()

	if first && h.pubsub != nil {
		if err := h.pubsub.Subscribe(context.Background(), redisChannel(topic)); err != nil {
			log.Printf("redis subscribe %s: %v", topic, err)
		}
	}
	return client
}

func (h *Hub) Unregister(client *Client) {
	h.mu.Lock()
	last := false
	if topicClients, ok := h.clients[client.Topic]; ok {
		delete(topicClients, client)
		if len(topicClients) == 0 {
			delete(h.clients, client.Topic)
			last = true
		}
	}
	close(client.Send)
	h.mu.Unlock()

	if last && h.pubsub != nil {
		if err := h.pubsub.Unsubscribe(context.Background(), redisChannel(client.Topic)); err != nil {
			log.Printf("redis unsubscribe %s: %v", client.Topic, err)
		}
	}
}

func (h *Hub) Broadcast(topic string, payload []byte) {
	if h.redis != nil {
		err := h.redis.Publish(context.Background(), redisChannel(topic), payload).Err()
		if err == nil {
			return
		}
		log.Printf("redis publish error, delivering locally: %v", err)
	}
	h.deliver(topic, payload)
}

// deliver pushes payload to the local subscribers of topic. Sends stay
// under the read lock so Unregister cannot close a channel mid-send.
func (h *Hub) deliver(topic string, payload []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for client := range h.clients[topic] {
		select {
		case client.Send <- payload:
		default:
		}
	}
}

func (h *Hub) readPump() {
	for msg := range h.pubsub.Channel() {
		h.deliver(topicFromChannel(msg.Channel), []byte(msg.Payload))
	}
}

func redisChannel(topic string) string {
	return "sparnet:" + topic + ":events"
}

func topicFromChannel(ch string) string {
	// sparnet:{topic}:events
	const prefix = "sparnet:"
	const suffix = ":events"
	if len(ch) <= len(prefix)+len(suffix) {
		return ""
	}
	return ch[len(prefix) : len(ch)-len(suffix)]
}
