package profilesync

import (
	"bytes"
	"context"
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"backend-sparnet/internal/onboarding"
)

// UpsertPayload is the wire shape of the profile upsert endpoint.
type UpsertPayload struct {
	UserID        string   `json:"user_id"`
	Username      string   `json:"username"`
	Location      string   `json:"location"`
	PreferredArts []string `json:"preferred_arts"`
	SkillLevel    string   `json:"skill_level"`
}

// Client pushes completed onboarding data to the profile upsert endpoint.
// Submissions are fire-and-forget: errors are logged, never retried, and
// never block the local completion flag.
type Client struct {
	endpoint string
	flags    *Flags
	http     *http.Client

	wg sync.WaitGroup
}

func NewClient(endpoint string, flags *Flags) *Client {
	return &Client{
		endpoint: endpoint,
		flags:    flags,
		http:     &http.Client{Timeout: 10 * time.Second},
	}
}

// Submit marks the user as onboarded and dispatches the upsert in the
// background. The flag is set regardless of the remote outcome.
func (c *Client) Submit(ctx context.Context, userID string, data onboarding.Data) {
	if c.flags != nil {
		c.flags.MarkCompleted(ctx, userID)
	}

	payload := UpsertPayload{
		UserID:        userID,
		Username:      data.Username,
		Location:      data.Location,
		PreferredArts: append([]string(nil), data.PreferredArts...),
		SkillLevel:    data.SkillLevel,
	}

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		if err := c.send(payload); err != nil {
			log.Printf("profilesync: upsert for %s failed: %v", userID, err)
		}
	}()
}

// Wait blocks until all in-flight submissions have finished.
func (c *Client) Wait() {
	c.wg.Wait()
}

func (c *Client) send(payload UpsertPayload) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(raw))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Printf("profilesync: upsert returned status %d", resp.StatusCode)
	}
	return nil
}
