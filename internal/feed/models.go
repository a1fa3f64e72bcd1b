package feed

// Post is the client-side feed shape, persisted as-is in the durable slot.
// CreatedAt is a millisecond epoch timestamp and is immutable after creation.
type Post struct {
	ID         string `json:"id"`
	AuthorName string `json:"authorName"`
	Handle     string `json:"handle"`
	AvatarURL  string `json:"avatarUrl,omitempty"`
	Content    string `json:"content"`
	CreatedAt  int64  `json:"createdAt"`
	Likes      int    `json:"likes"`
	Liked      bool   `json:"liked"`
}

// Author identifies the local viewer whose name goes on created posts.
type Author struct {
	Name      string `json:"authorName"`
	Handle    string `json:"handle"`
	AvatarURL string `json:"avatarUrl,omitempty"`
}
