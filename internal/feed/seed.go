package feed

import "time"

// SeedPosts is the fallback content shown on first run or when the stored
// slot cannot be decoded. The welcome post carries the newest timestamp so
// it sorts to the top.
func SeedPosts() []Post {
	now := time.Now().UnixMilli()
	return []Post{
		{
			ID:         "seed-welcome",
			AuthorName: "Spar-net Team",
			Handle:     "@sparnet",
			Content:    "Welcome to Spar-net! Introduce yourself, find training partners near you, and share your journey.",
			CreatedAt:  now,
			Likes:      12,
		},
		{
			ID:         "seed-marcus",
			AuthorName: "Marcus Chen",
			Handle:     "@marcus_chen",
			AvatarURL:  "https://images.unsplash.com/photo-1507003211169-0a1dd7228f2d?w=100&h=100&fit=crop&crop=face",
			Content:    "Great sparring session at Elite Combat Academy today. Working on counters off the jab, who's in for open mat this weekend?",
			CreatedAt:  now - time.Hour.Milliseconds(),
			Likes:      8,
		},
	}
}
