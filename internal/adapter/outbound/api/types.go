package api

import "time"

// Category groups articles by topic.
type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
}

// Tag labels articles.
type Tag struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
}

// Article is the list-view projection of an article.
type Article struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Slug      string    `json:"slug"`
	Excerpt   string    `json:"excerpt"`
	Author    string    `json:"author"`
	CreatedAt time.Time `json:"created_at"`
}

// ArticlePage is one page of an article listing.
type ArticlePage struct {
	Count    int       `json:"count"`
	Next     *string   `json:"next"`
	Previous *string   `json:"previous"`
	Results  []Article `json:"results"`
}

// CommentUser is the author projection embedded in a comment.
// Nil for comments left by anonymous visitors.
type CommentUser struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
	Avatar   string `json:"avatar,omitempty"`
}

// LikeStatus is the current user's reaction to a comment.
type LikeStatus string

const (
	LikeStatusLike    LikeStatus = "like"
	LikeStatusDislike LikeStatus = "dislike"
)

// Comment is a comment on an article, with nested replies.
type Comment struct {
	ID             string       `json:"id"`
	Content        string       `json:"content"`
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`
	LikesCount     int          `json:"likes_count"`
	DislikesCount  int          `json:"dislikes_count"`
	FlagsCount     int          `json:"flags_count"`
	IsEdited       bool         `json:"is_edited"`
	UserLikeStatus *LikeStatus  `json:"user_like_status"`
	UserHasFlagged bool         `json:"user_has_flagged"`
	User           *CommentUser `json:"user"`
	Replies        []Comment    `json:"replies,omitempty"`
}

// FlagReason is a closed enum of reasons for flagging a comment.
type FlagReason string

const (
	FlagSpam           FlagReason = "spam"
	FlagHarassment     FlagReason = "harassment"
	FlagHateSpeech     FlagReason = "hate_speech"
	FlagInappropriate  FlagReason = "inappropriate"
	FlagMisinformation FlagReason = "misinformation"
	FlagOther          FlagReason = "other"
)

// IsValid returns true if the reason is one of the known flag reasons.
func (r FlagReason) IsValid() bool {
	switch r {
	case FlagSpam, FlagHarassment, FlagHateSpeech, FlagInappropriate, FlagMisinformation, FlagOther:
		return true
	default:
		return false
	}
}
