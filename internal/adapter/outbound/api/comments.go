package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// ArticleComments lists an article's comments, replies nested.
func (c *Client) ArticleComments(ctx context.Context, articleID string) ([]Comment, error) {
	var comments []Comment
	path := fmt.Sprintf("/api/comments/article/%s/", url.PathEscape(articleID))
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

// CreateCommentInput is the payload for a new comment or reply.
// Parent is set for replies. UserName/UserEmail identify anonymous
// commenters and are ignored for authenticated ones.
type CreateCommentInput struct {
	Content   string `json:"content"`
	ArticleID string `json:"article"`
	Parent    string `json:"parent,omitempty"`
	UserName  string `json:"user_name,omitempty"`
	UserEmail string `json:"user_email,omitempty"`
}

// CreateComment posts a new comment or reply.
func (c *Client) CreateComment(ctx context.Context, input CreateCommentInput) (*Comment, error) {
	var comment Comment
	if err := c.do(ctx, http.MethodPost, "/api/comments/create/", nil, input, &comment); err != nil {
		return nil, err
	}
	return &comment, nil
}

type updateCommentRequest struct {
	Content string `json:"content"`
}

// UpdateComment edits a comment's content.
func (c *Client) UpdateComment(ctx context.Context, commentID, content string) (*Comment, error) {
	var comment Comment
	path := fmt.Sprintf("/api/comments/%s/", url.PathEscape(commentID))
	if err := c.do(ctx, http.MethodPatch, path, nil, updateCommentRequest{Content: content}, &comment); err != nil {
		return nil, err
	}
	return &comment, nil
}

// DeleteComment removes a comment.
func (c *Client) DeleteComment(ctx context.Context, commentID string) error {
	path := fmt.Sprintf("/api/comments/%s/", url.PathEscape(commentID))
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}

type likeCommentRequest struct {
	IsLike bool `json:"is_like"`
}

// LikeComment records a like (isLike=true) or dislike (isLike=false) and
// returns the updated comment.
func (c *Client) LikeComment(ctx context.Context, commentID string, isLike bool) (*Comment, error) {
	var comment Comment
	path := fmt.Sprintf("/api/comments/%s/like/", url.PathEscape(commentID))
	if err := c.do(ctx, http.MethodPost, path, nil, likeCommentRequest{IsLike: isLike}, &comment); err != nil {
		return nil, err
	}
	return &comment, nil
}

type flagCommentRequest struct {
	Reason      FlagReason `json:"reason"`
	Description string     `json:"description,omitempty"`
}

// FlagComment reports a comment for moderation.
func (c *Client) FlagComment(ctx context.Context, commentID string, reason FlagReason, description string) error {
	if !reason.IsValid() {
		return fmt.Errorf("invalid flag reason %q", reason)
	}
	path := fmt.Sprintf("/api/comments/%s/flag/", url.PathEscape(commentID))
	return c.do(ctx, http.MethodPost, path, nil, flagCommentRequest{Reason: reason, Description: description}, nil)
}
