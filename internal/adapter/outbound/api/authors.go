package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// Author is the public author-directory projection of a user.
type Author struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Avatar       string    `json:"avatar"`
	Bio          string    `json:"bio"`
	Role         string    `json:"role"`
	ArticleCount int       `json:"article_count"`
	JoinDate     time.Time `json:"join_date"`
	Articles     []Article `json:"articles,omitempty"`
}

// AuthorPage is one page of the author directory.
type AuthorPage struct {
	Count    int      `json:"count"`
	Next     *string  `json:"next"`
	Previous *string  `json:"previous"`
	Results  []Author `json:"results"`
}

// Authors lists the author directory, paginated.
func (c *Client) Authors(ctx context.Context, page int) (*AuthorPage, error) {
	var result AuthorPage
	if err := c.do(ctx, http.MethodGet, "/api/users/authors/", pageQuery(page), nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// AuthorByID fetches a single author profile, including their articles.
func (c *Client) AuthorByID(ctx context.Context, id string) (*Author, error) {
	var author Author
	path := fmt.Sprintf("/api/users/authors/%s/", url.PathEscape(id))
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &author); err != nil {
		return nil, err
	}
	return &author, nil
}
