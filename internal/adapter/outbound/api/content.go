package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// Categories lists all categories.
func (c *Client) Categories(ctx context.Context) ([]Category, error) {
	var categories []Category
	if err := c.do(ctx, http.MethodGet, "/api/categories/", nil, nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// CategoryBySlug fetches a single category.
func (c *Client) CategoryBySlug(ctx context.Context, slug string) (*Category, error) {
	var category Category
	path := fmt.Sprintf("/api/categories/slug/%s/", url.PathEscape(slug))
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

// CategoryArticles fetches one page of a category's articles.
func (c *Client) CategoryArticles(ctx context.Context, categoryID string, page int) (*ArticlePage, error) {
	var result ArticlePage
	path := fmt.Sprintf("/api/categories/%s/articles/", url.PathEscape(categoryID))
	if err := c.do(ctx, http.MethodGet, path, pageQuery(page), nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

type categoryRequest struct {
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
}

// CreateCategory creates a category (author/admin operation).
func (c *Client) CreateCategory(ctx context.Context, name, description string) (*Category, error) {
	var category Category
	err := c.do(ctx, http.MethodPost, "/api/categories/", nil,
		categoryRequest{Name: name, Description: description}, &category)
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// DeleteCategory removes a category (admin operation).
func (c *Client) DeleteCategory(ctx context.Context, id string) error {
	path := fmt.Sprintf("/api/categories/%s/", url.PathEscape(id))
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}

// Tags lists all tags.
func (c *Client) Tags(ctx context.Context) ([]Tag, error) {
	var tags []Tag
	if err := c.do(ctx, http.MethodGet, "/api/tags/", nil, nil, &tags); err != nil {
		return nil, err
	}
	return tags, nil
}

// TagBySlug fetches a single tag.
func (c *Client) TagBySlug(ctx context.Context, slug string) (*Tag, error) {
	var tag Tag
	path := fmt.Sprintf("/api/tags/slug/%s/", url.PathEscape(slug))
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &tag); err != nil {
		return nil, err
	}
	return &tag, nil
}

// TagArticles fetches one page of a tag's articles.
func (c *Client) TagArticles(ctx context.Context, tagID string, page int) (*ArticlePage, error) {
	var result ArticlePage
	path := fmt.Sprintf("/api/tags/%s/articles/", url.PathEscape(tagID))
	if err := c.do(ctx, http.MethodGet, path, pageQuery(page), nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// CreateTag creates a tag (author/admin operation).
func (c *Client) CreateTag(ctx context.Context, name, description string) (*Tag, error) {
	var tag Tag
	err := c.do(ctx, http.MethodPost, "/api/tags/", nil,
		categoryRequest{Name: name, Description: description}, &tag)
	if err != nil {
		return nil, err
	}
	return &tag, nil
}

// DeleteTag removes a tag (admin operation).
func (c *Client) DeleteTag(ctx context.Context, id string) error {
	path := fmt.Sprintf("/api/tags/%s/", url.PathEscape(id))
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}

func pageQuery(page int) url.Values {
	if page <= 1 {
		return nil
	}
	return url.Values{"page": []string{strconv.Itoa(page)}}
}
