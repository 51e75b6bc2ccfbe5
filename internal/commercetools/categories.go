package commercetools

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// CategoryQuery windows and filters a category listing.
type CategoryQuery struct {
	Where  string
	Sort   string
	Limit  int
	Offset int
}

// GetCategory fetches a category by its CommerceTools id.
func (c *Client) GetCategory(ctx context.Context, id string) (*Category, error) {
	var cat Category
	if err := c.get(ctx, "commercetools.getCategory", "/categories/"+url.PathEscape(id), nil, &cat); err != nil {
		return nil, err
	}
	return &cat, nil
}

// QueryCategories lists categories with optional predicate, sort and window.
func (c *Client) QueryCategories(ctx context.Context, q CategoryQuery) (*PagedQueryResult[Category], error) {
	query := url.Values{}
	if q.Where != "" {
		query.Set("where", q.Where)
	}
	if q.Sort != "" {
		query.Set("sort", q.Sort)
	}
	if q.Limit > 0 {
		query.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.Offset > 0 {
		query.Set("offset", strconv.Itoa(q.Offset))
	}

	var result PagedQueryResult[Category]
	if err := c.get(ctx, "commercetools.queryCategories", "/categories", query, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// QueryCategoriesBySlug lists the categories whose localized slug matches for
// the given language tag. The caller decides how to treat zero or multiple
// matches.
func (c *Client) QueryCategoriesBySlug(ctx context.Context, tag, slug string) (*PagedQueryResult[Category], error) {
	return c.QueryCategories(ctx, CategoryQuery{
		Where: fmt.Sprintf("slug(%s=%q)", tag, slug),
	})
}
