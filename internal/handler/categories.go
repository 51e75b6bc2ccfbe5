package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/dhindle/commerce-cif-commercetools/internal/ccif"
	"github.com/dhindle/commerce-cif-commercetools/internal/commercetools"
	"github.com/dhindle/commerce-cif-commercetools/internal/domain"
	"github.com/dhindle/commerce-cif-commercetools/internal/language"
	"github.com/dhindle/commerce-cif-commercetools/internal/mapper"
)

// CategoryClient is the category surface of the CommerceTools client.
type CategoryClient interface {
	GetCategory(ctx context.Context, id string) (*commercetools.Category, error)
	QueryCategories(ctx context.Context, q commercetools.CategoryQuery) (*commercetools.PagedQueryResult[commercetools.Category], error)
	QueryCategoriesBySlug(ctx context.Context, tag, slug string) (*commercetools.PagedQueryResult[commercetools.Category], error)
}

// CategoryHandler serves the category endpoints.
type CategoryHandler struct {
	client CategoryClient
	logger *slog.Logger
}

// NewCategoryHandler creates a category handler.
func NewCategoryHandler(client CategoryClient, logger *slog.Logger) *CategoryHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &CategoryHandler{client: client, logger: logger}
}

// GetCategory handles GET /categories/{id}.
func (h *CategoryHandler) GetCategory(w http.ResponseWriter, r *http.Request) {
	ct, err := h.client.GetCategory(r.Context(), r.PathValue("id"))
	if err != nil {
		ErrorResponse(w, r, err)
		return
	}

	m := mapper.NewCategoryMapper(language.New(r.Header.Get("Accept-Language")))
	respondJSON(w, http.StatusOK, m.Category(ct))
}

// GetCategoryBySlug handles GET /categories/slug/{slug}. A slug resolves to
// exactly one category; zero matches is a 404 and several matches means the
// slug is ambiguous for the requested locale.
func (h *CategoryHandler) GetCategoryBySlug(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	lang := language.New(r.Header.Get("Accept-Language"))

	result, err := h.client.QueryCategoriesBySlug(r.Context(), lang.FirstTag(), slug)
	if err != nil {
		ErrorResponse(w, r, err)
		return
	}

	switch result.Count {
	case 0:
		ErrorResponse(w, r, domain.NotFound("category.getBySlug", "category", slug))
	case 1:
		m := mapper.NewCategoryMapper(lang)
		respondJSON(w, http.StatusOK, m.Category(&result.Results[0]))
	default:
		ErrorResponse(w, r, domain.Invalid("category.getBySlug", "slug matches more than one category"))
	}
}

// ListCategories handles GET /categories.
//
// Query parameters: type (flat or tree, default flat), depth, sort, limit,
// offset. depth restricts the result set to categories at most that many
// levels below a root, for both shapes; depth 0 keeps roots only and an
// absent depth means unlimited. For trees, count reflects the restricted
// fetch while results holds the assembled roots.
func (h *CategoryHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	limit, err := parsePositiveInt(q.Get("limit"), defaultPageLimit)
	if err != nil || limit > maxPageLimit {
		ErrorResponse(w, r, domain.Invalid("category.list", "invalid limit parameter"))
		return
	}
	offset, err := parsePositiveInt(q.Get("offset"), 0)
	if err != nil {
		ErrorResponse(w, r, domain.Invalid("category.list", "invalid offset parameter"))
		return
	}

	structure := q.Get("type")
	if structure == "" {
		structure = "flat"
	}
	if structure != "flat" && structure != "tree" {
		ErrorResponse(w, r, domain.Invalid("category.list", "type must be flat or tree"))
		return
	}

	depth := -1
	if raw := q.Get("depth"); raw != "" {
		depth, err = strconv.Atoi(raw)
		if err != nil || depth < 0 {
			ErrorResponse(w, r, domain.Invalid("category.list", "invalid depth parameter"))
			return
		}
	}

	result, err := h.client.QueryCategories(r.Context(), commercetools.CategoryQuery{
		Sort:   q.Get("sort"),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		ErrorResponse(w, r, err)
		return
	}

	m := mapper.NewCategoryMapper(language.New(r.Header.Get("Accept-Language")))

	// A supplied depth restricts the result set itself, not just tree
	// nesting: a category deeper than depth levels below a root is dropped
	// from both shapes and from the count.
	categories := result.Results
	count := result.Count
	if depth >= 0 {
		kept := make([]commercetools.Category, 0, len(categories))
		for _, c := range categories {
			if len(c.Ancestors) <= depth {
				kept = append(kept, c)
			}
		}
		categories = kept
		count = len(kept)
	}

	page := ccif.PagedResponse[ccif.Category]{
		Offset: result.Offset,
		Count:  count,
		Total:  result.Total,
	}
	if structure == "tree" {
		page.Results = m.Tree(categories, depth)
	} else {
		page.Results = m.Categories(categories)
	}
	respondJSON(w, http.StatusOK, page)
}
