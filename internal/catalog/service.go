package catalog

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/franco-vega/backend-tienda/internal/common"
	"github.com/franco-vega/backend-tienda/internal/obs"
)

// Service filters, sorts, and pages the product feed, with a Redis cache in
// front of the popular unfiltered listing.
type Service struct {
	feed         *Feed
	cache        *Cache
	defaultLimit int
	maxLimit     int
}

// ServiceConfig groups Service dependencies.
type ServiceConfig struct {
	Feed         *Feed
	Cache        *Cache
	DefaultLimit int
	MaxLimit     int
}

// ListParams captures filters for product listing.
type ListParams struct {
	Query    string
	Category string
	Supplier string
	MinPrice *float64
	MaxPrice *float64
	InStock  *bool
	Sort     string
	Page     int
	Limit    int
}

// ProductListResult contains list data and pagination metadata.
type ProductListResult struct {
	Items []Product
	Total int
	Page  int
	Limit int
}

// NewService constructs a Service instance.
func NewService(cfg ServiceConfig) (*Service, error) {
	if cfg.Feed == nil {
		return nil, errors.New("catalog: feed is required")
	}
	defaultLimit := cfg.DefaultLimit
	if defaultLimit < 1 {
		defaultLimit = 20
	}
	maxLimit := cfg.MaxLimit
	if maxLimit < 1 {
		maxLimit = 100
	}
	if defaultLimit > maxLimit {
		defaultLimit = maxLimit
	}
	return &Service{
		feed:         cfg.Feed,
		cache:        cfg.Cache,
		defaultLimit: defaultLimit,
		maxLimit:     maxLimit,
	}, nil
}

// ParseListParams normalises raw query values into strongly typed filters.
func (s *Service) ParseListParams(values url.Values) (ListParams, error) {
	params := ListParams{
		Page:  1,
		Limit: s.defaultLimit,
	}
	params.Query = strings.TrimSpace(values.Get("q"))
	params.Category = strings.TrimSpace(values.Get("category"))
	params.Supplier = strings.TrimSpace(values.Get("supplier"))

	if v := strings.TrimSpace(values.Get("page")); v != "" {
		page, err := strconv.Atoi(v)
		if err != nil || page < 1 {
			return params, common.BadRequest("page", "page must be a positive integer", err)
		}
		params.Page = page
	}

	limit := s.defaultLimit
	if v := strings.TrimSpace(values.Get("limit")); v != "" {
		l, err := strconv.Atoi(v)
		if err != nil || l < 1 {
			return params, common.BadRequest("limit", "limit must be a positive integer", err)
		}
		limit = l
	}
	if limit > s.maxLimit {
		limit = s.maxLimit
	}
	params.Limit = limit

	if v := strings.TrimSpace(values.Get("minPrice")); v != "" {
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return params, common.BadRequest("minPrice", "minPrice must be a valid number", err)
		}
		params.MinPrice = &parsed
	}
	if v := strings.TrimSpace(values.Get("maxPrice")); v != "" {
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return params, common.BadRequest("maxPrice", "maxPrice must be a valid number", err)
		}
		params.MaxPrice = &parsed
	}
	if params.MinPrice != nil && params.MaxPrice != nil && *params.MinPrice > *params.MaxPrice {
		return params, common.BadRequest("price", "minPrice cannot be greater than maxPrice", fmt.Errorf("invalid price range"))
	}

	if v := strings.TrimSpace(values.Get("inStock")); v != "" {
		b, err := parseBool(v)
		if err != nil {
			return params, common.BadRequest("inStock", "inStock must be true or false", err)
		}
		params.InStock = &b
	}

	params.Sort = normalizeSort(values.Get("sort"))
	return params, nil
}

// ListProducts returns the filtered product list with pagination metadata.
func (s *Service) ListProducts(ctx context.Context, params ListParams) (ProductListResult, error) {
	key, shouldUseCache := s.listCacheKey(params)
	if shouldUseCache && s.cache != nil {
		var cached cachedList
		ok, err := s.cache.GetJSON(ctx, key, &cached)
		if err == nil && ok {
			if obs.CatalogCacheTotal != nil {
				obs.CatalogCacheTotal.WithLabelValues("hit").Inc()
			}
			return ProductListResult{Items: cached.Items, Total: cached.Total, Page: params.Page, Limit: params.Limit}, nil
		}
		if obs.CatalogCacheTotal != nil {
			obs.CatalogCacheTotal.WithLabelValues("miss").Inc()
		}
	}

	filtered := s.filter(params)
	sortProducts(filtered, params.Sort)

	total := len(filtered)
	start := (params.Page - 1) * params.Limit
	if start > total {
		start = total
	}
	end := start + params.Limit
	if end > total {
		end = total
	}
	items := filtered[start:end]

	result := ProductListResult{Items: items, Total: total, Page: params.Page, Limit: params.Limit}
	if shouldUseCache && s.cache != nil {
		_ = s.cache.SetJSON(ctx, key, cachedList{Items: items, Total: total})
	}
	return result, nil
}

// GetProduct returns a single product by id.
func (s *Service) GetProduct(id int) (Product, error) {
	p, ok := s.feed.Get(id)
	if !ok {
		return Product{}, common.NotFound("product not found", nil)
	}
	return p, nil
}

// Categories returns the category facets with derived counts.
func (s *Service) Categories() []FacetCount { return s.feed.Categories() }

// Suppliers returns the supplier facets with derived counts.
func (s *Service) Suppliers() []FacetCount { return s.feed.Suppliers() }

func (s *Service) filter(params ListParams) []Product {
	all := s.feed.Products()
	filtered := make([]Product, 0, len(all))
	query := strings.ToLower(params.Query)
	for _, p := range all {
		if params.Category != "" && p.Category != params.Category {
			continue
		}
		if params.Supplier != "" && p.Supplier != params.Supplier {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(p.Name), query) &&
			!strings.Contains(strings.ToLower(p.SKU), query) {
			continue
		}
		if params.MinPrice != nil && p.BasePrice < *params.MinPrice {
			continue
		}
		if params.MaxPrice != nil && p.BasePrice > *params.MaxPrice {
			continue
		}
		if params.InStock != nil && *params.InStock != (p.Stock > 0) {
			continue
		}
		filtered = append(filtered, p)
	}
	return filtered
}

func sortProducts(products []Product, key string) {
	switch key {
	case "price:asc":
		sort.SliceStable(products, func(i, j int) bool { return products[i].BasePrice < products[j].BasePrice })
	case "price:desc":
		sort.SliceStable(products, func(i, j int) bool { return products[i].BasePrice > products[j].BasePrice })
	case "stock":
		sort.SliceStable(products, func(i, j int) bool { return products[i].Stock > products[j].Stock })
	case "name":
		sort.SliceStable(products, func(i, j int) bool {
			return strings.ToLower(products[i].Name) < strings.ToLower(products[j].Name)
		})
	}
}

type cachedList struct {
	Items []Product `json:"items"`
	Total int       `json:"total"`
}

func (s *Service) listCacheKey(params ListParams) (string, bool) {
	if params.Page != 1 || params.Limit != s.defaultLimit {
		return "", false
	}
	if params.Query != "" || params.Category != "" || params.Supplier != "" ||
		params.MinPrice != nil || params.MaxPrice != nil || params.InStock != nil || params.Sort != "" {
		return "", false
	}
	return "catalog:products:list:default", true
}

func parseBool(value string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "true", "1", "yes", "y":
		return true, nil
	case "false", "0", "no", "n":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean: %s", value)
	}
}

func normalizeSort(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "name", "price:asc", "price:desc", "stock":
		return s
	default:
		return ""
	}
}
