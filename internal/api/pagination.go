package api

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/ignite/ppc-optimizer/internal/analytics"
)

const dateParamLayout = "2006-01-02"

// parsePageQuery extracts paging, filtering and sorting from query params.
// Page and page size are clamped by analytics.Page; only a malformed
// sort_order is rejected.
func parsePageQuery(r *http.Request) (analytics.PageQuery, error) {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	size, _ := strconv.Atoi(q.Get("page_size"))

	order := strings.ToLower(q.Get("sort_order"))
	switch order {
	case "":
		order = "desc"
	case "asc", "desc":
	default:
		return analytics.PageQuery{}, fmt.Errorf("sort_order must be asc or desc")
	}

	return analytics.PageQuery{
		Page:      page,
		PageSize:  size,
		Campaign:  q.Get("campaign"),
		AdGroup:   q.Get("ad_group"),
		SortBy:    q.Get("sort_by"),
		SortOrder: order,
	}, nil
}

// parseFilter reads campaign, ad_group, start_date and end_date. Dates are
// YYYY-MM-DD; the end date is inclusive.
func parseFilter(r *http.Request) (analytics.Filter, error) {
	q := r.URL.Query()
	f := analytics.Filter{
		Campaign: q.Get("campaign"),
		AdGroup:  q.Get("ad_group"),
	}
	for _, p := range []struct {
		name string
		dst  **time.Time
	}{
		{"start_date", &f.StartDate},
		{"end_date", &f.EndDate},
	} {
		v := q.Get(p.name)
		if v == "" {
			continue
		}
		t, err := time.Parse(dateParamLayout, v)
		if err != nil {
			return analytics.Filter{}, fmt.Errorf("%s must be YYYY-MM-DD", p.name)
		}
		*p.dst = &t
	}
	return f, nil
}
