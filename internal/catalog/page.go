package catalog

import (
	"strconv"
	"strings"

	"github.com/tildaslashalef/pokenest/internal/dex"
)

// PageResult is one page of records
type PageResult struct {
	Records []dex.Record
	Page    int // 1-based, clamped to [1, Pages]
	Pages   int
	Total   int
}

// Page returns page (1-based) of records with size entries per page
func Page(records []dex.Record, page, size int) PageResult {
	if size <= 0 {
		size = 1
	}

	total := len(records)
	pages := max((total+size-1)/size, 1)
	page = min(max(page, 1), pages)

	start := min((page-1)*size, total)
	end := min(start+size, total)

	return PageResult{
		Records: records[start:end],
		Page:    page,
		Pages:   pages,
		Total:   total,
	}
}

// Search filters records by query. A numeric query matches the id or the
// national pokedex number; anything else matches the name or variant label.
func Search(records []dex.Record, query string) []dex.Record {
	query = strings.TrimSpace(query)
	if query == "" {
		return records
	}

	n, numErr := strconv.Atoi(query)
	needle := strings.ToLower(query)

	out := make([]dex.Record, 0)
	for _, r := range records {
		if numErr == nil {
			if r.ID == n || r.Pokedex == n {
				out = append(out, r)
			}
			continue
		}
		if strings.Contains(strings.ToLower(r.DisplayName()), needle) ||
			strings.Contains(strings.ToLower(r.VariantLabel()), needle) {
			out = append(out, r)
		}
	}
	return out
}
