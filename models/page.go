package models

// ItemPage is the envelope returned by the paginated item listing. The flags
// are derived in one place so every response agrees: first == (page == 0),
// last == (page == total_pages-1), has_next == !last, has_previous == !first.
type ItemPage struct {
	Content       []Item `json:"content"`
	Page          int    `json:"page"`
	Size          int    `json:"size"`
	TotalElements int64  `json:"total_elements"`
	TotalPages    int    `json:"total_pages"`
	First         bool   `json:"first"`
	Last          bool   `json:"last"`
	HasNext       bool   `json:"has_next"`
	HasPrevious   bool   `json:"has_previous"`
}

// NewItemPage builds the envelope for one page of results. Pages are 0-based.
// An empty result still reports one page, so page 0 is both first and last.
func NewItemPage(content []Item, page, size int, total int64) ItemPage {
	if content == nil {
		content = []Item{}
	}
	totalPages := 1
	if size > 0 {
		totalPages = int((total + int64(size) - 1) / int64(size))
	}
	if totalPages < 1 {
		totalPages = 1
	}
	p := ItemPage{
		Content:       content,
		Page:          page,
		Size:          size,
		TotalElements: total,
		TotalPages:    totalPages,
	}
	p.First = page == 0
	p.Last = page == totalPages-1
	p.HasNext = !p.Last
	p.HasPrevious = !p.First
	return p
}
