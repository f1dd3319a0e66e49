package services

import (
	"math"
	"strconv"
)

const (
	DefaultPage     = 1
	DefaultPageSize = 50
)

// Page is a 1-based page window
type Page struct {
	Number int
	Size   int
}

// ParsePage reads raw query values. Anything non-numeric or below 1 falls
// back to the default.
func ParsePage(rawPage, rawSize string) Page {
	return Page{
		Number: positiveOr(rawPage, DefaultPage),
		Size:   positiveOr(rawSize, DefaultPageSize),
	}
}

func positiveOr(raw string, fallback int) int {
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}

// Offset is the number of records skipped before this page. It saturates at
// math.MaxInt so a huge page number still lands past the last record.
func (p Page) Offset() int {
	if p.Number <= 1 || p.Size <= 0 {
		return 0
	}
	if p.Number-1 > math.MaxInt/p.Size {
		return math.MaxInt
	}
	return (p.Number - 1) * p.Size
}

// TotalPages is ceil(total/size), never below 1
func TotalPages(total int64, size int) int {
	if size <= 0 || total <= 0 {
		return 1
	}
	pages := int((total + int64(size) - 1) / int64(size))
	if pages < 1 {
		return 1
	}
	return pages
}

// Paginated is the envelope of every listing
type Paginated[T any] struct {
	Data       []T   `json:"data"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	TotalPages int   `json:"total_pages"`
}

// NewPaginated wraps one page of data. Data is never nil.
func NewPaginated[T any](data []T, total int64, page Page) *Paginated[T] {
	if data == nil {
		data = []T{}
	}
	return &Paginated[T]{
		Data:       data,
		Total:      total,
		Page:       page.Number,
		TotalPages: TotalPages(total, page.Size),
	}
}
