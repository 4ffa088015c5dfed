package utils

import (
	"errors"
	"strconv"
)

var ErrInvalidPage = errors.New("invalid page")

// Page describes one slice of an ordered listing. Number is 1-based.
type Page struct {
	Number     int
	Size       int
	Total      int64
	TotalPages int
}

// ParsePage turns the raw "page" query value into a page number.
// An empty value means the first page.
func ParsePage(raw string) (int, error) {
	if raw == "" {
		return 1, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, ErrInvalidPage
	}
	return n, nil
}

// NewPage validates number against total. The first page always exists,
// even when there is nothing to show.
func NewPage(number, size int, total int64) (Page, error) {
	if size <= 0 {
		size = 10
	}
	pages := int((total + int64(size) - 1) / int64(size))
	if pages == 0 {
		pages = 1
	}
	if number < 1 || number > pages {
		return Page{}, ErrInvalidPage
	}
	return Page{Number: number, Size: size, Total: total, TotalPages: pages}, nil
}

func (p Page) Offset() int {
	return (p.Number - 1) * p.Size
}

func (p Page) HasPrevious() bool {
	return p.Number > 1
}

func (p Page) HasNext() bool {
	return p.Number < p.TotalPages
}
