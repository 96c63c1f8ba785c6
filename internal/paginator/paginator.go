package paginator

import (
	"errors"
	"strconv"
	"strings"
)

// DefaultPerPage is the number of records shown on every listing page.
const DefaultPerPage = 10

type Paginator[T any] struct {
	items   []T
	perPage int
}

// Page is one slice of an ordered record set together with its position.
type Page[T any] struct {
	Items      []T
	Number     int
	NumPages   int
	TotalCount int
}

func New[T any](items []T, perPage int) *Paginator[T] {
	if perPage < 1 {
		perPage = DefaultPerPage
	}
	return &Paginator[T]{items: items, perPage: perPage}
}

func (p *Paginator[T]) Count() int {
	return len(p.items)
}

// NumPages is ceil(count/perPage); an empty set still has one page.
func (p *Paginator[T]) NumPages() int {
	if len(p.items) == 0 {
		return 1
	}
	return (len(p.items) + p.perPage - 1) / p.perPage
}

// GetPage resolves a raw "page" query value and never fails:
// absent or non-numeric values give the first page, out of range
// numbers give the last one, including those that overflow int.
func (p *Paginator[T]) GetPage(raw string) Page[T] {
	numPages := p.NumPages()

	number, err := strconv.Atoi(strings.TrimSpace(raw))
	switch {
	case errors.Is(err, strconv.ErrRange):
		number = numPages
	case err != nil:
		number = 1
	}

	if number < 1 || number > numPages {
		number = numPages
	}

	return p.page(number)
}

func (p *Paginator[T]) page(number int) Page[T] {
	start := (number - 1) * p.perPage
	end := start + p.perPage
	if end > len(p.items) {
		end = len(p.items)
	}

	items := make([]T, 0, end-start)
	items = append(items, p.items[start:end]...)

	return Page[T]{
		Items:      items,
		Number:     number,
		NumPages:   p.NumPages(),
		TotalCount: len(p.items),
	}
}

// Paginate is a shortcut for New(items, perPage).GetPage(raw).
func Paginate[T any](items []T, perPage int, raw string) Page[T] {
	return New(items, perPage).GetPage(raw)
}

func (p Page[T]) HasNext() bool {
	return p.Number < p.NumPages
}

func (p Page[T]) HasPrevious() bool {
	return p.Number > 1
}

func (p Page[T]) HasOtherPages() bool {
	return p.HasNext() || p.HasPrevious()
}

func (p Page[T]) NextPageNumber() int {
	if !p.HasNext() {
		return p.Number
	}
	return p.Number + 1
}

func (p Page[T]) PreviousPageNumber() int {
	if !p.HasPrevious() {
		return p.Number
	}
	return p.Number - 1
}

// PageRange lists all page numbers, used by the pagination block.
func (p Page[T]) PageRange() []int {
	pages := make([]int, p.NumPages)
	for i := range pages {
		pages[i] = i + 1
	}
	return pages
}

func (p Page[T]) Len() int {
	return len(p.Items)
}
