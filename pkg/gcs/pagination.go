package gcs

import (
	"context"
	"iter"
)

// Pageable is a list call that can be continued with a page token.
type Pageable[R any, T any] interface {
	Call[R]
	// Page returns the items of one response and its continuation token.
	Page(resp *R) (items []T, nextPageToken string)
	// Clone returns an independent copy of the request.
	Clone() Pageable[R, T]
	// SetPageToken replaces the page token and nothing else.
	SetPageToken(token string)
}

// PaginationOptions controls FetchAllPages.
type PaginationOptions struct {
	// MaxPages stops after that many pages. Zero means no limit.
	MaxPages int
}

// DefaultPaginationOptions returns options without a page limit.
func DefaultPaginationOptions() *PaginationOptions {
	return &PaginationOptions{}
}

// Iterator yields the items of a paginated listing. Pages are fetched one at a
// time when the buffered items run out. An Iterator is single-use and not safe
// for concurrent use.
type Iterator[T any] struct {
	ctx     context.Context
	fetch   func() ([]T, error)
	buffer  []T
	err     error
	done    bool
	fetched int
}

// Paginate returns a lazy iterator over every item of req and the requests
// that follow it. req is not modified: each page is sent from a clone.
func Paginate[R any, T any](ctx context.Context, d Dispatcher, req Pageable[R, T]) *Iterator[T] {
	initial := req.Clone()
	pending := req.Clone()

	it := &Iterator[T]{ctx: ctx}
	it.fetch = func() ([]T, error) {
		if pending == nil {
			return nil, nil
		}

		resp, err := Invoke[R](ctx, d, pending)
		if err != nil {
			pending = nil

			return nil, err
		}

		items, token := pending.Page(resp)
		if token == "" {
			pending = nil
		} else {
			next := initial.Clone()
			next.SetPageToken(token)
			pending = next
		}

		if pending == nil {
			it.done = true
		}

		return items, nil
	}

	return it
}

// Pages returns how many pages have been fetched so far.
func (it *Iterator[T]) Pages() int {
	return it.fetched
}

// HasNext reports whether Next will return an item. It fetches the next page
// when the buffer is empty. Empty pages with a continuation token are skipped.
func (it *Iterator[T]) HasNext() bool {
	for len(it.buffer) == 0 {
		if it.err != nil || it.done {
			return false
		}

		err := it.ctx.Err()
		if err != nil {
			it.err = err

			return false
		}

		items, err := it.fetch()
		it.fetched++

		if err != nil {
			it.err = err
			it.done = true

			return false
		}

		it.buffer = items
	}

	return true
}

// Next returns the next item. After the last item it returns the error that
// ended the iteration, or ErrNoMoreItems.
func (it *Iterator[T]) Next() (T, error) {
	var zero T

	if !it.HasNext() {
		if it.err != nil {
			return zero, it.err
		}

		return zero, ErrNoMoreItems
	}

	item := it.buffer[0]
	it.buffer = it.buffer[1:]

	return item, nil
}

// Err returns the error that ended the iteration, if any.
func (it *Iterator[T]) Err() error {
	return it.err
}

// All drains the iterator. On error, the items read so far are returned with
// it.
func (it *Iterator[T]) All() ([]T, error) {
	var all []T

	for it.HasNext() {
		item, _ := it.Next()
		all = append(all, item)
	}

	return all, it.err
}

// ForEach calls fn for each item and stops at the first error.
func (it *Iterator[T]) ForEach(fn func(T) error) error {
	for it.HasNext() {
		item, _ := it.Next()

		err := fn(item)
		if err != nil {
			return err
		}
	}

	return it.err
}

// Seq adapts the iterator to a range-over-func sequence. An error is yielded
// once, as the last element.
func (it *Iterator[T]) Seq() iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		for it.HasNext() {
			item, _ := it.Next()
			if !yield(item, nil) {
				return
			}
		}

		if it.err != nil {
			var zero T

			yield(zero, it.err)
		}
	}
}

// FetchAllPages collects the items of every page, or of the first
// opts.MaxPages pages.
func FetchAllPages[R any, T any](ctx context.Context, d Dispatcher, req Pageable[R, T], opts *PaginationOptions) ([]T, error) {
	if opts == nil {
		opts = DefaultPaginationOptions()
	}

	pending := req.Clone()
	initial := req.Clone()

	var all []T

	for pages := 0; pending != nil; pages++ {
		if opts.MaxPages > 0 && pages >= opts.MaxPages {
			break
		}

		resp, err := Invoke[R](ctx, d, pending)
		if err != nil {
			return all, err
		}

		items, token := pending.Page(resp)
		all = append(all, items...)

		pending = nil

		if token != "" {
			pending = initial.Clone()
			pending.SetPageToken(token)
		}
	}

	return all, nil
}
