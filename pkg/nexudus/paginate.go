package nexudus

import "context"

// DefaultPageCap bounds any pagination loop. It is a hard safety limit and
// is never exceeded regardless of what the upstream claims about further
// pages.
const DefaultPageCap = 10

// PageFunc fetches one page (1-based) of some list endpoint.
type PageFunc[T any] func(ctx context.Context, page int) ([]T, PageInfo, error)

// FetchAllPages walks a list endpoint page by page up to pageCap,
// accumulating records in page order. It stops on a fetch failure, an
// exhausted or absent next-page signal, or the cap.
//
// On failure the records accumulated so far are returned together with the
// error; a short result set means "possibly incomplete", and the caller
// decides whether partial data is acceptable.
func FetchAllPages[T any](ctx context.Context, pageCap int, fetch PageFunc[T]) ([]T, error) {
	if pageCap <= 0 || pageCap > DefaultPageCap {
		pageCap = DefaultPageCap
	}

	var records []T
	for page := 1; page <= pageCap; page++ {
		if err := ctx.Err(); err != nil {
			return records, err
		}

		pageRecords, info, err := fetch(ctx, page)
		if err != nil {
			return records, err
		}
		records = append(records, pageRecords...)

		if !hasNext(info, page) {
			break
		}
	}
	return records, nil
}

func hasNext(info PageInfo, page int) bool {
	if info.HasNextPage != nil {
		return *info.HasNextPage
	}
	if info.TotalPages > 0 {
		current := info.PageNumber
		if current == 0 {
			current = page
		}
		return current < info.TotalPages
	}
	// No signal at all: assume exhausted rather than loop on guesswork.
	return false
}
