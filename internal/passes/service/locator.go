package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	apperrors "frontdesk/pkg/errors"
	"frontdesk/pkg/model"
	"frontdesk/pkg/namematch"
	"frontdesk/pkg/nexudus"
	"frontdesk/pkg/timeutil"
)

// locateVisitor resolves a visitor identifier to one upstream record. An id
// lookup is direct and has no fallback; a name lookup runs the widening
// chain: exact filter, windowed broad fetch with local fuzzy match, then an
// unfiltered broad fetch with local fuzzy match.
func (s *passService) locateVisitor(ctx context.Context, ident model.Identifier) (*located, error) {
	if ident.HasID() {
		v, err := s.upstream.GetVisitor(ctx, ident.ID)
		if err != nil {
			var st *nexudus.StatusError
			if errors.As(err, &st) && st.Status == http.StatusNotFound {
				return nil, apperrors.NotFoundWithID("Visitor", strconv.FormatInt(ident.ID, 10))
			}
			return nil, upstreamError("Visitor fetch failed", err)
		}
		return &located{
			ref:     model.PersonRef{Kind: model.KindVisitor, ID: v.ID, DisplayName: v.FullName},
			visitor: v,
			matches: 1,
		}, nil
	}

	candidates, err := s.visitorCandidates(ctx, ident.Name)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, apperrors.NotFound("Visitor")
	}

	winner := rankVisitors(s.clock.Now(), candidates)
	return &located{
		ref:     model.PersonRef{Kind: model.KindVisitor, ID: winner.ID, DisplayName: winner.FullName},
		visitor: winner,
		matches: len(candidates),
	}, nil
}

// visitorCandidates is the widening lookup chain shared by resolution and
// people search. Only the first, exact-filter fetch is allowed to fail the
// call; later strategies are resilience fallbacks and a failure there just
// means no additional candidates.
func (s *passService) visitorCandidates(ctx context.Context, name string) ([]nexudus.Visitor, error) {
	start, end := timeutil.TodayWindowUTC(s.clock.Now())

	q := url.Values{}
	q.Set("page", "1")
	q.Set("size", strconv.Itoa(s.cfg.SearchSize))
	q.Set("Visitor_FullName", name)
	q.Set("from_Visitor_ExpectedArrival", timeutil.SecondStamp.Render(start))
	q.Set("to_Visitor_ExpectedArrival", timeutil.SecondStamp.Render(end))
	q.Set("orderBy", "ExpectedArrival")
	q.Set("dir", "Ascending")

	exact, _, err := s.upstream.ListVisitors(ctx, q)
	if err != nil {
		return nil, upstreamError("Visitor search failed", err)
	}
	if len(exact) > 0 {
		return exact, nil
	}

	// The exact filter found nothing: the name may be misspelled or the
	// account may reject the filter. Drop the name, keep the window, and
	// match locally.
	q = url.Values{}
	q.Set("page", "1")
	q.Set("size", strconv.Itoa(s.cfg.BroadSize))
	q.Set("from_Visitor_ExpectedArrival", timeutil.SecondStamp.Render(start))
	q.Set("to_Visitor_ExpectedArrival", timeutil.SecondStamp.Render(end))
	q.Set("orderBy", "ExpectedArrival")
	q.Set("dir", "Ascending")

	windowed, _, err := s.upstream.ListVisitors(ctx, q)
	if err != nil {
		s.cfg.Log.Warn("Windowed visitor fetch failed, widening further", "error", err)
	}
	if matched := filterVisitors(windowed, name); len(matched) > 0 {
		return matched, nil
	}

	// Last resort: walk the visitor list without any filter, bounded by
	// the page cap, and fuzzy-match locally.
	all, err := nexudus.FetchAllPages(ctx, s.cfg.PageCap, func(ctx context.Context, page int) ([]nexudus.Visitor, nexudus.PageInfo, error) {
		q := url.Values{}
		q.Set("page", strconv.Itoa(page))
		q.Set("size", strconv.Itoa(s.cfg.BroadSize))
		return s.upstream.ListVisitors(ctx, q)
	})
	if err != nil {
		s.cfg.Log.Warn("Unfiltered visitor walk incomplete", "error", err, "fetched", len(all))
	}

	return filterVisitors(all, name), nil
}

func filterVisitors(visitors []nexudus.Visitor, name string) []nexudus.Visitor {
	var matched []nexudus.Visitor
	for _, v := range visitors {
		if namematch.Matches(v.FullName, name) {
			matched = append(matched, v)
		}
	}
	return matched
}

// rankVisitors picks the winner among surviving candidates: the earliest
// upcoming expected arrival, else the most recent past arrival, else the
// first candidate in upstream order.
func rankVisitors(now time.Time, candidates []nexudus.Visitor) *nexudus.Visitor {
	var (
		upcoming     *nexudus.Visitor
		upcomingAt   time.Time
		recentPast   *nexudus.Visitor
		recentPastAt time.Time
	)

	for i := range candidates {
		v := &candidates[i]
		at, ok := timeutil.Parse(v.ExpectedArrival)
		if !ok {
			continue
		}
		if !at.Before(now) {
			if upcoming == nil || at.Before(upcomingAt) {
				upcoming = v
				upcomingAt = at
			}
		} else {
			if recentPast == nil || at.After(recentPastAt) {
				recentPast = v
				recentPastAt = at
			}
		}
	}

	if upcoming != nil {
		return upcoming
	}
	if recentPast != nil {
		return recentPast
	}
	return &candidates[0]
}

// locateCoworker resolves a coworker identifier. Coworkers have no arrival
// window, so the chain is exact name filter then broad fetch with local
// fuzzy match. An id needs no upstream confirmation: bookings are filtered
// by the id directly.
func (s *passService) locateCoworker(ctx context.Context, ident model.Identifier) (*located, error) {
	if ident.HasID() {
		return &located{
			ref:     model.PersonRef{Kind: model.KindCoworker, ID: ident.ID},
			matches: 1,
		}, nil
	}

	candidates, err := s.coworkerSearch(ctx, ident.Name)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, apperrors.NotFound("Coworker")
	}

	winner := pickCoworker(candidates, ident.Name)
	return &located{
		ref:     model.PersonRef{Kind: model.KindCoworker, ID: winner.ID, DisplayName: coworkerLabel(winner)},
		matches: len(candidates),
	}, nil
}

func (s *passService) coworkerSearch(ctx context.Context, name string) ([]nexudus.Coworker, error) {
	q := url.Values{}
	q.Set("page", "1")
	q.Set("size", strconv.Itoa(s.cfg.SearchSize))
	q.Set("Coworker_FullName", name)
	q.Set("orderBy", "FullName")
	q.Set("dir", "Ascending")

	exact, _, err := s.upstream.ListCoworkers(ctx, q)
	if err != nil {
		return nil, upstreamError("Coworker search failed", err)
	}
	if len(exact) > 0 {
		return exact, nil
	}

	all, err := nexudus.FetchAllPages(ctx, s.cfg.PageCap, func(ctx context.Context, page int) ([]nexudus.Coworker, nexudus.PageInfo, error) {
		q := url.Values{}
		q.Set("page", strconv.Itoa(page))
		q.Set("size", strconv.Itoa(s.cfg.BroadSize))
		q.Set("orderBy", "FullName")
		q.Set("dir", "Ascending")
		return s.upstream.ListCoworkers(ctx, q)
	})
	if err != nil {
		s.cfg.Log.Warn("Unfiltered coworker walk incomplete", "error", err, "fetched", len(all))
	}

	var matched []nexudus.Coworker
	for _, cw := range all {
		if namematch.Matches(cw.FullName, name) {
			matched = append(matched, cw)
		}
	}
	return matched, nil
}

// pickCoworker prefers an exact case-insensitive full-name match over a
// merely fuzzy one.
func pickCoworker(candidates []nexudus.Coworker, name string) *nexudus.Coworker {
	for i := range candidates {
		if strings.EqualFold(strings.TrimSpace(candidates[i].FullName), strings.TrimSpace(name)) {
			return &candidates[i]
		}
	}
	return &candidates[0]
}

func coworkerLabel(cw *nexudus.Coworker) string {
	if cw.FullName != "" {
		return cw.FullName
	}
	if cw.BillingName != "" {
		return cw.BillingName
	}
	return fmt.Sprintf("Coworker %d", cw.ID)
}
