package service

import (
	"context"
	"net/url"
	"strconv"
	"sync"

	"frontdesk/pkg/model"
	"frontdesk/pkg/namematch"
	"frontdesk/pkg/nexudus"
	"frontdesk/pkg/timeutil"
)

// todayBookings fetches today's confirmed bookings for the whole account,
// paginated and capped. This is the primary feed for coworker resolution
// and the cross-reference set for the degraded visitor strategy.
func (s *passService) todayBookings(ctx context.Context) ([]nexudus.Booking, error) {
	start, end := timeutil.TodayWindowUTC(s.clock.Now())

	bookings, err := nexudus.FetchAllPages(ctx, s.cfg.PageCap, func(ctx context.Context, page int) ([]nexudus.Booking, nexudus.PageInfo, error) {
		q := url.Values{}
		q.Set("page", strconv.Itoa(page))
		q.Set("size", strconv.Itoa(s.cfg.BookingSize))
		q.Set("status", "Confirmed")
		q.Set("from_Booking_FromTime", timeutil.MinuteStamp.Render(start))
		q.Set("to_Booking_ToTime", timeutil.MinuteStamp.Render(end))
		return s.upstream.ListBookings(ctx, q)
	})
	if err != nil {
		return bookings, upstreamError("Bookings fetch failed", err)
	}
	return bookings, nil
}

// coworkerCandidates filters the day's bookings down to those owned by the
// coworker, tolerating the different field spellings the upstream uses for
// the owner id.
func (s *passService) coworkerCandidates(coworkerID int64, bookings []nexudus.Booking) []model.BookingCandidate {
	var candidates []model.BookingCandidate
	for i := range bookings {
		if bookings[i].OwnerCoworkerID() == coworkerID {
			candidates = append(candidates, toCandidate(&bookings[i]))
		}
	}
	return dedupe(candidates)
}

// linkVisitorBookings finds today's bookings linked to a located visitor.
// The preferred strategy filters the booking-visitor join server-side by
// visitor id and fetches each distinct booking directly; when that filtered
// fetch fails outright, it degrades to walking the whole join table and
// matching locally.
func (s *passService) linkVisitorBookings(ctx context.Context, person *located) ([]model.BookingCandidate, error) {
	joins, err := nexudus.FetchAllPages(ctx, s.cfg.PageCap, func(ctx context.Context, page int) ([]nexudus.BookingVisitor, nexudus.PageInfo, error) {
		q := url.Values{}
		q.Set("page", strconv.Itoa(page))
		q.Set("size", strconv.Itoa(s.cfg.JoinSize))
		q.Set("BookingVisitor_Visitor", strconv.FormatInt(person.ref.ID, 10))
		return s.upstream.ListBookingVisitors(ctx, q)
	})
	if err != nil && len(joins) == 0 {
		s.cfg.Log.Warn("Filtered booking-visitor fetch failed, degrading to full walk",
			"visitor_id", person.ref.ID,
			"error", err,
		)
		return s.linkVisitorByWalk(ctx, person)
	}

	ids := make(map[int64]struct{})
	for _, row := range joins {
		if row.BookingID != 0 {
			ids[row.BookingID] = struct{}{}
		}
	}
	return s.fetchOverlappingBookings(ctx, ids), nil
}

// linkVisitorByWalk is the degraded fallback: page through the account's
// booking-visitor join rows, match rows by visitor id or normalized full
// name, and cross-reference against today's booking list. Failures here are
// swallowed; the visitor fallback pass still applies.
func (s *passService) linkVisitorByWalk(ctx context.Context, person *located) ([]model.BookingCandidate, error) {
	joins, err := nexudus.FetchAllPages(ctx, s.cfg.PageCap, func(ctx context.Context, page int) ([]nexudus.BookingVisitor, nexudus.PageInfo, error) {
		q := url.Values{}
		q.Set("page", strconv.Itoa(page))
		q.Set("size", strconv.Itoa(s.cfg.JoinSize))
		return s.upstream.ListBookingVisitors(ctx, q)
	})
	if err != nil {
		s.cfg.Log.Warn("Booking-visitor walk incomplete", "error", err, "fetched", len(joins))
	}

	wanted := matchJoinRows(joins, person.ref.ID, namematch.Normalize(person.ref.DisplayName))
	if len(wanted) == 0 {
		return nil, nil
	}

	bookings, err := s.todayBookings(ctx)
	if err != nil {
		s.cfg.Log.Warn("Bookings cross-reference incomplete", "error", err, "fetched", len(bookings))
	}

	var candidates []model.BookingCandidate
	for i := range bookings {
		if _, ok := wanted[bookings[i].ID]; ok {
			candidates = append(candidates, toCandidate(&bookings[i]))
		}
	}
	return dedupe(candidates), nil
}

// matchJoinRows collects booking ids from walked join rows that refer to
// the visitor, by id or by normalized full name.
func matchJoinRows(walked []nexudus.BookingVisitor, visitorID int64, normalizedName string) map[int64]struct{} {
	ids := make(map[int64]struct{})
	for _, row := range walked {
		if row.BookingID == 0 {
			continue
		}
		sameID := row.VisitorID != 0 && row.VisitorID == visitorID
		sameName := normalizedName != "" && namematch.Normalize(row.VisitorFullName) == normalizedName
		if sameID || sameName {
			ids[row.BookingID] = struct{}{}
		}
	}
	return ids
}

// fetchOverlappingBookings fans out per-booking detail fetches concurrently
// and keeps the ones overlapping today. The fan-out is bounded by the
// configured detail-fetch cap so a visitor with an enormous booking history
// cannot trigger unbounded upstream calls; individual fetch failures drop
// that booking only.
func (s *passService) fetchOverlappingBookings(ctx context.Context, ids map[int64]struct{}) []model.BookingCandidate {
	if len(ids) == 0 {
		return nil
	}

	start, end := timeutil.TodayWindowUTC(s.clock.Now())

	fetchList := make([]int64, 0, len(ids))
	for id := range ids {
		fetchList = append(fetchList, id)
	}
	if len(fetchList) > s.cfg.DetailFetchCap {
		s.cfg.Log.Warn("Visitor booking fan-out capped",
			"linked", len(fetchList),
			"cap", s.cfg.DetailFetchCap,
		)
		fetchList = fetchList[:s.cfg.DetailFetchCap]
	}

	var (
		mu         sync.Mutex
		wg         sync.WaitGroup
		candidates []model.BookingCandidate
	)

	for _, id := range fetchList {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()

			booking, err := s.upstream.GetBooking(ctx, id)
			if err != nil {
				s.cfg.Log.Warn("Booking detail fetch failed", "booking_id", id, "error", err)
				return
			}
			if !timeutil.Overlaps(booking.FromTime, booking.ToTime, start, end) {
				return
			}

			mu.Lock()
			candidates = append(candidates, toCandidate(booking))
			mu.Unlock()
		}(id)
	}
	wg.Wait()

	return dedupe(candidates)
}

func toCandidate(b *nexudus.Booking) model.BookingCandidate {
	return model.BookingCandidate{
		BookingID: b.ID,
		Resource:  b.ResourceName,
		FromTime:  b.FromTime,
		ToTime:    b.ToTime,
		OwnerName: b.CoworkerFullName,
	}
}

func dedupe(candidates []model.BookingCandidate) []model.BookingCandidate {
	seen := make(map[int64]struct{}, len(candidates))
	out := candidates[:0:0]
	for _, c := range candidates {
		if _, ok := seen[c.BookingID]; ok {
			continue
		}
		seen[c.BookingID] = struct{}{}
		out = append(out, c)
	}
	return out
}
