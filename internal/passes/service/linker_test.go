package service

import (
	"context"
	"net/url"
	"strconv"
	"sync/atomic"
	"testing"

	"frontdesk/pkg/nexudus"
)

func TestCoworkerCandidatesFieldSpellings(t *testing.T) {
	svc := locatorService(&mockUpstream{})

	bookings := []nexudus.Booking{
		{ID: 1, ResourceName: "A", BookingCoworker: &nexudus.IDRef{ID: 42}},
		{ID: 2, ResourceName: "B", CoworkerID: 42},
		{ID: 3, ResourceName: "C", Coworker: &nexudus.IDRef{ID: 42}},
		{ID: 4, ResourceName: "D", CoworkerID: 7},
		{ID: 1, ResourceName: "A", CoworkerID: 42}, // duplicate id
	}

	candidates := svc.coworkerCandidates(42, bookings)
	if len(candidates) != 3 {
		t.Fatalf("expected 3 deduplicated candidates, got %d: %+v", len(candidates), candidates)
	}
	for _, c := range candidates {
		if c.BookingID == 4 {
			t.Errorf("booking of another coworker leaked in")
		}
	}
}

func TestLinkVisitorPreferredStrategy(t *testing.T) {
	var joinQuery url.Values
	upstream := &mockUpstream{
		listBookingVisitorsFunc: func(_ context.Context, q url.Values) ([]nexudus.BookingVisitor, nexudus.PageInfo, error) {
			joinQuery = q
			return []nexudus.BookingVisitor{
				{BookingID: 10, VisitorID: 4},
				{BookingID: 11, VisitorID: 4},
				{BookingID: 10, VisitorID: 4}, // duplicate join row
			}, nexudus.PageInfo{}, nil
		},
		getBookingFunc: func(_ context.Context, id int64) (*nexudus.Booking, error) {
			if id == 10 {
				return &nexudus.Booking{ID: 10, ResourceName: "Room", FromTime: "2024-06-15T10:00:00Z", ToTime: "2024-06-15T11:00:00Z"}, nil
			}
			// Booking 11 was yesterday.
			return &nexudus.Booking{ID: 11, FromTime: "2024-06-14T10:00:00Z", ToTime: "2024-06-14T11:00:00Z"}, nil
		},
	}
	svc := locatorService(upstream)

	person := visitorRef(&nexudus.Visitor{ID: 4, FullName: "John Smith"})
	candidates, err := svc.linkVisitorBookings(context.Background(), person)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if joinQuery.Get("BookingVisitor_Visitor") != "4" {
		t.Errorf("join fetch must filter by visitor id server-side, got %v", joinQuery)
	}
	if len(candidates) != 1 || candidates[0].BookingID != 10 {
		t.Fatalf("expected only today's booking, got %+v", candidates)
	}
}

func TestLinkVisitorDegradesToWalk(t *testing.T) {
	windowListed := false
	upstream := &mockUpstream{
		listBookingVisitorsFunc: func(_ context.Context, q url.Values) ([]nexudus.BookingVisitor, nexudus.PageInfo, error) {
			if q.Get("BookingVisitor_Visitor") != "" {
				// Account rejects the server-side filter.
				return nil, nexudus.PageInfo{}, &nexudus.StatusError{Status: 400, Excerpt: "unknown filter"}
			}
			return []nexudus.BookingVisitor{
				{BookingID: 10, VisitorFullName: "John Smith"},
				{BookingID: 12, VisitorID: 9},
			}, nexudus.PageInfo{}, nil
		},
		listBookingsFunc: func(_ context.Context, q url.Values) ([]nexudus.Booking, nexudus.PageInfo, error) {
			windowListed = true
			return []nexudus.Booking{
				{ID: 10, ResourceName: "Room", FromTime: "2024-06-15T10:00:00Z", ToTime: "2024-06-15T11:00:00Z"},
				{ID: 12, ResourceName: "Other", FromTime: "2024-06-15T12:00:00Z", ToTime: "2024-06-15T13:00:00Z"},
			}, nexudus.PageInfo{}, nil
		},
	}
	svc := locatorService(upstream)

	person := visitorRef(&nexudus.Visitor{ID: 4, FullName: "John Smith"})
	candidates, err := svc.linkVisitorBookings(context.Background(), person)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !windowListed {
		t.Fatal("degraded strategy must cross-reference today's bookings")
	}
	// Booking 12 belongs to visitor 9, matched by neither id nor name.
	if len(candidates) != 1 || candidates[0].BookingID != 10 {
		t.Fatalf("expected the name-matched booking only, got %+v", candidates)
	}
}

func TestVisitorFanOutIsCapped(t *testing.T) {
	joins := make([]nexudus.BookingVisitor, 100)
	for i := range joins {
		joins[i] = nexudus.BookingVisitor{BookingID: int64(i + 1), VisitorID: 4}
	}

	var fetches int64
	upstream := &mockUpstream{
		listBookingVisitorsFunc: func(context.Context, url.Values) ([]nexudus.BookingVisitor, nexudus.PageInfo, error) {
			return joins, nexudus.PageInfo{}, nil
		},
		getBookingFunc: func(_ context.Context, id int64) (*nexudus.Booking, error) {
			atomic.AddInt64(&fetches, 1)
			return &nexudus.Booking{ID: id, FromTime: "2024-06-15T10:00:00Z", ToTime: "2024-06-15T11:00:00Z"}, nil
		},
	}
	svc := locatorService(upstream)
	svc.cfg.DetailFetchCap = 25

	person := visitorRef(&nexudus.Visitor{ID: 4, FullName: "John Smith"})
	candidates, err := svc.linkVisitorBookings(context.Background(), person)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := atomic.LoadInt64(&fetches); got != 25 {
		t.Errorf("detail fetches must be capped at 25, got %d", got)
	}
	if len(candidates) != 25 {
		t.Errorf("expected 25 candidates, got %d", len(candidates))
	}
}

func TestTodayBookingsPaginates(t *testing.T) {
	var pages []string
	upstream := &mockUpstream{
		listBookingsFunc: func(_ context.Context, q url.Values) ([]nexudus.Booking, nexudus.PageInfo, error) {
			pages = append(pages, q.Get("page"))
			if q.Get("status") != "Confirmed" {
				t.Errorf("missing Confirmed status filter")
			}
			if q.Get("from_Booking_FromTime") != "2024-06-15T00:00" {
				t.Errorf("window start = %q, expected minute precision", q.Get("from_Booking_FromTime"))
			}
			page, _ := strconv.Atoi(q.Get("page"))
			hasNext := page < 2
			return []nexudus.Booking{{ID: int64(page)}}, nexudus.PageInfo{HasNextPage: &hasNext}, nil
		},
	}
	svc := locatorService(upstream)

	bookings, err := svc.todayBookings(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(bookings) != 2 {
		t.Errorf("expected 2 bookings across pages, got %d", len(bookings))
	}
	if len(pages) != 2 || pages[0] != "1" || pages[1] != "2" {
		t.Errorf("unexpected page sequence: %v", pages)
	}
}
