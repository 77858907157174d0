package service

import (
	"testing"
	"time"

	"frontdesk/pkg/model"
	"frontdesk/pkg/nexudus"
	"frontdesk/pkg/timeutil"
)

func testService(now time.Time) *passService {
	return &passService{
		upstream: &mockUpstream{},
		cfg:      testConfig(),
		clock:    timeutil.FixedClock{Instant: now},
	}
}

func coworkerRef(id int64) *located {
	return &located{ref: model.PersonRef{Kind: model.KindCoworker, ID: id}, matches: 1}
}

func visitorRef(v *nexudus.Visitor) *located {
	return &located{
		ref:     model.PersonRef{Kind: model.KindVisitor, ID: v.ID, DisplayName: v.FullName},
		visitor: v,
		matches: 1,
	}
}

func TestSelectPassPrefersActive(t *testing.T) {
	svc := testService(testNow) // 10:30

	candidates := []model.BookingCandidate{
		{BookingID: 1, Resource: "Desk 1", FromTime: "2024-06-15T07:00:00Z", ToTime: "2024-06-15T08:00:00Z", OwnerName: "A"},
		{BookingID: 2, Resource: "Room 2", FromTime: "2024-06-15T10:00:00Z", ToTime: "2024-06-15T11:00:00Z", OwnerName: "B"},
		{BookingID: 3, Resource: "Desk 3", FromTime: "2024-06-15T14:00:00Z", ToTime: "2024-06-15T15:00:00Z", OwnerName: "C"},
	}

	pass := svc.selectPass(coworkerRef(9), candidates)
	if pass == nil {
		t.Fatal("expected a pass")
	}
	if pass.Source != model.SourceBooking {
		t.Errorf("source = %q", pass.Source)
	}
	if pass.Resource != "Room 2" {
		t.Errorf("expected the active booking to win, got %q", pass.Resource)
	}
	if pass.Name != "B" {
		t.Errorf("coworker pass name comes from the booking owner, got %q", pass.Name)
	}
}

func TestSelectPassLatestEndingWhenNoneActive(t *testing.T) {
	svc := testService(time.Date(2024, 6, 15, 20, 0, 0, 0, time.UTC))

	candidates := []model.BookingCandidate{
		{BookingID: 1, Resource: "Desk 1", FromTime: "2024-06-15T07:00:00Z", ToTime: "2024-06-15T08:00:00Z"},
		{BookingID: 2, Resource: "Room 2", FromTime: "2024-06-15T10:00:00Z", ToTime: "2024-06-15T11:00:00Z"},
	}

	pass := svc.selectPass(coworkerRef(9), candidates)
	if pass == nil || pass.Resource != "Room 2" {
		t.Fatalf("expected the latest-ending booking, got %+v", pass)
	}
}

func TestSelectPassMalformedTimesSortLast(t *testing.T) {
	svc := testService(time.Date(2024, 6, 15, 20, 0, 0, 0, time.UTC))

	candidates := []model.BookingCandidate{
		{BookingID: 1, Resource: "Broken", FromTime: "garbage", ToTime: "garbage"},
		{BookingID: 2, Resource: "Room 2", FromTime: "2024-06-15T10:00:00Z", ToTime: "2024-06-15T11:00:00Z"},
	}

	pass := svc.selectPass(coworkerRef(9), candidates)
	if pass == nil || pass.Resource != "Room 2" {
		t.Fatalf("malformed candidate must not win, got %+v", pass)
	}
}

func TestSelectPassDeterministic(t *testing.T) {
	svc := testService(testNow)

	candidates := []model.BookingCandidate{
		{BookingID: 2, Resource: "Room 2", FromTime: "2024-06-15T10:00:00Z", ToTime: "2024-06-15T11:00:00Z"},
		{BookingID: 3, Resource: "Room 3", FromTime: "2024-06-15T10:00:00Z", ToTime: "2024-06-15T11:00:00Z"},
	}

	first := svc.selectPass(coworkerRef(9), candidates)
	for i := 0; i < 10; i++ {
		again := svc.selectPass(coworkerRef(9), candidates)
		if again == nil || again.Resource != first.Resource {
			t.Fatalf("selection not deterministic: %+v vs %+v", first, again)
		}
	}
	// With two simultaneously active candidates the winner must at least
	// be one of them.
	if first.Resource != "Room 2" && first.Resource != "Room 3" {
		t.Errorf("winner %q not in the active set", first.Resource)
	}
}

func TestSelectPassCoworkerWithoutBookings(t *testing.T) {
	svc := testService(testNow)
	if pass := svc.selectPass(coworkerRef(9), nil); pass != nil {
		t.Errorf("coworker without bookings must yield no pass, got %+v", pass)
	}
}

func TestSelectPassVisitorFallbackFromProfile(t *testing.T) {
	svc := testService(testNow)

	v := &nexudus.Visitor{
		ID:              4,
		FullName:        "John Smith",
		ExpectedArrival: "2024-06-15T09:00:00Z",
		CustomFields: &nexudus.CustomFields{Data: []nexudus.CustomField{
			{Name: "Nexudus.Booking.ResourceName", Value: "Lounge"},
			{Name: "Nexudus.Booking.FromTime", Value: "2024-06-15T09:30:00Z"},
		}},
	}

	pass := svc.selectPass(visitorRef(v), nil)
	if pass == nil {
		t.Fatal("expected a fallback pass")
	}
	if pass.Source != model.SourceVisitorFallback {
		t.Errorf("source = %q", pass.Source)
	}
	if pass.Resource != "Lounge" || pass.FromTime != "2024-06-15T09:30:00Z" {
		t.Errorf("fallback fields wrong: %+v", pass)
	}
	if pass.ToTime != "" {
		t.Errorf("fallback pass has no end time, got %q", pass.ToTime)
	}
}

func TestSelectPassVisitorFallbackDefaults(t *testing.T) {
	svc := testService(testNow)

	pass := svc.selectPass(visitorRef(&nexudus.Visitor{ID: 4, ExpectedArrival: "2024-06-15T09:00:00Z"}), nil)
	if pass == nil {
		t.Fatal("expected a fallback pass")
	}
	if pass.Name != "Visitor" {
		t.Errorf("nameless visitor should display as 'Visitor', got %q", pass.Name)
	}
	if pass.Resource != "N/A" {
		t.Errorf("missing resource should display as N/A, got %q", pass.Resource)
	}
	if pass.FromTime != "2024-06-15T09:00:00Z" {
		t.Errorf("expected arrival as fromTime fallback, got %q", pass.FromTime)
	}
}
