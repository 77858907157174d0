package service

import (
	"context"
	"net/url"
	"time"

	"frontdesk/pkg/config"
	"frontdesk/pkg/logger"
	"frontdesk/pkg/nexudus"
)

// Mock upstream for testing, in the shape of the record API interface.
type mockUpstream struct {
	getVisitorFunc          func(ctx context.Context, id int64) (*nexudus.Visitor, error)
	getBookingFunc          func(ctx context.Context, id int64) (*nexudus.Booking, error)
	listVisitorsFunc        func(ctx context.Context, q url.Values) ([]nexudus.Visitor, nexudus.PageInfo, error)
	listCoworkersFunc       func(ctx context.Context, q url.Values) ([]nexudus.Coworker, nexudus.PageInfo, error)
	listBookingsFunc        func(ctx context.Context, q url.Values) ([]nexudus.Booking, nexudus.PageInfo, error)
	listBookingVisitorsFunc func(ctx context.Context, q url.Values) ([]nexudus.BookingVisitor, nexudus.PageInfo, error)
}

func (m *mockUpstream) GetVisitor(ctx context.Context, id int64) (*nexudus.Visitor, error) {
	if m.getVisitorFunc != nil {
		return m.getVisitorFunc(ctx, id)
	}
	return &nexudus.Visitor{ID: id}, nil
}

func (m *mockUpstream) GetBooking(ctx context.Context, id int64) (*nexudus.Booking, error) {
	if m.getBookingFunc != nil {
		return m.getBookingFunc(ctx, id)
	}
	return &nexudus.Booking{ID: id}, nil
}

func (m *mockUpstream) ListVisitors(ctx context.Context, q url.Values) ([]nexudus.Visitor, nexudus.PageInfo, error) {
	if m.listVisitorsFunc != nil {
		return m.listVisitorsFunc(ctx, q)
	}
	return nil, nexudus.PageInfo{}, nil
}

func (m *mockUpstream) ListCoworkers(ctx context.Context, q url.Values) ([]nexudus.Coworker, nexudus.PageInfo, error) {
	if m.listCoworkersFunc != nil {
		return m.listCoworkersFunc(ctx, q)
	}
	return nil, nexudus.PageInfo{}, nil
}

func (m *mockUpstream) ListBookings(ctx context.Context, q url.Values) ([]nexudus.Booking, nexudus.PageInfo, error) {
	if m.listBookingsFunc != nil {
		return m.listBookingsFunc(ctx, q)
	}
	return nil, nexudus.PageInfo{}, nil
}

func (m *mockUpstream) ListBookingVisitors(ctx context.Context, q url.Values) ([]nexudus.BookingVisitor, nexudus.PageInfo, error) {
	if m.listBookingVisitorsFunc != nil {
		return m.listBookingVisitorsFunc(ctx, q)
	}
	return nil, nexudus.PageInfo{}, nil
}

func testConfig() *config.Config {
	return &config.Config{
		PageCap:        config.DefaultPageCap,
		BookingSize:    config.DefaultBookingSize,
		JoinSize:       config.DefaultJoinSize,
		SearchSize:     config.DefaultSearchSize,
		BroadSize:      config.DefaultBroadSize,
		DetailFetchCap: config.DefaultDetailFetchCap,
		ActiveMargin:   config.DefaultActiveMargin,
		Log: logger.New(logger.Config{
			Level:   logger.ERROR,
			Format:  logger.JSON,
			Service: "test",
		}),
	}
}

var testNow = time.Date(2024, 6, 15, 10, 30, 0, 0, time.UTC)
