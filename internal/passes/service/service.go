package service

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"frontdesk/pkg/config"
	apperrors "frontdesk/pkg/errors"
	"frontdesk/pkg/events"
	"frontdesk/pkg/middleware"
	"frontdesk/pkg/model"
	"frontdesk/pkg/nexudus"
	"frontdesk/pkg/timeutil"
)

// Upstream is the slice of the workspace-management API the resolver reads.
type Upstream interface {
	GetVisitor(ctx context.Context, id int64) (*nexudus.Visitor, error)
	GetBooking(ctx context.Context, id int64) (*nexudus.Booking, error)
	ListVisitors(ctx context.Context, q url.Values) ([]nexudus.Visitor, nexudus.PageInfo, error)
	ListCoworkers(ctx context.Context, q url.Values) ([]nexudus.Coworker, nexudus.PageInfo, error)
	ListBookings(ctx context.Context, q url.Values) ([]nexudus.Booking, nexudus.PageInfo, error)
	ListBookingVisitors(ctx context.Context, q url.Values) ([]nexudus.BookingVisitor, nexudus.PageInfo, error)
}

type PassService interface {
	// ResolvePass resolves a person to their single current access pass.
	// A nil pass with a nil error means the person exists but holds no
	// pass right now. The int is the person-candidate match count, for
	// disambiguation signaling.
	ResolvePass(ctx context.Context, kind model.PersonKind, ident model.Identifier) (*model.Pass, int, error)

	// SearchPeople lists person candidates for the autocomplete UI.
	SearchPeople(ctx context.Context, kind model.PersonKind, name string) ([]model.SearchResult, error)

	// Ready probes upstream reachability.
	Ready(ctx context.Context) error
}

type passService struct {
	upstream Upstream
	cfg      *config.Config
	clock    timeutil.Clock
	producer *events.Producer
}

func NewPassService(upstream Upstream, cfg *config.Config, clock timeutil.Clock, producer *events.Producer) PassService {
	if clock == nil {
		clock = timeutil.SystemClock{}
	}
	return &passService{
		upstream: upstream,
		cfg:      cfg,
		clock:    clock,
		producer: producer,
	}
}

// located carries the person record a resolution is working with. The raw
// visitor record stays attached because the fallback pass is built from its
// profile fields.
type located struct {
	ref     model.PersonRef
	visitor *nexudus.Visitor
	matches int
}

func (s *passService) ResolvePass(ctx context.Context, kind model.PersonKind, ident model.Identifier) (*model.Pass, int, error) {
	if !kind.Valid() {
		return nil, 0, apperrors.InvalidInput("type must be 'visitor' or 'coworker'")
	}
	if !ident.HasID() && strings.TrimSpace(ident.Name) == "" {
		return nil, 0, apperrors.InvalidInput("either a numeric id or a name is required")
	}

	var (
		person     *located
		candidates []model.BookingCandidate
		err        error
	)

	switch kind {
	case model.KindVisitor:
		person, err = s.locateVisitor(ctx, ident)
		if err != nil {
			return nil, 0, err
		}
		candidates, err = s.linkVisitorBookings(ctx, person)
	case model.KindCoworker:
		person, candidates, err = s.resolveCoworker(ctx, ident)
	}
	if err != nil {
		return nil, 0, err
	}

	pass := s.selectPass(person, candidates)

	s.publishResolved(ctx, kind, person, pass)
	return pass, person.matches, nil
}

// resolveCoworker locates the coworker and fetches today's bookings
// concurrently; the two have no data dependency.
func (s *passService) resolveCoworker(ctx context.Context, ident model.Identifier) (*located, []model.BookingCandidate, error) {
	var (
		person      *located
		bookings    []nexudus.Booking
		errLocate   error
		errBookings error
		wg          sync.WaitGroup
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		person, errLocate = s.locateCoworker(ctx, ident)
	}()
	go func() {
		defer wg.Done()
		bookings, errBookings = s.todayBookings(ctx)
	}()
	wg.Wait()

	if errLocate != nil {
		return nil, nil, errLocate
	}
	if errBookings != nil {
		// The bookings list is the primary fetch for a coworker pass.
		return nil, nil, errBookings
	}

	return person, s.coworkerCandidates(person.ref.ID, bookings), nil
}

func (s *passService) publishResolved(ctx context.Context, kind model.PersonKind, person *located, pass *model.Pass) {
	if s.producer == nil {
		return
	}
	ev := events.EventFromPass(
		middleware.RequestID(ctx),
		kind,
		person.ref,
		pass,
		person.matches,
		s.clock.Now(),
	)
	s.producer.PublishPassResolved(ctx, ev)
}

func (s *passService) Ready(ctx context.Context) error {
	q := url.Values{}
	q.Set("page", "1")
	q.Set("size", "1")
	if _, _, err := s.upstream.ListVisitors(ctx, q); err != nil {
		return upstreamError("Upstream probe failed", err)
	}
	return nil
}

// upstreamError maps a transport or status failure onto the error taxonomy
// the HTTP boundary understands.
func upstreamError(message string, err error) *apperrors.AppError {
	var st *nexudus.StatusError
	if errors.As(err, &st) {
		appErr := apperrors.Upstream(message, st.Status, st.Excerpt)
		appErr.Err = err
		return appErr
	}
	appErr := apperrors.New(apperrors.CodeUpstream, message, http.StatusBadGateway)
	appErr.Err = err
	return appErr
}
