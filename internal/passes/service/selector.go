package service

import (
	"frontdesk/pkg/model"
	"frontdesk/pkg/timeutil"
)

// Custom-field names under which the upstream mirrors booking metadata on a
// visitor profile. They feed the fallback pass when no linked booking is
// found.
const (
	fieldFallbackResource = "Nexudus.Booking.ResourceName"
	fieldFallbackFromTime = "Nexudus.Booking.FromTime"
)

// selectPass picks exactly one winning booking, or the documented fallback.
// An active booking (grace margin included) wins; otherwise the booking
// with the latest end time among today's candidates. Deterministic given
// the same candidates and clock.
func (s *passService) selectPass(person *located, candidates []model.BookingCandidate) *model.Pass {
	if len(candidates) == 0 {
		return s.fallbackPass(person)
	}

	now := s.clock.Now()
	chosen := candidates[0]
	found := false
	for _, c := range candidates {
		if timeutil.IsActiveNow(now, c.FromTime, c.ToTime, s.cfg.ActiveMargin) {
			chosen = c
			found = true
			break
		}
	}

	if !found {
		// None active: the booking that ended most recently (or ends
		// latest) still names the pass. Unparsable end times sort last.
		best, bestOK := timeutil.Parse(chosen.ToTime)
		for _, c := range candidates[1:] {
			at, ok := timeutil.Parse(c.ToTime)
			if !ok {
				continue
			}
			if !bestOK || at.After(best) {
				chosen = c
				best = at
				bestOK = true
			}
		}
	}

	name := person.ref.DisplayName
	if person.ref.Kind == model.KindCoworker {
		name = chosen.OwnerName
	}

	return &model.Pass{
		Source:   model.SourceBooking,
		Name:     orNA(name),
		Resource: orNA(chosen.Resource),
		FromTime: chosen.FromTime,
		ToTime:   chosen.ToTime,
	}
}

// fallbackPass covers the no-booking case. Coworkers get no pass at all; a
// visitor gets a best-effort pass built from profile fields that mirror
// booking metadata.
func (s *passService) fallbackPass(person *located) *model.Pass {
	if person.ref.Kind != model.KindVisitor || person.visitor == nil {
		return nil
	}

	v := person.visitor
	name := v.FullName
	if name == "" {
		name = "Visitor"
	}

	fromTime := v.CustomField(fieldFallbackFromTime)
	if fromTime == "" {
		fromTime = v.ExpectedArrival
	}

	return &model.Pass{
		Source:   model.SourceVisitorFallback,
		Name:     name,
		Resource: orNA(v.CustomField(fieldFallbackResource)),
		FromTime: fromTime,
	}
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
