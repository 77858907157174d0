package service

import (
	"context"
	"fmt"
	"strings"

	apperrors "frontdesk/pkg/errors"
	"frontdesk/pkg/model"
)

// SearchPeople lists person candidates for the kiosk autocomplete, built
// from the same widening lookup chains resolution uses, so a name that
// resolves also autocompletes.
func (s *passService) SearchPeople(ctx context.Context, kind model.PersonKind, name string) ([]model.SearchResult, error) {
	if !kind.Valid() {
		return nil, apperrors.InvalidInput("type must be 'visitor' or 'coworker'")
	}
	if strings.TrimSpace(name) == "" {
		return nil, apperrors.InvalidInput("name is required")
	}

	switch kind {
	case model.KindVisitor:
		visitors, err := s.visitorCandidates(ctx, name)
		if err != nil {
			return nil, err
		}
		results := make([]model.SearchResult, 0, len(visitors))
		for i := range visitors {
			v := &visitors[i]

			label := v.FullName
			if v.VisitorCode != "" {
				label = fmt.Sprintf("%s (#%s)", v.FullName, v.VisitorCode)
			}

			host := v.CoworkerFullName
			if host == "" {
				host = "No host"
			}
			arrival := v.ExpectedArrival
			if arrival == "" {
				arrival = "n/a"
			}

			results = append(results, model.SearchResult{
				Type:  model.KindVisitor,
				ID:    v.ID,
				Label: label,
				Sub:   fmt.Sprintf("%s • Expected %s", host, arrival),
			})
		}
		return results, nil

	default:
		coworkers, err := s.coworkerSearch(ctx, name)
		if err != nil {
			return nil, err
		}
		results := make([]model.SearchResult, 0, len(coworkers))
		for i := range coworkers {
			cw := &coworkers[i]
			results = append(results, model.SearchResult{
				Type:  model.KindCoworker,
				ID:    cw.ID,
				Label: coworkerLabel(cw),
				Sub:   cw.Email,
			})
		}
		return results, nil
	}
}
