package model

type PersonKind string

const (
	KindVisitor  PersonKind = "visitor"
	KindCoworker PersonKind = "coworker"
)

func (k PersonKind) Valid() bool {
	return k == KindVisitor || k == KindCoworker
}

// Identifier names the person to resolve: a numeric upstream id, or a
// free-text name when no id is known.
type Identifier struct {
	ID   int64
	Name string
}

func (id Identifier) HasID() bool {
	return id.ID > 0
}

// PersonRef is a located person. The upstream numeric id is the identity
// when known; the display name is a non-unique secondary key used only for
// lookup.
type PersonRef struct {
	Kind        PersonKind `json:"kind"`
	ID          int64      `json:"id"`
	DisplayName string     `json:"display_name"`
}

// BookingCandidate is one of today's bookings linked to a located person.
// FromTime and ToTime carry the upstream wall-clock strings unmodified;
// malformed values must never crash selection, they sort last instead.
type BookingCandidate struct {
	BookingID int64
	Resource  string
	FromTime  string
	ToTime    string
	OwnerName string
}

// Pass sources.
const (
	SourceBooking         = "booking"
	SourceVisitorFallback = "visitor-fallback"
	SourceNone            = "none"
)

// Pass is the resolved, displayable proof of a person's current or
// most-recent-today booking. A nil Pass means "no pass".
type Pass struct {
	Source   string `json:"source"`
	Name     string `json:"name"`
	Resource string `json:"resource"`
	FromTime string `json:"fromTime,omitempty"`
	ToTime   string `json:"toTime,omitempty"`
}

// SearchResult is one row of the people-search listing backing the kiosk
// autocomplete.
type SearchResult struct {
	Type  PersonKind `json:"type"`
	ID    int64      `json:"id"`
	Label string     `json:"label"`
	Sub   string     `json:"sub"`
}
