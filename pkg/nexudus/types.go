package nexudus

// Record shapes for the slice of the workspace-management API this service
// reads. Field names follow the upstream payloads; anything absent decodes
// to its zero value and is treated as empty downstream, never as an error.

type PageInfo struct {
	HasNextPage *bool `json:"HasNextPage"`
	PageNumber  int   `json:"PageNumber"`
	TotalPages  int   `json:"TotalPages"`
}

type envelope[T any] struct {
	Records []T `json:"Records"`
	PageInfo
}

type IDRef struct {
	ID int64 `json:"Id"`
}

type CustomField struct {
	Name  string `json:"Name"`
	Value string `json:"Value"`
}

type CustomFields struct {
	Data []CustomField `json:"Data"`
}

type Visitor struct {
	ID               int64         `json:"Id"`
	FullName         string        `json:"FullName"`
	VisitorCode      string        `json:"VisitorCode"`
	CoworkerFullName string        `json:"CoworkerFullName"`
	ExpectedArrival  string        `json:"ExpectedArrival"`
	CustomFields     *CustomFields `json:"CustomFields"`
}

// CustomField returns the value of the named custom field, or "" when the
// field (or the whole custom-field block) is absent.
func (v *Visitor) CustomField(name string) string {
	if v.CustomFields == nil {
		return ""
	}
	for _, f := range v.CustomFields.Data {
		if f.Name == name {
			return f.Value
		}
	}
	return ""
}

type Coworker struct {
	ID          int64  `json:"Id"`
	FullName    string `json:"FullName"`
	BillingName string `json:"BillingName"`
	Email       string `json:"Email"`
}

type Booking struct {
	ID               int64  `json:"Id"`
	ResourceName     string `json:"ResourceName"`
	CoworkerFullName string `json:"CoworkerFullName"`
	FromTime         string `json:"FromTime"`
	ToTime           string `json:"ToTime"`

	// The coworker id appears under different names depending on which
	// upstream endpoint produced the record. OwnerCoworkerID is the only
	// place that knows all the spellings.
	BookingCoworker *IDRef `json:"Booking_Coworker"`
	CoworkerID      int64  `json:"CoworkerId"`
	Coworker        *IDRef `json:"Coworker"`
}

// OwnerCoworkerID resolves the owning coworker id across the known record
// shapes, trying each candidate field in order. Zero means no coworker.
func (b *Booking) OwnerCoworkerID() int64 {
	if b.BookingCoworker != nil && b.BookingCoworker.ID != 0 {
		return b.BookingCoworker.ID
	}
	if b.CoworkerID != 0 {
		return b.CoworkerID
	}
	if b.Coworker != nil {
		return b.Coworker.ID
	}
	return 0
}

// BookingVisitor is the join row connecting a visitor to a booking for
// attendance purposes.
type BookingVisitor struct {
	ID              int64  `json:"Id"`
	BookingID       int64  `json:"BookingId"`
	VisitorID       int64  `json:"VisitorId"`
	VisitorFullName string `json:"VisitorFullName"`
}
