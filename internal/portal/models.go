package portal

// Role identifies the account kind stored for a user.
type Role string

const (
	// RoleAdmin is the single administrator account.
	RoleAdmin Role = "admin"
	// RoleClient is a consultancy client account.
	RoleClient Role = "client"
)

// MeetingType identifies how a booked meeting is held.
type MeetingType string

const (
	MeetingZoom     MeetingType = "zoom"
	MeetingPhone    MeetingType = "phone"
	MeetingInPerson MeetingType = "in-person"
)

// BookingStatus tracks the lifecycle state of a booking. Only
// "confirmed" is ever written by the portal itself; the other states
// exist in the schema and are settable by external tooling.
type BookingStatus string

const (
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
	BookingCompleted BookingStatus = "completed"
)

// InvoiceStatus tracks whether an invoice has been settled.
type InvoiceStatus string

const (
	InvoicePending InvoiceStatus = "pending"
	InvoicePaid    InvoiceStatus = "paid"
)

// User represents the administrator or a client account. Client
// accounts start as placeholders (no email or password, IsRegistered
// false) and are activated once through their registration key.
type User struct {
	ID              string `json:"id"`
	Email           string `json:"email,omitempty"`
	Password        string `json:"password,omitempty"`
	Name            string `json:"name"`
	Role            Role   `json:"role"`
	Business        string `json:"business,omitempty"`
	Phone           string `json:"phone,omitempty"`
	Website         string `json:"website,omitempty"`
	AvatarURL       string `json:"avatarUrl,omitempty"`
	RegistrationKey string `json:"registrationKey,omitempty"`
	IsRegistered    bool   `json:"isRegistered"`
	Verified        bool   `json:"verified"`
}

// ClientProfile carries the fields an administrator supplies when
// issuing a placeholder client account.
type ClientProfile struct {
	Name      string
	Business  string
	Phone     string
	Website   string
	AvatarURL string
}

// Booking is a scheduled meeting. Date is an ISO calendar day
// (2006-01-02) and Time a 24h clock value (15:04). Duration is fixed at
// creation from the meeting type and never changes.
type Booking struct {
	ID       string        `json:"id"`
	UserID   string        `json:"userId"`
	UserName string        `json:"userName"`
	Date     string        `json:"date"`
	Time     string        `json:"time"`
	Type     MeetingType   `json:"type"`
	Duration int           `json:"duration"`
	Status   BookingStatus `json:"status"`
}

// ProjectLog is a progress update addressed to one client. Append-only.
type ProjectLog struct {
	ID       string `json:"id"`
	ClientID string `json:"clientId"`
	Date     string `json:"date"`
	Title    string `json:"title"`
	Update   string `json:"update"`
	Progress int    `json:"progress"`
}

// Invoice is a billing record addressed to one client.
type Invoice struct {
	ID          string        `json:"id"`
	ClientID    string        `json:"clientId"`
	Amount      float64       `json:"amount"`
	Description string        `json:"description"`
	Status      InvoiceStatus `json:"status"`
	Date        string        `json:"date"`
}

// DurationFor derives the fixed meeting length in minutes for a meeting
// type: two hours for in-person visits, half an hour otherwise.
func DurationFor(t MeetingType) int {
	if t == MeetingInPerson {
		return 120
	}
	return 30
}
