package application

// Principal represents the authenticated user invoking a service method.
type Principal struct {
	UserID  string
	IsAdmin bool
}

// LoginParams captures the data required to authenticate a user.
type LoginParams struct {
	Email    string
	Password string
}

// RegisterParams captures the data a client submits to activate a
// placeholder account.
type RegisterParams struct {
	Key      string
	Email    string
	Password string
}

// LogEntryInput captures caller provided project log fields.
type LogEntryInput struct {
	ClientID string
	Date     string
	Title    string
	Update   string
	Progress int
}

// InvoiceInput captures caller provided invoice fields.
type InvoiceInput struct {
	ClientID    string
	Amount      float64
	Description string
	Date        string
}
