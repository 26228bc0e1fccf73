package view

// Frame carries what every page template needs: nav state, flash, CSRF.
type Frame struct {
	Title     string
	Area      string // "merchant" or "admin"
	Flash     *Flash
	CSRFToken string
	UserEmail string
	UserName  string

	// God mode: an admin browsing a specific merchant's data.
	GodMode    bool
	MerchantID string
}

// ---- Forms ----

type LoginForm struct {
	Email    string
	Remember bool
}

type SignupForm struct {
	Name  string
	Email string
}

type ForgotPasswordForm struct {
	Email string
}

type ProfileForm struct {
	Name  string
	Email string
}

type FormPage struct {
	Frame
	Errors    map[string]string
	PageError string // page-level message (e.g. bad credentials)
}

type LoginPage struct {
	FormPage
	Form     LoginForm
	Verified bool // post-email-verification banner
}

type SignupPage struct {
	FormPage
	Form        SignupForm
	InviteToken string
}

type ForgotPasswordPage struct {
	FormPage
	Form ForgotPasswordForm
	Sent bool // always rendered as sent on submit (enumeration masking)
}

type ResetPasswordPage struct {
	FormPage
	Token string
}

type PasswordChangePage struct {
	FormPage
}

type ProfilePage struct {
	FormPage
	Form ProfileForm
	Role string
}

// ---- List pages ----

type TransactionRow struct {
	Status            Badge
	Created           string
	Description       string
	CustomerRef       string
	Amount            string
	PaymentMethod     string
	ExternalReference string
	Type              Badge
}

type TransactionsPage struct {
	Frame
	Rows     []TransactionRow
	Query    string
	Selected *TransactionRow // detail modal state
	Pagination
	NoStore   bool // god-mode page without a merchantId
	LoadError string
}

type CustomerRow struct {
	ID        string
	Name      string
	Email     string
	Phone     string
	Avatar    string
	LastOrder string
}

type CustomersPage struct {
	Frame
	Rows  []CustomerRow
	Query string
	Pagination
	NoStore   bool
	LoadError string
}

type ConversationRow struct {
	Status      Badge
	Created     string
	Updated     string
	Address     string
	CustomerRef string
	Expiration  string
}

type ConversationsPage struct {
	Frame
	Rows  []ConversationRow
	Query string
	Pagination
	NoStore   bool
	LoadError string
}

type StoreRow struct {
	ID        string
	Name      string
	Email     string
	CreatedAt string
}

type StoresPage struct {
	Frame
	Rows  []StoreRow
	Query string
	Pagination
	LoadError string
	Errors    map[string]string // invite form errors
}

// ---- Dashboards ----

type DashboardPage struct {
	Frame
	TransactionCount  int
	CustomerCount     int
	ConversationCount int
	ResolvedCount     int
	InProgressCount   int
	Recent            []TransactionRow
	LoadError         string
}

type MonthCount struct {
	Month string // "2026-01"
	Count int
}

type AdminDashboardPage struct {
	Frame
	StoreCount     int
	SignupsByMonth []MonthCount
	LoadError      string
}

type VerifyEmailPage struct {
	Frame
	OK      bool
	Message string
}

type ErrorPage struct {
	Frame
	Status    int
	Message   string
	RequestID string
}
