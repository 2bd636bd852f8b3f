package gateway

// SessionIDPlaceholder is substituted by the processor when redirecting back to
// the success URL, so the returning page can recover its session id.
const SessionIDPlaceholder = "{CHECKOUT_SESSION_ID}"

const (
	PaymentStatusUnpaid = "unpaid"
	PaymentStatusPaid   = "paid"
)

// SessionMetadata is the caller-supplied payload echoed back on every webhook
// and session lookup. It is the only link between a processor session and the
// platform's user/course identifiers.
type SessionMetadata struct {
	UserID   string `json:"userId"`
	CourseID string `json:"courseId"`
}

// LineItem is a single purchasable position on a checkout session.
type LineItem struct {
	Name       string `json:"name"`
	UnitAmount int64  `json:"unit_amount"`
	Quantity   int64  `json:"quantity"`
	Currency   string `json:"currency"`
}

// CreateSessionParams is the request body for creating a checkout session.
type CreateSessionParams struct {
	SuccessURL        string          `json:"success_url"`
	CancelURL         string          `json:"cancel_url"`
	ClientReferenceID string          `json:"client_reference_id,omitempty"`
	Metadata          SessionMetadata `json:"metadata"`
	LineItems         []LineItem      `json:"line_items"`
}

// CheckoutSession is the processor's representation of one purchase attempt.
// It is created and read by this service, never mutated locally.
type CheckoutSession struct {
	ID                string          `json:"id"`
	URL               string          `json:"url"`
	PaymentStatus     string          `json:"payment_status"`
	ClientReferenceID string          `json:"client_reference_id"`
	CustomerEmail     string          `json:"customer_email"`
	Metadata          SessionMetadata `json:"metadata"`
}

// Paid reports whether the session's payment has completed.
func (s *CheckoutSession) Paid() bool {
	return s.PaymentStatus == PaymentStatusPaid
}
