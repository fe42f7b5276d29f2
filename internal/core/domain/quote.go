package domain

import (
	"errors"
	"time"
)

// QuoteStatus represents the lifecycle state of a quotation request.
type QuoteStatus string

const (
	QuoteSubmitted QuoteStatus = "submitted"
	QuoteReviewed  QuoteStatus = "reviewed"
	QuotePriced    QuoteStatus = "priced"
	QuoteAccepted  QuoteStatus = "accepted"
	QuoteRejected  QuoteStatus = "rejected"
)

var validQuoteTransitions = map[QuoteStatus][]QuoteStatus{
	QuoteSubmitted: {QuoteReviewed, QuoteRejected},
	QuoteReviewed:  {QuotePriced, QuoteRejected},
	QuotePriced:    {QuoteAccepted, QuoteRejected},
}

var ErrQuoteNotFound = errors.New("quote not found")

// CanTransitionTo reports whether a transition from the current status to next is valid.
func (s QuoteStatus) CanTransitionTo(next QuoteStatus) bool {
	for _, allowed := range validQuoteTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Quote is a quotation request. The quotation page is public, so UserID may
// be empty when an anonymous visitor submits one.
type Quote struct {
	ID          string      `json:"id"`
	UserID      string      `json:"user_id,omitempty"`
	ContactName string      `json:"contact_name"`
	Email       string      `json:"email"`
	Phone       string      `json:"phone,omitempty"`
	CompanyName string      `json:"company_name,omitempty"`
	Items       []OrderItem `json:"items"`
	Message     string      `json:"message,omitempty"`
	QuotedPrice float64     `json:"quoted_price,omitempty"`
	Status      QuoteStatus `json:"status"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}
