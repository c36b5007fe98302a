// Package payment holds payment methods and their kind-specific option
// records. A Method is a user-owned handle naming which channel backs a
// transaction; exactly one concrete option record (credit card or paypal
// account) exists per method, and the Resolver is the single polymorphic seam
// that maps a kind onto the service owning that record.
package payment

import "time"

type Kind string

const (
	KindCreditCard Kind = "CREDIT_CARD"
	KindPaypal     Kind = "PAYPAL"
)

type Method struct {
	ID        string    `json:"id" db:"payment_method_id"`
	UserID    string    `json:"userId" db:"user_id"`
	Kind      Kind      `json:"kind" db:"kind"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// Option is the uniform view over the kind-specific detail records.
type Option interface {
	OptionKind() Kind
	Method() string
}

type CreditCard struct {
	ID              string `json:"id" db:"credit_card_id"`
	PaymentMethodID string `json:"paymentMethodId" db:"payment_method_id"`
	Holder          string `json:"holder" db:"holder"`
	Number          string `json:"number" db:"number"`
	ExpiryMonth     int    `json:"expiryMonth" db:"expiry_month"`
	ExpiryYear      int    `json:"expiryYear" db:"expiry_year"`
}

func (c CreditCard) OptionKind() Kind { return KindCreditCard }
func (c CreditCard) Method() string   { return c.PaymentMethodID }

type PaypalAccount struct {
	ID              string `json:"id" db:"paypal_account_id"`
	PaymentMethodID string `json:"paymentMethodId" db:"payment_method_id"`
	Email           string `json:"email" db:"email"`
}

func (p PaypalAccount) OptionKind() Kind { return KindPaypal }
func (p PaypalAccount) Method() string   { return p.PaymentMethodID }

type CreditCardNew struct {
	Holder      string `json:"holder" validate:"required"`
	Number      string `json:"number" validate:"required,credit_card"`
	ExpiryMonth int    `json:"expiryMonth" validate:"required,gte=1,lte=12"`
	ExpiryYear  int    `json:"expiryYear" validate:"required,gte=2000"`
}

type PaypalNew struct {
	Email string `json:"email" validate:"required,email"`
}

// MethodNew carries exactly one detail payload, matching its kind.
type MethodNew struct {
	Kind       Kind           `json:"kind" validate:"required"`
	CreditCard *CreditCardNew `json:"creditCard" validate:"omitempty"`
	Paypal     *PaypalNew     `json:"paypal" validate:"omitempty"`
}
