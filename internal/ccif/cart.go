package ccif

// Cart is the canonical cart read model. The id carries the last observed
// remote version as a suffix (<uuid>-<version>) so follow-up mutations can
// supply the optimistic concurrency token without an extra read.
type Cart struct {
	ID               string   `json:"id"`
	Currency         string   `json:"currency,omitempty"`
	CreatedDate      string   `json:"createdDate,omitempty"`
	LastModifiedDate string   `json:"lastModifiedDate,omitempty"`
	Payment          *Payment `json:"payment,omitempty"`
}

// Payment is the canonical payment read model.
type Payment struct {
	ID               string     `json:"id"`
	Method           string     `json:"method,omitempty"`
	Amount           MoneyValue `json:"amount"`
	Token            string     `json:"token,omitempty"`
	StatusCode       string     `json:"statusCode,omitempty"`
	CreatedDate      string     `json:"createdDate,omitempty"`
	LastModifiedDate string     `json:"lastModifiedDate,omitempty"`
}

// PaymentDraft is the caller-supplied shape for creating a payment.
type PaymentDraft struct {
	Method   string     `json:"method" validate:"required"`
	Amount   MoneyValue `json:"amount" validate:"required"`
	Token    string     `json:"token,omitempty"`
	Customer string     `json:"customer,omitempty"`
}

// PaymentMethod describes one way a cart can be paid.
type PaymentMethod struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// MoneyValue is an amount in minor currency units plus its currency code.
type MoneyValue struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency" validate:"omitempty,len=3"`
}
