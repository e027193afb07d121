package payment

import (
	"context"
	"errors"
)

type Status string

const (
	StatusPending    Status = "pending"
	StatusSuccessful Status = "successful"
	StatusFailed     Status = "failed"
)

var ErrGateway = errors.New("payment gateway error")

// Charge is the provider-agnostic view of a payment charge. QRImageURL is
// only set on freshly created PromptPay charges.
type Charge struct {
	ID         string
	Status     Status
	QRImageURL string
}

// Gateway abstracts the payment provider. Any provider able to create a
// QR-scannable source, charge it with a description and return URI, and
// report charge status by id can back this interface.
type Gateway interface {
	CreatePromptPayCharge(ctx context.Context, amountSatang int64, description, returnURI string) (*Charge, error)
	RetrieveCharge(ctx context.Context, chargeID string) (*Charge, error)
}
