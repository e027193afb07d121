package payment

import (
	"context"
	"fmt"

	"github.com/omise/omise-go"
	"github.com/omise/omise-go/operations"
)

// OmiseGateway drives the PromptPay flow against Omise. The underlying
// client does not take a context; calls run to the client's own timeout.
type OmiseGateway struct {
	client *omise.Client
}

func NewOmiseGateway(publicKey, secretKey string) (*OmiseGateway, error) {
	client, err := omise.NewClient(publicKey, secretKey)
	if err != nil {
		return nil, fmt.Errorf("omise client: %w", err)
	}
	return &OmiseGateway{client: client}, nil
}

func (g *OmiseGateway) CreatePromptPayCharge(ctx context.Context, amountSatang int64, description, returnURI string) (*Charge, error) {
	source := &omise.Source{}
	if err := g.client.Do(source, &operations.CreateSource{
		Type:     "promptpay",
		Amount:   amountSatang,
		Currency: "thb",
	}); err != nil {
		return nil, fmt.Errorf("%w: create source: %v", ErrGateway, err)
	}

	charge := &omise.Charge{}
	if err := g.client.Do(charge, &operations.CreateCharge{
		Amount:      amountSatang,
		Currency:    "thb",
		Source:      source.ID,
		ReturnURI:   returnURI,
		Description: description,
	}); err != nil {
		return nil, fmt.Errorf("%w: create charge: %v", ErrGateway, err)
	}

	return fromOmise(charge), nil
}

func (g *OmiseGateway) RetrieveCharge(ctx context.Context, chargeID string) (*Charge, error) {
	charge := &omise.Charge{}
	if err := g.client.Do(charge, &operations.RetrieveCharge{ChargeID: chargeID}); err != nil {
		return nil, fmt.Errorf("%w: retrieve charge %s: %v", ErrGateway, chargeID, err)
	}
	return fromOmise(charge), nil
}

func fromOmise(c *omise.Charge) *Charge {
	out := &Charge{ID: c.ID, Status: mapStatus(c.Status)}
	if c.Source != nil && c.Source.ScannableCode != nil && c.Source.ScannableCode.Image != nil {
		out.QRImageURL = c.Source.ScannableCode.Image.DownloadURI
	}
	return out
}

func mapStatus(s omise.ChargeStatus) Status {
	switch s {
	case omise.ChargeSuccessful:
		return StatusSuccessful
	case omise.ChargeFailed, omise.ChargeStatus("expired"), omise.ChargeReversed:
		return StatusFailed
	default:
		return StatusPending
	}
}
