package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

type sentMail struct {
	To      string
	Subject string
	Body    string
}

type fakeMailer struct {
	mu   sync.Mutex
	sent []sentMail
	fail bool
}

func (m *fakeMailer) SendHTMLEmail(to, subject, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail {
		return errors.New("smtp unavailable")
	}
	m.sent = append(m.sent, sentMail{To: to, Subject: subject, Body: body})
	return nil
}

func (m *fakeMailer) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sent)
}

type fakeGateway struct {
	fail     bool
	created  []int64
	validSig string
}

func (g *fakeGateway) CreateOrder(_ context.Context, amountMinor int64, receipt string) (*GatewayOrder, error) {
	if g.fail {
		return nil, errors.New("gateway down")
	}
	g.created = append(g.created, amountMinor)
	return &GatewayOrder{
		ID:       fmt.Sprintf("order_rzp_%d", len(g.created)),
		Amount:   amountMinor,
		Currency: GatewayCurrency,
		Receipt:  receipt,
	}, nil
}

func (g *fakeGateway) VerifySignature(_, _, signature string) bool {
	return signature != "" && signature == g.validSig
}

func (g *fakeGateway) KeyID() string { return "rzp_test_key" }
