package billing_test

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jannahweb/jannah-os-api/internal/domain/entity"
	"github.com/jannahweb/jannah-os-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Doubles de test en mémoire pour les ports de persistance
// ──────────────────────────────────────────────────────────────────────────────

type fakeClientRepo struct {
	clients map[string]*entity.Client
	calls   int
}

func newFakeClientRepo(clients ...*entity.Client) *fakeClientRepo {
	r := &fakeClientRepo{clients: map[string]*entity.Client{}}
	for _, c := range clients {
		r.clients[c.ID] = c
	}
	return r
}

func (r *fakeClientRepo) Create(c *entity.Client) error {
	r.clients[c.ID] = c
	return nil
}

func (r *fakeClientRepo) GetByID(id string) (*entity.Client, error) {
	r.calls++
	return r.clients[id], nil
}

func (r *fakeClientRepo) GetBySlug(slug string) (*entity.Client, error) {
	for _, c := range r.clients {
		if c.Slug == slug {
			return c, nil
		}
	}
	return nil, nil
}

func (r *fakeClientRepo) List(repository.ClientFilter) ([]*entity.Client, error) {
	out := make([]*entity.Client, 0, len(r.clients))
	for _, c := range r.clients {
		out = append(out, c)
	}
	return out, nil
}

func (r *fakeClientRepo) Update(c *entity.Client) error {
	r.clients[c.ID] = c
	return nil
}

func (r *fakeClientRepo) Delete(id string) error {
	delete(r.clients, id)
	return nil
}

type fakeQuoteRepo struct {
	quotes      map[string]*entity.Quote
	items       map[string][]*entity.QuoteItem
	createCalls int
}

func newFakeQuoteRepo(quotes ...*entity.Quote) *fakeQuoteRepo {
	r := &fakeQuoteRepo{
		quotes: map[string]*entity.Quote{},
		items:  map[string][]*entity.QuoteItem{},
	}
	for _, q := range quotes {
		r.quotes[q.ID] = q
	}
	return r
}

func (r *fakeQuoteRepo) Create(q *entity.Quote, items []*entity.QuoteItem) error {
	r.createCalls++
	r.quotes[q.ID] = q
	r.items[q.ID] = items
	return nil
}

func (r *fakeQuoteRepo) GetByID(id string) (*entity.Quote, error) {
	return r.quotes[id], nil
}

func (r *fakeQuoteRepo) GetItemsByQuoteID(quoteID string) ([]*entity.QuoteItem, error) {
	return r.items[quoteID], nil
}

func (r *fakeQuoteRepo) List(limit, offset int) ([]*entity.Quote, error) {
	out := make([]*entity.Quote, 0, len(r.quotes))
	for _, q := range r.quotes {
		out = append(out, q)
	}
	return out, nil
}

// TransitionStatus reproduit l'UPDATE conditionnel : ne bouge que si le
// statut courant est dans `from`.
func (r *fakeQuoteRepo) TransitionStatus(id string, from []string, to string) (bool, error) {
	q, ok := r.quotes[id]
	if !ok {
		return false, nil
	}
	for _, s := range from {
		if q.Status == s {
			q.Status = to
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeQuoteRepo) Delete(id string) error {
	delete(r.quotes, id)
	delete(r.items, id)
	return nil
}

type fakeInvoiceRepo struct {
	invoices map[string]*entity.Invoice
	seq      int
}

func newFakeInvoiceRepo(invoices ...*entity.Invoice) *fakeInvoiceRepo {
	r := &fakeInvoiceRepo{invoices: map[string]*entity.Invoice{}}
	for _, inv := range invoices {
		r.invoices[inv.ID] = inv
	}
	return r
}

func (r *fakeInvoiceRepo) Create(inv *entity.Invoice) error {
	r.invoices[inv.ID] = inv
	return nil
}

func (r *fakeInvoiceRepo) GetByID(id string) (*entity.Invoice, error) {
	return r.invoices[id], nil
}

func (r *fakeInvoiceRepo) GetByQuoteID(quoteID string) (*entity.Invoice, error) {
	for _, inv := range r.invoices {
		if inv.QuoteID == quoteID {
			return inv, nil
		}
	}
	return nil, nil
}

func (r *fakeInvoiceRepo) List(status string, limit, offset int) ([]*entity.Invoice, error) {
	out := make([]*entity.Invoice, 0, len(r.invoices))
	for _, inv := range r.invoices {
		if status == "" || inv.Status == status {
			out = append(out, inv)
		}
	}
	return out, nil
}

func (r *fakeInvoiceRepo) NextNumber(year int) (string, error) {
	r.seq++
	return fmt.Sprintf("FAC-%d-%03d", year, r.seq), nil
}

func (r *fakeInvoiceRepo) MarkPaid(id string, paidAt time.Time) error {
	inv, ok := r.invoices[id]
	if !ok {
		return errors.New("facture absente")
	}
	inv.Status = entity.InvoiceStatusPaid
	inv.PaidAt = &paidAt
	return nil
}

func (r *fakeInvoiceRepo) MarkOverdue(id string) error {
	inv, ok := r.invoices[id]
	if !ok {
		return errors.New("facture absente")
	}
	inv.Status = entity.InvoiceStatusOverdue
	return nil
}

type fakeNotifRepo struct {
	created []*entity.Notification
}

func (r *fakeNotifRepo) Create(n *entity.Notification) error {
	r.created = append(r.created, n)
	return nil
}

func (r *fakeNotifRepo) List(limit, offset int) ([]*entity.Notification, error) {
	return r.created, nil
}

func (r *fakeNotifRepo) MarkRead(string) error { return nil }
func (r *fakeNotifRepo) MarkAllRead() error    { return nil }
func (r *fakeNotifRepo) DeleteAll() error      { return nil }

// fakeCheckoutProvider enregistre la dernière session demandée.
type fakeCheckoutProvider struct {
	lastInvoiceID string
	lastAmount    decimal.Decimal
	url           string
	err           error
}

func (p *fakeCheckoutProvider) CreateSession(_ context.Context, invoiceID, _ string, amount decimal.Decimal) (string, error) {
	p.lastInvoiceID = invoiceID
	p.lastAmount = amount
	if p.err != nil {
		return "", p.err
	}
	return p.url, nil
}
