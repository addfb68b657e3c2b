package domains

import (
	"context"
	"log/slog"

	"github.com/fabriziochiappini/adseo/app/namecheap"
)

// mockPrice is returned for every domain when registrar credentials are
// absent, clearly flagged so the UI can tell placeholder data apart.
const mockPrice = 9.98

// Registrar is the registrar collaborator surface the checker needs.
type Registrar interface {
	Configured() bool
	Check(ctx context.Context, domain string) (*namecheap.CheckResult, error)
	GetTLDPrice(ctx context.Context, tld string) (float64, error)
}

var _ Registrar = (*namecheap.Client)(nil)

// Availability is the per-domain result of an availability check.
type Availability struct {
	Domain    string  `json:"domain"`
	Available bool    `json:"available"`
	Price     float64 `json:"price"`
	Currency  string  `json:"currency"`
	Premium   bool    `json:"premium"`
	Mock      bool    `json:"mock,omitempty"`
	Error     string  `json:"error,omitempty"`
}

// Checker queries the registrar one domain at a time. Sequential on
// purpose: the registrar rate-limits aggressively and candidate lists
// are short.
type Checker struct {
	registrar Registrar
}

func NewChecker(registrar Registrar) *Checker {
	return &Checker{registrar: registrar}
}

// CheckAll resolves availability and price for each candidate. A
// failing domain is recorded in its own result and does not abort the
// rest of the batch.
func (c *Checker) CheckAll(ctx context.Context, candidates []string) []Availability {
	results := make([]Availability, 0, len(candidates))

	if !c.registrar.Configured() {
		slog.Warn("Registrar credentials missing, returning mock availability results")
		for _, domain := range candidates {
			results = append(results, Availability{
				Domain:    domain,
				Available: true,
				Price:     mockPrice,
				Currency:  "USD",
				Mock:      true,
			})
		}
		return results
	}

	// Standard domains share a price per TLD; look each suffix up once.
	tldPrices := make(map[string]float64)

	for _, domain := range candidates {
		result := Availability{Domain: domain, Currency: "USD"}

		check, err := c.registrar.Check(ctx, domain)
		if err != nil {
			slog.Error("Domain availability check failed", "domain", domain, "error", err)
			result.Error = err.Error()
			results = append(results, result)
			continue
		}

		result.Available = check.Available
		result.Premium = check.Premium

		if check.Available {
			if check.Premium {
				result.Price = check.PremiumPrice
			} else {
				result.Price = c.priceFor(ctx, domain, tldPrices, &result)
			}
		}

		results = append(results, result)
	}

	return results
}

func (c *Checker) priceFor(ctx context.Context, domain string, tldPrices map[string]float64, result *Availability) float64 {
	tld := namecheap.TLD(domain)
	if tld == "" {
		result.Error = "cannot determine TLD for pricing"
		return 0
	}

	if price, ok := tldPrices[tld]; ok {
		return price
	}

	price, err := c.registrar.GetTLDPrice(ctx, tld)
	if err != nil {
		slog.Warn("TLD price lookup failed", "tld", tld, "error", err)
		result.Error = err.Error()
		return 0
	}

	tldPrices[tld] = price
	return price
}
