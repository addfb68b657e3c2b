package namecheap

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	productionURL = "https://api.namecheap.com/xml.response"
	sandboxURL    = "https://api.sandbox.namecheap.com/xml.response"
)

// Client talks to the Namecheap XML API. All commands go through a
// single GET endpoint selected by the Command query parameter.
type Client struct {
	apiURL     string
	user       string
	key        string
	clientIP   string
	contact    *Contact
	httpClient *http.Client
}

func NewClient(user, key, clientIP string, sandbox bool, contact *Contact) *Client {
	apiURL := productionURL
	if sandbox {
		apiURL = sandboxURL
	}

	return &Client{
		apiURL:   apiURL,
		user:     user,
		key:      key,
		clientIP: clientIP,
		contact:  contact,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (c *Client) Configured() bool {
	return c.user != "" && c.key != ""
}

// Check queries availability for a single domain. Premium domains carry
// their premium registration price in the response.
func (c *Client) Check(ctx context.Context, domain string) (*CheckResult, error) {
	resp, err := c.call(ctx, "namecheap.domains.check", url.Values{
		"DomainList": {domain},
	})
	if err != nil {
		return nil, fmt.Errorf("domain check failed: %w", err)
	}

	if len(resp.CommandResponse.DomainCheckResults) == 0 {
		return nil, fmt.Errorf("domain check returned no result for %s", domain)
	}

	r := resp.CommandResponse.DomainCheckResults[0]
	return &CheckResult{
		Domain:       r.Domain,
		Available:    bool(r.Available),
		Premium:      bool(r.IsPremiumName),
		PremiumPrice: r.PremiumRegistrationPrice,
	}, nil
}

// GetTLDPrice returns the 1-year registration price for a TLD suffix
// (without the leading dot). Needed for non-premium domains, whose
// check response carries no price.
func (c *Client) GetTLDPrice(ctx context.Context, tld string) (float64, error) {
	resp, err := c.call(ctx, "namecheap.users.getPricing", url.Values{
		"ProductType":     {"DOMAIN"},
		"ProductCategory": {"REGISTER"},
		"ProductName":     {strings.ToUpper(tld)},
	})
	if err != nil {
		return 0, fmt.Errorf("pricing lookup failed: %w", err)
	}

	pricing := resp.CommandResponse.UserGetPricing
	if pricing == nil {
		return 0, fmt.Errorf("pricing lookup returned no result for .%s", tld)
	}

	for _, pt := range pricing.ProductTypes {
		for _, cat := range pt.Categories {
			for _, product := range cat.Products {
				if !strings.EqualFold(product.Name, tld) {
					continue
				}
				for _, price := range product.Prices {
					if price.Duration == 1 {
						return price.Price, nil
					}
				}
			}
		}
	}

	return 0, fmt.Errorf("no 1-year price found for .%s", tld)
}

// Register purchases a domain for one year using the configured
// registrant contact for all four contact roles.
func (c *Client) Register(ctx context.Context, domain string) error {
	if c.contact == nil {
		return fmt.Errorf("no registrant contact profile configured")
	}

	params := url.Values{
		"DomainName": {domain},
		"Years":      {"1"},
	}
	for _, role := range []string{"Registrant", "Tech", "Admin", "AuxBilling"} {
		params.Set(role+"FirstName", c.contact.FirstName)
		params.Set(role+"LastName", c.contact.LastName)
		params.Set(role+"Address1", c.contact.Address1)
		params.Set(role+"City", c.contact.City)
		params.Set(role+"StateProvince", c.contact.StateProvince)
		params.Set(role+"PostalCode", c.contact.PostalCode)
		params.Set(role+"Country", c.contact.Country)
		params.Set(role+"Phone", c.contact.Phone)
		params.Set(role+"EmailAddress", c.contact.Email)
	}

	resp, err := c.call(ctx, "namecheap.domains.create", params)
	if err != nil {
		return fmt.Errorf("domain registration failed: %w", err)
	}

	created := resp.CommandResponse.DomainCreateResult
	if created == nil || !bool(created.Registered) {
		return fmt.Errorf("registrar did not confirm registration of %s", domain)
	}

	return nil
}

// SetCustomDNS points the domain at the given nameservers.
func (c *Client) SetCustomDNS(ctx context.Context, domain string, nameservers []string) error {
	sld, tld, err := splitDomain(domain)
	if err != nil {
		return err
	}

	_, err = c.call(ctx, "namecheap.domains.dns.setCustom", url.Values{
		"SLD":         {sld},
		"TLD":         {tld},
		"Nameservers": {strings.Join(nameservers, ",")},
	})
	if err != nil {
		return fmt.Errorf("DNS update failed: %w", err)
	}

	return nil
}

func (c *Client) call(ctx context.Context, command string, params url.Values) (*apiResponse, error) {
	if !c.Configured() {
		return nil, fmt.Errorf("missing Namecheap credentials")
	}

	query := url.Values{
		"ApiUser":  {c.user},
		"ApiKey":   {c.key},
		"UserName": {c.user},
		"ClientIp": {c.clientIP},
		"Command":  {command},
	}
	for key, values := range params {
		for _, v := range values {
			query.Add(key, v)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiURL+"?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	httpResp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error: %d %s", httpResp.StatusCode, httpResp.Status)
	}

	data, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	var resp apiResponse
	if err := xml.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse XML response: %w", err)
	}

	if !strings.EqualFold(resp.Status, "OK") {
		if len(resp.Errors.Error) > 0 {
			e := resp.Errors.Error[0]
			return nil, fmt.Errorf("API error %s: %s", e.Number, strings.TrimSpace(e.Message))
		}
		return nil, fmt.Errorf("API returned status %q", resp.Status)
	}

	return &resp, nil
}

func splitDomain(domain string) (sld, tld string, err error) {
	idx := strings.Index(domain, ".")
	if idx <= 0 || idx == len(domain)-1 {
		return "", "", fmt.Errorf("invalid domain format: %q", domain)
	}
	return domain[:idx], domain[idx+1:], nil
}

// TLD extracts the suffix after the first dot, used for pricing lookups.
func TLD(domain string) string {
	_, tld, err := splitDomain(domain)
	if err != nil {
		return ""
	}
	return tld
}
