package namecheap

import (
	"encoding/xml"
	"testing"
)

const checkResponseXML = `<?xml version="1.0" encoding="utf-8"?>
<ApiResponse Status="OK" xmlns="http://api.namecheap.com/xml.response">
  <Errors />
  <CommandResponse Type="namecheap.domains.check">
    <DomainCheckResult Domain="traslochiroma.com" Available="true" IsPremiumName="false" PremiumRegistrationPrice="0" />
    <DomainCheckResult Domain="premium.io" Available="true" IsPremiumName="true" PremiumRegistrationPrice="103.99" />
  </CommandResponse>
</ApiResponse>`

const errorResponseXML = `<?xml version="1.0" encoding="utf-8"?>
<ApiResponse Status="ERROR">
  <Errors>
    <Error Number="1011102">API Key is invalid or API access has not been enabled</Error>
  </Errors>
  <CommandResponse />
</ApiResponse>`

func TestParseCheckResponse(t *testing.T) {
	var resp apiResponse
	if err := xml.Unmarshal([]byte(checkResponseXML), &resp); err != nil {
		t.Fatalf("Failed to parse check response: %v", err)
	}

	if resp.Status != "OK" {
		t.Errorf("Expected status OK, got %q", resp.Status)
	}

	results := resp.CommandResponse.DomainCheckResults
	if len(results) != 2 {
		t.Fatalf("Expected 2 check results, got %d", len(results))
	}

	if !bool(results[0].Available) {
		t.Error("Expected first domain to be available")
	}
	if bool(results[0].IsPremiumName) {
		t.Error("Expected first domain to not be premium")
	}

	if !bool(results[1].IsPremiumName) {
		t.Error("Expected second domain to be premium")
	}
	if results[1].PremiumRegistrationPrice != 103.99 {
		t.Errorf("Expected premium price 103.99, got %v", results[1].PremiumRegistrationPrice)
	}
}

func TestParseErrorResponse(t *testing.T) {
	var resp apiResponse
	if err := xml.Unmarshal([]byte(errorResponseXML), &resp); err != nil {
		t.Fatalf("Failed to parse error response: %v", err)
	}

	if resp.Status != "ERROR" {
		t.Errorf("Expected status ERROR, got %q", resp.Status)
	}
	if len(resp.Errors.Error) != 1 {
		t.Fatalf("Expected 1 error, got %d", len(resp.Errors.Error))
	}
	if resp.Errors.Error[0].Number != "1011102" {
		t.Errorf("Expected error number 1011102, got %q", resp.Errors.Error[0].Number)
	}
}

func TestSplitDomain(t *testing.T) {
	sld, tld, err := splitDomain("traslochiroma.com")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if sld != "traslochiroma" || tld != "com" {
		t.Errorf("Expected traslochiroma/com, got %s/%s", sld, tld)
	}

	// Multi-label TLDs keep everything after the first dot
	_, tld, err = splitDomain("example.co.uk")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if tld != "co.uk" {
		t.Errorf("Expected co.uk, got %s", tld)
	}

	if _, _, err := splitDomain("nodots"); err == nil {
		t.Error("Expected error for domain without a dot")
	}
	if _, _, err := splitDomain(".com"); err == nil {
		t.Error("Expected error for domain without an SLD")
	}
}

func TestClientConfigured(t *testing.T) {
	c := NewClient("", "", "0.0.0.0", false, nil)
	if c.Configured() {
		t.Error("Client without credentials must not report configured")
	}

	c = NewClient("user", "key", "0.0.0.0", true, nil)
	if !c.Configured() {
		t.Error("Client with credentials must report configured")
	}
	if c.apiURL != sandboxURL {
		t.Errorf("Expected sandbox URL, got %s", c.apiURL)
	}
}

func TestContactValidate(t *testing.T) {
	contact := &Contact{
		FirstName:  "Mario",
		LastName:   "Rossi",
		Address1:   "Via Roma 1",
		City:       "Roma",
		PostalCode: "00100",
		Country:    "IT",
		Phone:      "+39.0612345678",
		Email:      "mario@example.com",
	}
	if err := contact.Validate(); err != nil {
		t.Errorf("Expected valid contact, got %v", err)
	}

	contact.Email = ""
	if err := contact.Validate(); err == nil {
		t.Error("Expected validation error for missing email")
	}
}
