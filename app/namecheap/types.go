package namecheap

import (
	"encoding/xml"
)

// CheckResult is the availability verdict for a single domain.
type CheckResult struct {
	Domain       string
	Available    bool
	Premium      bool
	PremiumPrice float64
}

type apiResponse struct {
	XMLName xml.Name `xml:"ApiResponse"`
	Status  string   `xml:"Status,attr"`
	Errors  struct {
		Error []struct {
			Number  string `xml:"Number,attr"`
			Message string `xml:",chardata"`
		} `xml:"Error"`
	} `xml:"Errors"`
	CommandResponse commandResponse `xml:"CommandResponse"`
}

type commandResponse struct {
	DomainCheckResults []domainCheckResult `xml:"DomainCheckResult"`
	DomainCreateResult *domainCreateResult `xml:"DomainCreateResult"`
	UserGetPricing     *userGetPricing     `xml:"UserGetPricingResult"`
}

type domainCheckResult struct {
	Domain                   string  `xml:"Domain,attr"`
	Available                boolStr `xml:"Available,attr"`
	IsPremiumName            boolStr `xml:"IsPremiumName,attr"`
	PremiumRegistrationPrice float64 `xml:"PremiumRegistrationPrice,attr"`
}

type domainCreateResult struct {
	Domain     string  `xml:"Domain,attr"`
	Registered boolStr `xml:"Registered,attr"`
}

type userGetPricing struct {
	ProductTypes []struct {
		Name       string `xml:"Name,attr"`
		Categories []struct {
			Name     string `xml:"Name,attr"`
			Products []struct {
				Name   string `xml:"Name,attr"`
				Prices []struct {
					Duration int     `xml:"Duration,attr"`
					Price    float64 `xml:"Price,attr"`
				} `xml:"Price"`
			} `xml:"Product"`
		} `xml:"ProductCategory"`
	} `xml:"ProductType"`
}

// Namecheap encodes booleans as the strings "true"/"false" in attributes.
type boolStr bool

func (b *boolStr) UnmarshalXMLAttr(attr xml.Attr) error {
	*b = boolStr(attr.Value == "true" || attr.Value == "TRUE")
	return nil
}
