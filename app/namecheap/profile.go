package namecheap

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Contact holds the registrant details Namecheap requires for domain
// registration. The same contact is used for the registrant, tech,
// admin and aux-billing roles.
type Contact struct {
	FirstName     string `yaml:"firstName"`
	LastName      string `yaml:"lastName"`
	Address1      string `yaml:"address1"`
	City          string `yaml:"city"`
	StateProvince string `yaml:"stateProvince"`
	PostalCode    string `yaml:"postalCode"`
	Country       string `yaml:"country"`
	Phone         string `yaml:"phone"`
	Email         string `yaml:"email"`
}

// LoadContactProfile reads the registrant contact YAML file. A missing
// file is not an error; registration is simply unavailable then.
func LoadContactProfile(path string) (*Contact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read contact profile: %w", err)
	}

	var contact Contact
	if err := yaml.Unmarshal(data, &contact); err != nil {
		return nil, fmt.Errorf("failed to parse contact profile: %w", err)
	}

	if err := contact.Validate(); err != nil {
		return nil, fmt.Errorf("invalid contact profile %s: %w", path, err)
	}

	return &contact, nil
}

func (c *Contact) Validate() error {
	required := map[string]string{
		"firstName":  c.FirstName,
		"lastName":   c.LastName,
		"address1":   c.Address1,
		"city":       c.City,
		"postalCode": c.PostalCode,
		"country":    c.Country,
		"phone":      c.Phone,
		"email":      c.Email,
	}

	for field, value := range required {
		if value == "" {
			return fmt.Errorf("missing required field %q", field)
		}
	}

	return nil
}
