package kernel

// Address is a shipping address. Fields are free-form and carry no
// cross-field rules.
type Address struct {
	street     string
	city       string
	country    string
	postalCode string
}

func NewAddress(street, city, country, postalCode string) Address {
	return Address{
		street:     street,
		city:       city,
		country:    country,
		postalCode: postalCode,
	}
}

func (a Address) Street() string     { return a.street }
func (a Address) City() string       { return a.city }
func (a Address) Country() string    { return a.country }
func (a Address) PostalCode() string { return a.postalCode }
