package models

type Country struct {
	ID   int64  `json:"id"`
	Code string `json:"code"`
	Name string `json:"name"`
}

type Region struct {
	ID        int64  `json:"id"`
	CountryID int64  `json:"country_id"`
	Name      string `json:"name"`
	Code      string `json:"code,omitempty"`
}

type Address struct {
	ID            int64  `json:"id"`
	RegionID      int64  `json:"region_id"`
	City          string `json:"city"`
	StreetAddress string `json:"street_address,omitempty"`
	PostalCode    string `json:"postal_code,omitempty"`
}

// AddressInput is the address part of registration and profile forms.
type AddressInput struct {
	CountryID     int64  `json:"country_id" validate:"required,gt=0"`
	RegionID      int64  `json:"region_id" validate:"required,gt=0"`
	City          string `json:"city" validate:"required,min=3,max=30"`
	StreetAddress string `json:"street_address,omitempty" validate:"omitempty,min=10,max=100"`
	PostalCode    string `json:"postal_code,omitempty" validate:"omitempty,min=5,max=10"`
}

func (a AddressInput) ToAddress() *Address {
	return &Address{
		RegionID:      a.RegionID,
		City:          a.City,
		StreetAddress: a.StreetAddress,
		PostalCode:    a.PostalCode,
	}
}
