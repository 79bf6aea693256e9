package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAddressValidate(t *testing.T) {
	a := Address{MainNumber: "12", City: "Bogota", ZipCode: "110111", Country: "CO"}
	assert.True(t, a.Validate())

	a.City = "  "
	assert.False(t, a.Validate())
}

func TestFullStreet(t *testing.T) {
	a := Address{NumberPrefix: "N", MainNumber: "12", SecondaryNumber: "34", AdditionalInfo: "Apt 5"}
	assert.Equal(t, "N 12-34 - Apt 5", a.FullStreet())

	b := Address{AdditionalInfo: "Rural route"}
	assert.Equal(t, "Rural route", b.FullStreet())
}

func TestFormatForShipping(t *testing.T) {
	a := Address{
		StreetType:   "Calle",
		MainNumber:   "12",
		Neighborhood: "Chapinero",
		City:         "Bogota",
		ZipCode:      "110111",
		Country:      "CO",
	}
	assert.Equal(t, "Calle 12, Chapinero, Bogota 110111, CO", a.FormatForShipping())
}
