package catalog

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	cases := []struct {
		title string
		want  string
	}{
		{"Wireless Keyboard", "wireless-keyboard"},
		{"  USB-C Hub (4 Port)  ", "usb-c-hub-4-port"},
		{"ALL CAPS", "all-caps"},
		{"already-a-slug", "already-a-slug"},
		{"trailing! ", "trailing"},
		{"---", ""},
		{"Café au lait", "caf-au-lait"},
	}
	for _, tc := range cases {
		t.Run(tc.title, func(t *testing.T) {
			assert.Equal(t, tc.want, Slugify(tc.title))
		})
	}
}

func TestApplySaleDiscount(t *testing.T) {
	t.Run("override replaces the declared discount", func(t *testing.T) {
		p := &Product{
			Discount: 15,
			Sale:     &SaleOverride{SaleID: uuid.New(), Discount: 40},
		}
		applySaleDiscount(p)
		assert.Equal(t, 40, p.Discount)
		assert.Nil(t, p.Sale)
	})

	t.Run("no override keeps the declared discount", func(t *testing.T) {
		p := &Product{Discount: 15}
		applySaleDiscount(p)
		assert.Equal(t, 15, p.Discount)
	})
}

func TestParseCategoryIDs(t *testing.T) {
	a := uuid.New()
	b := uuid.New()

	ids, err := parseCategoryIDs([]string{a.String(), b.String()})
	assert.NoError(t, err)
	assert.Equal(t, []uuid.UUID{a, b}, ids)

	_, err = parseCategoryIDs([]string{"bogus"})
	assert.Error(t, err)

	ids, err = parseCategoryIDs(nil)
	assert.NoError(t, err)
	assert.Nil(t, ids)
}
