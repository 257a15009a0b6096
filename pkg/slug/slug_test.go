package slug_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jannahweb/jannah-os-api/pkg/slug"
)

func TestMake(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"simple", "Boulangerie Martin", "boulangerie-martin"},
		{"accents", "Café de l'Été", "cafe-de-l-ete"},
		{"cedille", "Maçonnerie Générale", "maconnerie-generale"},
		{"ponctuation", "SARL  Dupont & Fils !", "sarl-dupont-fils"},
		{"chiffres", "Studio 21", "studio-21"},
		{"vide", "", ""},
		{"que des symboles", "***", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, slug.Make(tc.in))
		})
	}
}

// Le slug doit être stable : deux appels sur le même nom produisent le même identifiant.
func TestMake_Deterministe(t *testing.T) {
	assert.Equal(t, slug.Make("Pâtisserie Aïcha"), slug.Make("Pâtisserie Aïcha"))
}
