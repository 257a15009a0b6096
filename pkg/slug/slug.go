// Package slug dérive des identifiants URL-safe à partir de noms de clients.
package slug

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// foldDiacritics décompose en NFD puis supprime les marques combinantes
// ("Développement" -> "Developpement").
var foldDiacritics = transform.Chain(
	norm.NFD,
	runes.Remove(runes.In(unicode.Mn)),
	norm.NFC,
)

// Make dérive un slug URL-safe : accents pliés, minuscules, tout caractère
// hors [a-z0-9] remplacé par un tiret, tirets consécutifs fusionnés.
// Ex : "Café de l'Été" -> "cafe-de-l-ete".
func Make(name string) string {
	folded, _, err := transform.String(foldDiacritics, name)
	if err != nil {
		folded = name
	}
	folded = strings.ToLower(folded)

	var b strings.Builder
	b.Grow(len(folded))
	prevDash := true // évite un tiret en tête
	for _, r := range folded {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			prevDash = false
		default:
			if !prevDash {
				b.WriteByte('-')
				prevDash = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}
