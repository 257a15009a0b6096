package billing

import "strings"

// Libellés de document dans les noms de fichier PDF.
const (
	labelQuote   = "Devis"
	labelInvoice = "Facture"
)

// SanitizeDocNumber garde uniquement [A-Za-z0-9-] d'un identifiant de
// document avant de l'injecter dans un nom de fichier.
func SanitizeDocNumber(number string) string {
	var b strings.Builder
	b.Grow(len(number))
	for _, r := range number {
		switch {
		case r >= 'A' && r <= 'Z', r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-':
			b.WriteRune(r)
		}
	}
	return b.String()
}

// DocumentFilename construit le nom de fichier d'un PDF généré :
// {Devis|Facture}_{numéro assaini}_{brand}.pdf
// Ex : DocumentFilename("invoice", "INV-2024-001", "Jannah") -> "Facture_INV-2024-001_Jannah.pdf".
func DocumentFilename(kind, number, brand string) string {
	label := labelQuote
	if kind == DocumentKindInvoice {
		label = labelInvoice
	}
	return label + "_" + SanitizeDocNumber(number) + "_" + brand + ".pdf"
}
