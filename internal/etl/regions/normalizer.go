// Package regions converges the region spellings used by the different
// sources onto the canonical names the transformed collections are keyed by.
package regions

import "strings"

// Rule is one substring substitution. Rules run in slice order: full-name
// rules must precede the generic suffix rules, otherwise "Республика
// Карелия" would first be mangled by the "Республика " cut applied to
// republics that keep the word in their canonical name.
type Rule struct {
	Pattern     string
	Replacement string
}

// DefaultRules covers the spellings observed in the bulletin, the external
// mirror and the rosstat population tables.
func DefaultRules() []Rule {
	return []Rule{
		{"Республика Карелия", "Карелия"},
		{"Республика Коми", "Коми"},
		{"Республика Адыгея", "Адыгея"},
		{"Республика Калмыкия", "Калмыкия"},
		{"Республика Крым", "Крым"},
		{"Республика Дагестан", "Дагестан"},
		{"Республика Ингушетия", "Ингушетия"},
		{"Кабардино-Балкарская Республика", "Кабардино-Балкария"},
		{"Карачаево-Черкесская Республика", "Карачаево-Черкесия"},
		{"Республика Северная Осетия — Алания", "Северная Осетия"},
		{"Республика Северная Осетия - Алания", "Северная Осетия"},
		{"Чеченская Республика", "Чечня"},
		{"Республика Марий Эл", "Марий Эл"},
		{"Республика Мордовия", "Мордовия"},
		{"Республика Татарстан", "Татарстан"},
		{"Удмуртская Республика", "Удмуртия"},
		{"Чувашская Республика", "Чувашия"},
		{"Республика Башкортостан", "Башкортостан"},
		{"Республика Алтай", "Горный Алтай"},
		{"Республика Тыва", "Тыва"},
		{"Республика Хакасия", "Хакасия"},
		{"Республика Бурятия", "Бурятия"},
		{"Республика Саха (Якутия)", "Саха (Якутия)"},
		{"Ханты-Мансийский автономный округ — Югра", "ХМАО — Югра"},
		{"Ханты-Мансийский автономный округ - Югра", "ХМАО — Югра"},
		{"Еврейская автономная область", "Еврейская АО"},
		{"г. Москва", "Москва"},
		{"г. Санкт-Петербург", "Санкт-Петербург"},
		{"г. Севастополь", "Севастополь"},
		// generic suffixes, only after the full names above
		{"область", "обл."},
		{"автономный округ", "АО"},
	}
}

// Normalizer applies an ordered rule list. The zero value is unusable; rules
// are passed explicitly so tests can substitute their own table.
type Normalizer struct {
	rules []Rule
}

func NewNormalizer(rules []Rule) *Normalizer {
	return &Normalizer{rules: rules}
}

// Normalize maps a raw source region name to its canonical form. Canonical
// input is a fixed point: no rule matches an already converged name.
func (n *Normalizer) Normalize(raw string) string {
	name := strings.TrimSpace(raw)
	for _, rule := range n.rules {
		name = strings.ReplaceAll(name, rule.Pattern, rule.Replacement)
	}
	return strings.TrimSpace(name)
}
