package domain

import "strings"

// ProblemOther is the catalog entry that requires a free-text description.
const ProblemOther = "Autre"

// problemOtherLegacy is the label older clients send for ProblemOther.
const problemOtherLegacy = "Autre / Other"

var problems = []string{
	"Crevaison",
	"Freins défectueux",
	"Chaîne cassée",
	"Dérailleur",
	"Roue voilée",
	"Pneus usés",
	"Entretien général",
	ProblemOther,
}

// Problems returns the bike problems offered on the booking form.
func Problems() []string {
	out := make([]string, len(problems))
	copy(out, problems)
	return out
}

// IsOtherProblem reports whether p selects the free-text entry.
func IsOtherProblem(p string) bool {
	return p == ProblemOther || strings.EqualFold(p, problemOtherLegacy)
}

func IsCatalogProblem(p string) bool {
	if IsOtherProblem(p) {
		return true
	}
	for _, c := range problems {
		if c == p {
			return true
		}
	}
	return false
}
