package service

import (
	"sort"
	"strings"

	"github.com/carewell/appointment-service/internal/domain"
)

const (
	maxSuggestions = 3
	keywordScore   = 10
)

// specialtyKeywords maps a condition keyword to substrings of matching
// specialty names. Matching is deliberately coarse: any hit scores the same.
var specialtyKeywords = map[string][]string{
	"heart":     {"cardiology", "cardiac"},
	"skin":      {"dermatology", "dermatologist"},
	"bone":      {"orthopedic", "orthopedics"},
	"child":     {"pediatric", "pediatrics"},
	"brain":     {"neurology", "neurologist"},
	"eye":       {"ophthalmology", "ophthalmologist"},
	"mental":    {"psychiatry", "psychology"},
	"pregnancy": {"obstetrics", "gynecology"},
	"surgery":   {"surgery", "surgical"},
}

// rankSuggestions scores candidates against a free-text condition and returns
// the top three. Only doctors with free slots are considered; a doctor scores
// keywordScore when any keyword present in the condition text maps to a
// substring of the doctor's specialty, zero otherwise. Sorting is stable so
// ties keep input order.
func rankSuggestions(condition string, candidates []domain.DoctorSuggestion) []domain.DoctorSuggestion {
	conditionLower := strings.ToLower(condition)

	suggestions := make([]domain.DoctorSuggestion, 0, len(candidates))
	for _, c := range candidates {
		if c.AvailableSlots <= 0 {
			continue
		}
		c.RelevanceScore = scoreSpecialty(conditionLower, c.Specialty)
		suggestions = append(suggestions, c)
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		if suggestions[i].RelevanceScore != suggestions[j].RelevanceScore {
			return suggestions[i].RelevanceScore > suggestions[j].RelevanceScore
		}
		return suggestions[i].AvailableSlots > suggestions[j].AvailableSlots
	})

	if len(suggestions) > maxSuggestions {
		suggestions = suggestions[:maxSuggestions]
	}
	return suggestions
}

func scoreSpecialty(conditionLower, specialty string) int {
	specialtyLower := strings.ToLower(specialty)
	for keyword, substrings := range specialtyKeywords {
		if !strings.Contains(conditionLower, keyword) {
			continue
		}
		for _, sub := range substrings {
			if strings.Contains(specialtyLower, sub) {
				return keywordScore
			}
		}
	}
	return 0
}
