package models

import (
	"regexp"
	"strings"
)

// Category is one of the six canonical inbox categories. Every classified
// message carries exactly one of these values, never free text.
type Category string

const (
	CategoryImportant  Category = "Important"
	CategoryPromotions Category = "Promotions"
	CategorySocial     Category = "Social"
	CategoryMarketing  Category = "Marketing"
	CategorySpam       Category = "Spam"
	CategoryGeneral    Category = "General"
)

// Categories returns the fixed catalog in display order.
func Categories() []Category {
	return []Category{
		CategoryImportant,
		CategoryPromotions,
		CategorySocial,
		CategoryMarketing,
		CategorySpam,
		CategoryGeneral,
	}
}

var nonAlpha = regexp.MustCompile(`[^a-zA-Z]`)

// categorySynonyms maps cleaned model answers to canonical categories
var categorySynonyms = map[string]Category{
	"important":   CategoryImportant,
	"promotions":  CategoryPromotions,
	"promotional": CategoryPromotions,
	"promotion":   CategoryPromotions,
	"social":      CategorySocial,
	"marketing":   CategoryMarketing,
	"spam":        CategorySpam,
	"junk":        CategorySpam,
	"newsletter":  CategoryMarketing,
	"general":     CategoryGeneral,
}

// NormalizeCategory maps raw model output to a canonical category. It strips
// all non-alphabetic characters, lower-cases the remainder and looks it up in
// the synonym table. Anything unknown or empty maps to General, so the result
// is always one of the six canonical values.
func NormalizeCategory(raw string) Category {
	cleaned := strings.ToLower(nonAlpha.ReplaceAllString(raw, ""))
	if category, ok := categorySynonyms[cleaned]; ok {
		return category
	}
	return CategoryGeneral
}
