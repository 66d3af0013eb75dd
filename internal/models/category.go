package models

// Category is the board a topic belongs to.
type Category string

const (
	CategoryGames    Category = "games"
	CategoryIndustry Category = "industry"
	CategoryOfftopic Category = "offtopic"

	// CategoryAll is only meaningful as a query filter.
	CategoryAll Category = "all"
)

var categoryDescriptions = map[Category]string{
	CategoryGames:    "Games, releases and everything you play",
	CategoryIndustry: "Studios, platforms and the business of games",
	CategoryOfftopic: "Anything else",
}

// Categories lists the boards in display order.
func Categories() []Category {
	return []Category{CategoryGames, CategoryIndustry, CategoryOfftopic}
}

func (c Category) Valid() bool {
	_, ok := categoryDescriptions[c]
	return ok
}

func (c Category) Description() string {
	return categoryDescriptions[c]
}

// SortOrder selects how topic listings are ordered.
type SortOrder string

const (
	SortNewest    SortOrder = "dateNewest"
	SortOldest    SortOrder = "dateOldest"
	SortMostLiked SortOrder = "mostLiked"
)

// Language is the two-letter UI language code.
type Language string

const (
	LanguageEnglish Language = "en"
	LanguageRussian Language = "ru"
)

func (l Language) Valid() bool {
	return l == LanguageEnglish || l == LanguageRussian
}
