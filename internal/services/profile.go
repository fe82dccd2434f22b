package services

import "friendsnap-backend/internal/models"

// InterestProfile is the derived interest profile of a user: the union of
// tags and categories across their approved photos. Never persisted,
// recomputed on demand.
type InterestProfile struct {
	Tags       map[string]struct{}
	Categories map[string]struct{}
}

// NewInterestProfile builds a profile from a set of photos.
func NewInterestProfile(photos []models.Photo) InterestProfile {
	p := InterestProfile{
		Tags:       make(map[string]struct{}),
		Categories: make(map[string]struct{}),
	}
	for _, photo := range photos {
		for _, tag := range photo.Tags {
			p.Tags[tag] = struct{}{}
		}
		if photo.Category != "" {
			p.Categories[photo.Category] = struct{}{}
		}
	}
	return p
}

// IsEmpty reports whether the profile carries no interests at all.
func (p InterestProfile) IsEmpty() bool {
	return len(p.Tags) == 0 && len(p.Categories) == 0
}

// categoryPhrase maps a photo category to the interest description shown to
// users. Kept as an ordered slice so explanation order is deterministic.
type categoryPhrase struct {
	category string
	phrase   string
}

// categoryPhrases deliberately has no entry for "other": a shared "other"
// category still scores but produces no explanation text.
var categoryPhrases = []categoryPhrase{
	{models.CategoryAnimals, "You both like animals"},
	{models.CategoryNature, "You both like nature"},
	{models.CategoryFood, "You both like food"},
	{models.CategorySports, "You both like sports"},
	{models.CategoryMusic, "You both like music"},
	{models.CategoryArt, "You both like art"},
	{models.CategoryColors, "You both like colors"},
	{models.CategoryPlaces, "You both like places"},
	{models.CategoryObjects, "You both like similar things"},
}
