package handlers

import "net/http"

// Avatar is a preset avatar offered at sign-up.
type Avatar struct {
	ID   string `json:"id"`
	URL  string `json:"url"`
	Name string `json:"name"`
}

var avatars = []Avatar{
	{ID: "1", URL: "https://api.dicebear.com/7.x/bottts/svg?seed=happy", Name: "Happy Robot"},
	{ID: "2", URL: "https://api.dicebear.com/7.x/bottts/svg?seed=sunny", Name: "Sunny Robot"},
	{ID: "3", URL: "https://api.dicebear.com/7.x/bottts/svg?seed=cool", Name: "Cool Robot"},
	{ID: "4", URL: "https://api.dicebear.com/7.x/bottts/svg?seed=star", Name: "Star Robot"},
	{ID: "5", URL: "https://api.dicebear.com/7.x/bottts/svg?seed=heart", Name: "Heart Robot"},
	{ID: "6", URL: "https://api.dicebear.com/7.x/bottts/svg?seed=flower", Name: "Flower Robot"},
	{ID: "7", URL: "https://api.dicebear.com/7.x/fun-emoji/svg?seed=happy", Name: "Happy Face"},
	{ID: "8", URL: "https://api.dicebear.com/7.x/fun-emoji/svg?seed=smile", Name: "Smiley Face"},
	{ID: "9", URL: "https://api.dicebear.com/7.x/fun-emoji/svg?seed=cool", Name: "Cool Face"},
	{ID: "10", URL: "https://api.dicebear.com/7.x/fun-emoji/svg?seed=star", Name: "Star Face"},
	{ID: "11", URL: "https://api.dicebear.com/7.x/thumbs/svg?seed=cat", Name: "Cat"},
	{ID: "12", URL: "https://api.dicebear.com/7.x/thumbs/svg?seed=dog", Name: "Dog"},
}

// Avatars handles GET /api/v1/avatars
func Avatars(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, avatars)
}

// Health handles GET /api/v1/health
func Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}
