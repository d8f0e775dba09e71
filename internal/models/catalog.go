package models

import (
	"strings"
	"unicode"
)

type Tag struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Icon  string `json:"icon"`
	Color string `json:"color"`
}

var symptomCatalog = []Tag{
	{ID: "cramps", Label: "Cramps", Icon: "🩸", Color: "#FF4444"},
	{ID: "headache", Label: "Headache", Icon: "🤕", Color: "#FFA500"},
	{ID: "bloating", Label: "Bloating", Icon: "🎈", Color: "#3498DB"},
	{ID: "fatigue", Label: "Fatigue", Icon: "😴", Color: "#95A5A6"},
	{ID: "breast_tenderness", Label: "Breast tenderness", Icon: "💔", Color: "#E91E63"},
	{ID: "acne", Label: "Acne", Icon: "🔴", Color: "#E74C3C"},
	{ID: "back_pain", Label: "Back pain", Icon: "🦴", Color: "#8E6E53"},
	{ID: "nausea", Label: "Nausea", Icon: "🤢", Color: "#7CB342"},
	{ID: "spotting", Label: "Spotting", Icon: "🩹", Color: "#C55A7A"},
	{ID: "irritability", Label: "Irritability", Icon: "😤", Color: "#FF7043"},
	{ID: "insomnia", Label: "Insomnia", Icon: "🌙", Color: "#5C6BC0"},
	{ID: "food_cravings", Label: "Food cravings", Icon: "🍫", Color: "#A1887F"},
	{ID: "diarrhea", Label: "Diarrhea", Icon: "🚽", Color: "#26A69A"},
	{ID: "constipation", Label: "Constipation", Icon: "🪨", Color: "#8D6E63"},
}

var moodCatalog = []Tag{
	{ID: "happy", Label: "Happy", Icon: "😊", Color: "#FFD54F"},
	{ID: "calm", Label: "Calm", Icon: "😌", Color: "#81C784"},
	{ID: "energetic", Label: "Energetic", Icon: "⚡", Color: "#FFB74D"},
	{ID: "sensitive", Label: "Sensitive", Icon: "🥺", Color: "#F48FB1"},
	{ID: "sad", Label: "Sad", Icon: "😢", Color: "#64B5F6"},
	{ID: "anxious", Label: "Anxious", Icon: "😰", Color: "#9575CD"},
	{ID: "irritable", Label: "Irritable", Icon: "😠", Color: "#E57373"},
	{ID: "tired", Label: "Tired", Icon: "🥱", Color: "#90A4AE"},
}

func SymptomCatalog() []Tag {
	return append([]Tag(nil), symptomCatalog...)
}

func MoodCatalog() []Tag {
	return append([]Tag(nil), moodCatalog...)
}

// ResolveSymptomID maps an id, a label, or a stored "label+icon" string to a catalog id.
func ResolveSymptomID(raw string) (string, bool) {
	return resolveTagID(symptomCatalog, raw)
}

func ResolveMoodID(raw string) (string, bool) {
	return resolveTagID(moodCatalog, raw)
}

// TagOrder returns the catalog position of id, or -1.
func TagOrder(catalog []Tag, id string) int {
	for index, tag := range catalog {
		if tag.ID == id {
			return index
		}
	}
	return -1
}

func resolveTagID(catalog []Tag, raw string) (string, bool) {
	candidate := strings.TrimSpace(raw)
	if candidate == "" {
		return "", false
	}
	for _, tag := range catalog {
		if tag.ID == candidate {
			return tag.ID, true
		}
	}

	normalized := normalizeTagLabel(candidate)
	for _, tag := range catalog {
		if normalizeTagLabel(tag.Label) == normalized {
			return tag.ID, true
		}
	}
	return "", false
}

// Icons and separators are dropped so "Cramps 🩸" and "cramps" compare equal.
func normalizeTagLabel(value string) string {
	var builder strings.Builder
	for _, r := range strings.ToLower(value) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			builder.WriteRune(r)
		}
	}
	return builder.String()
}
