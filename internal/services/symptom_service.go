package services

import (
	"sort"

	"github.com/terraincognita07/bloom/internal/models"
)

type TagFrequency struct {
	ID        string `json:"id"`
	Label     string `json:"label"`
	Icon      string `json:"icon"`
	Count     int    `json:"count"`
	TotalDays int    `json:"totalDays"`
}

type TagFrequencies struct {
	Symptoms []TagFrequency `json:"symptoms"`
	Moods    []TagFrequency `json:"moods"`
}

type TagService struct {
	days StatsDayReader
}

func NewTagService(days StatsDayReader) *TagService {
	return &TagService{days: days}
}

func (service *TagService) CalculateFrequencies() (TagFrequencies, error) {
	logs, err := service.days.FetchAllLogs()
	if err != nil {
		return TagFrequencies{}, err
	}
	return CalculateTagFrequencies(logs), nil
}

func CalculateTagFrequencies(logs models.DayLogSet) TagFrequencies {
	symptomCounts := make(map[string]int)
	moodCounts := make(map[string]int)
	for _, entry := range logs {
		for _, id := range entry.Symptoms {
			symptomCounts[id]++
		}
		for _, id := range entry.Moods {
			moodCounts[id]++
		}
	}

	return TagFrequencies{
		Symptoms: buildTagFrequencies(models.SymptomCatalog(), symptomCounts, len(logs)),
		Moods:    buildTagFrequencies(models.MoodCatalog(), moodCounts, len(logs)),
	}
}

// Tags missing from the catalog, e.g. kept from an old backup, are not reported.
func buildTagFrequencies(catalog []models.Tag, counts map[string]int, totalDays int) []TagFrequency {
	result := make([]TagFrequency, 0, len(counts))
	for _, tag := range catalog {
		count, ok := counts[tag.ID]
		if !ok {
			continue
		}
		result = append(result, TagFrequency{
			ID:        tag.ID,
			Label:     tag.Label,
			Icon:      tag.Icon,
			Count:     count,
			TotalDays: totalDays,
		})
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Count > result[j].Count
	})
	return result
}
