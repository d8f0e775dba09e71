package services

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"github.com/terraincognita07/bloom/internal/models"
)

var ExportCSVHeaders = []string{
	"Date",
	"Period",
	"Intensity",
	"Symptoms",
	"Moods",
	"Water intake",
	"Sleep hours",
	"Notes",
	"Medical notes",
}

func WriteLogsCSV(writer io.Writer, logs models.DayLogSet) error {
	csvWriter := csv.NewWriter(writer)
	if err := csvWriter.Write(ExportCSVHeaders); err != nil {
		return err
	}
	for _, entry := range logs.Sorted() {
		if err := csvWriter.Write(exportCSVColumns(entry)); err != nil {
			return err
		}
	}
	csvWriter.Flush()
	return csvWriter.Error()
}

func exportCSVColumns(entry models.DayLog) []string {
	return []string{
		entry.Date,
		csvYesNo(entry.IsPeriod),
		csvIntensityLabel(entry.Intensity),
		strings.Join(tagLabels(entry.Symptoms, models.SymptomCatalog()), "; "),
		strings.Join(tagLabels(entry.Moods, models.MoodCatalog()), "; "),
		csvOptionalInt(entry.WaterIntake),
		csvOptionalInt(entry.SleepHours),
		entry.Notes,
		entry.MedicalNotes,
	}
}

func tagLabels(ids []string, catalog []models.Tag) []string {
	labels := make([]string, 0, len(ids))
	for _, id := range ids {
		index := models.TagOrder(catalog, id)
		if index < 0 {
			labels = append(labels, id)
			continue
		}
		labels = append(labels, catalog[index].Label)
	}
	return labels
}

func csvYesNo(value bool) string {
	if value {
		return "Yes"
	}
	return "No"
}

func csvIntensityLabel(intensity models.Intensity) string {
	switch intensity {
	case models.IntensityScant:
		return "Scant"
	case models.IntensityLight:
		return "Light"
	case models.IntensityModerate:
		return "Moderate"
	case models.IntensityIntense:
		return "Intense"
	default:
		return ""
	}
}

func csvOptionalInt(value *int) string {
	if value == nil {
		return ""
	}
	return strconv.Itoa(*value)
}
