package services

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/terraincognita07/bloom/internal/models"
)

const BackupVersion = 1

var (
	ErrBackupMalformed          = errors.New("backup document malformed")
	ErrBackupVersionUnsupported = errors.New("backup version unsupported")
	ErrBackupRestoreFailed      = errors.New("backup restore failed")
)

type BackupDocument struct {
	Version    int                      `json:"version"`
	ExportID   string                   `json:"exportId,omitempty"`
	ExportedAt string                   `json:"exportedAt"`
	Settings   models.UserSettings      `json:"settings"`
	Logs       map[string]models.DayLog `json:"logs"`
}

type ImportReport struct {
	Imported int      `json:"imported"`
	Skipped  []string `json:"skipped"`
}

type BackupStore interface {
	ReplaceAll(logs []models.DayLog, settings models.UserSettings) error
}

type BackupService struct {
	snapshots *StatsService
	store     BackupStore
	location  *time.Location
}

func NewBackupService(snapshots *StatsService, store BackupStore, location *time.Location) *BackupService {
	if location == nil {
		location = time.UTC
	}
	return &BackupService{
		snapshots: snapshots,
		store:     store,
		location:  location,
	}
}

func (service *BackupService) BuildBackup(now time.Time) (BackupDocument, error) {
	snapshot, err := service.snapshots.LoadSnapshot()
	if err != nil {
		return BackupDocument{}, err
	}
	return NewBackupDocument(snapshot, now), nil
}

func NewBackupDocument(snapshot Snapshot, now time.Time) BackupDocument {
	logs := make(map[string]models.DayLog, len(snapshot.Logs))
	for key, entry := range snapshot.Logs {
		logs[key] = entry
	}
	return BackupDocument{
		Version:    BackupVersion,
		ExportID:   uuid.NewString(),
		ExportedAt: now.UTC().Format(time.RFC3339),
		Settings:   snapshot.Settings.WithDefaults(),
		Logs:       logs,
	}
}

func MarshalBackup(document BackupDocument) ([]byte, error) {
	return json.MarshalIndent(document, "", "  ")
}

// RestoreBackup replaces every stored log and the settings record with the
// document contents. Nothing is written when the document cannot be parsed.
func (service *BackupService) RestoreBackup(data []byte) (ImportReport, error) {
	snapshot, report, err := ParseBackup(data, service.location)
	if err != nil {
		return ImportReport{}, err
	}
	if err := service.store.ReplaceAll(storableLogs(snapshot.Logs), snapshot.Settings); err != nil {
		return ImportReport{}, fmt.Errorf("%w: %v", ErrBackupRestoreFailed, err)
	}
	return report, nil
}

// storableLogs orders the restored logs and gives missing tag lists the
// empty form stored rows always carry.
func storableLogs(logs models.DayLogSet) []models.DayLog {
	sorted := logs.Sorted()
	for index := range sorted {
		if sorted[index].Symptoms == nil {
			sorted[index].Symptoms = []string{}
		}
		if sorted[index].Moods == nil {
			sorted[index].Moods = []string{}
		}
	}
	return sorted
}

// ClearAll removes every log and resets the settings record to defaults.
func (service *BackupService) ClearAll() error {
	if err := service.store.ReplaceAll([]models.DayLog{}, models.DefaultUserSettings()); err != nil {
		return fmt.Errorf("%w: %v", ErrBackupRestoreFailed, err)
	}
	return nil
}

type rawBackupDocument struct {
	Version  json.RawMessage            `json:"version"`
	Settings json.RawMessage            `json:"settings"`
	Logs     map[string]json.RawMessage `json:"logs"`
}

// ParseBackup decodes a backup document leniently: unknown fields are
// ignored, missing settings fall back to defaults and log entries that
// cannot be decoded are reported as skipped.
func ParseBackup(data []byte, location *time.Location) (Snapshot, ImportReport, error) {
	var raw rawBackupDocument
	if err := json.Unmarshal(data, &raw); err != nil {
		return Snapshot{}, ImportReport{}, fmt.Errorf("%w: %v", ErrBackupMalformed, err)
	}

	version, err := parseBackupVersion(raw.Version)
	if err != nil {
		return Snapshot{}, ImportReport{}, err
	}
	if version > BackupVersion {
		return Snapshot{}, ImportReport{}, ErrBackupVersionUnsupported
	}

	settings, err := decodeBackupSettings(raw.Settings, location)
	if err != nil {
		return Snapshot{}, ImportReport{}, err
	}

	report := ImportReport{Skipped: []string{}}
	logs := make(models.DayLogSet, len(raw.Logs))
	for key, rawEntry := range raw.Logs {
		day, ok := ParseDay(key, location)
		if !ok {
			report.Skipped = append(report.Skipped, key)
			continue
		}
		entry, ok := decodeBackupDayLog(rawEntry)
		if !ok {
			report.Skipped = append(report.Skipped, key)
			continue
		}
		entry.Date = FormatDay(day)
		logs[entry.Date] = entry
	}
	report.Imported = len(logs)
	sort.Strings(report.Skipped)

	return Snapshot{Logs: logs, Settings: settings}, report, nil
}

func parseBackupVersion(raw json.RawMessage) (int, error) {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return BackupVersion, nil
	}

	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		trimmed = strings.TrimSpace(text)
	}
	value, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: version %s", ErrBackupMalformed, trimmed)
	}
	return int(value), nil
}

func decodeBackupSettings(raw json.RawMessage, location *time.Location) (models.UserSettings, error) {
	settings := models.DefaultUserSettings()
	if len(bytes.TrimSpace(raw)) == 0 || string(bytes.TrimSpace(raw)) == "null" {
		return settings, nil
	}

	fields := make(map[string]json.RawMessage)
	if err := json.Unmarshal(raw, &fields); err != nil {
		return models.UserSettings{}, fmt.Errorf("%w: settings: %v", ErrBackupMalformed, err)
	}

	if value, ok := lenientInt(fields["avgCycleLength"]); ok {
		settings.AvgCycleLength = value
	}
	if value, ok := lenientInt(fields["avgPeriodLength"]); ok {
		settings.AvgPeriodLength = value
	}
	if value, ok := lenientString(fields["lastPeriodStartManual"]); ok {
		if day, valid := ParseDay(value, location); valid {
			settings.LastPeriodStartManual = FormatDay(day)
		}
	}
	if value, ok := lenientString(fields["theme"]); ok {
		settings.Theme = value
	}
	return settings.WithDefaults(), nil
}

func decodeBackupDayLog(raw json.RawMessage) (models.DayLog, bool) {
	var entry models.DayLog
	if err := json.Unmarshal(raw, &entry); err != nil {
		return models.DayLog{}, false
	}

	entry.Intensity = models.Intensity(strings.ToLower(strings.TrimSpace(string(entry.Intensity))))
	if !entry.IsPeriod || !entry.Intensity.Valid() {
		entry.Intensity = models.IntensityNone
	}
	entry.Symptoms = restoreTags(entry.Symptoms, models.ResolveSymptomID)
	entry.Moods = restoreTags(entry.Moods, models.ResolveMoodID)
	entry.Notes = TrimDayNotes(entry.Notes)
	entry.MedicalNotes = TrimDayNotes(entry.MedicalNotes)
	if entry.WaterIntake != nil && *entry.WaterIntake < 0 {
		entry.WaterIntake = nil
	}
	if entry.SleepHours != nil && (*entry.SleepHours < 0 || *entry.SleepHours > MaxSleepHours) {
		entry.SleepHours = nil
	}
	return entry, true
}

// restoreTags maps legacy labels to catalog ids. Values that match nothing
// are kept verbatim so a restore never loses user data. A nil list stays nil.
func restoreTags(values []string, resolve func(string) (string, bool)) []string {
	if values == nil {
		return nil
	}
	restored := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, value := range values {
		id, ok := resolve(value)
		if !ok {
			id = strings.TrimSpace(value)
		}
		if id == "" {
			continue
		}
		if _, exists := seen[id]; exists {
			continue
		}
		seen[id] = struct{}{}
		restored = append(restored, id)
	}
	return restored
}

func lenientInt(raw json.RawMessage) (int, bool) {
	if len(raw) == 0 {
		return 0, false
	}
	var number float64
	if err := json.Unmarshal(raw, &number); err == nil {
		return int(number), true
	}
	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		value, err := strconv.Atoi(strings.TrimSpace(text))
		if err == nil {
			return value, true
		}
	}
	return 0, false
}

func lenientString(raw json.RawMessage) (string, bool) {
	if len(raw) == 0 {
		return "", false
	}
	var text string
	if err := json.Unmarshal(raw, &text); err != nil {
		return "", false
	}
	return strings.TrimSpace(text), true
}
