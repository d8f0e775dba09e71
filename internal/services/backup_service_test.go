package services

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/terraincognita07/bloom/internal/models"
)

type backupStoreStub struct {
	logs     []models.DayLog
	settings models.UserSettings
	calls    int
	err      error
}

func (stub *backupStoreStub) ReplaceAll(logs []models.DayLog, settings models.UserSettings) error {
	stub.calls++
	if stub.err != nil {
		return stub.err
	}
	stub.logs = logs
	stub.settings = settings
	return nil
}

func sampleSnapshot() Snapshot {
	water := 6
	sleep := 8
	return Snapshot{
		Logs: models.DayLogSet{
			"2024-01-01": {
				Date:      "2024-01-01",
				IsPeriod:  true,
				Intensity: models.IntensityIntense,
				Symptoms:  []string{"cramps", "back_pain"},
				Moods:     []string{"sensitive"},
				Notes:     "hot water bottle",
			},
			"2024-01-02": {
				Date:         "2024-01-02",
				IsPeriod:     true,
				Intensity:    models.IntensityLight,
				Symptoms:     []string{},
				Moods:        []string{},
				MedicalNotes: "iron supplement",
				WaterIntake:  &water,
				SleepHours:   &sleep,
			},
			"2024-01-10": {
				Date:     "2024-01-10",
				Symptoms: []string{"acne"},
				Moods:    []string{"happy", "energetic"},
			},
		},
		Settings: models.UserSettings{AvgCycleLength: 31, AvgPeriodLength: 4, LastPeriodStartManual: "2023-12-01", Theme: models.ThemeSystem}.WithDefaults(),
	}
}

func TestBackupRoundTripReproducesSnapshot(t *testing.T) {
	snapshot := sampleSnapshot()
	document := NewBackupDocument(snapshot, time.Date(2024, time.February, 1, 10, 0, 0, 0, time.FixedZone("CET", 3600)))

	if document.Version != BackupVersion || document.ExportedAt != "2024-02-01T09:00:00Z" {
		t.Fatalf("unexpected document header: version=%d exportedAt=%s", document.Version, document.ExportedAt)
	}
	if _, err := uuid.Parse(document.ExportID); err != nil {
		t.Fatalf("expected export id to be a uuid, got %q", document.ExportID)
	}

	serialized, err := MarshalBackup(document)
	if err != nil {
		t.Fatalf("MarshalBackup() unexpected error: %v", err)
	}
	restored, report, err := ParseBackup(serialized, time.UTC)
	if err != nil {
		t.Fatalf("ParseBackup() unexpected error: %v", err)
	}
	if report.Imported != 3 || len(report.Skipped) != 0 {
		t.Fatalf("unexpected import report: %+v", report)
	}
	if !reflect.DeepEqual(restored.Logs, snapshot.Logs) {
		t.Fatalf("logs changed in round trip:\n got %+v\nwant %+v", restored.Logs, snapshot.Logs)
	}
	if restored.Settings != snapshot.Settings {
		t.Fatalf("settings changed in round trip: got %+v want %+v", restored.Settings, snapshot.Settings)
	}
}

func TestBackupRoundTripKeepsNilTagLists(t *testing.T) {
	snapshot := Snapshot{
		Logs:     models.DayLogSet{"2024-03-01": {Date: "2024-03-01", IsPeriod: true}},
		Settings: models.DefaultUserSettings(),
	}

	serialized, err := MarshalBackup(NewBackupDocument(snapshot, time.Now()))
	if err != nil {
		t.Fatalf("MarshalBackup() unexpected error: %v", err)
	}
	restored, _, err := ParseBackup(serialized, time.UTC)
	if err != nil {
		t.Fatalf("ParseBackup() unexpected error: %v", err)
	}
	if !reflect.DeepEqual(restored.Logs, snapshot.Logs) {
		t.Fatalf("logs changed in round trip:\n got %#v\nwant %#v", restored.Logs, snapshot.Logs)
	}

	store := &backupStoreStub{}
	if _, err := NewBackupService(nil, store, time.UTC).RestoreBackup(serialized); err != nil {
		t.Fatalf("RestoreBackup() unexpected error: %v", err)
	}
	if len(store.logs) != 1 || store.logs[0].Symptoms == nil || store.logs[0].Moods == nil {
		t.Fatalf("expected stored rows to carry empty tag lists, got %#v", store.logs)
	}
}

func TestParseBackupAcceptsLegacyAndPartialDocuments(t *testing.T) {
	data := []byte(`{
		"version": "1",
		"exportedAt": "2023-05-01T00:00:00.000Z",
		"appName": "old tracker",
		"settings": {"avgCycleLength": "30", "theme": "dark", "notifications": true},
		"logs": {
			"2023-04-01": {"isPeriod": true, "intensity": "Heavy", "symptoms": ["Cramps 🩸", "cramps", "Twitching"], "moods": ["Happy 😊"]},
			"2023-04-02": {"isPeriod": false, "intensity": "light", "notes": "  tea  "},
			"2023-02-30": {"isPeriod": true},
			"2023-04-03": {"isPeriod": "yes"}
		}
	}`)

	snapshot, report, err := ParseBackup(data, time.UTC)
	if err != nil {
		t.Fatalf("ParseBackup() unexpected error: %v", err)
	}
	if report.Imported != 2 || !reflect.DeepEqual(report.Skipped, []string{"2023-02-30", "2023-04-03"}) {
		t.Fatalf("unexpected import report: %+v", report)
	}

	settings := snapshot.Settings
	if settings.AvgCycleLength != 30 || settings.AvgPeriodLength != models.DefaultPeriodLength || settings.Theme != models.ThemeDark {
		t.Fatalf("unexpected lenient settings: %+v", settings)
	}

	first := snapshot.Logs["2023-04-01"]
	if first.Date != "2023-04-01" || first.Intensity != models.IntensityNone {
		t.Fatalf("expected unknown intensity to be dropped, got %+v", first)
	}
	if !reflect.DeepEqual(first.Symptoms, []string{"cramps", "Twitching"}) || !reflect.DeepEqual(first.Moods, []string{"happy"}) {
		t.Fatalf("unexpected restored tags: symptoms=%v moods=%v", first.Symptoms, first.Moods)
	}

	second := snapshot.Logs["2023-04-02"]
	if second.Intensity != models.IntensityNone || second.Notes != "  tea  " {
		t.Fatalf("unexpected non-period entry: %+v", second)
	}
}

func TestParseBackupDefaultsMissingSections(t *testing.T) {
	snapshot, report, err := ParseBackup([]byte(`{}`), time.UTC)
	if err != nil {
		t.Fatalf("ParseBackup() unexpected error: %v", err)
	}
	if len(snapshot.Logs) != 0 || report.Imported != 0 {
		t.Fatalf("expected no logs, got %+v", snapshot.Logs)
	}
	if snapshot.Settings != models.DefaultUserSettings() {
		t.Fatalf("expected default settings, got %+v", snapshot.Settings)
	}

	invalidAnchor, _, err := ParseBackup([]byte(`{"settings": {"lastPeriodStartManual": "2024-02-31", "avgPeriodLength": 0}}`), time.UTC)
	if err != nil {
		t.Fatalf("ParseBackup() unexpected error: %v", err)
	}
	if invalidAnchor.Settings.LastPeriodStartManual != "" || invalidAnchor.Settings.AvgPeriodLength != models.DefaultPeriodLength {
		t.Fatalf("expected invalid settings fields to fall back, got %+v", invalidAnchor.Settings)
	}
}

func TestParseBackupRejectsMalformedDocuments(t *testing.T) {
	cases := map[string]error{
		`not json`:                       ErrBackupMalformed,
		`{"version": "one"}`:             ErrBackupMalformed,
		`{"settings": [1, 2]}`:           ErrBackupMalformed,
		`{"logs": "everything"}`:         ErrBackupMalformed,
		`{"version": 2, "logs": {}}`:     ErrBackupVersionUnsupported,
		`{"version": "7.0", "logs": {}}`: ErrBackupVersionUnsupported,
	}
	for input, want := range cases {
		if _, _, err := ParseBackup([]byte(input), time.UTC); !errors.Is(err, want) {
			t.Fatalf("ParseBackup(%s) error = %v, want %v", input, err, want)
		}
	}
}

func TestRestoreBackupReplacesStore(t *testing.T) {
	store := &backupStoreStub{}
	service := NewBackupService(nil, store, time.UTC)

	serialized, err := MarshalBackup(NewBackupDocument(sampleSnapshot(), time.Now()))
	if err != nil {
		t.Fatalf("MarshalBackup() unexpected error: %v", err)
	}
	report, err := service.RestoreBackup(serialized)
	if err != nil {
		t.Fatalf("RestoreBackup() unexpected error: %v", err)
	}
	if report.Imported != 3 || len(store.logs) != 3 || store.logs[0].Date != "2024-01-01" {
		t.Fatalf("unexpected restore result: report=%+v logs=%+v", report, store.logs)
	}
	if store.settings.AvgCycleLength != 31 {
		t.Fatalf("expected restored settings, got %+v", store.settings)
	}

	if _, err := service.RestoreBackup([]byte(`{"version": 9}`)); !errors.Is(err, ErrBackupVersionUnsupported) {
		t.Fatalf("expected ErrBackupVersionUnsupported, got %v", err)
	}
	if store.calls != 1 {
		t.Fatalf("expected rejected document not to touch the store, got %d calls", store.calls)
	}

	store.err = errors.New("disk full")
	if _, err := service.RestoreBackup(serialized); !errors.Is(err, ErrBackupRestoreFailed) {
		t.Fatalf("expected ErrBackupRestoreFailed, got %v", err)
	}
}

func TestClearAllResetsStore(t *testing.T) {
	store := &backupStoreStub{logs: sampleSnapshot().Logs.Sorted(), settings: sampleSnapshot().Settings}
	service := NewBackupService(nil, store, time.UTC)

	if err := service.ClearAll(); err != nil {
		t.Fatalf("ClearAll() unexpected error: %v", err)
	}
	if len(store.logs) != 0 || store.settings != models.DefaultUserSettings() {
		t.Fatalf("expected empty logs and default settings, got logs=%d settings=%+v", len(store.logs), store.settings)
	}

	store.err = errors.New("locked")
	if err := service.ClearAll(); !errors.Is(err, ErrBackupRestoreFailed) {
		t.Fatalf("expected ErrBackupRestoreFailed, got %v", err)
	}
}

func TestBuildBackupUsesStoredSnapshot(t *testing.T) {
	snapshot := sampleSnapshot()
	stats := NewStatsService(&stubStatsDayReader{logs: snapshot.Logs}, &stubStatsSettingsReader{settings: snapshot.Settings}, time.UTC)
	service := NewBackupService(stats, &backupStoreStub{}, time.UTC)

	document, err := service.BuildBackup(time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("BuildBackup() unexpected error: %v", err)
	}
	if len(document.Logs) != 3 || document.Settings.Theme != models.ThemeSystem {
		t.Fatalf("unexpected backup document: %+v", document)
	}

	failing := NewBackupService(NewStatsService(&stubStatsDayReader{err: ErrDayLogListFailed}, &stubStatsSettingsReader{}, time.UTC), &backupStoreStub{}, time.UTC)
	if _, err := failing.BuildBackup(time.Now()); !errors.Is(err, ErrDayLogListFailed) {
		t.Fatalf("expected ErrDayLogListFailed, got %v", err)
	}
}
