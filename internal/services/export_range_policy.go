package services

import (
	"errors"
	"strings"
	"time"

	"github.com/terraincognita07/bloom/internal/models"
)

var (
	ErrExportFromDateInvalid = errors.New("export invalid from date")
	ErrExportToDateInvalid   = errors.New("export invalid to date")
	ErrExportRangeInvalid    = errors.New("export invalid range")
)

// ExportRange bounds an export by ISO date. A nil bound is open.
type ExportRange struct {
	From *time.Time
	To   *time.Time
}

func ParseExportRange(rawFrom string, rawTo string, location *time.Location) (ExportRange, error) {
	var exportRange ExportRange

	if fromRaw := strings.TrimSpace(rawFrom); fromRaw != "" {
		from, ok := ParseDay(fromRaw, location)
		if !ok {
			return ExportRange{}, ErrExportFromDateInvalid
		}
		exportRange.From = &from
	}

	if toRaw := strings.TrimSpace(rawTo); toRaw != "" {
		to, ok := ParseDay(toRaw, location)
		if !ok {
			return ExportRange{}, ErrExportToDateInvalid
		}
		exportRange.To = &to
	}

	if exportRange.From != nil && exportRange.To != nil && exportRange.To.Before(*exportRange.From) {
		return ExportRange{}, ErrExportRangeInvalid
	}
	return exportRange, nil
}

// Filter keeps the entries whose date falls inside the range, bounds inclusive.
func (exportRange ExportRange) Filter(logs models.DayLogSet) models.DayLogSet {
	if exportRange.From == nil && exportRange.To == nil {
		return logs
	}
	fromKey, toKey := "", ""
	if exportRange.From != nil {
		fromKey = FormatDay(*exportRange.From)
	}
	if exportRange.To != nil {
		toKey = FormatDay(*exportRange.To)
	}

	filtered := make(models.DayLogSet, len(logs))
	for key, entry := range logs {
		if fromKey != "" && key < fromKey {
			continue
		}
		if toKey != "" && key > toKey {
			continue
		}
		filtered[key] = entry
	}
	return filtered
}
