package applications

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

const recordsKey = "records"

// StatusUpdateResult reports which of the two write targets actually
// took the new status. The operation succeeds if at least one did.
type StatusUpdateResult struct {
	ID                  string   `json:"id"`
	OldStatus           string   `json:"oldStatus"`
	NewStatus           string   `json:"newStatus"`
	UpdatedRecord       Record   `json:"updatedRecord"`
	GoogleSheetsUpdated bool     `json:"googleSheetsUpdated"`
	CacheUpdated        bool     `json:"cacheUpdated"`
	Warnings            []string `json:"warnings,omitempty"`
}

// Succeeded reports whether at least one write target was updated.
func (r *StatusUpdateResult) Succeeded() bool {
	return r.GoogleSheetsUpdated || r.CacheUpdated
}

// RecordChange describes one record touched by bulk initialization.
type RecordChange struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	OldStatus string `json:"oldStatus"`
	NewStatus string `json:"newStatus"`
}

// InitializeResult is the per-record manifest for bulk status
// initialization.
type InitializeResult struct {
	UpdatedCount           int            `json:"updatedCount"`
	SuccessfulSheetUpdates int            `json:"successfulGoogleSheetsUpdates"`
	UpdatedRecords         []RecordChange `json:"updatedRecords"`
	CacheUpdated           bool           `json:"cacheUpdated"`
	Warnings               []string       `json:"warnings,omitempty"`
}

// Service serves application records through three tiers (memory, file
// mirror, spreadsheet) and performs the dual-write status updates.
type Service struct {
	tabular   TabularStore
	mirror    CacheMirror
	memory    *gocache.Cache
	sheetName string
	now       func() time.Time
}

func NewService(tabular TabularStore, mirror CacheMirror, sheetRange string, ttl time.Duration) *Service {
	sheetName := sheetRange
	if i := strings.Index(sheetName, "!"); i >= 0 {
		sheetName = sheetName[:i]
	}
	return &Service{
		tabular:   tabular,
		mirror:    mirror,
		memory:    gocache.New(ttl, 2*ttl),
		sheetName: sheetName,
		now:       time.Now,
	}
}

// List returns all application records, cheapest tier first.
func (s *Service) List(forceRefresh bool) ([]Record, error) {
	if !forceRefresh {
		if cached, ok := s.memory.Get(recordsKey); ok {
			return cached.([]Record), nil
		}
		if payload, err := s.mirror.Load(); err == nil && len(payload.Data) > 0 {
			s.memory.SetDefault(recordsKey, payload.Data)
			return payload.Data, nil
		}
	}
	return s.fetch()
}

// Refresh forces a fresh read from the spreadsheet and rewrites the
// mirror.
func (s *Service) Refresh() ([]Record, error) {
	return s.fetch()
}

// Filter returns records whose column value contains the given value,
// case-insensitively.
func (s *Service) Filter(column, value string) ([]Record, error) {
	records, err := s.List(false)
	if err != nil {
		return nil, err
	}
	needle := strings.ToLower(value)
	matched := make([]Record, 0)
	for _, r := range records {
		if strings.Contains(strings.ToLower(r[column]), needle) {
			matched = append(matched, r)
		}
	}
	return matched, nil
}

// UpdateStatus changes one application's status in both the spreadsheet
// and the mirror. Either write may fail independently; the result says
// which succeeded and the operation only fails when both did.
func (s *Service) UpdateStatus(id, status string) (*StatusUpdateResult, error) {
	if !validStatus(status) {
		return nil, fmt.Errorf("%w: must be one of %s", ErrInvalidStatus, strings.Join(ValidStatuses, ", "))
	}

	records, err := s.List(false)
	if err != nil {
		return nil, err
	}

	var target Record
	for _, r := range records {
		if r["id"] == id {
			target = r
			break
		}
	}
	if target == nil {
		return nil, fmt.Errorf("%w: id %s", ErrRecordNotFound, id)
	}

	result := &StatusUpdateResult{
		ID:        id,
		OldStatus: target["Status"],
		NewStatus: status,
	}

	target["Status"] = status
	target["Last Updated"] = s.now().UTC().Format(time.RFC3339)
	result.UpdatedRecord = target

	if err := s.updateSheetStatus(id, status); err != nil {
		slog.Error("spreadsheet status update failed", "id", id, "error", err)
		result.Warnings = append(result.Warnings, fmt.Sprintf("Google Sheets update failed: %v", err))
	} else {
		result.GoogleSheetsUpdated = true
	}

	if err := s.saveMirror(records); err != nil {
		slog.Error("cache mirror update failed", "id", id, "error", err)
		result.Warnings = append(result.Warnings, fmt.Sprintf("Cache update failed: %v", err))
	} else {
		result.CacheUpdated = true
	}

	return result, nil
}

// InitializePending sets every blank Status to "Pending" and returns a
// per-record manifest instead of failing the batch on one record.
func (s *Service) InitializePending() (*InitializeResult, error) {
	records, err := s.List(false)
	if err != nil {
		return nil, err
	}

	result := &InitializeResult{}
	stamp := s.now().UTC().Format(time.RFC3339)
	for _, r := range records {
		if strings.TrimSpace(r["Status"]) != "" {
			continue
		}
		change := RecordChange{
			ID:        r["id"],
			Name:      r["Startup Name"],
			OldStatus: r["Status"],
			NewStatus: "Pending",
		}
		if change.Name == "" {
			change.Name = "Unknown"
		}
		r["Status"] = "Pending"
		r["Last Updated"] = stamp
		result.UpdatedRecords = append(result.UpdatedRecords, change)
		result.UpdatedCount++
	}

	if result.UpdatedCount == 0 {
		return result, nil
	}

	updated, warnings := s.batchSheetStatuses(result.UpdatedRecords)
	result.SuccessfulSheetUpdates = updated
	result.Warnings = append(result.Warnings, warnings...)

	if err := s.saveMirror(records); err != nil {
		slog.Error("cache mirror update failed", "error", err)
		result.Warnings = append(result.Warnings, fmt.Sprintf("Cache update failed: %v", err))
	} else {
		result.CacheUpdated = true
	}

	return result, nil
}

func (s *Service) fetch() ([]Record, error) {
	headers, rows, err := s.tabular.ReadAll()
	if err != nil {
		return nil, err
	}

	records := make([]Record, 0, len(rows))
	for _, row := range rows {
		record := make(Record, len(headers))
		for i, header := range headers {
			if i < len(row) {
				record[header] = row[i]
			} else {
				record[header] = ""
			}
		}
		records = append(records, record)
	}

	if err := s.saveMirror(records); err != nil {
		slog.Error("failed to persist cache mirror after fetch", "error", err)
	}
	return records, nil
}

func (s *Service) saveMirror(records []Record) error {
	if err := s.mirror.Save(records); err != nil {
		return err
	}
	s.memory.SetDefault(recordsKey, records)
	return nil
}

// updateSheetStatus locates the record's row and the Status column and
// writes the single cell.
func (s *Service) updateSheetStatus(id, status string) error {
	headers, rows, err := s.tabular.ReadAll()
	if err != nil {
		return err
	}

	statusCol, idCol, err := locateColumns(headers)
	if err != nil {
		return err
	}

	for i, row := range rows {
		if idCol < len(row) && row[idCol] == id {
			// +2: one for the header row, one for 1-based addressing.
			rng := fmt.Sprintf("%s!%s%d", s.sheetName, columnLetter(statusCol+1), i+2)
			return s.tabular.UpdateCell(rng, status)
		}
	}
	return fmt.Errorf("%w: id %s not present in spreadsheet", ErrRecordNotFound, id)
}

func (s *Service) batchSheetStatuses(changes []RecordChange) (int, []string) {
	headers, rows, err := s.tabular.ReadAll()
	if err != nil {
		return 0, []string{fmt.Sprintf("Google Sheets update failed: %v", err)}
	}

	statusCol, idCol, err := locateColumns(headers)
	if err != nil {
		return 0, []string{fmt.Sprintf("Google Sheets update failed: %v", err)}
	}

	rowByID := make(map[string]int, len(rows))
	for i, row := range rows {
		if idCol < len(row) {
			rowByID[row[idCol]] = i + 2
		}
	}

	var updates []CellUpdate
	var warnings []string
	for _, change := range changes {
		rowNum, ok := rowByID[change.ID]
		if !ok {
			warnings = append(warnings, fmt.Sprintf("ID %s: record not found in Google Sheets", change.ID))
			continue
		}
		updates = append(updates, CellUpdate{
			Range: fmt.Sprintf("%s!%s%d", s.sheetName, columnLetter(statusCol+1), rowNum),
			Value: change.NewStatus,
		})
	}

	if len(updates) == 0 {
		return 0, warnings
	}
	if err := s.tabular.BatchUpdate(updates); err != nil {
		warnings = append(warnings, fmt.Sprintf("Google Sheets update failed: %v", err))
		return 0, warnings
	}
	return len(updates), warnings
}

func locateColumns(headers []string) (statusCol, idCol int, err error) {
	statusCol, idCol = -1, -1
	for i, h := range headers {
		switch h {
		case "Status":
			statusCol = i
		case "id":
			idCol = i
		}
	}
	if statusCol == -1 {
		return 0, 0, fmt.Errorf("Status column not found in spreadsheet")
	}
	if idCol == -1 {
		return 0, 0, fmt.Errorf("id column not found in spreadsheet")
	}
	return statusCol, idCol, nil
}
