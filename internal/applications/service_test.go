package applications

import (
	"errors"
	"testing"
	"time"
)

type fakeSheet struct {
	headers   []string
	rows      [][]string
	readErr   error
	writeErr  error
	cellSets  []CellUpdate
	batchSets [][]CellUpdate
}

func (f *fakeSheet) ReadAll() ([]string, [][]string, error) {
	if f.readErr != nil {
		return nil, nil, f.readErr
	}
	return f.headers, f.rows, nil
}

func (f *fakeSheet) UpdateCell(rng, value string) error {
	if f.writeErr != nil {
		return f.writeErr
	}
	f.cellSets = append(f.cellSets, CellUpdate{Range: rng, Value: value})
	return nil
}

func (f *fakeSheet) BatchUpdate(updates []CellUpdate) error {
	if f.writeErr != nil {
		return f.writeErr
	}
	f.batchSets = append(f.batchSets, updates)
	return nil
}

type fakeMirror struct {
	payload *CachePayload
	loadErr error
	saveErr error
	saves   int
}

func (f *fakeMirror) Load() (*CachePayload, error) {
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	if f.payload == nil {
		return nil, errors.New("no cache file")
	}
	return f.payload, nil
}

func (f *fakeMirror) Save(records []Record) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saves++
	f.payload = &CachePayload{Data: records, LastUpdated: time.Now(), RecordCount: len(records)}
	return nil
}

func demoSheet() *fakeSheet {
	return &fakeSheet{
		headers: []string{"id", "Startup Name", "Status", "Last Updated"},
		rows: [][]string{
			{"1", "Acme Robotics", "Pending", ""},
			{"2", "Beta Foods", "", ""},
			{"3", "Gamma Textiles", "Approved", ""},
		},
	}
}

func newTestService(sheet TabularStore, mirror CacheMirror) *Service {
	return NewService(sheet, mirror, "Sheet1!A:AG", 5*time.Minute)
}

func TestListFetchesAndMirrors(t *testing.T) {
	mirror := &fakeMirror{}
	svc := newTestService(demoSheet(), mirror)

	records, err := svc.List(false)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("records = %d, want 3", len(records))
	}
	if records[0]["Startup Name"] != "Acme Robotics" {
		t.Errorf("record mapping wrong: %+v", records[0])
	}
	if mirror.saves != 1 {
		t.Errorf("mirror saves = %d, want 1 after fetch", mirror.saves)
	}
}

func TestListPrefersMirrorWhenSheetDown(t *testing.T) {
	sheet := &fakeSheet{readErr: errors.New("sheets API unreachable")}
	mirror := &fakeMirror{payload: &CachePayload{
		Data:        []Record{{"id": "1", "Status": "Pending"}},
		RecordCount: 1,
	}}
	svc := newTestService(sheet, mirror)

	records, err := svc.List(false)
	if err != nil {
		t.Fatalf("List should fall back to mirror: %v", err)
	}
	if len(records) != 1 || records[0]["id"] != "1" {
		t.Errorf("records = %+v", records)
	}
}

func TestUpdateStatusWritesBothTargets(t *testing.T) {
	sheet := demoSheet()
	mirror := &fakeMirror{}
	svc := newTestService(sheet, mirror)

	result, err := svc.UpdateStatus("1", "Under Review")
	if err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if !result.GoogleSheetsUpdated || !result.CacheUpdated {
		t.Errorf("result = %+v, want both targets updated", result)
	}
	if len(result.Warnings) != 0 {
		t.Errorf("warnings = %v, want none", result.Warnings)
	}
	if result.OldStatus != "Pending" || result.NewStatus != "Under Review" {
		t.Errorf("transition = %q -> %q", result.OldStatus, result.NewStatus)
	}

	// Row 1 is the first data row: header + 1-based means sheet row 2;
	// Status is column C.
	if len(sheet.cellSets) != 1 || sheet.cellSets[0].Range != "Sheet1!C2" {
		t.Errorf("cell writes = %+v, want one write to Sheet1!C2", sheet.cellSets)
	}
}

func TestUpdateStatusPartialSuccess(t *testing.T) {
	sheet := demoSheet()
	sheet.writeErr = errors.New("quota exceeded")
	mirror := &fakeMirror{}
	svc := newTestService(sheet, mirror)

	result, err := svc.UpdateStatus("1", "Approved")
	if err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if result.GoogleSheetsUpdated {
		t.Error("sheet write should have failed")
	}
	if !result.CacheUpdated {
		t.Error("cache write should have succeeded")
	}
	if !result.Succeeded() {
		t.Error("one surviving target must count as success")
	}
	if len(result.Warnings) != 1 {
		t.Errorf("warnings = %v, want exactly the sheet failure", result.Warnings)
	}
}

func TestUpdateStatusBothTargetsFailing(t *testing.T) {
	sheet := demoSheet()
	sheet.writeErr = errors.New("quota exceeded")
	mirror := &fakeMirror{saveErr: errors.New("disk full")}
	svc := newTestService(sheet, mirror)

	result, err := svc.UpdateStatus("1", "Approved")
	if err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if result.Succeeded() {
		t.Error("no surviving target, operation must not report success")
	}
	if len(result.Warnings) != 2 {
		t.Errorf("warnings = %v, want one per failed target", result.Warnings)
	}
}

func TestUpdateStatusValidation(t *testing.T) {
	svc := newTestService(demoSheet(), &fakeMirror{})

	if _, err := svc.UpdateStatus("1", "Shortlisted"); !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("err = %v, want ErrInvalidStatus", err)
	}
	if _, err := svc.UpdateStatus("999", "Approved"); !errors.Is(err, ErrRecordNotFound) {
		t.Fatalf("err = %v, want ErrRecordNotFound", err)
	}
}

func TestInitializePendingFillsBlankStatuses(t *testing.T) {
	sheet := demoSheet()
	mirror := &fakeMirror{}
	svc := newTestService(sheet, mirror)

	result, err := svc.InitializePending()
	if err != nil {
		t.Fatalf("InitializePending: %v", err)
	}
	if result.UpdatedCount != 1 {
		t.Fatalf("updated = %d, want 1 (only the blank row)", result.UpdatedCount)
	}
	change := result.UpdatedRecords[0]
	if change.ID != "2" || change.NewStatus != "Pending" || change.Name != "Beta Foods" {
		t.Errorf("change = %+v", change)
	}
	if result.SuccessfulSheetUpdates != 1 {
		t.Errorf("sheet updates = %d, want 1", result.SuccessfulSheetUpdates)
	}
	if !result.CacheUpdated {
		t.Error("mirror should have been rewritten")
	}
	if len(sheet.batchSets) != 1 {
		t.Errorf("batch writes = %d, want 1", len(sheet.batchSets))
	}
}

func TestInitializePendingNoBlanks(t *testing.T) {
	sheet := demoSheet()
	sheet.rows[1][2] = "Rejected"
	svc := newTestService(sheet, &fakeMirror{})

	result, err := svc.InitializePending()
	if err != nil {
		t.Fatalf("InitializePending: %v", err)
	}
	if result.UpdatedCount != 0 || len(sheet.batchSets) != 0 {
		t.Errorf("result = %+v, want no-op", result)
	}
}

func TestFilterMatchesCaseInsensitively(t *testing.T) {
	svc := newTestService(demoSheet(), &fakeMirror{})

	records, err := svc.Filter("Startup Name", "acme")
	if err != nil {
		t.Fatalf("Filter: %v", err)
	}
	if len(records) != 1 || records[0]["id"] != "1" {
		t.Errorf("records = %+v", records)
	}
}

func TestColumnLetter(t *testing.T) {
	cases := map[int]string{1: "A", 3: "C", 26: "Z", 27: "AA", 33: "AG", 52: "AZ"}
	for n, want := range cases {
		if got := columnLetter(n); got != want {
			t.Errorf("columnLetter(%d) = %q, want %q", n, got, want)
		}
	}
}
