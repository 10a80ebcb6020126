package backup

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func validSnapshotJSON(t *testing.T) []byte {
	t.Helper()
	ctx := context.Background()
	st := openTestStore(t)
	svc := NewService(st, WithClock(fixedClock))

	snap, err := svc.ExportAll(ctx)
	require.NoError(t, err)
	data, err := Encode(snap)
	require.NoError(t, err)
	return data
}

func TestValidate_AcceptsExportedSnapshot(t *testing.T) {
	data := validSnapshotJSON(t)
	snap, err := Validate("backup.json", data, DefaultMaxImportBytes)
	require.NoError(t, err)
	require.Equal(t, "1.0", snap.Version)
}

func TestValidate_RejectsWrongExtension(t *testing.T) {
	data := validSnapshotJSON(t)
	_, err := Validate("backup.txt", data, DefaultMaxImportBytes)
	require.True(t, IsValidationError(err))
	require.Contains(t, err.Error(), "extension")
}

func TestValidate_RejectsOversizeDocument(t *testing.T) {
	data := validSnapshotJSON(t)
	_, err := Validate("backup.json", data, int64(len(data)-1))
	require.True(t, IsValidationError(err))
	require.Contains(t, err.Error(), "size")
}

func TestValidate_RejectsMalformedJSON(t *testing.T) {
	_, err := Validate("backup.json", []byte(`{"version": "1.0",`), DefaultMaxImportBytes)
	require.True(t, IsValidationError(err))
}

func TestValidate_RejectsMissingDataSection(t *testing.T) {
	doc := []byte(`{
		"version": "1.0",
		"exported_at": "2026-01-02T15:04:05Z",
		"metadata": {"app": "hearth", "platform": "go"}
	}`)
	_, err := Validate("backup.json", doc, DefaultMaxImportBytes)
	require.True(t, IsValidationError(err))
}

func TestValidate_RejectsUnsupportedVersion(t *testing.T) {
	doc := []byte(`{
		"version": "2.0",
		"exported_at": "2026-01-02T15:04:05Z",
		"data": {"preferences": {}},
		"metadata": {"app": "hearth", "platform": "go"}
	}`)
	_, err := Validate("backup.json", doc, DefaultMaxImportBytes)
	require.True(t, IsValidationError(err))
}

func TestValidate_RejectsUnknownCollection(t *testing.T) {
	doc := []byte(`{
		"version": "1.0",
		"exported_at": "2026-01-02T15:04:05Z",
		"data": {"preferences": {}, "gadgets": []},
		"metadata": {"app": "hearth", "platform": "go"}
	}`)
	_, err := Validate("backup.json", doc, DefaultMaxImportBytes)
	require.True(t, IsValidationError(err))
}

func TestValidate_RejectsRecordWithoutID(t *testing.T) {
	doc := []byte(`{
		"version": "1.0",
		"exported_at": "2026-01-02T15:04:05Z",
		"data": {"preferences": {}, "notes": [{"title": "no id"}]},
		"metadata": {"app": "hearth", "platform": "go"}
	}`)
	_, err := Validate("backup.json", doc, DefaultMaxImportBytes)
	require.True(t, IsValidationError(err))
}
