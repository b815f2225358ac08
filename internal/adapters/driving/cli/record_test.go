package cli

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/recordbook/internal/core/domain"
)

func TestRecordListCmd_Executes(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	out, err := executeCommand("record", "list", "clients")

	require.NoError(t, err)
	assert.Contains(t, out, "Records in clients:")
	assert.Contains(t, out, "cli-3001")
	assert.Contains(t, out, "Client Name: Northwind Traders")
	assert.Contains(t, out, "Total: 3 records")
}

func TestRecordListCmd_JSON(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	out, err := executeCommand("record", "list", "brokers", "--json")
	require.NoError(t, err)

	var records []map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &records))
	require.Len(t, records, 1)
	assert.Equal(t, "brk-4001", records[0]["id"])
	assert.Equal(t, "12.5", records[0]["commission"])
}

func TestRecordListCmd_Empty(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	_, err := executeCommand("record", "delete", "brokers", "brk-4001", "--yes")
	require.NoError(t, err)

	out, err := executeCommand("record", "list", "brokers")
	require.NoError(t, err)
	assert.Contains(t, out, "No records in module: brokers")
}

func TestRecordGetCmd(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	out, err := executeCommand("record", "get", "clients", "cli-3002")
	require.NoError(t, err)
	assert.Contains(t, out, "Record: cli-3002")
	assert.Contains(t, out, "Email: pat@contoso.example")

	_, err = executeCommand("record", "get", "clients", "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRecordAddCmd_GeneratesID(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	out, err := executeCommand("record", "add", "brokers", "name=Summit Partners", "commission=8")

	require.NoError(t, err)
	assert.Contains(t, out, "Added record rec-1 to brokers.")
	assert.NotContains(t, out, "Warning")

	rec, err := recordService.Get(context.Background(), "brokers", "rec-1")
	require.NoError(t, err)
	assert.Equal(t, "Summit Partners", rec.Get("name"))
}

func TestRecordAddCmd_ManualIDAndWarnings(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	out, err := executeCommand("record", "add", "brokers", "--id", "brk-9", "email=not-an-email", "commission=lots")

	require.NoError(t, err)
	assert.Contains(t, out, "Added record brk-9 to brokers.")
	assert.Contains(t, out, "Warning: name: required field is empty")
	assert.Contains(t, out, "Warning: email: invalid email address")
	assert.Contains(t, out, "Warning: commission: invalid number format")

	_, err = executeCommand("record", "add", "brokers", "--id", "brk-9", "name=Again")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestRecordAddCmd_InvalidAssignment(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	_, err := executeCommand("record", "add", "brokers", "name")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected field=value")
}

func TestRecordUpdateCmd(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	out, err := executeCommand("record", "update", "brokers", "brk-4001", "commission=15", "region=West")
	require.NoError(t, err)
	assert.Contains(t, out, "Updated record brk-4001 in brokers.")

	rec, err := recordService.Get(context.Background(), "brokers", "brk-4001")
	require.NoError(t, err)
	assert.Equal(t, "15", rec.Get("commission"))
	assert.Equal(t, "West", rec.Get("region"))
	assert.Equal(t, "Harbor Brokerage", rec.Get("name"))
}

func TestRecordUpdateCmd_Missing(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	_, err := executeCommand("record", "update", "brokers", "nope", "name=X")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRecordDeleteCmd(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	_, err := executeCommand("record", "delete", "clients", "cli-3001")
	assert.ErrorIs(t, err, errNotConfirmed)

	stdinIsTerminal = func() bool { return true }
	out, err := executeWithInput("y\n", "record", "delete", "clients", "cli-3001")
	require.NoError(t, err)
	assert.Contains(t, out, "Delete record cli-3001 from clients? [y/N]:")
	assert.Contains(t, out, "Deleted record cli-3001 from clients.")

	records, err := recordService.List(context.Background(), "clients")
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestRecordCheckCmd(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	out, err := executeCommand("record", "check", "clients", "name=Acme", "segment=Unknown")
	require.NoError(t, err)
	assert.Contains(t, out, "segment: value must be one of: SMB, Mid-Market, Enterprise")

	out, err = executeCommand("record", "check", "clients", "name=Acme", "segment=smb")
	require.NoError(t, err)
	assert.Contains(t, out, "No issues found.")
}
