package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/recordbook/internal/core/domain"
)

func TestDuplicatesCmd_Executes(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	out, err := executeCommand("duplicates", "clients")

	require.NoError(t, err)
	assert.Contains(t, out, `Client Name = "northwind traders"`)
	assert.Contains(t, out, `Email = "ana@northwind.example"`)
	assert.Contains(t, out, "Records: cli-3001, cli-3003")
	assert.Contains(t, out, "Total: 2 groups")

	summary, err := executeCommand("module", "show", "clients")
	require.NoError(t, err)
	assert.Contains(t, summary, "Duplicates:  2")
}

func TestDuplicatesCmd_JSON(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	out, err := executeCommand("duplicates", "clients", "--json")
	require.NoError(t, err)

	var groups []domain.DuplicateGroup
	require.NoError(t, json.Unmarshal([]byte(out), &groups))
	require.Len(t, groups, 2)
	assert.Equal(t, "name", groups[0].FieldID)
	assert.Equal(t, []string{"cli-3001", "cli-3003"}, groups[0].RecordIDs)
}

func TestDuplicatesCmd_NoneFound(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	out, err := executeCommand("duplicates", "brokers")

	require.NoError(t, err)
	assert.Contains(t, out, "No duplicates found in brokers.")
}
