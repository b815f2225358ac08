package csv

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/recordbook/internal/core/domain"
)

func TestParser_Parse(t *testing.T) {
	input := "policyNumber,holder,premium\nPOL-1,Northwind,\"1,200\"\nPOL-2,\"Contoso, Ltd\",900\n"

	table, err := New().Parse(context.Background(), strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, []string{"policyNumber", "holder", "premium"}, table.Header)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, []string{"POL-1", "Northwind", "1,200"}, table.Rows[0])
	assert.Equal(t, []string{"POL-2", "Contoso, Ltd", "900"}, table.Rows[1])
}

func TestParser_Parse_StripsBOM(t *testing.T) {
	input := "\xEF\xBB\xBFid,name\n1,Ada\n"

	table, err := New().Parse(context.Background(), strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, "id", table.Header[0])
}

func TestParser_Parse_RaggedRows(t *testing.T) {
	input := "a,b,c\n1\n1,2,3,4\n"

	table, err := New().Parse(context.Background(), strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, []string{"1"}, table.Rows[0])
	assert.Equal(t, []string{"1", "2", "3", "4"}, table.Rows[1])
}

func TestParser_Parse_Empty(t *testing.T) {
	table, err := New().Parse(context.Background(), strings.NewReader(""))
	require.NoError(t, err)
	assert.Nil(t, table.Header)
	assert.Empty(t, table.Rows)
}

func TestParser_Parse_HeaderOnly(t *testing.T) {
	table, err := New().Parse(context.Background(), strings.NewReader("a,b\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, table.Header)
	assert.Empty(t, table.Rows)
}

func TestParser_Parse_Malformed(t *testing.T) {
	input := "a,b\n1,\"unterminated\n"

	_, err := New().Parse(context.Background(), strings.NewReader(input))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrParse)

	var pe *domain.ParseError
	require.ErrorAs(t, err, &pe)
	assert.Positive(t, pe.Line)
}

func TestParser_Parse_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New().Parse(ctx, strings.NewReader("a\n1\n"))
	assert.ErrorIs(t, err, context.Canceled)
}
