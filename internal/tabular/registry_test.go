package tabular

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/recordbook/internal/core/domain"
)

func TestDefault_ForFile(t *testing.T) {
	reg := Default()

	tests := []struct {
		name string
		ext  string
	}{
		{"policies.csv", ".csv"},
		{"POLICIES.CSV", ".csv"},
		{"book.xlsx", ".xlsx"},
		{"Book.XLS", ".xls"},
		{"dir/nested/claims.Csv", ".csv"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := reg.ForFile(tt.name)
			require.NoError(t, err)
			assert.Contains(t, p.Extensions(), tt.ext)
			assert.True(t, reg.Supports(tt.name))
		})
	}
}

func TestDefault_ForFile_Unsupported(t *testing.T) {
	reg := Default()

	for _, name := range []string{"notes.txt", "archive.csv.gz", "noextension", ".csv.bak"} {
		t.Run(name, func(t *testing.T) {
			_, err := reg.ForFile(name)
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrUnsupportedFormat)

			var ufe *domain.UnsupportedFormatError
			require.True(t, errors.As(err, &ufe))
			assert.Equal(t, name, ufe.FileName)
			assert.False(t, reg.Supports(name))
		})
	}
}

func TestRegistry_Empty(t *testing.T) {
	reg := NewRegistry()

	_, err := reg.ForFile("a.csv")
	assert.ErrorIs(t, err, domain.ErrUnsupportedFormat)
	assert.Empty(t, reg.Extensions())
}

func TestDefault_Extensions(t *testing.T) {
	assert.ElementsMatch(t, []string{".csv", ".xls", ".xlsx"}, Default().Extensions())
}
