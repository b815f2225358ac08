package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/recordbook/internal/core/domain"
)

func TestNormalizeKey(t *testing.T) {
	tests := map[string]string{
		"A@X.com ":              "a@x.com",
		"  Northwind   Traders": "northwind traders",
		"Tab\tand\nnewline":     "tab and newline",
		"STRASSE":               "strasse",
		"   ":                   "",
	}
	for in, want := range tests {
		assert.Equal(t, want, NormalizeKey(in), "input %q", in)
	}
}

func TestDetectDuplicates_EmailExample(t *testing.T) {
	fields := []domain.FieldDefinition{{ID: "email", Label: "Email", Type: domain.FieldEmail}}
	records := []domain.Record{
		domain.NewRecord("1", map[string]string{"email": "a@x.com"}),
		domain.NewRecord("2", map[string]string{"email": "A@X.com "}),
		domain.NewRecord("3", map[string]string{"email": "b@y.com"}),
	}

	groups := DetectDuplicates(fields, records)

	assert.Equal(t, []domain.DuplicateGroup{{
		FieldID:    "email",
		FieldLabel: "Email",
		Key:        "a@x.com",
		RecordIDs:  []string{"1", "2"},
	}}, groups)
}

func TestDetectDuplicates_OnlyMatchKeyFields(t *testing.T) {
	fields := []domain.FieldDefinition{
		{ID: "status", Label: "Status", Type: domain.FieldStatus},
		{ID: "amount", Label: "Amount", Type: domain.FieldCurrency},
		{ID: "seg", Label: "Segment", Type: domain.FieldSelect, Options: []string{"A"}},
		{ID: "when", Label: "When", Type: domain.FieldDate},
		{ID: "n", Label: "N", Type: domain.FieldNumber},
		{ID: "notes", Label: "Notes", Type: domain.FieldTextarea},
	}
	values := map[string]string{"status": "Open", "amount": "10", "seg": "A", "when": "2024-01-01", "n": "1", "notes": "same"}
	records := []domain.Record{domain.NewRecord("1", values), domain.NewRecord("2", values)}

	assert.Empty(t, DetectDuplicates(fields, records))
}

func TestDetectDuplicates_SkipsEmptyKeysAndSingletons(t *testing.T) {
	fields := []domain.FieldDefinition{{ID: "phone", Label: "Phone", Type: domain.FieldPhone}}
	records := []domain.Record{
		domain.NewRecord("1", map[string]string{"phone": "  "}),
		domain.NewRecord("2", map[string]string{}),
		domain.NewRecord("3", map[string]string{"phone": "555"}),
	}

	groups := DetectDuplicates(fields, records)
	assert.NotNil(t, groups)
	assert.Empty(t, groups)
}

func TestDetectDuplicates_RecordInSeveralGroups(t *testing.T) {
	fields := []domain.FieldDefinition{
		{ID: "name", Label: "Name", Type: domain.FieldText},
		{ID: "email", Label: "Email", Type: domain.FieldEmail},
	}
	records := []domain.Record{
		domain.NewRecord("1", map[string]string{"name": "Zed", "email": "z@x"}),
		domain.NewRecord("2", map[string]string{"name": "Amy", "email": "a@x"}),
		domain.NewRecord("3", map[string]string{"name": "zed", "email": "a@x"}),
		domain.NewRecord("4", map[string]string{"name": "amy ", "email": "Z@X"}),
	}

	groups := DetectDuplicates(fields, records)

	require.Len(t, groups, 4)
	assert.Equal(t, "name", groups[0].FieldID)
	assert.Equal(t, "zed", groups[0].Key, "first appearance order")
	assert.Equal(t, []string{"1", "3"}, groups[0].RecordIDs)
	assert.Equal(t, "amy", groups[1].Key)
	assert.Equal(t, []string{"2", "4"}, groups[1].RecordIDs)
	assert.Equal(t, "email", groups[2].FieldID)
	assert.Equal(t, []string{"1", "4"}, groups[2].RecordIDs)
	assert.Equal(t, []string{"2", "3"}, groups[3].RecordIDs)
}

func TestDuplicateService_Refresh(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	groups, err := env.duplicates.Groups(ctx, "clients")
	require.NoError(t, err)
	assert.Nil(t, groups, "no result before first refresh")

	before := env.ws.Snapshot()
	groups, err = env.duplicates.Refresh(ctx, "clients")
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, []string{"c1", "c2"}, groups[0].RecordIDs)

	assert.Equal(t, before, env.ws.Snapshot(), "detection is read-only")
	assert.Zero(t, env.sink.count(), "results are never persisted")

	last, err := env.duplicates.Groups(ctx, "clients")
	require.NoError(t, err)
	assert.Equal(t, groups, last)
}

func TestDuplicateService_RefreshReplacesPriorResult(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	_, err := env.duplicates.Refresh(ctx, "clients")
	require.NoError(t, err)
	require.NoError(t, env.records.Update(ctx, "clients", "c2", map[string]string{"email": "other@x.com"}))

	stale, _ := env.duplicates.Groups(ctx, "clients")
	assert.Len(t, stale, 1, "not updated incrementally")

	fresh, err := env.duplicates.Refresh(ctx, "clients")
	require.NoError(t, err)
	assert.Empty(t, fresh)

	last, _ := env.duplicates.Groups(ctx, "clients")
	assert.NotNil(t, last)
	assert.Empty(t, last)
}

func TestDuplicateService_GroupsAreCopies(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	groups, _ := env.duplicates.Refresh(ctx, "clients")
	groups[0].RecordIDs[0] = "mutated"

	last, _ := env.duplicates.Groups(ctx, "clients")
	assert.Equal(t, "c1", last[0].RecordIDs[0])
}

func TestDuplicateService_UnknownModule(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.duplicates.Refresh(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrUnknownModule)
	_, err = env.duplicates.Groups(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrUnknownModule)
}
