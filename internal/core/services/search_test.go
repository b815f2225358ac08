package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/recordbook/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/recordbook/internal/core/domain"
)

func TestSearchService_Search_ScoresByTokenCount(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	svc := NewSearchService(env.ws, nil)

	results, err := svc.Search(ctx, "clients", "contoso ENTERPRISE", 0)
	require.NoError(t, err)

	require.NotEmpty(t, results)
	assert.Equal(t, "c2", results[0].Record.ID)
	assert.Equal(t, 2, results[0].Score)
}

func TestSearchService_Search_StableOrdering(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	svc := NewSearchService(env.ws, nil)

	results, err := svc.Search(ctx, "clients", "@", 0)
	require.NoError(t, err)

	ids := make([]string, len(results))
	for i, r := range results {
		ids[i] = r.Record.ID
	}
	assert.Equal(t, []string{"c1", "c2", "c3"}, ids)
}

func TestSearchService_Search_MatchesID(t *testing.T) {
	env := newTestEnv(t)

	results, err := NewSearchService(env.ws, nil).Search(context.Background(), "clients", "C3", 0)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "c3", results[0].Record.ID)
}

func TestSearchService_Search_EmptyQuery(t *testing.T) {
	env := newTestEnv(t)

	results, err := NewSearchService(env.ws, nil).Search(context.Background(), "clients", "   ", 0)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSearchService_Search_Limit(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	for i := 0; i < 10; i++ {
		_, err := env.records.Add(ctx, "brokers", domain.NewRecord(fmt.Sprintf("b%d", i), map[string]string{"name": "Broker"}))
		require.NoError(t, err)
	}

	results, err := NewSearchService(env.ws, nil).Search(ctx, "brokers", "broker", 0)
	require.NoError(t, err)
	assert.Len(t, results, domain.DefaultSearchLimit)

	results, err = NewSearchService(env.ws, nil).Search(ctx, "brokers", "broker", 3)
	require.NoError(t, err)
	assert.Len(t, results, 3)

	config := memory.NewConfigStore()
	_ = config.Set(KeySearchLimit, 8)
	results, err = NewSearchService(env.ws, NewSettingsService(config)).Search(ctx, "brokers", "broker", 0)
	require.NoError(t, err)
	assert.Len(t, results, 8)
}

func TestSearchService_Search_UnknownModule(t *testing.T) {
	env := newTestEnv(t)

	_, err := NewSearchService(env.ws, nil).Search(context.Background(), "nope", "x", 0)
	assert.ErrorIs(t, err, domain.ErrUnknownModule)
}

func TestSearchService_Suggestions(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	for i := 0; i < 8; i++ {
		_, err := env.records.Add(ctx, "clients", domain.NewRecord("", map[string]string{
			"name":    fmt.Sprintf("Client %d", i),
			"segment": "SMB",
		}))
		require.NoError(t, err)
	}

	got, err := NewSearchService(env.ws, nil).Suggestions(ctx, "clients")
	require.NoError(t, err)

	assert.Equal(t, []string{"Northwind", "Contoso", "Fabrikam", "Client 0", "Client 1", "Client 2"}, got["name"])
	assert.Equal(t, []string{"SMB", "Enterprise"}, got["segment"])
	assert.Equal(t, []string{"a@x.com", "A@X.com", "b@y.com"}, got["email"])
	assert.NotContains(t, got, "phone")
}
