package service

import (
	"context"
	"testing"

	"digiwallet/internal/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategories(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	food, err := f.categories.CreateCategory(ctx, " Food ")
	require.NoError(t, err)
	assert.Equal(t, "Food", food.Name)

	_, err = f.categories.CreateCategory(ctx, "Food")
	assertKind(t, apperror.AlreadyExists, err)
	_, err = f.categories.CreateCategory(ctx, "   ")
	assertKind(t, apperror.InvalidArgument, err)

	_, err = f.categories.CreateCategory(ctx, "Bills")
	require.NoError(t, err)
	all, err := f.categories.ListCategories(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Bills", all[0].Name)

	got, err := f.categories.GetCategory(ctx, food.ID)
	require.NoError(t, err)
	assert.Equal(t, food, got)
	_, err = f.categories.GetCategory(ctx, 42)
	assertKind(t, apperror.NotFound, err)
}
