package main

import (
	"bytes"
	"context"
	"testing"

	"blogicum/models"
	"blogicum/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryLifecycle(t *testing.T) {
	db := testutil.OpenTest(t)
	ctx := context.Background()
	var out bytes.Buffer

	require.NoError(t, run(ctx, db, []string{"migrate"}, &out))
	require.NoError(t, run(ctx, db, []string{"category-create", "-title", "Road Trips", "-description", "On the road"}, &out))
	assert.Contains(t, out.String(), `Created category "road-trips"`)

	var category models.Category
	require.NoError(t, db.Where("slug = ?", "road-trips").First(&category).Error)
	assert.False(t, category.IsPublished)

	require.NoError(t, run(ctx, db, []string{"category-publish", "road-trips"}, &out))
	require.NoError(t, db.First(&category, category.ID).Error)
	assert.True(t, category.IsPublished)

	require.NoError(t, run(ctx, db, []string{"category-hide", "road-trips"}, &out))
	require.NoError(t, db.First(&category, category.ID).Error)
	assert.False(t, category.IsPublished)

	out.Reset()
	require.NoError(t, run(ctx, db, []string{"category-list"}, &out))
	assert.Contains(t, out.String(), "road-trips")
}

func TestRunRejectsBadInput(t *testing.T) {
	db := testutil.OpenTest(t)
	ctx := context.Background()
	var out bytes.Buffer

	assert.Error(t, run(ctx, db, nil, &out))
	assert.Error(t, run(ctx, db, []string{"nope"}, &out))
	assert.Error(t, run(ctx, db, []string{"category-create"}, &out))
	assert.Error(t, run(ctx, db, []string{"category-publish"}, &out))
	assert.Error(t, run(ctx, db, []string{"category-hide", "missing"}, &out))
}
