package controllers_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"blogicum/controllers"
	"blogicum/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAPIListPosts(t *testing.T) {
	h := newHarness(t)
	author := testutil.CreateUser(t, h.db, "")
	travel := testutil.CreateCategory(t, h.db, "travel", true)
	visible := testutil.CreatePost(t, h.db, author, travel)
	testutil.CreatePost(t, h.db, author, travel, testutil.PubDate(h.clock.NowUtc().Add(time.Hour)))

	w := h.get("/api/v1/posts", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp controllers.PostListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 1)
	assert.Equal(t, visible.ID, resp.Data[0].ID)
	assert.Equal(t, author.Username, resp.Data[0].Author.Username)
	assert.Empty(t, resp.Data[0].Author.Password)
	assert.Equal(t, 1, resp.Page)
	assert.Equal(t, 1, resp.TotalPages)
	assert.NotContains(t, w.Body.String(), author.Email)
	assert.NotContains(t, w.Body.String(), `"email"`)

	assert.Equal(t, http.StatusNotFound, h.get("/api/v1/posts?page=2", nil).Code)
}

func TestAPIGetPost(t *testing.T) {
	h := newHarness(t)
	author := testutil.CreateUser(t, h.db, "")
	travel := testutil.CreateCategory(t, h.db, "travel", true)
	post := testutil.CreatePost(t, h.db, author, travel)
	draft := testutil.CreatePost(t, h.db, author, travel, testutil.Unpublished())

	w := h.get(fmt.Sprintf("/api/v1/posts/%d", post.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	var resp controllers.PostResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, post.Title, resp.Data.Title)
	assert.Empty(t, resp.Data.Author.Email)
	assert.NotContains(t, w.Body.String(), author.Email)

	w = h.get(fmt.Sprintf("/api/v1/posts/%d", draft.ID), author)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"Post not found"}`, w.Body.String())
}

func TestAPICategoryPosts(t *testing.T) {
	h := newHarness(t)
	author := testutil.CreateUser(t, h.db, "")
	travel := testutil.CreateCategory(t, h.db, "travel", true)
	secret := testutil.CreateCategory(t, h.db, "secret", false)
	testutil.CreatePost(t, h.db, author, travel)
	testutil.CreatePost(t, h.db, author, secret)

	w := h.get("/api/v1/categories/travel/posts", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var resp controllers.PostListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Data, 1)

	assert.Equal(t, http.StatusNotFound, h.get("/api/v1/categories/secret/posts", nil).Code)
}

func TestSwaggerDocIsServed(t *testing.T) {
	h := newHarness(t)
	w := h.get("/swagger/doc.json", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "/categories/{slug}/posts")
}
