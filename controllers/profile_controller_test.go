package controllers_test

import (
	"net/http"
	"net/url"
	"testing"
	"time"

	"blogicum/models"
	"blogicum/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileShowsOwnPostsWhateverTheirVisibility(t *testing.T) {
	h := newHarness(t)
	now := h.clock.NowUtc()
	alice := testutil.CreateUser(t, h.db, "alice")
	hidden := testutil.CreateCategory(t, h.db, "hidden", false)
	testutil.CreatePost(t, h.db, alice, hidden, withTitle("Draft in a hidden category"), testutil.Unpublished())
	testutil.CreatePost(t, h.db, alice, hidden, withTitle("Future post"), testutil.PubDate(now.Add(24*time.Hour)))

	w := h.get("/accounts/profile/alice/", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Draft in a hidden category")
	assert.Contains(t, w.Body.String(), "Future post")
	assert.NotContains(t, w.Body.String(), "Edit profile")

	w = h.get("/accounts/profile/alice/", alice)
	assert.Contains(t, w.Body.String(), "Edit profile")

	assert.Equal(t, http.StatusNotFound, h.get("/accounts/profile/nobody/", nil).Code)
}

func TestProfileShowsAtMostTenNewestPosts(t *testing.T) {
	h := newHarness(t)
	now := h.clock.NowUtc()
	alice := testutil.CreateUser(t, h.db, "alice")
	travel := testutil.CreateCategory(t, h.db, "travel", true)
	testutil.CreatePost(t, h.db, alice, travel, withTitle("Oldest"), testutil.CreatedAt(now.Add(-48*time.Hour)))
	for i := 0; i < 10; i++ {
		testutil.CreatePost(t, h.db, alice, travel, testutil.CreatedAt(now.Add(-time.Duration(i)*time.Minute)))
	}

	w := h.get("/accounts/profile/alice/", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "Oldest")
}

func TestEditProfile(t *testing.T) {
	h := newHarness(t)
	alice := testutil.CreateUser(t, h.db, "alice")
	testutil.CreateUser(t, h.db, "bob")

	w := h.get("/edit_profile/", alice)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), alice.Email)

	form := url.Values{
		"first_name": {"Alice"},
		"last_name":  {"Liddell"},
		"username":   {"alice2"},
		"email":      {"alice2@example.com"},
	}
	requireRedirect(t, h.post("/edit_profile/", form, alice), "/accounts/profile/alice2/")

	var reloaded models.User
	require.NoError(t, h.db.First(&reloaded, alice.ID).Error)
	assert.Equal(t, "alice2", reloaded.Username)
	assert.Equal(t, "Liddell", reloaded.LastName)
	assert.Equal(t, alice.Password, reloaded.Password)

	form.Set("username", "bob")
	w = h.post("/edit_profile/", form, &reloaded)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "A user with that username already exists.")

	form.Set("username", "not valid!")
	w = h.post("/edit_profile/", form, &reloaded)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "Use letters and digits only.")
}
