package controllers_test

import (
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"blogicum/config"
	"blogicum/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndexListsOnlyVisiblePosts(t *testing.T) {
	h := newHarness(t)
	now := h.clock.NowUtc()
	author := testutil.CreateUser(t, h.db, "")
	travel := testutil.CreateCategory(t, h.db, "travel", true)
	hidden := testutil.CreateCategory(t, h.db, "hidden", false)

	testutil.CreatePost(t, h.db, author, travel, withTitle("Visible one"))
	testutil.CreatePost(t, h.db, author, travel, withTitle("Scheduled one"), testutil.PubDate(now.Add(time.Hour)))
	testutil.CreatePost(t, h.db, author, travel, withTitle("Draft one"), testutil.Unpublished())
	testutil.CreatePost(t, h.db, author, hidden, withTitle("Hidden category one"))

	for _, as := range []string{"anonymous", "author"} {
		t.Run(as, func(t *testing.T) {
			viewer := author
			if as == "anonymous" {
				viewer = nil
			}
			w := h.get("/", viewer)
			require.Equal(t, http.StatusOK, w.Code)
			body := w.Body.String()
			assert.Contains(t, body, "Visible one")
			assert.NotContains(t, body, "Scheduled one")
			assert.NotContains(t, body, "Draft one")
			assert.NotContains(t, body, "Hidden category one")
		})
	}
}

func TestIndexPaginatesByTen(t *testing.T) {
	h := newHarness(t)
	now := h.clock.NowUtc()
	author := testutil.CreateUser(t, h.db, "")
	travel := testutil.CreateCategory(t, h.db, "travel", true)
	for i := 0; i < 11; i++ {
		testutil.CreatePost(t, h.db, author, travel, testutil.PubDate(now.Add(-time.Duration(i+1)*time.Minute)))
	}

	first := h.get("/", nil)
	require.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, 10, strings.Count(first.Body.String(), `class="card post"`))
	assert.Contains(t, first.Body.String(), `href="/?page=2"`)

	second := h.get("/?page=2", nil)
	require.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, 1, strings.Count(second.Body.String(), `class="card post"`))

	assert.Equal(t, http.StatusNotFound, h.get("/?page=3", nil).Code)
	assert.Equal(t, http.StatusNotFound, h.get("/?page=zero", nil).Code)
	assert.Equal(t, http.StatusNotFound, h.get("/?page=0", nil).Code)
}

func TestIndexEmptyFirstPage(t *testing.T) {
	h := newHarness(t)
	w := h.get("/", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "No posts yet.")
}

func TestCategoryPosts(t *testing.T) {
	h := newHarness(t)
	author := testutil.CreateUser(t, h.db, "")
	travel := testutil.CreateCategory(t, h.db, "travel", true)
	food := testutil.CreateCategory(t, h.db, "food", true)
	testutil.CreatePost(t, h.db, author, travel, withTitle("Alps by train"))
	testutil.CreatePost(t, h.db, author, food, withTitle("Sourdough basics"))

	w := h.get("/category/travel/", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Alps by train")
	assert.NotContains(t, w.Body.String(), "Sourdough basics")

	assert.Equal(t, http.StatusNotFound, h.get("/category/nowhere/", nil).Code)
}

func TestUnpublishedCategoryIs404(t *testing.T) {
	h := newHarness(t)
	author := testutil.CreateUser(t, h.db, "")
	travel := testutil.CreateCategory(t, h.db, "travel", false)
	testutil.CreatePost(t, h.db, author, travel)

	assert.Equal(t, http.StatusNotFound, h.get("/category/travel/", nil).Code)
	assert.Equal(t, http.StatusNotFound, h.get("/category/travel/", author).Code)
}

func TestPostDetail(t *testing.T) {
	h := newHarness(t)
	author := testutil.CreateUser(t, h.db, "")
	reader := testutil.CreateUser(t, h.db, "")
	travel := testutil.CreateCategory(t, h.db, "travel", true)
	post := testutil.CreatePost(t, h.db, author, travel, withTitle("Alps by train"))
	comment := testutil.CreateComment(t, h.db, reader, post)

	w := h.get(fmt.Sprintf("/posts/%d/", post.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Alps by train")
	assert.Contains(t, body, comment.Text)
	assert.Contains(t, body, "Log in")

	w = h.get(fmt.Sprintf("/posts/%d/", post.ID), reader)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), fmt.Sprintf(`action="/posts/%d/comment/"`, post.ID))

	assert.Equal(t, http.StatusNotFound, h.get("/posts/999/", nil).Code)
	assert.Equal(t, http.StatusNotFound, h.get("/posts/abc/", nil).Code)
}

func TestHiddenPostDetailIs404ForEveryone(t *testing.T) {
	h := newHarness(t)
	now := h.clock.NowUtc()
	author := testutil.CreateUser(t, h.db, "")
	stranger := testutil.CreateUser(t, h.db, "")
	travel := testutil.CreateCategory(t, h.db, "travel", true)
	hiddenCategory := testutil.CreateCategory(t, h.db, "secret", false)

	posts := map[string]uint{
		"scheduled":       testutil.CreatePost(t, h.db, author, travel, testutil.PubDate(now.Add(time.Minute))).ID,
		"unpublished":     testutil.CreatePost(t, h.db, author, travel, testutil.Unpublished()).ID,
		"hidden category": testutil.CreatePost(t, h.db, author, hiddenCategory).ID,
	}

	for name, id := range posts {
		t.Run(name, func(t *testing.T) {
			path := fmt.Sprintf("/posts/%d/", id)
			assert.Equal(t, http.StatusNotFound, h.get(path, nil).Code)
			assert.Equal(t, http.StatusNotFound, h.get(path, stranger).Code)
			assert.Equal(t, http.StatusNotFound, h.get(path, author).Code)
		})
	}
}

func TestScheduledPostAppearsOnceDue(t *testing.T) {
	h := newHarness(t)
	author := testutil.CreateUser(t, h.db, "")
	travel := testutil.CreateCategory(t, h.db, "travel", true)
	post := testutil.CreatePost(t, h.db, author, travel, testutil.PubDate(h.clock.NowUtc().Add(time.Hour)))
	path := fmt.Sprintf("/posts/%d/", post.ID)

	assert.Equal(t, http.StatusNotFound, h.get(path, nil).Code)
	h.clock.Advance(time.Hour)
	assert.Equal(t, http.StatusOK, h.get(path, nil).Code)
}

func TestBasePathMount(t *testing.T) {
	h := newHarness(t, func(cfg *config.Config) { cfg.BasePath = "/blog" })
	author := testutil.CreateUser(t, h.db, "")
	travel := testutil.CreateCategory(t, h.db, "travel", true)
	post := testutil.CreatePost(t, h.db, author, travel)

	w := h.get("/blog/", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), fmt.Sprintf(`href="/blog/posts/%d/"`, post.ID))

	requireRedirect(t, h.get("/blog/posts/create/", nil), "/blog/auth/login/?next=%2Fblog%2Fposts%2Fcreate%2F")
}

func TestUnknownRouteRendersNotFoundPage(t *testing.T) {
	h := newHarness(t)
	w := h.get("/no/such/page/", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
}

func TestHealth(t *testing.T) {
	h := newHarness(t)
	w := h.get("/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}
