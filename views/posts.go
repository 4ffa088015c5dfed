package views

import (
	"fmt"

	"blogicum/models"
	"blogicum/services"
	"blogicum/utils"

	g "github.com/maragudk/gomponents"
	. "github.com/maragudk/gomponents/html"
)

const dateLayout = "2 Jan 2006, 15:04"

func postCard(u utils.URLs, post models.Post) g.Node {
	return Article(Class("card post"),
		H2(A(Href(u.PostDetail(post.ID)), g.Text(post.Title))),
		P(Class("meta"),
			Small(
				g.Text(post.PubDate.Format(dateLayout)+" by "),
				A(Href(u.Profile(post.Author.Username)), g.Text("@"+post.Author.Username)),
				g.If(post.Category.Slug != "", g.Group([]g.Node{
					g.Text(" in "),
					A(Href(u.Category(post.Category.Slug)), g.Text(post.Category.Title)),
				})),
			),
		),
		P(g.Text(excerpt(post.Text, 280))),
	)
}

func excerpt(text string, max int) string {
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return string(runes[:max]) + "…"
}

func paginator(page utils.Page, link func(n int) string) g.Node {
	if page.TotalPages <= 1 {
		return nil
	}
	return Nav(Class("pagination"),
		g.If(page.HasPrevious(), A(Href(link(page.Number-1)), g.Text("« Previous"))),
		Span(g.Textf(" Page %d of %d ", page.Number, page.TotalPages)),
		g.If(page.HasNext(), A(Href(link(page.Number+1)), g.Text("Next »"))),
	)
}

func postList(u utils.URLs, posts []models.Post) g.Node {
	if len(posts) == 0 {
		return P(Class("empty"), g.Text("No posts yet."))
	}
	return g.Group(g.Map(posts, func(p models.Post) g.Node { return postCard(u, p) }))
}

func IndexPage(props LayoutProps, page *services.PostPage) g.Node {
	return Layout(props,
		H1(g.Text("Latest posts")),
		postList(props.URLs, page.Posts),
		paginator(page.Page, props.URLs.IndexPage),
	)
}

func CategoryPage(props LayoutProps, category *models.Category, page *services.PostPage) g.Node {
	props.Title = category.Title
	return Layout(props,
		H1(g.Text(category.Title)),
		g.If(category.Description != "", P(Class("lead"), g.Text(category.Description))),
		postList(props.URLs, page.Posts),
		paginator(page.Page, func(n int) string { return props.URLs.CategoryPage(category.Slug, n) }),
	)
}

// PostDetailData is everything the single post page shows.
type PostDetailData struct {
	Post        *models.Post
	Comments    []models.Comment
	CommentForm models.CommentForm
	Errors      map[string]string
}

func PostDetailPage(props LayoutProps, data PostDetailData) g.Node {
	u := props.URLs
	post := data.Post
	props.Title = post.Title
	isAuthor := props.CurrentUser != nil && props.CurrentUser.ID == post.AuthorID

	return Layout(props,
		Article(Class("post-detail"),
			H1(g.Text(post.Title)),
			P(Class("meta"), Small(
				g.Text(post.PubDate.Format(dateLayout)+" by "),
				A(Href(u.Profile(post.Author.Username)), g.Text("@"+post.Author.Username)),
				g.Text(" in "),
				A(Href(u.Category(post.Category.Slug)), g.Text(post.Category.Title)),
			)),
			g.If(isAuthor, Div(Class("actions"),
				A(Href(u.EditPost(post.ID)), g.Text("Edit")),
				A(Href(u.DeletePost(post.ID)), g.Text("Delete")),
			)),
			Div(Class("post-body"), Markdown(post.Text)),
		),
		Section(Class("comments"), ID("comments"), g.Attr("data-live", u.LivePost(post.ID)),
			H2(g.Textf("Comments (%d)", len(data.Comments))),
			g.Group(g.Map(data.Comments, func(c models.Comment) g.Node {
				return commentItem(props, c)
			})),
			g.If(props.CurrentUser != nil,
				commentForm(u.AddComment(post.ID), data.CommentForm, data.Errors, "Send"),
			),
			g.If(props.CurrentUser == nil,
				P(A(Href(u.LoginNext(u.PostDetail(post.ID))), g.Text("Log in")), g.Text(" to leave a comment.")),
			),
		),
		Script(g.Raw(liveCommentsScript)),
	)
}

func commentItem(props LayoutProps, c models.Comment) g.Node {
	u := props.URLs
	own := props.CurrentUser != nil && props.CurrentUser.ID == c.AuthorID
	return Div(Class("comment"), ID(fmt.Sprintf("comment-%d", c.ID)),
		P(Class("meta"), Small(
			A(Href(u.Profile(c.Author.Username)), g.Text("@"+c.Author.Username)),
			g.Text(" "+c.CreatedAt.Format(dateLayout)),
		)),
		P(g.Text(c.Text)),
		g.If(own, Div(Class("actions"),
			A(Href(u.EditComment(c.PostID, c.ID)), g.Text("Edit")),
			A(Href(u.DeleteComment(c.PostID, c.ID)), g.Text("Delete")),
		)),
	)
}

// liveCommentsScript reloads the comment section when another viewer
// changes it.
const liveCommentsScript = `
(function () {
  var section = document.getElementById('comments');
  if (!section || !window.WebSocket) { return; }
  var proto = location.protocol === 'https:' ? 'wss://' : 'ws://';
  var ws = new WebSocket(proto + location.host + section.dataset.live);
  ws.onmessage = function (ev) {
    var msg = JSON.parse(ev.data);
    if (msg.type && msg.type.indexOf('comment_') === 0) { location.reload(); }
  };
})();
`
