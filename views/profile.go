package views

import (
	"blogicum/models"

	g "github.com/maragudk/gomponents"
	. "github.com/maragudk/gomponents/html"
)

func ProfilePage(props LayoutProps, user *models.User, posts []models.Post) g.Node {
	props.Title = user.Username
	own := props.CurrentUser != nil && props.CurrentUser.ID == user.ID
	return Layout(props,
		H1(g.Text("@"+user.Username)),
		g.If(user.FullName() != "", P(Class("lead"), g.Text(user.FullName()))),
		P(Small(g.Text("Joined "+user.CreatedAt.Format("2 Jan 2006")))),
		g.If(own, P(A(Href(props.URLs.EditProfile()), g.Text("Edit profile")))),
		H2(g.Text("Posts")),
		postList(props.URLs, withAuthor(posts, user)),
	)
}

func withAuthor(posts []models.Post, user *models.User) []models.Post {
	for i := range posts {
		posts[i].Author = *user
	}
	return posts
}

func ProfileFormPage(props LayoutProps, form models.ProfileForm, errs map[string]string) g.Node {
	props.Title = "Edit profile"
	return Layout(props,
		H1(g.Text("Edit profile")),
		formErrors(errs),
		Form(Method("post"), Action(props.URLs.EditProfile()),
			textField("First name", "first_name", form.FirstName, "text", errs),
			textField("Last name", "last_name", form.LastName, "text", errs),
			textField("Username", "username", form.Username, "text", errs),
			textField("Email", "email", form.Email, "email", errs),
			Button(Type("submit"), g.Text("Save")),
		),
	)
}
