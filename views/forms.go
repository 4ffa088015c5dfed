package views

import (
	"strconv"

	"blogicum/models"

	g "github.com/maragudk/gomponents"
	. "github.com/maragudk/gomponents/html"
)

func fieldError(errs map[string]string, field string) g.Node {
	msg, ok := errs[field]
	if !ok {
		return nil
	}
	return P(Class("text-error field-error"), g.Text(msg))
}

func formErrors(errs map[string]string) g.Node {
	msg, ok := errs["__all__"]
	if !ok {
		return nil
	}
	return Div(Class("text-error form-error"), g.Text(msg))
}

func textField(label, name, value, inputType string, errs map[string]string) g.Node {
	return Div(Class("field"),
		Label(For(name), g.Text(label)),
		Input(Type(inputType), Name(name), ID(name), Value(value)),
		fieldError(errs, name),
	)
}

func commentForm(action string, form models.CommentForm, errs map[string]string, submit string) g.Node {
	return Form(Method("post"), Action(action), Class("comment-form"),
		Div(Class("field"),
			Label(For("text"), g.Text("Comment")),
			Textarea(Name("text"), ID("text"), g.Attr("rows", "4"), g.Text(form.Text)),
			fieldError(errs, "text"),
		),
		Button(Type("submit"), g.Text(submit)),
	)
}

// PostFormData drives both the create and edit post pages.
type PostFormData struct {
	Heading    string
	Action     string
	Form       models.PostForm
	Categories []models.Category
	Errors     map[string]string
}

func PostFormPage(props LayoutProps, data PostFormData) g.Node {
	props.Title = data.Heading
	return Layout(props,
		H1(g.Text(data.Heading)),
		formErrors(data.Errors),
		Form(Method("post"), Action(data.Action), Class("post-form"),
			textField("Title", "title", data.Form.Title, "text", data.Errors),
			Div(Class("field"),
				Label(For("text"), g.Text("Text")),
				Textarea(Name("text"), ID("text"), g.Attr("rows", "12"), g.Text(data.Form.Text)),
				fieldError(data.Errors, "text"),
			),
			textField("Publication date", "pub_date", data.Form.PubDate, "datetime-local", data.Errors),
			Div(Class("field"),
				Label(For("category"), g.Text("Category")),
				Select(Name("category"), ID("category"),
					g.Group(g.Map(data.Categories, func(c models.Category) g.Node {
						return Option(
							Value(strconv.FormatUint(uint64(c.ID), 10)),
							g.If(c.ID == data.Form.CategoryID, Selected()),
							g.Text(c.Title),
						)
					})),
				),
				fieldError(data.Errors, "category"),
			),
			Div(Class("field"),
				Label(
					Input(Type("checkbox"), Name("is_published"), Value("true"), g.If(data.Form.IsPublished, Checked())),
					g.Text(" Published"),
				),
			),
			Button(Type("submit"), g.Text("Save")),
		),
	)
}

func DeletePostPage(props LayoutProps, post *models.Post, action string) g.Node {
	props.Title = "Delete post"
	return Layout(props,
		H1(g.Text("Delete post")),
		Article(Class("card"),
			H2(g.Text(post.Title)),
			Div(Class("post-body"), Markdown(post.Text)),
		),
		Form(Method("post"), Action(action),
			P(g.Text("This also removes every comment on the post.")),
			Button(Type("submit"), Class("button error"), g.Text("Delete")),
		),
	)
}

func CommentFormPage(props LayoutProps, action string, form models.CommentForm, errs map[string]string) g.Node {
	props.Title = "Comment"
	return Layout(props,
		H1(g.Text("Comment")),
		commentForm(action, form, errs, "Save"),
	)
}

func DeleteCommentPage(props LayoutProps, comment *models.Comment, action string) g.Node {
	props.Title = "Delete comment"
	return Layout(props,
		H1(g.Text("Delete comment")),
		Div(Class("comment"), P(g.Text(comment.Text))),
		Form(Method("post"), Action(action),
			Button(Type("submit"), Class("button error"), g.Text("Delete")),
		),
	)
}

func LoginPage(props LayoutProps, username, next string, errs map[string]string) g.Node {
	props.Title = "Log in"
	return Layout(props,
		H1(g.Text("Log in")),
		formErrors(errs),
		Form(Method("post"), Action(props.URLs.Login()),
			Input(Type("hidden"), Name("next"), Value(next)),
			textField("Username", "username", username, "text", errs),
			textField("Password", "password", "", "password", errs),
			Button(Type("submit"), g.Text("Log in")),
		),
		P(A(Href(props.URLs.Registration()), g.Text("No account yet? Sign up."))),
	)
}

func RegisterPage(props LayoutProps, form models.RegisterRequest, errs map[string]string) g.Node {
	props.Title = "Sign up"
	return Layout(props,
		H1(g.Text("Sign up")),
		formErrors(errs),
		Form(Method("post"), Action(props.URLs.Registration()),
			textField("Username", "username", form.Username, "text", errs),
			textField("Email", "email", form.Email, "email", errs),
			textField("First name", "first_name", form.FirstName, "text", errs),
			textField("Last name", "last_name", form.LastName, "text", errs),
			textField("Password", "password", "", "password", errs),
			Button(Type("submit"), g.Text("Sign up")),
		),
	)
}
