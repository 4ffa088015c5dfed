package utils

import (
	"fmt"
	"net/url"
)

// URLs builds the site's paths under an optional mount prefix.
type URLs struct {
	Base string
}

func (u URLs) Index() string { return u.Base + "/" }

func (u URLs) IndexPage(n int) string {
	if n <= 1 {
		return u.Index()
	}
	return fmt.Sprintf("%s/?page=%d", u.Base, n)
}

func (u URLs) PostDetail(postID uint) string {
	return fmt.Sprintf("%s/posts/%d/", u.Base, postID)
}

func (u URLs) Category(slug string) string {
	return fmt.Sprintf("%s/category/%s/", u.Base, url.PathEscape(slug))
}

func (u URLs) CategoryPage(slug string, n int) string {
	if n <= 1 {
		return u.Category(slug)
	}
	return fmt.Sprintf("%s?page=%d", u.Category(slug), n)
}

func (u URLs) Profile(username string) string {
	return fmt.Sprintf("%s/accounts/profile/%s/", u.Base, url.PathEscape(username))
}

func (u URLs) EditProfile() string { return u.Base + "/edit_profile/" }

func (u URLs) CreatePost() string { return u.Base + "/posts/create/" }

func (u URLs) EditPost(postID uint) string {
	return fmt.Sprintf("%s/posts/%d/edit/", u.Base, postID)
}

func (u URLs) DeletePost(postID uint) string {
	return fmt.Sprintf("%s/posts/%d/delete/", u.Base, postID)
}

func (u URLs) AddComment(postID uint) string {
	return fmt.Sprintf("%s/posts/%d/comment/", u.Base, postID)
}

func (u URLs) EditComment(postID, commentID uint) string {
	return fmt.Sprintf("%s/posts/%d/edit_comment/%d/", u.Base, postID, commentID)
}

func (u URLs) DeleteComment(postID, commentID uint) string {
	return fmt.Sprintf("%s/posts/%d/delete_comment/%d/", u.Base, postID, commentID)
}

func (u URLs) LivePost(postID uint) string {
	return fmt.Sprintf("%s/posts/%d/live/", u.Base, postID)
}

func (u URLs) Login() string { return u.Base + "/auth/login/" }

// LoginNext is the login page that returns to next afterwards.
func (u URLs) LoginNext(next string) string {
	return u.Login() + "?next=" + url.QueryEscape(next)
}

func (u URLs) Logout() string { return u.Base + "/auth/logout/" }

func (u URLs) Registration() string { return u.Base + "/auth/registration/" }
