// Package views embeds the HTML templates served by the list and form pages.
package views

import (
	"embed"
	"io/fs"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/template/html/v2"
)

//go:embed templates
var templateFS embed.FS

// Template names.
const (
	UsersList  = "users_list"
	PostsList  = "posts_list"
	CreatePost = "create_post"
	EditPost   = "edit_post"
	EditUser   = "edit_user"
	NotFound   = "not_found"

	Layout = "layouts/main"
)

// RequestInfo is the slice of the incoming request a template may show.
type RequestInfo struct {
	Method string
	Path   string
	URL    string
}

// NewRequestInfo captures the request a page is rendered for.
func NewRequestInfo(c *fiber.Ctx) RequestInfo {
	return RequestInfo{
		Method: c.Method(),
		Path:   c.Path(),
		URL:    c.OriginalURL(),
	}
}

// New returns a template engine over the embedded templates.
func New() *html.Engine {
	sub, err := fs.Sub(templateFS, "templates")
	if err != nil {
		// The embed pattern guarantees the directory exists.
		panic(err)
	}
	return html.NewFileSystem(http.FS(sub), ".html")
}
