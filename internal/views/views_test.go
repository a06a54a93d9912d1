package views

import (
	"bytes"
	"testing"

	"postboard/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func render(t *testing.T, name string, bind fiber.Map) string {
	t.Helper()
	engine := New()
	require.NoError(t, engine.Load())

	var buf bytes.Buffer
	require.NoError(t, engine.Render(&buf, name, bind, Layout))
	return buf.String()
}

func TestUsersList(t *testing.T) {
	out := render(t, UsersList, fiber.Map{
		"Title":   "Users",
		"Request": RequestInfo{Method: "GET", Path: "/users", URL: "/users?skip=0"},
		"Users": []models.User{
			{ID: 1, Username: "alice", Email: "alice@example.com"},
			{ID: 2, Username: "<bob>", Email: "bob@example.com"},
		},
	})

	assert.Contains(t, out, "GET /users?skip=0")
	assert.Contains(t, out, "alice@example.com")
	assert.Contains(t, out, "&lt;bob&gt;")
	assert.Contains(t, out, `action="/users/2"`)
}

func TestPostsListEmpty(t *testing.T) {
	out := render(t, PostsList, fiber.Map{
		"Title":   "Posts",
		"Request": RequestInfo{Method: "GET", Path: "/posts", URL: "/posts"},
		"Posts":   []models.Post{},
	})
	assert.Contains(t, out, "No posts yet.")
}

func TestEditForms(t *testing.T) {
	out := render(t, EditPost, fiber.Map{
		"Title": "Edit post",
		"Post":  &models.Post{ID: 3, Title: "Hello", Content: "body text", UserID: 1},
	})
	assert.Contains(t, out, `action="/posts/3"`)
	assert.Contains(t, out, `value="PUT"`)
	assert.Contains(t, out, "body text")

	out = render(t, EditUser, fiber.Map{
		"Title": "Edit user",
		"User":  &models.User{ID: 5, Username: "alice", Email: "alice@example.com"},
	})
	assert.Contains(t, out, `name="new_email"`)
	assert.Contains(t, out, "alice@example.com")
}

func TestCreateAndNotFound(t *testing.T) {
	out := render(t, CreatePost, fiber.Map{"Title": "New post"})
	assert.Contains(t, out, `id="create-post"`)

	out = render(t, NotFound, fiber.Map{"Title": "Not found", "Message": "Post with ID 9 not found", "Back": "/posts"})
	assert.Contains(t, out, "Post with ID 9 not found")
}
