package main

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/sushihentaime/bloglist/internal/auth"
	"github.com/sushihentaime/bloglist/internal/blogservice"
	"github.com/sushihentaime/bloglist/internal/userservice"
)

func (app *application) createUserHandler(w http.ResponseWriter, r *http.Request) {
	var input userservice.CreateUserRequest

	err := app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	user, err := app.userService.CreateUser(r.Context(), &input)
	if err != nil {
		app.serviceErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusCreated, user, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
}

func (app *application) getUsersHandler(w http.ResponseWriter, r *http.Request) {
	users, err := app.userService.GetUsers(r.Context())
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, users, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
}

func (app *application) getUserBlogsHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "id")
	if err != nil {
		app.malformedIDErrorResponse(w, r)
		return
	}

	// 404 for an unknown user rather than an empty list
	if _, err := app.userService.GetUserByID(r.Context(), id); err != nil {
		app.serviceErrorResponse(w, r, err)
		return
	}

	blogs, err := app.blogService.GetBlogsByUserID(r.Context(), id)
	if err != nil {
		app.serviceErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, blogs, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
}

// loginRequest keeps the JSON types so that non-string credentials fail as
// invalid credentials rather than as a malformed body.
type loginRequest struct {
	Username any `json:"username"`
	Password any `json:"password"`
}

func (app *application) loginHandler(w http.ResponseWriter, r *http.Request) {
	var input loginRequest

	err := app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	username, _ := input.Username.(string)
	password, _ := input.Password.(string)

	token, err := app.userService.LoginUser(r.Context(), username, password)
	if err != nil {
		switch {
		case errors.Is(err, userservice.ErrAuthenticationFailure):
			app.metrics.RecordLogin(false)
			app.invalidCredentialsErrorResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	app.metrics.RecordLogin(true)

	err = app.writeJSON(w, http.StatusOK, token, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
}

func (app *application) getBlogsHandler(w http.ResponseWriter, r *http.Request) {
	blogs, err := app.blogService.GetBlogs(r.Context())
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, blogs, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
}

func (app *application) getBlogHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "id")
	if err != nil {
		app.malformedIDErrorResponse(w, r)
		return
	}

	blog, err := app.blogService.GetBlogByID(r.Context(), id)
	if err != nil {
		app.serviceErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, blog, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
}

// createBlogHandler stores the blog and then appends its id to the owner. The
// two writes are not atomic.
func (app *application) createBlogHandler(w http.ResponseWriter, r *http.Request) {
	var input blogservice.CreateBlogRequest

	err := app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	identity := app.getUserContext(r)
	input.Owner = &blogservice.Owner{ID: identity.ID, Username: identity.Username, Name: identity.Name}

	blog, err := app.blogService.CreateBlog(r.Context(), &input)
	if err != nil {
		app.serviceErrorResponse(w, r, err)
		return
	}

	err = app.userService.AddBlog(r.Context(), identity.ID, blog.ID)
	if err != nil {
		app.logger.Error("blog stored without owner reference", slog.String("blog_id", blog.ID), slog.String("user_id", identity.ID))
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusCreated, blog, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
}

// ownedBlog loads the blog named by the id parameter and checks that the
// caller owns it. It writes the error response itself and returns nil then.
func (app *application) ownedBlog(w http.ResponseWriter, r *http.Request) *blogservice.Blog {
	id, err := app.readIDParam(r, "id")
	if err != nil {
		app.malformedIDErrorResponse(w, r)
		return nil
	}

	blog, err := app.blogService.GetBlogByID(r.Context(), id)
	if err != nil {
		app.serviceErrorResponse(w, r, err)
		return nil
	}

	if err := auth.AuthorizeOwnership(app.getUserContext(r), blog); err != nil {
		app.serviceErrorResponse(w, r, err)
		return nil
	}

	return blog
}

func (app *application) updateBlogHandler(w http.ResponseWriter, r *http.Request) {
	blog := app.ownedBlog(w, r)
	if blog == nil {
		return
	}

	var input blogservice.UpdateBlogRequest

	err := app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	updated, err := app.blogService.UpdateBlogLikes(r.Context(), blog.ID, input.Likes)
	if err != nil {
		app.serviceErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, updated, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
}

func (app *application) deleteBlogHandler(w http.ResponseWriter, r *http.Request) {
	blog := app.ownedBlog(w, r)
	if blog == nil {
		return
	}

	err := app.blogService.DeleteBlog(r.Context(), blog)
	if err != nil {
		app.serviceErrorResponse(w, r, err)
		return
	}

	err = app.userService.RemoveBlog(r.Context(), blog.UserID, blog.ID)
	if err != nil {
		app.logger.Error("could not remove blog reference", slog.String("blog_id", blog.ID), slog.String("error", err.Error()))
	}

	w.WriteHeader(http.StatusNoContent)
}

func (app *application) statsHandler(w http.ResponseWriter, r *http.Request) {
	stats, err := app.blogService.GetStats(r.Context())
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, stats, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
}
