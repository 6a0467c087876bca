package handler

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wanderlust/web/internal/model"
	"github.com/wanderlust/web/internal/service"
)

type stubUserRepo struct {
	users  map[string]*model.User
	nextID int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*model.User)}
}

func (s *stubUserRepo) Create(ctx context.Context, user *model.User) error {
	s.nextID++
	user.ID = fmt.Sprintf("user:%d", s.nextID)
	s.users[user.ID] = user
	return nil
}

func (s *stubUserRepo) GetByID(ctx context.Context, id string) (*model.User, error) {
	return s.users[id], nil
}

func (s *stubUserRepo) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	for _, u := range s.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, nil
}

func (s *stubUserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func newAuthTestEnv(t *testing.T) (*testEnv, *stubUserRepo, *AuthHandler) {
	t.Helper()
	env := newTestEnv(t)

	userRepo := newStubUserRepo()
	authService := service.NewAuthService(service.AuthServiceConfig{UserRepo: userRepo})

	renderer, err := NewRenderer()
	require.NoError(t, err)

	return env, userRepo, NewAuthHandler(authService, env.sessions, renderer)
}

// withCookies copies the session cookies from a prior response onto a
// request, simulating the browser's next submission. A response carries one
// Set-Cookie per session save; the last write wins, as in a browser.
func withCookies(req *http.Request, rec *httptest.ResponseRecorder) *http.Request {
	latest := make(map[string]*http.Cookie)
	for _, c := range rec.Result().Cookies() {
		latest[c.Name] = c
	}
	for _, c := range latest {
		req.AddCookie(c)
	}
	return req
}

func signupForm() url.Values {
	return url.Values{
		"username": {"traveler"},
		"email":    {"traveler@example.com"},
		"password": {"wanderlust1"},
	}
}

func TestAuthHandler_Signup(t *testing.T) {
	_, userRepo, handler := newAuthTestEnv(t)

	rec := httptest.NewRecorder()
	handler.Signup(rec, postForm("/signup", signupForm()))

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/listings", rec.Header().Get("Location"))
	assert.NotEmpty(t, rec.Result().Cookies(), "expected a session cookie")

	require.Len(t, userRepo.users, 1)
	for _, u := range userRepo.users {
		assert.Equal(t, "traveler", u.Username)
		require.NotNil(t, u.Hash)
		assert.NotEqual(t, "wanderlust1", *u.Hash)
	}
}

func TestAuthHandler_Signup_DuplicateUsername(t *testing.T) {
	_, userRepo, handler := newAuthTestEnv(t)
	handler.Signup(httptest.NewRecorder(), postForm("/signup", signupForm()))

	form := signupForm()
	form.Set("email", "other@example.com")

	rec := httptest.NewRecorder()
	handler.Signup(rec, postForm("/signup", form))

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/signup", rec.Header().Get("Location"))
	assert.Len(t, userRepo.users, 1)
}

func TestAuthHandler_Signup_InvalidFormRedirectsBack(t *testing.T) {
	_, userRepo, handler := newAuthTestEnv(t)

	form := signupForm()
	form.Set("email", "not-an-email")

	rec := httptest.NewRecorder()
	handler.Signup(rec, postForm("/signup", form))

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/signup", rec.Header().Get("Location"))
	assert.Empty(t, userRepo.users)
}

func TestAuthHandler_Login(t *testing.T) {
	_, _, handler := newAuthTestEnv(t)
	handler.Signup(httptest.NewRecorder(), postForm("/signup", signupForm()))

	form := url.Values{"username": {"traveler"}, "password": {"wanderlust1"}}
	rec := httptest.NewRecorder()
	handler.Login(rec, postForm("/login", form))

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/listings", rec.Header().Get("Location"))
	assert.NotEmpty(t, rec.Result().Cookies(), "expected a session cookie")
}

func TestAuthHandler_Login_ReturnsToRememberedURL(t *testing.T) {
	env, _, handler := newAuthTestEnv(t)
	handler.Signup(httptest.NewRecorder(), postForm("/signup", signupForm()))

	// A protected page was visited before logging in
	rememberRec := httptest.NewRecorder()
	env.sessions.RememberURL(rememberRec, httptest.NewRequest(http.MethodGet, "/listings/1/edit", nil), "/listings/1/edit")

	form := url.Values{"username": {"traveler"}, "password": {"wanderlust1"}}
	loginRec := httptest.NewRecorder()
	handler.Login(loginRec, withCookies(postForm("/login", form), rememberRec))

	assert.Equal(t, http.StatusFound, loginRec.Code)
	assert.Equal(t, "/listings/1/edit", loginRec.Header().Get("Location"))

	// The remembered URL is consumed; the next login falls back to the list view
	againRec := httptest.NewRecorder()
	handler.Login(againRec, withCookies(postForm("/login", form), loginRec))

	assert.Equal(t, http.StatusFound, againRec.Code)
	assert.Equal(t, "/listings", againRec.Header().Get("Location"))
}

func TestAuthHandler_Login_WrongPassword(t *testing.T) {
	_, _, handler := newAuthTestEnv(t)
	handler.Signup(httptest.NewRecorder(), postForm("/signup", signupForm()))

	form := url.Values{"username": {"traveler"}, "password": {"wrong-password"}}
	rec := httptest.NewRecorder()
	handler.Login(rec, postForm("/login", form))

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
}

func TestAuthHandler_Logout(t *testing.T) {
	_, _, handler := newAuthTestEnv(t)

	rec := httptest.NewRecorder()
	handler.Logout(rec, httptest.NewRequest(http.MethodGet, "/logout", nil))

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/listings", rec.Header().Get("Location"))
}
