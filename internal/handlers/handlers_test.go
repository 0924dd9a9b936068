package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"

	"voyago/internal/auth"
	"voyago/internal/models"
	"voyago/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// HandlersTestSuite exercises the HTTP surface end to end against an
// in-memory database and the real templates.
type HandlersTestSuite struct {
	suite.Suite
	db    *storage.DB
	mux   *http.ServeMux
	user  *models.User
	admin *models.User
	pkg   *models.Package
}

// SetupTest runs before each test
func (suite *HandlersTestSuite) SetupTest() {
	db, err := storage.NewDB(":memory:")
	require.NoError(suite.T(), err, "failed to create test database")
	suite.db = db

	h := NewHandlers(db, "../../web/templates", false)
	suite.mux = h.Router("../../web/static")

	suite.user = suite.createUser("testuser", "testpass123", false)
	suite.admin = suite.createUser("adminuser", "adminpass123", true)

	suite.pkg = &models.Package{
		Name:        "Test Package",
		Destination: "Test Destination",
		Description: "A test package",
		Price:       100.00,
		Days:        5,
	}
	require.NoError(suite.T(), db.CreatePackage(suite.pkg))
}

// TearDownTest runs after each test
func (suite *HandlersTestSuite) TearDownTest() {
	if suite.db != nil {
		suite.db.Close()
	}
}

func (suite *HandlersTestSuite) createUser(username, password string, admin bool) *models.User {
	hash, err := auth.HashPassword(password)
	require.NoError(suite.T(), err)
	user, err := suite.db.CreateUser(username, hash, admin)
	require.NoError(suite.T(), err)
	return user
}

// login posts the login form and returns the session cookie.
func (suite *HandlersTestSuite) login(username, password string) *http.Cookie {
	w := suite.postForm("/login", url.Values{
		"username": {username},
		"password": {password},
	}, nil)
	require.Equal(suite.T(), http.StatusFound, w.Code, "login should redirect")

	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == SessionCookieName && cookie.Value != "" {
			return cookie
		}
	}
	suite.T().Fatal("no session cookie set on login")
	return nil
}

func (suite *HandlersTestSuite) get(path string, cookie *http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest("GET", path, http.NoBody)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	suite.mux.ServeHTTP(w, req)
	return w
}

func (suite *HandlersTestSuite) postForm(path string, form url.Values, cookie *http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest("POST", path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	suite.mux.ServeHTTP(w, req)
	return w
}

func (suite *HandlersTestSuite) paymentPath() string {
	return "/payment/" + strconv.FormatInt(suite.pkg.ID, 10)
}

func (suite *HandlersTestSuite) TestIndex() {
	w := suite.get("/", nil)
	assert.Equal(suite.T(), http.StatusOK, w.Code)
	assert.Contains(suite.T(), w.Body.String(), "Voyago")
}

func (suite *HandlersTestSuite) TestPackageListing() {
	w := suite.get("/bookings", nil)
	assert.Equal(suite.T(), http.StatusOK, w.Code)
	assert.Contains(suite.T(), w.Body.String(), "Test Package")
	assert.Contains(suite.T(), w.Body.String(), "Test Destination")
}

func (suite *HandlersTestSuite) TestPaymentViewAuthenticated() {
	cookie := suite.login("testuser", "testpass123")
	w := suite.get(suite.paymentPath(), cookie)
	assert.Equal(suite.T(), http.StatusOK, w.Code)
	assert.Contains(suite.T(), w.Body.String(), "Test Package")
}

func (suite *HandlersTestSuite) TestPaymentViewUnauthenticated() {
	w := suite.get(suite.paymentPath(), nil)
	assert.Equal(suite.T(), http.StatusFound, w.Code)
	assert.Equal(suite.T(), LoginPath, w.Header().Get("Location"))
}

func (suite *HandlersTestSuite) TestPaymentGetHasNoSideEffects() {
	cookie := suite.login("testuser", "testpass123")
	suite.get(suite.paymentPath(), cookie)

	count, err := suite.db.CountBookingsFor(suite.user.ID, suite.pkg.ID)
	require.NoError(suite.T(), err)
	assert.Zero(suite.T(), count, "GET must not create a booking")
}

func (suite *HandlersTestSuite) TestPaymentPost() {
	cookie := suite.login("testuser", "testpass123")
	w := suite.postForm(suite.paymentPath(), url.Values{}, cookie)

	assert.Equal(suite.T(), http.StatusOK, w.Code)
	assert.Contains(suite.T(), w.Body.String(), "Thank you for your booking")

	count, err := suite.db.CountBookingsFor(suite.user.ID, suite.pkg.ID)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), 1, count, "expected one booking row for (user, package)")

	// The package itself is untouched by a booking
	pkg, err := suite.db.GetPackage(suite.pkg.ID)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), 100.00, pkg.Price)
}

func (suite *HandlersTestSuite) TestPaymentPostRepeatedAddsRows() {
	// Each POST adds a row; duplicate submissions are not deduplicated.
	cookie := suite.login("testuser", "testpass123")
	suite.postForm(suite.paymentPath(), url.Values{}, cookie)
	suite.postForm(suite.paymentPath(), url.Values{}, cookie)

	count, err := suite.db.CountBookingsFor(suite.user.ID, suite.pkg.ID)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), 2, count)
}

func (suite *HandlersTestSuite) TestPaymentUnknownPackage() {
	cookie := suite.login("testuser", "testpass123")
	w := suite.get("/payment/9999", cookie)
	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

func (suite *HandlersTestSuite) TestMyBookings() {
	cookie := suite.login("testuser", "testpass123")
	suite.postForm(suite.paymentPath(), url.Values{}, cookie)

	w := suite.get("/my_bookings", cookie)
	assert.Equal(suite.T(), http.StatusOK, w.Code)
	assert.Contains(suite.T(), w.Body.String(), "Test Package")
}

func (suite *HandlersTestSuite) TestDiaryView() {
	w := suite.get("/my_diary", nil)
	assert.Equal(suite.T(), http.StatusOK, w.Code)
}

func (suite *HandlersTestSuite) TestDiaryPostAuthenticated() {
	cookie := suite.login("testuser", "testpass123")
	w := suite.postForm("/my_diary", url.Values{"text": {"New diary entry"}}, cookie)

	assert.Equal(suite.T(), http.StatusFound, w.Code)
	assert.Equal(suite.T(), "/my_diary", w.Header().Get("Location"))

	entries, err := suite.db.ListDiaryEntries()
	require.NoError(suite.T(), err)
	require.Len(suite.T(), entries, 1)
	assert.Equal(suite.T(), "New diary entry", entries[0].Text)
	assert.Equal(suite.T(), suite.user.ID, entries[0].UserID)
}

func (suite *HandlersTestSuite) TestDiaryPostUnauthenticated() {
	w := suite.postForm("/my_diary", url.Values{"text": {"New diary entry"}}, nil)
	assert.Equal(suite.T(), http.StatusFound, w.Code)
	assert.Equal(suite.T(), LoginPath, w.Header().Get("Location"))

	entries, err := suite.db.ListDiaryEntries()
	require.NoError(suite.T(), err)
	assert.Empty(suite.T(), entries)
}

func (suite *HandlersTestSuite) TestDiaryPostEmptyText() {
	cookie := suite.login("testuser", "testpass123")
	w := suite.postForm("/my_diary", url.Values{"text": {"   "}}, cookie)

	assert.Equal(suite.T(), http.StatusOK, w.Code, "empty text should re-render the form")
	assert.Contains(suite.T(), w.Body.String(), "cannot be empty")

	entries, err := suite.db.ListDiaryEntries()
	require.NoError(suite.T(), err)
	assert.Empty(suite.T(), entries)
}

func (suite *HandlersTestSuite) TestAddPackage() {
	cookie := suite.login("adminuser", "adminpass123")
	w := suite.postForm("/add_package", url.Values{
		"name":        {"New Package"},
		"destination": {"New Destination"},
		"description": {"A new package"},
		"price":       {"200.00"},
		"days":        {"7"},
	}, cookie)

	assert.Equal(suite.T(), http.StatusFound, w.Code)

	packages, err := suite.db.ListPackages()
	require.NoError(suite.T(), err)
	require.Len(suite.T(), packages, 2)

	var created *models.Package
	for i := range packages {
		if packages[i].Name == "New Package" {
			created = &packages[i]
		}
	}
	require.NotNil(suite.T(), created, "new package should be persisted")
	assert.Equal(suite.T(), "New Destination", created.Destination)
	assert.Equal(suite.T(), 200.00, created.Price)
	assert.Equal(suite.T(), 7, created.Days)
}

func (suite *HandlersTestSuite) TestAddPackageValidationFailure() {
	cookie := suite.login("adminuser", "adminpass123")
	w := suite.postForm("/add_package", url.Values{
		"name":        {"Bad Package"},
		"destination": {"Somewhere"},
		"description": {""},
		"price":       {"-5"},
		"days":        {"0"},
	}, cookie)

	assert.Equal(suite.T(), http.StatusOK, w.Code, "validation failure should re-render the form")
	assert.Contains(suite.T(), w.Body.String(), "Price cannot be negative")

	packages, err := suite.db.ListPackages()
	require.NoError(suite.T(), err)
	assert.Len(suite.T(), packages, 1, "no partial write on validation failure")
}

func (suite *HandlersTestSuite) TestAddPackageRequiresAdmin() {
	cookie := suite.login("testuser", "testpass123")
	w := suite.postForm("/add_package", url.Values{
		"name":        {"Sneaky Package"},
		"destination": {"Nowhere"},
		"price":       {"1"},
		"days":        {"1"},
	}, cookie)

	assert.Equal(suite.T(), http.StatusFound, w.Code)
	assert.Equal(suite.T(), AdminLoginPath, w.Header().Get("Location"))

	packages, err := suite.db.ListPackages()
	require.NoError(suite.T(), err)
	assert.Len(suite.T(), packages, 1)
}

func (suite *HandlersTestSuite) TestEditPackage() {
	cookie := suite.login("adminuser", "adminpass123")
	path := "/edit_package/" + strconv.FormatInt(suite.pkg.ID, 10)
	w := suite.postForm(path, url.Values{
		"name":        {"Updated Package"},
		"destination": {suite.pkg.Destination},
		"description": {suite.pkg.Description},
		"price":       {"100.00"},
		"days":        {"5"},
	}, cookie)

	assert.Equal(suite.T(), http.StatusFound, w.Code)

	pkg, err := suite.db.GetPackage(suite.pkg.ID)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), "Updated Package", pkg.Name)
}

func (suite *HandlersTestSuite) TestDeletePackage() {
	cookie := suite.login("adminuser", "adminpass123")
	w := suite.get("/delete_package/"+strconv.FormatInt(suite.pkg.ID, 10), cookie)

	assert.Equal(suite.T(), http.StatusFound, w.Code)

	_, err := suite.db.GetPackage(suite.pkg.ID)
	assert.Error(suite.T(), err, "package should be gone after delete")
}

func (suite *HandlersTestSuite) TestAdminPanelRedirectsAnonymous() {
	w := suite.get("/admin_panel", nil)
	assert.Equal(suite.T(), http.StatusFound, w.Code)
	assert.Equal(suite.T(), AdminLoginPath, w.Header().Get("Location"))
}

func (suite *HandlersTestSuite) TestAdminPanelRedirectsNonAdmin() {
	// Authenticated non-admin users get a redirect, never a 403.
	cookie := suite.login("testuser", "testpass123")
	w := suite.get("/admin_panel", cookie)
	assert.Equal(suite.T(), http.StatusFound, w.Code)
	assert.Equal(suite.T(), "/admin/login/", w.Header().Get("Location"))
}

func (suite *HandlersTestSuite) TestAdminPanelRendersForAdmin() {
	cookie := suite.login("adminuser", "adminpass123")
	w := suite.get("/admin_panel", cookie)
	assert.Equal(suite.T(), http.StatusOK, w.Code)
	assert.Contains(suite.T(), w.Body.String(), "Admin dashboard")
	assert.Contains(suite.T(), w.Body.String(), "Test Package")
}

func (suite *HandlersTestSuite) TestAdminLoginPathServesLoginForm() {
	w := suite.get("/admin/login/", nil)
	assert.Equal(suite.T(), http.StatusOK, w.Code)
	assert.Contains(suite.T(), w.Body.String(), "login-form")
}

func (suite *HandlersTestSuite) TestContactPost() {
	w := suite.postForm("/contact_us", url.Values{
		"name":           {"John Doe"},
		"email":          {"john@example.com"},
		"contact_number": {"1234567890"},
		"comments":       {"Test comment"},
	}, nil)

	assert.Equal(suite.T(), http.StatusFound, w.Code)

	count, err := suite.db.CountContactsByEmail("john@example.com")
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), 1, count, "expected exactly one contact row")
}

func (suite *HandlersTestSuite) TestContactPostInvalidEmail() {
	w := suite.postForm("/contact_us", url.Values{
		"name":           {"John Doe"},
		"email":          {"not-an-email"},
		"contact_number": {"1234567890"},
		"comments":       {"Test comment"},
	}, nil)

	assert.Equal(suite.T(), http.StatusOK, w.Code, "invalid email should re-render the form")

	contacts, err := suite.db.ListContacts()
	require.NoError(suite.T(), err)
	assert.Empty(suite.T(), contacts)
}

func (suite *HandlersTestSuite) TestRegister() {
	w := suite.postForm("/register", url.Values{
		"username":  {"journeyuser"},
		"password1": {"journeypass123"},
		"password2": {"journeypass123"},
	}, nil)

	assert.Equal(suite.T(), http.StatusFound, w.Code)
	assert.Equal(suite.T(), LoginPath, w.Header().Get("Location"))

	user, err := suite.db.GetUserByUsername("journeyuser")
	require.NoError(suite.T(), err)
	assert.False(suite.T(), user.IsAdmin)
	assert.NotEqual(suite.T(), "journeypass123", user.PasswordHash)

	// Registration must not auto-login
	for _, cookie := range w.Result().Cookies() {
		assert.NotEqual(suite.T(), SessionCookieName, cookie.Name, "registration should not start a session")
	}
}

func (suite *HandlersTestSuite) TestRegisterMismatchedPasswords() {
	w := suite.postForm("/register", url.Values{
		"username":  {"mismatchuser"},
		"password1": {"journeypass123"},
		"password2": {"different"},
	}, nil)

	assert.Equal(suite.T(), http.StatusOK, w.Code, "mismatch should re-render the form")
	assert.Contains(suite.T(), w.Body.String(), "Passwords do not match")

	_, err := suite.db.GetUserByUsername("mismatchuser")
	assert.Error(suite.T(), err, "user must not be created on password mismatch")
}

func (suite *HandlersTestSuite) TestRegisterTakenUsername() {
	w := suite.postForm("/register", url.Values{
		"username":  {"testuser"},
		"password1": {"whatever123"},
		"password2": {"whatever123"},
	}, nil)

	assert.Equal(suite.T(), http.StatusOK, w.Code)
	assert.Contains(suite.T(), w.Body.String(), "already taken")

	count, err := suite.db.UserCount()
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), 2, count, "no new user should be created")
}

func (suite *HandlersTestSuite) TestLoginSuccessRedirectsToBookings() {
	w := suite.postForm("/login", url.Values{
		"username": {"testuser"},
		"password": {"testpass123"},
	}, nil)

	assert.Equal(suite.T(), http.StatusFound, w.Code)
	assert.Equal(suite.T(), "/bookings", w.Header().Get("Location"))
}

func (suite *HandlersTestSuite) TestLoginWrongPassword() {
	w := suite.postForm("/login", url.Values{
		"username": {"testuser"},
		"password": {"wrongpass"},
	}, nil)

	assert.Equal(suite.T(), http.StatusOK, w.Code, "bad credentials re-render the login form")
	assert.Contains(suite.T(), w.Body.String(), "Invalid username or password")
}

func (suite *HandlersTestSuite) TestLogout() {
	cookie := suite.login("testuser", "testpass123")

	w := suite.get("/logout", cookie)
	assert.Equal(suite.T(), http.StatusFound, w.Code)
	assert.Equal(suite.T(), "/", w.Header().Get("Location"))

	// The old session token no longer works
	w = suite.get(suite.paymentPath(), cookie)
	assert.Equal(suite.T(), http.StatusFound, w.Code)
	assert.Equal(suite.T(), LoginPath, w.Header().Get("Location"))
}

// TestUserJourney walks register, login, book, diary and contact in
// one pass.
func (suite *HandlersTestSuite) TestUserJourney() {
	// Register
	w := suite.postForm("/register", url.Values{
		"username":  {"journeyuser"},
		"password1": {"journeypass123"},
		"password2": {"journeypass123"},
	}, nil)
	require.Equal(suite.T(), http.StatusFound, w.Code)

	// Login
	cookie := suite.login("journeyuser", "journeypass123")

	// Book a package
	w = suite.postForm(suite.paymentPath(), url.Values{}, cookie)
	require.Equal(suite.T(), http.StatusOK, w.Code)
	assert.Contains(suite.T(), w.Body.String(), "Thank you for your booking")

	// Post to diary
	w = suite.postForm("/my_diary", url.Values{"text": {"My travel story"}}, cookie)
	require.Equal(suite.T(), http.StatusFound, w.Code)

	entries, err := suite.db.ListDiaryEntries()
	require.NoError(suite.T(), err)
	require.Len(suite.T(), entries, 1)
	assert.Equal(suite.T(), "My travel story", entries[0].Text)

	// Contact form
	w = suite.postForm("/contact_us", url.Values{
		"name":           {"Journey User"},
		"email":          {"journey@example.com"},
		"contact_number": {"1234567890"},
		"comments":       {"Great service"},
	}, nil)
	require.Equal(suite.T(), http.StatusFound, w.Code)

	count, err := suite.db.CountContactsByEmail("journey@example.com")
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), 1, count)
}

func TestHandlersSuite(t *testing.T) {
	suite.Run(t, new(HandlersTestSuite))
}
