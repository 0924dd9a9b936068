package handlers

import "net/http"

// Router builds the application mux. Auth-protected routes redirect to
// /login, admin routes to /admin/login/.
func (h *Handlers) Router(staticDir string) *http.ServeMux {
	mux := http.NewServeMux()

	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.Dir(staticDir))))

	mux.HandleFunc("GET /{$}", h.Index)
	mux.HandleFunc("GET /bookings", h.ListPackages)

	mux.Handle("GET /payment/{id}", h.AuthMiddleware(http.HandlerFunc(h.PaymentForm)))
	mux.Handle("POST /payment/{id}", h.AuthMiddleware(http.HandlerFunc(h.Pay)))
	mux.Handle("GET /my_bookings", h.AuthMiddleware(http.HandlerFunc(h.MyBookings)))

	mux.HandleFunc("GET /my_diary", h.DiaryPage)
	mux.Handle("POST /my_diary", h.AuthMiddleware(http.HandlerFunc(h.PostDiaryEntry)))

	mux.HandleFunc("GET /contact_us", h.ContactForm)
	mux.HandleFunc("POST /contact_us", h.SubmitContact)

	mux.HandleFunc("GET /register", h.RegisterForm)
	mux.HandleFunc("POST /register", h.Register)
	mux.HandleFunc("GET /login", h.LoginForm)
	mux.HandleFunc("POST /login", h.Login)
	mux.HandleFunc("GET /logout", h.Logout)

	// Admin pages redirect here; same login form, same session.
	mux.HandleFunc("GET /admin/login/", h.LoginForm)

	mux.Handle("GET /admin_panel", h.AdminMiddleware(http.HandlerFunc(h.AdminPanel)))
	mux.Handle("GET /add_package", h.AdminMiddleware(http.HandlerFunc(h.AddPackageForm)))
	mux.Handle("POST /add_package", h.AdminMiddleware(http.HandlerFunc(h.AddPackage)))
	mux.Handle("GET /edit_package/{id}", h.AdminMiddleware(http.HandlerFunc(h.EditPackageForm)))
	mux.Handle("POST /edit_package/{id}", h.AdminMiddleware(http.HandlerFunc(h.EditPackage)))
	mux.Handle("GET /delete_package/{id}", h.AdminMiddleware(http.HandlerFunc(h.DeletePackage)))

	return mux
}
