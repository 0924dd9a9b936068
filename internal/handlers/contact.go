package handlers

import (
	"log"
	"net/http"

	"voyago/internal/forms"
	"voyago/internal/models"
)

// ContactViewModel holds data for the contact page.
type ContactViewModel struct {
	User   *models.User
	Values ContactFormValues
	Sent   bool
	Errors *forms.Result
}

// ContactFormValues carries the raw submitted contact fields.
type ContactFormValues struct {
	Name          string
	Email         string
	ContactNumber string
	Comments      string
}

// ContactForm renders the contact form. No authentication required.
func (h *Handlers) ContactForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, "contact_us.html", ContactViewModel{
		User:   h.currentUser(r),
		Sent:   r.URL.Query().Get("sent") == "1",
		Errors: &forms.Result{},
	})
}

// SubmitContact handles a contact form submission from any visitor.
// Valid submissions are persisted unconditionally and redirect back to
// the form.
func (h *Handlers) SubmitContact(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}

	values := ContactFormValues{
		Name:          r.FormValue("name"),
		Email:         r.FormValue("email"),
		ContactNumber: r.FormValue("contact_number"),
		Comments:      r.FormValue("comments"),
	}

	contact, result := forms.ValidateContact(values.Name, values.Email, values.ContactNumber, values.Comments)
	if !result.Valid() {
		h.render(w, "contact_us.html", ContactViewModel{
			User:   h.currentUser(r),
			Values: values,
			Errors: result,
		})
		return
	}

	if err := h.db.CreateContact(contact); err != nil {
		log.Printf("CreateContact error: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/contact_us?sent=1", http.StatusFound)
}
