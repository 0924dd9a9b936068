package handlers

import (
	"log"
	"net/http"
	"strconv"

	"voyago/internal/forms"
	"voyago/internal/models"
)

// PackageListViewModel holds data for the public package listing.
type PackageListViewModel struct {
	User     *models.User
	Packages []models.Package
}

// ListPackages renders the package listing. No authentication is
// required to browse the catalog.
func (h *Handlers) ListPackages(w http.ResponseWriter, r *http.Request) {
	packages, err := h.db.ListPackages()
	if err != nil {
		log.Printf("ListPackages error: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	h.render(w, "bookings.html", PackageListViewModel{
		User:     h.currentUser(r),
		Packages: packages,
	})
}

// PackageFormValues carries the raw submitted field values so a failed
// form can be re-rendered with what the admin typed.
type PackageFormValues struct {
	Name        string
	Destination string
	Description string
	Price       string
	Days        string
}

// PackageFormViewModel holds data for the add/edit package form.
type PackageFormViewModel struct {
	User   *models.User
	Values PackageFormValues
	IsEdit bool
	Action string
	Errors *forms.Result
}

// AdminPanelViewModel holds data for the admin dashboard.
type AdminPanelViewModel struct {
	User         *models.User
	Packages     []models.Package
	Contacts     []models.Contact
	BookingCount int
}

// AdminPanel renders the admin dashboard: the package table, the
// contact inbox and the total booking count.
func (h *Handlers) AdminPanel(w http.ResponseWriter, r *http.Request) {
	packages, err := h.db.ListPackages()
	if err != nil {
		log.Printf("AdminPanel list packages error: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	contacts, err := h.db.ListContacts()
	if err != nil {
		log.Printf("AdminPanel list contacts error: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	bookingCount, err := h.db.CountBookings()
	if err != nil {
		log.Printf("AdminPanel booking count error: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	h.render(w, "admin_panel.html", AdminPanelViewModel{
		User:         GetUserFromContext(r),
		Packages:     packages,
		Contacts:     contacts,
		BookingCount: bookingCount,
	})
}

// AddPackageForm renders the form to create a new package.
func (h *Handlers) AddPackageForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, "package_form.html", PackageFormViewModel{
		User:   GetUserFromContext(r),
		Action: "/add_package",
		Errors: &forms.Result{},
	})
}

// AddPackage handles the creation of a new package. Validation
// failures re-render the form with field errors and write nothing.
func (h *Handlers) AddPackage(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}

	values := packageFormValues(r)
	pkg, result := forms.ValidatePackage(values.Name, values.Destination, values.Description, values.Price, values.Days)
	if !result.Valid() {
		h.render(w, "package_form.html", PackageFormViewModel{
			User:   GetUserFromContext(r),
			Values: values,
			Action: "/add_package",
			Errors: result,
		})
		return
	}

	if err := h.db.CreatePackage(pkg); err != nil {
		log.Printf("CreatePackage error: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/admin_panel", http.StatusFound)
}

// EditPackageForm renders the form to edit an existing package.
func (h *Handlers) EditPackageForm(w http.ResponseWriter, r *http.Request) {
	pkg, ok := h.packageFromPath(w, r)
	if !ok {
		return
	}
	h.render(w, "package_form.html", PackageFormViewModel{
		User: GetUserFromContext(r),
		Values: PackageFormValues{
			Name:        pkg.Name,
			Destination: pkg.Destination,
			Description: pkg.Description,
			Price:       strconv.FormatFloat(pkg.Price, 'f', 2, 64),
			Days:        strconv.Itoa(pkg.Days),
		},
		IsEdit: true,
		Action: "/edit_package/" + strconv.FormatInt(pkg.ID, 10),
		Errors: &forms.Result{},
	})
}

// EditPackage handles the update of an existing package.
func (h *Handlers) EditPackage(w http.ResponseWriter, r *http.Request) {
	existing, ok := h.packageFromPath(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}

	values := packageFormValues(r)
	pkg, result := forms.ValidatePackage(values.Name, values.Destination, values.Description, values.Price, values.Days)
	if !result.Valid() {
		h.render(w, "package_form.html", PackageFormViewModel{
			User:   GetUserFromContext(r),
			Values: values,
			IsEdit: true,
			Action: "/edit_package/" + strconv.FormatInt(existing.ID, 10),
			Errors: result,
		})
		return
	}

	pkg.ID = existing.ID
	if err := h.db.UpdatePackage(pkg); err != nil {
		log.Printf("UpdatePackage error: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/admin_panel", http.StatusFound)
}

// DeletePackage removes a package and redirects back to the dashboard.
func (h *Handlers) DeletePackage(w http.ResponseWriter, r *http.Request) {
	pkg, ok := h.packageFromPath(w, r)
	if !ok {
		return
	}
	if err := h.db.DeletePackage(pkg.ID); err != nil {
		log.Printf("DeletePackage error: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/admin_panel", http.StatusFound)
}

func (h *Handlers) packageFromPath(w http.ResponseWriter, r *http.Request) (*models.Package, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "Package not found", http.StatusNotFound)
		return nil, false
	}
	pkg, err := h.db.GetPackage(id)
	if err != nil {
		http.Error(w, "Package not found", http.StatusNotFound)
		return nil, false
	}
	return pkg, true
}

func packageFormValues(r *http.Request) PackageFormValues {
	return PackageFormValues{
		Name:        r.FormValue("name"),
		Destination: r.FormValue("destination"),
		Description: r.FormValue("description"),
		Price:       r.FormValue("price"),
		Days:        r.FormValue("days"),
	}
}
