package handlers

import (
	"log"
	"net/http"
	"strconv"

	"voyago/internal/models"

	"github.com/google/uuid"
)

// PaymentViewModel holds data for the payment form.
type PaymentViewModel struct {
	User    *models.User
	Package *models.Package
}

// ThankYouViewModel holds data for the booking confirmation page.
type ThankYouViewModel struct {
	User      *models.User
	Package   *models.Package
	Reference string
}

// PaymentForm renders the payment form for a package. GET has no side
// effects; the booking row is only written on POST.
func (h *Handlers) PaymentForm(w http.ResponseWriter, r *http.Request) {
	pkg, ok := h.packageFromPath(w, r)
	if !ok {
		return
	}
	h.render(w, "payment.html", PaymentViewModel{
		User:    GetUserFromContext(r),
		Package: pkg,
	})
}

// Pay handles the payment form submission. It creates a booking row
// for (user, package) and renders the confirmation page. Repeated
// submissions create repeated rows; there is no dedup or idempotency
// key.
func (h *Handlers) Pay(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r)
	pkg, ok := h.packageFromPath(w, r)
	if !ok {
		return
	}

	reference := uuid.NewString()
	booking, err := h.db.CreateBooking(reference, user.ID, pkg.ID)
	if err != nil {
		log.Printf("CreateBooking error: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	log.Printf("booking %s created: user=%d package=%d", booking.Reference, user.ID, pkg.ID)
	h.render(w, "thank_you.html", ThankYouViewModel{
		User:      user,
		Package:   pkg,
		Reference: booking.Reference,
	})
}

// MyBookingsViewModel holds data for a user's booking history.
type MyBookingsViewModel struct {
	User     *models.User
	Bookings []BookingItem
}

// BookingItem is a booking joined with its package for display.
type BookingItem struct {
	models.Booking
	PackageName string
	Destination string
	When        string
}

// MyBookings renders the authenticated user's booking history.
func (h *Handlers) MyBookings(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r)
	bookings, err := h.db.ListBookingsByUser(user.ID)
	if err != nil {
		log.Printf("ListBookingsByUser error: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	items := make([]BookingItem, 0, len(bookings))
	for _, b := range bookings {
		item := BookingItem{Booking: b, When: b.CreatedAt.Format("Jan 02, 2006 15:04")}
		if pkg, err := h.db.GetPackage(b.PackageID); err == nil {
			item.PackageName = pkg.Name
			item.Destination = pkg.Destination
		} else {
			item.PackageName = "Package #" + strconv.FormatInt(b.PackageID, 10)
		}
		items = append(items, item)
	}

	h.render(w, "my_bookings.html", MyBookingsViewModel{User: user, Bookings: items})
}
