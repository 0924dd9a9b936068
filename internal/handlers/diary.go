package handlers

import (
	"log"
	"net/http"

	"voyago/internal/forms"
	"voyago/internal/models"
	"voyago/internal/storage"
)

// DiaryViewModel holds data for the diary page.
type DiaryViewModel struct {
	User    *models.User
	Entries []storage.DiaryEntry
	Text    string
	Errors  *forms.Result
}

// DiaryPage renders the diary listing. Reading the diary requires no
// authentication; only posting does.
func (h *Handlers) DiaryPage(w http.ResponseWriter, r *http.Request) {
	entries, err := h.db.ListDiaryEntries()
	if err != nil {
		log.Printf("ListDiaryEntries error: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	h.render(w, "my_diary.html", DiaryViewModel{
		User:    h.currentUser(r),
		Entries: entries,
		Errors:  &forms.Result{},
	})
}

// PostDiaryEntry handles a diary form submission and redirects back to
// the diary on success.
func (h *Handlers) PostDiaryEntry(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r)

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}

	text := r.FormValue("text")
	result := forms.ValidateDiaryEntry(text)
	if !result.Valid() {
		entries, err := h.db.ListDiaryEntries()
		if err != nil {
			log.Printf("ListDiaryEntries error: %v", err)
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}
		h.render(w, "my_diary.html", DiaryViewModel{
			User:    user,
			Entries: entries,
			Text:    text,
			Errors:  result,
		})
		return
	}

	if err := h.db.CreateDiaryEntry(user.ID, text); err != nil {
		log.Printf("CreateDiaryEntry error: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/my_diary", http.StatusFound)
}
