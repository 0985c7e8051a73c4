package doctors

import (
	"errors"
	"strings"
)

// Doctor is one entry in the static specialist directory. The directory is
// read-only at runtime; a snapshot of name and specialization is copied into
// each appointment request so later lookups are never needed.
type Doctor struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Specialization  string   `json:"specialization"`
	Experience      int      `json:"experience"`
	Languages       string   `json:"languages"`
	ConsultationFee int      `json:"consultation_fee"`
	Rating          float64  `json:"rating"`
	Email           string   `json:"email"`
	AvailableSlots  []string `json:"available_slots"`
}

// ErrNotFound is returned when no doctor matches a lookup.
var ErrNotFound = errors.New("doctors: doctor not found")

// Directory indexes the doctor list by id and by email, built once at
// startup.
type Directory struct {
	all     []Doctor
	byID    map[string]*Doctor
	byEmail map[string]*Doctor
}

// NewDirectory indexes the given doctors. Later duplicates of an id or email
// are ignored; the first entry wins.
func NewDirectory(list []Doctor) *Directory {
	d := &Directory{
		all:     make([]Doctor, len(list)),
		byID:    make(map[string]*Doctor, len(list)),
		byEmail: make(map[string]*Doctor, len(list)),
	}
	copy(d.all, list)
	for i := range d.all {
		doc := &d.all[i]
		if _, ok := d.byID[doc.ID]; !ok {
			d.byID[doc.ID] = doc
		}
		email := strings.ToLower(doc.Email)
		if _, ok := d.byEmail[email]; !ok {
			d.byEmail[email] = doc
		}
	}
	return d
}

// ByID looks a doctor up by identifier.
func (d *Directory) ByID(id string) (*Doctor, error) {
	if doc, ok := d.byID[id]; ok {
		return doc, nil
	}
	return nil, ErrNotFound
}

// ByEmail looks a doctor up by email address, case-insensitively.
func (d *Directory) ByEmail(email string) (*Doctor, error) {
	if doc, ok := d.byEmail[strings.ToLower(email)]; ok {
		return doc, nil
	}
	return nil, ErrNotFound
}

// All returns every doctor in directory order.
func (d *Directory) All() []Doctor {
	return d.all
}

// BySpecialization returns doctors whose specialization contains the given
// term, case-insensitively. An empty result means no specialist matched; the
// booking flow then falls back to the full list.
func (d *Directory) BySpecialization(term string) []Doctor {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return nil
	}
	var out []Doctor
	for _, doc := range d.all {
		if strings.Contains(strings.ToLower(doc.Specialization), term) {
			out = append(out, doc)
		}
	}
	return out
}

// MatchSpecialist scans free text (typically the AI symptom summary) for a
// known specialization and returns the first hit, or "General Physician".
func MatchSpecialist(summary string) string {
	lower := strings.ToLower(summary)
	for _, s := range specializations {
		if strings.Contains(lower, strings.ToLower(s)) {
			return s
		}
	}
	return "General Physician"
}

var specializations = []string{
	"Gastroenterologist", "Cardiologist", "Dermatologist",
	"Neurologist", "Psychiatrist", "Orthopedic Surgeon", "Pediatrician",
	"Urologist", "Gynecologist", "Ophthalmologist", "Endocrinologist",
	"Pulmonologist", "Rheumatologist", "Oncologist", "Nephrologist",
	"ENT Specialist", "Hematologist", "Anesthesiologist", "Radiologist",
	"General Physician",
}
