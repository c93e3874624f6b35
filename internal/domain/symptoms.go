package domain

// Symptom is an entry in the fixed symptom catalog.
type Symptom struct {
	ID       string `json:"id"`
	Label    string `json:"label"`
	Critical bool   `json:"critical"`
}

// SymptomCatalog is the fixed list of symptoms a field worker can record.
var SymptomCatalog = []Symptom{
	{ID: "fever", Label: "Fever", Critical: true},
	{ID: "diarrhea", Label: "Diarrhea", Critical: true},
	{ID: "vomiting", Label: "Vomiting", Critical: true},
	{ID: "nausea", Label: "Nausea", Critical: false},
	{ID: "stomach_pain", Label: "Stomach Pain", Critical: false},
	{ID: "headache", Label: "Headache", Critical: false},
	{ID: "weakness", Label: "Weakness", Critical: false},
	{ID: "dehydration", Label: "Dehydration", Critical: true},
	{ID: "skin_rash", Label: "Skin Rash", Critical: false},
	{ID: "jaundice", Label: "Jaundice (Yellow skin/eyes)", Critical: true},
}

// LookupSymptom returns the catalog entry for id.
func LookupSymptom(id string) (Symptom, bool) {
	for _, s := range SymptomCatalog {
		if s.ID == id {
			return s, true
		}
	}
	return Symptom{}, false
}

// IsCriticalSymptom reports whether id names a critical catalog symptom.
// Identifiers outside the catalog are never critical.
func IsCriticalSymptom(id string) bool {
	s, ok := LookupSymptom(id)
	return ok && s.Critical
}

// CriticalSymptoms returns the critical subset of ids, in input order.
func CriticalSymptoms(ids []string) []string {
	var out []string
	for _, id := range ids {
		if IsCriticalSymptom(id) {
			out = append(out, id)
		}
	}
	return out
}
