package intake

import (
	"context"
	"strconv"
	"strings"
	"time"

	"healthmon/internal/domain"
)

// SymptomFields are the raw values of a symptom report form.
type SymptomFields struct {
	PatientName string   `json:"patient_name"`
	Age         string   `json:"age"`
	Gender      string   `json:"gender"`
	Phone       string   `json:"phone"`
	Address     string   `json:"address"`
	Symptoms    []string `json:"symptoms"`
	Severity    string   `json:"severity"`
	OnsetDate   string   `json:"onset_date"`
	Notes       string   `json:"notes"`
	Temperature string   `json:"temperature"`
	WaterSource string   `json:"water_source"`
}

// SymptomForm is one instance of the symptom report workflow.
type SymptomForm struct {
	machine
	fields SymptomFields
}

// NewSymptomForm returns an empty form in Editing. A positive timeout bounds
// the persistence call made on Submit.
func NewSymptomForm(timeout time.Duration) *SymptomForm {
	return &SymptomForm{machine: machine{timeout: timeout}}
}

// Update applies fn to the fields. Only allowed while Editing.
func (f *SymptomForm) Update(fn func(*SymptomFields)) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.editable(); err != nil {
		return err
	}
	fn(&f.fields)
	return nil
}

// SetSymptom adds or removes one symptom from the selection.
func (f *SymptomForm) SetSymptom(id string, checked bool) error {
	return f.Update(func(s *SymptomFields) {
		out := s.Symptoms[:0:0]
		for _, v := range s.Symptoms {
			if v != id {
				out = append(out, v)
			}
		}
		if checked {
			out = append(out, id)
		}
		s.Symptoms = out
	})
}

// Fields returns a copy of the current values.
func (f *SymptomForm) Fields() SymptomFields {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := f.fields
	out.Symptoms = append([]string(nil), f.fields.Symptoms...)
	return out
}

// Missing lists the required fields that are still empty.
func (f *SymptomForm) Missing() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fields.missing()
}

// Flagged reports whether the current selection includes a critical symptom.
func (f *SymptomForm) Flagged() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return domain.HasCriticalSymptom(f.fields.Symptoms)
}

// Cancel discards the form. Only allowed while Editing.
func (f *SymptomForm) Cancel() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.cancel(); err != nil {
		return err
	}
	f.fields = SymptomFields{}
	return nil
}

// Submit validates the form, hands a snapshot of the fields to sink and
// closes the form with a Result. If sink fails the form returns to
// Editing with its data intact.
func (f *SymptomForm) Submit(ctx context.Context, sink func(context.Context, SymptomFields) error) (*Result, error) {
	var snapshot SymptomFields
	validate := func() error {
		if err := f.fields.validate(); err != nil {
			return err
		}
		snapshot = f.fields
		snapshot.Symptoms = append([]string(nil), f.fields.Symptoms...)
		return nil
	}
	return f.run(ctx, validate,
		func(ctx context.Context) error { return sink(ctx, snapshot) },
		func() Result {
			flagged := domain.HasCriticalSymptom(snapshot.Symptoms)
			return Result{
				Flagged: flagged,
				Notification: notify(flagged, "Report Submitted Successfully",
					"Critical symptoms detected. Health officer has been alerted.",
					"Report has been recorded and will be reviewed."),
			}
		})
}

func (s *SymptomFields) missing() []string {
	var out []string
	check := func(name, v string) {
		if strings.TrimSpace(v) == "" {
			out = append(out, name)
		}
	}
	check("patient_name", s.PatientName)
	check("age", s.Age)
	check("gender", s.Gender)
	check("address", s.Address)
	if len(s.Symptoms) == 0 {
		out = append(out, "symptoms")
	}
	check("severity", s.Severity)
	check("onset_date", s.OnsetDate)
	check("water_source", s.WaterSource)
	return out
}

func (s *SymptomFields) validate() error {
	missing := s.missing()
	var invalid []string
	if s.Age != "" {
		if n, err := strconv.Atoi(strings.TrimSpace(s.Age)); err != nil || n < 1 || n > 150 {
			invalid = append(invalid, "age")
		}
	}
	if s.Gender != "" && !domain.Gender(s.Gender).Valid() {
		invalid = append(invalid, "gender")
	}
	for _, id := range s.Symptoms {
		if _, ok := domain.LookupSymptom(id); !ok {
			invalid = append(invalid, "symptoms")
			break
		}
	}
	if s.Severity != "" && !domain.Severity(s.Severity).Valid() {
		invalid = append(invalid, "severity")
	}
	if s.OnsetDate != "" {
		if _, err := time.Parse(DateLayout, strings.TrimSpace(s.OnsetDate)); err != nil {
			invalid = append(invalid, "onset_date")
		}
	}
	if strings.TrimSpace(s.Temperature) != "" && domain.ParseOptionalFloat(s.Temperature) == nil {
		invalid = append(invalid, "temperature")
	}
	if s.WaterSource != "" && !domain.WaterSourceType(s.WaterSource).Valid() {
		invalid = append(invalid, "water_source")
	}
	if len(missing) > 0 || len(invalid) > 0 {
		return &domain.ValidationError{Fields: missing, Invalid: invalid}
	}
	return nil
}

// HealthReport builds the stored report for validated fields. The report
// is filed against the reporter's village, or the address when the
// reporter has none.
func (s SymptomFields) HealthReport(reporter *domain.User, now time.Time) *domain.HealthReport {
	age, _ := strconv.Atoi(strings.TrimSpace(s.Age))
	village := reporter.Village
	if village == "" {
		village = strings.TrimSpace(s.Address)
	}
	r := &domain.HealthReport{
		PatientName:  strings.TrimSpace(s.PatientName),
		Age:          age,
		Gender:       domain.Gender(s.Gender),
		Phone:        strings.TrimSpace(s.Phone),
		Address:      strings.TrimSpace(s.Address),
		Village:      village,
		Symptoms:     append(domain.SymptomSet{}, s.Symptoms...),
		Severity:     domain.Severity(s.Severity),
		OnsetDate:    strings.TrimSpace(s.OnsetDate),
		Temperature:  domain.ParseOptionalFloat(s.Temperature),
		Notes:        strings.TrimSpace(s.Notes),
		WaterSource:  domain.WaterSourceType(s.WaterSource),
		ReportedAt:   now.UTC(),
		ReporterID:   reporter.ID,
		ReporterName: reporter.Name,
	}
	r.Priority = domain.IsPriorityHealthReport(*r)
	return r
}
