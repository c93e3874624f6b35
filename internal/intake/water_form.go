package intake

import (
	"context"
	"strings"
	"time"

	"healthmon/internal/domain"
)

// Input layouts for dates and times entered on the forms.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// WaterFields are the raw values of a water quality form. Coordinates is
// "latitude, longitude".
type WaterFields struct {
	Location    string `json:"location"`
	SourceType  string `json:"source_type"`
	PH          string `json:"ph"`
	Turbidity   string `json:"turbidity"`
	TDS         string `json:"tds"`
	Temperature string `json:"temperature"`
	Chlorine    string `json:"chlorine"`
	EColi       string `json:"ecoli"`
	TestDate    string `json:"test_date"`
	TestTime    string `json:"test_time"`
	Notes       string `json:"notes"`
	Coordinates string `json:"coordinates"`
}

// WaterForm is one instance of the water quality workflow.
type WaterForm struct {
	machine
	fields WaterFields
}

// NewWaterForm returns a form in Editing with the test date and time set
// to now.
func NewWaterForm(timeout time.Duration, now time.Time) *WaterForm {
	return &WaterForm{
		machine: machine{timeout: timeout},
		fields: WaterFields{
			TestDate: now.Format(DateLayout),
			TestTime: now.Format(TimeLayout),
		},
	}
}

// Update applies fn to the fields. Only allowed while Editing.
func (f *WaterForm) Update(fn func(*WaterFields)) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.editable(); err != nil {
		return err
	}
	fn(&f.fields)
	return nil
}

// Fields returns a copy of the current values.
func (f *WaterForm) Fields() WaterFields {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fields
}

// Missing lists the required fields that are still empty.
func (f *WaterForm) Missing() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fields.missing()
}

// Flagged reports whether the readings entered so far indicate poor quality.
func (f *WaterForm) Flagged() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return domain.IsPoorWaterQuality(f.fields.reading())
}

// Cancel discards the form. Only allowed while Editing.
func (f *WaterForm) Cancel() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.cancel(); err != nil {
		return err
	}
	f.fields = WaterFields{}
	return nil
}

// Submit validates the form, hands a snapshot to sink and closes the form.
// If sink fails the form returns to Editing with its data intact.
func (f *WaterForm) Submit(ctx context.Context, sink func(context.Context, WaterFields) error) (*Result, error) {
	var snapshot WaterFields
	validate := func() error {
		if err := f.fields.validate(); err != nil {
			return err
		}
		snapshot = f.fields
		return nil
	}
	return f.run(ctx, validate,
		func(ctx context.Context) error { return sink(ctx, snapshot) },
		func() Result {
			flagged := domain.IsPoorWaterQuality(snapshot.reading())
			return Result{
				Flagged: flagged,
				Notification: notify(flagged, "Water Quality Report Submitted",
					"Poor water quality detected. Health officer has been alerted.",
					"Water quality data has been recorded successfully."),
			}
		})
}

func (w *WaterFields) reading() domain.WaterReading {
	return domain.ParseReading(w.PH, w.Turbidity, w.TDS, domain.EColiResult(w.EColi))
}

func (w *WaterFields) missing() []string {
	var out []string
	check := func(name, v string) {
		if strings.TrimSpace(v) == "" {
			out = append(out, name)
		}
	}
	check("location", w.Location)
	check("source_type", w.SourceType)
	check("test_date", w.TestDate)
	check("test_time", w.TestTime)
	return out
}

func (w *WaterFields) validate() error {
	missing := w.missing()
	var invalid []string
	if w.SourceType != "" && !domain.WaterSourceType(w.SourceType).Valid() {
		invalid = append(invalid, "source_type")
	}
	if w.EColi != "" && !domain.EColiResult(w.EColi).Valid() {
		invalid = append(invalid, "ecoli")
	}
	if w.TestDate != "" {
		if _, err := time.Parse(DateLayout, strings.TrimSpace(w.TestDate)); err != nil {
			invalid = append(invalid, "test_date")
		}
	}
	if w.TestTime != "" {
		if _, err := time.Parse(TimeLayout, strings.TrimSpace(w.TestTime)); err != nil {
			invalid = append(invalid, "test_time")
		}
	}
	if strings.TrimSpace(w.Coordinates) != "" {
		if _, _, ok := parseCoordinates(w.Coordinates); !ok {
			invalid = append(invalid, "coordinates")
		}
	}
	if len(missing) > 0 || len(invalid) > 0 {
		return &domain.ValidationError{Fields: missing, Invalid: invalid}
	}
	return nil
}

// WaterReport builds the stored report for validated fields. Readings that
// do not parse are stored as not measured.
func (w WaterFields) WaterReport(reporter *domain.User) *domain.WaterQualityReport {
	testedAt, _ := time.Parse(DateLayout+" "+TimeLayout, strings.TrimSpace(w.TestDate)+" "+strings.TrimSpace(w.TestTime))
	ecoli := domain.EColiResult(w.EColi)
	if ecoli == "" {
		ecoli = domain.EColiNotTested
	}
	r := &domain.WaterQualityReport{
		Location:     strings.TrimSpace(w.Location),
		SourceType:   domain.WaterSourceType(w.SourceType),
		PH:           domain.ParseOptionalFloat(w.PH),
		Turbidity:    domain.ParseOptionalFloat(w.Turbidity),
		TDS:          domain.ParseOptionalFloat(w.TDS),
		Temperature:  domain.ParseOptionalFloat(w.Temperature),
		Chlorine:     domain.ParseOptionalFloat(w.Chlorine),
		EColi:        ecoli,
		TestedAt:     testedAt.UTC(),
		ReporterID:   reporter.ID,
		ReporterName: reporter.Name,
		Notes:        strings.TrimSpace(w.Notes),
	}
	if lat, lng, ok := parseCoordinates(w.Coordinates); ok {
		r.Latitude, r.Longitude = &lat, &lng
	}
	r.PoorQuality = domain.IsPoorWaterQuality(r.Reading())
	return r
}

func parseCoordinates(s string) (lat, lng float64, ok bool) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return 0, 0, false
	}
	la, lo := domain.ParseOptionalFloat(parts[0]), domain.ParseOptionalFloat(parts[1])
	if la == nil || lo == nil || *la < -90 || *la > 90 || *lo < -180 || *lo > 180 {
		return 0, 0, false
	}
	return *la, *lo, true
}
