package dashboard

import "healthmon/internal/domain"

// Scope narrows data to the records user may see. Administrators, and
// officers with no district, see everything. Officers see their district.
// Field workers see their own reports, the alerts for their area, and the
// villages of their district.
func Scope(user *domain.User, data Data) Data {
	switch user.Role {
	case domain.RoleAdmin:
		return data
	case domain.RoleDistrictOfficer:
		if user.District == "" {
			return data
		}
		s := newDistrictScope(user.District, data)
		out := Data{Villages: s.villages, Users: []domain.User{}, Alerts: []domain.Alert{}}
		for _, u := range data.Users {
			if u.District == user.District {
				out.Users = append(out.Users, u)
			}
		}
		for _, a := range data.Alerts {
			if AlertVisible(user, data.Villages, a) {
				out.Alerts = append(out.Alerts, a)
			}
		}
		out.HealthReports, out.WaterReports = s.reports(data)
		return out
	case domain.RoleFieldWorker:
		out := Data{
			Users:         []domain.User{*user},
			Villages:      []domain.Village{},
			HealthReports: []domain.HealthReport{},
			WaterReports:  []domain.WaterQualityReport{},
			Alerts:        []domain.Alert{},
		}
		for _, v := range data.Villages {
			if (user.District != "" && v.District == user.District) || v.Name == user.Village {
				out.Villages = append(out.Villages, v)
			}
		}
		for _, r := range data.HealthReports {
			if r.ReporterID == user.ID {
				out.HealthReports = append(out.HealthReports, r)
			}
		}
		for _, r := range data.WaterReports {
			if r.ReporterID == user.ID {
				out.WaterReports = append(out.WaterReports, r)
			}
		}
		for _, a := range data.Alerts {
			if AlertVisible(user, data.Villages, a) {
				out.Alerts = append(out.Alerts, a)
			}
		}
		return out
	}
	return Data{}
}

// AlertVisible reports whether user may see a. villages resolves alerts that
// name a village in an officer's district under another district label.
func AlertVisible(user *domain.User, villages []domain.Village, a domain.Alert) bool {
	switch user.Role {
	case domain.RoleAdmin:
		return true
	case domain.RoleDistrictOfficer:
		if user.District == "" {
			return true
		}
		return newDistrictScope(user.District, Data{Villages: villages}).hasAlert(a)
	case domain.RoleFieldWorker:
		return workerSees(user, a)
	}
	return false
}

// workerSees reports whether an alert concerns the field worker's area.
func workerSees(user *domain.User, a domain.Alert) bool {
	return (user.Village != "" && a.Village == user.Village) || (user.District != "" && a.District == user.District)
}
