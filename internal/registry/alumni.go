package registry

var tables = newRegistry(KindTable, map[string]string{
	"ALUMNI_INFO":       "SELECT * FROM ALUMNI_INFO",
	"AWARDS":            "SELECT * FROM AWARDS",
	"CHAPTERS":          "SELECT * FROM CHAPTERS",
	"EVENTREGISTRATION": "SELECT * FROM EVENTREGISTRATION",
	"ALUMNIOFFICE":      "SELECT * FROM ALUMNIOFFICE",
	"EVENTS":            "SELECT * FROM ALLEVENTS",
	"OTHERINSTITUTIONS": "SELECT * FROM OTHERINSTITUTIONS",
})

var viewQueries = map[string]string{
	"ALUMNISBETWEEN2005AND2015":     "SELECT * FROM ALUMNISBETWEEN2005AND2015",
	"InstitutionContactSummary":     "SELECT * FROM InstitutionContactSummary",
	"AWARDSBETWEEN2020AND2022":      "SELECT * FROM AWARDSBETWEEN2020AND2022",
	"MERUANDNAIROBICHAPTERSALUMNIS": "SELECT * FROM MERUANDNAIROBICHAPTERSALUMNIS",
	"OTHERINSTITUTIONSVIEW":         "SELECT * FROM OTHERINSTITUTIONSVIEW",
	"TECHNOLOGYALUMNIS":             "SELECT * FROM TECHNOLOGYALUMNIS",
	"UPCOMINGEVENTS":                "SELECT * FROM UPCOMINGEVENTS",
	"ALUMNIDIRECTORY":               "SELECT * FROM ALUMNIDIRECTORY",
}

var views = newRegistry(KindView, viewQueries)

// Reports render the same queries as views.
var reports = newRegistry(KindReport, viewQueries)

var schema = Schema{tables: map[string]TableSchema{
	"ALUMNI_INFO": {
		Target:   "ALUMNI_INFO",
		Required: []string{"Alumni_ID", "Alumni_Name", "Chapter_ID", "Phone_Number", "Graduation_Year", "Degree", "Email", "Industry"},
	},
	"AWARDS": {
		Target:   "AWARDS",
		Required: []string{"Awards_ID", "AwardName", "Recipient_ID", "Date_Of_Issue", "AwardsDescription"},
	},
	"CHAPTERS": {
		Target:   "CHAPTERS",
		Required: []string{"Chapter_ID", "Chapter_Location", "Chapter_Name", "Contact_Person_Name", "Email", "Established_Year"},
	},
	"EVENTREGISTRATION": {
		Target:   "EVENTREGISTRATION",
		Required: []string{"AlumniID", "EventID", "RegistrationDate", "EmailAddress", "PhoneNumber", "PaymentStatus"},
	},
	"ALUMNIOFFICE": {
		Target:   "ALUMNIOFFICE",
		Required: []string{"Office_Name", "Office_ID", "Office_Location", "Contact_Info"},
	},
	"EVENTS": {
		Target:   "ALLEVENTS",
		Required: []string{"ProgramName", "Venue", "ProgramDate", "Start_Time", "End_Time", "Chapter_ID", "Contact_Info", "ProgramDescription"},
	},
	"OTHERINSTITUTIONS": {
		Target:   "OTHERINSTITUTIONS",
		Required: []string{"Institution_Name", "Institution_ID", "Location", "Partnership_Type", "Contact_Info"},
	},
}}

func Tables() Registry {
	return tables
}

func Views() Registry {
	return views
}

func Reports() Registry {
	return reports
}

func TableSchemas() Schema {
	return schema
}

// ForKind returns the registry serving a URL segment such as "table".
func ForKind(kind Kind) (Registry, bool) {
	switch kind {
	case KindTable:
		return tables, true
	case KindView:
		return views, true
	case KindReport:
		return reports, true
	default:
		return Registry{}, false
	}
}
