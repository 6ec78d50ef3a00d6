// Package dbtest builds a throwaway sqlite copy of the alumni-office schema
// for tests that need a real database behind the registries.
package dbtest

import (
	"database/sql"
	"path/filepath"
	"testing"

	"alumni-office/internal/db"

	_ "github.com/mattn/go-sqlite3"
)

var schema = []string{
	`CREATE TABLE CHAPTERS (
		Chapter_ID INTEGER PRIMARY KEY,
		Chapter_Location TEXT NOT NULL,
		Chapter_Name TEXT NOT NULL,
		Contact_Person_Name TEXT,
		Email TEXT,
		Established_Year INTEGER
	)`,
	`CREATE TABLE ALUMNI_INFO (
		Alumni_ID INTEGER PRIMARY KEY,
		Alumni_Name TEXT NOT NULL,
		Chapter_ID INTEGER,
		Phone_Number TEXT,
		Graduation_Year INTEGER,
		Degree TEXT,
		Email TEXT,
		Industry TEXT
	)`,
	`CREATE TABLE AWARDS (
		Awards_ID INTEGER PRIMARY KEY,
		AwardName TEXT,
		Recipient_ID INTEGER,
		Date_Of_Issue TEXT,
		AwardsDescription TEXT
	)`,
	`CREATE TABLE EVENTREGISTRATION (
		AlumniID INTEGER,
		EventID INTEGER,
		RegistrationDate TEXT,
		EmailAddress TEXT,
		PhoneNumber TEXT,
		PaymentStatus TEXT
	)`,
	`CREATE TABLE ALUMNIOFFICE (
		Office_Name TEXT,
		Office_ID INTEGER PRIMARY KEY,
		Office_Location TEXT,
		Contact_Info TEXT
	)`,
	`CREATE TABLE ALLEVENTS (
		ProgramName TEXT,
		Venue TEXT,
		ProgramDate TEXT,
		Start_Time TEXT,
		End_Time TEXT,
		Chapter_ID INTEGER,
		Contact_Info TEXT,
		ProgramDescription TEXT
	)`,
	`CREATE TABLE OTHERINSTITUTIONS (
		Institution_Name TEXT,
		Institution_ID INTEGER PRIMARY KEY,
		Location TEXT,
		Partnership_Type TEXT,
		Contact_Info TEXT
	)`,
	`CREATE VIEW ALUMNISBETWEEN2005AND2015 AS
		SELECT Alumni_ID, Alumni_Name, Graduation_Year FROM ALUMNI_INFO
		WHERE Graduation_Year BETWEEN 2005 AND 2015`,
	`CREATE VIEW InstitutionContactSummary AS
		SELECT Institution_Name, Contact_Info FROM OTHERINSTITUTIONS`,
	`CREATE VIEW AWARDSBETWEEN2020AND2022 AS
		SELECT AwardName, Recipient_ID, Date_Of_Issue FROM AWARDS
		WHERE Date_Of_Issue BETWEEN '2020-01-01' AND '2022-12-31'`,
	`CREATE VIEW MERUANDNAIROBICHAPTERSALUMNIS AS
		SELECT a.Alumni_Name, c.Chapter_Location FROM ALUMNI_INFO a
		JOIN CHAPTERS c ON c.Chapter_ID = a.Chapter_ID
		WHERE c.Chapter_Location IN ('Meru', 'Nairobi')`,
	`CREATE VIEW OTHERINSTITUTIONSVIEW AS
		SELECT Institution_Name, Location, Partnership_Type FROM OTHERINSTITUTIONS`,
	`CREATE VIEW TECHNOLOGYALUMNIS AS
		SELECT Alumni_Name, Email FROM ALUMNI_INFO WHERE Industry = 'Technology'`,
	`CREATE VIEW UPCOMINGEVENTS AS
		SELECT ProgramName, Venue, ProgramDate FROM ALLEVENTS`,
	`CREATE VIEW ALUMNIDIRECTORY AS
		SELECT Alumni_Name, Degree, Email, Phone_Number FROM ALUMNI_INFO`,
}

// Open creates the schema in a fresh file under t.TempDir.
func Open(t testing.TB) *db.Database {
	t.Helper()

	path := filepath.Join(t.TempDir(), "alumni.db")
	conn, err := sql.Open("sqlite3", path)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })

	for _, stmt := range schema {
		if _, err := conn.Exec(stmt); err != nil {
			t.Fatalf("apply schema: %v", err)
		}
	}

	return db.Wrap(conn, db.DialectSQLite, path)
}

// Exec runs seed statements, failing the test on error.
func Exec(t testing.TB, d *db.Database, stmts ...string) {
	t.Helper()
	for _, stmt := range stmts {
		if _, err := d.Exec(stmt); err != nil {
			t.Fatalf("exec %q: %v", stmt, err)
		}
	}
}
