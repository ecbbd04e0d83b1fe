// Package dataset holds the sample internship data and publishes it to the
// relational database or, as parquet, to the object store.
package dataset

import "time"

const (
	TableUserDetails       = "user_details"
	TableInternshipDetails = "internship_details"
	TableUserInternship    = "user_internship"
)

// Tables lists the dataset tables in dependency order.
var Tables = []string{TableUserDetails, TableInternshipDetails, TableUserInternship}

type User struct {
	Name     string
	UserName string
	Email    string
	Phone    string
	Address  *string
	Gender   string
	Status   string
}

type Internship struct {
	InternshipID        string
	CompanyName         string
	JobDescription      string
	Role                string
	Seat                int32
	Stipend             float64
	DurationMonths      int32
	Location            string
	RemoteWork          bool
	Requirements        string
	StartDate           time.Time
	EndDate             time.Time
	ApplicationDeadline time.Time
	Status              string
}

type Application struct {
	InternshipID    string
	UserName        string
	ApplicationDate time.Time
	ResumeLink      string
	InterviewDate   *time.Time
	Score           *float64
	Status          string
}

// Sample is the full sample dataset.
type Sample struct {
	Users        []User
	Internships  []Internship
	Applications []Application
}

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func ptr[T any](v T) *T {
	return &v
}

// Default returns the bundled sample dataset.
func Default() Sample {
	return Sample{
		Users: []User{
			{Name: "John Doe", UserName: "john_doe", Email: "john@example.com", Phone: "555-0101", Address: ptr("12 Main St"), Gender: "male", Status: "active"},
			{Name: "Jane Smith", UserName: "jane_smith", Email: "jane@example.com", Phone: "555-0102", Address: ptr("34 Oak Ave"), Gender: "female", Status: "active"},
			{Name: "Alex Kumar", UserName: "alex_kumar", Email: "alex@example.com", Phone: "555-0103", Gender: "non-binary", Status: "inactive"},
		},
		Internships: []Internship{
			{
				InternshipID: "INT001", CompanyName: "Tech Corp", Role: "Software Engineer",
				JobDescription: "Build backend services.", Requirements: "Go or Java",
				Seat: 3, Stipend: 5000, DurationMonths: 6, Location: "Berlin",
				StartDate: day(2026, time.June, 1), EndDate: day(2026, time.November, 30),
				ApplicationDeadline: day(2026, time.April, 15), Status: "open",
			},
			{
				InternshipID: "INT002", CompanyName: "Data Inc", Role: "Data Analyst",
				JobDescription: "Analyse product metrics.", Requirements: "SQL",
				Seat: 2, Stipend: 4500, DurationMonths: 3, Location: "Remote", RemoteWork: true,
				StartDate: day(2026, time.July, 1), EndDate: day(2026, time.September, 30),
				ApplicationDeadline: day(2026, time.May, 1), Status: "open",
			},
			{
				InternshipID: "INT003", CompanyName: "AI Labs", Role: "ML Engineer",
				JobDescription: "Train ranking models.", Requirements: "Python, statistics",
				Seat: 1, Stipend: 6000, DurationMonths: 6, Location: "London",
				StartDate: day(2026, time.May, 1), EndDate: day(2026, time.October, 31),
				ApplicationDeadline: day(2026, time.March, 31), Status: "closed",
			},
		},
		Applications: []Application{
			{InternshipID: "INT001", UserName: "john_doe", ApplicationDate: day(2026, time.March, 2), ResumeLink: "https://example.com/cv/john_doe.pdf", InterviewDate: ptr(day(2026, time.March, 20)), Score: ptr(88.5), Status: "selected"},
			{InternshipID: "INT003", UserName: "john_doe", ApplicationDate: day(2026, time.March, 5), ResumeLink: "https://example.com/cv/john_doe.pdf", InterviewDate: ptr(day(2026, time.March, 25)), Score: ptr(61.0), Status: "rejected"},
			{InternshipID: "INT001", UserName: "jane_smith", ApplicationDate: day(2026, time.March, 10), ResumeLink: "https://example.com/cv/jane_smith.pdf", Status: "applied"},
			{InternshipID: "INT002", UserName: "jane_smith", ApplicationDate: day(2026, time.March, 12), ResumeLink: "https://example.com/cv/jane_smith.pdf", InterviewDate: ptr(day(2026, time.April, 2)), Score: ptr(92.0), Status: "selected"},
			{InternshipID: "INT002", UserName: "alex_kumar", ApplicationDate: day(2026, time.March, 14), Status: "rejected"},
		},
	}
}
