package dataset

import (
	"context"
	"database/sql"
	"fmt"
)

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

const (
	insertUserSQL = `
INSERT INTO user_details (name, user_name, email, phone, address, gender, status)
VALUES ($1, $2, $3, $4, $5, $6, $7)
ON CONFLICT (user_name) DO NOTHING`
	insertInternshipSQL = `
INSERT INTO internship_details (internship_id, company_name, job_description, role, seat, stipend, duration, location, remote_work, requirements, start_date, end_date, application_deadline, status)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
ON CONFLICT (internship_id) DO NOTHING`
	insertApplicationSQL = `
INSERT INTO user_internship (internship_id, user_name, application_date, resume_link, interview_date, score, status)
VALUES ($1, $2, $3, $4, $5, $6, $7)
ON CONFLICT (internship_id, user_name) DO NOTHING`
)

// SeedSQL inserts the sample rows in one transaction. Rows that already
// exist are left untouched, so seeding twice is harmless.
func SeedSQL(ctx context.Context, db *sql.DB, sample Sample) (err error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err := seedRows(ctx, tx, sample); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed transaction: %w", err)
	}
	return nil
}

func seedRows(ctx context.Context, tx execer, sample Sample) error {
	for _, u := range sample.Users {
		if _, err := tx.ExecContext(ctx, insertUserSQL, u.Name, u.UserName, u.Email, u.Phone, u.Address, u.Gender, u.Status); err != nil {
			return fmt.Errorf("insert user %q: %w", u.UserName, err)
		}
	}
	for _, i := range sample.Internships {
		if _, err := tx.ExecContext(ctx, insertInternshipSQL,
			i.InternshipID, i.CompanyName, i.JobDescription, i.Role, i.Seat, i.Stipend, i.DurationMonths,
			i.Location, i.RemoteWork, i.Requirements, i.StartDate, i.EndDate, i.ApplicationDeadline, i.Status,
		); err != nil {
			return fmt.Errorf("insert internship %q: %w", i.InternshipID, err)
		}
	}
	for _, a := range sample.Applications {
		if _, err := tx.ExecContext(ctx, insertApplicationSQL,
			a.InternshipID, a.UserName, a.ApplicationDate, a.ResumeLink, a.InterviewDate, a.Score, a.Status,
		); err != nil {
			return fmt.Errorf("insert application %s/%s: %w", a.UserName, a.InternshipID, err)
		}
	}
	return nil
}
