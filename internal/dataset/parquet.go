package dataset

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/parquet-go/parquet-go"

	"github.com/sqlchat/sqlchat/internal/query"
	"github.com/sqlchat/sqlchat/internal/storage"
)

const parquetContentType = "application/vnd.apache.parquet"

// Parquet rows mirror the relational schema. Dates are stored as ISO text.
type userRow struct {
	ID        int64     `parquet:"id"`
	Name      string    `parquet:"name"`
	UserName  string    `parquet:"user_name"`
	Email     string    `parquet:"email"`
	Phone     string    `parquet:"phone"`
	Address   *string   `parquet:"address,optional"`
	Gender    string    `parquet:"gender"`
	Status    string    `parquet:"status"`
	CreatedAt time.Time `parquet:"created_at,timestamp(millisecond)"`
}

type internshipRow struct {
	ID                  int64     `parquet:"id"`
	InternshipID        string    `parquet:"internship_id"`
	CompanyName         string    `parquet:"company_name"`
	JobDescription      string    `parquet:"job_description"`
	Role                string    `parquet:"role"`
	Seat                int32     `parquet:"seat"`
	Stipend             float64   `parquet:"stipend"`
	Duration            int32     `parquet:"duration"`
	Location            string    `parquet:"location"`
	RemoteWork          bool      `parquet:"remote_work"`
	Requirements        string    `parquet:"requirements"`
	CreatedAt           time.Time `parquet:"created_at,timestamp(millisecond)"`
	StartDate           string    `parquet:"start_date"`
	EndDate             string    `parquet:"end_date"`
	ApplicationDeadline string    `parquet:"application_deadline"`
	Status              string    `parquet:"status"`
}

type applicationRow struct {
	ID              int64     `parquet:"id"`
	InternshipID    string    `parquet:"internship_id"`
	UserName        string    `parquet:"user_name"`
	ApplicationDate time.Time `parquet:"application_date,timestamp(millisecond)"`
	ResumeLink      string    `parquet:"resume_link"`
	InterviewDate   *string   `parquet:"interview_date,optional"`
	Score           *float64  `parquet:"score,optional"`
	Status          string    `parquet:"status"`
}

// EncodeTable returns the parquet encoding of one sample table.
func EncodeTable(sample Sample, table string, createdAt time.Time) ([]byte, error) {
	switch table {
	case TableUserDetails:
		rows := make([]userRow, 0, len(sample.Users))
		for i, u := range sample.Users {
			rows = append(rows, userRow{
				ID: int64(i + 1), Name: u.Name, UserName: u.UserName, Email: u.Email, Phone: u.Phone,
				Address: u.Address, Gender: u.Gender, Status: u.Status, CreatedAt: createdAt,
			})
		}
		return encodeRows(rows)
	case TableInternshipDetails:
		rows := make([]internshipRow, 0, len(sample.Internships))
		for i, in := range sample.Internships {
			rows = append(rows, internshipRow{
				ID: int64(i + 1), InternshipID: in.InternshipID, CompanyName: in.CompanyName,
				JobDescription: in.JobDescription, Role: in.Role, Seat: in.Seat, Stipend: in.Stipend,
				Duration: in.DurationMonths, Location: in.Location, RemoteWork: in.RemoteWork,
				Requirements: in.Requirements, CreatedAt: createdAt,
				StartDate: isoDate(in.StartDate), EndDate: isoDate(in.EndDate),
				ApplicationDeadline: isoDate(in.ApplicationDeadline), Status: in.Status,
			})
		}
		return encodeRows(rows)
	case TableUserInternship:
		rows := make([]applicationRow, 0, len(sample.Applications))
		for i, a := range sample.Applications {
			row := applicationRow{
				ID: int64(i + 1), InternshipID: a.InternshipID, UserName: a.UserName,
				ApplicationDate: a.ApplicationDate, ResumeLink: a.ResumeLink, Score: a.Score, Status: a.Status,
			}
			if a.InterviewDate != nil {
				d := isoDate(*a.InterviewDate)
				row.InterviewDate = &d
			}
			rows = append(rows, row)
		}
		return encodeRows(rows)
	default:
		return nil, fmt.Errorf("unknown table %q", table)
	}
}

func encodeRows[T any](rows []T) ([]byte, error) {
	buf := bytes.NewBuffer(nil)
	writer := parquet.NewGenericWriter[T](buf)
	if _, err := writer.Write(rows); err != nil {
		return nil, fmt.Errorf("write parquet rows: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("close parquet writer: %w", err)
	}
	return buf.Bytes(), nil
}

func isoDate(t time.Time) string {
	return t.Format(time.DateOnly)
}

// Publish uploads every table of sample as parquet under the dataset name
// and returns the resulting table files.
func Publish(ctx context.Context, store storage.ObjectStore, name string, sample Sample) ([]query.TableFile, error) {
	createdAt := time.Now().UTC().Truncate(time.Millisecond)
	files := make([]query.TableFile, 0, len(Tables))
	for _, table := range Tables {
		key, err := storage.BuildTablePath(name, table)
		if err != nil {
			return nil, err
		}
		data, err := EncodeTable(sample, table, createdAt)
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", table, err)
		}
		if _, err := store.Put(ctx, key, bytes.NewReader(data), int64(len(data)), storage.PutOptions{ContentType: parquetContentType}); err != nil {
			return nil, fmt.Errorf("upload %s: %w", table, err)
		}
		files = append(files, query.TableFile{TableName: table, ObjectPath: key, FileSizeBytes: int64(len(data))})
	}
	return files, nil
}

// Files resolves the published parquet objects of a dataset.
func Files(ctx context.Context, store storage.ObjectStore, name string) ([]query.TableFile, error) {
	files := make([]query.TableFile, 0, len(Tables))
	for _, table := range Tables {
		key, err := storage.BuildTablePath(name, table)
		if err != nil {
			return nil, err
		}
		info, err := store.Stat(ctx, key)
		if err != nil {
			if errors.Is(err, storage.ErrObjectNotFound) {
				return nil, fmt.Errorf("dataset %q has no published %s table: %w", name, table, err)
			}
			return nil, fmt.Errorf("stat %s: %w", key, err)
		}
		files = append(files, query.TableFile{TableName: table, ObjectPath: key, FileSizeBytes: info.Size})
	}
	return files, nil
}

// Resolver looks up a dataset's table files on every call, so a republished
// dataset is picked up without a restart.
type Resolver struct {
	Store storage.ObjectStore
	Name  string
}

func (r Resolver) TableFiles(ctx context.Context) ([]query.TableFile, error) {
	return Files(ctx, r.Store, r.Name)
}
