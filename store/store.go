// Package store persists users, jobs, applications and chat history in
// sqlite (pure-Go driver). The agent layer never touches it directly; it
// only receives plain structs read here by the HTTP layer.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

var (
	// ErrNotFound is returned when a lookup matches no row.
	ErrNotFound = errors.New("not found")
	// ErrDuplicate is returned on unique-constraint violations.
	ErrDuplicate = errors.New("already exists")
)

// ChatKind selects one of the two chat history tables.
type ChatKind string

const (
	// ChatLearning is the learning chatbot history.
	ChatLearning ChatKind = "learning"
	// ChatCareer is the career agent history.
	ChatCareer ChatKind = "career"
)

func (k ChatKind) table() (string, error) {
	switch k {
	case ChatLearning:
		return "learning_chat_history", nil
	case ChatCareer:
		return "career_chat_history", nil
	default:
		return "", fmt.Errorf("unknown chat kind %q", k)
	}
}

// User is an account row.
type User struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	Password  string    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

// Job is a job board posting.
type Job struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Company     string    `json:"company"`
	Location    string    `json:"location,omitempty"`
	Description string    `json:"description,omitempty"`
	Link        string    `json:"link,omitempty"`
	PostedBy    string    `json:"posted_by,omitempty"`
	PostedAt    time.Time `json:"posted_at"`
}

// Application joins an application row with its job's headline fields.
type Application struct {
	ID         int64     `json:"id"`
	JobID      int64     `json:"job_id"`
	JobTitle   string    `json:"job_title"`
	JobCompany string    `json:"job_company"`
	ResumePath string    `json:"resume_path"`
	AppliedAt  time.Time `json:"applied_at"`
}

// ChatEntry is one saved exchange.
type ChatEntry struct {
	ID        int64     `json:"id"`
	Message   string    `json:"message"`
	Reply     string    `json:"reply"`
	Timestamp time.Time `json:"timestamp"`
}

// Store wraps the sqlite database. Safe for concurrent use; sqlite
// serializes writers and WAL keeps readers unblocked.
type Store struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS users (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	email TEXT UNIQUE NOT NULL,
	username TEXT UNIQUE NOT NULL,
	password TEXT NOT NULL,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS jobs (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	title TEXT NOT NULL,
	company TEXT NOT NULL,
	location TEXT,
	description TEXT,
	link TEXT,
	posted_by TEXT,
	posted_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS applications (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id INTEGER NOT NULL,
	job_id INTEGER NOT NULL,
	resume_path TEXT NOT NULL,
	applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (user_id) REFERENCES users(id),
	FOREIGN KEY (job_id) REFERENCES jobs(id)
);

CREATE TABLE IF NOT EXISTS saved_jobs (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id INTEGER NOT NULL,
	job_id INTEGER NOT NULL,
	saved_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	UNIQUE(user_id, job_id),
	FOREIGN KEY (user_id) REFERENCES users(id),
	FOREIGN KEY (job_id) REFERENCES jobs(id)
);

CREATE TABLE IF NOT EXISTS learning_chat_history (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id INTEGER NOT NULL,
	message TEXT NOT NULL,
	reply TEXT NOT NULL,
	timestamp TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (user_id) REFERENCES users(id)
);

CREATE TABLE IF NOT EXISTS career_chat_history (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id INTEGER NOT NULL,
	message TEXT NOT NULL,
	reply TEXT NOT NULL,
	timestamp TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (user_id) REFERENCES users(id)
);
`

// Open opens (creating if needed) the database at path and applies the
// schema. WAL and foreign keys are enabled for concurrency and integrity.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	for _, pragma := range []string{"PRAGMA journal_mode=WAL;", "PRAGMA foreign_keys=ON;"} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("apply pragma: %w", err)
		}
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the database handle.
func (s *Store) Close() error { return s.db.Close() }

// Ping verifies the database is reachable; used by health checks.
func (s *Store) Ping() error { return s.db.Ping() }

func wrapDup(err error) error {
	if err != nil && strings.Contains(err.Error(), "UNIQUE constraint") {
		return ErrDuplicate
	}
	return err
}

// CreateUser inserts an account; ErrDuplicate when email or username is
// taken.
func (s *Store) CreateUser(email, username, passwordHash string) error {
	_, err := s.db.Exec(
		"INSERT INTO users (email, username, password) VALUES (?, ?, ?)",
		email, username, passwordHash)
	return wrapDup(err)
}

// UserByEmail looks up an account by email.
func (s *Store) UserByEmail(email string) (User, error) {
	return s.userBy("email", email)
}

// UserByUsername looks up an account by username.
func (s *Store) UserByUsername(username string) (User, error) {
	return s.userBy("username", username)
}

func (s *Store) userBy(column, value string) (User, error) {
	var u User
	err := s.db.QueryRow(
		"SELECT id, email, username, password, created_at FROM users WHERE "+column+"=?",
		value).Scan(&u.ID, &u.Email, &u.Username, &u.Password, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, ErrNotFound
	}
	if err != nil {
		return User{}, fmt.Errorf("query user: %w", err)
	}
	return u, nil
}

// UpdatePassword replaces the password hash for the account with email.
func (s *Store) UpdatePassword(email, passwordHash string) error {
	res, err := s.db.Exec("UPDATE users SET password=? WHERE email=?", passwordHash, email)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// CreateJob inserts a posting and returns its id.
func (s *Store) CreateJob(j Job) (int64, error) {
	res, err := s.db.Exec(
		"INSERT INTO jobs (title, company, location, description, link, posted_by) VALUES (?, ?, ?, ?, ?, ?)",
		j.Title, j.Company, j.Location, j.Description, j.Link, j.PostedBy)
	if err != nil {
		return 0, fmt.Errorf("insert job: %w", err)
	}
	return res.LastInsertId()
}

// ListJobs returns all postings, newest first.
func (s *Store) ListJobs() ([]Job, error) {
	rows, err := s.db.Query(
		"SELECT id, title, company, COALESCE(location,''), COALESCE(description,''), COALESCE(link,''), COALESCE(posted_by,''), posted_at FROM jobs ORDER BY posted_at DESC, id DESC")
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	defer rows.Close()
	return scanJobs(rows)
}

// JobByID returns one posting.
func (s *Store) JobByID(id int64) (Job, error) {
	var j Job
	err := s.db.QueryRow(
		"SELECT id, title, company, COALESCE(location,''), COALESCE(description,''), COALESCE(link,''), COALESCE(posted_by,''), posted_at FROM jobs WHERE id=?",
		id).Scan(&j.ID, &j.Title, &j.Company, &j.Location, &j.Description, &j.Link, &j.PostedBy, &j.PostedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Job{}, ErrNotFound
	}
	if err != nil {
		return Job{}, fmt.Errorf("query job: %w", err)
	}
	return j, nil
}

// DeleteJob removes a posting.
func (s *Store) DeleteJob(id int64) error {
	res, err := s.db.Exec("DELETE FROM jobs WHERE id=?", id)
	if err != nil {
		return fmt.Errorf("delete job: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// SaveJob bookmarks a posting for a user; ErrDuplicate when already saved.
func (s *Store) SaveJob(userID, jobID int64) error {
	_, err := s.db.Exec("INSERT INTO saved_jobs (user_id, job_id) VALUES (?, ?)", userID, jobID)
	return wrapDup(err)
}

// UnsaveJob removes a bookmark.
func (s *Store) UnsaveJob(userID, jobID int64) error {
	res, err := s.db.Exec("DELETE FROM saved_jobs WHERE user_id=? AND job_id=?", userID, jobID)
	if err != nil {
		return fmt.Errorf("unsave job: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// SavedJobs lists a user's bookmarked postings, most recently saved first.
func (s *Store) SavedJobs(userID int64) ([]Job, error) {
	rows, err := s.db.Query(
		`SELECT j.id, j.title, j.company, COALESCE(j.location,''), COALESCE(j.description,''), COALESCE(j.link,''), COALESCE(j.posted_by,''), j.posted_at
		 FROM saved_jobs s JOIN jobs j ON j.id = s.job_id
		 WHERE s.user_id=? ORDER BY s.saved_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("saved jobs: %w", err)
	}
	defer rows.Close()
	return scanJobs(rows)
}

func scanJobs(rows *sql.Rows) ([]Job, error) {
	jobs := []Job{}
	for rows.Next() {
		var j Job
		if err := rows.Scan(&j.ID, &j.Title, &j.Company, &j.Location, &j.Description, &j.Link, &j.PostedBy, &j.PostedAt); err != nil {
			return nil, fmt.Errorf("scan job: %w", err)
		}
		jobs = append(jobs, j)
	}
	return jobs, rows.Err()
}

// Apply records an application; the job must exist.
func (s *Store) Apply(userID, jobID int64, resumePath string) (int64, error) {
	if _, err := s.JobByID(jobID); err != nil {
		return 0, err
	}
	res, err := s.db.Exec(
		"INSERT INTO applications (user_id, job_id, resume_path) VALUES (?, ?, ?)",
		userID, jobID, resumePath)
	if err != nil {
		return 0, fmt.Errorf("insert application: %w", err)
	}
	return res.LastInsertId()
}

// Applications lists a user's applications, newest first.
func (s *Store) Applications(userID int64) ([]Application, error) {
	rows, err := s.db.Query(
		`SELECT a.id, a.job_id, j.title, j.company, a.resume_path, a.applied_at
		 FROM applications a JOIN jobs j ON j.id = a.job_id
		 WHERE a.user_id=? ORDER BY a.applied_at DESC, a.id DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("applications: %w", err)
	}
	defer rows.Close()
	apps := []Application{}
	for rows.Next() {
		var a Application
		if err := rows.Scan(&a.ID, &a.JobID, &a.JobTitle, &a.JobCompany, &a.ResumePath, &a.AppliedAt); err != nil {
			return nil, fmt.Errorf("scan application: %w", err)
		}
		apps = append(apps, a)
	}
	return apps, rows.Err()
}

// SaveChat appends an exchange to the user's history of the given kind.
func (s *Store) SaveChat(kind ChatKind, userID int64, message, reply string) error {
	table, err := kind.table()
	if err != nil {
		return err
	}
	if _, err := s.db.Exec(
		"INSERT INTO "+table+" (user_id, message, reply) VALUES (?, ?, ?)",
		userID, message, reply); err != nil {
		return fmt.Errorf("save chat: %w", err)
	}
	return nil
}

// ChatHistory lists a user's saved exchanges, newest first.
func (s *Store) ChatHistory(kind ChatKind, userID int64) ([]ChatEntry, error) {
	table, err := kind.table()
	if err != nil {
		return nil, err
	}
	rows, err := s.db.Query(
		"SELECT id, message, reply, timestamp FROM "+table+" WHERE user_id=? ORDER BY timestamp DESC, id DESC",
		userID)
	if err != nil {
		return nil, fmt.Errorf("chat history: %w", err)
	}
	defer rows.Close()
	entries := []ChatEntry{}
	for rows.Next() {
		var e ChatEntry
		if err := rows.Scan(&e.ID, &e.Message, &e.Reply, &e.Timestamp); err != nil {
			return nil, fmt.Errorf("scan chat entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// ClearChat deletes all of a user's history of the given kind.
func (s *Store) ClearChat(kind ChatKind, userID int64) error {
	table, err := kind.table()
	if err != nil {
		return err
	}
	if _, err := s.db.Exec("DELETE FROM "+table+" WHERE user_id=?", userID); err != nil {
		return fmt.Errorf("clear chat: %w", err)
	}
	return nil
}
