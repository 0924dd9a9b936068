package storage

import (
	"database/sql"
	"time"

	"voyago/internal/models"

	// Import sqlite driver
	_ "modernc.org/sqlite"
)

// DB wraps a sql.DB connection.
type DB struct {
	conn *sql.DB
}

// NewDB opens a database connection and runs migrations.
func NewDB(path string) (*DB, error) {
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// SQLite allows a single writer; one pooled connection also keeps
	// the foreign_keys pragma applied to every statement.
	conn.SetMaxOpenConns(1)

	if err := conn.Ping(); err != nil {
		return nil, err
	}

	// Booking and diary rows must reference existing users/packages.
	if _, err := conn.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, err
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		return nil, err
	}

	return db, nil
}

func (db *DB) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			username TEXT UNIQUE NOT NULL,
			password_hash TEXT NOT NULL,
			is_admin INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS packages (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			destination TEXT NOT NULL,
			description TEXT NOT NULL,
			price REAL NOT NULL CHECK (price >= 0),
			days INTEGER NOT NULL CHECK (days >= 1)
		)`,
		`CREATE TABLE IF NOT EXISTS bookings (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			reference TEXT NOT NULL,
			user_id INTEGER NOT NULL,
			package_id INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (user_id) REFERENCES users(id),
			FOREIGN KEY (package_id) REFERENCES packages(id) ON DELETE CASCADE
		)`,
		`CREATE TABLE IF NOT EXISTS diary_entries (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id INTEGER NOT NULL,
			text TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (user_id) REFERENCES users(id)
		)`,
		`CREATE TABLE IF NOT EXISTS contacts (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			email TEXT NOT NULL,
			contact_number TEXT NOT NULL,
			comments TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS sessions (
			token TEXT PRIMARY KEY,
			user_id INTEGER NOT NULL,
			expires_at DATETIME NOT NULL,
			last_activity DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
		)`,
	}

	for _, m := range migrations {
		if _, err := db.conn.Exec(m); err != nil {
			return err
		}
	}

	return nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

// CreatePackage inserts a new package and fills in its generated ID.
func (db *DB) CreatePackage(p *models.Package) error {
	result, err := db.conn.Exec(
		"INSERT INTO packages (name, destination, description, price, days) VALUES (?, ?, ?, ?, ?)",
		p.Name, p.Destination, p.Description, p.Price, p.Days,
	)
	if err != nil {
		return err
	}
	p.ID, err = result.LastInsertId()
	return err
}

// GetPackage retrieves a single package by ID.
func (db *DB) GetPackage(id int64) (*models.Package, error) {
	row := db.conn.QueryRow(
		"SELECT id, name, destination, description, price, days FROM packages WHERE id = ?",
		id,
	)

	var p models.Package
	if err := row.Scan(&p.ID, &p.Name, &p.Destination, &p.Description, &p.Price, &p.Days); err != nil {
		return nil, err
	}
	return &p, nil
}

// UpdatePackage updates an existing package.
func (db *DB) UpdatePackage(p *models.Package) error {
	_, err := db.conn.Exec(
		"UPDATE packages SET name = ?, destination = ?, description = ?, price = ?, days = ? WHERE id = ?",
		p.Name, p.Destination, p.Description, p.Price, p.Days, p.ID,
	)
	return err
}

// DeletePackage removes a package by ID.
func (db *DB) DeletePackage(id int64) error {
	_, err := db.conn.Exec("DELETE FROM packages WHERE id = ?", id)
	return err
}

// ListPackages retrieves all packages ordered by name.
func (db *DB) ListPackages() ([]models.Package, error) {
	rows, err := db.conn.Query(
		"SELECT id, name, destination, description, price, days FROM packages ORDER BY name",
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var packages []models.Package
	for rows.Next() {
		var p models.Package
		if err := rows.Scan(&p.ID, &p.Name, &p.Destination, &p.Description, &p.Price, &p.Days); err != nil {
			return nil, err
		}
		packages = append(packages, p)
	}

	return packages, rows.Err()
}

// CreateBooking inserts a booking row for (user, package). Duplicate
// bookings are permitted; each call adds one row.
func (db *DB) CreateBooking(reference string, userID, packageID int64) (*models.Booking, error) {
	now := time.Now()
	result, err := db.conn.Exec(
		"INSERT INTO bookings (reference, user_id, package_id, created_at) VALUES (?, ?, ?, ?)",
		reference, userID, packageID, now,
	)
	if err != nil {
		return nil, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}

	return &models.Booking{
		ID:        id,
		Reference: reference,
		UserID:    userID,
		PackageID: packageID,
		CreatedAt: now,
	}, nil
}

// CountBookingsFor returns the number of bookings a user holds for a package.
func (db *DB) CountBookingsFor(userID, packageID int64) (int, error) {
	var count int
	err := db.conn.QueryRow(
		"SELECT COUNT(*) FROM bookings WHERE user_id = ? AND package_id = ?",
		userID, packageID,
	).Scan(&count)
	return count, err
}

// CountBookings returns the total number of bookings.
func (db *DB) CountBookings() (int, error) {
	var count int
	err := db.conn.QueryRow("SELECT COUNT(*) FROM bookings").Scan(&count)
	return count, err
}

// ListBookingsByUser retrieves a user's bookings, latest first.
func (db *DB) ListBookingsByUser(userID int64) ([]models.Booking, error) {
	rows, err := db.conn.Query(
		"SELECT id, reference, user_id, package_id, created_at FROM bookings WHERE user_id = ? ORDER BY created_at DESC",
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookings []models.Booking
	for rows.Next() {
		var b models.Booking
		if err := rows.Scan(&b.ID, &b.Reference, &b.UserID, &b.PackageID, &b.CreatedAt); err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}

	return bookings, rows.Err()
}

// CreateDiaryEntry inserts a diary entry for a user.
func (db *DB) CreateDiaryEntry(userID int64, text string) error {
	_, err := db.conn.Exec(
		"INSERT INTO diary_entries (user_id, text, created_at) VALUES (?, ?, ?)",
		userID, text, time.Now(),
	)
	return err
}

// DiaryEntry is a diary row joined with its author's username for the
// public listing.
type DiaryEntry struct {
	models.Diary
	Username string
}

// ListDiaryEntries retrieves all diary entries with authors, latest first.
func (db *DB) ListDiaryEntries() ([]DiaryEntry, error) {
	rows, err := db.conn.Query(`
		SELECT d.id, d.user_id, d.text, d.created_at, u.username
		FROM diary_entries d
		JOIN users u ON d.user_id = u.id
		ORDER BY d.created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []DiaryEntry
	for rows.Next() {
		var e DiaryEntry
		if err := rows.Scan(&e.ID, &e.UserID, &e.Text, &e.CreatedAt, &e.Username); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}

// CreateContact persists a contact message and fills in its generated ID.
func (db *DB) CreateContact(c *models.Contact) error {
	now := time.Now()
	result, err := db.conn.Exec(
		"INSERT INTO contacts (name, email, contact_number, comments, created_at) VALUES (?, ?, ?, ?, ?)",
		c.Name, c.Email, c.ContactNumber, c.Comments, now,
	)
	if err != nil {
		return err
	}
	c.CreatedAt = now
	c.ID, err = result.LastInsertId()
	return err
}

// ListContacts retrieves all contact messages, latest first.
func (db *DB) ListContacts() ([]models.Contact, error) {
	rows, err := db.conn.Query(
		"SELECT id, name, email, contact_number, comments, created_at FROM contacts ORDER BY created_at DESC",
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var contacts []models.Contact
	for rows.Next() {
		var c models.Contact
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.ContactNumber, &c.Comments, &c.CreatedAt); err != nil {
			return nil, err
		}
		contacts = append(contacts, c)
	}

	return contacts, rows.Err()
}

// CountContactsByEmail returns the number of contact rows with an email.
func (db *DB) CountContactsByEmail(email string) (int, error) {
	var count int
	err := db.conn.QueryRow("SELECT COUNT(*) FROM contacts WHERE email = ?", email).Scan(&count)
	return count, err
}

// CreateUser creates a new user with the given username and password hash.
func (db *DB) CreateUser(username, passwordHash string, isAdmin bool) (*models.User, error) {
	result, err := db.conn.Exec(
		"INSERT INTO users (username, password_hash, is_admin) VALUES (?, ?, ?)",
		username, passwordHash, isAdmin,
	)
	if err != nil {
		return nil, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}

	return db.GetUserByID(id)
}

// GetUserByID retrieves a user by ID.
func (db *DB) GetUserByID(id int64) (*models.User, error) {
	row := db.conn.QueryRow(
		"SELECT id, username, password_hash, is_admin, created_at FROM users WHERE id = ?",
		id,
	)

	var u models.User
	if err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.IsAdmin, &u.CreatedAt); err != nil {
		return nil, err
	}
	return &u, nil
}

// GetUserByUsername retrieves a user by username.
func (db *DB) GetUserByUsername(username string) (*models.User, error) {
	row := db.conn.QueryRow(
		"SELECT id, username, password_hash, is_admin, created_at FROM users WHERE username = ?",
		username,
	)

	var u models.User
	if err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.IsAdmin, &u.CreatedAt); err != nil {
		return nil, err
	}
	return &u, nil
}

// PromoteToAdmin grants the admin role to an existing user.
func (db *DB) PromoteToAdmin(username string) error {
	_, err := db.conn.Exec("UPDATE users SET is_admin = 1 WHERE username = ?", username)
	return err
}

// UserCount returns the number of users in the database.
func (db *DB) UserCount() (int, error) {
	var count int
	err := db.conn.QueryRow("SELECT COUNT(*) FROM users").Scan(&count)
	return count, err
}

// CreateSession creates a new session for a user.
func (db *DB) CreateSession(token string, userID int64, expiresAt time.Time) error {
	now := time.Now()
	_, err := db.conn.Exec(
		"INSERT INTO sessions (token, user_id, expires_at, last_activity) VALUES (?, ?, ?, ?)",
		token, userID, expiresAt, now,
	)
	return err
}

// SessionInfo holds session validation data.
type SessionInfo struct {
	User         *models.User
	LastActivity time.Time
	ExpiresAt    time.Time
}

// ValidateSession checks if a session token is valid and returns the associated user.
func (db *DB) ValidateSession(token string) (*models.User, error) {
	info, err := db.ValidateSessionWithInfo(token)
	if err != nil {
		return nil, err
	}
	return info.User, nil
}

// ValidateSessionWithInfo checks if a session token is valid and returns session details.
func (db *DB) ValidateSessionWithInfo(token string) (*SessionInfo, error) {
	row := db.conn.QueryRow(`
		SELECT u.id, u.username, u.password_hash, u.is_admin, u.created_at, s.last_activity, s.expires_at
		FROM sessions s
		JOIN users u ON s.user_id = u.id
		WHERE s.token = ? AND s.expires_at > CURRENT_TIMESTAMP
	`, token)

	var u models.User
	var lastActivity, expiresAt time.Time
	if err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.IsAdmin, &u.CreatedAt, &lastActivity, &expiresAt); err != nil {
		return nil, err
	}
	return &SessionInfo{
		User:         &u,
		LastActivity: lastActivity,
		ExpiresAt:    expiresAt,
	}, nil
}

// RenewSession updates the last_activity and expires_at for a session.
func (db *DB) RenewSession(token string, newExpiresAt time.Time) error {
	now := time.Now()
	_, err := db.conn.Exec(
		"UPDATE sessions SET last_activity = ?, expires_at = ? WHERE token = ?",
		now, newExpiresAt, token,
	)
	return err
}

// DeleteSession removes a session by token.
func (db *DB) DeleteSession(token string) error {
	_, err := db.conn.Exec("DELETE FROM sessions WHERE token = ?", token)
	return err
}

// CleanExpiredSessions removes all expired sessions.
func (db *DB) CleanExpiredSessions() error {
	_, err := db.conn.Exec("DELETE FROM sessions WHERE expires_at <= CURRENT_TIMESTAMP")
	return err
}
