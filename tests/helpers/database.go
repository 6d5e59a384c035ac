package helpers

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"
)

// GetTestDatabasePool creates a database connection pool for testing
func GetTestDatabasePool(ctx context.Context) (*pgxpool.Pool, error) {
	databaseURL := buildDatabaseURL()

	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	// Test the connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return pool, nil
}

// buildDatabaseURL constructs the database URL from environment variables
func buildDatabaseURL() string {
	host := os.Getenv("POSTGRES_HOST")
	if host == "" {
		host = "petition-orchestrator-db-rw.lexdraft.svc"
	}

	port := os.Getenv("POSTGRES_PORT")
	if port == "" {
		port = "5432"
	}

	user := os.Getenv("POSTGRES_USER")
	if user == "" {
		user = "postgres"
	}

	password := os.Getenv("POSTGRES_PASSWORD")
	if password == "" {
		password = "postgres"
	}

	dbname := os.Getenv("POSTGRES_DB")
	if dbname == "" {
		dbname = "petition_orchestrator"
	}

	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=prefer",
		user, password, host, port, dbname)
}

// TestDatabase provides database utilities for testing
type TestDatabase struct {
	Pool *pgxpool.Pool
	ctx  context.Context
}

// NewTestDatabase creates a new test database instance
func NewTestDatabase(t *testing.T) *TestDatabase {
	ctx := context.Background()

	pool, err := GetTestDatabasePool(ctx)
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}

	return &TestDatabase{
		Pool: pool,
		ctx:  ctx,
	}
}

// Close closes the database connection
func (db *TestDatabase) Close() {
	if db.Pool != nil {
		db.Pool.Close()
	}
}

// CreateTestUser creates a lawyer account and returns the user ID.
// hashedPassword is stored as given; hash it first when the login flow is
// under test.
func (db *TestDatabase) CreateTestUser(t *testing.T, email, hashedPassword string) string {
	var userID string

	err := db.Pool.QueryRow(db.ctx, `
		INSERT INTO users (name, email, oab_number, hashed_password, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING id
	`, "Dra. Teste", email, "OAB/SP 123456", hashedPassword).Scan(&userID)

	if err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}

	return userID
}

// DeleteTestUser removes a user and, via cascades, everything it owns
func (db *TestDatabase) DeleteTestUser(t *testing.T, userID string) {
	if _, err := db.Pool.Exec(db.ctx, `DELETE FROM users WHERE id = $1`, userID); err != nil {
		t.Logf("Warning: failed to delete test user %s: %v", userID, err)
	}
}

// CreateTestClient creates a client record and returns its ID
func (db *TestDatabase) CreateTestClient(t *testing.T, ownerID, name string) string {
	var clientID string
	err := db.Pool.QueryRow(db.ctx, `
		INSERT INTO clients (owner_id, name, document, created_at, updated_at)
		VALUES ($1, $2, '123.456.789-00', NOW(), NOW())
		RETURNING id
	`, ownerID, name).Scan(&clientID)

	if err != nil {
		t.Fatalf("Failed to create test client: %v", err)
	}

	return clientID
}

// CreateTestDocument creates a generated document record and returns its ID
func (db *TestDatabase) CreateTestDocument(t *testing.T, ownerID, title, rawText string) string {
	var documentID string
	err := db.Pool.QueryRow(db.ctx, `
		INSERT INTO documents (owner_id, title, legal_area, piece_type, raw_text, formatted_html, prompt, created_at, updated_at)
		VALUES ($1, $2, 'Direito Civil', 'Petição Inicial', $3, '', '', NOW(), NOW())
		RETURNING id
	`, ownerID, title, rawText).Scan(&documentID)

	if err != nil {
		t.Fatalf("Failed to create test document: %v", err)
	}

	return documentID
}

// GetDocumentCount returns the number of documents owned by a user
func (db *TestDatabase) GetDocumentCount(t *testing.T, ownerID string) int {
	var count int
	err := db.Pool.QueryRow(db.ctx, "SELECT COUNT(*) FROM documents WHERE owner_id = $1", ownerID).Scan(&count)
	if err != nil {
		t.Fatalf("Failed to get document count: %v", err)
	}
	return count
}

// HashPassword hashes a password using bcrypt for testing
func (db *TestDatabase) HashPassword(password string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashedBytes), nil
}

// WaitForDatabase waits for database to be ready
func WaitForDatabase(ctx context.Context, maxAttempts int) error {
	for i := 0; i < maxAttempts; i++ {
		pool, err := GetTestDatabasePool(ctx)
		if err == nil {
			pool.Close()
			return nil
		}

		if i < maxAttempts-1 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
		}
	}

	return fmt.Errorf("database not ready after %d attempts", maxAttempts)
}
