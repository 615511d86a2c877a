package testutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/joho/godotenv"
	"github.com/labforge/ims/internal/ims/entity"
	"github.com/labforge/ims/internal/middleware"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	TestSchema = "test_ims"
	JWTSecret  = "ims-test-jwt-secret"
)

// TestEnv holds test environment resources
type TestEnv struct {
	DB     *gorm.DB
	Router *gin.Engine
	T      *testing.T
}

// projectRoot returns the project root directory by looking for go.mod
func projectRoot() string {
	_, filename, _, _ := runtime.Caller(0)
	dir := filepath.Dir(filename)
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return ""
}

// loadEnv loads .env from the project root
func loadEnv() {
	root := projectRoot()
	if root != "" {
		godotenv.Load(filepath.Join(root, ".env"))
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// SetupTestDB creates a test database connection using a dedicated test
// schema. Each test gets an isolated schema that is dropped afterwards.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	loadEnv()

	host := getEnv("DB_HOST", "127.0.0.1")
	port := getEnv("DB_PORT", "5432")
	user := getEnv("DB_USER", "postgres")
	password := getEnv("DB_PASSWORD", "postgres")
	dbname := getEnv("DB_NAME", "ims")

	baseDSN := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		host, port, user, password, dbname)

	schemaName := fmt.Sprintf("%s_%d", TestSchema, time.Now().UnixNano()%1000000)

	// Create the schema on a temporary connection.
	setupDB, err := gorm.Open(postgres.Open(baseDSN), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to connect to database for schema setup: %v", err)
	}
	setupDB.Exec(fmt.Sprintf("CREATE SCHEMA IF NOT EXISTS %s", schemaName))
	sqlSetup, _ := setupDB.DB()
	sqlSetup.Close()

	// Reconnect with search_path in the DSN so all pooled connections
	// use the test schema.
	testDSN := fmt.Sprintf("%s search_path=%s", baseDSN, schemaName)
	db, err := gorm.Open(postgres.Open(testDSN), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Silent),
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	err = db.AutoMigrate(
		&entity.CatalogueCategory{},
		&entity.CatalogueItem{},
		&entity.Item{},
		&entity.System{},
		&entity.Manufacturer{},
		&entity.Unit{},
		&entity.UsageStatus{},
	)
	if err != nil {
		t.Fatalf("Failed to migrate test tables: %v", err)
	}

	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		if sqlDB != nil {
			sqlDB.Close()
		}
		cleanDB, cleanErr := gorm.Open(postgres.Open(baseDSN), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		if cleanErr == nil {
			cleanDB.Exec(fmt.Sprintf("DROP SCHEMA IF EXISTS %s CASCADE", schemaName))
			sqlClean, _ := cleanDB.DB()
			if sqlClean != nil {
				sqlClean.Close()
			}
		}
	})

	return db
}

// SetupRouter creates a gin test router.
func SetupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(gin.Recovery())
	return r
}

// AuthGroup creates an API group with JWT auth middleware for testing.
func AuthGroup(r *gin.Engine, path string) *gin.RouterGroup {
	return r.Group(path, middleware.JWTAuth(JWTSecret))
}

// GenerateTestToken creates a valid JWT token for testing.
func GenerateTestToken(userID, name, email string) string {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   userID,
		"uid":   userID,
		"name":  name,
		"email": email,
		"iss":   "ims",
		"iat":   now.Unix(),
		"exp":   now.Add(24 * time.Hour).Unix(),
		"jti":   fmt.Sprintf("test-jti-%d", now.UnixNano()),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, _ := token.SignedString([]byte(JWTSecret))
	return tokenString
}

// DefaultTestToken returns a token for a default test user.
func DefaultTestToken() string {
	return GenerateTestToken("test-user-001", "Test User", "test@example.com")
}

// DoRequest executes an HTTP request against the test router.
func DoRequest(r *gin.Engine, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		jsonBytes, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(jsonBytes)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req, _ := http.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// ParseResponse parses the JSON response body into a map.
func ParseResponse(w *httptest.ResponseRecorder) map[string]interface{} {
	var result map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &result)
	return result
}

// SeedUnit creates a unit record.
func SeedUnit(t *testing.T, db *gorm.DB, value string) *entity.Unit {
	t.Helper()
	unit := &entity.Unit{
		ID:    entity.NewID(),
		Value: value,
		Code:  value,
	}
	if err := db.Create(unit).Error; err != nil {
		t.Fatalf("Failed to seed unit: %v", err)
	}
	return unit
}

// SeedUsageStatus creates a usage status record.
func SeedUsageStatus(t *testing.T, db *gorm.DB, value, code string) *entity.UsageStatus {
	t.Helper()
	status := &entity.UsageStatus{
		ID:    entity.NewID(),
		Value: value,
		Code:  code,
	}
	if err := db.Create(status).Error; err != nil {
		t.Fatalf("Failed to seed usage status: %v", err)
	}
	return status
}

// SeedManufacturer creates a manufacturer record.
func SeedManufacturer(t *testing.T, db *gorm.DB, name, code string) *entity.Manufacturer {
	t.Helper()
	manufacturer := &entity.Manufacturer{
		ID:   entity.NewID(),
		Name: name,
		Code: code,
		Address: entity.Address{
			AddressLine: "1 Example Street",
			Country:     "United Kingdom",
			Postcode:    "OX1 2AB",
		},
	}
	if err := db.Create(manufacturer).Error; err != nil {
		t.Fatalf("Failed to seed manufacturer: %v", err)
	}
	return manufacturer
}

// SeedCatalogueCategory creates a catalogue category record.
func SeedCatalogueCategory(t *testing.T, db *gorm.DB, name string, isLeaf bool, parentID *string, properties entity.PropertyDefinitionList) *entity.CatalogueCategory {
	t.Helper()
	if properties == nil {
		properties = entity.PropertyDefinitionList{}
	}
	category := &entity.CatalogueCategory{
		ID:         entity.NewID(),
		Name:       name,
		Code:       name,
		IsLeaf:     isLeaf,
		ParentID:   parentID,
		Properties: properties,
	}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("Failed to seed catalogue category: %v", err)
	}
	return category
}

// SeedSystem creates a system record.
func SeedSystem(t *testing.T, db *gorm.DB, name string, parentID *string) *entity.System {
	t.Helper()
	system := &entity.System{
		ID:         entity.NewID(),
		Name:       name,
		Code:       name,
		ParentID:   parentID,
		Importance: entity.ImportanceMedium,
	}
	if err := db.Create(system).Error; err != nil {
		t.Fatalf("Failed to seed system: %v", err)
	}
	return system
}
