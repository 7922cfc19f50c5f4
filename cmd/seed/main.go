package main

import (
	"database/sql"
	"encoding/json"
	"flag"
	"log"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/bootcamphub/bootcamp-api/config"
	"github.com/bootcamphub/bootcamp-api/internal/domain/entity"
	"github.com/bootcamphub/bootcamp-api/pkg/helpers"
)

// Seeds the database from JSON fixtures. Records may carry their own ids
// so fixtures can reference each other; missing ids are generated.
//
//	go run ./cmd/seed -i          import all data
//	go run ./cmd/seed -d          destroy all data
func main() {
	importData := flag.Bool("i", false, "import fixture data")
	deleteData := flag.Bool("d", false, "delete all data")
	dataDir := flag.String("dir", "_data", "fixture directory")
	flag.Parse()

	if *importData == *deleteData {
		log.Fatal("pass exactly one of -i or -d")
	}

	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	if *deleteData {
		for _, table := range []string{"reviews", "courses", "bootcamps", "users"} {
			if _, err := db.Exec(`DELETE FROM ` + table); err != nil {
				log.Fatalf("failed to clear %s: %v", table, err)
			}
		}
		log.Println("data destroyed")
		return
	}

	seedUsers(db, *dataDir)
	seedBootcamps(db, *dataDir)
	seedCourses(db, *dataDir)
	seedReviews(db, *dataDir)
	log.Println("data imported")
}

func load[T any](dir, name string) []T {
	b, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		log.Fatalf("failed to read %s: %v", name, err)
	}
	var out []T
	if err := json.Unmarshal(b, &out); err != nil {
		log.Fatalf("failed to parse %s: %v", name, err)
	}
	return out
}

type seedUser struct {
	entity.User
	Password string `json:"password"`
}

func seedUsers(db *sql.DB, dir string) {
	for _, u := range load[seedUser](dir, "users.json") {
		if u.ID == "" {
			u.ID = uuid.NewString()
		}
		hash, err := helpers.HashPassword(u.Password)
		if err != nil {
			log.Fatalf("failed to hash password: %v", err)
		}
		if _, err := db.Exec(`
			INSERT INTO users (id, name, email, role, password)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (email) DO NOTHING
		`, u.ID, u.Name, u.Email, u.Role, hash); err != nil {
			log.Fatalf("failed to seed user %s: %v", u.Email, err)
		}
	}
}

func seedBootcamps(db *sql.DB, dir string) {
	for _, b := range load[entity.Bootcamp](dir, "bootcamps.json") {
		if b.ID == "" {
			b.ID = uuid.NewString()
		}
		if _, err := db.Exec(`
			INSERT INTO bootcamps (id, user_id, name, slug, description, website, phone, email,
				address, latitude, longitude, careers, photo, housing, job_assistance,
				job_guarantee, accept_gi)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
			ON CONFLICT (id) DO NOTHING
		`, b.ID, b.UserID, b.Name, b.Slug, b.Description, b.Website, b.Phone, b.Email,
			b.Address, b.Latitude, b.Longitude, b.Careers, b.Photo, b.Housing,
			b.JobAssistance, b.JobGuarantee, b.AcceptGI); err != nil {
			log.Fatalf("failed to seed bootcamp %s: %v", b.Name, err)
		}
	}
}

func seedCourses(db *sql.DB, dir string) {
	for _, c := range load[entity.Course](dir, "courses.json") {
		if c.ID == "" {
			c.ID = uuid.NewString()
		}
		if _, err := db.Exec(`
			INSERT INTO courses (id, bootcamp_id, user_id, title, description, weeks, tuition,
				minimum_skill, scholarship_available)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			ON CONFLICT (id) DO NOTHING
		`, c.ID, c.BootcampID, c.UserID, c.Title, c.Description, c.Weeks, c.Tuition,
			c.MinimumSkill, c.ScholarshipAvailable); err != nil {
			log.Fatalf("failed to seed course %s: %v", c.Title, err)
		}
	}
}

func seedReviews(db *sql.DB, dir string) {
	for _, r := range load[entity.Review](dir, "reviews.json") {
		if r.ID == "" {
			r.ID = uuid.NewString()
		}
		if _, err := db.Exec(`
			INSERT INTO reviews (id, bootcamp_id, user_id, title, text, rating)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (id) DO NOTHING
		`, r.ID, r.BootcampID, r.UserID, r.Title, r.Text, r.Rating); err != nil {
			log.Fatalf("failed to seed review %s: %v", r.Title, err)
		}
	}
}
