package main

import (
	"database/sql"
	"flag"
	"log"
	"os"

	"github.com/CaseLink/CL-Backend/internal/cases"
	"github.com/CaseLink/CL-Backend/internal/db"
	"github.com/CaseLink/CL-Backend/internal/identity"
	"github.com/CaseLink/CL-Backend/internal/seeds"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
)

var advisoryKey = flag.Int64("advisory-lock", 821553, "Postgres advisory lock key guarding the seed run. 0 = disabled")

// tryLock takes a session-level advisory lock so concurrent deploys can't
// double-seed. Returns the lock holder connection, which must stay open until
// the run finishes.
func tryLock(dsn string, key int64) (*sql.DB, error) {
	conn, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}

	var got bool
	if err := conn.QueryRow("SELECT pg_try_advisory_lock($1)", key).Scan(&got); err != nil {
		conn.Close()
		return nil, err
	}
	if !got {
		conn.Close()
		log.Fatal("Another seed run holds the advisory lock; aborting")
	}
	return conn, nil
}

func main() {
	flag.Parse()
	_ = godotenv.Load(".env.local")

	if *advisoryKey != 0 {
		dsn := os.Getenv("DATABASE_URL")
		if dsn == "" {
			log.Fatal("DATABASE_URL is empty")
		}
		lock, err := tryLock(dsn, *advisoryKey)
		if err != nil {
			log.Fatalf("Advisory lock error: %v", err)
		}
		defer lock.Close()
	}

	db.Connect()
	identity.Init()
	cases.Init()

	if err := seeds.SeedAll(); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Println("Seeding complete")
}
