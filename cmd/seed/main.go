// Command seed inserts a demo user and a handful of flights for local
// development. It refuses to write without --confirm.
package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

var (
	dsn      = flag.String("dsn", "", "Postgres DSN (default: env DATABASE_URL)")
	dryRun   = flag.Bool("dry-run", false, "Print the plan; no DB writes")
	confirm  = flag.Bool("confirm", false, "Required to perform writes")
	username = flag.String("username", "demo", "Demo account username")
	password = flag.String("password", "demo1234", "Demo account password")
)

type flightRow struct {
	FlightNumber     string
	Destination      string
	Hours            string
	Minutes          string
	Gate             string
	Status           string
	Airline          string
	DepartureAirport string
	ArrivalAirport   string
	DepartureTime    string
}

var demoFlights = []flightRow{
	{"CX880", "Los Angeles", "12", "45", "23", "On Time", "Cathay Pacific", "HKG", "LAX", "2025-11-02 23:55"},
	{"BA31", "London", "13", "05", "N/A", "Delayed", "British Airways", "HKG", "LHR", "2025-11-03 11:20"},
	{"UO625", "Tokyo", "3", "50", "510", "On Time", "HK Express", "HKG", "NRT", "2025-11-05 08:10"},
	{"SQ861", "Singapore", "3", "55", "2", "Boarding", "Singapore Airlines", "HKG", "SIN", "2025-11-07 16:40"},
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}

func main() {
	_ = godotenv.Load(".env.local")
	flag.Parse()

	if *dsn == "" {
		*dsn = os.Getenv("DATABASE_URL")
	}
	if *dsn == "" {
		fatalf("--dsn not provided and DATABASE_URL not set")
	}

	if *dryRun {
		fmt.Printf("Would create user %q with %d flights:\n", *username, len(demoFlights))
		for _, f := range demoFlights {
			fmt.Printf("  %s -> %s (%s)\n", f.FlightNumber, f.Destination, f.Status)
		}
		fmt.Println("Dry run complete. No changes made.")
		return
	}
	if !*confirm {
		fatalf("Refusing to run without --confirm. Add --dry-run to preview.")
	}

	dbh, err := sql.Open("pgx", *dsn)
	if err != nil {
		fatalf("open: %v", err)
	}
	defer dbh.Close()

	ctx := context.Background()
	if err := seed(ctx, dbh); err != nil {
		fatalf("seeding failed: %v", err)
	}
	fmt.Printf("Seeded user %q with %d flights\n", *username, len(demoFlights))
}

func seed(ctx context.Context, dbh *sql.DB) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	userID := "u" + strconv.FormatInt(time.Now().UnixMilli(), 10)
	res, err := dbh.ExecContext(ctx,
		`INSERT INTO users (user_id, username, hashed_password, name)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (username) DO NOTHING`,
		userID, *username, string(hashed), "Demo User")
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		// User already exists; reuse its id for the flights.
		if err := dbh.QueryRowContext(ctx,
			`SELECT user_id FROM users WHERE username = $1`, *username).Scan(&userID); err != nil {
			return err
		}
	}

	for i, f := range demoFlights {
		_, err := dbh.ExecContext(ctx,
			`INSERT INTO flights
			   (id, user_id, flight_number, destination, hours, minutes, gate, status,
			    airline, departure_airport, arrival_airport, departure_time, created_at, photo)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, '')
			 ON CONFLICT (id) DO NOTHING`,
			uuid.NewString(), userID, f.FlightNumber, f.Destination, f.Hours, f.Minutes,
			f.Gate, f.Status, f.Airline, f.DepartureAirport, f.ArrivalAirport,
			f.DepartureTime, time.Now().Add(time.Duration(-i)*time.Minute))
		if err != nil {
			return err
		}
	}
	return nil
}
