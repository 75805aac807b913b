package domain

import "time"

// RussianFederation is the bulletin's row for the country as a whole. Rows
// with this region feed the global pipeline, all others feed the regional one.
const RussianFederation = "Российская Федерация"

// BulletinRecord is one parsed row of the weekly stopcorona bulletin.
type BulletinRecord struct {
	StartDate    time.Time `db:"start_date"`
	EndDate      time.Time `db:"end_date"`
	Region       string    `db:"region"`
	Hospitalized int64     `db:"hospitalized"`
	Infected     int64     `db:"infected"`
	Recovered    int64     `db:"recovered"`
	Deaths       int64     `db:"deaths"`
}

// ComponentRecord is one day of the gogov vaccination counter page: running
// cumulative totals of first and second vaccine components as of Date.
type ComponentRecord struct {
	Date            time.Time `db:"date"`
	FirstComponent  int64     `db:"first_component"`
	SecondComponent int64     `db:"second_component"`
}

// ExternalDailyStat is one row of the read-only statistics mirror,
// optionally region-scoped (Region is empty for pre-aggregated feeds).
type ExternalDailyStat struct {
	Date            time.Time `db:"date"`
	Region          string    `db:"region"`
	DeathPerDay     int64     `db:"death_per_day"`
	InfectionPerDay int64     `db:"infection_per_day"`
	RecoveryPerDay  int64     `db:"recovery_per_day"`
}

// ExternalVaccination is one row of the vaccination mirror.
type ExternalVaccination struct {
	Date                  time.Time `db:"date"`
	DailyVaccinations     int64     `db:"daily_vaccinations"`
	DailyPeopleVaccinated int64     `db:"daily_people_vaccinated"`
}

// CsvRecord is one row of the historical CSV archive. Cases and Deaths are
// nullable: early archive rows miss one or the other.
type CsvRecord struct {
	Date   time.Time `db:"date"`
	Cases  *int64    `db:"cases"`
	Deaths *int64    `db:"deaths"`
}

// PopulationRecord is a population figure for a region and year.
// Region is empty for the national total.
type PopulationRecord struct {
	Year       int    `db:"year"`
	Region     string `db:"region"`
	Population int64  `db:"population"`
}
