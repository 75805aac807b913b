package domain

import "time"

// GlobalStat is one transformed week of nation-wide statistics.
// Natural key: (start_date, end_date), end_date = start_date + 6 days.
type GlobalStat struct {
	StartDate time.Time `db:"start_date" json:"start_date"`
	EndDate   time.Time `db:"end_date" json:"end_date"`

	WeeklyInfected        *int64 `db:"weekly_infected" json:"weekly_infected"`
	WeeklyDeaths          *int64 `db:"weekly_deaths" json:"weekly_deaths"`
	WeeklyRecovered       *int64 `db:"weekly_recovered" json:"weekly_recovered"`
	WeeklyFirstComponent  *int64 `db:"weekly_first_component" json:"weekly_first_component"`
	WeeklySecondComponent *int64 `db:"weekly_second_component" json:"weekly_second_component"`
	WeeklyVaccinations    *int64 `db:"weekly_vaccinations" json:"weekly_vaccinations"`

	Infected        *int64 `db:"infected" json:"infected"`
	Deaths          *int64 `db:"deaths" json:"deaths"`
	Recovered       *int64 `db:"recovered" json:"recovered"`
	FirstComponent  *int64 `db:"first_component" json:"first_component"`
	SecondComponent *int64 `db:"second_component" json:"second_component"`

	WeeklyInfectedPer100000  *float64 `db:"weekly_infected_per_100000" json:"weekly_infected_per_100000"`
	WeeklyDeathsPer100000    *float64 `db:"weekly_deaths_per_100000" json:"weekly_deaths_per_100000"`
	WeeklyRecoveredPer100000 *float64 `db:"weekly_recovered_per_100000" json:"weekly_recovered_per_100000"`
	InfectedPer100000        *float64 `db:"infected_per_100000" json:"infected_per_100000"`
	DeathsPer100000          *float64 `db:"deaths_per_100000" json:"deaths_per_100000"`
	RecoveredPer100000       *float64 `db:"recovered_per_100000" json:"recovered_per_100000"`

	WeeklyRecoveredInfectedRatio    *float64 `db:"weekly_recovered_infected_ratio" json:"weekly_recovered_infected_ratio"`
	WeeklyDeathsInfectedRatio       *float64 `db:"weekly_deaths_infected_ratio" json:"weekly_deaths_infected_ratio"`
	WeeklyVaccinationsInfectedRatio *float64 `db:"weekly_vaccinations_infected_ratio" json:"weekly_vaccinations_infected_ratio"`
	VaccinationsPopulationRatio     *float64 `db:"vaccinations_population_ratio" json:"vaccinations_population_ratio"`
}

// RegionStat is one transformed week for a single canonical region.
// Natural key: (start_date, end_date, region). Vaccination counters are not
// published per region, so the record carries no vaccination fields.
type RegionStat struct {
	Region    string    `db:"region" json:"region"`
	StartDate time.Time `db:"start_date" json:"start_date"`
	EndDate   time.Time `db:"end_date" json:"end_date"`

	WeeklyInfected  *int64 `db:"weekly_infected" json:"weekly_infected"`
	WeeklyDeaths    *int64 `db:"weekly_deaths" json:"weekly_deaths"`
	WeeklyRecovered *int64 `db:"weekly_recovered" json:"weekly_recovered"`

	Infected  *int64 `db:"infected" json:"infected"`
	Deaths    *int64 `db:"deaths" json:"deaths"`
	Recovered *int64 `db:"recovered" json:"recovered"`

	WeeklyInfectedPer100000  *float64 `db:"weekly_infected_per_100000" json:"weekly_infected_per_100000"`
	WeeklyDeathsPer100000    *float64 `db:"weekly_deaths_per_100000" json:"weekly_deaths_per_100000"`
	WeeklyRecoveredPer100000 *float64 `db:"weekly_recovered_per_100000" json:"weekly_recovered_per_100000"`
	InfectedPer100000        *float64 `db:"infected_per_100000" json:"infected_per_100000"`
	DeathsPer100000          *float64 `db:"deaths_per_100000" json:"deaths_per_100000"`
	RecoveredPer100000       *float64 `db:"recovered_per_100000" json:"recovered_per_100000"`

	WeeklyRecoveredInfectedRatio *float64 `db:"weekly_recovered_infected_ratio" json:"weekly_recovered_infected_ratio"`
	WeeklyDeathsInfectedRatio    *float64 `db:"weekly_deaths_infected_ratio" json:"weekly_deaths_infected_ratio"`
}

// Baseline holds the highest stored cumulative totals, used to extend
// cumulative sums without recomputing the whole history.
type Baseline struct {
	Infected        int64 `db:"infected" json:"infected"`
	Recovered       int64 `db:"recovered" json:"recovered"`
	Deaths          int64 `db:"deaths" json:"deaths"`
	FirstComponent  int64 `db:"first_component" json:"first_component"`
	SecondComponent int64 `db:"second_component" json:"second_component"`
}

// RegionBaselines maps a canonical region name to its stored baseline.
type RegionBaselines map[string]Baseline

type ErrorResponse struct {
	Message string `json:"message"`
	Code    int    `json:"code"`
}
