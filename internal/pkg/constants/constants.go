package constants

const (
	CookieKeySecretToken = "secret_token"
	CtxKeyRequestID      = "request_id"
)

// viper keys, see config.example.yaml
const (
	ViperSecretKey          = "secret"
	ViperListenAddr         = "listen_addr"
	ViperPostgresDSN        = "postgres_dsn"
	ViperExternalDSN        = "external_postgres_dsn"
	ViperStopCoronaURLBase  = "stopcorona_url_base"
	ViperStopCoronaArticles = "stopcorona_url_articles_page"
	ViperStopCoronaMaxPage  = "stopcorona_max_page"
	ViperGogovURL           = "gogov_url"
	ViperCsvPath            = "csv_path"
	ViperPopulationPath     = "population_path"
)

// KeyDateFormat is the human-readable date layout used in mapper log events.
const KeyDateFormat = "02-01-2006"
