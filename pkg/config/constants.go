package config

// EnvPrefix is the envconfig prefix shared by every MIMS_* variable.
const EnvPrefix = "MIMS"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvDBDSN  = "MIMS_DB_DSN"
	EnvDBHost = "MIMS_DB_HOST"
	EnvDBUser = "MIMS_DB_USER"
	EnvDBName = "MIMS_DB_NAME"

	EnvUseSQLite = "MIMS_USE_SQLITE"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
