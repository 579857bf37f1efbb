package config

const EnvPrefix = "RESTOCK"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvDBDSN  = "RESTOCK_DB_DSN"
	EnvDBHost = "RESTOCK_DB_HOST"
	EnvDBUser = "RESTOCK_DB_USER"
	EnvDBName = "RESTOCK_DB_NAME"
)

var requiredDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
