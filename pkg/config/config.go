package config

// AWSConfig agrupa credenciais e região usadas pelos dois stores.
// Quando Endpoint é informado (LocalStack/DynamoDB Local), os clientes
// apontam para ele em vez dos endpoints públicos da AWS.
type AWSConfig struct {
	Region          string `env:"AWS_REGION" envDefault:"us-east-1"`
	AccessKeyID     string `env:"AWS_ACCESS_KEY_ID"`
	SecretAccessKey string `env:"AWS_SECRET_ACCESS_KEY"`
	Endpoint        string `env:"AWS_ENDPOINT_URL"`
}

// AppConfig é a configuração completa do processo, resolvida uma única
// vez no boot a partir de variáveis de ambiente.
type AppConfig struct {
	Port       int    `env:"PORT" envDefault:"3000"`
	UsersTable string `env:"USERS_TABLE" envDefault:"usuarios"`
	StatsdAddr string `env:"STATSD_ADDR"`
	LogLevel   string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat  string `env:"LOG_FORMAT"`
	AWS        AWSConfig
}

// Load resolve a configuração do ambiente. Campos sem variável definida
// ficam com o envDefault (ou zero value, quando não há default).
func Load() (*AppConfig, error) {
	cfg := &AppConfig{}
	if err := loadEnv(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
