package config

import "time"

const defaultPort = 8080

var defaultAPI = API{
	BaseURL: "http://localhost:3333",
	Timeout: 10 * time.Second,
}

var defaultGateway = Gateway{
	MaxAttempts: 3,
	BaseDelay:   150 * time.Millisecond,
	MaxDelay:    time.Second,
}

var defaultDB = DB{
	Host: "127.0.0.1",
	Port: "5432",
	User: "painel",
	Pass: "painel",
	Name: "painel",
}

var defaultKafka = Kafka{
	Topic:   "pedidos.status",
	GroupID: "painel-worker",
}

var defaultRateLimit = RateLimit{
	Enabled:    true,
	Rate:       1,
	Burst:      5,
	TTL:        10 * time.Minute,
	MaxBuckets: 10000,
}

var defaultSession = Session{
	TTL:             12 * time.Hour,
	CleanupInterval: 10 * time.Minute,
}

var defaultBulk = Bulk{
	Concurrency:      4,
	CancelStampsDate: true,
}

const (
	defaultSelectionScope = ScopeGlobal
	defaultTimeZone       = "America/Sao_Paulo"
)

// DefaultPort returns the default HTTP port.
func DefaultPort() int { return defaultPort }

// DefaultAPI returns the default external API settings.
func DefaultAPI() API { return defaultAPI }

// DefaultGateway returns the default retry settings for gateway reads.
func DefaultGateway() Gateway { return defaultGateway }

// DefaultDB returns the default database settings.
func DefaultDB() DB { return defaultDB }

// DefaultKafka returns the default Kafka settings (no brokers, publishing disabled).
func DefaultKafka() Kafka { return defaultKafka }

// DefaultBulk returns the default bulk action settings.
func DefaultBulk() Bulk { return defaultBulk }
