package buildCFG

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/wb-go/wbf/config"
)

type ServerConfig struct {
	Port string
}

type StorageConfig struct {
	Driver string // "sqlite" or "postgres"
	Path   string // sqlite file
	DSN    string // postgres master DSN
}

type RabbitConfig struct {
	Url      string
	Exchange string
	Queue    string
}

type SMTPConfig struct {
	Addr     string
	From     string
	Password string
}

type AdminConfig struct {
	PasswordHash string
	ContactInbox string
}

type PaymentConfig struct {
	AmountCents int64
	Recipient   string
	Account     string
}

type WorkflowConfig struct {
	DraftTTL time.Duration
}

func BuildServerConfig(cfg *config.Config, log *zerolog.Logger) ServerConfig {
	port := cfg.GetString("server.port")
	if port == "" {
		port = "8080"
	}
	log.Info().Str("port", port).Msg("server config loaded")
	return ServerConfig{Port: port}
}

func BuildStorageConfig(cfg *config.Config, log *zerolog.Logger) (StorageConfig, error) {
	sc := StorageConfig{
		Driver: cfg.GetString("storage.driver"),
		Path:   cfg.GetString("storage.path"),
		DSN:    cfg.GetString("storage.dsn"),
	}
	switch sc.Driver {
	case "":
		sc.Driver = "sqlite"
	case "sqlite", "postgres":
	default:
		return StorageConfig{}, fmt.Errorf("unknown storage driver %q", sc.Driver)
	}
	if sc.Driver == "sqlite" && sc.Path == "" {
		sc.Path = "campushub.db"
	}
	if sc.Driver == "postgres" && sc.DSN == "" {
		return StorageConfig{}, fmt.Errorf("storage.dsn is required for the postgres driver")
	}
	log.Info().Str("driver", sc.Driver).Msg("storage config loaded")
	return sc, nil
}

func BuildRabbitConfig(cfg *config.Config, log *zerolog.Logger) RabbitConfig {
	rc := RabbitConfig{
		Url:      cfg.GetString("rabbit.url"),
		Exchange: cfg.GetString("rabbit.exchange"),
		Queue:    cfg.GetString("rabbit.queue"),
	}
	if rc.Url == "" {
		log.Info().Msg("rabbit.url not set, notifications disabled")
		return rc
	}
	if rc.Exchange == "" {
		rc.Exchange = "campushub.notifications"
	}
	if rc.Queue == "" {
		rc.Queue = "campushub.notifications"
	}
	return rc
}

func BuildSMTPConfig(cfg *config.Config) SMTPConfig {
	return SMTPConfig{
		Addr:     cfg.GetString("smtp.addr"),
		From:     cfg.GetString("smtp.from"),
		Password: cfg.GetString("smtp.password"),
	}
}

func BuildAdminConfig(cfg *config.Config) (AdminConfig, error) {
	ac := AdminConfig{
		PasswordHash: cfg.GetString("admin.password_hash"),
		ContactInbox: cfg.GetString("admin.contact_inbox"),
	}
	if ac.PasswordHash == "" {
		return AdminConfig{}, fmt.Errorf("admin.password_hash is required")
	}
	if ac.ContactInbox == "" {
		ac.ContactInbox = "contact@campushub.com"
	}
	return ac, nil
}

func BuildPaymentConfig(cfg *config.Config) PaymentConfig {
	pc := PaymentConfig{
		AmountCents: int64(cfg.GetInt("payment.amount_cents")),
		Recipient:   cfg.GetString("payment.recipient"),
		Account:     cfg.GetString("payment.account"),
	}
	if pc.AmountCents <= 0 {
		pc.AmountCents = 1000 // $10.00 registration fee
	}
	if pc.Recipient == "" {
		pc.Recipient = "CampusHub"
	}
	if pc.Account == "" {
		pc.Account = "1234567890"
	}
	return pc
}

func BuildWorkflowConfig(cfg *config.Config) WorkflowConfig {
	ttl := cfg.GetDuration("workflow.draft_ttl")
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return WorkflowConfig{DraftTTL: ttl}
}
