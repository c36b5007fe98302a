// Package config declares the runtime configuration of the service. Values
// are parsed from the environment by ardanlabs/conf in cmd/server.
package config

import "time"

type Config struct {
	Web     Web
	DB      DB
	Redis   Redis
	Session Session
	Paypal  Paypal
	Stripe  Stripe
	Cors    Cors
	Rate    Rate
}

type Web struct {
	Address         string        `conf:"default:0.0.0.0:8000"`
	ReadTimeout     time.Duration `conf:"default:5s"`
	WriteTimeout    time.Duration `conf:"default:10s"`
	IdleTimeout     time.Duration `conf:"default:120s"`
	ShutdownTimeout time.Duration `conf:"default:20s"`
}

type DB struct {
	User       string `conf:"default:postgres"`
	Password   string `conf:"default:postgres,mask"`
	Host       string `conf:"default:localhost"`
	Name       string `conf:"default:hotel"`
	DisableTLS bool   `conf:"default:true"`
}

type Redis struct {
	Enabled  bool          `conf:"default:false"`
	Addr     string        `conf:"default:localhost:6379"`
	Password string        `conf:"mask"`
	TTL      time.Duration `conf:"default:5m"`
}

type Session struct {
	Lifetime time.Duration `conf:"default:24h"`
}

type Paypal struct {
	ClientID string `conf:"mask"`
	Secret   string `conf:"mask"`
	URL      string `conf:"default:https://api.sandbox.paypal.com"`
}

type Stripe struct {
	APISecret     string `conf:"mask"`
	WebhookSecret string `conf:"mask"`
	SuccessURL    string `conf:"default:http://localhost:3000/success"`
	CancelURL     string `conf:"default:http://localhost:3000/canceled"`
}

type Cors struct {
	Origin string
}

type Rate struct {
	Burst    int           `conf:"default:20"`
	Expiry   time.Duration `conf:"default:10m"`
	Interval time.Duration `conf:"default:50ms"`
}
