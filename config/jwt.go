package config

import (
	"time"
)

// JWT holds the signing settings shared by token issuing and the auth middleware.
type JWT struct {
	Secret     []byte
	Expiration time.Duration
}

func (c *Config) JWT() JWT {
	return JWT{
		Secret:     []byte(c.JWTSecret),
		Expiration: c.JWTExpiration,
	}
}
