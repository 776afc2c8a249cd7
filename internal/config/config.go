package config

import (
	"fmt"

	"github.com/spf13/viper"

	"roktodan/internal/payment"
)

// Config is the process configuration, loaded from config.env in the
// working directory with environment-variable overrides.
type Config struct {
	Port               string `mapstructure:"PORT"`
	SupabaseURL        string `mapstructure:"SUPABASE_URL"`
	SupabaseAnonKey    string `mapstructure:"SUPABASE_ANON_KEY"`
	SupabaseServiceKey string `mapstructure:"SUPABASE_SERVICE_KEY"`
	SupabaseJWTSecret  string `mapstructure:"SUPABASE_JWT_SECRET"`
	MidtransServerKey  string `mapstructure:"MIDTRANS_SERVER_KEY"`
	MidtransProduction bool   `mapstructure:"MIDTRANS_PRODUCTION"`
	PaymentFlow        string `mapstructure:"PAYMENT_FLOW"`
}

// Load reads config.env and the environment.
func Load() (config Config, err error) {
	viper.AddConfigPath(".")
	viper.SetConfigName("config")
	viper.SetConfigType("env")
	viper.AutomaticEnv()

	viper.SetDefault("PORT", "8080")
	viper.SetDefault("PAYMENT_FLOW", payment.FlowRedirect)

	if err = viper.ReadInConfig(); err != nil {
		return
	}
	if err = viper.Unmarshal(&config); err != nil {
		return
	}
	err = config.validate()
	return
}

func (c Config) validate() error {
	if c.SupabaseURL == "" || c.SupabaseAnonKey == "" {
		return fmt.Errorf("SUPABASE_URL and SUPABASE_ANON_KEY are required")
	}
	switch c.PaymentFlow {
	case payment.FlowRedirect:
		if c.MidtransServerKey == "" {
			return fmt.Errorf("MIDTRANS_SERVER_KEY is required for the redirect payment flow")
		}
	case payment.FlowManual:
	default:
		return fmt.Errorf("unknown PAYMENT_FLOW %q", c.PaymentFlow)
	}
	return nil
}

// ServiceKey returns the key used by the shared table client, preferring
// the service key and falling back to the anon key (public reads only).
func (c Config) ServiceKey() string {
	if c.SupabaseServiceKey != "" {
		return c.SupabaseServiceKey
	}
	return c.SupabaseAnonKey
}
