package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/nomasarriendo/landing"
	"github.com/nomasarriendo/landing/cms"
	"github.com/nomasarriendo/landing/contact"
)

// Settings are read from config.yaml and the environment; the environment
// wins. Keys match the environment variable names in lower case.
func setDefaults(v *viper.Viper) {
	v.SetDefault("site_url", "http://localhost:3000")
	v.SetDefault("hostname", "")
	v.SetDefault("port", "3000")
	v.SetDefault("wp_api_base", cms.DefaultAPIBase)
	v.SetDefault("wp_menu_endpoint", cms.DefaultMenuEndpoint)
	v.SetDefault("wp_front_page_endpoint", "")
	v.SetDefault("wp_site_options_endpoint", "")
	v.SetDefault("content_revalidate", cms.DefaultRevalidate)
	v.SetDefault("cf7_endpoint", contact.DefaultCF7Endpoint)
	v.SetDefault("turnstile_site_key", contact.DefaultSiteKey)
	v.SetDefault("session_secret", "")
	v.SetDefault("cookie_secure", false)
	v.SetDefault("submit_limit", 5)
	v.SetDefault("submit_window", 10*time.Minute)
}

func initConfig(file string) error {
	return loadInto(viper.GetViper(), file)
}

func loadInto(v *viper.Viper, file string) error {
	setDefaults(v)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("read config: %w", err)
		}
	}
	return nil
}

func siteConfig(v *viper.Viper) landing.SiteConfig {
	return landing.SiteConfig{
		URL:  v.GetString("site_url"),
		Addr: landing.ListenAddr(v.GetString("hostname"), v.GetString("port")),
		Content: cms.Endpoints{
			APIBase:     v.GetString("wp_api_base"),
			Menus:       v.GetString("wp_menu_endpoint"),
			FrontPage:   v.GetString("wp_front_page_endpoint"),
			SiteOptions: v.GetString("wp_site_options_endpoint"),
		},
		Revalidate:       durationOrSeconds(v, "content_revalidate"),
		CF7Endpoint:      v.GetString("cf7_endpoint"),
		TurnstileSiteKey: v.GetString("turnstile_site_key"),
		SessionSecret:    v.GetString("session_secret"),
		CookieSecure:     v.GetBool("cookie_secure"),
		SubmitLimit:      v.GetInt("submit_limit"),
		SubmitWindow:     durationOrSeconds(v, "submit_window"),
	}
}

// durationOrSeconds reads key as a duration ("90s", "10m"). A bare integer
// counts as seconds.
func durationOrSeconds(v *viper.Viper, key string) time.Duration {
	if n, err := strconv.ParseInt(strings.TrimSpace(v.GetString(key)), 10, 64); err == nil {
		return time.Duration(n) * time.Second
	}
	return v.GetDuration(key)
}
