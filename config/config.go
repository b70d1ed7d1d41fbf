package config

import (
	"errors"
	"flag"
	"net"
	"os"
	"regexp"
	"strconv"
	"time"

	"github.com/mbolis/quick-form/tenant"
)

type Config struct {
	Addr        string
	DBUrl       string
	TokenSecret string
	TokenTTL    time.Duration
	Debug       bool

	// FallbackTenant receives writes no other resolution step could place.
	FallbackTenant string
	NotifyTimeout  time.Duration
	SMTP           SMTP
	// Bootstrap is "tenant:username:password"; the user is created at startup.
	Bootstrap string
	// NotifyTo is added as a recipient of the bootstrap tenant.
	NotifyTo string
}

type SMTP struct {
	From    string       `yaml:"from"`
	Servers []SMTPServer `yaml:"servers"`
}

type SMTPServer struct {
	Host               string `yaml:"host"`
	Port               int    `yaml:"port"`
	Username           string `yaml:"username"`
	Password           string `yaml:"password"`
	Connections        int    `yaml:"connections"`
	SendTimeout        int    `yaml:"sendTimeout"`
	InsecureSkipVerify bool   `yaml:"insecureSkipVerify"`
}

func ParseFlags() (Config, error) {
	return Parse(os.Args[1:])
}

func Parse(args []string) (cfg Config, err error) {
	fs := flag.NewFlagSet("quick-form", flag.ContinueOnError)
	var host string
	fs.StringVar(&host, "host", "0.0.0.0", "listen host name (default 0.0.0.0)")
	var port uint
	fs.UintVar(&port, "port", 80, "listen port number (default 80)")
	fs.StringVar(&cfg.DBUrl, "db-url", "qform.sqlite", "path to SQLite3 DB file (default qform.sqlite)")
	fs.StringVar(&cfg.TokenSecret, "token-secret", "", "secret key for token encryption and decryption")
	var ttl uint
	fs.UintVar(&ttl, "token-ttl", 120, "token TTL in seconds (default 120)")
	fs.BoolVar(&cfg.Debug, "debug", false, "log at DEBUG level")
	fs.StringVar(&cfg.FallbackTenant, "fallback-tenant", tenant.DefaultFallback, "tenant id used when no other tenant resolves")
	var notify uint
	fs.UintVar(&notify, "notify-timeout", 10, "notification timeout in seconds (default 10)")
	fs.StringVar(&cfg.Bootstrap, "bootstrap", "", "create tenant:username:password at startup")
	fs.StringVar(&cfg.NotifyTo, "notify-to", "", "email notified of responses to the bootstrap tenant")
	var file string
	fs.StringVar(&file, "config", "", "path to a YAML config file")
	err = fs.Parse(args)
	if err != nil {
		return
	}

	if file != "" {
		var fc fileConfig
		fc, err = loadFile(file)
		if err != nil {
			return
		}
		set := map[string]bool{}
		fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

		cfg.SMTP = fc.SMTP
		if fc.Host != "" && !set["host"] {
			host = fc.Host
		}
		if fc.Port != 0 && !set["port"] {
			port = fc.Port
		}
		if fc.DBUrl != "" && !set["db-url"] {
			cfg.DBUrl = fc.DBUrl
		}
		if fc.TokenSecret != "" && !set["token-secret"] {
			cfg.TokenSecret = fc.TokenSecret
		}
		if fc.TokenTTL != 0 && !set["token-ttl"] {
			ttl = fc.TokenTTL
		}
		if fc.FallbackTenant != nil && !set["fallback-tenant"] {
			cfg.FallbackTenant = *fc.FallbackTenant
		}
		if fc.NotifyTimeout != 0 && !set["notify-timeout"] {
			notify = fc.NotifyTimeout
		}
	}

	cfg.Addr = net.JoinHostPort(host, strconv.Itoa(int(port)))
	cfg.TokenTTL = time.Duration(ttl) * time.Second
	cfg.NotifyTimeout = time.Duration(notify) * time.Second

	if cfg.TokenSecret == "" {
		err = errors.New("missing parameter -token-secret")
	}

	return
}

func (cfg Config) Url() (url string) {
	url = cfg.Addr
	url = regexp.MustCompile(`^0.0.0.0`).ReplaceAllString(url, "localhost")
	url = "http://" + url
	return
}
