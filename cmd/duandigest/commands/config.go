package commands

import (
	"fmt"
	"time"

	"duandigest/lib/configutil"
	"duandigest/lib/export"
	"duandigest/lib/mailer"
	"duandigest/lib/restyutil"
	"duandigest/lib/scrapers/jandan"
	"duandigest/lib/timezone"
	"duandigest/services/digest"
)

type SourceConfig struct {
	BaseUrl          string `json:"base_url"`
	UserAgent        string `json:"user_agent"`
	TimeoutSeconds   int    `json:"timeout_seconds"`
	PageCount        int    `json:"page_count"`
	Strict           bool   `json:"strict"`
	CloudflareBypass bool   `json:"cloudflare_bypass"`
	DumpHttpDir      string `json:"dump_http_dir"`
}

type ExportConfig struct {
	Directory string `json:"directory"`
	Basename  string `json:"basename"`
	Format    string `json:"format"`
}

type MailConfig struct {
	Server          string   `json:"server"`
	Port            int      `json:"port"`
	ImplicitTls     bool     `json:"implicit_tls"`
	Recipients      []string `json:"recipients"`
	FromName        string   `json:"from_name"`
	SubjectPrefix   string   `json:"subject_prefix"`
	Tip             string   `json:"tip"`
	CredentialsFile string   `json:"credentials_file"`
}

type ScheduleConfig struct {
	Cron     string `json:"cron"`
	Timezone string `json:"timezone"`
}

type Config struct {
	Source   SourceConfig   `json:"source"`
	Export   ExportConfig   `json:"export"`
	Mail     MailConfig     `json:"mail"`
	Schedule ScheduleConfig `json:"schedule"`
}

const defaultPageCount = 10

func defaultConfig() Config {
	return Config{
		Source: SourceConfig{
			BaseUrl:        jandan.DefaultBasePath,
			TimeoutSeconds: 30,
			PageCount:      defaultPageCount,
		},
		Export: ExportConfig{
			Directory: ".",
			Basename:  export.DefaultBasename,
			Format:    export.FormatText.String(),
		},
		Mail: MailConfig{
			SubjectPrefix:   digest.DefaultSubjectPrefix,
			Tip:             digest.DefaultTip,
			CredentialsFile: ".env",
		},
		Schedule: ScheduleConfig{
			Cron:     "0 8 * * *",
			Timezone: timezone.Name,
		},
	}
}

func loadConfig(path string) (Config, error) {
	cfg, err := configutil.ReadConfigWithDefaults(path, defaultConfig())
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	if cfg.Source.PageCount <= 0 {
		return Config{}, fmt.Errorf("source.page_count must be positive, got %d", cfg.Source.PageCount)
	}
	return cfg, nil
}

func (c Config) location() (*time.Location, error) {
	return timezone.Load(c.Schedule.Timezone)
}

func (c Config) newClient() (*jandan.Client, error) {
	var dump restyutil.InstrumentOutput
	if c.Source.DumpHttpDir != "" {
		out, err := restyutil.NewFilesystemOutput(c.Source.DumpHttpDir)
		if err != nil {
			return nil, err
		}
		dump = out
	}
	return jandan.NewClient(jandan.ClientOptions{
		UserAgent:        c.Source.UserAgent,
		Timeout:          time.Duration(c.Source.TimeoutSeconds) * time.Second,
		CloudflareBypass: c.Source.CloudflareBypass,
		DumpOutput:       dump,
	})
}

func (c Config) newCrawler() (jandan.Crawler, error) {
	client, err := c.newClient()
	if err != nil {
		return jandan.Crawler{}, err
	}
	return jandan.Crawler{
		Fetcher:  client,
		BasePath: c.Source.BaseUrl,
		Strict:   c.Source.Strict,
	}, nil
}

func (c Config) newService() (digest.Service, error) {
	crawler, err := c.newCrawler()
	if err != nil {
		return digest.Service{}, err
	}
	loc, err := c.location()
	if err != nil {
		return digest.Service{}, err
	}

	writer := export.Writer{
		Directory: c.Export.Directory,
		Basename:  c.Export.Basename,
		Title:     export.DefaultTitle,
	}
	sender := mailer.NewMailer(mailer.Options{
		Server:      c.Mail.Server,
		Port:        c.Mail.Port,
		ImplicitTLS: c.Mail.ImplicitTls,
		Recipients:  c.Mail.Recipients,
		FromName:    c.Mail.FromName,
		Credentials: mailer.EnvFileCredentials(c.Mail.CredentialsFile),
	})

	return digest.NewService(crawler, writer, sender, digest.Options{
		SubjectPrefix: c.Mail.SubjectPrefix,
		Tip:           c.Mail.Tip,
		Now: func() time.Time {
			return time.Now().In(loc)
		},
	}), nil
}
