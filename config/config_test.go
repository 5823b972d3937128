package config_test

import (
	"os"
	"path/filepath"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/angeloszaimis/ping-keeper/config"
)

var _ = Describe("Config", func() {
	var (
		tempDir     string
		originalDir string
	)

	BeforeEach(func() {
		var err error
		originalDir, err = os.Getwd()
		Expect(err).NotTo(HaveOccurred())

		tempDir, err = os.MkdirTemp("", "config-test-*")
		Expect(err).NotTo(HaveOccurred())

		Expect(os.Chdir(tempDir)).To(Succeed())
	})

	AfterEach(func() {
		Expect(os.Chdir(originalDir)).To(Succeed())
		os.RemoveAll(tempDir)
		os.Unsetenv("TARGET_URL")
		os.Unsetenv("SCHEDULE_INTERVAL_MINUTES")
		os.Unsetenv("SCHEDULE_MODE")
	})

	writeConfig := func(content string) {
		err := os.WriteFile(filepath.Join(tempDir, "config.yaml"), []byte(content), 0644)
		Expect(err).NotTo(HaveOccurred())
	}

	Describe("Load", func() {
		Context("with valid config file", func() {
			BeforeEach(func() {
				writeConfig(`
target:
  url: "https://example.com/health"
  timeout: "10s"
  http2: true

schedule:
  interval_minutes: 15
  interval_minutes_on_traffic: 20
  mode: "adaptive"

server:
  address: ":9090"
  environment: "prod"

logging:
  level: "debug"

metrics:
  buffer_size: 50
`)
			})

			It("should load configuration successfully", func() {
				cfg, err := config.Load()
				Expect(err).NotTo(HaveOccurred())
				Expect(cfg).NotTo(BeNil())
			})

			It("should parse the target", func() {
				cfg, _ := config.Load()
				Expect(cfg.Target.URL).To(Equal("https://example.com/health"))
				Expect(cfg.Target.HTTP2).To(BeTrue())
				Expect(cfg.Timeout()).To(Equal(10 * time.Second))
			})

			It("should parse the schedule", func() {
				cfg, _ := config.Load()
				Expect(cfg.Schedule.IntervalMinutes).To(Equal(15))
				Expect(cfg.Schedule.IntervalMinutesOnTraffic).To(Equal(20))
				Expect(cfg.Schedule.Mode).To(Equal(config.ModeAdaptive))
			})

			It("should let the environment override the file", func() {
				os.Setenv("SCHEDULE_MODE", "fixed")
				cfg, err := config.Load()
				Expect(err).NotTo(HaveOccurred())
				Expect(cfg.Schedule.Mode).To(Equal(config.ModeFixed))
			})
		})

		Context("with environment variables", func() {
			It("should use defaults when config file missing", func() {
				os.Setenv("TARGET_URL", "http://localhost:3000")

				cfg, err := config.Load()
				Expect(err).NotTo(HaveOccurred())
				Expect(cfg.Target.URL).To(Equal("http://localhost:3000"))
				Expect(cfg.Timeout()).To(Equal(30 * time.Second))
				Expect(cfg.Schedule.IntervalMinutes).To(Equal(5))
				Expect(cfg.Schedule.IntervalMinutesOnTraffic).To(Equal(10))
				Expect(cfg.Schedule.Mode).To(Equal(config.ModeAdaptive))
				Expect(cfg.Server.Address).To(Equal(":8080"))
				Expect(cfg.Metrics.BufferSize).To(Equal(100))
			})

			It("should read the interval from the environment", func() {
				os.Setenv("TARGET_URL", "http://localhost:3000")
				os.Setenv("SCHEDULE_INTERVAL_MINUTES", "7")

				cfg, err := config.Load()
				Expect(err).NotTo(HaveOccurred())
				Expect(cfg.Schedule.IntervalMinutes).To(Equal(7))
			})

			It("should fail without a target URL", func() {
				cfg, err := config.Load()
				Expect(err).To(HaveOccurred())
				Expect(cfg).To(BeNil())
			})
		})

		Context("with an interval below five minutes", func() {
			It("should reject the configuration", func() {
				writeConfig(`
target:
  url: "http://localhost:3000"
schedule:
  interval_minutes: 4
`)
				cfg, err := config.Load()
				Expect(err).To(HaveOccurred())
				Expect(cfg).To(BeNil())
			})
		})
	})

	Describe("Validate", func() {
		var cfg config.Config

		BeforeEach(func() {
			cfg = config.Config{
				Target:   config.TargetConfig{URL: "http://localhost:3000", Timeout: "30s"},
				Schedule: config.ScheduleConfig{IntervalMinutes: 5, IntervalMinutesOnTraffic: 10, Mode: config.ModeAdaptive},
				Server:   config.ServerConfig{Address: ":8080", Environment: config.EnvDev},
				Logging:  config.LoggingConfig{Level: config.LogLevelInfo},
				Metrics:  config.MetricsConfig{BufferSize: 100},
			}
		})

		It("should accept a complete configuration", func() {
			Expect(cfg.Validate()).To(Succeed())
		})

		It("should accept an unset ceiling", func() {
			cfg.Schedule.IntervalMinutesOnTraffic = 0
			Expect(cfg.Validate()).To(Succeed())
		})

		DescribeTable("rejects invalid values",
			func(mutate func(*config.Config)) {
				mutate(&cfg)
				Expect(cfg.Validate()).NotTo(Succeed())
			},
			Entry("non http scheme", func(c *config.Config) { c.Target.URL = "ftp://localhost" }),
			Entry("missing host", func(c *config.Config) { c.Target.URL = "http://" }),
			Entry("bad timeout", func(c *config.Config) { c.Target.Timeout = "soon" }),
			Entry("negative timeout", func(c *config.Config) { c.Target.Timeout = "-1s" }),
			Entry("ceiling below floor", func(c *config.Config) { c.Schedule.IntervalMinutesOnTraffic = 3 }),
			Entry("unknown mode", func(c *config.Config) { c.Schedule.Mode = "turbo" }),
			Entry("bad address", func(c *config.Config) { c.Server.Address = "invalid:host:port" }),
			Entry("unknown environment", func(c *config.Config) { c.Server.Environment = "qa" }),
			Entry("unknown log level", func(c *config.Config) { c.Logging.Level = "trace" }),
			Entry("zero buffer", func(c *config.Config) { c.Metrics.BufferSize = 0 }),
		)
	})
})
