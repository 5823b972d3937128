package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/angeloszaimis/ping-keeper/pkg/logger"
)

var _ = Describe("Logger", func() {
	Describe("New", func() {
		It("should create a stdout logger", func() {
			log := logger.New("info", false, "dev")
			Expect(log).NotTo(BeNil())
			Expect(log.Enabled(context.Background(), slog.LevelInfo)).To(BeTrue())
			Expect(log.Enabled(context.Background(), slog.LevelDebug)).To(BeFalse())
		})
	})

	Describe("NewWithWriter", func() {
		var buf *bytes.Buffer

		BeforeEach(func() {
			buf = &bytes.Buffer{}
		})

		It("should write JSON in prod with service and environment", func() {
			log := logger.NewWithWriter(buf, "info", false, "prod")
			log.Info("Ping successful")

			var entry map[string]any
			Expect(json.Unmarshal(buf.Bytes(), &entry)).To(Succeed())
			Expect(entry["msg"]).To(Equal("Ping successful"))
			Expect(entry["service"]).To(Equal("ping-keeper"))
			Expect(entry["environment"]).To(Equal("prod"))
		})

		It("should write text outside prod", func() {
			log := logger.NewWithWriter(buf, "info", false, "dev")
			log.Info("Ping failed")

			Expect(buf.String()).To(ContainSubstring("msg=\"Ping failed\""))
			Expect(buf.String()).To(ContainSubstring("environment=dev"))
		})

		It("should include the source when requested", func() {
			log := logger.NewWithWriter(buf, "info", true, "prod")
			log.Info("with source")

			Expect(buf.String()).To(ContainSubstring("\"source\""))
		})

		It("should suppress messages below the level", func() {
			log := logger.NewWithWriter(buf, "warn", false, "dev")
			log.Info("hidden")

			Expect(buf.Len()).To(BeZero())
		})
	})

	DescribeTable("ParseLevel",
		func(name string, expected slog.Level) {
			Expect(logger.ParseLevel(name)).To(Equal(expected))
		},
		Entry("debug", "debug", slog.LevelDebug),
		Entry("info", "info", slog.LevelInfo),
		Entry("warn", "warn", slog.LevelWarn),
		Entry("error", "error", slog.LevelError),
		Entry("mixed case", "WARN", slog.LevelWarn),
		Entry("unknown defaults to info", "invalid", slog.LevelInfo),
	)
})
