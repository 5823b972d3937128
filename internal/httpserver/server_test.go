package httpserver_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/angeloszaimis/ping-keeper/internal/httpserver"
)

var _ = Describe("HTTP Server", func() {
	var (
		noop http.Handler
		log  *slog.Logger
	)

	BeforeEach(func() {
		noop = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	})

	Context("server creation", func() {
		DescribeTable("accepts valid addresses",
			func(addr string) {
				srv, err := httpserver.New(addr, noop)
				Expect(err).NotTo(HaveOccurred())
				Expect(srv.Addr()).To(Equal(addr))
			},
			Entry("hostname", "localhost:9999"),
			Entry("ip address", "127.0.0.1:9999"),
			Entry("port only", ":9999"),
		)

		It("rejects invalid address", func() {
			srv, err := httpserver.New("invalid:host:port", noop)
			Expect(err).To(HaveOccurred())
			Expect(srv).To(BeNil())
		})

		It("rejects address without port", func() {
			_, err := httpserver.New("localhost", noop)
			Expect(err).To(HaveOccurred())
		})
	})

	Context("server lifecycle", func() {
		var testServer *httpserver.Server

		AfterEach(func() {
			if testServer != nil {
				ctx, cancel := context.WithTimeout(context.Background(), time.Second)
				defer cancel()
				_ = testServer.Shutdown(ctx)
			}
		})

		It("starts and handles requests", func() {
			handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
				w.Write([]byte("test"))
			})
			var err error
			testServer, err = httpserver.New(":19997", handler, httpserver.WithLogger(log))
			Expect(err).NotTo(HaveOccurred())

			go func() {
				defer GinkgoRecover()
				Expect(testServer.Start()).To(Succeed())
			}()

			Eventually(func() error {
				resp, err := http.Get("http://localhost:19997")
				if err != nil {
					return err
				}
				defer resp.Body.Close()
				body, _ := io.ReadAll(resp.Body)
				Expect(resp.StatusCode).To(Equal(http.StatusOK))
				Expect(string(body)).To(Equal("test"))
				return nil
			}).Should(Succeed())
		})

		It("shuts down gracefully", func() {
			var err error
			testServer, err = httpserver.New(":19996", noop,
				httpserver.WithLogger(log),
				httpserver.WithGracePeriod(2*time.Second),
				httpserver.WithReadTimeout(time.Second),
				httpserver.WithWriteTimeout(time.Second),
			)
			Expect(err).NotTo(HaveOccurred())

			done := make(chan error, 1)
			go func() {
				done <- testServer.Start()
			}()
			time.Sleep(100 * time.Millisecond)

			Expect(testServer.Shutdown(context.Background())).To(Succeed())
			Eventually(done).Should(Receive(BeNil()))
		})
	})
})
