package rest

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var _ = Describe("HealthHandler", func() {
	var (
		db      *sql.DB
		handler *HealthHandler
	)

	BeforeEach(func() {
		gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
		Expect(err).NotTo(HaveOccurred())

		db, err = gdb.DB()
		Expect(err).NotTo(HaveOccurred())

		handler = NewHealthHandler(db)
	})

	Describe("ping", func() {
		It("answers OK while the process is up", func() {
			rec := httptest.NewRecorder()
			handler.pingHandler(rec, httptest.NewRequest(http.MethodGet, "/api/v1/ping", nil))

			Expect(rec.Code).To(Equal(http.StatusOK))

			var body map[string]string
			Expect(json.Unmarshal(rec.Body.Bytes(), &body)).To(Succeed())
			Expect(body["status"]).To(Equal("OK"))
		})
	})

	Describe("health", func() {
		It("reports healthy when the database responds", func() {
			rec := httptest.NewRecorder()
			handler.healthCheckHandler(rec, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))

			Expect(rec.Code).To(Equal(http.StatusOK))

			var body HealthResponse
			Expect(json.Unmarshal(rec.Body.Bytes(), &body)).To(Succeed())
			Expect(body.Status).To(Equal(HealthHealthy))
			Expect(body.Components).To(HaveKey("postgres"))
			Expect(body.Components["postgres"].Status).To(Equal(HealthHealthy))
		})

		It("reports unhealthy with 503 when the database is gone", func() {
			Expect(db.Close()).To(Succeed())

			rec := httptest.NewRecorder()
			handler.healthCheckHandler(rec, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))

			Expect(rec.Code).To(Equal(http.StatusServiceUnavailable))

			var body HealthResponse
			Expect(json.Unmarshal(rec.Body.Bytes(), &body)).To(Succeed())
			Expect(body.Status).To(Equal(HealthUnhealthy))
			Expect(body.Components["postgres"].Message).NotTo(BeEmpty())
		})
	})
})
