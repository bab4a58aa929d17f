package handlers

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/kbelaid/chequier/internal/config"
	"github.com/kbelaid/chequier/internal/jobs"
	"github.com/kbelaid/chequier/internal/services"
	"github.com/kbelaid/chequier/internal/storage"
	"github.com/kbelaid/chequier/pkg/logger"
	"github.com/stretchr/testify/assert"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger.Setup("test", false)

	cfg := &config.Config{
		MaxLineWidth:          70,
		CurrencyCode:          "DA",
		CurrencyMajorSingular: "dinar",
		CurrencyMajorPlural:   "dinars",
		CurrencyMinorSingular: "centime",
		CurrencyMinorPlural:   "centimes",
		ChequeOffsetX:         10,
		ChequeOffsetY:         180,
	}

	store, err := storage.NewLocalStorage(t.TempDir())
	assert.NoError(t, err)

	worker := jobs.NewWorker(2)
	t.Cleanup(worker.Shutdown)

	svcs := services.NewServices(nil, worker, store, cfg)
	h := NewHandlers(svcs, store)

	router := gin.New()
	v1 := router.Group("/api/v1")
	v1.GET("/health", h.Health.Index)
	v1.GET("/cheques/preview", h.Cheque.Preview)
	v1.GET("/cheques/calibration", h.Cheque.Calibration)
	v1.POST("/cheques", h.Cheque.Create)
	v1.POST("/cheques/import", h.Cheque.Import)
	return router
}

func TestHealthEndpoint(t *testing.T) {
	router := newTestRouter(t)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/v1/health", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}

func TestChequePreviewEndpoint(t *testing.T) {
	router := newTestRouter(t)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/v1/cheques/preview?montant=1234.56", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var body map[string]string
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "1 234,56 DA", body["montant_chiffres"])
	assert.Contains(t, body["montant_lettres"], "mille deux cent trente-quatre dinars")
}

func TestChequePreviewEndpoint_DecimalComma(t *testing.T) {
	router := newTestRouter(t)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/v1/cheques/preview?montant=150,00", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestChequePreviewEndpoint_Invalid(t *testing.T) {
	router := newTestRouter(t)

	for _, q := range []string{"montant=abc", "montant=-5", ""} {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/v1/cheques/preview?"+q, nil)
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code, "query=%s", q)
	}
}

func TestCreateChequeEndpoint(t *testing.T) {
	router := newTestRouter(t)

	payloads := []map[string]interface{}{
		// Flat structure
		{"montant": 150.0, "ordre": "Jean Dupont", "lieu": "Paris"},
		// Nested structure
		{"cheque": map[string]interface{}{"montant": 150.0, "ordre": "Jean Dupont", "lieu": "Paris"}},
	}

	for _, payload := range payloads {
		jsonBytes, _ := json.Marshal(payload)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/api/v1/cheques", bytes.NewBuffer(jsonBytes))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
		assert.Equal(t, "%PDF", w.Body.String()[:4])
	}
}

func TestCreateChequeEndpoint_MissingPayee(t *testing.T) {
	router := newTestRouter(t)

	jsonBytes, _ := json.Marshal(map[string]interface{}{"montant": 150.0, "lieu": "Paris"})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/api/v1/cheques", bytes.NewBuffer(jsonBytes))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestImportEndpoint(t *testing.T) {
	router := newTestRouter(t)

	buf := new(bytes.Buffer)
	mw := multipart.NewWriter(buf)
	part, _ := mw.CreateFormFile("file", "lot.csv")
	_, _ = part.Write([]byte("montant;ordre;lieu;date\n150,00;Jean Dupont;Paris;\n"))
	mw.Close()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/api/v1/cheques/import", buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var result services.BatchResult
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Len(t, result.Generated, 1)
}

func TestImportEndpoint_UnsupportedExtension(t *testing.T) {
	router := newTestRouter(t)

	buf := new(bytes.Buffer)
	mw := multipart.NewWriter(buf)
	part, _ := mw.CreateFormFile("file", "lot.txt")
	_, _ = part.Write([]byte("whatever"))
	mw.Close()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/api/v1/cheques/import", buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCalibrationEndpoint(t *testing.T) {
	router := newTestRouter(t)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/v1/cheques/calibration", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
}
