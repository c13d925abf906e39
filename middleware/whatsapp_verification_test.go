package middleware

import (
    "bytes"
    "io"
    "net/http"
    "net/http/httptest"
    "testing"

    "github.com/gin-gonic/gin"
    "github.com/stretchr/testify/assert"
)

func performWebhookRequest(body []byte, signature string) (*httptest.ResponseRecorder, string) {
    gin.SetMode(gin.TestMode)
    router := gin.New()

    var seenBody string
    router.POST("/webhook", VerifyWhatsAppSignature(), func(c *gin.Context) {
        raw, _ := io.ReadAll(c.Request.Body)
        seenBody = string(raw)
        c.Status(http.StatusOK)
    })

    req := httptest.NewRequest(http.MethodPost, "/webhook", bytes.NewReader(body))
    if signature != "" {
        req.Header.Set("X-Hub-Signature-256", signature)
    }
    w := httptest.NewRecorder()
    router.ServeHTTP(w, req)
    return w, seenBody
}

func TestVerificationSkippedWithoutSecret(t *testing.T) {
    t.Setenv("WHATSAPP_APP_SECRET", "")

    w, seen := performWebhookRequest([]byte(`{"object":"whatsapp_business_account"}`), "")

    assert.Equal(t, http.StatusOK, w.Code)
    assert.Equal(t, `{"object":"whatsapp_business_account"}`, seen)
}

func TestValidSignatureRestoresBody(t *testing.T) {
    t.Setenv("WHATSAPP_APP_SECRET", "top-secret")
    body := []byte(`{"object":"whatsapp_business_account"}`)

    w, seen := performWebhookRequest(body, "sha256="+calculateHMAC(body, "top-secret"))

    assert.Equal(t, http.StatusOK, w.Code)
    assert.Equal(t, string(body), seen)
}

func TestMissingSignatureRejected(t *testing.T) {
    t.Setenv("WHATSAPP_APP_SECRET", "top-secret")

    w, _ := performWebhookRequest([]byte(`{}`), "")

    assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestInvalidSignatureRejected(t *testing.T) {
    t.Setenv("WHATSAPP_APP_SECRET", "top-secret")

    w, _ := performWebhookRequest([]byte(`{}`), "sha256="+calculateHMAC([]byte(`tampered`), "top-secret"))

    assert.Equal(t, http.StatusUnauthorized, w.Code)
}
